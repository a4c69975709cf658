package game

import (
	"github.com/gdamore/tcell/v2"

	"tilequest/internal/grid"
)

// Action represents a player-requested game action.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveN
	ActionMoveS
	ActionMoveE
	ActionMoveW
	ActionFaceN
	ActionFaceS
	ActionFaceE
	ActionFaceW
	ActionMelee
	ActionProjectile
	ActionTracking
	ActionHeal
	ActionBuild
	ActionSlam
	ActionFire
	ActionLightning
	ActionTeleport
	ActionInvisibility
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:         "none",
	ActionMoveN:        "move-n",
	ActionMoveS:        "move-s",
	ActionMoveE:        "move-e",
	ActionMoveW:        "move-w",
	ActionFaceN:        "face-n",
	ActionFaceS:        "face-s",
	ActionFaceE:        "face-e",
	ActionFaceW:        "face-w",
	ActionMelee:        "melee",
	ActionProjectile:   "projectile",
	ActionTracking:     "tracking",
	ActionHeal:         "heal",
	ActionBuild:        "build",
	ActionSlam:         "slam",
	ActionFire:         "fire",
	ActionLightning:    "lightning",
	ActionTeleport:     "teleport",
	ActionInvisibility: "invisibility",
	ActionQuit:         "quit",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// keyToAction maps a tcell key event to a game action.
// Arrow keys move while keeping the current facing; w/a/s/d only turn.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionMoveN
	case tcell.KeyDown:
		return ActionMoveS
	case tcell.KeyRight:
		return ActionMoveE
	case tcell.KeyLeft:
		return ActionMoveW
	case tcell.KeyEscape:
		return ActionQuit
	}

	// Rune keys.
	switch ev.Rune() {
	case 'w', 'W':
		return ActionFaceN
	case 's', 'S':
		return ActionFaceS
	case 'd', 'D':
		return ActionFaceE
	case 'a', 'A':
		return ActionFaceW
	case 'm', 'M':
		return ActionMelee
	case ' ':
		return ActionProjectile
	case 'x', 'X':
		return ActionTracking
	case 'h', 'H':
		return ActionHeal
	case 'b', 'B':
		return ActionBuild
	case 'z', 'Z':
		return ActionSlam
	case 'f', 'F':
		return ActionFire
	case 'l', 'L':
		return ActionLightning
	case 't', 'T':
		return ActionTeleport
	case 'i', 'I':
		return ActionInvisibility
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// actionDir returns the direction carried by a move or face action.
func actionDir(a Action) (grid.Direction, bool) {
	switch a {
	case ActionMoveN, ActionFaceN:
		return grid.North, true
	case ActionMoveS, ActionFaceS:
		return grid.South, true
	case ActionMoveE, ActionFaceE:
		return grid.East, true
	case ActionMoveW, ActionFaceW:
		return grid.West, true
	}
	return 0, false
}

func isMove(a Action) bool { return a >= ActionMoveN && a <= ActionMoveW }

func isFace(a Action) bool { return a >= ActionFaceN && a <= ActionFaceW }
