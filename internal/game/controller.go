package game

import (
	"errors"

	"go.uber.org/zap"

	"tilequest/internal/factory"
	"tilequest/internal/gamemap"
	"tilequest/internal/grid"
	"tilequest/internal/system"
	"tilequest/internal/world"
)

// Rejection reasons. A rejected action leaves the world untouched.
var (
	ErrDead          = errors.New("you are dead")
	ErrNoAction      = errors.New("nothing to do")
	ErrNoEnergy      = errors.New("not enough energy")
	ErrCooldown      = errors.New("still cooling down")
	ErrNoTarget      = errors.New("no target queued")
	ErrOutOfRange    = errors.New("target out of range")
	ErrBlockedTarget = errors.New("target is blocked")
	ErrFullHealth    = errors.New("already at full health")
)

// Outcome reports what one accepted action did.
type Outcome struct {
	Action     Action
	Move       system.MoveResult
	Attack     system.AttackResult
	Built      bool // build placed a structure; false means it removed one
	RoomChange bool // the player walked into a neighbouring room
}

// Perform validates a against w and applies it. It returns a non-nil error,
// and changes nothing, when a precondition fails. An accepted action pays
// its energy, starts its own cooldown, ticks every other cooldown and the
// invisibility window, and lets the boss act in boss rooms.
func Perform(w *world.World, a Action) (Outcome, error) {
	out := Outcome{Action: a}
	if err := check(w, a); err != nil {
		return out, err
	}

	p := w.Player
	r := ruleFor(a)
	switch {
	case isMove(a):
		dir, _ := actionDir(a)
		facing := p.Facing
		p.Facing = dir
		out.Move = system.TryMovePlayer(w, dir)
		if out.Move == system.MoveAtBound && p.Stun == 0 {
			out.RoomChange = crossEdge(w, dir)
		}
		p.Facing = facing
	case isFace(a):
		p.Facing, _ = actionDir(a)
	case a == ActionMelee:
		out.Attack = system.Melee(w, MeleeDamage)
		if len(out.Attack.Enemies) > 0 {
			p.Energy.Change(MeleeEnergyGain)
		}
	case a == ActionProjectile:
		spawnAhead(w, world.ProjectilePlain)
	case a == ActionTracking:
		spawnAhead(w, world.ProjectileTracking)
	case a == ActionFire:
		spawnAhead(w, world.ProjectileFire)
	case a == ActionHeal:
		p.Health.Heal(HealAmount)
	case a == ActionBuild:
		out.Built = toggleStructure(w)
		if out.Built {
			r.cost = BuildCost
		}
	case a == ActionSlam:
		out.Attack = system.Slam(w, p.Pos, SlamDamage)
	case a == ActionLightning:
		target, _ := p.Target()
		pr := factory.NewProjectile(world.ProjectileLightning, target, p.Facing, w.Rooms.ActiveCoord(), gamemap.EntityPlayer)
		mustSpawn(w, pr)
	case a == ActionTeleport:
		target, _ := p.Target()
		system.Relocate(w.ActiveRoom(), p.Pos, target)
		p.Pos = target
	case a == ActionInvisibility:
		system.ApplyInvisibility(p, InvisibilityDuration)
	}

	p.Energy.Change(-r.cost)
	p.Cooldowns.Start(r.ability, r.cooldown)
	p.Cooldowns.Advance(r.ability)
	if a != ActionInvisibility {
		system.TickInvisibility(p)
	}
	system.AdvanceBoss(w)
	w.Log.Debug("action",
		zap.Stringer("action", a), zap.Stringer("pos", p.Pos),
		zap.Int("energy", p.Energy.Current), zap.Int("health", p.Health.Current))
	return out, nil
}

// check runs the preconditions of a without touching w.
func check(w *world.World, a Action) error {
	p := w.Player
	if !p.Alive {
		return ErrDead
	}
	if a == ActionNone || a == ActionQuit {
		return ErrNoAction
	}
	r := ruleFor(a)
	if !p.Cooldowns.Ready(r.ability) {
		return ErrCooldown
	}

	switch a {
	case ActionProjectile:
		// any energy at all is enough for a bolt
		if p.Energy.Current <= 0 {
			return ErrNoEnergy
		}
		return checkAhead(w)
	case ActionTracking, ActionFire:
		if !p.Energy.Has(r.cost) {
			return ErrNoEnergy
		}
		return checkAhead(w)
	case ActionHeal:
		if !p.Energy.Has(r.cost) {
			return ErrNoEnergy
		}
		if p.Health.Current >= p.Health.Max {
			return ErrFullHealth
		}
	case ActionBuild:
		if !p.Energy.Has(BuildMinEnergy) {
			return ErrNoEnergy
		}
		return checkBuild(w)
	case ActionSlam, ActionInvisibility:
		if !p.Energy.Has(r.cost) {
			return ErrNoEnergy
		}
	case ActionLightning:
		if !p.Energy.Has(r.cost) {
			return ErrNoEnergy
		}
		target, err := rangedTarget(w)
		if err != nil {
			return err
		}
		if w.ActiveRoom().Atmosphere.Contains(target) {
			return ErrBlockedTarget
		}
	case ActionTeleport:
		if !p.Energy.Has(r.cost) {
			return ErrNoEnergy
		}
		target, err := rangedTarget(w)
		if err != nil {
			return err
		}
		if !system.Passable(w, w.Rooms.ActiveCoord(), target) {
			return ErrBlockedTarget
		}
	}
	return nil
}

// ahead is the cell one step in front of the player.
func ahead(w *world.World) grid.Position {
	p := w.Player
	return grid.Step(p.Pos, p.Facing, 1, w.ActiveRoom().Board)
}

func checkAhead(w *world.World) error {
	if !system.CanSpawnAt(w, ahead(w)) {
		return ErrBlockedTarget
	}
	return nil
}

// rangedTarget returns the queued target when it is on the board and
// within TargetRange of the player.
func rangedTarget(w *world.World) (grid.Position, error) {
	p := w.Player
	target, ok := p.Target()
	if !ok {
		return target, ErrNoTarget
	}
	if !w.ActiveRoom().Board.Contains(target) || grid.Chebyshev(p.Pos, target) > TargetRange {
		return target, ErrOutOfRange
	}
	return target, nil
}

// checkBuild accepts a queued target next to the player that is either
// empty ground or an existing structure.
func checkBuild(w *world.World) error {
	p := w.Player
	room := w.ActiveRoom()
	target, ok := p.Target()
	if !ok {
		return ErrNoTarget
	}
	if !room.Board.Contains(target) || grid.Chebyshev(p.Pos, target) > BuildReach {
		return ErrOutOfRange
	}
	if t, ok := room.Terrain.Get(target); ok && !gamemap.Permissible(t) {
		return ErrBlockedTarget
	}
	if room.Entities.Contains(target) {
		return ErrBlockedTarget
	}
	if t, ok := room.Atmosphere.Get(target); ok && t != gamemap.TileStructure {
		return ErrBlockedTarget
	}
	if w.InBossRoom() && w.Boss.Contains(target, room.Coord) {
		return ErrBlockedTarget
	}
	return nil
}

// toggleStructure places or removes a structure at the queued target and
// reports whether one was placed.
func toggleStructure(w *world.World) bool {
	room := w.ActiveRoom()
	target, _ := w.Player.Target()
	if room.Atmosphere.Remove(target) {
		return false
	}
	room.MustInsertAtmosphere(target, gamemap.TileStructure)
	return true
}

func spawnAhead(w *world.World, kind world.ProjectileKind) {
	p := w.Player
	mustSpawn(w, factory.NewProjectile(kind, ahead(w), p.Facing, w.Rooms.ActiveCoord(), gamemap.EntityPlayer))
}

// mustSpawn registers a projectile whose cell check already passed.
func mustSpawn(w *world.World, pr *world.Projectile) {
	if _, err := w.SpawnProjectile(pr); err != nil {
		panic("game: spawn after a passing check: " + err.Error())
	}
}

// crossEdge moves the player into the neighbouring room in dir, entering on
// the opposite edge. It reports whether the player changed rooms.
func crossEdge(w *world.World, dir grid.Direction) bool {
	p := w.Player
	cur := w.Rooms.ActiveCoord()
	dx, dy := dir.Delta()
	next := cur.Add(dx, dy)
	room, ok := w.Rooms.Room(next)
	if !ok {
		return false
	}
	entry := p.Pos
	switch dir {
	case grid.North:
		entry.Y = room.Board.Max.Y - 1
	case grid.South:
		entry.Y = room.Board.Min.Y
	case grid.East:
		entry.X = room.Board.Min.X
	case grid.West:
		entry.X = room.Board.Max.X - 1
	}
	if !system.Passable(w, next, entry) {
		return false
	}
	if err := w.SwitchRoom(next, entry); err != nil {
		w.Log.Warn("room switch failed", zap.Error(err))
		return false
	}
	return true
}
