package world

import (
	"tilequest/internal/component"
	"tilequest/internal/grid"
)

const (
	MaxPlayerHealth    = 100
	MaxPlayerEnergy    = 100
	PlayerInitialSpeed = 1
)

// Player is the single player-controlled mover. It persists for the whole
// session; death only clears Alive.
type Player struct {
	Pos       grid.Position
	Facing    grid.Direction
	Speed     int
	Health    component.Health
	Energy    component.Energy
	Queued    grid.Position
	HasQueued bool
	Invisible int // 0 visible, N>0 invisible for N more ticks
	Stun      int
	Alive     bool
	Cooldowns component.Cooldowns
}

// NewPlayer returns a fresh player at pos facing south.
func NewPlayer(pos grid.Position) *Player {
	return &Player{
		Pos:    pos,
		Facing: grid.South,
		Speed:  PlayerInitialSpeed,
		Health: component.NewHealth(MaxPlayerHealth),
		Energy: component.Energy{Current: MaxPlayerEnergy, Max: MaxPlayerEnergy},
		Alive:  true,
	}
}

// Damage hurts the player. A lethal hit clears Alive but keeps the rest of
// the state for the end screen and snapshots.
func (p *Player) Damage(n int) {
	if p.Health.Damage(n) {
		p.Alive = false
	}
}

// Visible reports whether enemies can see the player.
func (p *Player) Visible() bool { return p.Invisible <= 0 }

// QueueTarget records a pointer-selected target. It stays set until the
// next click replaces it.
func (p *Player) QueueTarget(pos grid.Position) {
	p.Queued = pos
	p.HasQueued = true
}

// Target returns the queued target, if any.
func (p *Player) Target() (grid.Position, bool) { return p.Queued, p.HasQueued }
