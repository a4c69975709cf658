// Package generate paints procedural terrain into rooms and picks enemy
// spawn points. Every random draw comes from Config.Rand, so a seeded
// source reproduces a room exactly.
package generate

import (
	"math/rand"

	"tilequest/internal/component"
)

// RuinStyle selects the shape of wall runs laid across ordinary rooms.
type RuinStyle uint8

const (
	RuinLShaped RuinStyle = iota
	RuinZShaped
	RuinStraight
)

// EnemySpawnEntry describes one kind of enemy the populator can place.
type EnemySpawnEntry struct {
	Name       string
	Large      bool // occupies a 2×2 block anchored at its spawn point
	MaxHP      int
	Attack     int
	SightRange int
	Stun       int
	Behavior   component.AIBehavior
}

// Config drives generation of one room.
type Config struct {
	LakeCount    int
	LakeMargin   int     // seeds stay this far from every edge
	LakeDecay    float64 // spread probability lost per step from the seed
	GrassDensity float64 // chance that a free cell gets grass
	RuinCount    int
	RuinStyle    RuinStyle
	RuinLength   int
	EnemyCount   int
	LargeCount   int
	EnemyTable   []EnemySpawnEntry
	SpawnClear   int // no enemy spawns within this Chebyshev distance of a reserved cell
	Rand         *rand.Rand
}

// DefaultConfig returns the stock generation settings drawing from rng.
func DefaultConfig(rng *rand.Rand) *Config {
	return &Config{
		LakeCount:    5,
		LakeMargin:   5,
		LakeDecay:    0.1,
		GrassDensity: 0.15,
		RuinCount:    3,
		RuinStyle:    RuinLShaped,
		RuinLength:   6,
		EnemyCount:   4,
		LargeCount:   1,
		SpawnClear:   4,
		Rand:         rng,
	}
}
