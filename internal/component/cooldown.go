package component

// Ability identifies an action that can sit on cooldown.
type Ability uint8

const (
	AbilityNone Ability = iota
	AbilityProjectile
	AbilityTracking
	AbilitySlam
	AbilityFire
	AbilityLightning
	AbilityTeleport
	AbilityInvisibility

	abilityCount
)

var abilityNames = [abilityCount]string{
	AbilityNone:         "none",
	AbilityProjectile:   "projectile",
	AbilityTracking:     "tracking",
	AbilitySlam:         "slam",
	AbilityFire:         "fire",
	AbilityLightning:    "lightning",
	AbilityTeleport:     "teleport",
	AbilityInvisibility: "invisibility",
}

func (a Ability) String() string {
	if a < abilityCount {
		return abilityNames[a]
	}
	return "unknown"
}

// Abilities lists every cooldown-bearing ability in display order.
var Abilities = []Ability{
	AbilityProjectile, AbilityTracking, AbilitySlam, AbilityFire,
	AbilityLightning, AbilityTeleport, AbilityInvisibility,
}

// Cooldowns maps each ability to the ticks left before it can be used again.
// The zero value has every ability ready.
type Cooldowns struct {
	remaining [abilityCount]int
}

// Remaining returns the ticks left on a.
func (c *Cooldowns) Remaining(a Ability) int {
	if a >= abilityCount {
		return 0
	}
	return c.remaining[a]
}

// Ready reports whether a can be used this turn.
func (c *Cooldowns) Ready(a Ability) bool { return c.Remaining(a) <= 0 }

// Start puts a on cooldown for ticks turns.
func (c *Cooldowns) Start(a Ability, ticks int) {
	if a == AbilityNone || a >= abilityCount {
		return
	}
	c.remaining[a] = ticks
}

// Advance is the shared turn tick: every ability except the one just used
// loses one tick, never dropping below zero.
func (c *Cooldowns) Advance(except Ability) {
	for a := AbilityNone + 1; a < abilityCount; a++ {
		if a == except {
			continue
		}
		if c.remaining[a] > 0 {
			c.remaining[a]--
		}
	}
}

// Set overwrites the ticks left on a; used when restoring a snapshot.
func (c *Cooldowns) Set(a Ability, ticks int) {
	if a < abilityCount {
		c.remaining[a] = max(0, ticks)
	}
}
