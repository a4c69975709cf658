package game

import "tilequest/internal/component"

// Ability tuning.
const (
	MeleeDamage     = 30
	MeleeEnergyGain = 2

	ProjectileCost     = 1
	ProjectileCooldown = 1

	TrackingCost     = 75
	TrackingCooldown = 20

	HealCost   = 20
	HealAmount = 10

	BuildCost      = 2
	BuildMinEnergy = BuildCost + 1 // energy must exceed the build cost
	BuildReach     = 1

	SlamCost     = 10
	SlamCooldown = 10
	SlamDamage   = 50

	FireCost     = 30
	FireCooldown = 10

	LightningCost     = 25
	LightningCooldown = 5

	TeleportCost     = 5
	TeleportCooldown = 1

	InvisibilityCost     = 30
	InvisibilityDuration = 10
	InvisibilityCooldown = 25 + InvisibilityDuration

	// TargetRange bounds how far a queued target may be from the player
	// for lightning and teleport.
	TargetRange = 8
)

// rule is the resource side of an action: what it costs and which cooldown
// it starts.
type rule struct {
	ability  component.Ability
	cost     int
	cooldown int
}

var rules = map[Action]rule{
	ActionProjectile:   {component.AbilityProjectile, ProjectileCost, ProjectileCooldown},
	ActionTracking:     {component.AbilityTracking, TrackingCost, TrackingCooldown},
	ActionHeal:         {component.AbilityNone, HealCost, 0},
	ActionSlam:         {component.AbilitySlam, SlamCost, SlamCooldown},
	ActionFire:         {component.AbilityFire, FireCost, FireCooldown},
	ActionLightning:    {component.AbilityLightning, LightningCost, LightningCooldown},
	ActionTeleport:     {component.AbilityTeleport, TeleportCost, TeleportCooldown},
	ActionInvisibility: {component.AbilityInvisibility, InvisibilityCost, InvisibilityCooldown},
}

// ruleFor returns the rule of a, or the zero rule for free actions.
func ruleFor(a Action) rule { return rules[a] }
