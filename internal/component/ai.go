package component

// AIBehavior describes how an enemy acts each turn.
type AIBehavior uint8

const (
	BehaviorChase      AIBehavior = iota // step toward a visible player, hit if adjacent
	BehaviorStationary                   // never moves, still hits adjacent players
)

// AI drives an enemy. Stun is added to the player's stun counter on a hit.
type AI struct {
	Behavior   AIBehavior
	SightRange int
	Attack     int
	Stun       int
}
