package ecs

// EntityID is a stable handle into a Registry. IDs are never reused, so a
// handle held across a removal can only miss, never alias another entity.
type EntityID uint64

// NilEntity is the zero value; no valid entity has this ID.
const NilEntity EntityID = 0
