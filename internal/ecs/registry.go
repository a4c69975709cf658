package ecs

// Registry stores entities of one kind under stable IDs and remembers their
// insertion order.
type Registry[T any] struct {
	nextID EntityID
	order  []EntityID
	items  map[EntityID]*T
}

// NewRegistry creates an empty Registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		nextID: 1,
		items:  make(map[EntityID]*T),
	}
}

// Add stores v and returns its freshly minted ID.
func (r *Registry[T]) Add(v *T) EntityID {
	id := r.nextID
	r.nextID++
	r.items[id] = v
	r.order = append(r.order, id)
	return id
}

// Restore stores v under an explicit id, used when loading a snapshot.
// It returns false if id is nil or already taken.
func (r *Registry[T]) Restore(id EntityID, v *T) bool {
	if id == NilEntity {
		return false
	}
	if _, ok := r.items[id]; ok {
		return false
	}
	r.items[id] = v
	r.order = append(r.order, id)
	if id >= r.nextID {
		r.nextID = id + 1
	}
	return true
}

// Get returns the entity stored under id.
func (r *Registry[T]) Get(id EntityID) (*T, bool) {
	v, ok := r.items[id]
	return v, ok
}

// Has reports whether id is live.
func (r *Registry[T]) Has(id EntityID) bool {
	_, ok := r.items[id]
	return ok
}

// Remove deletes id. Removing an unknown id is a no-op that returns false.
func (r *Registry[T]) Remove(id EntityID) bool {
	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of live entities.
func (r *Registry[T]) Len() int { return len(r.items) }

// IDs returns a copy of the live IDs in insertion order.
func (r *Registry[T]) IDs() []EntityID {
	out := make([]EntityID, len(r.order))
	copy(out, r.order)
	return out
}

// Each calls fn for every live entity in insertion order. fn must not add or
// remove entities; use Sweep for removal.
func (r *Registry[T]) Each(fn func(EntityID, *T)) {
	for _, id := range r.order {
		fn(id, r.items[id])
	}
}

// Sweep walks the registry in reverse insertion order and removes every
// entity for which dead returns true. onRemove, if non-nil, runs before the
// entity leaves the registry so callers can clear layer entries. It returns
// the removed IDs.
func (r *Registry[T]) Sweep(dead func(EntityID, *T) bool, onRemove func(EntityID, *T)) []EntityID {
	var removed []EntityID
	for i := len(r.order) - 1; i >= 0; i-- {
		id := r.order[i]
		v := r.items[id]
		if !dead(id, v) {
			continue
		}
		if onRemove != nil {
			onRemove(id, v)
		}
		delete(r.items, id)
		r.order = append(r.order[:i], r.order[i+1:]...)
		removed = append(removed, id)
	}
	return removed
}
