package entity

import "sort"

// Store is the sole owner of all spawned entities in a match, keyed by a
// monotonically increasing identifier. Every other component refers to
// entities by ID and resolves them through the store each tick.
//
// Map iteration order is not deterministic in Go, so any order-sensitive
// pass must walk SortedIDs instead of ranging over the map directly.
type Store struct {
	entities map[ID]*Entity
	nextID   ID
}

// NewStore creates an empty store. The first allocated ID is 1.
func NewStore() *Store {
	return &Store{
		entities: make(map[ID]*Entity),
		nextID:   1,
	}
}

// Add assigns the next ID to the entity, inserts it, and returns the ID.
func (s *Store) Add(e *Entity) ID {
	id := s.nextID
	s.nextID++
	e.ID = id
	s.entities[id] = e
	return id
}

// Get returns the entity with the given ID, or nil if it no longer exists.
func (s *Store) Get(id ID) *Entity {
	return s.entities[id]
}

// Remove deletes the entity with the given ID. The ID is never reissued.
func (s *Store) Remove(id ID) {
	delete(s.entities, id)
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	return len(s.entities)
}

// NextID returns the next ID that will be allocated.
func (s *Store) NextID() ID {
	return s.nextID
}

// SortedIDs returns all entity IDs in ascending order. This is the only
// sanctioned iteration order for phase passes.
func (s *Store) SortedIDs() []ID {
	ids := make([]ID, 0, len(s.entities))
	for id := range s.entities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// All returns the entities in ascending ID order.
func (s *Store) All() []*Entity {
	ids := s.SortedIDs()
	out := make([]*Entity, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.entities[id])
	}
	return out
}

// Restore rebuilds a store from snapshot contents. The next-ID counter must
// come from the snapshot, not be derived from the surviving entities,
// or removed IDs could be reissued after a round-trip.
func Restore(entities []*Entity, nextID ID) *Store {
	s := &Store{
		entities: make(map[ID]*Entity, len(entities)),
		nextID:   nextID,
	}
	for _, e := range entities {
		s.entities[e.ID] = e
	}
	return s
}
