package ecs

import "iter"

// Query is a View whose results are gathered once per system run.
// The Scheduler executes every Query field of a system right before calling Execute, so
// results reflect all commands flushed by earlier stages.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a Query outside of a scheduler.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the Query to storage. Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.cacheValid = false
}

// Execute rebuilds the cached results.
func (q *Query[T]) Execute() {
	if n := len(q.storage.archetypes); n != q.lastArchetypeCount {
		q.cachedArchetypes = q.cachedArchetypes[:0]
		for _, archetype := range q.storage.archetypes {
			if q.view.matchesArchetype(archetype) {
				q.cachedArchetypes = append(q.cachedArchetypes, archetype)
			}
		}
		q.lastArchetypeCount = n
	}

	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]
	for _, archetype := range q.cachedArchetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			q.cachedEntities = append(q.cachedEntities, id)
			q.cachedComponents = append(q.cachedComponents, item)
		}
	}
	q.cacheValid = true
}

// Entries yields (EntityId, T) pairs from the last Execute.
// Panics if Execute has never been called.
func (q *Query[T]) Entries() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("Query.Entries() called before Query.Execute()")
	}
	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Iter yields the view structs from the last Execute.
// Panics if Execute has never been called.
func (q *Query[T]) Iter() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}
	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Single returns the only match. ok is false when there are zero or several matches.
func (q *Query[T]) Single() (item T, ok bool) {
	if !q.cacheValid {
		panic("Query.Single() called before Query.Execute()")
	}
	if len(q.cachedComponents) != 1 {
		return item, false
	}
	return q.cachedComponents[0], true
}

// Len returns the number of matches from the last Execute.
func (q *Query[T]) Len() int {
	return len(q.cachedComponents)
}
