package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/tetrino/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestSpawnAndRead(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3, Y: 4}, Label("tile"))
	require.True(t, storage.Alive(id))

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 3, Y: 4}, *pos)
	assert.Equal(t, Label("tile"), *ecs.ReadComponent[Label](storage, id))

	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
}

func TestSpawnSameTypesShareArchetype(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Velocity{}, Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a.Index(), b.Index())
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(Position{}, map[string]int{}) })
	assert.Panics(t, func() { storage.Spawn(struct{ Unregistered int }{}) })
}

func TestDeleteReusesSlot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{X: 1})
	b := storage.Spawn(Position{X: 2})

	storage.Delete(a)
	assert.False(t, storage.Alive(a))
	assert.Nil(t, ecs.ReadComponent[Position](storage, a))
	assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, b).X)

	c := storage.Spawn(Position{X: 3})
	assert.Equal(t, a, c)

	storage.Delete(ecs.NewEntityId(42, 42))
}

func TestAddAndRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1, Y: 2})
	ref := storage.CreateEntityRef(id)

	moved := storage.AddComponent(id, Velocity{DX: 5})
	require.NotEqual(t, id.ArchetypeId(), moved.ArchetypeId())
	assert.False(t, storage.Alive(id))
	assert.Equal(t, moved, ref.Id)
	assert.Equal(t, Position{X: 1, Y: 2}, *ecs.ReadComponent[Position](storage, moved))
	assert.Equal(t, float32(5), ecs.ReadComponent[Velocity](storage, moved).DX)

	same := storage.AddComponent(moved, &Velocity{DX: 7})
	assert.Equal(t, moved, same)
	assert.Equal(t, float32(7), ecs.ReadComponent[Velocity](storage, same).DX)

	back := storage.RemoveComponent(moved, reflect.TypeFor[Velocity]())
	assert.Equal(t, id.ArchetypeId(), back.ArchetypeId())
	assert.Equal(t, back, ref.Id)
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, back))

	gone := storage.RemoveComponent(back, reflect.TypeFor[Position]())
	assert.Equal(t, ecs.EntityId(0), gone)
	assert.False(t, ref.Alive())
}

func TestEntityRefLifecycle(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1})
	ref := storage.CreateEntityRef(id)
	require.NotNil(t, ref)
	assert.Same(t, ref, storage.CreateEntityRef(id))

	resolved, ok := storage.ResolveEntityRef(ref)
	assert.True(t, ok)
	assert.Equal(t, id, resolved)

	storage.Delete(id)
	_, ok = storage.ResolveEntityRef(ref)
	assert.False(t, ok)

	_, ok = storage.ResolveEntityRef(nil)
	assert.False(t, ok)
	assert.Nil(t, storage.CreateEntityRef(id))
}

func TestCompactKeepsRefs(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	ids := make([]ecs.EntityId, 5)
	for i := range ids {
		ids[i] = storage.Spawn(Position{X: float32(i)})
	}
	last := storage.CreateEntityRef(ids[4])

	storage.Delete(ids[0])
	storage.Delete(ids[2])

	archetype := last.Archetype
	archetype.Compact()

	assert.Equal(t, 3, archetype.Len())
	assert.Equal(t, float32(4), ecs.ReadComponent[Position](storage, last.Id).X)
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	var score *Score
	assert.False(t, storage.ReadSingleton(&score))

	storage.AddSingleton(Score(10))
	require.True(t, storage.ReadSingleton(&score))
	assert.Equal(t, Score(10), *score)

	accessor := ecs.NewSingleton[Score](storage)
	*accessor.Get() = 25
	assert.Equal(t, Score(25), *score)

	storage.AddSingleton(Score(40))
	assert.Equal(t, Score(40), *accessor.Get(), "replacing a singleton keeps existing accessors valid")

	health := ecs.NewSingleton(storage, Health{Current: 3, Max: 5})
	assert.True(t, health.Exists())
	assert.Equal(t, 5, health.Get().Max)

	storage.RemoveSingleton(reflect.TypeFor[Health]())
	var h *Health
	assert.False(t, storage.ReadSingleton(&h))
}

func TestReadSingletonRequiresDoublePointer(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	var score Score
	assert.Panics(t, func() { storage.ReadSingleton(&score) })
}

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)
	assert.Zero(t, stats.SingletonCount)

	storage.Spawn(Position{}, Label("a"))
	storage.Spawn(Position{}, Label("b"))
	storage.Spawn(Velocity{}, Label("c"))
	storage.AddSingleton(Score(1))

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Score"}, stats.SingletonTypes)

	counts := map[int]int{}
	for _, arch := range stats.ArchetypeBreakdown {
		counts[arch.EntityCount]++
		assert.Len(t, arch.ComponentTypes, 2)
	}
	assert.Equal(t, map[int]int{1: 1, 2: 1}, counts)
}

func TestComponentTypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Velocity{}, Position{})
	types := storage.ComponentTypes(id)
	assert.ElementsMatch(t, []reflect.Type{reflect.TypeFor[Position](), reflect.TypeFor[Velocity]()}, types)

	storage.Delete(id)
	assert.Nil(t, storage.ComponentTypes(id))
}

func TestReusedSlotKeepsOldRefDead(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	old := storage.Spawn(Position{X: 1})
	ref := storage.CreateEntityRef(old)

	cmds := &ecs.Commands{}
	cmds.Delete(old)
	cmds.Spawn(Position{X: 2})
	cmds.Flush(storage)

	replacement := ecs.NewView[struct {
		ecs.EntityId
		*Position
	}](storage)
	for item := range replacement.Iter() {
		assert.Equal(t, old, item.EntityId, "the freed slot is reused")
	}
	assert.True(t, storage.Alive(old), "Alive only reports slot occupancy")

	_, ok := storage.ResolveEntityRef(ref)
	assert.False(t, ok)
	assert.NotSame(t, ref, storage.CreateEntityRef(old))
}
