package ecs

import (
	"reflect"
	"sort"
	"unsafe"
	"weak"
)

// Storage owns every archetype, singleton and event queue of one world.
type Storage struct {
	archetypes map[uint32]*Archetype
	singletons map[reflect.Type]*singletonEntry
	events     map[reflect.Type]any
	registry   *ComponentRegistry
}

// iface mirrors the runtime layout of an interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty world that builds columns from registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		events:     make(map[reflect.Type]any),
		registry:   registry,
	}
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)
	return NewEntityId(archetype.id, archetype.Spawn(components))
}

func (s *Storage) archetypeFor(sortedTypes []reflect.Type) *Archetype {
	id := hashTypesToUint32(sortedTypes)
	archetype, ok := s.archetypes[id]
	if !ok {
		archetype = NewArchetype(id, sortedTypes, s.registry)
		s.archetypes[id] = archetype
	}
	return archetype
}

// Delete removes the entity and all of its components. Unknown ids are ignored.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes[id.ArchetypeId()]; ok {
		archetype.Delete(id.Index())
	}
}

// Alive reports whether the slot named by id holds an entity. Slots are reused, so the id of
// a deleted entity reports true again once a later spawn lands in the same archetype slot.
// Use CreateEntityRef to follow one particular entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.Alive(id.Index())
}

// AddComponent moves the entity into the archetype that also carries component and returns its new id.
// Adding a type the entity already has overwrites the stored value in place.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	old, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !old.Alive(id.Index()) {
		return 0
	}

	compType := componentType(component)
	if old.HasComponent(compType) {
		dst := reflect.ValueOf(old.GetComponent(id.Index(), compType)).Elem()
		src := reflect.ValueOf(component)
		if src.Kind() == reflect.Ptr {
			src = src.Elem()
		}
		dst.Set(src)
		return id
	}

	types := append(append(make([]reflect.Type, 0, len(old.types)+1), old.types...), compType)
	sort.Sort(byTypeName(types))

	components := make([]any, 0, len(types))
	for _, typ := range types {
		if typ == compType {
			components = append(components, component)
			continue
		}
		components = append(components, old.GetComponent(id.Index(), typ))
	}
	return s.move(id, old, s.archetypeFor(types), components)
}

// RemoveComponent moves the entity into the archetype without compType and returns its new id.
// Removing the last component deletes the entity and returns 0.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	old, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !old.Alive(id.Index()) {
		return 0
	}
	if !old.HasComponent(compType) {
		return id
	}

	types := make([]reflect.Type, 0, len(old.types)-1)
	components := make([]any, 0, len(old.types)-1)
	for _, typ := range old.types {
		if typ == compType {
			continue
		}
		types = append(types, typ)
		components = append(components, old.GetComponent(id.Index(), typ))
	}

	if len(types) == 0 {
		old.Delete(id.Index())
		return 0
	}
	return s.move(id, old, s.archetypeFor(types), components)
}

func (s *Storage) move(id EntityId, from, to *Archetype, components []any) EntityId {
	newId := NewEntityId(to.id, to.Spawn(components))

	if ptr, ok := from.refs.Get(id); ok {
		if ref := ptr.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = to
			to.refs.Put(newId, ptr)
		}
		from.refs.Del(id)
	}

	from.Delete(id.Index())
	return newId
}

// GetComponent returns a pointer to the component for the given entity, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// ComponentTypes returns the component types of id in archetype order, or nil if id is not alive.
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Alive(id.Index()) {
		return nil
	}
	return archetype.Types()
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	return s.GetComponent(id, compType) != nil
}

// CreateEntityRef returns the shared EntityRef for id, creating it on first use.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil || !archetype.Alive(id.Index()) {
		return nil
	}

	if ptr, ok := archetype.refs.Get(id); ok {
		if ref := ptr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: archetype}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the current id behind ref.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Alive() {
		return 0, false
	}
	return ref.Id, true
}

// AddSingleton stores value as the world-wide instance of its type, replacing any previous one.
// Pointers are dereferenced so the storage always owns the data.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if entry, ok := s.singletons[v.Type()]; ok {
		entry.value.Set(v)
		return
	}

	holder := reflect.New(v.Type())
	holder.Elem().Set(v)
	s.singletons[v.Type()] = &singletonEntry{
		value:   holder.Elem(),
		dataPtr: holder.UnsafePointer(),
	}
}

// ReadSingleton points *out at the singleton of type T. It reports false when none exists.
func (s *Storage) ReadSingleton(out any) bool {
	ptr := reflect.ValueOf(out)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a pointer")
	}

	entry := s.getSingletonEntry(ptr.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	ptr.Elem().Set(entry.value.Addr())
	return true
}

// RemoveSingleton drops the singleton of compType.
func (s *Storage) RemoveSingleton(compType reflect.Type) {
	delete(s.singletons, compType)
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// ReadComponent returns the T component of entityId, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}

// ComponentReader is satisfied by Storage.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// extractComponentTypes returns the sorted component types of components.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		switch t.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, t)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 is FNV-1a over the runtime type pointers of a sorted type list.
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		val := uint32(ptr)
		if unsafe.Sizeof(ptr) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}
		h ^= val
		h *= prime
	}
	return h
}
