package debugui

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetrino/ecs"
)

// FieldInfo describes one exported field of a component type.
type FieldInfo struct {
	Name  string
	Index int
	Kind  reflect.Kind
}

type fieldCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

var fields = &fieldCache{fields: map[reflect.Type][]FieldInfo{}}

// Fields lists the exported fields of struct type t. Results are cached per type.
func Fields(t reflect.Type) []FieldInfo {
	fields.mu.RLock()
	cached, ok := fields.fields[t]
	fields.mu.RUnlock()
	if ok {
		return cached
	}

	var out []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			out = append(out, FieldInfo{Name: f.Name, Index: i, Kind: f.Type.Kind()})
		}
	}

	fields.mu.Lock()
	fields.fields[t] = out
	fields.mu.Unlock()
	return out
}

// SetNumber writes v to the numeric field at index of the struct component points to. It
// reports false for non-numeric fields and for negative values aimed at unsigned fields.
func SetNumber(component any, index int, v float64) bool {
	val := reflect.ValueOf(component)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return false
	}
	field := val.Elem().Field(index)
	if !field.CanSet() {
		return false
	}

	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		field.SetInt(int64(v))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v < 0 {
			return false
		}
		field.SetUint(uint64(v))
	case reflect.Float32, reflect.Float64:
		field.SetFloat(v)
	default:
		return false
	}
	return true
}

// Inspector edits the components of one entity. The selection is held as an EntityRef, so it
// follows archetype moves and clears when the entity is deleted, even if its slot is reused.
type Inspector struct {
	Storage  *ecs.Storage
	Selected *ecs.EntityRef
}

// Select inspects id. A dead id clears the selection.
func (in *Inspector) Select(id ecs.EntityId) {
	in.Selected = in.Storage.CreateEntityRef(id)
}

// Current returns the selected entity while it is alive.
func (in *Inspector) Current() (ecs.EntityId, bool) {
	return in.Storage.ResolveEntityRef(in.Selected)
}

func (in *Inspector) Item() ImguiItem {
	return ImguiItem{Title: "Inspector", Render: in.Render}
}

func (in *Inspector) Render() {
	id, ok := in.Current()
	types := in.Storage.ComponentTypes(id)
	if !ok || types == nil {
		imgui.Text("No entity selected")
		return
	}

	imgui.Text(fmt.Sprintf("Entity %d (archetype 0x%X)", id, id.ArchetypeId()))
	imgui.Separator()

	for _, t := range types {
		component := in.Storage.GetComponent(id, t)
		if component == nil || !imgui.TreeNodeStr(t.String()) {
			continue
		}
		in.renderFields(component, t)
		imgui.TreePop()
	}
}

func (in *Inspector) renderFields(component any, t reflect.Type) {
	val := reflect.ValueOf(component).Elem()
	for _, f := range Fields(t) {
		field := val.Field(f.Index)
		label := fmt.Sprintf("%s##%s.%s", f.Name, t.Name(), f.Name)

		switch f.Kind {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			v := int32(field.Int())
			if imgui.InputInt(label, &v) {
				SetNumber(component, f.Index, float64(v))
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			v := int32(field.Uint())
			if imgui.InputInt(label, &v) {
				SetNumber(component, f.Index, float64(v))
			}
		case reflect.Float32, reflect.Float64:
			v := float32(field.Float())
			if imgui.InputFloat(label, &v) {
				SetNumber(component, f.Index, float64(v))
			}
		case reflect.Bool:
			v := field.Bool()
			if imgui.Checkbox(label, &v) {
				field.SetBool(v)
			}
		case reflect.Slice, reflect.Map:
			imgui.Text(fmt.Sprintf("%s: [%d items]", f.Name, field.Len()))
		case reflect.Func:
			imgui.Text(fmt.Sprintf("%s: func", f.Name))
		default:
			imgui.Text(fmt.Sprintf("%s: %v", f.Name, field.Interface()))
		}
	}
}
