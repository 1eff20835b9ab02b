// Package debugui draws Dear ImGui windows from inside the ECS. Windows are ImguiItem
// components, rendered by ImguiSystem when the frame's commands are flushed.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetrino/ecs"
)

// ImguiItem renders one window. When Title is set the system opens and closes the window
// around Render; otherwise Render owns Begin and End.
type ImguiItem struct {
	Title  string
	Hidden bool
	Render func()
}

// ImguiInputState is a singleton telling game systems whether ImGui wants the input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queues every visible ImguiItem for rendering after the stage's other commands.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Iter() {
		if item.Hidden || item.Render == nil {
			continue
		}
		frame.Commands.Defer(windowed(item.Title, item.Render))
	}
}

func windowed(title string, render func()) func() {
	if title == "" {
		return render
	}
	return func() {
		if imgui.BeginV(title, nil, imgui.WindowFlagsNone) {
			render()
		}
		imgui.End()
	}
}

// RegisterComponents adds the package's component types to registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}
