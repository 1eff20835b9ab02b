// Package ebiten hosts the Dear ImGui backend for ebiten front-ends.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// ImguiBackend drives ImGui frames from an ebiten game loop. Call Begin before the
// systems that add windows run, End after them, and Overlay last in the game's Draw.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. ImGui's ini file is disabled so
// window layout is not written next to the binary.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// Begin starts an ImGui frame.
func (b *ImguiBackend) Begin() {
	b.BeginFrame()
}

// End finishes the frame started by Begin.
func (b *ImguiBackend) End() {
	b.EndFrame()
}

// Resize forwards the window size from ebiten's Layout.
func (b *ImguiBackend) Resize(width, height int) {
	b.Layout(width, height)
}

// Overlay draws ImGui on top of screen.
func (b *ImguiBackend) Overlay(screen *ebiten.Image) {
	b.Draw(screen)
}
