package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tetrino/board"
	"github.com/plus3/tetrino/ecs"
	"github.com/plus3/tetrino/ecs/debugui"
	"github.com/plus3/tetrino/tetrino"
)

var swatches = map[board.Color]imgui.Vec4{
	board.Blue:   imgui.NewVec4(0.23, 0.51, 0.96, 1),
	board.Green:  imgui.NewVec4(0.13, 0.77, 0.37, 1),
	board.Orange: imgui.NewVec4(0.98, 0.45, 0.09, 1),
	board.Pink:   imgui.NewVec4(0.93, 0.28, 0.60, 1),
	board.Red:    imgui.NewVec4(0.94, 0.27, 0.27, 1),
	board.Yellow: imgui.NewVec4(0.92, 0.70, 0.03, 1),
}

var emptySwatch = imgui.NewVec4(0.19, 0.19, 0.22, 1)

// BoardEditor paints board cells with the mouse. In inspect mode a click selects the cell's
// render tile in the inspector instead.
type BoardEditor struct {
	World     *tetrino.World
	Inspector *debugui.Inspector
	Paint     board.Color
	Inspect   bool
}

func (e *BoardEditor) Item() debugui.ImguiItem {
	return debugui.ImguiItem{Render: e.Render}
}

func (e *BoardEditor) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 620), imgui.CondOnce)
	if !imgui.BeginV("Board", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	for i, c := range board.Colors {
		if i > 0 {
			imgui.SameLine()
		}
		label := c.String()
		if c == e.Paint {
			label = "[" + label + "]"
		}
		pushButtonColor(swatches[c])
		if imgui.Button(label) {
			e.Paint = c
		}
		imgui.PopStyleColor()
	}

	imgui.Checkbox("Inspect tiles", &e.Inspect)
	if imgui.Button("New piece") {
		e.World.Respawn()
	}
	imgui.SameLine()
	if imgui.Button("Inspect piece") {
		if id, ok := pieceEntity(e.World.Storage); ok {
			e.Inspector.Select(id)
		}
	}
	imgui.SameLine()
	if imgui.Button("Clear") {
		e.World.ClearBoard()
	}
	imgui.SameLine()
	if imgui.Button("Redraw") {
		e.World.RequestRedraw(tetrino.RedrawAll())
	}

	imgui.Text(fmt.Sprintf("Occupied: %d / %d", e.World.Board().Occupied(), board.Size))
	imgui.Separator()

	b := e.World.Board()
	for y := board.Height - 1; y >= 0; y-- {
		for x := range board.Width {
			if x > 0 {
				imgui.SameLine()
			}
			swatch := emptySwatch
			if c, ok := b.Get(x, y).Color(); ok {
				swatch = swatches[c]
			}
			pushButtonColor(swatch)
			if imgui.ButtonV(fmt.Sprintf("##cell%d.%d", x, y), imgui.NewVec2(18, 18)) {
				e.Click(x, y)
			}
			imgui.PopStyleColor()
		}
	}
}

// Click toggles the cell between empty and the paint color, or selects its tile when
// inspecting.
func (e *BoardEditor) Click(x, y int) {
	if e.Inspect {
		tiles := e.World.RenderTree()
		if idx := board.Index(x, y); idx < len(tiles) {
			e.Inspector.Select(tiles[idx])
		}
		return
	}

	cell := board.Filled(e.Paint)
	if !e.World.Board().Get(x, y).IsEmpty() {
		cell = board.Empty
	}
	e.World.SetCell(x, y, cell)
}

func pieceEntity(storage *ecs.Storage) (ecs.EntityId, bool) {
	view := ecs.NewView[struct {
		ecs.EntityId
		*tetrino.Tetrino
	}](storage)
	for item := range view.Iter() {
		return item.EntityId, true
	}
	return 0, false
}

// pushButtonColor is undone by one PopStyleColor.
func pushButtonColor(c imgui.Vec4) {
	imgui.PushStyleColorVec4(imgui.ColButton, c)
}
