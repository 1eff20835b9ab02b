package termrender

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tetrino/board"
	"github.com/plus3/tetrino/tetrino"
	"github.com/plus3/tetrino/texture"
)

// Colors resolves texture handles.
type Colors interface {
	Color(texture.Handle) (tcell.Color, bool)
}

// Renderer maps world positions onto a board-sized character grid centred on the screen.
type Renderer struct {
	Colors   Colors
	TileSize float32
}

// Cell returns the top-left screen column and row of the two-column block for a sprite
// centred on the world point (x, y): the board cell whose centre is nearest. ok is false when
// that cell is off the board.
func (r *Renderer) Cell(x, y float32, screenW, screenH int) (col, row int, ok bool) {
	ox, oy := tetrino.BoardOrigin(r.TileSize)
	gx := int(math.Round(float64((x - ox) / r.TileSize)))
	gy := int(math.Round(float64((y - oy) / r.TileSize)))
	if !board.InBounds(gx, gy) {
		return 0, 0, false
	}

	left := (screenW - board.Width*2) / 2
	top := (screenH - board.Height) / 2
	return left + gx*2, top + (board.Height - 1 - gy), true
}

// Draw paints items in order, so later items cover earlier ones.
func (r *Renderer) Draw(screen tcell.Screen, items []tetrino.DrawItem) {
	screen.Clear()
	w, h := screen.Size()

	for _, item := range items {
		c, ok := r.Colors.Color(item.Texture)
		if !ok {
			continue
		}
		col, row, ok := r.Cell(item.X, item.Y, w, h)
		if !ok {
			continue
		}
		style := tcell.StyleDefault.Foreground(c).Background(c)
		screen.SetContent(col, row, '█', nil, style)
		screen.SetContent(col+1, row, '█', nil, style)
	}

	drawText(screen, 0, h-1, "n: new piece  q: quit", tcell.StyleDefault.Foreground(tcell.ColorGray))
	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
