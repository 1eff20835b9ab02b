// Package board holds the logical playfield: a fixed grid of cells that is the single source
// of truth for which block occupies which position. It knows nothing about rendering.
//
// Coordinates are (x, y) with x in [0, Width) and y in [0, Height); y = 0 is the bottom row.
// The grid is stored row after row in one flat array, so index = y*Width + x.
package board

import "fmt"

const (
	Width  = 10
	Height = 20
	Size   = Width * Height
)

// Board is the playfield. The zero value is an all-Empty board, and boards compare with ==.
//
// Board never notifies anyone when it changes. Code that calls Set must follow up with a
// redraw naming the changed coordinates.
type Board struct {
	cells [Size]Cell
}

// New returns an empty board.
func New() Board {
	return Board{}
}

// InBounds reports whether (x, y) lies on the board.
func InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Index converts (x, y) to a position in the flat cell array. It panics when out of range.
func Index(x, y int) int {
	if !InBounds(x, y) {
		panic(fmt.Sprintf("board: coordinate (%d, %d) outside %dx%d", x, y, Width, Height))
	}
	return y*Width + x
}

// CoordOf is the inverse of Index.
func CoordOf(index int) Coord {
	if index < 0 || index >= Size {
		panic(fmt.Sprintf("board: index %d outside [0, %d)", index, Size))
	}
	return Coord{X: uint16(index % Width), Y: uint16(index / Width)}
}

func (b *Board) Get(x, y int) Cell {
	return b.cells[Index(x, y)]
}

// Set replaces the cell at (x, y) unconditionally.
func (b *Board) Set(x, y int, c Cell) {
	b.cells[Index(x, y)] = c
}

// At returns the cell at a flat index.
func (b *Board) At(index int) Cell {
	return b.cells[index]
}

// Clear empties every cell.
func (b *Board) Clear() {
	b.cells = [Size]Cell{}
}

// Occupied counts non-empty cells.
func (b *Board) Occupied() int {
	n := 0
	for _, c := range b.cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}
