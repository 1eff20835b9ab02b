package board

import "fmt"

// Color is one of the fixed block colors.
type Color uint8

const (
	Blue Color = iota
	Green
	Orange
	Pink
	Red
	Yellow
)

// Colors lists every color in declaration order. Blue comes first and is the fallback color.
var Colors = [...]Color{Blue, Green, Orange, Pink, Red, Yellow}

var colorNames = [...]string{"blue", "green", "orange", "pink", "red", "yellow"}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// Valid reports whether c is one of Colors.
func (c Color) Valid() bool {
	return int(c) < len(Colors)
}

// Cell is the content of one board position: Empty or occupied by a block of some color.
// The zero value is Empty.
type Cell uint8

// Empty is the cell with no block in it.
const Empty Cell = 0

// Filled returns the cell occupied by a block of color c.
func Filled(c Color) Cell {
	if !c.Valid() {
		panic(fmt.Sprintf("board: invalid color %d", uint8(c)))
	}
	return Cell(c) + 1
}

func (c Cell) IsEmpty() bool {
	return c == Empty
}

// Color returns the block color, or false for an empty cell.
func (c Cell) Color() (Color, bool) {
	if c == Empty {
		return 0, false
	}
	return Color(c - 1), true
}

func (c Cell) String() string {
	if color, ok := c.Color(); ok {
		return color.String()
	}
	return "empty"
}
