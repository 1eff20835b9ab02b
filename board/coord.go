package board

import "fmt"

// Coord names one board position. It is not range-checked; see InBounds.
type Coord struct {
	X, Y uint16
}

// Valid reports whether the coordinate lies on the board.
func (c Coord) Valid() bool {
	return InBounds(int(c.X), int(c.Y))
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// CoordSet is a set of coordinates. A nil set is empty and safe to read.
type CoordSet map[Coord]struct{}

// NewCoordSet returns a set holding coords.
func NewCoordSet(coords ...Coord) CoordSet {
	set := make(CoordSet, len(coords))
	for _, c := range coords {
		set[c] = struct{}{}
	}
	return set
}

func (s CoordSet) Add(c Coord) {
	s[c] = struct{}{}
}

func (s CoordSet) Contains(c Coord) bool {
	_, ok := s[c]
	return ok
}

func (s CoordSet) Len() int {
	return len(s)
}
