// Package tetrino wires the board, the texture registry and the ECS together: it builds the
// render tree of tile sprites, keeps it in sync with the board through RedrawGrid events and
// drives the falling piece.
package tetrino

import (
	"github.com/plus3/tetrino/board"
	"github.com/plus3/tetrino/ecs"
	"github.com/plus3/tetrino/texture"
)

// Draw layers, lowest first.
const (
	LayerBackground float32 = 0
	LayerTetrino    float32 = 0.2
	LayerForeground float32 = 0.4
)

// Transform is a position in world space, or relative to the parent for entities with ChildOf.
// Y grows upwards.
type Transform struct {
	X, Y, Z float32
}

// Sprite shows a square texture centred on the entity's transform.
type Sprite struct {
	Texture texture.Handle
	Size    float32
}

type ChildOf struct {
	Parent ecs.EntityId
}

// GridRender is the root of the render tree. Tiles[i] shows the board cell board.CoordOf(i).
type GridRender struct {
	Tiles []ecs.EntityId
}

// Tetrino marks the falling piece.
type Tetrino struct {
	Color board.Color
}

// Settings are the tunables shared by the piece and render-tree systems.
type Settings struct {
	// TileSize is the edge length of one board cell in world units.
	TileSize float32
	// FallRate is the piece speed in tiles per second.
	FallRate float32
}

// DefaultSettings matches the stock tile art.
func DefaultSettings() Settings {
	return Settings{TileSize: 32, FallRate: 0.2}
}

// RedrawGrid asks for board cells to be re-rendered. A nil or empty Dirty set means all of them.
// Applying the same event twice is harmless.
type RedrawGrid struct {
	Dirty board.CoordSet
}

// RedrawAll is the full-board redraw.
func RedrawAll() RedrawGrid {
	return RedrawGrid{}
}

// RedrawCells redraws the given coordinates only.
func RedrawCells(coords ...board.Coord) RedrawGrid {
	return RedrawGrid{Dirty: board.NewCoordSet(coords...)}
}

// RespawnRequest replaces the falling piece with a fresh one.
type RespawnRequest struct{}

// RegisterComponents adds every component type of this package to registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[ChildOf](registry)
	ecs.RegisterComponent[GridRender](registry)
	ecs.RegisterComponent[Tetrino](registry)
}
