package tetrino

import (
	"github.com/plus3/tetrino/board"
	"github.com/plus3/tetrino/ecs"
	"github.com/plus3/tetrino/texture"
)

// BoardOrigin is the world position of cell (0, 0) for a board centred on the origin.
func BoardOrigin(tileSize float32) (x, y float32) {
	return -tileSize * board.Width / 2, -tileSize * board.Height / 2
}

// BuildRenderTree spawns the GridRender root at the board origin and one background tile per
// board cell beneath it. It returns the root id.
func BuildRenderTree(storage *ecs.Storage, registry *texture.Registry, tileSize float32) ecs.EntityId {
	ox, oy := BoardOrigin(tileSize)
	root := storage.Spawn(
		Transform{X: ox, Y: oy, Z: LayerBackground},
		GridRender{},
	)

	tiles := make([]ecs.EntityId, 0, board.Size)
	for y := range board.Height {
		for x := range board.Width {
			tiles = append(tiles, storage.Spawn(
				Transform{X: float32(x) * tileSize, Y: float32(y) * tileSize},
				Sprite{Texture: registry.Background(), Size: tileSize},
				ChildOf{Parent: root},
			))
		}
	}

	ecs.ReadComponent[GridRender](storage, root).Tiles = tiles
	return root
}

// RenderTreeSystem builds the render tree once and requests the first full redraw.
type RenderTreeSystem struct {
	Textures ecs.Singleton[texture.Registry]
	Settings ecs.Singleton[Settings]
	Redraws  ecs.Events[RedrawGrid]
}

func (s *RenderTreeSystem) Execute(frame *ecs.UpdateFrame) {
	registry := s.Textures.Get()
	settings := s.Settings.Get()
	if registry == nil || settings == nil {
		return
	}

	frame.Commands.DeferWith(func(storage *ecs.Storage) {
		BuildRenderTree(storage, registry, settings.TileSize)
		s.Redraws.Send(RedrawAll())
	})
}
