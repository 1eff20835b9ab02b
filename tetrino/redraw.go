package tetrino

import (
	"github.com/plus3/tetrino/board"
	"github.com/plus3/tetrino/ecs"
	"github.com/plus3/tetrino/texture"
	"go.uber.org/zap"
)

// Redraw points every tile named by sig at the texture of its board cell and returns how
// many tiles it wrote. Tiles outside the dirty set are not touched. Dirty coordinates that
// are off the board match no tile and are ignored.
func Redraw(sig RedrawGrid, b *board.Board, registry *texture.Registry, tiles []*Sprite) int {
	written := 0
	for i, sprite := range tiles {
		if sprite == nil || i >= board.Size {
			continue
		}
		c := board.CoordOf(i)
		if sig.Dirty.Len() > 0 && !sig.Dirty.Contains(c) {
			continue
		}
		sprite.Texture = registry.Lookup(b.At(i))
		written++
	}
	return written
}

// RedrawSystem applies pending RedrawGrid events in the order they were sent. Events that
// arrive before the render tree exists are dropped.
type RedrawSystem struct {
	Grids    ecs.Query[struct{ *GridRender }]
	Redraws  ecs.Events[RedrawGrid]
	Board    ecs.Singleton[board.Board]
	Textures ecs.Singleton[texture.Registry]

	Logger *zap.Logger

	tiles []*Sprite
}

func NewRedrawSystem(logger *zap.Logger) *RedrawSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedrawSystem{Logger: logger.Named("redraw")}
}

func (s *RedrawSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Redraws.Len() == 0 {
		return
	}

	grid, ok := s.Grids.Single()
	b, registry := s.Board.Get(), s.Textures.Get()
	if !ok || b == nil || registry == nil {
		dropped := 0
		for range s.Redraws.Drain() {
			dropped++
		}
		s.logger().Debug("render tree not ready", zap.Int("dropped", dropped))
		return
	}

	s.tiles = s.tiles[:0]
	for _, id := range grid.Tiles {
		s.tiles = append(s.tiles, ecs.ReadComponent[Sprite](frame.Storage, id))
	}

	for sig := range s.Redraws.Drain() {
		written := Redraw(sig, b, registry, s.tiles)
		s.logger().Debug("redraw",
			zap.Int("dirty", sig.Dirty.Len()),
			zap.Int("written", written),
			zap.Int64("frame", frame.Number),
		)
	}
}

func (s *RedrawSystem) logger() *zap.Logger {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	return s.Logger
}
