package tetrino

import (
	"github.com/plus3/tetrino/board"
	"github.com/plus3/tetrino/ecs"
	"github.com/plus3/tetrino/texture"
	"go.uber.org/zap"
)

// Options configures NewWorld. Zero fields take defaults.
type Options struct {
	Settings Settings
	// Random picks piece colors. Nil means every piece is the first color.
	Random IndexSource
	Logger *zap.Logger
	// OnSpawn is called with the color of every new piece.
	OnSpawn func(board.Color)
	// Components registers extra component types, such as debug UI windows.
	Components func(*ecs.ComponentRegistry)
}

// World is a storage holding the board, the render tree and the piece, plus the scheduler
// that runs their systems. Front-ends call Step once per frame and draw what Sprites yields.
type World struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	redraws  *ecs.Events[RedrawGrid]
	respawns *ecs.Events[RespawnRequest]
	board    *ecs.Singleton[board.Board]
	settings *ecs.Singleton[Settings]
	sprites  *SpriteCollector
	logger   *zap.Logger
}

// NewWorld sets up the storage and registers the systems. Nothing runs until the first Step.
func NewWorld(registry *texture.Registry, opts Options) *World {
	if opts.Settings.TileSize <= 0 || opts.Settings.FallRate <= 0 {
		defaults := DefaultSettings()
		if opts.Settings.TileSize <= 0 {
			opts.Settings.TileSize = defaults.TileSize
		}
		if opts.Settings.FallRate <= 0 {
			opts.Settings.FallRate = defaults.FallRate
		}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	components := ecs.NewComponentRegistry()
	RegisterComponents(components)
	if opts.Components != nil {
		opts.Components(components)
	}
	storage := ecs.NewStorage(components)

	storage.AddSingleton(registry)
	w := &World{
		Storage:   storage,
		Scheduler: ecs.NewScheduler(storage),
		redraws:   ecs.NewEvents[RedrawGrid](storage),
		respawns:  ecs.NewEvents[RespawnRequest](storage),
		board:     ecs.NewSingleton(storage, board.New()),
		settings:  ecs.NewSingleton(storage, opts.Settings),
		sprites:   NewSpriteCollector(storage),
		logger:    opts.Logger,
	}
	ecs.NewSingleton(storage, Random{Source: opts.Random})
	ecs.NewSingleton(storage, DefaultCamera())

	spawner := PieceSpawner{Logger: opts.Logger.Named("piece"), OnSpawn: opts.OnSpawn}

	w.Scheduler.RegisterIn(ecs.Startup, &RenderTreeSystem{})
	w.Scheduler.RegisterIn(ecs.PostStartup, &SpawnSystem{PieceSpawner: spawner})
	w.Scheduler.Register(&RespawnSystem{PieceSpawner: spawner})
	w.Scheduler.Register(&FallSystem{})
	w.Scheduler.Register(NewRedrawSystem(opts.Logger))
	return w
}

// Step runs one frame of dt seconds.
func (w *World) Step(dt float64) {
	w.Scheduler.Once(dt)
}

// Board returns the live board. Use SetCell to change it so the tiles follow.
func (w *World) Board() *board.Board {
	return w.board.Get()
}

// SetCell writes one board cell and requests a redraw of that cell. It reports false when
// (x, y) is off the board.
func (w *World) SetCell(x, y int, c board.Cell) bool {
	if !board.InBounds(x, y) {
		return false
	}
	w.Board().Set(x, y, c)
	w.redraws.Send(RedrawCells(board.Coord{X: uint16(x), Y: uint16(y)}))
	return true
}

// ClearBoard empties the board and requests a full redraw.
func (w *World) ClearBoard() {
	w.Board().Clear()
	w.redraws.Send(RedrawAll())
}

// RequestRedraw queues sig for the next frame.
func (w *World) RequestRedraw(sig RedrawGrid) {
	w.redraws.Send(sig)
}

// Respawn replaces the falling piece on the next frame.
func (w *World) Respawn() {
	w.respawns.Send(RespawnRequest{})
}

func (w *World) Settings() Settings {
	return *w.settings.Get()
}

// Camera returns the camera singleton.
func (w *World) Camera() *Camera {
	var camera *Camera
	w.Storage.ReadSingleton(&camera)
	return camera
}

// Piece returns the falling piece, if any.
func (w *World) Piece() (Tetrino, Transform, bool) {
	view := ecs.NewView[struct {
		*Tetrino
		*Transform
	}](w.Storage)
	for piece := range view.Iter() {
		return *piece.Tetrino, *piece.Transform, true
	}
	return Tetrino{}, Transform{}, false
}

// RenderTree returns the tile ids of the render tree, or nil before the first Step.
func (w *World) RenderTree() []ecs.EntityId {
	view := ecs.NewView[struct{ *GridRender }](w.Storage)
	for grid := range view.Iter() {
		return grid.Tiles
	}
	return nil
}

// Sprites appends every visible sprite to dst in draw order.
func (w *World) Sprites(dst []DrawItem) []DrawItem {
	return w.sprites.Collect(dst)
}

func (w *World) Logger() *zap.Logger {
	return w.logger
}
