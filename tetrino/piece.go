package tetrino

import (
	"math/rand/v2"
	"time"

	"github.com/plus3/tetrino/board"
	"github.com/plus3/tetrino/ecs"
	"github.com/plus3/tetrino/texture"
	"go.uber.org/zap"
)

// IndexSource yields uniform indices in [0, n). *rand.Rand satisfies it.
type IndexSource interface {
	IntN(n int) int
}

// Random holds the generator used for piece colors.
type Random struct {
	Source IndexSource
}

// NewRandom returns a PCG generator. Seed 0 picks a seed from the clock.
func NewRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// PickColor draws a color from src. Without a source, or when the source misbehaves, it
// falls back to the first color.
func PickColor(src IndexSource) board.Color {
	if src == nil {
		return board.Colors[0]
	}
	i := src.IntN(len(board.Colors))
	if i < 0 || i >= len(board.Colors) {
		return board.Colors[0]
	}
	return board.Colors[i]
}

// SpawnPosition is where new pieces appear: horizontally centred, one tile above the top row.
func SpawnPosition(tileSize float32) Transform {
	return Transform{X: 0, Y: tileSize * board.Height / 2, Z: LayerTetrino}
}

// SpawnPiece queues a new piece of color together with the sprite that shows it.
func SpawnPiece(cmds *ecs.Commands, color board.Color, registry *texture.Registry, tileSize float32) {
	handle := registry.LookupColor(color)
	cmds.DeferWith(func(storage *ecs.Storage) {
		piece := storage.Spawn(SpawnPosition(tileSize), Tetrino{Color: color})
		storage.Spawn(
			Transform{},
			Sprite{Texture: handle, Size: tileSize},
			ChildOf{Parent: piece},
		)
	})
}

// PieceSpawner is the state shared by SpawnSystem and RespawnSystem.
type PieceSpawner struct {
	Pieces ecs.Query[struct {
		ecs.EntityId
		*Tetrino
	}]
	Children ecs.Query[struct {
		ecs.EntityId
		*ChildOf
	}]
	Random   ecs.Singleton[Random]
	Textures ecs.Singleton[texture.Registry]
	Settings ecs.Singleton[Settings]

	Logger *zap.Logger
	// OnSpawn, if set, is called with the color of every spawned piece.
	OnSpawn func(board.Color)
}

// replace deletes the current piece with its sprites and queues a new one.
func (p *PieceSpawner) replace(frame *ecs.UpdateFrame) {
	registry, settings := p.Textures.Get(), p.Settings.Get()
	if registry == nil || settings == nil {
		return
	}

	old := map[ecs.EntityId]bool{}
	for piece := range p.Pieces.Iter() {
		old[piece.EntityId] = true
		frame.Commands.Delete(piece.EntityId)
	}
	if len(old) > 0 {
		for child := range p.Children.Iter() {
			if old[child.Parent] {
				frame.Commands.Delete(child.EntityId)
			}
		}
	}

	var src IndexSource
	if random := p.Random.Get(); random != nil {
		src = random.Source
	}
	color := PickColor(src)
	SpawnPiece(frame.Commands, color, registry, settings.TileSize)

	if p.Logger != nil {
		p.Logger.Info("spawned piece", zap.Stringer("color", color), zap.Int("replaced", len(old)))
	}
	if p.OnSpawn != nil {
		p.OnSpawn(color)
	}
}

// SpawnSystem spawns the first piece. Register it in ecs.PostStartup so the render tree exists.
type SpawnSystem struct {
	PieceSpawner
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	s.replace(frame)
}

// RespawnSystem replaces the piece once per frame in which a RespawnRequest arrived.
type RespawnSystem struct {
	PieceSpawner
	Requests ecs.Events[RespawnRequest]
}

func (s *RespawnSystem) Execute(frame *ecs.UpdateFrame) {
	requested := false
	for range s.Requests.Drain() {
		requested = true
	}
	if requested {
		s.replace(frame)
	}
}

// FallDistance is how far a piece drops in dt seconds.
func FallDistance(settings Settings, dt float64) float32 {
	return settings.FallRate * settings.TileSize * float32(dt)
}

// FallSystem moves every piece down at the configured rate. Pieces never stop.
type FallSystem struct {
	Pieces ecs.Query[struct {
		*Tetrino
		*Transform
	}]
	Settings ecs.Singleton[Settings]
}

func (s *FallSystem) Execute(frame *ecs.UpdateFrame) {
	settings := s.Settings.Get()
	if settings == nil {
		return
	}
	dy := FallDistance(*settings, frame.DeltaTime)
	for piece := range s.Pieces.Iter() {
		piece.Transform.Y -= dy
	}
}
