package tetrino_test

import (
	"testing"

	"github.com/plus3/tetrino/board"
	"github.com/plus3/tetrino/ecs"
	"github.com/plus3/tetrino/tetrino"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickColor(t *testing.T) {
	assert.Equal(t, board.Blue, tetrino.PickColor(nil))

	src := &sequence{values: []int{3, 0, 5, 1}}
	var got []board.Color
	for range 4 {
		got = append(got, tetrino.PickColor(src))
	}
	assert.Equal(t, []board.Color{board.Pink, board.Blue, board.Yellow, board.Green}, got)

	assert.Equal(t, board.Blue, tetrino.PickColor(&sequence{values: []int{6}}))
	assert.Equal(t, board.Blue, tetrino.PickColor(&sequence{values: []int{-1}}))
}

func TestPickColorIsDeterministicForASeed(t *testing.T) {
	draw := func(seed uint64) []board.Color {
		src := tetrino.NewRandom(seed)
		colors := make([]board.Color, 32)
		for i := range colors {
			colors[i] = tetrino.PickColor(src)
		}
		return colors
	}

	first := draw(42)
	assert.Equal(t, first, draw(42))

	seen := map[board.Color]bool{}
	for _, c := range first {
		seen[c] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestFallDistance(t *testing.T) {
	settings := tetrino.Settings{TileSize: tileSize, FallRate: 0.2}
	assert.InDelta(t, 0.2*tileSize, tetrino.FallDistance(settings, 1.0), 1e-6)
	assert.InDelta(t, 0.1*tileSize, tetrino.FallDistance(settings, 0.5), 1e-6)
	assert.Zero(t, tetrino.FallDistance(settings, 0))
}

func TestSpawnPiece(t *testing.T) {
	storage := newStorage()
	reg := newRegistry(t)

	cmds := &ecs.Commands{}
	tetrino.SpawnPiece(cmds, board.Orange, reg, tileSize)
	cmds.Flush(storage)

	view := ecs.NewView[struct {
		ecs.EntityId
		*tetrino.Tetrino
		*tetrino.Transform
	}](storage)

	var piece ecs.EntityId
	count := 0
	for item := range view.Iter() {
		count++
		piece = item.EntityId
		assert.Equal(t, board.Orange, item.Color)
		assert.Equal(t, tetrino.Transform{X: 0, Y: tileSize * board.Height / 2, Z: tetrino.LayerTetrino}, *item.Transform)
	}
	require.Equal(t, 1, count)

	children := ecs.NewView[struct {
		*tetrino.ChildOf
		*tetrino.Sprite
	}](storage)
	for child := range children.Iter() {
		assert.Equal(t, piece, child.Parent)
		assert.Equal(t, reg.LookupColor(board.Orange), child.Texture)
	}
}

func TestFallSystem(t *testing.T) {
	storage := newStorage()
	storage.AddSingleton(tetrino.Settings{TileSize: tileSize, FallRate: 0.2})
	piece := storage.Spawn(tetrino.Tetrino{}, tetrino.SpawnPosition(tileSize))
	tile := storage.Spawn(tetrino.Transform{Y: 5})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&tetrino.FallSystem{})

	start := ecs.ReadComponent[tetrino.Transform](storage, piece).Y
	scheduler.Once(1.0)

	assert.InDelta(t, start-0.2*tileSize, ecs.ReadComponent[tetrino.Transform](storage, piece).Y, 1e-4)
	assert.Equal(t, float32(5), ecs.ReadComponent[tetrino.Transform](storage, tile).Y, "only pieces fall")

	for range 100 {
		scheduler.Once(1.0)
	}
	assert.Less(t, ecs.ReadComponent[tetrino.Transform](storage, piece).Y, -tileSize*board.Height/2, "pieces fall past the floor")
}

func TestSpawnPositionIsOneTileAboveTopRow(t *testing.T) {
	_, oy := tetrino.BoardOrigin(tileSize)
	topRow := oy + float32(board.Height-1)*tileSize

	pos := tetrino.SpawnPosition(tileSize)
	assert.Equal(t, float32(0), pos.X)
	assert.Equal(t, topRow+tileSize, pos.Y)
	assert.Equal(t, tetrino.LayerTetrino, pos.Z)
}
