package termrender

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/plus3/tetrino/board"
	"github.com/plus3/tetrino/tetrino"
	"github.com/plus3/tetrino/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	img.Set(1, 0, color.RGBA{B: 100, A: 255})
	assert.Equal(t, tcell.NewRGBColor(100, 0, 50), AverageColor(img))

	assert.Equal(t, tcell.ColorBlack, AverageColor(image.NewRGBA(image.Rect(0, 0, 2, 2))))
}

func TestColorLoader(t *testing.T) {
	root := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	f, err := os.Create(filepath.Join(root, "green.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	loader := NewColorLoader(root)
	h, err := loader.Load("green.png")
	require.NoError(t, err)

	again, err := loader.Load("green.png")
	require.NoError(t, err)
	assert.Equal(t, h, again)

	c, ok := loader.Color(h)
	assert.True(t, ok)
	assert.Equal(t, tcell.NewRGBColor(0, 255, 0), c)

	_, err = loader.Load("absent.png")
	assert.Error(t, err)
	_, ok = loader.Color(texture.None)
	assert.False(t, ok)
}

func TestPaletteLoaderServesEveryTag(t *testing.T) {
	paths := texture.DefaultPaths()
	loader := NewPaletteLoader(paths)

	reg, err := texture.Load(loader, paths)
	require.NoError(t, err)

	for _, e := range paths.Entries() {
		_, ok := loader.Color(reg.Lookup(e.Cell))
		assert.True(t, ok, e.Tag)
	}
	_, err = loader.Load("elsewhere.png")
	assert.Error(t, err)
}

func TestRendererCell(t *testing.T) {
	r := &Renderer{TileSize: 32}
	ox, oy := tetrino.BoardOrigin(32)

	col, row, ok := r.Cell(ox, oy, 40, 30)
	require.True(t, ok)
	assert.Equal(t, 10, col)
	assert.Equal(t, 5+board.Height-1, row)

	col, row, ok = r.Cell(ox+9*32+5, oy+19*32+5, 40, 30)
	require.True(t, ok)
	assert.Equal(t, 10+18, col)
	assert.Equal(t, 5, row)

	_, _, ok = r.Cell(0, 32*board.Height/2, 40, 30)
	assert.False(t, ok, "spawn point is one tile above the top row")
}

func TestRendererCellUsesNearestTile(t *testing.T) {
	r := &Renderer{TileSize: 32}
	ox, oy := tetrino.BoardOrigin(32)
	top := oy + 19*32

	_, _, ok := r.Cell(ox, top+0.6*32, 40, 30)
	assert.False(t, ok, "a sprite mostly above the board is not drawn in the top row")

	_, row, ok := r.Cell(ox, top+0.4*32, 40, 30)
	require.True(t, ok)
	assert.Equal(t, 5, row)

	col, _, ok := r.Cell(ox+2*32-0.4*32, oy, 40, 30)
	require.True(t, ok)
	assert.Equal(t, 10+2*2, col)
}

func newTestWorld(t *testing.T) (*tetrino.World, *ColorLoader, *texture.Registry) {
	t.Helper()
	loader := NewPaletteLoader(texture.DefaultPaths())
	reg, err := texture.Load(loader, texture.DefaultPaths())
	require.NoError(t, err)
	return tetrino.NewWorld(reg, tetrino.Options{}), loader, reg
}

func TestRendererDrawsBoard(t *testing.T) {
	world, loader, reg := newTestWorld(t)
	world.Step(0)
	world.SetCell(0, 0, board.Filled(board.Red))
	world.Step(0)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 30)

	r := &Renderer{Colors: loader, TileSize: world.Settings().TileSize}
	r.Draw(screen, world.Sprites(nil))

	red, _ := loader.Color(reg.LookupColor(board.Red))
	bg, _ := loader.Color(reg.Background())

	mainc, _, style, _ := screen.GetContent(10, 5+board.Height-1)
	fg, _, _ := style.Decompose()
	assert.Equal(t, '█', mainc)
	assert.Equal(t, red, fg)

	_, _, style, _ = screen.GetContent(12, 5+board.Height-1)
	fg, _, _ = style.Decompose()
	assert.Equal(t, bg, fg)
}

func TestAppQuitsOnKey(t *testing.T) {
	world, loader, _ := newTestWorld(t)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 30)

	app := &App{
		Screen:   screen,
		World:    world,
		Renderer: &Renderer{Colors: loader, TileSize: world.Settings().TileSize},
		Interval: time.Millisecond,
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		screen.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
		time.Sleep(20 * time.Millisecond)
		screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, app.Run(ctx))

	_, _, ok := world.Piece()
	assert.True(t, ok)
}

func TestToneLength(t *testing.T) {
	for _, c := range board.Colors {
		tone := ToneFor(c)
		buf := make([][2]float64, 512)
		total := 0
		for {
			n, ok := tone.Stream(buf)
			total += n
			for _, s := range buf[:n] {
				assert.LessOrEqual(t, s[0], 0.25)
				assert.GreaterOrEqual(t, s[0], -0.25)
			}
			if !ok {
				break
			}
		}
		assert.Equal(t, sampleRate.N(120*time.Millisecond), total)
	}
	var _ beep.Streamer = &Tone{}
}

func TestChimeWithoutInitIsSilent(t *testing.T) {
	var c Chime
	assert.NotPanics(t, func() {
		c.Play(board.Red)
		c.Close()
	})
}
