package ebitenrender

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tetrino/tetrino"
	"github.com/plus3/tetrino/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestImageLoader(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "tiles", "a.png"))
	writePNG(t, filepath.Join(root, "tiles", "b.png"))

	converted := 0
	loader := NewImageLoader(root)
	loader.convert = func(image.Image) *ebiten.Image {
		converted++
		return nil
	}

	a, err := loader.Load("tiles/a.png")
	require.NoError(t, err)
	b, err := loader.Load("tiles/b.png")
	require.NoError(t, err)
	again, err := loader.Load("tiles/a.png")
	require.NoError(t, err)

	assert.NotEqual(t, texture.None, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, again)
	assert.Equal(t, 2, converted)

	_, err = loader.Load("tiles/missing.png")
	assert.ErrorContains(t, err, "missing.png")

	assert.Nil(t, loader.Image(texture.None))
	assert.Nil(t, loader.Image(texture.Handle(99)))
}

func TestDecodeFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := DecodeFile(path)
	assert.ErrorContains(t, err, "decode")
}

func TestSpriteRect(t *testing.T) {
	item := tetrino.DrawItem{X: 0, Y: 0, Size: 32}
	rect := SpriteRect(item, tetrino.DefaultCamera(), 640, 480)
	assert.Equal(t, Rect{X: 304, Y: 224, Size: 32}, rect)

	item = tetrino.DrawItem{X: 10, Y: 20, Size: 32}
	rect = SpriteRect(item, tetrino.Camera{Scale: 2}, 640, 480)
	assert.Equal(t, Rect{X: 308, Y: 168, Size: 64}, rect)
}
