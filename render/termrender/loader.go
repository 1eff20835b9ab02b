// Package termrender draws a tetrino.World in a terminal with tcell. Each texture becomes a
// single color and each board cell two character columns.
package termrender

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tetrino/texture"
)

// ColorLoader is a texture.Loader that reduces every image to its average color.
type ColorLoader struct {
	Root string

	colors []tcell.Color
	byPath map[string]texture.Handle
}

func NewColorLoader(root string) *ColorLoader {
	return &ColorLoader{Root: root, byPath: map[string]texture.Handle{}}
}

func (l *ColorLoader) Load(path string) (texture.Handle, error) {
	if h, ok := l.byPath[path]; ok {
		return h, nil
	}

	file, err := os.Open(filepath.Join(l.Root, path))
	if err != nil {
		return texture.None, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return texture.None, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return l.add(path, AverageColor(img)), nil
}

func (l *ColorLoader) add(path string, c tcell.Color) texture.Handle {
	l.colors = append(l.colors, c)
	h := texture.Handle(len(l.colors))
	l.byPath[path] = h
	return h
}

// Color returns the color behind h. None and unknown handles report false.
func (l *ColorLoader) Color(h texture.Handle) (tcell.Color, bool) {
	if h == texture.None || int(h) > len(l.colors) {
		return tcell.ColorDefault, false
	}
	return l.colors[h-1], true
}

// NewPaletteLoader returns a loader that needs no image files: every path in paths gets a
// fixed terminal color for its tag, and any other path fails to load.
func NewPaletteLoader(paths texture.Paths) *ColorLoader {
	palette := map[string]tcell.Color{
		"background": tcell.NewRGBColor(0x30, 0x30, 0x38),
		"blue":       tcell.NewRGBColor(0x3b, 0x82, 0xf6),
		"green":      tcell.NewRGBColor(0x22, 0xc5, 0x5e),
		"orange":     tcell.NewRGBColor(0xf9, 0x73, 0x16),
		"pink":       tcell.NewRGBColor(0xec, 0x48, 0x99),
		"red":        tcell.NewRGBColor(0xef, 0x44, 0x44),
		"yellow":     tcell.NewRGBColor(0xea, 0xb3, 0x08),
	}

	l := NewColorLoader("")
	for _, e := range paths.Entries() {
		if _, ok := l.byPath[e.Path]; !ok {
			l.add(e.Path, palette[e.Tag])
		}
	}
	return l
}

// AverageColor is the mean of all opaque-weighted pixels of img.
func AverageColor(img image.Image) tcell.Color {
	var r, g, b, a uint64
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pr, pg, pb, pa := img.At(x, y).RGBA()
			r += uint64(pr)
			g += uint64(pg)
			b += uint64(pb)
			a += uint64(pa)
		}
	}
	if a == 0 {
		return tcell.ColorBlack
	}
	// Channels are alpha-premultiplied, so dividing by total alpha un-premultiplies the mean.
	scale := func(c uint64) int32 { return int32(c * 255 / a) }
	return tcell.NewRGBColor(scale(r), scale(g), scale(b))
}
