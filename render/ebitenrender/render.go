package ebitenrender

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tetrino/tetrino"
	"github.com/plus3/tetrino/texture"
)

// Rect is a screen-space square.
type Rect struct {
	X, Y, Size float32
}

// SpriteRect places a sprite centred on its world position.
func SpriteRect(item tetrino.DrawItem, camera tetrino.Camera, screenW, screenH int) Rect {
	scale := camera.Scale
	if scale == 0 {
		scale = 1
	}
	cx, cy := camera.WorldToScreen(item.X, item.Y, screenW, screenH)
	size := item.Size * scale
	return Rect{X: cx - size/2, Y: cy - size/2, Size: size}
}

// Images resolves texture handles.
type Images interface {
	Image(texture.Handle) *ebiten.Image
}

// SpriteRenderer draws resolved sprites onto a screen.
type SpriteRenderer struct {
	Images     Images
	Background color.Color
}

// Draw clears screen and draws items in order. Items whose texture is not loaded are skipped.
func (r *SpriteRenderer) Draw(screen *ebiten.Image, items []tetrino.DrawItem, camera tetrino.Camera) {
	if r.Background != nil {
		screen.Fill(r.Background)
	}

	bounds := screen.Bounds()
	for _, item := range items {
		img := r.Images.Image(item.Texture)
		if img == nil {
			continue
		}

		rect := SpriteRect(item, camera, bounds.Dx(), bounds.Dy())
		iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
		if iw == 0 || ih == 0 {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(rect.Size)/float64(iw), float64(rect.Size)/float64(ih))
		op.GeoM.Translate(float64(rect.X), float64(rect.Y))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
	}
}
