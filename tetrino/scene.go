package tetrino

import (
	"cmp"
	"slices"

	"github.com/plus3/tetrino/ecs"
	"github.com/plus3/tetrino/texture"
)

// Camera looks at (X, Y) in world space. Scale is screen pixels per world unit.
type Camera struct {
	X, Y  float32
	Scale float32
}

// DefaultCamera is centred on the board.
func DefaultCamera() Camera {
	return Camera{Scale: 1}
}

// WorldToScreen maps a world point to screen coordinates for a screen of w by h. Screen y
// grows downwards.
func (c Camera) WorldToScreen(wx, wy float32, w, h int) (sx, sy float32) {
	scale := c.Scale
	if scale == 0 {
		scale = 1
	}
	sx = float32(w)/2 + (wx-c.X)*scale
	sy = float32(h)/2 - (wy-c.Y)*scale
	return sx, sy
}

// DrawItem is one sprite resolved to world space.
type DrawItem struct {
	Entity  ecs.EntityId
	X, Y, Z float32
	Texture texture.Handle
	Size    float32
}

// SpriteCollector resolves every sprite to a world position for the renderers.
type SpriteCollector struct {
	sprites *ecs.View[struct {
		ecs.EntityId
		*Transform
		*Sprite
		Parent *ChildOf `ecs:"optional"`
	}]
	transforms *ecs.View[struct{ *Transform }]
}

func NewSpriteCollector(storage *ecs.Storage) *SpriteCollector {
	return &SpriteCollector{
		sprites: ecs.NewView[struct {
			ecs.EntityId
			*Transform
			*Sprite
			Parent *ChildOf `ecs:"optional"`
		}](storage),
		transforms: ecs.NewView[struct{ *Transform }](storage),
	}
}

// Collect appends all sprites to dst ordered by Z, lowest first, and returns it. Sprites whose
// parent has no transform are placed as if the parent were at the origin. Sprites without a
// texture are skipped.
func (c *SpriteCollector) Collect(dst []DrawItem) []DrawItem {
	start := len(dst)
	for item := range c.sprites.Iter() {
		if item.Sprite.Texture == texture.None {
			continue
		}

		d := DrawItem{
			Entity:  item.EntityId,
			X:       item.Transform.X,
			Y:       item.Transform.Y,
			Z:       item.Transform.Z,
			Texture: item.Sprite.Texture,
			Size:    item.Sprite.Size,
		}
		if item.Parent != nil {
			if parent := c.transforms.Get(item.Parent.Parent); parent != nil {
				d.X += parent.Transform.X
				d.Y += parent.Transform.Y
				d.Z += parent.Transform.Z
			}
		}
		dst = append(dst, d)
	}

	slices.SortStableFunc(dst[start:], func(a, b DrawItem) int {
		if order := cmp.Compare(a.Z, b.Z); order != 0 {
			return order
		}
		return cmp.Compare(a.Entity, b.Entity)
	})
	return dst
}
