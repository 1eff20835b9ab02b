// Package ebitenrender draws a tetrino.World in an ebiten window.
package ebitenrender

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tetrino/texture"
)

// ImageLoader is a texture.Loader backed by ebiten images. Handles index into its image list;
// loading the same path twice returns the same handle.
type ImageLoader struct {
	Root string

	images  []*ebiten.Image
	byPath  map[string]texture.Handle
	convert func(image.Image) *ebiten.Image
}

func NewImageLoader(root string) *ImageLoader {
	return &ImageLoader{
		Root:    root,
		byPath:  map[string]texture.Handle{},
		convert: ebiten.NewImageFromImage,
	}
}

func (l *ImageLoader) Load(path string) (texture.Handle, error) {
	if h, ok := l.byPath[path]; ok {
		return h, nil
	}

	img, err := DecodeFile(filepath.Join(l.Root, path))
	if err != nil {
		return texture.None, err
	}

	l.images = append(l.images, l.convert(img))
	h := texture.Handle(len(l.images))
	l.byPath[path] = h
	return h, nil
}

// Image returns the image behind h, or nil for None and unknown handles.
func (l *ImageLoader) Image(h texture.Handle) *ebiten.Image {
	if h == texture.None || int(h) > len(l.images) {
		return nil
	}
	return l.images[h-1]
}

// DecodeFile reads an image file.
func DecodeFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}
