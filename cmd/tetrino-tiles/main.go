// Command tetrino-tiles writes placeholder tile images for every texture path, so the game
// runs without the art pack.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/plus3/tetrino/config"
	"github.com/plus3/tetrino/logging"
	"github.com/plus3/tetrino/texture"
	"go.uber.org/zap"
)

var tints = map[string]color.RGBA{
	"background": {0x30, 0x30, 0x38, 0xff},
	"blue":       {0x3b, 0x82, 0xf6, 0xff},
	"green":      {0x22, 0xc5, 0x5e, 0xff},
	"orange":     {0xf9, 0x73, 0x16, 0xff},
	"pink":       {0xec, 0x48, 0x99, 0xff},
	"red":        {0xef, 0x44, 0x44, 0xff},
	"yellow":     {0xea, 0xb3, 0x08, 0xff},
}

func main() {
	configPath := flag.String("config", "", "YAML settings file naming the texture paths.")
	out := flag.String("out", "", "Output directory. Defaults to assets.root.")
	size := flag.Int("size", 32, "Tile edge in pixels.")
	force := flag.Bool("force", false, "Overwrite existing images.")
	flag.Parse()

	logger, closeLog, err := logging.Stderr(config.LogConfig{Level: "info"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	root := cfg.Assets.Root
	if *out != "" {
		root = *out
	}

	written, err := WriteTiles(root, cfg.Assets.Paths, *size, *force)
	if err != nil {
		logger.Fatal("write tiles", zap.Error(err))
	}
	logger.Info("done", zap.String("root", root), zap.Int("written", written))
}

// WriteTiles writes one image per distinct path under root and returns how many it wrote.
// Existing files are kept unless force is set.
func WriteTiles(root string, paths texture.Paths, size int, force bool) (int, error) {
	if size < 3 {
		return 0, fmt.Errorf("tile size %d too small", size)
	}

	written := 0
	seen := map[string]bool{}
	for _, e := range paths.Entries() {
		if seen[e.Path] {
			continue
		}
		seen[e.Path] = true

		dst := filepath.Join(root, e.Path)
		if _, err := os.Stat(dst); err == nil && !force {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return written, err
		}
		if err := writePNG(dst, Tile(tints[e.Tag], size)); err != nil {
			return written, fmt.Errorf("write %s tile: %w", e.Tag, err)
		}
		written++
	}
	return written, nil
}

// Tile is a square of tint with a one pixel darker border.
func Tile(tint color.RGBA, size int) *image.RGBA {
	edge := color.RGBA{tint.R / 2, tint.G / 2, tint.B / 2, tint.A}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			if x == 0 || y == 0 || x == size-1 || y == size-1 {
				img.SetRGBA(x, y, edge)
			} else {
				img.SetRGBA(x, y, tint)
			}
		}
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
