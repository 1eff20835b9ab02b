package texture

import (
	"fmt"

	"github.com/plus3/tetrino/board"
)

// Paths names the asset behind every cell state.
type Paths struct {
	Background string `yaml:"background"`
	Blue       string `yaml:"blue"`
	Green      string `yaml:"green"`
	Orange     string `yaml:"orange"`
	Pink       string `yaml:"pink"`
	Red        string `yaml:"red"`
	Yellow     string `yaml:"yellow"`
}

// Entry is one tag of Paths.
type Entry struct {
	Tag  string
	Cell board.Cell
	Path string
}

// DefaultPaths returns the tile set the game ships with, relative to the asset root.
func DefaultPaths() Paths {
	return Paths{
		Background: "textures/Back tiles/BackTile_06.png",
		Blue:       "textures/Tiles blue/tileBlue_13.png",
		Green:      "textures/Tiles green/tileGreen_13.png",
		Orange:     "textures/Tiles orange/tileOrange_13.png",
		Pink:       "textures/Tiles pink/tilePink_13.png",
		Red:        "textures/Tiles red/tileRed_13.png",
		Yellow:     "textures/Tiles yellow/tileYellow_13.png",
	}
}

// Entries lists the seven tags in load order: background, then board.Colors order.
func (p Paths) Entries() []Entry {
	return []Entry{
		{Tag: "background", Cell: board.Empty, Path: p.Background},
		{Tag: board.Blue.String(), Cell: board.Filled(board.Blue), Path: p.Blue},
		{Tag: board.Green.String(), Cell: board.Filled(board.Green), Path: p.Green},
		{Tag: board.Orange.String(), Cell: board.Filled(board.Orange), Path: p.Orange},
		{Tag: board.Pink.String(), Cell: board.Filled(board.Pink), Path: p.Pink},
		{Tag: board.Red.String(), Cell: board.Filled(board.Red), Path: p.Red},
		{Tag: board.Yellow.String(), Cell: board.Filled(board.Yellow), Path: p.Yellow},
	}
}

// WithDefaults fills empty paths from DefaultPaths.
func (p Paths) WithDefaults() Paths {
	d := DefaultPaths()
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&p.Background, d.Background)
	fill(&p.Blue, d.Blue)
	fill(&p.Green, d.Green)
	fill(&p.Orange, d.Orange)
	fill(&p.Pink, d.Pink)
	fill(&p.Red, d.Red)
	fill(&p.Yellow, d.Yellow)
	return p
}

// Validate rejects paths with a missing entry.
func (p Paths) Validate() error {
	for _, e := range p.Entries() {
		if e.Path == "" {
			return fmt.Errorf("texture path for %s is empty", e.Tag)
		}
	}
	return nil
}
