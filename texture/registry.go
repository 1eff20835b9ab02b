// Package texture binds every cell state of the board to a visual asset handle.
//
// Handles are opaque numbers handed out by a Loader. Each front-end supplies its own Loader
// and keeps the real asset (an image, a terminal color) on its side of the handle.
package texture

import (
	"fmt"

	"github.com/plus3/tetrino/board"
)

// Handle identifies a loaded asset. None is never returned by a successful load and stands
// for "nothing to show yet".
type Handle uint32

const None Handle = 0

// Loader resolves an asset path to a handle.
type Loader interface {
	Load(path string) (Handle, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (Handle, error)

func (f LoaderFunc) Load(path string) (Handle, error) { return f(path) }

// Registry maps cell states to handles. It is immutable once Load returns.
type Registry struct {
	background Handle
	colors     [len(board.Colors)]Handle
}

// Load asks loader for all seven assets named by paths. It fails on the first asset that
// cannot be loaded.
func Load(loader Loader, paths Paths) (*Registry, error) {
	if err := paths.Validate(); err != nil {
		return nil, err
	}

	r := &Registry{}
	for _, entry := range paths.Entries() {
		handle, err := loader.Load(entry.Path)
		if err != nil {
			return nil, fmt.Errorf("load %s texture %q: %w", entry.Tag, entry.Path, err)
		}
		if handle == None {
			return nil, fmt.Errorf("load %s texture %q: loader returned no handle", entry.Tag, entry.Path)
		}

		if color, ok := entry.Cell.Color(); ok {
			r.colors[color] = handle
		} else {
			r.background = handle
		}
	}
	return r, nil
}

// Lookup returns the handle for a cell: the background for Empty, the color tile otherwise.
func (r *Registry) Lookup(c board.Cell) Handle {
	if color, ok := c.Color(); ok {
		return r.LookupColor(color)
	}
	return r.background
}

// LookupColor returns the tile handle for color. An undeclared color panics.
func (r *Registry) LookupColor(c board.Color) Handle {
	if !c.Valid() {
		panic(fmt.Sprintf("texture: no tile for %v", c))
	}
	return r.colors[c]
}

func (r *Registry) Background() Handle {
	return r.background
}

// Handles returns every bound handle, background first then colors in board.Colors order.
func (r *Registry) Handles() []Handle {
	return append([]Handle{r.background}, r.colors[:]...)
}
