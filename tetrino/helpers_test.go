package tetrino_test

import (
	"testing"

	"github.com/plus3/tetrino/texture"
	"github.com/stretchr/testify/require"
)

const tileSize float32 = 32

func newRegistry(t *testing.T) *texture.Registry {
	t.Helper()
	next := texture.Handle(0)
	reg, err := texture.Load(texture.LoaderFunc(func(string) (texture.Handle, error) {
		next++
		return next, nil
	}), texture.DefaultPaths())
	require.NoError(t, err)
	return reg
}

// sequence replays fixed indices.
type sequence struct {
	values []int
	calls  int
}

func (s *sequence) IntN(n int) int {
	v := s.values[s.calls%len(s.values)]
	s.calls++
	return v
}
