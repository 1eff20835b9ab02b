package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogPath(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		config string
		want   string
	}{
		{"config file wins over default", "", "from-config.log", "from-config.log"},
		{"flag wins over config", "from-flag.log", "from-config.log", "from-flag.log"},
		{"default when both empty", "", "", defaultLogFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logPath(tt.flag, tt.config))
		})
	}
}

func TestQuitErr(t *testing.T) {
	assert.NoError(t, quitErr(nil))
	assert.NoError(t, quitErr(context.Canceled))
	assert.NoError(t, quitErr(fmt.Errorf("run: %w", context.Canceled)))

	failure := errors.New("screen lost")
	assert.ErrorIs(t, quitErr(failure), failure)
}
