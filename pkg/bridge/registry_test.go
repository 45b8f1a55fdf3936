package bridge

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBridge struct {
	BaseSQLBridge
	name string
}

func (f *fakeBridge) Name() string { return f.name }

func (f *fakeBridge) Connect(_ context.Context, cfg Config) error {
	f.Cfg = cfg
	return nil
}

func TestRegistry(t *testing.T) {
	Register("fake", func(logger zerolog.Logger) Bridge {
		return &fakeBridge{name: "fake", BaseSQLBridge: BaseSQLBridge{Logger: logger}}
	})

	t.Run("new returns registered bridge", func(t *testing.T) {
		b, err := New("fake", zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, "fake", b.Name())
	})

	t.Run("is registered", func(t *testing.T) {
		assert.True(t, IsRegistered("fake"))
		assert.False(t, IsRegistered("nope"))
	})

	t.Run("list contains registered names", func(t *testing.T) {
		assert.Contains(t, List(), "fake")
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := New("", zerolog.Nop())
		require.Error(t, err)
	})

	t.Run("unknown name lists the available set", func(t *testing.T) {
		_, err := New("nope", zerolog.Nop())
		require.Error(t, err)

		var unknownErr *UnknownBridgeError
		require.True(t, errors.As(err, &unknownErr))
		assert.Equal(t, "nope", unknownErr.Name)
		assert.Contains(t, unknownErr.Available, "fake")
		assert.Contains(t, err.Error(), `unknown bridge "nope"`)
		assert.Contains(t, err.Error(), "Available bridges:")
	})
}
