package config

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentConfigTracksLoad(t *testing.T) {
	ResetCurrentConfig()
	assert.Nil(t, GetCurrentConfig())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Same(t, cfg, GetCurrentConfig())

	ResetCurrentConfig()
	assert.Nil(t, GetCurrentConfig())
}

func TestLoggerRoundTrip(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := zerolog.New(buf)

	ctx := WithLogger(context.Background(), logger)
	got := GetLogger(ctx)

	got.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestGetLoggerFallsBackToNop(t *testing.T) {
	got := GetLogger(context.Background())
	assert.Equal(t, zerolog.Disabled, got.GetLevel())
}
