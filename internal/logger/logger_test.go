package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	t.Run("sets debug level", func(t *testing.T) {
		SetLevel("debug")
		require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	})

	t.Run("sets warn level case-insensitively", func(t *testing.T) {
		SetLevel("WARN")
		require.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	})

	t.Run("sets error level", func(t *testing.T) {
		SetLevel("error")
		require.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
	})

	t.Run("disables logging", func(t *testing.T) {
		SetLevel("disabled")
		require.Equal(t, zerolog.Disabled, zerolog.GlobalLevel())
	})

	t.Run("defaults to info for unknown level", func(t *testing.T) {
		SetLevel("unknown")
		require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})

	SetLevel("info")
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	Log.Info().Str("key", "value").Msg("test message")
	require.Contains(t, buf.String(), "test message")
	require.Contains(t, buf.String(), "value")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	log := Component("store")
	log.Info().Msg("loaded")
	require.Contains(t, buf.String(), "store")
}

func TestConfigure(t *testing.T) {
	Configure("debug", "json")
	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	require.NotNil(t, Log)

	Configure("info", "console")
	require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
