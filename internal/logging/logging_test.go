package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	assert.True(t, SetLevel("debug"))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	assert.True(t, SetLevel(" WARN "))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	assert.False(t, SetLevel("chatty"))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	assert.False(t, SetLevel(""))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestComponentTagsEntries(t *testing.T) {
	prev := *GetDefaultLogger()
	t.Cleanup(func() { SetDefaultLogger(prev) })

	var buf bytes.Buffer
	SetDefaultLogger(New(&buf))

	l := Component("engine")
	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "engine", entry["component"])
	assert.Equal(t, "hello", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewConsoleIsPlainText(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsole(&buf)
	l.Warn().Str("stage", "pitch").Msg("frame passed through")

	out := buf.String()
	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, "frame passed through")
	assert.Contains(t, out, "stage=pitch")
	assert.NotContains(t, out, "\x1b[")
}
