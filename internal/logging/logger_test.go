package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "json", zerolog.InfoLevel)

	log.Debug().Msg("hidden")
	log.Info().Str("isin", "GB00B128DH60").Msg("loaded quote")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "loaded quote", event["message"])
	assert.Equal(t, "GB00B128DH60", event["isin"])
	assert.Equal(t, "info", event["level"])
}

func TestNewInvalidLevel(t *testing.T) {
	_, closer, err := New(Config{Level: "loud"})
	assert.Error(t, err)
	assert.NoError(t, closer.Close())
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytm.log")

	log, closer, err := New(Config{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)
	log.Debug().Msg("written")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"written"`)

	// the file is released, so a second close reports it
	assert.ErrorIs(t, closer.Close(), os.ErrClosed)
}

func TestNewStandardStreams(t *testing.T) {
	for _, output := range []string{"", "stderr", "stdout"} {
		_, closer, err := New(Config{Level: "info", Format: "console", Output: output})
		require.NoError(t, err, output)
		assert.NoError(t, closer.Close(), output)
	}
}
