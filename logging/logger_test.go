package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONOutputCarriesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: "json", Output: &buf, Level: "debug"}).
		WithComponent("scanner").
		With("root", "content")

	log.Warn(context.Background(), errors.New("permission denied"), "unreadable directory", "dir", "/x")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "unreadable directory", entry["msg"])
	assert.Equal(t, "scanner", entry["component"])
	assert.Equal(t, "permission denied", entry["error"])
	assert.Equal(t, "content", entry["root"])
	assert.Equal(t, "/x", entry["dir"])
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf, Level: "warn"})

	log.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())

	log.Error(context.Background(), nil, "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", ParseLevel("debug").String())
	assert.Equal(t, "INFO", ParseLevel("bogus").String())
	assert.Equal(t, "WARN", ParseLevel("warning").String())
}
