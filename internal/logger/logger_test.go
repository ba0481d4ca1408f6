package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProdLogsJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("prod", false, &buf)

	log.Debug("hidden")
	log.Info("visible", "id", 7)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "visible", line["msg"])
	assert.EqualValues(t, 7, line["id"])
}

func TestProdDebugFlagLowersLevel(t *testing.T) {
	var buf bytes.Buffer
	New("prod", true, &buf).Debug("shown")

	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestDevLogsText(t *testing.T) {
	var buf bytes.Buffer
	New("dev", false, &buf).Debug("hello", "k", "v")

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "k=v")
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("nothing")
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
