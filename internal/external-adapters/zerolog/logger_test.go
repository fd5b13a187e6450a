package zerolog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/footprint/internal/domain/entities"
	"github.com/ochairo/footprint/internal/domain/interfaces"
)

func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Out: &buf})
	require.NoError(t, err)

	var _ interfaces.Logger = logger
	logger.Warn("Foreign composition cache",
		interfaces.F("path", "/p/BuildReports/composition_cache.json"),
		interfaces.F("records", 3),
		interfaces.F("kind", entities.KindDirectory),
		interfaces.Err(errors.New("project mismatch")))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "Foreign composition cache", line["message"])
	assert.Equal(t, float64(3), line["records"])
	assert.Equal(t, "directory", line["kind"])
	assert.Equal(t, "project mismatch", line["error"])
	assert.Contains(t, line, "time")
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "WARN", Format: "json", Out: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Error("shown")

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Out: &buf})
	require.NoError(t, err)

	logger.Info("Built composition breakdown", interfaces.F("source", entities.SourceContainer))

	assert.Contains(t, buf.String(), "Built composition breakdown")
	assert.Contains(t, buf.String(), "container")
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.ErrorContains(t, err, "invalid log level")

	_, err = New(Options{Format: "xml"})
	assert.ErrorContains(t, err, "unknown log format")
}
