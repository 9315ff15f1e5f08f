package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elimu-hub/pkg/logger"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestNewWithWriter_JSONOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Service: "elimu-hub", Env: "production", Level: "info"}, &buf)

	l.Info().Str("document_id", "doc-1").Msg("extracted")

	line := decodeLine(t, &buf)
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "doc-1", line["document_id"])
	assert.Equal(t, "extracted", line["message"])
	assert.Equal(t, "elimu-hub", line["service"])
	assert.Equal(t, "production", line["env"])
	assert.NotEmpty(t, line["time"])
	assert.NotContains(t, line, "caller")
}

func TestNewWithWriter_DevelopmentIsConsole(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Env: "Development", Level: "debug"}, &buf)

	l.Debug().Msg("template parsed")

	out := buf.String()
	assert.Contains(t, out, "template parsed")
	assert.Contains(t, out, "logger_test.go")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Env: "production", Level: "warn"}, &buf)

	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		" DEBUG ": zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"fatal":   zerolog.FatalLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, logger.ParseLevel(in), in)
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Service: "elimu-hub", Env: "production"}, &buf)

	http := l.Component("http")
	http.Warn().Int("status", 404).Msg("http request")

	line := decodeLine(t, &buf)
	assert.Equal(t, "http", line["component"])
	assert.Equal(t, "elimu-hub", line["service"])
	assert.Equal(t, float64(404), line["status"])
}
