package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw      string
		expected zerolog.Level
		ok       bool
	}{
		{"trace", zerolog.TraceLevel, true},
		{"DEBUG", zerolog.DebugLevel, true},
		{" info ", zerolog.InfoLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"error", zerolog.ErrorLevel, true},
		{"off", zerolog.Disabled, true},
		{"", zerolog.InfoLevel, false},
		{"verbose", zerolog.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			lvl, ok := ParseLevel(tt.raw)
			assert.Equal(t, tt.expected, lvl)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

// Testing InitTo installs the global logger with the app field and level filter
func TestInit(t *testing.T) {
	var buf bytes.Buffer
	origGlobal := log.Logger
	defer func() { log.Logger = origGlobal }()

	logger := InitTo(&buf, "toolkit-test", "warn")

	logger.Info().Msg("hidden")
	log.Warn().Msg("visible")

	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "toolkit-test")
}
