package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Retail-api/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, logger.ParseLevel(in), in)
	}
}

func TestNewWithWriter_JSONConServicio(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf, logger.Config{Level: "warn", Service: "retail-api"})

	l.Info().Msg("descartado por nivel")
	assert.Zero(t, buf.Len())

	l.Warn().Str("tenant_id", "t1").Msg("caja con faltante")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "retail-api", entry["service"])
	assert.Equal(t, "t1", entry["tenant_id"])
	assert.Equal(t, "warn", entry["level"])
}
