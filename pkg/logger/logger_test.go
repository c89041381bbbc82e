package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"off", zerolog.Disabled},
		{"未知", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestOptimizerLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewOptimizerLoggerTo(&buf)

	l.StartRun("run-1", 25, 42, 20)
	l.EarlyStop("run-1", 17, "stagnation", 312.5)
	l.RunComplete("run-1", 150*time.Millisecond, 312.5, 17)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var start map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &start))
	assert.Equal(t, "optimizer", start["component"])
	assert.Equal(t, "run-1", start["run_id"])
	assert.Equal(t, float64(25), start["nurses"])

	var stop map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &stop))
	assert.Equal(t, "stagnation", stop["reason"])
	assert.Equal(t, float64(17), stop["generation"])
}

func TestWithContext_RequestID(t *testing.T) {
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-42")
	l := WithContext(ctx)

	var buf bytes.Buffer
	out := l.Output(&buf)
	out.Info().Msg("x")
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
}
