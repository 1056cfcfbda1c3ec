package odorsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level slog.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger_Fields(t *testing.T) {
	ctx := context.Background()
	l, buf := newBufferLogger(slog.LevelDebug)

	l.WithRun("r1").WithGeneration(2).LogCandidate(ctx, Recipe{Label: "Generation 2, candidate 1 of 4", Trial: 8, Generation: 2}, "[50.00]")
	l.LogMeasurement(ctx, 8, 0.5, true, nil)
	l.LogMeasurement(ctx, 9, 0.7, false, nil)
	l.LogMeasurement(ctx, 10, 0, false, errors.New("bad"))
	l.LogFinal(ctx, Recipe{Trial: 8}, 0.5, 12, time.Minute)
	l.LogFallback(ctx, 1, 3)
	l.LogResume(ctx, "a.journal", 5, nil)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 7)

	assert.Equal(t, "candidate ready", lines[0]["msg"])
	assert.Equal(t, "r1", lines[0]["run"])
	assert.Equal(t, float64(2), lines[0]["generation"])
	assert.Equal(t, "[50.00]", lines[0]["vector"])

	assert.Equal(t, "population improved", lines[1]["msg"])
	assert.Equal(t, "INFO", lines[1]["level"])
	assert.Equal(t, "measurement recorded", lines[2]["msg"])
	assert.Equal(t, "ERROR", lines[3]["level"])
	assert.Equal(t, "bad", lines[3]["error"])
	assert.Equal(t, "search finished", lines[4]["msg"])
	assert.Equal(t, float64(12), lines[4]["trials"])
	assert.Equal(t, "WARN", lines[5]["level"])
	assert.Equal(t, float64(5), lines[6]["entries_replayed"])
}

func TestLogger_Level(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelInfo)

	l.LogCandidate(context.Background(), Recipe{}, "")
	assert.Empty(t, buf.String())

	l.LogResume(context.Background(), "a.journal", 0, errors.New("boom"))
	assert.Contains(t, buf.String(), "journal replay failed")
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}
