package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/icdmap/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.DebugLevel))

	logging.Default().Debug().Msg("debug message")
	logging.Default().Info().Msg("info message")
	logging.FromContext(context.Background()).Warn().Msg("warning message")

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warning message")
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithOperation(ctx, "load")
	ctx = logging.WithSource(ctx, "models/iris")

	logging.FromContext(ctx).Info().Msg("test message")

	testLogger.AssertContains(t, `"operation":"load"`)
	testLogger.AssertContains(t, `"source":"models/iris"`)
	testLogger.AssertContains(t, "test message")
}

func TestFromContextDefaults(t *testing.T) {
	//nolint:staticcheck // nil context is accepted deliberately
	assert.Equal(t, logging.Default(), logging.FromContext(nil))
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logging.ParseLevel(tt.in))
		})
	}
}

func TestNewLoggerFromConfigFileOutput(t *testing.T) {
	oldLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(oldLevel) })

	path := filepath.Join(t.TempDir(), "icdmap.log")
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:  "warn",
		Format: "json",
		Output: path,
	})

	logger.Info().Msg("hidden")
	logger.Warn().Str("component", "rotator").Msg("shown")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.False(t, strings.Contains(out, "hidden"))
	assert.Contains(t, out, `"component":"rotator"`)
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)
	tl.Info().Msg("first")
	tl.Info().Msg("second")

	assert.Len(t, tl.Lines(), 2)
	tl.AssertNotContains(t, "third")
}
