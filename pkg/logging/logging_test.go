package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gradesync/pkg/logging"
)

func TestConfigFunctions(t *testing.T) {
	originalLogger := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetDefault(originalLogger)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	t.Run("DefaultConfig returns sensible defaults", func(t *testing.T) {
		cfg := logging.DefaultConfig()
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "auto", cfg.Format)
		assert.Equal(t, "stderr", cfg.Output)
		assert.False(t, cfg.AddCaller)
	})

	t.Run("NewLoggerFromConfig writes json to a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "debug",
			Format: "json",
			Output: path,
			Fields: map[string]any{"course_id": int64(3532173)},
		})
		logger.Info().Msg("fetched submissions")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "fetched submissions")
		assert.Contains(t, string(content), `"course_id":3532173`)
	})

	t.Run("auto format falls back to json for files", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "auto.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{Level: "info", Format: "auto", Output: path})
		logger.Info().Msg("auto")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"message":"auto"`)
	})

	t.Run("console format uses short level names", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "console.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{Level: "info", Format: "console", Output: path, NoColor: true})
		logger.Info().Str("status", "MATCH").Msg("console test")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "console test")
		assert.Contains(t, string(content), "INF")
	})

	t.Run("SetDefault logger filters below level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "warn.log")
		logging.SetDefault(logging.NewLoggerFromConfig(&logging.Config{Level: "warn", Format: "json", Output: path}))
		logger := logging.FromContext(context.Background())

		logger.Debug().Msg("debug message")
		logger.Info().Msg("info message")
		logger.Warn().Msg("warn message")
		logger.Error().Msg("error message")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		output := string(content)
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.Contains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("ConfigFromEnv reads LOG_ variables", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "console")
		t.Setenv("LOG_FIELDS", "env=ci, job = nightly,broken")

		cfg := logging.ConfigFromEnv()
		assert.Equal(t, "debug", cfg.Level)
		assert.Equal(t, "console", cfg.Format)
		assert.Equal(t, map[string]any{"env": "ci", "job": "nightly"}, cfg.Fields)
	})
}

func TestContextFunctions(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithRunID(ctx, "run-1234")
	ctx = logging.WithCourse(ctx, 3532173)
	ctx = logging.WithAssignment(ctx, 38526540)
	ctx = logging.WithOperation(ctx, "compare")

	logging.FromContext(ctx).Info().Msg("comparing")

	assert.Equal(t, "run-1234", logging.RunID(ctx))
	assert.True(t, tl.Contains(`"run_id":"run-1234"`))
	assert.True(t, tl.Contains(`"course_id":3532173`))
	assert.True(t, tl.Contains(`"assignment_id":38526540`))
	assert.True(t, tl.Contains(`"operation":"compare"`))
	assert.Len(t, tl.Lines(), 1)
}

func TestFromContextDefaults(t *testing.T) {
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Equal(t, logging.Default(), logging.FromContext(nil))
	assert.Equal(t, "", logging.RunID(context.Background()))
}

func TestWithFields(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithFields(ctx, map[string]any{
		"student": "A",
		"score":   7.5,
		"commit":  false,
	})
	logging.FromContext(ctx).Warn().Msg("mismatch")

	assert.True(t, tl.Contains(`"student":"A"`))
	assert.True(t, tl.Contains(`"score":7.5`))
	assert.True(t, tl.Contains(`"commit":false`))
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewNopLogger()
	require.NotNil(t, logger)
	logger.Info().Msg("discarded")
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
