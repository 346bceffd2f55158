package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/exp/slog"

	"idcards/internal/app/server/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		env           string
		expectedLevel slog.Level
	}{
		{
			name:          "local environment",
			env:           config.EnvLocal,
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "dev environment",
			env:           config.EnvDev,
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "prod environment",
			env:           config.EnvProd,
			expectedLevel: slog.LevelInfo,
		},
		{
			name:          "unknown environment falls back to info",
			env:           "staging",
			expectedLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.env)
			require.NotNil(t, logger)
			ctx := context.Background()
			assert.Equal(t, tt.expectedLevel <= slog.LevelDebug, logger.Enabled(ctx, slog.LevelDebug))
			assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestSetupPrettySlog(t *testing.T) {
	logger := setupPrettySlog()
	require.NotNil(t, logger)

	ctx := context.Background()
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
}

func TestNew_WithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")

	log := New(config.EnvProd, WithFile(path))
	log.Info("export finished", slog.String("card_id", "abc"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "export finished")
	assert.Contains(t, string(data), `"card_id":"abc"`)
}

func TestNew_LocalWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")

	log := New(config.EnvLocal, WithFile(path)).With(slog.String("component", "exporter"))
	log.Debug("surface stabilized", slog.String("card_id", "abc"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"surface stabilized"`)
	assert.Contains(t, string(data), `"component":"exporter"`)
	assert.Contains(t, string(data), `"card_id":"abc"`)
	assert.NotContains(t, string(data), "\x1b[")
}

func TestErr(t *testing.T) {
	assert.Equal(t, "", Err(nil).Value.String())
	assert.Equal(t, assert.AnError.Error(), Err(assert.AnError).Value.String())
}
