package ingest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/fyrsmithlabs/ingestd/internal/config"
)

func TestSweepRemovesOnlyStaleFiles(t *testing.T) {
	configDir := t.TempDir()
	outputDir := t.TempDir()

	stale := filepath.Join(configDir, "ingest-old.config.json")
	fresh := filepath.Join(outputDir, "ingest-new.output.txt")
	require.NoError(t, os.WriteFile(stale, []byte("{}"), 0o600))
	require.NoError(t, os.WriteFile(fresh, []byte("text"), 0o600))

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	s := NewSweeper(config.ScratchConfig{
		ConfigDir: configDir,
		OutputDir: outputDir,
		MaxAge:    config.Duration(24 * time.Hour),
	}, zaptest.NewLogger(t))

	removed := s.Sweep(time.Now())
	assert.Equal(t, 1, removed)

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "stale artifact should be removed")
	_, err = os.Stat(fresh)
	assert.NoError(t, err, "fresh artifact should survive")
}

func TestSweepMissingDirsAreIgnored(t *testing.T) {
	s := NewSweeper(config.ScratchConfig{
		ConfigDir: filepath.Join(t.TempDir(), "absent-configs"),
		OutputDir: filepath.Join(t.TempDir(), "absent-outputs"),
		MaxAge:    config.Duration(time.Hour),
	}, zaptest.NewLogger(t))

	assert.Equal(t, 0, s.Sweep(time.Now()))
}
