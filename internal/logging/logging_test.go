package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONLines(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(path, "info")
	require.NoError(t, err)

	log.Info().Str("component", "discovery").Msg("scan complete")
	log.Debug().Msg("suppressed below level")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"scan complete"`)
	require.NotContains(t, string(data), "suppressed")
}

func TestNewEmptyPathDiscards(t *testing.T) {
	t.Parallel()
	log, err := New("", "debug")
	require.NoError(t, err)
	require.NotPanics(t, func() { log.Info().Msg("discarded") })
}

func TestNewRejectsBadLevel(t *testing.T) {
	t.Parallel()
	_, err := New("", "loud")
	require.Error(t, err)
}
