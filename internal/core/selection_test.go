package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetFilesReplacesWholesale(t *testing.T) {
	t.Parallel()
	s := NewSelectionController()

	s.SetFiles([]FileRef{{Name: "report.pdf"}, {Name: "photo.jpg"}})
	require.Len(t, s.Files(), 2)

	s.SetFiles([]FileRef{{Name: "notes.txt"}})
	files := s.Files()
	require.Len(t, files, 1)
	require.Equal(t, "notes.txt", files[0].Name)

	s.SetFiles(nil)
	require.Empty(t, s.Files())
}

func TestToggleReceiverIdempotent(t *testing.T) {
	t.Parallel()
	s := NewSelectionController()

	s.ToggleReceiver("peer-a", true)
	s.ToggleReceiver("peer-a", true)
	require.Equal(t, []string{"peer-a"}, s.Receivers())

	s.ToggleReceiver("peer-a", false)
	s.ToggleReceiver("peer-a", false)
	require.Empty(t, s.Receivers())
}

func TestReadyToSendRequiresBoth(t *testing.T) {
	t.Parallel()
	s := NewSelectionController()
	require.False(t, s.ReadyToSend())

	s.SetFiles([]FileRef{{Name: "report.pdf"}})
	require.False(t, s.ReadyToSend())

	s.ToggleReceiver("peer-a", true)
	require.True(t, s.ReadyToSend())

	s.SetFiles(nil)
	require.False(t, s.ReadyToSend())
}

func TestReceiversSurviveWithoutRegistry(t *testing.T) {
	t.Parallel()
	s := NewSelectionController()

	// Receiver ids are not validated against the registry; stale ids are
	// tolerated until the next clear.
	s.ToggleReceiver("gone-device", true)
	require.True(t, s.HasReceiver("gone-device"))

	s.ClearReceivers()
	require.False(t, s.HasReceiver("gone-device"))
}

func TestReadinessMessagePrecedence(t *testing.T) {
	t.Parallel()
	s := NewSelectionController()

	require.Equal(t, ErrNoFiles.Error(), s.ReadinessMessage())

	s.SetFiles([]FileRef{{Name: "report.pdf"}})
	require.Equal(t, ErrNoReceivers.Error(), s.ReadinessMessage())

	s.ToggleReceiver("peer-a", true)
	require.Equal(t, "Ready to send 1 file(s) to 1 device(s).", s.ReadinessMessage())
}
