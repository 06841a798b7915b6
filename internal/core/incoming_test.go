package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresentReplacesPendingRequest(t *testing.T) {
	t.Parallel()
	c := NewIncomingController()

	c.Present(IncomingRequest{From: "Meera MacBook", FileName: "slides.key", Size: "48 MB"})
	c.Present(IncomingRequest{From: "Ravi Desktop", FileName: "archive.zip", Size: "1.2 GB"})

	// A second request displaces the first; the slot holds one at most.
	got, ok := c.Pending()
	require.True(t, ok)
	require.Equal(t, "Ravi Desktop", got.From)
	require.Equal(t, "archive.zip", got.FileName)
}

func TestResolveClearsAndEmitsRecord(t *testing.T) {
	t.Parallel()
	c := NewIncomingController()
	c.Present(IncomingRequest{From: "Meera MacBook", FileName: "slides.key", Size: "48 MB"})

	res, ok := c.Resolve(DecisionAccepted)
	require.True(t, ok)
	require.Equal(t, DecisionAccepted, res.Decision)
	require.Equal(t, "slides.key", res.FileName)

	_, ok = c.Pending()
	require.False(t, ok)
}

func TestResolveWithoutPendingIsNoop(t *testing.T) {
	t.Parallel()
	c := NewIncomingController()

	res, ok := c.Resolve(DecisionDeclined)
	require.False(t, ok)
	require.Zero(t, res)
}
