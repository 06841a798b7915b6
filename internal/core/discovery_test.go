package core

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	devices []Device
	err     error
	calls   int
}

func (f *fakeLister) ListDevices(_ context.Context) ([]Device, error) {
	f.calls++
	return f.devices, f.err
}

func newScanFixture(lister *fakeLister) (*DiscoveryController, *DeviceRegistry, *SelectionController) {
	registry := NewDeviceRegistry()
	selection := NewSelectionController()
	c := NewDiscoveryController(registry, selection, lister, zerolog.Nop())
	return c, registry, selection
}

func TestScanReadyPopulatesRegistry(t *testing.T) {
	t.Parallel()
	lister := &fakeLister{devices: []Device{
		{ID: "peer-a", Name: "Aarav iPhone", Addr: "192.168.1.21", Status: DeviceOnline},
	}}
	c, registry, _ := newScanFixture(lister)

	require.Equal(t, ScanLoading, c.State())

	settle := c.BeginScan(context.Background())
	settle()

	require.Equal(t, ScanReady, c.State())
	require.Equal(t, 1, registry.Count())
	got, ok := registry.Get("peer-a")
	require.True(t, ok)
	require.Equal(t, "Aarav iPhone", got.Name)
}

func TestScanEmptyClearsRegistryAndReceivers(t *testing.T) {
	t.Parallel()
	lister := &fakeLister{devices: []Device{{ID: "peer-a", Name: "Aarav iPhone"}}}
	c, registry, selection := newScanFixture(lister)

	c.BeginScan(context.Background())()
	selection.ToggleReceiver("peer-a", true)
	require.True(t, selection.HasReceiver("peer-a"))

	lister.devices = nil
	c.BeginScan(context.Background())()

	require.Equal(t, ScanEmpty, c.State())
	require.Zero(t, registry.Count())
	require.False(t, selection.HasReceiver("peer-a"))
}

func TestScanErrorClearsRegistryAndNeverPropagates(t *testing.T) {
	t.Parallel()
	lister := &fakeLister{devices: []Device{{ID: "peer-a", Name: "Aarav iPhone"}}}
	c, registry, _ := newScanFixture(lister)

	c.BeginScan(context.Background())()
	require.Equal(t, 1, registry.Count())

	lister.err = errors.New("backend unreachable")
	settle := c.BeginScan(context.Background())
	require.NotPanics(t, settle)

	require.Equal(t, ScanError, c.State())
	require.Zero(t, registry.Count())
}

func TestScanStateRegistryConsistency(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name      string
		devices   []Device
		err       error
		wantState ScanState
		wantCount int
	}{
		{"ready", []Device{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}, nil, ScanReady, 2},
		{"empty", nil, nil, ScanEmpty, 0},
		{"error", []Device{{ID: "a", Name: "A"}}, errors.New("boom"), ScanError, 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c, registry, _ := newScanFixture(&fakeLister{devices: tc.devices, err: tc.err})
			c.BeginScan(context.Background())()
			require.Equal(t, tc.wantState, c.State())
			require.Equal(t, tc.wantCount, registry.Count())
		})
	}
}

func TestRetryReentersLoadingFromError(t *testing.T) {
	t.Parallel()
	lister := &fakeLister{err: errors.New("backend unreachable")}
	c, registry, _ := newScanFixture(lister)

	c.BeginScan(context.Background())()
	require.Equal(t, ScanError, c.State())

	lister.err = nil
	lister.devices = []Device{{ID: "peer-b", Name: "Meera MacBook", Status: DeviceOnline}}

	settle := c.Retry(context.Background())
	require.Equal(t, ScanLoading, c.State())
	settle()

	require.Equal(t, ScanReady, c.State())
	require.Equal(t, 1, registry.Count())
	require.Equal(t, 2, lister.calls)
}

func TestRegistryClosestMatchesByName(t *testing.T) {
	t.Parallel()
	r := NewDeviceRegistry()
	r.Replace([]Device{
		{ID: "peer-a", Name: "Aarav iPhone"},
		{ID: "peer-b", Name: "Meera MacBook"},
		{ID: "peer-c", Name: "Ravi Desktop"},
	})

	got, ok := r.Closest("meera")
	require.True(t, ok)
	require.Equal(t, "peer-b", got.ID)

	got, ok = r.Closest("Ravii Desktop")
	require.True(t, ok)
	require.Equal(t, "peer-c", got.ID)

	_, ok = r.Closest("   ")
	require.False(t, ok)
}
