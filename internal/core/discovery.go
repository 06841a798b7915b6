package core

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// ScanState is the discovery view state. Registry contents and scan state
// move together: the registry is non-empty only in ScanReady.
type ScanState string

const (
	ScanLoading ScanState = "loading"
	ScanReady   ScanState = "ready"
	ScanEmpty   ScanState = "empty"
	ScanError   ScanState = "error"
)

// DeviceLister is the discovery collaborator boundary.
type DeviceLister interface {
	ListDevices(ctx context.Context) ([]Device, error)
}

// DiscoveryController drives the discovery lifecycle. Collaborator failures
// are logged and absorbed here; nothing past this controller ever observes a
// raised error, only a transition to ScanError.
type DiscoveryController struct {
	mu        sync.Mutex
	state     ScanState
	registry  *DeviceRegistry
	selection *SelectionController
	lister    DeviceLister
	log       zerolog.Logger
	notify    func()
}

func NewDiscoveryController(registry *DeviceRegistry, selection *SelectionController, lister DeviceLister, log zerolog.Logger) *DiscoveryController {
	return &DiscoveryController{
		state:     ScanLoading,
		registry:  registry,
		selection: selection,
		lister:    lister,
		log:       log,
		notify:    func() {},
	}
}

func (c *DiscoveryController) SetNotify(fn func()) {
	if fn != nil {
		c.notify = fn
	}
}

func (c *DiscoveryController) State() ScanState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// BeginScan re-enters loading unconditionally and returns the settle
// function, which performs the collaborator call and applies the outcome.
// Run settle on any goroutine; the scan may take arbitrarily long and the
// view stays in loading until it returns. BeginScan itself never blocks.
func (c *DiscoveryController) BeginScan(ctx context.Context) (settle func()) {
	c.mu.Lock()
	c.state = ScanLoading
	c.mu.Unlock()
	c.notify()

	return func() {
		devices, err := c.lister.ListDevices(ctx)
		c.settle(devices, err)
	}
}

// Retry is semantically identical to BeginScan.
func (c *DiscoveryController) Retry(ctx context.Context) (settle func()) {
	return c.BeginScan(ctx)
}

func (c *DiscoveryController) settle(devices []Device, err error) {
	c.mu.Lock()
	switch {
	case err != nil:
		c.log.Warn().Err(err).Msg("discovery scan failed")
		c.state = ScanError
		c.mu.Unlock()
		c.registry.Clear()
	case len(devices) == 0:
		c.state = ScanEmpty
		c.mu.Unlock()
		c.registry.Clear()
		c.selection.ClearReceivers()
	default:
		c.state = ScanReady
		c.mu.Unlock()
		c.registry.Replace(devices)
		c.log.Info().Int("devices", len(devices)).Msg("discovery scan complete")
	}
	c.notify()
}
