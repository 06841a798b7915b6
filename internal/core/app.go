// Package core is the client-side orchestration layer of the Lanbeam
// dashboard: device discovery state, file/receiver selection, the outgoing
// transfer log, incoming-request consent, trust and settings. Controllers
// hold state behind mutexes and publish changes through a notify callback;
// the TUI layer renders snapshots and drives operations.
package core

import "github.com/rs/zerolog"

// App bundles the controllers with their wiring.
type App struct {
	Registry  *DeviceRegistry
	Discovery *DiscoveryController
	Selection *SelectionController
	Transfers *TransferManager
	Incoming  *IncomingController
	Trust     *TrustController
	Settings  *SettingsController
	Access    *AccessibilityController
	Diag      *DiagLog
}

// NewApp wires the controller graph. The diagnostics log reads the
// diagnostics toggle live, so flipping the setting takes effect on the next
// Record call.
func NewApp(lister DeviceLister, initial Settings, access AccessibilityState, log zerolog.Logger) *App {
	registry := NewDeviceRegistry()
	selection := NewSelectionController()
	settings := NewSettingsController(initial)

	a := &App{
		Registry:  registry,
		Discovery: NewDiscoveryController(registry, selection, lister, log),
		Selection: selection,
		Transfers: NewTransferManager(selection),
		Incoming:  NewIncomingController(),
		Trust:     NewTrustController(),
		Settings:  settings,
		Access:    NewAccessibilityController(access),
	}
	a.Diag = NewDiagLog(func() bool { return settings.Snapshot().DiagnosticsEnabled })
	return a
}

// SetNotify installs one change-notification callback on every controller.
func (a *App) SetNotify(fn func()) {
	a.Registry.SetNotify(fn)
	a.Discovery.SetNotify(fn)
	a.Selection.SetNotify(fn)
	a.Transfers.SetNotify(fn)
	a.Incoming.SetNotify(fn)
	a.Trust.SetNotify(fn)
	a.Settings.SetNotify(fn)
	a.Access.SetNotify(fn)
}
