// Package tui is the bubbletea front end for the Lanbeam dashboard. It
// renders snapshots of the core controllers and translates key presses into
// controller operations; all backend traffic happens inside commands.
package tui

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nishq/lanbeam/internal/api"
	"github.com/nishq/lanbeam/internal/config"
	"github.com/nishq/lanbeam/internal/core"
)

// incomingPollInterval is how often the backend is asked for a pending
// inbound request.
const incomingPollInterval = 2 * time.Second

// App ties together views.
type App struct {
	ctx    context.Context
	core   *core.App
	client *api.Client
	cfg    config.Config
	keys   keyMap
	st     styles

	state          appState
	deviceCursor   int
	transferCursor int
	settingsCursor int
	modal          modalState
	picker         *filePicker
	jumpQuery      string
	status         string
}

type appState string

const (
	viewDevices   appState = "devices"
	viewTransfers appState = "transfers"
	viewSettings  appState = "settings"
	viewTrust     appState = "trust"
)

type modalState string

const (
	modalNone       modalState = ""
	modalFilePicker modalState = "filePicker"
	modalJump       modalState = "jump"
)

func New(ctx context.Context, coreApp *core.App, client *api.Client, cfg config.Config) *App {
	return &App{
		ctx:    ctx,
		core:   coreApp,
		client: client,
		cfg:    cfg,
		keys:   newKeyMap(),
		st:     newStyles(coreApp.Access.Snapshot()),
		state:  viewDevices,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.scanCmd(), a.pollIncomingCmd())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if _, pending := a.core.Incoming.Pending(); pending {
			return a.handleIncomingKey(m)
		}
		if a.modal == modalFilePicker {
			return a.handlePickerKey(m)
		}
		if a.modal == modalJump {
			return a.handleJumpKey(m)
		}
		return a.handleKey(m)

	case scanSettledMsg:
		a.core.Diag.Record("scan", "settle", map[string]string{
			"state":   string(a.core.Discovery.State()),
			"devices": strconv.Itoa(a.core.Registry.Count()),
		})
		if a.deviceCursor >= a.core.Registry.Count() {
			a.deviceCursor = 0
		}

	case transferTickMsg:
		next, live := a.core.Transfers.Advance(m.Handle)
		if live {
			return a, a.tickCmd(next)
		}

	case incomingFetchedMsg:
		if m.Req != nil {
			a.core.Incoming.Present(*m.Req)
			a.core.Diag.Increment("incoming_requests")
		}
		return a, a.pollIncomingCmd()

	case statusMsg:
		a.status = string(m)

	case errMsg:
		a.status = "error: " + m.Error()
		// Polling must survive a transient backend failure.
		if m.retryPoll {
			return a, a.pollIncomingCmd()
		}
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Devices):
		a.state = viewDevices
	case key.Matches(m, a.keys.Transfers):
		a.state = viewTransfers
	case key.Matches(m, a.keys.Settings):
		a.state = viewSettings
	case key.Matches(m, a.keys.Trust):
		a.state = viewTrust
	case key.Matches(m, a.keys.Scan):
		if a.state == viewDevices {
			a.status = ""
			return a, a.scanCmd()
		}
	case key.Matches(m, a.keys.PickFiles):
		dir, err := os.Getwd()
		if err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}
		p, err := newFilePicker(dir, a.core.Selection.Files())
		if err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}
		a.picker = p
		a.modal = modalFilePicker
	case key.Matches(m, a.keys.Jump):
		if a.state == viewDevices {
			a.jumpQuery = ""
			a.modal = modalJump
		}
	case key.Matches(m, a.keys.Up):
		a.moveCursor(-1)
	case key.Matches(m, a.keys.Down):
		a.moveCursor(1)
	case key.Matches(m, a.keys.Toggle):
		if a.state == viewDevices {
			a.toggleReceiverUnderCursor()
		}
		if a.state == viewSettings {
			return a, a.applySettingUnderCursor()
		}
	case key.Matches(m, a.keys.Send):
		if a.state == viewSettings {
			return a, a.applySettingUnderCursor()
		}
		if a.state == viewDevices || a.state == viewTransfers {
			return a, a.confirmSendCmd()
		}
	case key.Matches(m, a.keys.Pause):
		if a.state == viewTransfers {
			if t, ok := a.transferUnderCursor(); ok {
				a.core.Transfers.Pause(t.ID)
			}
		}
	case key.Matches(m, a.keys.Resume):
		if a.state == viewTransfers {
			if t, ok := a.transferUnderCursor(); ok {
				if h, ok := a.core.Transfers.Resume(t.ID); ok {
					return a, a.tickCmd(h)
				}
			}
		}
	case key.Matches(m, a.keys.Cancel):
		if a.state == viewTransfers {
			if t, ok := a.transferUnderCursor(); ok {
				a.core.Transfers.Cancel(t.ID)
			}
		}
	case key.Matches(m, a.keys.Accept):
		if a.state == viewTrust {
			a.core.Trust.Verify()
			return a, a.pushTrustCmd()
		}
	case key.Matches(m, a.keys.Decline):
		if a.state == viewTrust {
			a.core.Trust.Revoke()
			return a, a.pushTrustCmd()
		}
	case key.Matches(m, a.keys.Export):
		if a.state == viewSettings {
			return a, a.exportDiagCmd()
		}
	}
	return a, nil
}

func (a *App) handleIncomingKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Accept):
		return a, a.resolveIncomingCmd(core.DecisionAccepted)
	case key.Matches(m, a.keys.Decline):
		return a, a.resolveIncomingCmd(core.DecisionDeclined)
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handlePickerKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.picker.HandleKey(m.String()) {
	case pickerSubmitted:
		a.core.Selection.SetFiles(a.picker.Selection())
		a.modal = modalNone
		a.picker = nil
		a.status = a.core.Selection.ReadinessMessage()
	case pickerCancelled:
		a.modal = modalNone
		a.picker = nil
	}
	return a, nil
}

func (a *App) handleJumpKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.modal = modalNone
	case "enter":
		if d, ok := a.core.Registry.Closest(a.jumpQuery); ok {
			for i, dev := range a.core.Registry.Devices() {
				if dev.ID == d.ID {
					a.deviceCursor = i
					break
				}
			}
		}
		a.modal = modalNone
	case "backspace":
		if len(a.jumpQuery) > 0 {
			a.jumpQuery = a.jumpQuery[:len(a.jumpQuery)-1]
		}
	default:
		s := m.String()
		if len(s) == 1 {
			a.jumpQuery += s
		}
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	switch a.state {
	case viewDevices:
		a.deviceCursor = clamp(a.deviceCursor+delta, a.core.Registry.Count())
	case viewTransfers:
		a.transferCursor = clamp(a.transferCursor+delta, len(a.core.Transfers.Transfers()))
	case viewSettings:
		a.settingsCursor = clamp(a.settingsCursor+delta, len(settingsRows))
	}
}

func clamp(v, n int) int {
	if n == 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func (a *App) toggleReceiverUnderCursor() {
	devices := a.core.Registry.Devices()
	if a.deviceCursor >= len(devices) {
		return
	}
	d := devices[a.deviceCursor]
	a.core.Selection.ToggleReceiver(d.ID, !a.core.Selection.HasReceiver(d.ID))
	a.status = a.core.Selection.ReadinessMessage()
}

func (a *App) transferUnderCursor() (core.Transfer, bool) {
	transfers := a.core.Transfers.Transfers()
	if a.transferCursor >= len(transfers) {
		return core.Transfer{}, false
	}
	return transfers[a.transferCursor], true
}

// settings rows in display order.
var settingsRows = []string{
	"LAN-only mode",
	"Relay fallback",
	"Diagnostics",
	"Update channel",
	"Reduced motion",
	"High contrast",
	"Large text",
}

// applySettingUnderCursor toggles the selected row, persists the new
// preferences to the config file, and mirrors the settings to the backend.
// Accessibility rows rebuild the style set in place.
func (a *App) applySettingUnderCursor() tea.Cmd {
	s := a.core.Settings.Snapshot()
	acc := a.core.Access.Snapshot()
	switch a.settingsCursor {
	case 0:
		a.core.Settings.SetLANOnly(!s.LANOnly)
	case 1:
		a.core.Settings.SetRelayEnabled(!s.RelayEnabled)
	case 2:
		a.core.Settings.SetDiagnosticsEnabled(!s.DiagnosticsEnabled)
	case 3:
		next := core.ChannelStable
		switch s.Channel {
		case core.ChannelStable:
			next = core.ChannelBeta
		case core.ChannelBeta:
			next = core.ChannelNightly
		}
		if err := a.core.Settings.SetChannel(string(next)); err != nil {
			a.status = "error: " + err.Error()
			return nil
		}
	case 4:
		a.core.Access.SetReducedMotion(!acc.ReducedMotion)
	case 5:
		a.core.Access.SetHighContrast(!acc.HighContrast)
	case 6:
		a.core.Access.SetLargeText(!acc.LargeText)
	}
	a.st = newStyles(a.core.Access.Snapshot())
	a.status = a.core.Settings.Summary()
	if a.settingsCursor <= 3 {
		return tea.Batch(a.pushSettingsCmd(), a.saveConfigCmd())
	}
	return a.saveConfigCmd()
}

// saveConfigCmd folds the live settings and accessibility state back into
// the config and writes it, so toggles survive a restart.
func (a *App) saveConfigCmd() tea.Cmd {
	s := a.core.Settings.Snapshot()
	acc := a.core.Access.Snapshot()
	a.cfg.Settings = config.SettingsConfig{
		LANOnly:            s.LANOnly,
		RelayEnabled:       s.RelayEnabled,
		DiagnosticsEnabled: s.DiagnosticsEnabled,
		UpdateChannel:      string(s.Channel),
	}
	a.cfg.Accessibility = config.AccessibilityConfig{
		ReducedMotion: acc.ReducedMotion,
		HighContrast:  acc.HighContrast,
		LargeText:     acc.LargeText,
	}
	cfg := a.cfg
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return errMsg{error: err}
		}
		return statusMsg("preferences saved")
	}
}

// exportDiagCmd writes the diagnostics log as line-oriented text next to the
// log file.
func (a *App) exportDiagCmd() tea.Cmd {
	dir := "."
	if a.cfg.Log.Path != "" {
		dir = filepath.Dir(a.cfg.Log.Path)
	}
	path := filepath.Join(dir, "lanbeam-diagnostics.txt")
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return errMsg{error: err}
		}
		defer f.Close()
		if err := a.core.Diag.Export(f); err != nil {
			return errMsg{error: err}
		}
		return statusMsg("diagnostics exported to " + path)
	}
}

// commands

func (a *App) scanCmd() tea.Cmd {
	settle := a.core.Discovery.BeginScan(a.ctx)
	a.core.Diag.Increment("scans")
	return func() tea.Msg {
		settle()
		return scanSettledMsg{}
	}
}

func (a *App) tickCmd(h core.TickHandle) tea.Cmd {
	return tea.Tick(core.TickInterval, func(time.Time) tea.Msg {
		return transferTickMsg{Handle: h}
	})
}

func (a *App) confirmSendCmd() tea.Cmd {
	t, h, err := a.core.Transfers.ConfirmSend()
	if err != nil {
		a.status = err.Error()
		return nil
	}
	a.status = ""
	a.state = viewTransfers
	a.transferCursor = 0
	a.core.Diag.Record("transfer", "confirm", map[string]string{
		"file_name": t.Name,
		"receivers": strconv.Itoa(len(a.core.Selection.Receivers())),
	})
	return tea.Batch(
		a.tickCmd(h),
		func() tea.Msg {
			if err := a.client.AnnounceTransfer(a.ctx, t); err != nil {
				return errMsg{error: err}
			}
			return statusMsg("transfer announced")
		},
	)
}

func (a *App) pollIncomingCmd() tea.Cmd {
	return tea.Tick(incomingPollInterval, func(time.Time) tea.Msg {
		req, err := a.client.FetchIncoming(a.ctx)
		if err != nil {
			return errMsg{error: err, retryPoll: true}
		}
		return incomingFetchedMsg{Req: req}
	})
}

func (a *App) resolveIncomingCmd(d core.Decision) tea.Cmd {
	res, ok := a.core.Incoming.Resolve(d)
	if !ok {
		return nil
	}
	a.status = string(res.Decision) + ": " + res.FileName
	a.core.Diag.Record("incoming", string(res.Decision), map[string]string{"file_name": res.FileName})
	return func() tea.Msg {
		if err := a.client.PostDecision(a.ctx, res); err != nil {
			return errMsg{error: err}
		}
		return statusMsg("decision sent")
	}
}

func (a *App) pushTrustCmd() tea.Cmd {
	state := a.core.Trust.State()
	return func() tea.Msg {
		if err := a.client.PushTrust(a.ctx, state); err != nil {
			return errMsg{error: err}
		}
		return statusMsg("trust state synced")
	}
}

func (a *App) pushSettingsCmd() tea.Cmd {
	s := a.core.Settings.Snapshot()
	return func() tea.Msg {
		if err := a.client.PushSettings(a.ctx, s); err != nil {
			return errMsg{error: err}
		}
		return statusMsg(a.core.Settings.Summary())
	}
}

// messages

type scanSettledMsg struct{}

type transferTickMsg struct {
	Handle core.TickHandle
}

type incomingFetchedMsg struct {
	Req *core.IncomingRequest
}

type statusMsg string

type errMsg struct {
	error
	retryPoll bool
}
