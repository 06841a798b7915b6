package core

import (
	"fmt"
	"strings"
	"sync"
)

// UpdateChannel selects which release stream the updater follows.
type UpdateChannel string

const (
	ChannelStable  UpdateChannel = "stable"
	ChannelBeta    UpdateChannel = "beta"
	ChannelNightly UpdateChannel = "nightly"
)

// Rank orders channels by riskiness: stable < beta < nightly.
func (c UpdateChannel) Rank() int {
	switch c {
	case ChannelBeta:
		return 1
	case ChannelNightly:
		return 2
	default:
		return 0
	}
}

// ParseUpdateChannel normalizes a channel name. Unknown names are rejected
// rather than defaulted, so a config typo never moves a user onto nightly.
func ParseUpdateChannel(s string) (UpdateChannel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stable", "":
		return ChannelStable, nil
	case "beta":
		return ChannelBeta, nil
	case "nightly":
		return ChannelNightly, nil
	default:
		return "", fmt.Errorf("unknown update channel %q", s)
	}
}

// Settings is the mutable preference set shown on the settings view.
type Settings struct {
	LANOnly            bool
	RelayEnabled       bool
	DiagnosticsEnabled bool
	Channel            UpdateChannel
}

// SettingsController owns the settings and keeps a one-line summary derived
// from them, regenerated on every mutation.
type SettingsController struct {
	mu      sync.Mutex
	s       Settings
	summary string
	notify  func()
}

func NewSettingsController(initial Settings) *SettingsController {
	if initial.Channel == "" {
		initial.Channel = ChannelStable
	}
	return &SettingsController{
		s:       initial,
		summary: deriveSummary(initial),
		notify:  func() {},
	}
}

func (c *SettingsController) SetNotify(fn func()) {
	if fn != nil {
		c.notify = fn
	}
}

// Snapshot returns the current settings by value.
func (c *SettingsController) Snapshot() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s
}

// Summary returns the derived settings line.
func (c *SettingsController) Summary() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary
}

func (c *SettingsController) SetLANOnly(on bool) {
	c.mutate(func(s *Settings) { s.LANOnly = on })
}

func (c *SettingsController) SetRelayEnabled(on bool) {
	c.mutate(func(s *Settings) { s.RelayEnabled = on })
}

func (c *SettingsController) SetDiagnosticsEnabled(on bool) {
	c.mutate(func(s *Settings) { s.DiagnosticsEnabled = on })
}

// SetChannel parses and applies a channel name. On an invalid name the
// settings are untouched and the error is returned to the caller.
func (c *SettingsController) SetChannel(name string) error {
	ch, err := ParseUpdateChannel(name)
	if err != nil {
		return err
	}
	c.mutate(func(s *Settings) { s.Channel = ch })
	return nil
}

func (c *SettingsController) mutate(fn func(*Settings)) {
	c.mu.Lock()
	fn(&c.s)
	c.summary = deriveSummary(c.s)
	c.mu.Unlock()
	c.notify()
}

func deriveSummary(s Settings) string {
	return fmt.Sprintf("LAN-only %s · relay %s · diagnostics %s · %s channel",
		onOff(s.LANOnly), onOff(s.RelayEnabled), onOff(s.DiagnosticsEnabled), s.Channel)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
