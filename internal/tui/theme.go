package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nishq/lanbeam/internal/core"
)

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorSky      lipgloss.Color = "#89dceb"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
)

// ---------------------------------------------------------------------------
// Semantic color aliases
// ---------------------------------------------------------------------------

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

// styles bundles every lipgloss style the views use, derived once from the
// accessibility flags. High contrast swaps the muted grays for full-strength
// text; large text adds breathing room instead of changing glyph size, which
// a terminal cannot do.
type styles struct {
	title    lipgloss.Style
	subtle   lipgloss.Style
	cursor   lipgloss.Style
	status   lipgloss.Style
	errLine  lipgloss.Style
	badgeOn  lipgloss.Style
	badgeBsy lipgloss.Style
	badgeOff lipgloss.Style
	done     lipgloss.Style
	failed   lipgloss.Style
	paused   lipgloss.Style
	rowGap   string
}

func newStyles(a core.AccessibilityState) styles {
	subtle := colorOverlay1
	if a.HighContrast {
		subtle = colorText
	}
	s := styles{
		title:    lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorAccent),
		subtle:   lipgloss.NewStyle().Foreground(subtle),
		cursor:   lipgloss.NewStyle().Bold(true).Foreground(colorFocus),
		status:   lipgloss.NewStyle().Foreground(colorInfo),
		errLine:  lipgloss.NewStyle().Foreground(colorError),
		badgeOn:  lipgloss.NewStyle().Foreground(colorSuccess),
		badgeBsy: lipgloss.NewStyle().Foreground(colorWarning),
		badgeOff: lipgloss.NewStyle().Foreground(subtle),
		done:     lipgloss.NewStyle().Foreground(colorSuccess),
		failed:   lipgloss.NewStyle().Foreground(colorError),
		paused:   lipgloss.NewStyle().Foreground(colorPeach),
	}
	if a.HighContrast {
		s.title = s.title.Foreground(colorText)
		s.cursor = s.cursor.Foreground(colorText)
	}
	if a.LargeText {
		s.rowGap = "\n"
	}
	return s
}

func (s styles) deviceBadge(st core.DeviceStatus) string {
	switch st {
	case core.DeviceOnline:
		return s.badgeOn.Render("● online")
	case core.DeviceBusy:
		return s.badgeBsy.Render("◐ busy")
	default:
		return s.badgeOff.Render("○ offline")
	}
}

func (s styles) transferLabel(st core.TransferStatus) string {
	switch st {
	case core.TransferCompleted:
		return s.done.Render("completed")
	case core.TransferFailed:
		return s.failed.Render("failed")
	case core.TransferPaused:
		return s.paused.Render("paused")
	default:
		return "sending"
	}
}

// progressBar renders a fixed-width bar. Reduced motion drops the bar glyphs
// for a plain percentage so nothing appears to animate.
func progressBar(pct, width int, reducedMotion bool) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if reducedMotion || width < 4 {
		return fmt.Sprintf("%3d%%", pct)
	}
	filled := pct * width / 100
	return fmt.Sprintf("[%s%s] %3d%%",
		strings.Repeat("█", filled),
		strings.Repeat("░", width-filled),
		pct)
}
