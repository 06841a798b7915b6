package tui

import (
	"fmt"
	"strings"

	"github.com/nishq/lanbeam/internal/core"
)

func (a *App) View() string {
	var body string
	switch a.state {
	case viewTransfers:
		body = a.renderTransfers()
	case viewSettings:
		body = a.renderSettings()
	case viewTrust:
		body = a.renderTrust()
	default:
		body = a.renderDevices()
	}
	if req, ok := a.core.Incoming.Pending(); ok {
		body += "\n\n" + a.renderIncomingModal(req)
	} else if a.modal == modalFilePicker {
		body += "\n\n" + a.renderPicker()
	} else if a.modal == modalJump {
		body += "\n\n" + a.st.title.Render("Jump to device") + "\n" + a.jumpQuery + "█\n[enter] Jump  [esc] Cancel"
	}
	return body
}

func (a *App) renderDevices() string {
	title := a.st.title.Render("Lanbeam — Devices")
	out := title + "\n"

	switch a.core.Discovery.State() {
	case core.ScanLoading:
		out += a.st.subtle.Render("Scanning for nearby devices...") + "\n"
	case core.ScanError:
		out += a.st.errLine.Render("Scan failed.") + "  [r] Retry\n"
	case core.ScanEmpty:
		out += a.st.subtle.Render("No devices found. Make sure peers are on the same network.") + "  [r] Rescan\n"
	default:
		lanOnly := a.core.Settings.Snapshot().LANOnly
		for i, d := range a.core.Registry.Devices() {
			marker := " "
			if i == a.deviceCursor {
				marker = a.st.cursor.Render("▶")
			}
			check := "[ ]"
			if a.core.Selection.HasReceiver(d.ID) {
				check = "[x]"
			}
			out += fmt.Sprintf("%s %s %-24s %-16s %s", marker, check, d.Name, d.Addr, a.st.deviceBadge(d.Status))
			if pd := core.EvaluateAddr(d.Addr, lanOnly); !pd.Allowed {
				out += "  " + a.st.errLine.Render("⚠ "+pd.Reason)
			}
			out += "\n" + a.st.rowGap
		}
	}

	files := a.core.Selection.Files()
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	fileLine := "(none)"
	if len(names) > 0 {
		fileLine = strings.Join(names, ", ")
	}
	out += "\nFiles: " + fileLine
	out += "\n" + a.st.subtle.Render(a.core.Selection.ReadinessMessage())
	out += "\n[f] Pick files  [space] Toggle receiver  [enter] Send  [/] Jump  [r] Rescan  [t] Transfers  [s] Settings  [u] Trust  [q] Quit"
	return a.withStatus(out)
}

func (a *App) renderTransfers() string {
	title := a.st.title.Render("Transfers")
	out := title + "\n"
	transfers := a.core.Transfers.Transfers()
	if len(transfers) == 0 {
		out += a.st.subtle.Render("No transfers yet. Pick files and receivers, then press enter.") + "\n"
	}
	reduced := a.core.Access.Snapshot().ReducedMotion
	for i, t := range transfers {
		marker := " "
		if i == a.transferCursor {
			marker = a.st.cursor.Render("▶")
		}
		out += fmt.Sprintf("%s %-28s %s  %s\n", marker, t.Name, progressBar(t.Progress, 20, reduced), a.st.transferLabel(t.Status))
		out += a.st.rowGap
	}
	out += "\n[p] Pause  [o] Resume  [x] Cancel  [enter] Send again  [d] Devices  [s] Settings  [q] Quit"
	return a.withStatus(out)
}

func (a *App) renderSettings() string {
	title := a.st.title.Render("Settings")
	s := a.core.Settings.Snapshot()
	acc := a.core.Access.Snapshot()
	values := []string{
		onOffLabel(s.LANOnly),
		onOffLabel(s.RelayEnabled),
		onOffLabel(s.DiagnosticsEnabled),
		string(s.Channel),
		onOffLabel(acc.ReducedMotion),
		onOffLabel(acc.HighContrast),
		onOffLabel(acc.LargeText),
	}
	out := title + "\n"
	for i, row := range settingsRows {
		marker := " "
		if i == a.settingsCursor {
			marker = a.st.cursor.Render("▶")
		}
		out += fmt.Sprintf("%s %-16s %s\n", marker, row, values[i])
		out += a.st.rowGap
	}
	out += "\n" + a.st.subtle.Render(a.core.Settings.Summary())
	if flags := a.core.Access.ActiveFlags(); len(flags) > 0 {
		out += "\n" + a.st.subtle.Render("Accessibility: "+strings.Join(flags, ", "))
	}
	out += "\n[space/enter] Toggle  [e] Export diagnostics  [d] Devices  [t] Transfers  [u] Trust  [q] Quit"
	return a.withStatus(out)
}

func (a *App) renderTrust() string {
	title := a.st.title.Render("Trust & Security")
	state := a.core.Trust.State()
	var line string
	if state == core.TrustTrusted {
		line = a.st.done.Render("This device identity is verified.")
	} else {
		line = a.st.paused.Render("This device identity is unverified.")
	}
	out := title + "\n" + line + "\n"
	out += "\n[y] Verify  [n] Revoke  [d] Devices  [s] Settings  [q] Quit"
	return a.withStatus(out)
}

func (a *App) renderIncomingModal(req core.IncomingRequest) string {
	out := a.st.title.Render("Incoming file") + "\n"
	out += fmt.Sprintf("%s wants to send you %s (%s)\n", req.From, req.FileName, req.Size)
	out += "[y] Accept  [n] Decline"
	return out
}

func (a *App) renderPicker() string {
	p := a.picker
	out := a.st.title.Render("Pick files — "+p.dir) + "\n"
	query := p.query
	if query == "" {
		query = a.st.subtle.Render("(type to filter)")
	}
	out += "Filter: " + query + "\n"
	if len(p.filtered) == 0 {
		out += a.st.subtle.Render("  (no matching files)") + "\n"
	}
	for i, it := range p.filtered {
		marker := " "
		if i == p.cursor {
			marker = a.st.cursor.Render("▶")
		}
		check := "[ ]"
		if p.selected[it.Path] {
			check = "[x]"
		}
		out += fmt.Sprintf("%s %s %s\n", marker, check, it.Name)
	}
	out += "[space] Toggle  [enter] Apply  [esc] Cancel"
	return out
}

func (a *App) withStatus(out string) string {
	if a.status != "" {
		style := a.st.status
		if strings.HasPrefix(a.status, "error:") {
			style = a.st.errLine
		}
		out += "\n" + style.Render(a.status)
	}
	return out
}

func onOffLabel(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
