// Package api is the HTTP client for the Lanbeam backend service. The
// dashboard core never talks to it directly; the TUI layer calls it from
// commands and feeds the results into the controllers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nishq/lanbeam/internal/core"
)

// Client talks to one backend instance.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type deviceWire struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Addr   string `json:"addr"`
	Status string `json:"status"`
}

type devicesResponse struct {
	Devices []deviceWire `json:"devices"`
}

type transferWire struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Progress int    `json:"progress"`
	Status   string `json:"status"`
}

type incomingWire struct {
	From     string `json:"from"`
	FileName string `json:"fileName"`
	Size     string `json:"size"`
}

type decisionWire struct {
	Decision string `json:"decision"`
	FileName string `json:"fileName"`
}

type settingsWire struct {
	LANOnly            bool   `json:"lanOnly"`
	RelayEnabled       bool   `json:"relayEnabled"`
	DiagnosticsEnabled bool   `json:"diagnosticsEnabled"`
	UpdateChannel      string `json:"updateChannel"`
}

// ListDevices fetches the discovered device set.
func (c *Client) ListDevices(ctx context.Context) ([]core.Device, error) {
	var resp devicesResponse
	if err := c.getJSON(ctx, "/api/v1/discovery/devices", &resp); err != nil {
		return nil, err
	}
	out := make([]core.Device, 0, len(resp.Devices))
	for _, d := range resp.Devices {
		out = append(out, core.Device{
			ID:     d.ID,
			Name:   d.Name,
			Addr:   d.Addr,
			Status: core.DeviceStatus(d.Status),
		})
	}
	return out, nil
}

// AnnounceTransfer notifies the backend of a newly confirmed transfer.
func (c *Client) AnnounceTransfer(ctx context.Context, t core.Transfer) error {
	return c.postJSON(ctx, "/api/v1/transfers", transferWire{
		ID:       t.ID,
		Name:     t.Name,
		Progress: t.Progress,
		Status:   string(t.Status),
	})
}

// FetchIncoming polls for a pending inbound request. A 204 or empty body
// means none is pending.
func (c *Client) FetchIncoming(ctx context.Context) (*core.IncomingRequest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/incoming-request", nil)
	if err != nil {
		return nil, fmt.Errorf("/api/v1/incoming-request: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail("/api/v1/incoming-request", fmt.Errorf("/api/v1/incoming-request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.fail("/api/v1/incoming-request", fmt.Errorf("/api/v1/incoming-request: unexpected status %d", resp.StatusCode))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail("/api/v1/incoming-request", fmt.Errorf("/api/v1/incoming-request: read body: %w", err))
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var wire incomingWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, c.fail("/api/v1/incoming-request", fmt.Errorf("/api/v1/incoming-request: decode body: %w", err))
	}
	return &core.IncomingRequest{
		From:     wire.From,
		FileName: wire.FileName,
		Size:     wire.Size,
	}, nil
}

// PostDecision reports the user's accept/decline decision.
func (c *Client) PostDecision(ctx context.Context, res core.Resolution) error {
	return c.postJSON(ctx, "/api/v1/incoming-request/decision", decisionWire{
		Decision: string(res.Decision),
		FileName: res.FileName,
	})
}

// PushTrust mirrors the local trust state to the backend.
func (c *Client) PushTrust(ctx context.Context, s core.TrustState) error {
	return c.postJSON(ctx, "/api/v1/security/trust", map[string]string{"state": string(s)})
}

// PushSettings mirrors the local settings to the backend.
func (c *Client) PushSettings(ctx context.Context, s core.Settings) error {
	return c.postJSON(ctx, "/api/v1/settings", settingsWire{
		LANOnly:            s.LANOnly,
		RelayEnabled:       s.RelayEnabled,
		DiagnosticsEnabled: s.DiagnosticsEnabled,
		UpdateChannel:      string(s.Channel),
	})
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", path, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(path, fmt.Errorf("%s: %w", path, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(path, fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.fail(path, fmt.Errorf("%s: decode body: %w", path, err))
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: encode body: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(path, fmt.Errorf("%s: %w", path, err))
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(path, fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode))
	}
	return nil
}

// fail logs a collaborator failure at the boundary and passes the error on
// unchanged.
func (c *Client) fail(path string, err error) error {
	c.log.Warn().Err(err).Str("path", path).Msg("backend request failed")
	return err
}
