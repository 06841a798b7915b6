package core

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Metadata keys that carry user-identifying content. Their values are
// replaced before an event is stored.
var redactedKeys = []string{"file_name", "file_path", "receiver_name", "sender_name", "payload"}

const defaultDiagRetention = 1000

// DiagEvent is one diagnostics record.
type DiagEvent struct {
	At       time.Time
	Category string
	Action   string
	Metadata map[string]string
}

// DiagLog is a bounded in-memory diagnostics event log with per-key
// counters. Event recording is gated on the diagnostics toggle; counters are
// not, since they carry no content.
type DiagLog struct {
	mu       sync.Mutex
	events   []DiagEvent
	counters map[string]uint64
	max      int
	enabled  func() bool
	now      func() time.Time
}

func NewDiagLog(enabled func() bool) *DiagLog {
	if enabled == nil {
		enabled = func() bool { return true }
	}
	return &DiagLog{
		counters: make(map[string]uint64),
		max:      defaultDiagRetention,
		enabled:  enabled,
		now:      time.Now,
	}
}

// Record appends one event if diagnostics are enabled. Sensitive metadata
// values are redacted before storage. When the log exceeds its retention
// bound the oldest events are dropped.
func (d *DiagLog) Record(category, action string, metadata map[string]string) {
	if !d.enabled() {
		return
	}
	md := make(map[string]string, len(metadata))
	for k, v := range metadata {
		md[k] = v
	}
	redactMetadata(md)

	d.mu.Lock()
	d.events = append(d.events, DiagEvent{
		At:       d.now(),
		Category: category,
		Action:   action,
		Metadata: md,
	})
	if over := len(d.events) - d.max; over > 0 {
		d.events = append([]DiagEvent(nil), d.events[over:]...)
	}
	d.mu.Unlock()
}

// Increment bumps a named counter.
func (d *DiagLog) Increment(name string) {
	d.mu.Lock()
	d.counters[name]++
	d.mu.Unlock()
}

// Counter reads a named counter.
func (d *DiagLog) Counter(name string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counters[name]
}

// Events returns a snapshot of the stored events, oldest first.
func (d *DiagLog) Events() []DiagEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]DiagEvent, len(d.events))
	copy(out, d.events)
	return out
}

// Export writes the stored events as one line each:
// unix-millis|category|action|k=v,k=v with metadata keys sorted.
func (d *DiagLog) Export(w io.Writer) error {
	for _, e := range d.Events() {
		parts := make([]string, 0, len(e.Metadata))
		for k, v := range e.Metadata {
			parts = append(parts, k+"="+v)
		}
		sort.Strings(parts)
		if _, err := fmt.Fprintf(w, "%d|%s|%s|%s\n", e.At.UnixMilli(), e.Category, e.Action, strings.Join(parts, ",")); err != nil {
			return fmt.Errorf("export diagnostics: %w", err)
		}
	}
	return nil
}

func redactMetadata(md map[string]string) {
	for _, k := range redactedKeys {
		if _, ok := md[k]; ok {
			md[k] = "[redacted]"
		}
	}
}
