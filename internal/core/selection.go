package core

import (
	"fmt"
	"sort"
	"sync"
)

// FileRef identifies a local file chosen for sending. Only the display name
// is required; Path is kept for the picker's benefit.
type FileRef struct {
	Name string
	Path string
}

// SelectionController tracks the selected files and receiver devices.
// Receivers are held by device id, not by device object, so a selection
// survives a rescan; ids that no longer resolve are allowed but the
// selection is simply not ready until the user re-picks.
type SelectionController struct {
	mu        sync.Mutex
	files     []FileRef
	receivers map[string]struct{}
	notify    func()
}

func NewSelectionController() *SelectionController {
	return &SelectionController{
		receivers: make(map[string]struct{}),
		notify:    func() {},
	}
}

func (s *SelectionController) SetNotify(fn func()) {
	if fn != nil {
		s.notify = fn
	}
}

// SetFiles replaces the selected-file sequence wholesale. Empty input is
// valid and means "no files".
func (s *SelectionController) SetFiles(files []FileRef) {
	s.mu.Lock()
	s.files = make([]FileRef, len(files))
	copy(s.files, files)
	s.mu.Unlock()
	s.notify()
}

// ToggleReceiver adds or removes one device id. Idempotent.
func (s *SelectionController) ToggleReceiver(deviceID string, included bool) {
	s.mu.Lock()
	if included {
		s.receivers[deviceID] = struct{}{}
	} else {
		delete(s.receivers, deviceID)
	}
	s.mu.Unlock()
	s.notify()
}

// ClearReceivers empties the receiver set. Called when the registry is reset
// to empty.
func (s *SelectionController) ClearReceivers() {
	s.mu.Lock()
	s.receivers = make(map[string]struct{})
	s.mu.Unlock()
	s.notify()
}

// HasReceiver reports whether the given device id is selected.
func (s *SelectionController) HasReceiver(deviceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.receivers[deviceID]
	return ok
}

// Files returns a snapshot of the selected-file sequence in order.
func (s *SelectionController) Files() []FileRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]FileRef, len(s.files))
	copy(out, s.files)
	return out
}

// Receivers returns the selected device ids, sorted for stable display.
func (s *SelectionController) Receivers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.receivers))
	for id := range s.receivers {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Counts returns the file and receiver counts in one locked read.
func (s *SelectionController) Counts() (files, receivers int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files), len(s.receivers)
}

// ReadyToSend is true iff at least one file and one receiver are selected.
func (s *SelectionController) ReadyToSend() bool {
	files, receivers := s.Counts()
	return files > 0 && receivers > 0
}

// ReadinessMessage derives the current readiness line from selection counts
// alone. The no-files case wins over no-receivers.
func (s *SelectionController) ReadinessMessage() string {
	files, receivers := s.Counts()
	switch {
	case files == 0:
		return ErrNoFiles.Error()
	case receivers == 0:
		return ErrNoReceivers.Error()
	default:
		return fmt.Sprintf("Ready to send %d file(s) to %d device(s).", files, receivers)
	}
}
