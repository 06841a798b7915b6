package core

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TransferStatus is the lifecycle state of one outgoing transfer.
//
// in-progress ⇄ paused, in-progress → completed, {in-progress,paused} →
// failed. Nothing exits completed or failed.
type TransferStatus string

const (
	TransferInProgress TransferStatus = "in-progress"
	TransferPaused     TransferStatus = "paused"
	TransferCompleted  TransferStatus = "completed"
	TransferFailed     TransferStatus = "failed"
)

// Progress advancement cadence: +ProgressStep per TickInterval while
// in-progress, clamped at 100.
const (
	ProgressStep = 20
	TickInterval = 500 * time.Millisecond
)

// Send refusal reasons. The files check is evaluated first.
var (
	ErrNoFiles     = errors.New("select at least one file to send")
	ErrNoReceivers = errors.New("choose at least one receiver")
)

// Transfer is one outgoing send operation. Only the head of the selected
// file sequence is tracked as the displayed name. Transfers are never
// deleted, only status-terminated.
type Transfer struct {
	ID       string
	Name     string
	Progress int
	Status   TransferStatus
}

// TickHandle identifies one live advancement run. Seq is bumped whenever a
// transfer leaves in-progress, so a tick scheduled before a pause or cancel
// lands inert instead of resurrecting the transfer.
type TickHandle struct {
	ID  string
	Seq uint64
}

// TransferManager owns the outgoing transfer log (append-at-head, never
// pruned) and every transfer's advancement run.
type TransferManager struct {
	mu        sync.Mutex
	transfers []Transfer
	seq       map[string]uint64
	selection *SelectionController
	notify    func()
}

func NewTransferManager(selection *SelectionController) *TransferManager {
	return &TransferManager{
		seq:       make(map[string]uint64),
		selection: selection,
		notify:    func() {},
	}
}

func (m *TransferManager) SetNotify(fn func()) {
	if fn != nil {
		m.notify = fn
	}
}

// ConfirmSend validates the current selection and, if ready, creates exactly
// one transfer at the head of the log with progress 0 and starts its
// advancement run. The caller schedules the first tick with the returned
// handle. Refusals return ErrNoFiles or ErrNoReceivers; no transfer is
// created.
func (m *TransferManager) ConfirmSend() (Transfer, TickHandle, error) {
	// One snapshot serves both the emptiness check and the head, so the
	// selection cannot shrink between them.
	files := m.selection.Files()
	if len(files) == 0 {
		return Transfer{}, TickHandle{}, ErrNoFiles
	}
	if _, receivers := m.selection.Counts(); receivers == 0 {
		return Transfer{}, TickHandle{}, ErrNoReceivers
	}

	head := files[0]
	t := Transfer{
		ID:       uuid.NewString(),
		Name:     head.Name,
		Progress: 0,
		Status:   TransferInProgress,
	}

	m.mu.Lock()
	m.transfers = append([]Transfer{t}, m.transfers...)
	m.seq[t.ID] = 1
	h := TickHandle{ID: t.ID, Seq: 1}
	m.mu.Unlock()
	m.notify()
	return t, h, nil
}

// Advance applies one tick for the given handle. It returns the handle for
// the next tick and whether the run is still live. A stale handle (sequence
// mismatch) or a transfer no longer in-progress advances nothing. Reaching
// 100 flips the transfer to completed and ends the run.
func (m *TransferManager) Advance(h TickHandle) (TickHandle, bool) {
	m.mu.Lock()
	if m.seq[h.ID] != h.Seq {
		m.mu.Unlock()
		return TickHandle{}, false
	}
	i := m.indexLocked(h.ID)
	if i < 0 || m.transfers[i].Status != TransferInProgress {
		m.mu.Unlock()
		return TickHandle{}, false
	}

	m.transfers[i].Progress += ProgressStep
	if m.transfers[i].Progress >= 100 {
		m.transfers[i].Progress = 100
		m.transfers[i].Status = TransferCompleted
		m.seq[h.ID]++
		m.mu.Unlock()
		m.notify()
		return TickHandle{}, false
	}
	m.mu.Unlock()
	m.notify()
	return h, true
}

// Pause stops an in-progress transfer. No-op from any other state, so rapid
// repeated presses stay harmless.
func (m *TransferManager) Pause(id string) {
	m.mu.Lock()
	i := m.indexLocked(id)
	if i < 0 || m.transfers[i].Status != TransferInProgress {
		m.mu.Unlock()
		return
	}
	m.transfers[i].Status = TransferPaused
	m.seq[id]++
	m.mu.Unlock()
	m.notify()
}

// Resume restarts a paused transfer from its current progress value and
// returns the handle for the new run. No-op (false) from any other state.
func (m *TransferManager) Resume(id string) (TickHandle, bool) {
	m.mu.Lock()
	i := m.indexLocked(id)
	if i < 0 || m.transfers[i].Status != TransferPaused {
		m.mu.Unlock()
		return TickHandle{}, false
	}
	m.transfers[i].Status = TransferInProgress
	m.seq[id]++
	h := TickHandle{ID: id, Seq: m.seq[id]}
	m.mu.Unlock()
	m.notify()
	return h, true
}

// Cancel forces any non-terminal transfer to failed. Cancellation is modeled
// as a failure outcome, not a distinct terminal state.
func (m *TransferManager) Cancel(id string) {
	m.mu.Lock()
	i := m.indexLocked(id)
	if i < 0 {
		m.mu.Unlock()
		return
	}
	switch m.transfers[i].Status {
	case TransferCompleted, TransferFailed:
		m.mu.Unlock()
		return
	}
	m.transfers[i].Status = TransferFailed
	m.seq[id]++
	m.mu.Unlock()
	m.notify()
}

// Transfers returns a snapshot of the log, newest first.
func (m *TransferManager) Transfers() []Transfer {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Transfer, len(m.transfers))
	copy(out, m.transfers)
	return out
}

// Get looks up one transfer by id.
func (m *TransferManager) Get(id string) (Transfer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexLocked(id); i >= 0 {
		return m.transfers[i], true
	}
	return Transfer{}, false
}

func (m *TransferManager) indexLocked(id string) int {
	for i := range m.transfers {
		if m.transfers[i].ID == id {
			return i
		}
	}
	return -1
}
