package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func readySelection(t *testing.T) *SelectionController {
	t.Helper()
	s := NewSelectionController()
	s.SetFiles([]FileRef{{Name: "report.pdf"}, {Name: "photo.jpg"}})
	s.ToggleReceiver("peer-a", true)
	return s
}

func TestConfirmSendRefusalPrecedence(t *testing.T) {
	t.Parallel()
	s := NewSelectionController()
	m := NewTransferManager(s)

	_, _, err := m.ConfirmSend()
	require.ErrorIs(t, err, ErrNoFiles)

	s.SetFiles([]FileRef{{Name: "report.pdf"}})
	_, _, err = m.ConfirmSend()
	require.ErrorIs(t, err, ErrNoReceivers)

	require.Empty(t, m.Transfers())
}

func TestConfirmSendCreatesOneTransfer(t *testing.T) {
	t.Parallel()
	m := NewTransferManager(readySelection(t))

	tr, h, err := m.ConfirmSend()
	require.NoError(t, err)
	require.NotEmpty(t, tr.ID)
	require.Equal(t, tr.ID, h.ID)
	// Only the head of the file sequence names the transfer.
	require.Equal(t, "report.pdf", tr.Name)
	require.Zero(t, tr.Progress)
	require.Equal(t, TransferInProgress, tr.Status)
	require.Len(t, m.Transfers(), 1)
}

func TestNewTransfersInsertAtHead(t *testing.T) {
	t.Parallel()
	m := NewTransferManager(readySelection(t))

	first, _, err := m.ConfirmSend()
	require.NoError(t, err)
	second, _, err := m.ConfirmSend()
	require.NoError(t, err)

	log := m.Transfers()
	require.Len(t, log, 2)
	require.Equal(t, second.ID, log[0].ID)
	require.Equal(t, first.ID, log[1].ID)
}

func TestFiveTicksCompleteTransfer(t *testing.T) {
	t.Parallel()
	m := NewTransferManager(readySelection(t))
	tr, h, err := m.ConfirmSend()
	require.NoError(t, err)

	for i := 1; i <= 4; i++ {
		next, live := m.Advance(h)
		require.True(t, live)
		got, ok := m.Get(tr.ID)
		require.True(t, ok)
		require.Equal(t, i*ProgressStep, got.Progress)
		h = next
	}

	_, live := m.Advance(h)
	require.False(t, live)

	got, ok := m.Get(tr.ID)
	require.True(t, ok)
	require.Equal(t, 100, got.Progress)
	require.Equal(t, TransferCompleted, got.Status)
}

func TestPauseIsIdempotent(t *testing.T) {
	t.Parallel()
	m := NewTransferManager(readySelection(t))
	tr, h, err := m.ConfirmSend()
	require.NoError(t, err)

	h, live := m.Advance(h)
	require.True(t, live)

	m.Pause(tr.ID)
	m.Pause(tr.ID)
	m.Pause(tr.ID)

	got, ok := m.Get(tr.ID)
	require.True(t, ok)
	require.Equal(t, TransferPaused, got.Status)
	require.Equal(t, ProgressStep, got.Progress)
}

func TestStaleTickCannotResurrect(t *testing.T) {
	t.Parallel()
	m := NewTransferManager(readySelection(t))
	tr, h, err := m.ConfirmSend()
	require.NoError(t, err)

	h, live := m.Advance(h)
	require.True(t, live)
	m.Pause(tr.ID)

	// A tick scheduled before the pause lands with the old sequence.
	_, live = m.Advance(h)
	require.False(t, live)

	got, ok := m.Get(tr.ID)
	require.True(t, ok)
	require.Equal(t, TransferPaused, got.Status)
	require.Equal(t, ProgressStep, got.Progress)
}

func TestResumeContinuesFromPausedProgress(t *testing.T) {
	t.Parallel()
	m := NewTransferManager(readySelection(t))
	tr, h, err := m.ConfirmSend()
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		var live bool
		h, live = m.Advance(h)
		require.True(t, live)
	}
	m.Pause(tr.ID)

	h2, ok := m.Resume(tr.ID)
	require.True(t, ok)
	require.NotEqual(t, h.Seq, h2.Seq)

	_, live := m.Advance(h2)
	require.True(t, live)
	got, found := m.Get(tr.ID)
	require.True(t, found)
	require.Equal(t, 3*ProgressStep, got.Progress)
}

func TestResumeOnlyFromPaused(t *testing.T) {
	t.Parallel()
	m := NewTransferManager(readySelection(t))
	tr, _, err := m.ConfirmSend()
	require.NoError(t, err)

	_, ok := m.Resume(tr.ID)
	require.False(t, ok)

	m.Cancel(tr.ID)
	_, ok = m.Resume(tr.ID)
	require.False(t, ok)

	_, ok = m.Resume("no-such-transfer")
	require.False(t, ok)
}

func TestCancelForcesFailedFromAnyNonTerminal(t *testing.T) {
	t.Parallel()
	m := NewTransferManager(readySelection(t))

	inProg, h, err := m.ConfirmSend()
	require.NoError(t, err)
	h, live := m.Advance(h)
	require.True(t, live)

	paused, _, err := m.ConfirmSend()
	require.NoError(t, err)
	m.Pause(paused.ID)

	m.Cancel(inProg.ID)
	m.Cancel(paused.ID)

	got, _ := m.Get(inProg.ID)
	require.Equal(t, TransferFailed, got.Status)
	got, _ = m.Get(paused.ID)
	require.Equal(t, TransferFailed, got.Status)

	// Cancelling a failed transfer changes nothing, and a stale tick from
	// before the cancel is inert.
	m.Cancel(inProg.ID)
	_, live = m.Advance(h)
	require.False(t, live)
	got, _ = m.Get(inProg.ID)
	require.Equal(t, TransferFailed, got.Status)
	require.Equal(t, ProgressStep, got.Progress)
}

func TestConfirmSendSurvivesConcurrentSelectionChanges(t *testing.T) {
	t.Parallel()
	s := NewSelectionController()
	s.ToggleReceiver("peer-a", true)
	m := NewTransferManager(s)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			s.SetFiles([]FileRef{{Name: "report.pdf"}})
			s.SetFiles(nil)
		}
	}()
	for i := 0; i < 500; i++ {
		tr, _, err := m.ConfirmSend()
		if err != nil {
			require.ErrorIs(t, err, ErrNoFiles)
			continue
		}
		require.Equal(t, "report.pdf", tr.Name)
	}
	<-done
}

func TestCancelAfterCompleteIsNoop(t *testing.T) {
	t.Parallel()
	m := NewTransferManager(readySelection(t))
	tr, h, err := m.ConfirmSend()
	require.NoError(t, err)

	for {
		next, live := m.Advance(h)
		if !live {
			break
		}
		h = next
	}

	m.Cancel(tr.ID)
	got, ok := m.Get(tr.ID)
	require.True(t, ok)
	require.Equal(t, TransferCompleted, got.Status)
	require.Equal(t, 100, got.Progress)
}
