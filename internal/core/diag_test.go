package core

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDiagRecordGatedOnToggle(t *testing.T) {
	t.Parallel()
	enabled := false
	d := NewDiagLog(func() bool { return enabled })

	d.Record("scan", "settle", nil)
	require.Empty(t, d.Events())

	enabled = true
	d.Record("scan", "settle", nil)
	require.Len(t, d.Events(), 1)
}

func TestDiagRedactsSensitiveMetadata(t *testing.T) {
	t.Parallel()
	d := NewDiagLog(nil)

	d.Record("transfer", "confirm", map[string]string{
		"file_name":     "report.pdf",
		"receiver_name": "Aarav iPhone",
		"receivers":     "1",
	})

	events := d.Events()
	require.Len(t, events, 1)
	require.Equal(t, "[redacted]", events[0].Metadata["file_name"])
	require.Equal(t, "[redacted]", events[0].Metadata["receiver_name"])
	require.Equal(t, "1", events[0].Metadata["receivers"])
}

func TestDiagRetentionDropsOldest(t *testing.T) {
	t.Parallel()
	d := NewDiagLog(nil)
	d.max = 3

	for _, action := range []string{"a", "b", "c", "d"} {
		d.Record("test", action, nil)
	}

	events := d.Events()
	require.Len(t, events, 3)
	require.Equal(t, "b", events[0].Action)
	require.Equal(t, "d", events[2].Action)
}

func TestDiagCounters(t *testing.T) {
	t.Parallel()
	d := NewDiagLog(func() bool { return false })

	// Counters carry no content and are not gated on the toggle.
	d.Increment("scans")
	d.Increment("scans")
	require.Equal(t, uint64(2), d.Counter("scans"))
	require.Zero(t, d.Counter("sends"))
}

func TestDiagExportFormat(t *testing.T) {
	t.Parallel()
	d := NewDiagLog(nil)
	d.now = func() time.Time { return time.UnixMilli(1700000000000) }

	d.Record("scan", "settle", map[string]string{"state": "ready", "devices": "2"})

	var sb strings.Builder
	require.NoError(t, d.Export(&sb))
	require.Equal(t, "1700000000000|scan|settle|devices=2,state=ready\n", sb.String())
}
