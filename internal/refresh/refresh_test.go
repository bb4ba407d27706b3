package refresh

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingImporter struct {
	mu    sync.Mutex
	calls [][]domain.TimetableItem
	err   error
}

func (r *recordingImporter) ReplaceTimetable(_ context.Context, items []domain.TimetableItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, items)
	return r.err
}

const schedule = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//test//EN\r\n" +
	"BEGIN:VEVENT\r\nUID:s1\r\nDTSTAMP:20250901T000000Z\r\n" +
	"DTSTART:20250910T010000Z\r\nDTEND:20250910T014000Z\r\nSUMMARY:Opening\r\n" +
	"END:VEVENT\r\nEND:VCALENDAR\r\n"

func writeSchedule(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.ics")
	require.NoError(t, os.WriteFile(path, []byte(schedule), 0o644))
	return path
}

func TestParseSpec(t *testing.T) {
	_, err := ParseSpec("*/15 * * * *")
	assert.NoError(t, err)
	_, err = ParseSpec("@hourly")
	assert.NoError(t, err)
	_, err = ParseSpec("every so often")
	assert.Error(t, err)
}

func TestRunOnce_ImportsFile(t *testing.T) {
	imp := &recordingImporter{}
	r, err := New("@hourly", writeSchedule(t), imp)
	require.NoError(t, err)

	require.NoError(t, r.RunOnce(context.Background()))

	require.Len(t, imp.calls, 1)
	require.Len(t, imp.calls[0], 1)
	assert.Equal(t, "Opening", imp.calls[0][0].Title)
}

func TestRunOnce_PropagatesErrors(t *testing.T) {
	imp := &recordingImporter{err: errors.New("locked")}
	r, err := New("@hourly", writeSchedule(t), imp)
	require.NoError(t, err)
	assert.ErrorContains(t, r.RunOnce(context.Background()), "locked")

	r, err = New("@hourly", filepath.Join(t.TempDir(), "missing.ics"), &recordingImporter{})
	require.NoError(t, err)
	assert.Error(t, r.RunOnce(context.Background()))
}

func TestStartStop(t *testing.T) {
	r, err := New("@every 1h", writeSchedule(t), &recordingImporter{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	cancel()
	r.Stop()
}
