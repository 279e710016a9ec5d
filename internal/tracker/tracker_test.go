package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeStore struct {
	increments []string
	err        error
}

func (f *fakeStore) IncrementReplyCount(date string) error {
	if f.err != nil {
		return f.err
	}
	f.increments = append(f.increments, date)
	return nil
}

// newTestTracker returns a tracker with a controllable clock. Tests drive
// track() directly to avoid real timers.
func newTestTracker(fs *fakeStore) (*Tracker, *time.Time) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	tr := New(fs)
	tr.now = func() time.Time { return now }
	return tr, &now
}

func TestTriggersCloseTogetherCountOnce(t *testing.T) {
	fs := &fakeStore{}
	tr, now := newTestTracker(fs)

	tr.track()
	*now = now.Add(500 * time.Millisecond)
	tr.track()

	assert.Len(t, fs.increments, 1)
}

func TestTriggersFarApartCountTwice(t *testing.T) {
	fs := &fakeStore{}
	tr, now := newTestTracker(fs)

	tr.track()
	*now = now.Add(2500 * time.Millisecond)
	tr.track()

	assert.Equal(t, []string{"2026-08-30", "2026-08-30"}, fs.increments)
}

func TestDedupWindowBoundary(t *testing.T) {
	fs := &fakeStore{}
	tr, now := newTestTracker(fs)

	tr.track()
	*now = now.Add(2 * time.Second)
	tr.track()

	// Exactly at the window edge counts again.
	assert.Len(t, fs.increments, 2)
}

func TestFailedIncrementDoesNotArmDedup(t *testing.T) {
	fs := &fakeStore{err: assert.AnError}
	tr, now := newTestTracker(fs)

	tr.track()
	fs.err = nil
	*now = now.Add(100 * time.Millisecond)
	tr.track()

	// The failed write wasn't a successful increment, so the next trigger
	// still counts.
	assert.Len(t, fs.increments, 1)
}

func TestNotifySubmissionUsesSettleDelay(t *testing.T) {
	fs := &fakeStore{}
	tr := New(fs)
	tr.settleDelay = 10 * time.Millisecond

	tr.NotifySubmission()
	assert.Empty(t, fs.increments)

	assert.Eventually(t, func() bool {
		tr.mu.Lock()
		defer tr.mu.Unlock()
		return len(fs.increments) == 1
	}, time.Second, 5*time.Millisecond)
}
