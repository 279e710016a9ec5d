// Package tracker counts the user's own reply submissions into the daily
// counter. The page runtime reports a submission when a tweet button is
// clicked while the reply composer holds text; the tracker waits a settle
// delay for the post to actually go out, then increments today's counter
// with a short de-duplication window against double-fired events.
package tracker

import (
	"log"
	"sync"
	"time"
)

const (
	defaultSettleDelay = 1 * time.Second
	defaultDedupWindow = 2 * time.Second
)

// Incrementer is the slice of the store the tracker writes through.
type Incrementer interface {
	IncrementReplyCount(date string) error
}

// Tracker accumulates reply submissions.
type Tracker struct {
	st          Incrementer
	settleDelay time.Duration
	dedupWindow time.Duration
	now         func() time.Time

	mu            sync.Mutex
	lastIncrement time.Time
}

// New creates a tracker with the standard delays.
func New(st Incrementer) *Tracker {
	return &Tracker{
		st:          st,
		settleDelay: defaultSettleDelay,
		dedupWindow: defaultDedupWindow,
		now:         time.Now,
	}
}

// NotifySubmission reports one observed reply submission. The increment
// happens after the settle delay.
func (t *Tracker) NotifySubmission() {
	time.AfterFunc(t.settleDelay, t.track)
}

// track applies the de-duplication window and increments today's counter.
// Store failures are logged and never retried; the day under-counts by one.
func (t *Tracker) track() {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.lastIncrement.IsZero() && now.Sub(t.lastIncrement) < t.dedupWindow {
		return
	}

	date := now.Format("2006-01-02")
	if err := t.st.IncrementReplyCount(date); err != nil {
		log.Printf("[tracker] Failed to record reply for %s: %v", date, err)
		return
	}

	t.lastIncrement = now
	log.Printf("[tracker] Reply tracked for %s", date)
}
