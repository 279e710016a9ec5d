package watch

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBurstCollapsesToOneScan(t *testing.T) {
	var scans atomic.Int32
	m := New(30*time.Millisecond, func() { scans.Add(1) })

	for i := 0; i < 20; i++ {
		m.Notify()
		time.Sleep(2 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return scans.Load() == 1 },
		time.Second, 5*time.Millisecond)

	// Quiet afterwards: still exactly one.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), scans.Load())
}

func TestSeparateBurstsScanSeparately(t *testing.T) {
	var scans atomic.Int32
	m := New(20*time.Millisecond, func() { scans.Add(1) })

	m.Notify()
	assert.Eventually(t, func() bool { return scans.Load() == 1 },
		time.Second, 5*time.Millisecond)

	m.Notify()
	assert.Eventually(t, func() bool { return scans.Load() == 2 },
		time.Second, 5*time.Millisecond)
}

func TestNoNotificationsNoScans(t *testing.T) {
	var scans atomic.Int32
	_ = New(10*time.Millisecond, func() { scans.Add(1) })

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, scans.Load())
}

func TestStopSuppressesPendingScan(t *testing.T) {
	var scans atomic.Int32
	m := New(30*time.Millisecond, func() { scans.Add(1) })

	m.Notify()
	m.Stop()
	m.Notify()

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, scans.Load())
}
