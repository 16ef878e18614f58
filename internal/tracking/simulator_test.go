package tracking

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sustainshare/internal/geo"
)

var (
	testDonor   = geo.Point{17.4065, 78.4772}
	testCharity = geo.Point{17.4126, 78.44}
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestSessionDeliversAfterTotalSteps(t *testing.T) {
	var completions atomic.Int32
	opts := Options{TotalSteps: 10, TickInterval: time.Millisecond}

	session := Start("food-1", testDonor, testCharity, opts, func() {
		completions.Add(1)
	})
	defer session.Stop()

	waitFor(t, func() bool { return session.Snapshot().Status == SessionDelivered })

	snap := session.Snapshot()
	assert.Equal(t, 10, snap.ProgressStep)
	assert.InDelta(t, testCharity.Lat(), snap.CurrentPosition.Lat(), 1e-9)
	assert.InDelta(t, testCharity.Lng(), snap.CurrentPosition.Lng(), 1e-9)
	assert.Equal(t, 0, snap.EtaMinutes)

	// Completion fires exactly once even after further waiting.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), completions.Load())
}

func TestSessionEtaDecreases(t *testing.T) {
	opts := Options{TotalSteps: 60, TickInterval: time.Millisecond}
	session := Start("food-1", testDonor, testCharity, opts, nil)
	defer session.Stop()

	waitFor(t, func() bool { return session.Snapshot().ProgressStep >= 2 })

	snap := session.Snapshot()
	if snap.Status == SessionInTransit {
		// ETA formula: max(1, round((totalSteps-step)/2)) minutes.
		expected := (60 - snap.ProgressStep + 1) / 2
		assert.InDelta(t, expected, snap.EtaMinutes, 1)
		assert.Equal(t, 60, snap.TotalSteps)
	}
}

func TestSessionRouteShape(t *testing.T) {
	session := Start("food-1", testDonor, testCharity, Options{TotalSteps: 5, TickInterval: time.Hour}, nil)
	defer session.Stop()

	snap := session.Snapshot()
	assert.Len(t, snap.Route, 21)
	assert.Equal(t, testDonor, snap.Route[0])
	assert.Equal(t, testDonor, snap.CurrentPosition)
	assert.Equal(t, SessionInTransit, snap.Status)
	assert.Greater(t, snap.DistanceKm, 0.0)
}

func TestSessionStopCancels(t *testing.T) {
	var completions atomic.Int32
	session := Start("food-1", testDonor, testCharity, Options{TotalSteps: 1000, TickInterval: time.Millisecond}, func() {
		completions.Add(1)
	})

	session.Stop()
	session.Stop() // idempotent

	snap := session.Snapshot()
	assert.Equal(t, SessionCancelled, snap.Status)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(0), completions.Load())
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(Options{TotalSteps: 5, TickInterval: time.Millisecond})

	var done atomic.Bool
	m.Start("food-1", testDonor, testCharity, func() { done.Store(true) })

	_, ok := m.Get("food-1")
	assert.True(t, ok)

	waitFor(t, done.Load)

	// Completed sessions are dropped from the manager.
	waitFor(t, func() bool {
		_, ok := m.Get("food-1")
		return !ok
	})
}

func TestManagerStopRemovesSession(t *testing.T) {
	m := NewManager(Options{TotalSteps: 1000, TickInterval: time.Millisecond})
	m.Start("food-1", testDonor, testCharity, nil)

	m.Stop("food-1")

	_, ok := m.Get("food-1")
	assert.False(t, ok)
}
