// Package tracking simulates vehicle movement for in-transit donations. A
// session interpolates positions between the donor and the charity on a
// fixed tick; it is not a routing engine and does not pretend to be one.
package tracking

import (
	"math"
	"sync"
	"time"

	"sustainshare/internal/geo"
)

const (
	// DefaultTotalSteps is the number of ticks a simulated journey takes.
	DefaultTotalSteps = 60
	// DefaultTickInterval is the wall-clock delay between position updates.
	DefaultTickInterval = 3 * time.Second
	// routeWaypoints is the number of segments in the display polyline.
	routeWaypoints = 20
)

// SessionStatus is the state of a simulated journey.
type SessionStatus string

const (
	SessionInTransit SessionStatus = "in_transit"
	SessionDelivered SessionStatus = "delivered"
	SessionCancelled SessionStatus = "cancelled"
)

// Options tune a simulation. Tests shrink the tick interval; production code
// uses the defaults.
type Options struct {
	TotalSteps   int
	TickInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.TotalSteps <= 0 {
		o.TotalSteps = DefaultTotalSteps
	}
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	return o
}

// Snapshot is a point-in-time copy of a session's state, safe to serialize.
type Snapshot struct {
	DonationID      string        `json:"donationId"`
	DonorCoords     geo.Point     `json:"donorCoords"`
	CharityCoords   geo.Point     `json:"charityCoords"`
	Route           []geo.Point   `json:"route"`
	CurrentPosition geo.Point     `json:"currentPosition"`
	ProgressStep    int           `json:"progressStep"`
	TotalSteps      int           `json:"totalSteps"`
	EtaMinutes      int           `json:"etaMinutes"`
	DistanceKm      float64       `json:"distanceKm"`
	Status          SessionStatus `json:"status"`
}

// Session is a running simulated journey. Sessions hold a recurring timer
// and must be stopped explicitly when the donation leaves IN_TRANSIT
// out-of-band, or the timer leaks.
type Session struct {
	mu       sync.Mutex
	state    Snapshot
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	complete sync.Once
}

// Start begins a simulated journey and invokes onComplete exactly once when
// the vehicle reaches the charity.
func Start(donationID string, donor, charity geo.Point, opts Options, onComplete func()) *Session {
	opts = opts.withDefaults()

	s := &Session{
		state: Snapshot{
			DonationID:      donationID,
			DonorCoords:     donor,
			CharityCoords:   charity,
			Route:           geo.Route(donor, charity, routeWaypoints),
			CurrentPosition: donor,
			TotalSteps:      opts.TotalSteps,
			EtaMinutes:      geo.TravelTimeMinutes(geo.Distance(donor, charity)),
			DistanceKm:      geo.Distance(donor, charity),
			Status:          SessionInTransit,
		},
		ticker: time.NewTicker(opts.TickInterval),
		done:   make(chan struct{}),
	}

	go s.run(onComplete)
	return s
}

func (s *Session) run(onComplete func()) {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			if s.advance() {
				s.ticker.Stop()
				if onComplete != nil {
					s.complete.Do(onComplete)
				}
				return
			}
		}
	}
}

// advance moves the simulation one step and reports completion.
func (s *Session) advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status != SessionInTransit {
		return true
	}

	s.state.ProgressStep++
	if s.state.ProgressStep >= s.state.TotalSteps {
		s.state.ProgressStep = s.state.TotalSteps
		s.state.CurrentPosition = s.state.CharityCoords
		s.state.Status = SessionDelivered
		s.state.EtaMinutes = 0
		return true
	}

	progress := float64(s.state.ProgressStep) / float64(s.state.TotalSteps)
	s.state.CurrentPosition = geo.Interpolate(s.state.DonorCoords, s.state.CharityCoords, progress)
	s.state.EtaMinutes = int(math.Max(1, math.Round(float64(s.state.TotalSteps-s.state.ProgressStep)/2)))
	return false
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	snap.Route = append([]geo.Point(nil), s.state.Route...)
	return snap
}

// Stop cancels the session's timer. A delivered session keeps its final
// state; an interrupted one is marked cancelled. Stop is idempotent.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		if s.state.Status == SessionInTransit {
			s.state.Status = SessionCancelled
		}
		s.mu.Unlock()
		s.ticker.Stop()
		close(s.done)
	})
}
