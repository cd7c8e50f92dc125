package services

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ghuser/fnbrowser/services/cosmetic/domain/models"
)

// ShuffleSteps is the number of candidates shown before the randomizer settles.
const ShuffleSteps = 8

// ShuffleDelay is the pause after the given (1-based) step: 30ms plus an
// ease-out quartic share of 100ms, so the shuffle starts fast and slows down.
func ShuffleDelay(step int) time.Duration {
	progress := float64(step) / ShuffleSteps
	eased := 1 - math.Pow(1-progress, 4)
	return 30*time.Millisecond + time.Duration(eased*float64(100*time.Millisecond))
}

// ShuffleState is the randomizer's position in Idle → Shuffling → Settled.
type ShuffleState int

const (
	ShuffleIdle ShuffleState = iota
	ShuffleShuffling
	ShuffleSettled
)

func (s ShuffleState) String() string {
	switch s {
	case ShuffleShuffling:
		return "shuffling"
	case ShuffleSettled:
		return "settled"
	default:
		return "idle"
	}
}

// Notification is the transient message announcing the settled cosmetic.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ShuffleListener observes a shuffle. Callbacks run on the scheduler's
// goroutine, never while the Shuffler holds its lock.
type ShuffleListener interface {
	OnStep(step int, candidate models.Cosmetic)
	OnSettled(chosen models.Cosmetic, n Notification)
}

// Scheduler runs f once after d. time.AfterFunc satisfies it.
type Scheduler func(d time.Duration, f func())

// ShuffleOption customises a Shuffler.
type ShuffleOption func(*Shuffler)

// WithScheduler replaces the timer used between steps.
func WithScheduler(s Scheduler) ShuffleOption {
	return func(sh *Shuffler) { sh.schedule = s }
}

// WithIntN replaces the random source; intN(n) must return a value in [0, n).
func WithIntN(intN func(n int) int) ShuffleOption {
	return func(sh *Shuffler) { sh.intN = intN }
}

// Shuffler is the "surprise me" randomizer. Each step is scheduled by the
// previous one; the trigger is refused while a shuffle is running.
type Shuffler struct {
	mu       sync.Mutex
	state    ShuffleState
	current  *models.Cosmetic
	closed   bool
	listener ShuffleListener
	schedule Scheduler
	intN     func(n int) int
}

// NewShuffler returns an idle Shuffler reporting to l.
func NewShuffler(l ShuffleListener, opts ...ShuffleOption) *Shuffler {
	s := &Shuffler{
		listener: l,
		schedule: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		intN:     rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins a shuffle over view and reports whether it was accepted. It is
// refused when view is empty, a shuffle is in flight, or the Shuffler is
// closed. A single-item view settles immediately on that item.
func (s *Shuffler) Start(view []models.Cosmetic) bool {
	s.mu.Lock()
	if s.closed || s.state == ShuffleShuffling || len(view) == 0 {
		s.mu.Unlock()
		return false
	}
	snapshot := make([]models.Cosmetic, len(view))
	copy(snapshot, view)

	if len(snapshot) == 1 {
		s.current = &snapshot[0]
		s.state = ShuffleSettled
		s.mu.Unlock()
		s.listener.OnSettled(snapshot[0], notify(snapshot[0]))
		return true
	}

	s.state = ShuffleShuffling
	s.mu.Unlock()
	s.step(snapshot, 1)
	return true
}

func (s *Shuffler) step(view []models.Cosmetic, n int) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	idx := s.pick(view)
	s.current = &view[idx]
	candidate := view[idx]
	last := n >= ShuffleSteps
	if last {
		s.state = ShuffleSettled
	}
	s.mu.Unlock()

	s.listener.OnStep(n, candidate)
	if last {
		s.listener.OnSettled(candidate, notify(candidate))
		return
	}
	s.schedule(ShuffleDelay(n), func() { s.step(view, n+1) })
}

// pick draws a uniform index, excluding the current candidate's index when
// the view has more than one item. Caller holds s.mu.
func (s *Shuffler) pick(view []models.Cosmetic) int {
	exclude := -1
	if s.current != nil {
		for i := range view {
			if view[i].ID == s.current.ID {
				exclude = i
				break
			}
		}
	}
	if exclude < 0 || len(view) < 2 {
		return s.intN(len(view))
	}
	idx := s.intN(len(view) - 1)
	if idx >= exclude {
		idx++
	}
	return idx
}

// Select makes c the displayed candidate, e.g. when a detail view is opened
// directly. It becomes the exclusion reference for the next shuffle.
func (s *Shuffler) Select(c models.Cosmetic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == ShuffleShuffling {
		return
	}
	s.current = &c
	s.state = ShuffleSettled
}

// State returns the current state.
func (s *Shuffler) State() ShuffleState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the displayed candidate, if any.
func (s *Shuffler) Current() (models.Cosmetic, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.Cosmetic{}, false
	}
	return *s.current, true
}

// Close turns pending steps into no-ops. Used when the owning session goes away.
func (s *Shuffler) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func notify(c models.Cosmetic) Notification {
	return Notification{Title: c.Name, Description: c.Description}
}
