package services

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"ksabeheer/internal/models"
	"ksabeheer/internal/repositories"
	"ksabeheer/pkg/rabbitmq"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ErrInvalidTransition is returned when a session operation is not
	// allowed from the current status.
	ErrInvalidTransition = errors.New("invalid session transition")
	// ErrReopenNotConfirmed is returned on the first reopen request; the
	// caller must repeat the request to confirm. This mirrors the two-step
	// tap that guards against accidentally reopening a finalized review.
	ErrReopenNotConfirmed = errors.New("reopen requires a second confirming request")
	// ErrInvalidPickupTime is returned when the pickup time is not HH:MM.
	ErrInvalidPickupTime = errors.New("pickup time must be in HH:MM format")
	// ErrSessionNotOpen is returned when an order is placed or removed
	// outside an open session.
	ErrSessionNotOpen = errors.New("orders can only be placed or removed while the session is open")
)

var sessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ksa_beheer_session_transitions_total",
		Help: "Total number of fry-order session transitions",
	},
	[]string{"from", "to"},
)

// SessionService owns the single global fry-order session and its lifecycle:
//
//	closed -> open -> completed -> ordering -> ordered -> closed
//
// All mutation goes through this service under one mutex, so concurrent
// requests from different devices are serialized (single-writer semantics).
// Invariant: pickupTime is non-empty iff the status is "ordered".
//
// The ordered -> closed edge is time-triggered: a cancellable deadline timer
// keyed to the pickup time archives the session, marking every pending order
// completed. The timer is cancelled whenever the session leaves the ordered
// state or the service shuts down.
type SessionService struct {
	mu          sync.Mutex
	status      models.SessionStatus
	pickupTime  string
	reopenArmed bool
	cancelTimer chan struct{}

	orderRepo repositories.OrderRepository
	notifier  Notifier
	mqClient  *rabbitmq.Client // May be nil when no broker is configured

	now      func() time.Time
	newTimer func(d time.Duration) <-chan time.Time
}

// SessionOption configures a SessionService.
type SessionOption func(*SessionService)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionService) { s.now = now }
}

// WithPickupTimer replaces the deadline timer source, for tests.
func WithPickupTimer(newTimer func(d time.Duration) <-chan time.Time) SessionOption {
	return func(s *SessionService) { s.newTimer = newTimer }
}

// NewSessionService creates a new SessionService. The session starts closed.
func NewSessionService(orderRepo repositories.OrderRepository, notifier Notifier, mqClient *rabbitmq.Client, opts ...SessionOption) *SessionService {
	s := &SessionService{
		status:    models.SessionClosed,
		orderRepo: orderRepo,
		notifier:  notifier,
		mqClient:  mqClient,
		now:       time.Now,
		newTimer: func(d time.Duration) <-chan time.Time {
			return time.After(d)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns a snapshot of the session state.
func (s *SessionService) Current() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SessionState{
		Status:     s.status,
		PickupTime: s.pickupTime,
	}
}

// WhileOpen runs fn with the session lock held, after verifying the session
// is open. Because the lock spans the whole callback, no transition can land
// between the open-check and whatever fn mutates; callers use this to keep
// ledger writes out of a session that is finalizing concurrently. fn must
// not call back into the SessionService.
func (s *SessionService) WhileOpen(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != models.SessionOpen {
		return ErrSessionNotOpen
	}
	return fn()
}

// Start opens a new session: ordering becomes allowed.
func (s *SessionService) Start() error {
	return s.transition(models.SessionClosed, models.SessionOpen)
}

// Finalize locks the session for review; no more orders can be placed or
// removed until it is reopened.
func (s *SessionService) Finalize() error {
	return s.transition(models.SessionOpen, models.SessionCompleted)
}

// Reopen moves a finalized session back to open. The first call only arms
// the reopen and fails with ErrReopenNotConfirmed; the second call performs
// it. Arming is cleared by any other successful transition.
func (s *SessionService) Reopen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != models.SessionCompleted {
		return fmt.Errorf("%w: cannot reopen from %s", ErrInvalidTransition, s.status)
	}
	if !s.reopenArmed {
		s.reopenArmed = true
		return ErrReopenNotConfirmed
	}
	s.reopenArmed = false
	s.status = models.SessionOpen
	sessionTransitionsTotal.WithLabelValues(string(models.SessionCompleted), string(models.SessionOpen)).Inc()
	return nil
}

// StartOrdering marks the session as being phoned in. This is a one-way
// gate: once ordering has started there is no way back to open.
func (s *SessionService) StartOrdering() error {
	return s.transition(models.SessionCompleted, models.SessionOrdering)
}

// MarkOrdered records that the order has been called in with the given
// pickup time (HH:MM, local clock, today). It broadcasts the pickup time to
// all members and starts the deadline timer that will archive the session.
func (s *SessionService) MarkOrdered(pickupTime string) error {
	parsed, err := time.Parse("15:04", pickupTime)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPickupTime, pickupTime)
	}

	s.mu.Lock()
	if s.status != models.SessionOrdering {
		s.mu.Unlock()
		return fmt.Errorf("%w: cannot mark ordered from %s", ErrInvalidTransition, s.status)
	}
	s.status = models.SessionOrdered
	s.pickupTime = pickupTime
	s.reopenArmed = false
	sessionTransitionsTotal.WithLabelValues(string(models.SessionOrdering), string(models.SessionOrdered)).Inc()

	// Arm the archive timer for the pickup deadline. A pickup time that is
	// already past fires immediately.
	now := s.now()
	deadline := pickupDeadline(now, parsed)
	wait := deadline.Sub(now)
	if wait < 0 {
		wait = 0
	}
	cancel := make(chan struct{})
	s.cancelTimer = cancel
	timerC := s.newTimer(wait)
	s.mu.Unlock()

	go func() {
		select {
		case <-timerC:
			if err := s.Archive(); err != nil && !errors.Is(err, ErrInvalidTransition) {
				log.Printf("Warning: failed to archive session at pickup deadline: %v", err)
			}
		case <-cancel:
		}
	}()

	if s.notifier != nil {
		msg := fmt.Sprintf("The fry order has been called in. Pickup at %s.", pickupTime)
		if err := s.notifier.Broadcast("Frituur besteld", msg); err != nil {
			log.Printf("Warning: failed to broadcast pickup time: %v", err)
		}
	}
	s.publishEvent("session.ordered", map[string]interface{}{"pickup_time": pickupTime})

	return nil
}

// Archive closes out an ordered session: every pending order becomes
// completed and the pickup time is cleared. This is the only place order
// status changes. It runs at the pickup deadline, or earlier when triggered
// by a sfeerbeheer member.
func (s *SessionService) Archive() error {
	s.mu.Lock()
	if s.status != models.SessionOrdered {
		s.mu.Unlock()
		return fmt.Errorf("%w: cannot archive from %s", ErrInvalidTransition, s.status)
	}

	completed, err := s.orderRepo.CompleteAllPending()
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to complete pending orders: %w", err)
	}

	s.status = models.SessionClosed
	s.pickupTime = ""
	s.reopenArmed = false
	s.stopTimerLocked()
	sessionTransitionsTotal.WithLabelValues(string(models.SessionOrdered), string(models.SessionClosed)).Inc()
	s.mu.Unlock()

	log.Printf("Session archived, %d orders completed", completed)
	s.publishEvent("session.archived", map[string]interface{}{"completed_orders": completed})
	return nil
}

// Shutdown cancels the pickup timer, if armed.
func (s *SessionService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
}

func (s *SessionService) transition(from, to models.SessionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != from {
		return fmt.Errorf("%w: cannot go from %s to %s", ErrInvalidTransition, s.status, to)
	}
	s.status = to
	s.reopenArmed = false
	sessionTransitionsTotal.WithLabelValues(string(from), string(to)).Inc()
	return nil
}

func (s *SessionService) stopTimerLocked() {
	if s.cancelTimer != nil {
		close(s.cancelTimer)
		s.cancelTimer = nil
	}
}

func (s *SessionService) publishEvent(eventType string, data map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishEvent(eventType, data); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}

// pickupDeadline resolves an HH:MM pickup time against today's date on the
// local clock.
func pickupDeadline(now, parsed time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
}
