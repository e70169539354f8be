package services_test

import (
	"testing"
	"time"

	"ksabeheer/internal/models"
	"ksabeheer/internal/repositories"
	"ksabeheer/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockNotifier is a mock implementation of services.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(userID, title, message string) error {
	args := m.Called(userID, title, message)
	return args.Error(0)
}

func (m *MockNotifier) Broadcast(title, message string) error {
	args := m.Called(title, message)
	return args.Error(0)
}

// newOrderedSession drives a fresh session to the ordered state with a
// controllable pickup timer and returns the firing channel.
func newOrderedSession(t *testing.T, orderRepo repositories.OrderRepository, pickup string) (*services.SessionService, chan time.Time) {
	t.Helper()

	notifier := new(MockNotifier)
	notifier.On("Broadcast", mock.Anything, mock.Anything).Return(nil)

	fired := make(chan time.Time, 1)
	svc := services.NewSessionService(orderRepo, notifier, nil,
		services.WithPickupTimer(func(time.Duration) <-chan time.Time {
			return fired
		}),
	)

	assert.NoError(t, svc.Start())
	assert.NoError(t, svc.Finalize())
	assert.NoError(t, svc.StartOrdering())
	assert.NoError(t, svc.MarkOrdered(pickup))
	return svc, fired
}

func TestSessionService_StartsClosed(t *testing.T) {
	svc := services.NewSessionService(repositories.NewMockOrderRepository(), nil, nil)
	defer svc.Shutdown()

	state := svc.Current()
	assert.Equal(t, models.SessionClosed, state.Status)
	assert.Empty(t, state.PickupTime)
}

func TestSessionService_HappyPathKeepsPickupTimeInvariant(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Broadcast", "Frituur besteld", mock.AnythingOfType("string")).Return(nil).Once()

	fired := make(chan time.Time, 1)
	svc := services.NewSessionService(repositories.NewMockOrderRepository(), notifier, nil,
		services.WithPickupTimer(func(time.Duration) <-chan time.Time { return fired }),
	)
	defer svc.Shutdown()

	// pickupTime must be non-empty iff status == ordered, at every step.
	checkInvariant := func() {
		state := svc.Current()
		if state.Status == models.SessionOrdered {
			assert.NotEmpty(t, state.PickupTime)
		} else {
			assert.Empty(t, state.PickupTime)
		}
	}

	checkInvariant()
	assert.NoError(t, svc.Start())
	assert.Equal(t, models.SessionOpen, svc.Current().Status)
	checkInvariant()

	assert.NoError(t, svc.Finalize())
	assert.Equal(t, models.SessionCompleted, svc.Current().Status)
	checkInvariant()

	assert.NoError(t, svc.StartOrdering())
	assert.Equal(t, models.SessionOrdering, svc.Current().Status)
	checkInvariant()

	assert.NoError(t, svc.MarkOrdered("18:30"))
	state := svc.Current()
	assert.Equal(t, models.SessionOrdered, state.Status)
	assert.Equal(t, "18:30", state.PickupTime)
	checkInvariant()

	fired <- time.Now()
	assert.Eventually(t, func() bool {
		return svc.Current().Status == models.SessionClosed
	}, time.Second, 10*time.Millisecond)
	checkInvariant()

	notifier.AssertExpectations(t)
}

func TestSessionService_RejectsInvalidTransitions(t *testing.T) {
	svc := services.NewSessionService(repositories.NewMockOrderRepository(), nil, nil)
	defer svc.Shutdown()

	// From closed, only Start is valid.
	assert.ErrorIs(t, svc.Finalize(), services.ErrInvalidTransition)
	assert.ErrorIs(t, svc.StartOrdering(), services.ErrInvalidTransition)
	assert.ErrorIs(t, svc.MarkOrdered("18:30"), services.ErrInvalidTransition)
	assert.ErrorIs(t, svc.Archive(), services.ErrInvalidTransition)
	assert.ErrorIs(t, svc.Reopen(), services.ErrInvalidTransition)

	assert.NoError(t, svc.Start())
	// From open, only Finalize is valid.
	assert.ErrorIs(t, svc.Start(), services.ErrInvalidTransition)
	assert.ErrorIs(t, svc.StartOrdering(), services.ErrInvalidTransition)
	assert.ErrorIs(t, svc.MarkOrdered("18:30"), services.ErrInvalidTransition)
	assert.ErrorIs(t, svc.Archive(), services.ErrInvalidTransition)

	// Failed attempts never moved the session.
	assert.Equal(t, models.SessionOpen, svc.Current().Status)
}

func TestSessionService_ReopenRequiresSecondConfirmingCall(t *testing.T) {
	svc := services.NewSessionService(repositories.NewMockOrderRepository(), nil, nil)
	defer svc.Shutdown()

	assert.NoError(t, svc.Start())
	assert.NoError(t, svc.Finalize())

	// First call only arms the reopen.
	err := svc.Reopen()
	assert.ErrorIs(t, err, services.ErrReopenNotConfirmed)
	assert.Equal(t, models.SessionCompleted, svc.Current().Status)

	// Second call performs it.
	assert.NoError(t, svc.Reopen())
	assert.Equal(t, models.SessionOpen, svc.Current().Status)

	// Arming does not survive the confirmed reopen: the next finalize/reopen
	// cycle needs both taps again.
	assert.NoError(t, svc.Finalize())
	assert.ErrorIs(t, svc.Reopen(), services.ErrReopenNotConfirmed)
}

func TestSessionService_OrderingIsAOneWayGate(t *testing.T) {
	svc := services.NewSessionService(repositories.NewMockOrderRepository(), nil, nil)
	defer svc.Shutdown()

	assert.NoError(t, svc.Start())
	assert.NoError(t, svc.Finalize())

	// Arming a reopen and then starting to order clears the armed state and
	// closes the gate.
	assert.ErrorIs(t, svc.Reopen(), services.ErrReopenNotConfirmed)
	assert.NoError(t, svc.StartOrdering())

	// We already called the shop: no way back to open from here.
	assert.ErrorIs(t, svc.Reopen(), services.ErrInvalidTransition)
	assert.Equal(t, models.SessionOrdering, svc.Current().Status)
}

func TestSessionService_MarkOrderedValidatesPickupTime(t *testing.T) {
	svc := services.NewSessionService(repositories.NewMockOrderRepository(), nil, nil)
	defer svc.Shutdown()

	assert.NoError(t, svc.Start())
	assert.NoError(t, svc.Finalize())
	assert.NoError(t, svc.StartOrdering())

	for _, bad := range []string{"", "25:99", "630", "18.30", "tomorrow"} {
		assert.ErrorIs(t, svc.MarkOrdered(bad), services.ErrInvalidPickupTime, "pickup %q", bad)
		assert.Equal(t, models.SessionOrdering, svc.Current().Status)
	}
}

func TestSessionService_ArchiveCompletesPendingOrders(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	seed := []models.Order{
		{ID: "order-1", UserID: "user-1", TotalPrice: 5.00, Date: time.Now(), Status: models.OrderStatusPending},
		{ID: "order-2", UserID: "user-2", TotalPrice: 8.50, Date: time.Now(), Status: models.OrderStatusPending},
		{ID: "order-3", UserID: "user-3", TotalPrice: 3.00, Date: time.Now(), Status: models.OrderStatusCompleted},
		{ID: "order-4", UserID: "user-1", TotalPrice: 2.00, Date: time.Now(), Status: models.OrderStatusCancelled},
	}
	for i := range seed {
		assert.NoError(t, orderRepo.Create(&seed[i]))
	}

	svc, fired := newOrderedSession(t, orderRepo, "18:30")
	defer svc.Shutdown()

	// The pickup deadline passes.
	fired <- time.Now()
	assert.Eventually(t, func() bool {
		return svc.Current().Status == models.SessionClosed
	}, time.Second, 10*time.Millisecond)
	assert.Empty(t, svc.Current().PickupTime)

	// Every pending order completed; the rest untouched.
	wantStatus := map[string]string{
		"order-1": models.OrderStatusCompleted,
		"order-2": models.OrderStatusCompleted,
		"order-3": models.OrderStatusCompleted,
		"order-4": models.OrderStatusCancelled,
	}
	for id, want := range wantStatus {
		order, err := orderRepo.GetByID(id)
		assert.NoError(t, err)
		assert.Equal(t, want, order.Status, "order %s", id)
	}
}

func TestSessionService_ManualArchive(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	pending := models.Order{ID: "order-1", UserID: "user-1", TotalPrice: 5.00, Date: time.Now(), Status: models.OrderStatusPending}
	assert.NoError(t, orderRepo.Create(&pending))

	svc, _ := newOrderedSession(t, orderRepo, "18:30")
	defer svc.Shutdown()

	assert.NoError(t, svc.Archive())
	state := svc.Current()
	assert.Equal(t, models.SessionClosed, state.Status)
	assert.Empty(t, state.PickupTime)

	order, err := orderRepo.GetByID("order-1")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)

	// Archiving twice is rejected: the session is already closed.
	assert.ErrorIs(t, svc.Archive(), services.ErrInvalidTransition)
}

func TestSessionService_PickupTimerUsesDeadlineFromClock(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Broadcast", mock.Anything, mock.Anything).Return(nil)

	// A fixed clock at 17:00 local time.
	now := time.Date(2026, time.September, 1, 17, 0, 0, 0, time.Local)

	var waited time.Duration
	svc := services.NewSessionService(repositories.NewMockOrderRepository(), notifier, nil,
		services.WithClock(func() time.Time { return now }),
		services.WithPickupTimer(func(d time.Duration) <-chan time.Time {
			waited = d
			return make(chan time.Time) // never fires in this test
		}),
	)
	defer svc.Shutdown()

	assert.NoError(t, svc.Start())
	assert.NoError(t, svc.Finalize())
	assert.NoError(t, svc.StartOrdering())
	assert.NoError(t, svc.MarkOrdered("18:30"))

	assert.Equal(t, 90*time.Minute, waited)
}

func TestSessionService_PastPickupTimeArchivesImmediately(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Broadcast", mock.Anything, mock.Anything).Return(nil)

	now := time.Date(2026, time.September, 1, 19, 0, 0, 0, time.Local)

	var waited time.Duration
	svc := services.NewSessionService(repositories.NewMockOrderRepository(), notifier, nil,
		services.WithClock(func() time.Time { return now }),
		services.WithPickupTimer(func(d time.Duration) <-chan time.Time {
			waited = d
			return make(chan time.Time)
		}),
	)
	defer svc.Shutdown()

	assert.NoError(t, svc.Start())
	assert.NoError(t, svc.Finalize())
	assert.NoError(t, svc.StartOrdering())
	assert.NoError(t, svc.MarkOrdered("18:30"))

	// 18:30 already passed at 19:00, so the timer is armed with no delay.
	assert.Equal(t, time.Duration(0), waited)
}

func TestSessionService_BroadcastsPickupTime(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Broadcast", "Frituur besteld", "The fry order has been called in. Pickup at 18:30.").Return(nil).Once()

	svc := services.NewSessionService(repositories.NewMockOrderRepository(), notifier, nil,
		services.WithPickupTimer(func(time.Duration) <-chan time.Time { return make(chan time.Time) }),
	)
	defer svc.Shutdown()

	assert.NoError(t, svc.Start())
	assert.NoError(t, svc.Finalize())
	assert.NoError(t, svc.StartOrdering())
	assert.NoError(t, svc.MarkOrdered("18:30"))

	notifier.AssertExpectations(t)
}

func TestSessionService_CancelledTimerDoesNotArchiveNextSession(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	svc, fired := newOrderedSession(t, orderRepo, "18:30")
	defer svc.Shutdown()

	// Manual archive cancels the pickup timer.
	assert.NoError(t, svc.Archive())
	assert.Equal(t, models.SessionClosed, svc.Current().Status)

	// A new session opens; the stale timer firing must not close it.
	assert.NoError(t, svc.Start())
	select {
	case fired <- time.Now():
	default:
	}
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, models.SessionOpen, svc.Current().Status)
	assert.ErrorIs(t, svc.Archive(), services.ErrInvalidTransition)
}
