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

func openSession(t *testing.T) *services.SessionService {
	t.Helper()
	svc := services.NewSessionService(repositories.NewMockOrderRepository(), nil, nil)
	assert.NoError(t, svc.Start())
	return svc
}

func seedOrderUser(t *testing.T, repo *repositories.MockUserRepository, id, username string) {
	t.Helper()
	assert.NoError(t, repo.Create(&models.User{
		ID:       id,
		Username: username,
		Email:    username + "@ksa.be",
		Name:     username,
	}))
}

func fryItems() []models.OrderItem {
	return []models.OrderItem{
		{DrinkID: "", Name: "Kleine friet", Price: 3.00, Quantity: 1, Category: "friet"},
		{DrinkID: "", Name: "Bicky Burger", Price: 4.50, Quantity: 2, Category: "snack"},
	}
}

func TestOrderService_PlaceOrderRequiresOpenSession(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	seedOrderUser(t, userRepo, "user-1", "an")
	session := services.NewSessionService(repositories.NewMockOrderRepository(), nil, nil)

	svc := services.NewOrderService(repositories.NewMockOrderRepository(), userRepo, session, nil, nil)

	_, err := svc.PlaceOrder("user-1", "", fryItems())
	assert.ErrorIs(t, err, services.ErrSessionNotOpen)
}

func TestOrderService_PlaceOrderForSelfChargesBalance(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	seedOrderUser(t, userRepo, "user-1", "an")
	orderRepo := repositories.NewMockOrderRepository()

	svc := services.NewOrderService(orderRepo, userRepo, openSession(t), nil, nil)

	order, err := svc.PlaceOrder("user-1", "", fryItems())
	assert.NoError(t, err)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	// 3.00 + 2 * 4.50
	assert.InDelta(t, 12.00, order.TotalPrice, 0.001)

	user, err := userRepo.GetByID("user-1")
	assert.NoError(t, err)
	assert.InDelta(t, 12.00, user.Balance, 0.001)
}

func TestOrderService_PlaceOrderForOtherNotifiesWithoutCharging(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	seedOrderUser(t, userRepo, "user-1", "an")
	seedOrderUser(t, userRepo, "user-2", "bert")

	notifier := new(MockNotifier)
	notifier.On("Notify", "user-2", "Order placed in your name", "An order of €12.00 was placed in your name.").Return(nil).Once()

	svc := services.NewOrderService(repositories.NewMockOrderRepository(), userRepo, openSession(t), notifier, nil)

	order, err := svc.PlaceOrder("user-1", "user-2", fryItems())
	assert.NoError(t, err)
	assert.Equal(t, "user-2", order.UserID)
	notifier.AssertExpectations(t)

	// Neither member was charged: the target settles at pickup.
	for _, id := range []string{"user-1", "user-2"} {
		user, err := userRepo.GetByID(id)
		assert.NoError(t, err)
		assert.Zero(t, user.Balance)
	}
}

func TestOrderService_PlaceOrderRejectsEmptyAndInvalidItems(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	seedOrderUser(t, userRepo, "user-1", "an")

	svc := services.NewOrderService(repositories.NewMockOrderRepository(), userRepo, openSession(t), nil, nil)

	_, err := svc.PlaceOrder("user-1", "", nil)
	assert.ErrorIs(t, err, services.ErrEmptyOrder)

	_, err = svc.PlaceOrder("user-1", "", []models.OrderItem{{Name: "Friet", Price: 3.00, Quantity: 0}})
	assert.ErrorIs(t, err, services.ErrEmptyOrder)

	_, err = svc.PlaceOrder("user-1", "", []models.OrderItem{{Name: "", Price: 3.00, Quantity: 1}})
	assert.ErrorIs(t, err, services.ErrEmptyOrder)
}

func TestOrderService_PlaceOrderForUnknownTargetFails(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	seedOrderUser(t, userRepo, "user-1", "an")

	svc := services.NewOrderService(repositories.NewMockOrderRepository(), userRepo, openSession(t), nil, nil)

	_, err := svc.PlaceOrder("user-1", "user-missing", fryItems())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestOrderService_RemoveOwnOrderRefundsExactTotal(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	seedOrderUser(t, userRepo, "user-1", "an")
	orderRepo := repositories.NewMockOrderRepository()

	svc := services.NewOrderService(orderRepo, userRepo, openSession(t), nil, nil)

	order, err := svc.PlaceOrder("user-1", "", fryItems())
	assert.NoError(t, err)

	assert.NoError(t, svc.RemoveOrder("user-1", order.ID))

	user, err := userRepo.GetByID("user-1")
	assert.NoError(t, err)
	assert.Zero(t, user.Balance)

	_, err = orderRepo.GetByID(order.ID)
	assert.Error(t, err)
}

func TestOrderService_RemoveOtherMembersOrderDoesNotRefund(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	seedOrderUser(t, userRepo, "user-1", "an")
	seedOrderUser(t, userRepo, "user-2", "bert")
	orderRepo := repositories.NewMockOrderRepository()

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := services.NewOrderService(orderRepo, userRepo, openSession(t), notifier, nil)

	// user-1 orders for user-2; removing it must not credit either member.
	order, err := svc.PlaceOrder("user-1", "user-2", fryItems())
	assert.NoError(t, err)

	assert.NoError(t, svc.RemoveOrder("user-1", order.ID))

	for _, id := range []string{"user-1", "user-2"} {
		user, err := userRepo.GetByID(id)
		assert.NoError(t, err)
		assert.Zero(t, user.Balance)
	}
}

// gatedOrderRepo blocks inside Create until released, so a test can hold a
// ledger write in flight while another goroutine races the session lifecycle.
type gatedOrderRepo struct {
	*repositories.MockOrderRepository
	entered chan struct{}
	release chan struct{}
}

func (r *gatedOrderRepo) Create(order *models.Order) error {
	r.entered <- struct{}{}
	<-r.release
	return r.MockOrderRepository.Create(order)
}

func TestOrderService_FinalizeWaitsForInFlightOrder(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	seedOrderUser(t, userRepo, "user-1", "an")
	orderRepo := &gatedOrderRepo{
		MockOrderRepository: repositories.NewMockOrderRepository(),
		entered:             make(chan struct{}, 1),
		release:             make(chan struct{}),
	}
	session := services.NewSessionService(orderRepo, nil, nil)
	assert.NoError(t, session.Start())

	svc := services.NewOrderService(orderRepo, userRepo, session, nil, nil)

	placed := make(chan error, 1)
	go func() {
		_, err := svc.PlaceOrder("user-1", "", fryItems())
		placed <- err
	}()
	<-orderRepo.entered

	finalized := make(chan error, 1)
	go func() { finalized <- session.Finalize() }()

	// The ledger write is still in flight, so the session cannot finalize
	// underneath it.
	select {
	case <-finalized:
		t.Fatal("session finalized while an order was being written")
	case <-time.After(50 * time.Millisecond):
	}

	close(orderRepo.release)
	assert.NoError(t, <-placed)
	assert.NoError(t, <-finalized)
	assert.Equal(t, models.SessionCompleted, session.Current().Status)

	// Exactly the order placed while open made it in; the frozen ledger
	// rejects anything after.
	orders, err := orderRepo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusPending, orders[0].Status)

	_, err = svc.PlaceOrder("user-1", "", fryItems())
	assert.ErrorIs(t, err, services.ErrSessionNotOpen)
}

func TestOrderService_RemoveOrderRequiresOpenSession(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	seedOrderUser(t, userRepo, "user-1", "an")
	orderRepo := repositories.NewMockOrderRepository()
	session := openSession(t)

	svc := services.NewOrderService(orderRepo, userRepo, session, nil, nil)

	order, err := svc.PlaceOrder("user-1", "", fryItems())
	assert.NoError(t, err)

	// Once the session is finalized the ledger is frozen.
	assert.NoError(t, session.Finalize())
	assert.ErrorIs(t, svc.RemoveOrder("user-1", order.ID), services.ErrSessionNotOpen)

	// The order and the charge are untouched.
	kept, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.InDelta(t, order.TotalPrice, kept.TotalPrice, 0.001)
	user, err := userRepo.GetByID("user-1")
	assert.NoError(t, err)
	assert.InDelta(t, order.TotalPrice, user.Balance, 0.001)
}
