package services_test

import (
	"sync"
	"testing"
	"time"

	"ksabeheer/internal/models"
	"ksabeheer/internal/repositories"
	"ksabeheer/internal/services"

	"github.com/stretchr/testify/assert"
)

func newStreakFixture(t *testing.T) (*services.StreakService, *repositories.MockStreakRepository, *repositories.MockDrinkRepository, *repositories.MockUserRepository) {
	t.Helper()

	streakRepo := repositories.NewMockStreakRepository()
	drinkRepo := repositories.NewMockDrinkRepository()
	userRepo := repositories.NewMockUserRepository()

	assert.NoError(t, userRepo.Create(&models.User{ID: "user-1", Username: "an", Email: "an@ksa.be", Name: "An"}))
	assert.NoError(t, drinkRepo.Create(&models.Drink{ID: "drink-cola", Name: "Cola", Price: 0.80, Category: "drank", Stock: 3}))

	return services.NewStreakService(streakRepo, drinkRepo, userRepo), streakRepo, drinkRepo, userRepo
}

func TestStreakService_StreepChargesAndTakesStock(t *testing.T) {
	svc, _, drinkRepo, userRepo := newStreakFixture(t)

	streak, err := svc.Streep("user-1", "drink-cola")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", streak.UserID)
	assert.Equal(t, "Cola", streak.DrinkName)
	assert.InDelta(t, 0.80, streak.Price, 0.001)
	assert.WithinDuration(t, time.Now(), streak.Timestamp, time.Minute)

	drink, err := drinkRepo.GetByID("drink-cola")
	assert.NoError(t, err)
	assert.Equal(t, 2, drink.Stock)

	user, err := userRepo.GetByID("user-1")
	assert.NoError(t, err)
	assert.InDelta(t, 0.80, user.Balance, 0.001)
}

func TestStreakService_StreepCopiesPriceAtLogTime(t *testing.T) {
	svc, streakRepo, drinkRepo, _ := newStreakFixture(t)

	streak, err := svc.Streep("user-1", "drink-cola")
	assert.NoError(t, err)

	// A later price hike leaves the logged streak untouched.
	assert.NoError(t, drinkRepo.Update(&models.Drink{ID: "drink-cola", Name: "Cola", Price: 1.50, Category: "drank", Stock: 2}))

	logged, err := streakRepo.GetByID(streak.ID)
	assert.NoError(t, err)
	assert.InDelta(t, 0.80, logged.Price, 0.001)
}

func TestStreakService_StreepRejectsOutOfStock(t *testing.T) {
	svc, _, drinkRepo, userRepo := newStreakFixture(t)
	assert.NoError(t, drinkRepo.AdjustStock("drink-cola", -3))

	_, err := svc.Streep("user-1", "drink-cola")
	assert.ErrorIs(t, err, services.ErrOutOfStock)

	// Nothing was charged.
	user, err := userRepo.GetByID("user-1")
	assert.NoError(t, err)
	assert.Zero(t, user.Balance)
}

func TestStreakService_ConcurrentStreepsNeverOverdrawStock(t *testing.T) {
	svc, streakRepo, drinkRepo, userRepo := newStreakFixture(t)
	assert.NoError(t, drinkRepo.AdjustStock("drink-cola", -2)) // one unit left

	// Both goroutines race for the last unit; the conditional decrement
	// hands it to exactly one of them.
	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Streep("user-1", "drink-cola")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var served, rejected int
	for err := range results {
		if err == nil {
			served++
		} else {
			assert.ErrorIs(t, err, services.ErrOutOfStock)
			rejected++
		}
	}
	assert.Equal(t, 1, served)
	assert.Equal(t, 1, rejected)

	drink, err := drinkRepo.GetByID("drink-cola")
	assert.NoError(t, err)
	assert.Equal(t, 0, drink.Stock)

	streaks, err := streakRepo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, streaks, 1)

	user, err := userRepo.GetByID("user-1")
	assert.NoError(t, err)
	assert.InDelta(t, 0.80, user.Balance, 0.001)
}

func TestStreakService_StreepUnknownUserOrDrink(t *testing.T) {
	svc, _, _, _ := newStreakFixture(t)

	_, err := svc.Streep("user-missing", "drink-cola")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = svc.Streep("user-1", "drink-missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestStreakService_RemoveStreakRefundsAndRestocks(t *testing.T) {
	svc, streakRepo, drinkRepo, userRepo := newStreakFixture(t)

	streak, err := svc.Streep("user-1", "drink-cola")
	assert.NoError(t, err)

	assert.NoError(t, svc.RemoveStreak(streak.ID))

	_, err = streakRepo.GetByID(streak.ID)
	assert.Error(t, err)

	drink, err := drinkRepo.GetByID("drink-cola")
	assert.NoError(t, err)
	assert.Equal(t, 3, drink.Stock)

	user, err := userRepo.GetByID("user-1")
	assert.NoError(t, err)
	assert.Zero(t, user.Balance)
}

func TestStreakService_RemoveStreakSurvivesDeletedDrink(t *testing.T) {
	svc, _, drinkRepo, userRepo := newStreakFixture(t)

	streak, err := svc.Streep("user-1", "drink-cola")
	assert.NoError(t, err)

	// The drink is delisted before the admin removes the streak: the refund
	// still lands, the restock is skipped.
	assert.NoError(t, drinkRepo.Delete("drink-cola"))
	assert.NoError(t, svc.RemoveStreak(streak.ID))

	user, err := userRepo.GetByID("user-1")
	assert.NoError(t, err)
	assert.Zero(t, user.Balance)
}

func TestStreakService_ListWeekUsesHalfOpenWindow(t *testing.T) {
	svc, streakRepo, _, _ := newStreakFixture(t)
	weekStart := services.WeekStart(time.Now())

	inWeek := &models.Streak{ID: "s-in", UserID: "user-1", DrinkID: "drink-cola", DrinkName: "Cola", Price: 0.80, Timestamp: weekStart.Add(time.Hour)}
	lastWeek := &models.Streak{ID: "s-out", UserID: "user-1", DrinkID: "drink-cola", DrinkName: "Cola", Price: 0.80, Timestamp: weekStart.Add(-time.Hour)}
	assert.NoError(t, streakRepo.Create(inWeek))
	assert.NoError(t, streakRepo.Create(lastWeek))

	streaks, err := svc.ListWeek(weekStart)
	assert.NoError(t, err)
	assert.Len(t, streaks, 1)
	assert.Equal(t, "s-in", streaks[0].ID)
}
