package services_test

import (
	"context"
	"testing"

	"ksabeheer/internal/repositories"
	"ksabeheer/internal/services"

	"github.com/stretchr/testify/assert"
)

func newBillingFixture() (*services.BillingService, *repositories.MockSettingsRepository) {
	settings := repositories.NewMockSettingsRepository()
	return services.NewBillingService(settings), settings
}

func TestBillingService_ExcelLinks(t *testing.T) {
	svc, _ := newBillingFixture()
	ctx := context.Background()

	// Unset keys read as empty, not as an error.
	link, err := svc.ExcelLink(ctx)
	assert.NoError(t, err)
	assert.Empty(t, link)

	assert.NoError(t, svc.SetExcelLink(ctx, "https://docs.example.com/tab"))
	assert.NoError(t, svc.SetBillingExcelLink(ctx, "https://docs.example.com/billing"))

	link, err = svc.ExcelLink(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "https://docs.example.com/tab", link)

	link, err = svc.BillingExcelLink(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "https://docs.example.com/billing", link)
}

func TestBillingService_PaidList(t *testing.T) {
	svc, _ := newBillingFixture()
	ctx := context.Background()

	paid, err := svc.PaidUsers(ctx)
	assert.NoError(t, err)
	assert.Empty(t, paid)

	assert.NoError(t, svc.MarkPaid(ctx, "user-1"))
	assert.NoError(t, svc.MarkPaid(ctx, "user-2"))

	ok, err := svc.IsPaid(ctx, "user-1")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsPaid(ctx, "user-3")
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, svc.UnmarkPaid(ctx, "user-1"))
	paid, err = svc.PaidUsers(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"user-2"}, paid)
}

func TestBillingService_MarkPaidIsIdempotent(t *testing.T) {
	svc, _ := newBillingFixture()
	ctx := context.Background()

	assert.NoError(t, svc.MarkPaid(ctx, "user-1"))
	assert.NoError(t, svc.MarkPaid(ctx, "user-1"))

	paid, err := svc.PaidUsers(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, paid)
}

func TestBillingService_CorruptPaidListReadsAsEmpty(t *testing.T) {
	svc, settings := newBillingFixture()
	ctx := context.Background()

	assert.NoError(t, settings.Set(ctx, services.SettingPaidUsers, "{not json"))

	paid, err := svc.PaidUsers(ctx)
	assert.NoError(t, err)
	assert.Empty(t, paid)

	// Marking after corruption starts a fresh list instead of failing.
	assert.NoError(t, svc.MarkPaid(ctx, "user-1"))
	paid, err = svc.PaidUsers(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, paid)
}

func TestBillingService_UnmarkUnknownUserIsHarmless(t *testing.T) {
	svc, _ := newBillingFixture()
	ctx := context.Background()

	assert.NoError(t, svc.MarkPaid(ctx, "user-1"))
	assert.NoError(t, svc.UnmarkPaid(ctx, "user-never-paid"))

	paid, err := svc.PaidUsers(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, paid)
}
