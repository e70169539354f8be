package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"ksabeheer/internal/repositories"
)

// Settings keys used by the billing screens. The values are a spreadsheet
// link for the drink tab, one for the billing export, and the JSON-encoded
// list of user IDs that have settled their tab.
const (
	SettingExcelLink        = "teamDrankExcelLink"
	SettingBillingExcelLink = "teamDrankBillingExcelLink"
	SettingPaidUsers        = "teamDrankPaidUsers"
)

// BillingService manages the team-drink billing settings. Missing keys read
// as empty values; nothing here is fatal.
type BillingService struct {
	settings repositories.SettingsRepository
}

// NewBillingService creates a new BillingService.
func NewBillingService(settings repositories.SettingsRepository) *BillingService {
	return &BillingService{
		settings: settings,
	}
}

// ExcelLink returns the drink-tab spreadsheet link, empty when unset.
func (s *BillingService) ExcelLink(ctx context.Context) (string, error) {
	return s.settings.Get(ctx, SettingExcelLink)
}

// SetExcelLink stores the drink-tab spreadsheet link.
func (s *BillingService) SetExcelLink(ctx context.Context, link string) error {
	return s.settings.Set(ctx, SettingExcelLink, link)
}

// BillingExcelLink returns the billing spreadsheet link, empty when unset.
func (s *BillingService) BillingExcelLink(ctx context.Context) (string, error) {
	return s.settings.Get(ctx, SettingBillingExcelLink)
}

// SetBillingExcelLink stores the billing spreadsheet link.
func (s *BillingService) SetBillingExcelLink(ctx context.Context, link string) error {
	return s.settings.Set(ctx, SettingBillingExcelLink, link)
}

// PaidUsers returns the IDs of members marked as having paid. A missing or
// unparseable value reads as an empty list.
func (s *BillingService) PaidUsers(ctx context.Context) ([]string, error) {
	raw, err := s.settings.Get(ctx, SettingPaidUsers)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		log.Printf("Warning: corrupt paid-users setting, treating as empty: %v", err)
		return []string{}, nil
	}
	return ids, nil
}

// IsPaid reports whether a member is on the paid list.
func (s *BillingService) IsPaid(ctx context.Context, userID string) (bool, error) {
	ids, err := s.PaidUsers(ctx)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

// MarkPaid adds a member to the paid list. Marking twice is a no-op.
func (s *BillingService) MarkPaid(ctx context.Context, userID string) error {
	ids, err := s.PaidUsers(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == userID {
			return nil
		}
	}
	return s.storePaidUsers(ctx, append(ids, userID))
}

// UnmarkPaid removes a member from the paid list.
func (s *BillingService) UnmarkPaid(ctx context.Context, userID string) error {
	ids, err := s.PaidUsers(ctx)
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, id := range ids {
		if id != userID {
			kept = append(kept, id)
		}
	}
	return s.storePaidUsers(ctx, kept)
}

func (s *BillingService) storePaidUsers(ctx context.Context, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal paid users: %w", err)
	}
	return s.settings.Set(ctx, SettingPaidUsers, string(raw))
}
