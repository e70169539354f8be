package repositories

import "context"

// SettingsRepository is a small key/value store for team settings (spreadsheet
// links, the paid-users list). Get returns an empty string for a missing key;
// a missing setting is never an error.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
