package repositories

import (
	"context"
	"sync"
)

// MockSettingsRepository is an in-memory implementation of SettingsRepository,
// used when no Redis instance is configured and in tests.
type MockSettingsRepository struct {
	values map[string]string
	mu     sync.RWMutex
}

// NewMockSettingsRepository creates a new instance of MockSettingsRepository.
func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{
		values: make(map[string]string),
	}
}

// Get returns the value for key, or an empty string when the key is unset.
func (r *MockSettingsRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[key], nil
}

// Set stores the value for key.
func (r *MockSettingsRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}
