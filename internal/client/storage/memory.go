package storage

import (
	"context"
	"sync"
)

// Memory представляет хранилище токенов в памяти.
// Используется в тестах и как референсная реализация TokenStore;
// содержимое теряется при перезапуске процесса
type Memory struct {
	values map[string]string
	mu     sync.Mutex
}

// Compile-time check that Memory implements TokenStore
var _ TokenStore = (*Memory)(nil)

// NewMemory создает новое пустое хранилище в памяти
func NewMemory() *Memory {
	return &Memory{
		values: make(map[string]string),
	}
}

func (m *Memory) get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrTokenNotFound
	}
	return v, nil
}

// GetAccessToken returns the stored access token
func (m *Memory) GetAccessToken(ctx context.Context) (string, error) {
	return m.get(KeyAccessToken)
}

// GetRefreshToken returns the stored refresh token
func (m *Memory) GetRefreshToken(ctx context.Context) (string, error) {
	return m.get(KeyRefreshToken)
}

// SaveTokens persists the token pair
func (m *Memory) SaveTokens(ctx context.Context, access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[KeyAccessToken] = access
	if refresh != "" {
		m.values[KeyRefreshToken] = refresh
	}
	return nil
}

// DeleteTokens removes both tokens
func (m *Memory) DeleteTokens(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, KeyAccessToken)
	delete(m.values, KeyRefreshToken)
	return nil
}

// GetDeviceID returns the stable per-device identifier
func (m *Memory) GetDeviceID(ctx context.Context) (string, error) {
	return m.get(KeyDeviceID)
}

// SaveDeviceID persists the per-device identifier
func (m *Memory) SaveDeviceID(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[KeyDeviceID] = id
	return nil
}
