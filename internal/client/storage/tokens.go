package storage

import "context"

//go:generate moq -out tokens_mock.go . TokenStore

// Ключи key-value хранилища токенов. Отсутствие значения по ключу
// означает "не залогинен"
const (
	KeyAccessToken  = "authToken"
	KeyRefreshToken = "refreshToken"
	KeyDeviceID     = "deviceID"
)

// TokenStore defines the durable key-value storage for the token pair.
// The durable copy is the source of truth; any in-memory copy above it
// is a cache and must be updated in the same operation (write-through)
type TokenStore interface {
	// GetAccessToken returns the stored access token.
	// Returns ErrTokenNotFound when absent
	GetAccessToken(ctx context.Context) (string, error)

	// GetRefreshToken returns the stored refresh token.
	// Returns ErrTokenNotFound when absent
	GetRefreshToken(ctx context.Context) (string, error)

	// SaveTokens persists the token pair. An empty refresh token keeps
	// the previously stored one (refresh rotation is optional)
	SaveTokens(ctx context.Context, access, refresh string) error

	// DeleteTokens removes both tokens. Deleting an empty store is not
	// an error (logout is idempotent)
	DeleteTokens(ctx context.Context) error

	// GetDeviceID returns the stable per-device identifier.
	// Returns ErrTokenNotFound when the device has none yet
	GetDeviceID(ctx context.Context) (string, error)

	// SaveDeviceID persists the per-device identifier
	SaveDeviceID(ctx context.Context, id string) error
}
