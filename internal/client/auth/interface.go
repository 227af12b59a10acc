package auth

import (
	"context"

	pkgapi "github.com/majisoft/majidesk/pkg/api"
)

//go:generate moq -out client_mock.go . APIClient

// APIClient defines the subset of the API client the session manager
// depends on. Token persistence is owned by the client (write-through
// to the token store plus the in-memory cache)
type APIClient interface {
	// Login exchanges credentials for a token pair without storing it
	Login(ctx context.Context, phoneNumber, password string) (*pkgapi.TokenResponse, error)

	// GetProfile returns the current user for the cached access token
	GetProfile(ctx context.Context) (*pkgapi.User, error)

	// Logout notifies the server; local cleanup never depends on it
	Logout(ctx context.Context) error

	// SetTokens persists the pair and updates the in-memory cache
	SetTokens(ctx context.Context, access, refresh string) error

	// ClearTokens drops both the durable and the cached copy
	ClearTokens(ctx context.Context) error

	// SetDeviceID sets the per-device identifier header
	SetDeviceID(id string)
}
