package storage

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/majisoft/majidesk/internal/crypto"
)

// CipherStore представляет слой шифрования над TokenStore.
// Токены шифруются перед сохранением и расшифровываются при чтении,
// чтобы файл базы не содержал bearer-токены открытым текстом.
// Идентификатор устройства не секретен и проходит без шифрования
type CipherStore struct {
	inner TokenStore
	key   []byte
}

// Compile-time check that CipherStore implements TokenStore
var _ TokenStore = (*CipherStore)(nil)

// NewCipherStore создает слой шифрования над существующим хранилищем.
// key должен быть ровно 32 байта (см. crypto.LoadOrCreateKey)
func NewCipherStore(inner TokenStore, key []byte) (*CipherStore, error) {
	if len(key) != crypto.KeySize {
		return nil, fmt.Errorf("cipher store key must be %d bytes, got %d", crypto.KeySize, len(key))
	}
	return &CipherStore{
		inner: inner,
		key:   key,
	}, nil
}

// seal шифрует значение и кодирует в base64 для хранения строкой
func (c *CipherStore) seal(value string) (string, error) {
	encrypted, err := crypto.Encrypt([]byte(value), c.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(encrypted), nil
}

// open декодирует base64 и расшифровывает значение
func (c *CipherStore) open(stored string) (string, error) {
	encrypted, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", fmt.Errorf("failed to base64 decode token: %w", err)
	}
	value, err := crypto.Decrypt(encrypted, c.key)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt token: %w", err)
	}
	return string(value), nil
}

// GetAccessToken returns the decrypted access token
func (c *CipherStore) GetAccessToken(ctx context.Context) (string, error) {
	stored, err := c.inner.GetAccessToken(ctx)
	if err != nil {
		return "", err
	}
	return c.open(stored)
}

// GetRefreshToken returns the decrypted refresh token
func (c *CipherStore) GetRefreshToken(ctx context.Context) (string, error) {
	stored, err := c.inner.GetRefreshToken(ctx)
	if err != nil {
		return "", err
	}
	return c.open(stored)
}

// SaveTokens encrypts and persists the token pair
func (c *CipherStore) SaveTokens(ctx context.Context, access, refresh string) error {
	sealedAccess, err := c.seal(access)
	if err != nil {
		return err
	}

	sealedRefresh := ""
	if refresh != "" {
		sealedRefresh, err = c.seal(refresh)
		if err != nil {
			return err
		}
	}

	return c.inner.SaveTokens(ctx, sealedAccess, sealedRefresh)
}

// DeleteTokens removes both tokens
func (c *CipherStore) DeleteTokens(ctx context.Context) error {
	return c.inner.DeleteTokens(ctx)
}

// GetDeviceID returns the stable per-device identifier
func (c *CipherStore) GetDeviceID(ctx context.Context) (string, error) {
	return c.inner.GetDeviceID(ctx)
}

// SaveDeviceID persists the per-device identifier
func (c *CipherStore) SaveDeviceID(ctx context.Context, id string) error {
	return c.inner.SaveDeviceID(ctx, id)
}
