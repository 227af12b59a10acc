package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/majisoft/majidesk/internal/client/storage"
)

// Compile-time check that Storage implements TokenStore
var _ storage.TokenStore = (*Storage)(nil)

// get возвращает значение по ключу из auth bucket
func (s *Storage) get(key string) (string, error) {
	var value string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrTokenNotFound
		}

		value = string(data)
		return nil
	})
	if err != nil {
		return "", err
	}

	return value, nil
}

// GetAccessToken returns the stored access token
func (s *Storage) GetAccessToken(ctx context.Context) (string, error) {
	return s.get(storage.KeyAccessToken)
}

// GetRefreshToken returns the stored refresh token
func (s *Storage) GetRefreshToken(ctx context.Context) (string, error) {
	return s.get(storage.KeyRefreshToken)
}

// SaveTokens persists the token pair in one transaction.
// Пустой refresh означает, что сервер не ротировал refresh token —
// сохраненное значение остается прежним
func (s *Storage) SaveTokens(ctx context.Context, access, refresh string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		if err := bucket.Put([]byte(storage.KeyAccessToken), []byte(access)); err != nil {
			return fmt.Errorf("failed to save access token: %w", err)
		}
		if refresh != "" {
			if err := bucket.Put([]byte(storage.KeyRefreshToken), []byte(refresh)); err != nil {
				return fmt.Errorf("failed to save refresh token: %w", err)
			}
		}

		return nil
	})
}

// DeleteTokens removes both tokens (logout). Deleting absent keys is
// not an error — logout must be idempotent
func (s *Storage) DeleteTokens(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		if err := bucket.Delete([]byte(storage.KeyAccessToken)); err != nil {
			return fmt.Errorf("failed to delete access token: %w", err)
		}
		if err := bucket.Delete([]byte(storage.KeyRefreshToken)); err != nil {
			return fmt.Errorf("failed to delete refresh token: %w", err)
		}

		return nil
	})
}

// GetDeviceID returns the stable per-device identifier
func (s *Storage) GetDeviceID(ctx context.Context) (string, error) {
	return s.get(storage.KeyDeviceID)
}

// SaveDeviceID persists the per-device identifier
func (s *Storage) SaveDeviceID(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		if err := bucket.Put([]byte(storage.KeyDeviceID), []byte(id)); err != nil {
			return fmt.Errorf("failed to save device id: %w", err)
		}

		return nil
	})
}
