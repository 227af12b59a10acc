package api

import (
	"context"
	"fmt"
	"net/http"

	pkgapi "github.com/majisoft/majidesk/pkg/api"
)

// Login обменивает учетные данные на пару токенов.
// Токены не сохраняются здесь — этим владеет менеджер сессии
func (c *Client) Login(ctx context.Context, phoneNumber, password string) (*pkgapi.TokenResponse, error) {
	var resp pkgapi.TokenResponse
	req := pkgapi.LoginRequest{
		PhoneNumber: phoneNumber,
		Password:    password,
	}
	if err := c.plainPost(ctx, "token/", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// GetProfile возвращает профиль текущего пользователя
func (c *Client) GetProfile(ctx context.Context) (*pkgapi.User, error) {
	r, err := jsonRequest(http.MethodGet, "profile/me/", nil, nil)
	if err != nil {
		return nil, err
	}

	var user pkgapi.User
	if err := c.do(ctx, r, &user); err != nil {
		return nil, fmt.Errorf("get profile request failed: %w", err)
	}
	return &user, nil
}

// Logout уведомляет сервер о выходе. Вызывается best-effort:
// менеджер сессии игнорирует ошибку и всегда чистит локальное состояние
func (c *Client) Logout(ctx context.Context) error {
	r, err := jsonRequest(http.MethodPost, "auth/logout/", nil, nil)
	if err != nil {
		return err
	}
	if err := c.do(ctx, r, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}
