package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired проверяет exp-claim access token'а без валидации подписи.
// Подпись проверяет сервер; клиенту достаточно подсказки, жив ли токен.
// Непарсящийся (opaque) токен считаем живым — решение за сервером
func TokenExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
