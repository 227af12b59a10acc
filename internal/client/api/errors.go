package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired - sentinel для необратимого истечения сессии.
// Вызывающий код различает его через errors.Is и не показывает
// второй generic-алерт поверх toast'а о выходе
var ErrSessionExpired = errors.New("session expired")

// Error представляет HTTP-ошибку сервера (4xx/5xx кроме обработанного 401).
// Data содержит сырое тело ответа, Message - извлеченное из него
// человекочитаемое сообщение
type Error struct {
	Message string
	Data    json.RawMessage
	Status  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// SessionExpiredError возвращается исходному вызову после неудачного
// обновления токена. Помечен как ErrSessionExpired, чтобы UI не
// дублировал сообщение об ошибке
type SessionExpiredError struct {
	Message string
}

func (e *SessionExpiredError) Error() string {
	return e.Message
}

// Is поддерживает errors.Is(err, ErrSessionExpired)
func (e *SessionExpiredError) Is(target error) bool {
	return target == ErrSessionExpired
}

// Status всегда 401 — сессия истекает только по авторизации
func (e *SessionExpiredError) Status() int {
	return http.StatusUnauthorized
}

// extractMessage достает человекочитаемое сообщение из тела ошибки.
// Бэкенд отдает detail (DRF), message или error; если тело не JSON,
// возвращаем его как текст
func extractMessage(body []byte) string {
	if len(body) == 0 {
		return "request failed"
	}

	var errResp struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil {
		switch {
		case errResp.Detail != "":
			return errResp.Detail
		case errResp.Message != "":
			return errResp.Message
		case errResp.Error != "":
			return errResp.Error
		}
	}

	return string(body)
}
