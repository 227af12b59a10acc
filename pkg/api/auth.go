package api

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	PhoneNumber string `json:"phone_number"` // телефон пользователя (логин)
	Password    string `json:"password"`     // пароль
}

// TokenResponse представляет ответ с парой токенов доступа
type TokenResponse struct {
	Access  string `json:"access"`  // короткоживущий access token (JWT)
	Refresh string `json:"refresh"` // долгоживущий refresh token
}

// RefreshRequest представляет запрос на обновление access token
type RefreshRequest struct {
	Refresh string `json:"refresh"` // текущий refresh token
}

// RefreshResponse представляет ответ на обновление токена.
// Refresh присутствует только если сервер ротировал refresh token
type RefreshResponse struct {
	Access  string `json:"access"`            // новый access token
	Refresh string `json:"refresh,omitempty"` // новый refresh token (опционально)
}

// User представляет профиль текущего пользователя.
// Запись read-only: клиент никогда не изменяет её по частям,
// профиль заменяется целиком при каждом ответе сервера
type User struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`            // attendant, manager, owner
	Email       string `json:"email,omitempty"` // опционально
	ID          int64  `json:"id"`
	Shop        int64  `json:"shop,omitempty"` // ID привязанной точки продаж
}

// ErrorResponse представляет ответ сервера с ошибкой
type ErrorResponse struct {
	Detail  string `json:"detail,omitempty"`  // основное поле ошибки DRF-бэкенда
	Message string `json:"message,omitempty"` // дополнительное сообщение
	Error   string `json:"error,omitempty"`   // альтернативное поле ошибки
}
