package eventbus

// Имена событий шины. Контракт между API клиентом, менеджером сессии
// и слоем уведомлений (CLI/UI)
const (
	// EventTokenRefreshSuccess публикуется после успешного обновления
	// access token. Полезной нагрузки нет
	EventTokenRefreshSuccess = "tokenRefreshSuccess"

	// EventSessionExpired публикуется при необратимом истечении сессии.
	// Аргументы: message string
	EventSessionExpired = "sessionExpired"

	// EventNavigateLogin публикуется менеджером сессии, когда UI должен
	// вернуть пользователя на экран входа
	EventNavigateLogin = "navigate:login"

	// Toast-события. Аргументы: message string, опционально autoHide bool
	EventToastSuccess = "toast:success"
	EventToastError   = "toast:error"
	EventToastWarning = "toast:warning"
	EventToastInfo    = "toast:info"
)
