package auth

// Status представляет состояние сессии.
// Переходы: Uninitialized -> Loading -> {Authenticated, Unauthenticated};
// Authenticated -> Unauthenticated на logout или sessionExpired.
// Обратно в Loading можно попасть только перезапуском процесса
type Status int

const (
	StatusUninitialized Status = iota
	StatusLoading
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}
