package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	clientapi "github.com/majisoft/majidesk/internal/client/api"
	"github.com/majisoft/majidesk/internal/client/eventbus"
	"github.com/majisoft/majidesk/internal/client/storage"
	pkgapi "github.com/majisoft/majidesk/pkg/api"
)

// defaultRedirectDelay - пауза перед navigate:login после истечения
// сессии: toast должен успеть показаться до смены экрана
const defaultRedirectDelay = 1500 * time.Millisecond

// Manager владеет сессией: статус, текущий пользователь, бутстрап при
// старте процесса, логин и логаут. Все побочные эффекты уходят через
// шину событий — менеджер не знает про UI
type Manager struct {
	client        APIClient
	tokens        storage.TokenStore
	bus           *eventbus.Bus
	logger        *slog.Logger
	redirectDelay time.Duration

	mu          sync.Mutex
	user        *pkgapi.User
	status      Status
	initialized bool
}

// NewManager создает менеджер сессии и подписывает его на sessionExpired
func NewManager(client APIClient, tokens storage.TokenStore, bus *eventbus.Bus, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		client:        client,
		tokens:        tokens,
		bus:           bus,
		logger:        logger,
		redirectDelay: defaultRedirectDelay,
		status:        StatusUninitialized,
	}

	bus.Subscribe(eventbus.EventSessionExpired, m.handleSessionExpired)

	return m
}

// Status возвращает текущее состояние сессии
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// User возвращает профиль текущего пользователя или nil
func (m *Manager) User() *pkgapi.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Initialized сообщает, завершился ли Bootstrap. Зависимый UI по этому
// флагу отличает "еще грузимся" от "осознанно разлогинены"
func (m *Manager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// setState атомарно обновляет статус и пользователя
func (m *Manager) setState(status Status, user *pkgapi.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
	m.user = user
}

// Bootstrap восстанавливает сессию из хранилища токенов. Вызывается
// один раз при старте процесса. Всегда помечает менеджер
// инициализированным, каким бы ни был исход
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.setState(StatusLoading, nil)
	defer func() {
		m.mu.Lock()
		m.initialized = true
		m.mu.Unlock()
	}()

	if err := m.ensureDeviceID(ctx); err != nil {
		m.logger.Warn("failed to ensure device id", "error", err)
	}

	access, err := m.tokens.GetAccessToken(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrTokenNotFound) {
			m.logger.Warn("failed to read stored tokens", "error", err)
		}
		// Токенов нет — осознанно разлогинены
		m.setState(StatusUnauthenticated, nil)
		return nil
	}

	if TokenExpired(access, time.Now()) {
		// Не фатально: запрос профиля сам обновит токен по 401
		m.logger.Debug("stored access token expired, relying on refresh")
	}

	user, err := m.client.GetProfile(ctx)
	if err != nil {
		// Токены есть, но сессию не восстановить — чистим и выходим
		// в Unauthenticated с предупреждением пользователю
		if clearErr := m.client.ClearTokens(ctx); clearErr != nil {
			m.logger.Warn("failed to clear tokens during bootstrap", "error", clearErr)
		}
		m.setState(StatusUnauthenticated, nil)
		m.bus.Publish(eventbus.EventToastWarning, "Your session could not be restored. Please log in again.")
		return nil
	}

	m.setState(StatusAuthenticated, user)
	return nil
}

// ensureDeviceID гарантирует стабильный идентификатор устройства:
// генерируется при первом запуске, дальше переиспользуется
func (m *Manager) ensureDeviceID(ctx context.Context) error {
	id, err := m.tokens.GetDeviceID(ctx)
	if errors.Is(err, storage.ErrTokenNotFound) {
		id = uuid.NewString()
		if err := m.tokens.SaveDeviceID(ctx, id); err != nil {
			return fmt.Errorf("failed to save device id: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to read device id: %w", err)
	}

	m.client.SetDeviceID(id)
	return nil
}

// Login выполняет вход по номеру телефона и паролю.
// Ошибки (неверные данные, сеть) публикуются как toast:error и
// возвращаются вызывающему
func (m *Manager) Login(ctx context.Context, phoneNumber, password string) error {
	// Защитный сброс: прошлое полузалогиненное состояние не должно
	// пережить новый вход
	m.setState(StatusUnauthenticated, nil)

	resp, err := m.client.Login(ctx, phoneNumber, password)
	if err != nil {
		m.bus.Publish(eventbus.EventToastError, loginErrorMessage(err))
		return fmt.Errorf("login failed: %w", err)
	}

	// Write-through: durable хранилище и кэш клиента за один шаг
	if err := m.client.SetTokens(ctx, resp.Access, resp.Refresh); err != nil {
		m.bus.Publish(eventbus.EventToastError, "Failed to save your session. Please try again.")
		return err
	}

	user, err := m.client.GetProfile(ctx)
	if err != nil {
		m.bus.Publish(eventbus.EventToastError, "Logged in, but failed to load your profile.")
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	m.setState(StatusAuthenticated, user)
	m.bus.Publish(eventbus.EventToastSuccess, fmt.Sprintf("Welcome back, %s!", user.FullName), true)
	return nil
}

// loginErrorMessage переводит ошибку логина в сообщение пользователю
func loginErrorMessage(err error) string {
	var apiErr *clientapi.Error
	if errors.As(err, &apiErr) {
		// Серверное сообщение уже человекочитаемо
		return apiErr.Message
	}
	return "Login failed. Please check your connection and try again."
}

// Logout выходит из системы. Серверный logout — best effort: его
// ошибка логируется, но локальная чистка выполняется всегда.
// Повторный вызов безопасен
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.client.Logout(ctx); err != nil {
		m.logger.Warn("failed to logout on server", "error", err)
	}

	if err := m.client.ClearTokens(ctx); err != nil {
		m.logger.Warn("failed to clear tokens on logout", "error", err)
	}

	m.setState(StatusUnauthenticated, nil)
	m.bus.Publish(eventbus.EventToastInfo, "You have been logged out.")
	return nil
}

// handleSessionExpired реагирует на sessionExpired из API клиента:
// сбрасывает сессию и с небольшой задержкой просит UI вернуться на
// экран входа. Токены к этому моменту уже вычищены клиентом
func (m *Manager) handleSessionExpired(args ...any) {
	m.setState(StatusUnauthenticated, nil)

	time.AfterFunc(m.redirectDelay, func() {
		m.bus.Publish(eventbus.EventNavigateLogin)
	})
}
