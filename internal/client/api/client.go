package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/majisoft/majidesk/internal/client/eventbus"
	"github.com/majisoft/majidesk/internal/client/storage"
)

// Client представляет HTTP клиент для взаимодействия с бэкендом MajiDesk.
// Единственная точка исходящих запросов: подставляет bearer-токен,
// прозрачно обновляет его по 401 и публикует события жизненного цикла
// сессии в шину
type Client struct {
	httpClient *http.Client
	bus        *eventbus.Bus
	tokens     storage.TokenStore
	logger     *slog.Logger
	baseURL    string

	// mu защищает кэш токена и one-shot флаг истечения сессии.
	// Кэш в памяти — производная проекция TokenStore (write-through):
	// любая мутация обновляет обе копии до возврата управления
	mu          sync.Mutex
	accessToken string
	tokenLoaded bool   // кэш прогрет (пустой токен тоже валидное состояние)
	generation  uint64 // растет при каждой записи токена
	expired     bool   // sessionExpired уже опубликован

	// refreshMu сериализует протокол обновления токена: из двух
	// конкурентных 401 только первый выполняет refresh, второй видит
	// выросший generation и сразу повторяет запрос
	refreshMu sync.Mutex

	deviceID string
}

// NewClient создает новый API клиент
func NewClient(baseURL string, tokens storage.TokenStore, bus *eventbus.Bus, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		bus:     bus,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// SetDeviceID устанавливает идентификатор устройства, отправляемый
// в заголовке X-Device-ID каждого запроса
func (c *Client) SetDeviceID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deviceID = id
}

// SetTokens сохраняет пару токенов write-through: сначала durable
// хранилище, затем кэш. Успешная запись снимает one-shot флаг
// истекшей сессии (новый логин начинает новую сессию)
func (c *Client) SetTokens(ctx context.Context, access, refresh string) error {
	if err := c.tokens.SaveTokens(ctx, access, refresh); err != nil {
		return fmt.Errorf("failed to persist tokens: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.tokenLoaded = true
	c.generation++
	c.expired = false

	return nil
}

// ClearTokens удаляет обе копии токенов (durable и кэш)
func (c *Client) ClearTokens(ctx context.Context) error {
	err := c.tokens.DeleteTokens(ctx)

	// Кэш чистим даже если durable-удаление упало:
	// память не должна пережить попытку teardown'а
	c.mu.Lock()
	c.accessToken = ""
	c.tokenLoaded = true
	c.generation++
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to delete tokens: %w", err)
	}
	return nil
}

// currentToken возвращает access token и текущий generation.
// Кэш в памяти имеет приоритет; при промахе читаем TokenStore и
// прогреваем кэш, чтобы не ходить в хранилище на каждый запрос
func (c *Client) currentToken(ctx context.Context) (string, uint64, error) {
	c.mu.Lock()
	if c.tokenLoaded {
		tok, gen := c.accessToken, c.generation
		c.mu.Unlock()
		return tok, gen, nil
	}
	c.mu.Unlock()

	tok, err := c.tokens.GetAccessToken(ctx)
	if err != nil && !errors.Is(err, storage.ErrTokenNotFound) {
		return "", 0, fmt.Errorf("failed to read access token: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Пока читали хранилище, токен могли записать — кэш новее
	if !c.tokenLoaded {
		c.accessToken = tok
		c.tokenLoaded = true
	}
	return c.accessToken, c.generation, nil
}

// sessionExpired выполняет teardown сессии: чистит обе копии токенов
// и публикует sessionExpired ровно один раз до следующего логина
func (c *Client) sessionExpired(ctx context.Context, message string) {
	if err := c.ClearTokens(ctx); err != nil {
		c.logger.Warn("failed to clear tokens on session expiry", "error", err)
	}

	c.mu.Lock()
	alreadyExpired := c.expired
	c.expired = true
	c.mu.Unlock()

	if !alreadyExpired {
		c.bus.Publish(eventbus.EventSessionExpired, message)
	}
}
