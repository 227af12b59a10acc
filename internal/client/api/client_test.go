package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majisoft/majidesk/internal/client/eventbus"
	"github.com/majisoft/majidesk/internal/client/storage"
	pkgapi "github.com/majisoft/majidesk/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestClient собирает клиент поверх httptest-сервера с хранилищем
// токенов в памяти
func newTestClient(t *testing.T, handler http.Handler) (*Client, *storage.Memory, *eventbus.Bus) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := storage.NewMemory()
	bus := eventbus.New(testLogger())
	client := NewClient(server.URL, tokens, bus, testLogger())

	return client, tokens, bus
}

// recordEvents подписывается на событие и возвращает счетчик публикаций
func recordEvents(bus *eventbus.Bus, event string) *atomic.Int64 {
	count := &atomic.Int64{}
	bus.Subscribe(event, func(args ...any) {
		count.Add(1)
	})
	return count
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8000/", storage.NewMemory(), eventbus.New(testLogger()), testLogger())

	assert.NotNil(t, client)
	// Хвостовой слэш base URL срезается
	assert.Equal(t, "http://localhost:8000", client.baseURL)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

// Проверяем, что bearer-токен подставляется ровно один раз на запрос
func TestClient_BearerHeader(t *testing.T) {
	var gotAuth []string
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Values("Authorization")
		_ = json.NewEncoder(w).Encode(pkgapi.User{ID: 1})
	}))

	ctx := context.Background()
	require.NoError(t, client.SetTokens(ctx, "access-token", "refresh-token"))

	_, err := client.GetProfile(ctx)
	require.NoError(t, err)

	require.Len(t, gotAuth, 1)
	assert.Equal(t, "Bearer access-token", gotAuth[0])
}

// Без токена запрос уходит вообще без заголовка Authorization
func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(pkgapi.Page[pkgapi.Shop]{})
	}))

	_, err := client.GetShops(context.Background(), 0, nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

// Кэш токена прогревается из хранилища один раз, дальше хранилище
// не трогается
func TestClient_TokenCacheWarmOnMiss(t *testing.T) {
	client, tokens, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(pkgapi.User{ID: 1})
	}))

	ctx := context.Background()
	require.NoError(t, tokens.SaveTokens(ctx, "stored-token", "stored-refresh"))

	_, err := client.GetProfile(ctx)
	require.NoError(t, err)

	// Меняем durable копию в обход клиента: кэш уже прогрет и
	// не должен перечитываться
	require.NoError(t, tokens.SaveTokens(ctx, "other-token", ""))

	tok, _, err := client.currentToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "stored-token", tok)
}

// 401 -> refresh -> повтор: вызывающий видит успешный ответ и одно
// событие tokenRefreshSuccess
func TestClient_RefreshAndRetry(t *testing.T) {
	var requests atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token/refresh/":
			var req pkgapi.RefreshRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "refresh-token", req.Refresh)
			_ = json.NewEncoder(w).Encode(pkgapi.RefreshResponse{
				Access:  "new-access",
				Refresh: "new-refresh",
			})
		case "/api/profile/me/":
			requests.Add(1)
			if r.Header.Get("Authorization") != "Bearer new-access" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(pkgapi.ErrorResponse{Detail: "token expired"})
				return
			}
			_ = json.NewEncoder(w).Encode(pkgapi.User{ID: 7, FullName: "Jane Wanjiku"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	client, tokens, bus := newTestClient(t, handler)
	refreshed := recordEvents(bus, eventbus.EventTokenRefreshSuccess)
	expired := recordEvents(bus, eventbus.EventSessionExpired)

	ctx := context.Background()
	require.NoError(t, client.SetTokens(ctx, "stale-access", "refresh-token"))

	user, err := client.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)

	// Исходный запрос + один повтор
	assert.Equal(t, int64(2), requests.Load())
	assert.Equal(t, int64(1), refreshed.Load())
	assert.Equal(t, int64(0), expired.Load())

	// Обе копии токенов обновлены write-through
	access, err := tokens.GetAccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-access", access)

	refresh, err := tokens.GetRefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-refresh", refresh)
}

// Refresh без refresh token — необратимое истечение сессии:
// помеченная ошибка, пустое хранилище, ровно один sessionExpired
func TestClient_RefreshFails_SessionExpired(t *testing.T) {
	client, tokens, bus := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(pkgapi.ErrorResponse{Detail: "token expired"})
	}))
	expired := recordEvents(bus, eventbus.EventSessionExpired)

	ctx := context.Background()
	// Только access token: refresh отсутствует
	c := client
	c.mu.Lock()
	c.accessToken = "stale-access"
	c.tokenLoaded = true
	c.mu.Unlock()

	_, err := client.GetProfile(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)

	var sessionErr *SessionExpiredError
	require.ErrorAs(t, err, &sessionErr)
	assert.Equal(t, http.StatusUnauthorized, sessionErr.Status())

	assert.Equal(t, int64(1), expired.Load())

	_, err = tokens.GetAccessToken(ctx)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
	_, err = tokens.GetRefreshToken(ctx)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

// Отклоненный сервером refresh token ведет к тому же teardown'у
func TestClient_RefreshRejected_SessionExpired(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/token/refresh/" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(pkgapi.ErrorResponse{Detail: "refresh token invalid"})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, tokens, bus := newTestClient(t, handler)
	expired := recordEvents(bus, eventbus.EventSessionExpired)

	ctx := context.Background()
	require.NoError(t, client.SetTokens(ctx, "stale-access", "bad-refresh"))

	_, err := client.GetProfile(ctx)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, int64(1), expired.Load())

	_, err = tokens.GetRefreshToken(ctx)
	assert.ErrorIs(t, err, storage.ErrTokenNotFound)
}

// Второй 401 на повторе не запускает второй refresh — ошибка уходит
// вызывающему сразу (ровно один прыжок повтора)
func TestClient_SecondUnauthorizedNoSecondRefresh(t *testing.T) {
	var refreshCalls atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/token/refresh/" {
			refreshCalls.Add(1)
			_ = json.NewEncoder(w).Encode(pkgapi.RefreshResponse{Access: "new-access"})
			return
		}
		// Сервер продолжает отвечать 401 даже с новым токеном
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(pkgapi.ErrorResponse{Detail: "still unauthorized"})
	})

	client, _, _ := newTestClient(t, handler)

	ctx := context.Background()
	require.NoError(t, client.SetTokens(ctx, "stale-access", "refresh-token"))

	_, err := client.GetProfile(ctx)
	require.Error(t, err)

	// Ошибка повтора — обычная HTTP-ошибка, не session expired
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, int64(1), refreshCalls.Load())
}

// Из двух конкурентных 401 только один выполняет refresh,
// второй ждет и повторяет запрос с новым токеном
func TestClient_ConcurrentUnauthorized_SingleRefresh(t *testing.T) {
	var refreshCalls atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/token/refresh/" {
			refreshCalls.Add(1)
			// Притормаживаем refresh, чтобы оба запроса успели получить 401
			time.Sleep(50 * time.Millisecond)
			_ = json.NewEncoder(w).Encode(pkgapi.RefreshResponse{Access: "new-access"})
			return
		}
		if r.Header.Get("Authorization") != "Bearer new-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(pkgapi.User{ID: 1})
	})

	client, _, bus := newTestClient(t, handler)
	refreshed := recordEvents(bus, eventbus.EventTokenRefreshSuccess)

	ctx := context.Background()
	require.NoError(t, client.SetTokens(ctx, "stale-access", "refresh-token"))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = client.GetProfile(ctx)
		}()
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int64(1), refreshCalls.Load())
	assert.Equal(t, int64(1), refreshed.Load())
}

// sessionExpired публикуется один раз, сколько бы запросов ни
// провалилось до следующего логина; логин снимает гейт
func TestClient_SessionExpiredOneShot(t *testing.T) {
	client, _, bus := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	expired := recordEvents(bus, eventbus.EventSessionExpired)

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := client.GetProfile(ctx)
		assert.ErrorIs(t, err, ErrSessionExpired)
	}
	assert.Equal(t, int64(1), expired.Load())

	// Новый логин начинает новую сессию — гейт снимается
	require.NoError(t, client.SetTokens(ctx, "fresh-access", "fresh-refresh"))

	_, err := client.GetProfile(ctx)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, int64(2), expired.Load())
}

// Фильтры сериализуются как есть, пустые значения опускаются
func TestClient_QuerySerialization(t *testing.T) {
	var gotQuery string
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(pkgapi.Page[pkgapi.Customer]{})
	}))

	_, err := client.GetCustomers(context.Background(), 2, map[string]string{
		"search": "jane",
		"shop":   "", // пустое значение должно быть опущено
	})
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "search=jane")
	assert.NotContains(t, gotQuery, "shop")
}

func TestClient_ListPagination(t *testing.T) {
	next := "http://example.com/api/customers/?page=3"
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(pkgapi.Page[pkgapi.Customer]{
			Count: 55,
			Next:  &next,
			Results: []pkgapi.Customer{
				{ID: 1, FullName: "Jane Wanjiku", PhoneNumber: "0712345678"},
			},
		})
	}))

	page, err := client.GetCustomers(context.Background(), 2, nil)
	require.NoError(t, err)

	assert.True(t, page.HasMore())
	assert.Equal(t, int64(55), page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Jane Wanjiku", page.Results[0].FullName)
}

// Multipart endpoint'ы шлют multipart/form-data с boundary,
// JSON-заголовок по умолчанию подавлен
func TestClient_MultipartMeterReading(t *testing.T) {
	var gotContentType, gotFileName string
	var gotFields map[string]string

	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))

		gotFields = map[string]string{}
		for key := range r.MultipartForm.Value {
			gotFields[key] = r.FormValue(key)
		}

		file, header, err := r.FormFile("photo")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		gotFileName = header.Filename

		_ = json.NewEncoder(w).Encode(pkgapi.MeterReading{ID: 3, Reading: 1204.5})
	}))

	reading, err := client.CreateMeterReading(context.Background(), 1, 1204.5, &Upload{
		FieldName: "photo",
		FileName:  "meter.jpg",
		Content:   []byte("jpeg-bytes"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), reading.ID)
	assert.True(t, strings.HasPrefix(gotContentType, "multipart/form-data; boundary="))
	assert.Equal(t, "1", gotFields["shop"])
	assert.Equal(t, "1204.5", gotFields["reading"])
	assert.Equal(t, "meter.jpg", gotFileName)
}

// Multipart-запрос переживает 401 -> refresh -> повтор: тело
// строится заново для каждой попытки
func TestClient_MultipartRetryAfterRefresh(t *testing.T) {
	var expenseCalls atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/token/refresh/" {
			_ = json.NewEncoder(w).Encode(pkgapi.RefreshResponse{Access: "new-access"})
			return
		}
		expenseCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer new-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "electricity", r.FormValue("category"))
		_ = json.NewEncoder(w).Encode(pkgapi.Expense{ID: 9, Amount: 2500})
	})

	client, _, _ := newTestClient(t, handler)
	ctx := context.Background()
	require.NoError(t, client.SetTokens(ctx, "stale-access", "refresh-token"))

	expense, err := client.CreateExpense(ctx, "electricity", 2500, "KPLC monthly bill", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(9), expense.ID)
	assert.Equal(t, int64(2), expenseCalls.Load())
}

// CreateSale подставляет клиентский идемпотентный ключ
func TestClient_CreateSaleReference(t *testing.T) {
	var gotReference string
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req pkgapi.SaleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotReference = req.Reference
		_ = json.NewEncoder(w).Encode(pkgapi.Sale{ID: 1, Reference: req.Reference})
	}))

	sale, err := client.CreateSale(context.Background(), pkgapi.SaleRequest{
		Package:       2,
		Quantity:      1,
		Amount:        50,
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, gotReference)
	assert.Equal(t, gotReference, sale.Reference)
}

// Заголовок X-Device-ID уходит с каждым запросом после установки
func TestClient_DeviceIDHeader(t *testing.T) {
	var gotDeviceID string
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDeviceID = r.Header.Get("X-Device-ID")
		_ = json.NewEncoder(w).Encode(pkgapi.DashboardStats{})
	}))

	client.SetDeviceID("device-42")
	_, err := client.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "device-42", gotDeviceID)
}

func TestClient_ErrorExtraction(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		wantMessage string
		status      int
	}{
		{
			name:        "DRF detail field",
			body:        `{"detail": "Not found."}`,
			contentType: "application/json",
			status:      http.StatusNotFound,
			wantMessage: "Not found.",
		},
		{
			name:        "message field",
			body:        `{"message": "validation failed"}`,
			contentType: "application/json",
			status:      http.StatusBadRequest,
			wantMessage: "validation failed",
		},
		{
			name:        "plain text body",
			body:        "Internal Server Error",
			contentType: "text/plain",
			status:      http.StatusInternalServerError,
			wantMessage: "Internal Server Error",
		},
		{
			name:        "empty body",
			body:        "",
			contentType: "",
			status:      http.StatusBadGateway,
			wantMessage: "request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := client.GetShops(context.Background(), 0, nil)
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, []byte(tt.body), []byte(apiErr.Data))
		})
	}
}

// Сетевые ошибки уходят вызывающему без попыток refresh
func TestClient_NetworkError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", storage.NewMemory(), eventbus.New(testLogger()), testLogger())

	_, err := client.GetShops(context.Background(), 0, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionExpired)

	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
}

// Пустое тело при успешном статусе — не ошибка
func TestClient_EmptySuccessBody(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.Logout(context.Background())
	assert.NoError(t, err)
}

func TestClient_Login(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/token/", r.URL.Path)
		// Логин не должен нести bearer-токен
		assert.Empty(t, r.Header.Get("Authorization"))

		var req pkgapi.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "0712345678", req.PhoneNumber)
		assert.Equal(t, "secret", req.Password)

		_ = json.NewEncoder(w).Encode(pkgapi.TokenResponse{
			Access:  "access-token",
			Refresh: "refresh-token",
		})
	}))

	resp, err := client.Login(context.Background(), "0712345678", "secret")
	require.NoError(t, err)
	assert.Equal(t, "access-token", resp.Access)
	assert.Equal(t, "refresh-token", resp.Refresh)
}

// Неверные учетные данные на логине — обычная HTTP-ошибка,
// не session expired
func TestClient_LoginInvalidCredentials(t *testing.T) {
	client, _, bus := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(pkgapi.ErrorResponse{Detail: "invalid credentials"})
	}))
	expired := recordEvents(bus, eventbus.EventSessionExpired)

	_, err := client.Login(context.Background(), "0712345678", "wrong")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionExpired)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, int64(0), expired.Load())
}
