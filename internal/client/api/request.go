package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/majisoft/majidesk/internal/client/eventbus"
	pkgapi "github.com/majisoft/majidesk/pkg/api"
)

// Upload представляет файл-вложение для multipart endpoint'ов
// (фото показания счетчика, чек расхода)
type Upload struct {
	FieldName string
	FileName  string
	Content   []byte
}

// request описывает один исходящий запрос. newBody строит тело заново
// для каждой попытки — повтор после обновления токена не может
// переиспользовать вычитанный io.Reader
type request struct {
	newBody func() (io.Reader, string, error)
	query   url.Values
	method  string
	path    string
}

// jsonRequest создает запрос с JSON-телом. body == nil — запрос без тела
func jsonRequest(method, path string, query url.Values, body any) (*request, error) {
	r := &request{
		method: method,
		path:   path,
		query:  query,
	}
	if body == nil {
		return r, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	r.newBody = func() (io.Reader, string, error) {
		return bytes.NewReader(data), "application/json", nil
	}
	return r, nil
}

// multipartRequest создает запрос с multipart/form-data телом.
// Content-Type выставляет multipart.Writer — JSON-заголовок по
// умолчанию здесь подавлен, иначе сервер не увидит boundary
func multipartRequest(method, path string, fields map[string]string, uploads ...*Upload) *request {
	return &request{
		method: method,
		path:   path,
		newBody: func() (io.Reader, string, error) {
			var buf bytes.Buffer
			w := multipart.NewWriter(&buf)

			for name, value := range fields {
				if value == "" {
					continue
				}
				if err := w.WriteField(name, value); err != nil {
					return nil, "", fmt.Errorf("failed to write form field %s: %w", name, err)
				}
			}
			for _, upload := range uploads {
				if upload == nil {
					continue
				}
				part, err := w.CreateFormFile(upload.FieldName, upload.FileName)
				if err != nil {
					return nil, "", fmt.Errorf("failed to create form file: %w", err)
				}
				if _, err := part.Write(upload.Content); err != nil {
					return nil, "", fmt.Errorf("failed to write form file: %w", err)
				}
			}
			if err := w.Close(); err != nil {
				return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
			}

			return &buf, w.FormDataContentType(), nil
		},
	}
}

// buildQuery собирает query-параметры списочных endpoint'ов.
// page <= 0 опускается; фильтры передаются на сервер как есть,
// ключи с пустыми значениями не сериализуются
func buildQuery(page int, filters map[string]string) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	for key, value := range filters {
		if value == "" {
			continue
		}
		query.Set(key, value)
	}
	return query
}

// do выполняет запрос с подстановкой bearer-токена и обработкой 401.
// result может быть nil, если тело ответа не нужно
func (c *Client) do(ctx context.Context, r *request, result any) error {
	return c.doAttempt(ctx, r, result, false)
}

// doAttempt — один проход конвейера запроса. isRetry=true помечает
// повтор после обновления токена и ограничивает протокол ровно одним
// повтором: второй 401 подряд уходит вызывающему без нового refresh
func (c *Client) doAttempt(ctx context.Context, r *request, result any, isRetry bool) error {
	// 1. Токен: кэш в памяти, при промахе — TokenStore
	token, generation, err := c.currentToken(ctx)
	if err != nil {
		return err
	}

	// 2. Составляем HTTP запрос
	req, err := c.newHTTPRequest(ctx, r, token)
	if err != nil {
		return err
	}

	// 3. Отправляем. Сетевые ошибки не повторяются этим слоем
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// 4. 401: пробуем обновить токен и повторить запрос один раз
	if resp.StatusCode == http.StatusUnauthorized && !isRetry {
		if refreshErr := c.refreshAfter401(ctx, generation); refreshErr != nil {
			c.logger.Debug("token refresh failed", "error", refreshErr)
			message := "Your session has expired. Please log in again."
			c.sessionExpired(ctx, message)
			return &SessionExpiredError{Message: message}
		}
		return c.doAttempt(ctx, r, result, true)
	}

	// 5. Не-2xx — структурированная ошибка со статусом и телом
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			Status:  resp.StatusCode,
			Data:    respBody,
			Message: extractMessage(respBody),
		}
	}

	// 6. Разбираем тело по заявленному content type.
	// Пустое тело — валидный успешный ответ
	return decodeResponse(resp.Header.Get("Content-Type"), respBody, result)
}

// newHTTPRequest собирает http.Request: URL с query-параметрами,
// заголовки по умолчанию, bearer-токен и идентификатор устройства
func (c *Client) newHTTPRequest(ctx context.Context, r *request, token string) (*http.Request, error) {
	fullURL := c.baseURL + "/api/" + strings.TrimLeft(r.path, "/")
	if len(r.query) > 0 {
		fullURL += "?" + r.query.Encode()
	}

	var body io.Reader
	contentType := ""
	if r.newBody != nil {
		var err error
		body, contentType, err = r.newBody()
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, r.method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.mu.Lock()
	deviceID := c.deviceID
	c.mu.Unlock()
	if deviceID != "" {
		req.Header.Set("X-Device-ID", deviceID)
	}

	return req, nil
}

// decodeResponse разбирает тело успешного ответа. JSON декодируется в
// result; текстовые ответы кладутся в *string; прочее игнорируется
func decodeResponse(contentType string, body []byte, result any) error {
	if result == nil || len(body) == 0 {
		return nil
	}

	if strings.Contains(contentType, "application/json") || contentType == "" {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	if s, ok := result.(*string); ok {
		*s = string(body)
	}
	return nil
}

// refreshAfter401 выполняет протокол обновления токена под refreshMu.
// generation — поколение токена, с которым запрос получил 401: если к
// моменту захвата мьютекса поколение выросло, конкурентный запрос уже
// обновил токен и второй refresh не нужен
func (c *Client) refreshAfter401(ctx context.Context, generation uint64) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	c.mu.Lock()
	alreadyRefreshed := c.generation != generation
	c.mu.Unlock()
	if alreadyRefreshed {
		return nil
	}

	if err := c.RefreshToken(ctx); err != nil {
		return err
	}

	c.bus.Publish(eventbus.EventTokenRefreshSuccess)
	return nil
}

// RefreshToken обменивает refresh token на новый access token.
// Отсутствие refresh token — жесткая ошибка без повторов: сессию
// уже не спасти
func (c *Client) RefreshToken(ctx context.Context) error {
	refresh, err := c.tokens.GetRefreshToken(ctx)
	if err != nil {
		return fmt.Errorf("no refresh token available: %w", err)
	}

	var resp pkgapi.RefreshResponse
	if err := c.plainPost(ctx, "token/refresh/", pkgapi.RefreshRequest{Refresh: refresh}, &resp); err != nil {
		return fmt.Errorf("token refresh failed: %w", err)
	}

	// Write-through: durable копия и кэш обновляются до того, как
	// любой последующий запрос увидит новый токен
	if err := c.SetTokens(ctx, resp.Access, resp.Refresh); err != nil {
		return err
	}

	return nil
}

// plainPost выполняет POST без bearer-токена и без обработки 401.
// Используется эндпоинтами выдачи токенов: их собственный 401 означает
// неверные учетные данные, а не истекшую сессию
func (c *Client) plainPost(ctx context.Context, path string, body, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	fullURL := c.baseURL + "/api/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			Status:  resp.StatusCode,
			Data:    respBody,
			Message: extractMessage(respBody),
		}
	}

	return decodeResponse(resp.Header.Get("Content-Type"), respBody, result)
}
