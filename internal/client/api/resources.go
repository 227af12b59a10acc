package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	pkgapi "github.com/majisoft/majidesk/pkg/api"
)

// Методы-обертки над do: один метод на ресурс бэкенда.
// Списочные методы принимают номер страницы и открытый набор фильтров;
// ключи фильтров не валидируются клиентом и уходят на сервер как есть.

// list — общий путь всех списочных endpoint'ов
func list[T any](ctx context.Context, c *Client, path string, page int, filters map[string]string) (*pkgapi.Page[T], error) {
	r, err := jsonRequest(http.MethodGet, path, buildQuery(page, filters), nil)
	if err != nil {
		return nil, err
	}

	var result pkgapi.Page[T]
	if err := c.do(ctx, r, &result); err != nil {
		return nil, fmt.Errorf("list %s request failed: %w", path, err)
	}
	return &result, nil
}

// getOne — общий путь GET одного объекта
func getOne[T any](ctx context.Context, c *Client, path string) (*T, error) {
	r, err := jsonRequest(http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var result T
	if err := c.do(ctx, r, &result); err != nil {
		return nil, fmt.Errorf("get %s request failed: %w", path, err)
	}
	return &result, nil
}

// create — общий путь POST с JSON-телом
func create[T any](ctx context.Context, c *Client, path string, body any) (*T, error) {
	r, err := jsonRequest(http.MethodPost, path, nil, body)
	if err != nil {
		return nil, err
	}

	var result T
	if err := c.do(ctx, r, &result); err != nil {
		return nil, fmt.Errorf("create %s request failed: %w", path, err)
	}
	return &result, nil
}

// Shops

func (c *Client) GetShops(ctx context.Context, page int, filters map[string]string) (*pkgapi.Page[pkgapi.Shop], error) {
	return list[pkgapi.Shop](ctx, c, "shops/", page, filters)
}

func (c *Client) GetShop(ctx context.Context, id int64) (*pkgapi.Shop, error) {
	return getOne[pkgapi.Shop](ctx, c, fmt.Sprintf("shops/%d/", id))
}

// Customers

func (c *Client) GetCustomers(ctx context.Context, page int, filters map[string]string) (*pkgapi.Page[pkgapi.Customer], error) {
	return list[pkgapi.Customer](ctx, c, "customers/", page, filters)
}

func (c *Client) GetCustomer(ctx context.Context, id int64) (*pkgapi.Customer, error) {
	return getOne[pkgapi.Customer](ctx, c, fmt.Sprintf("customers/%d/", id))
}

func (c *Client) CreateCustomer(ctx context.Context, req pkgapi.CustomerRequest) (*pkgapi.Customer, error) {
	return create[pkgapi.Customer](ctx, c, "customers/", req)
}

// UpdateCustomer заменяет запись клиента целиком (PUT)
func (c *Client) UpdateCustomer(ctx context.Context, id int64, req pkgapi.CustomerRequest) (*pkgapi.Customer, error) {
	r, err := jsonRequest(http.MethodPut, fmt.Sprintf("customers/%d/", id), nil, req)
	if err != nil {
		return nil, err
	}

	var customer pkgapi.Customer
	if err := c.do(ctx, r, &customer); err != nil {
		return nil, fmt.Errorf("update customer request failed: %w", err)
	}
	return &customer, nil
}

// Packages

func (c *Client) GetPackages(ctx context.Context, page int, filters map[string]string) (*pkgapi.Page[pkgapi.Package], error) {
	return list[pkgapi.Package](ctx, c, "packages/", page, filters)
}

// Sales

func (c *Client) GetSales(ctx context.Context, page int, filters map[string]string) (*pkgapi.Page[pkgapi.Sale], error) {
	return list[pkgapi.Sale](ctx, c, "sales/", page, filters)
}

// CreateSale создает продажу. Пустой Reference заполняется
// клиентским идемпотентным ключом — сервер дедуплицирует повтор
// одного и того же чека при сетевых ретраях
func (c *Client) CreateSale(ctx context.Context, req pkgapi.SaleRequest) (*pkgapi.Sale, error) {
	if req.Reference == "" {
		req.Reference = uuid.NewString()
	}
	return create[pkgapi.Sale](ctx, c, "sales/", req)
}

// Refills

func (c *Client) GetRefills(ctx context.Context, page int, filters map[string]string) (*pkgapi.Page[pkgapi.Refill], error) {
	return list[pkgapi.Refill](ctx, c, "refills/", page, filters)
}

func (c *Client) CreateRefill(ctx context.Context, req pkgapi.RefillRequest) (*pkgapi.Refill, error) {
	if req.Reference == "" {
		req.Reference = uuid.NewString()
	}
	return create[pkgapi.Refill](ctx, c, "refills/", req)
}

// Stock

func (c *Client) GetStockItems(ctx context.Context, page int, filters map[string]string) (*pkgapi.Page[pkgapi.StockItem], error) {
	return list[pkgapi.StockItem](ctx, c, "stock-items/", page, filters)
}

func (c *Client) CreateStockItem(ctx context.Context, req pkgapi.StockItemRequest) (*pkgapi.StockItem, error) {
	return create[pkgapi.StockItem](ctx, c, "stock-items/", req)
}

func (c *Client) GetStockLogs(ctx context.Context, page int, filters map[string]string) (*pkgapi.Page[pkgapi.StockLog], error) {
	return list[pkgapi.StockLog](ctx, c, "stock-logs/", page, filters)
}

func (c *Client) CreateStockLog(ctx context.Context, req pkgapi.StockLogRequest) (*pkgapi.StockLog, error) {
	return create[pkgapi.StockLog](ctx, c, "stock-logs/", req)
}

// Meter readings

func (c *Client) GetMeterReadings(ctx context.Context, page int, filters map[string]string) (*pkgapi.Page[pkgapi.MeterReading], error) {
	return list[pkgapi.MeterReading](ctx, c, "meter-readings/", page, filters)
}

// CreateMeterReading отправляет показание счетчика с фото.
// Фото опционально; с ним запрос уходит как multipart/form-data
func (c *Client) CreateMeterReading(ctx context.Context, shop int64, reading float64, photo *Upload) (*pkgapi.MeterReading, error) {
	fields := map[string]string{
		"shop":    strconv.FormatInt(shop, 10),
		"reading": strconv.FormatFloat(reading, 'f', -1, 64),
	}
	r := multipartRequest(http.MethodPost, "meter-readings/", fields, photo)

	var result pkgapi.MeterReading
	if err := c.do(ctx, r, &result); err != nil {
		return nil, fmt.Errorf("create meter reading request failed: %w", err)
	}
	return &result, nil
}

// Expenses

func (c *Client) GetExpenses(ctx context.Context, page int, filters map[string]string) (*pkgapi.Page[pkgapi.Expense], error) {
	return list[pkgapi.Expense](ctx, c, "expenses/", page, filters)
}

// CreateExpense создает расход с опциональным чеком (multipart).
// reference генерируется клиентом для дедупликации
func (c *Client) CreateExpense(ctx context.Context, category string, amount float64, description string, receipt *Upload) (*pkgapi.Expense, error) {
	fields := map[string]string{
		"category":    category,
		"amount":      strconv.FormatFloat(amount, 'f', -1, 64),
		"description": description,
		"reference":   uuid.NewString(),
	}
	r := multipartRequest(http.MethodPost, "expenses/", fields, receipt)

	var result pkgapi.Expense
	if err := c.do(ctx, r, &result); err != nil {
		return nil, fmt.Errorf("create expense request failed: %w", err)
	}
	return &result, nil
}

// Credits

func (c *Client) GetCredits(ctx context.Context, page int, filters map[string]string) (*pkgapi.Page[pkgapi.Credit], error) {
	return list[pkgapi.Credit](ctx, c, "credits/", page, filters)
}

// PayCredit погашает долг клиента (частично или полностью)
func (c *Client) PayCredit(ctx context.Context, creditID int64, req pkgapi.CreditPaymentRequest) (*pkgapi.Credit, error) {
	return create[pkgapi.Credit](ctx, c, fmt.Sprintf("credits/%d/pay/", creditID), req)
}

// SMS

func (c *Client) GetSMSHistory(ctx context.Context, page int, filters map[string]string) (*pkgapi.Page[pkgapi.SMSMessage], error) {
	return list[pkgapi.SMSMessage](ctx, c, "sms/", page, filters)
}

func (c *Client) SendSMS(ctx context.Context, req pkgapi.SendSMSRequest) (*pkgapi.SendSMSResponse, error) {
	return create[pkgapi.SendSMSResponse](ctx, c, "sms/send/", req)
}

func (c *Client) SendBulkSMS(ctx context.Context, req pkgapi.BulkSMSRequest) (*pkgapi.SendSMSResponse, error) {
	return create[pkgapi.SendSMSResponse](ctx, c, "sms/send-bulk/", req)
}

// Dashboard

func (c *Client) GetDashboardStats(ctx context.Context) (*pkgapi.DashboardStats, error) {
	return getOne[pkgapi.DashboardStats](ctx, c, "dashboard/stats/")
}
