package api

import "time"

// Page представляет страницу результатов списочного endpoint'а.
// Next содержит URL следующей страницы или null, если страниц больше нет
type Page[T any] struct {
	Next    *string `json:"next"`
	Results []T     `json:"results"`
	Count   int64   `json:"count"`
}

// HasMore сообщает, есть ли ещё страницы
func (p *Page[T]) HasMore() bool {
	return p.Next != nil
}

// Shop представляет точку продаж воды
type Shop struct {
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	ID          int64     `json:"id"`
}

// Customer представляет клиента точки
type Customer struct {
	CreatedAt     time.Time `json:"created_at"`
	FullName      string    `json:"full_name"`
	PhoneNumber   string    `json:"phone_number"`
	ID            int64     `json:"id"`
	Shop          int64     `json:"shop"`
	Bottles       int64     `json:"bottles"`        // бутылей на руках у клиента
	LoyaltyPoints int64     `json:"loyalty_points"` // считает сервер
}

// CustomerRequest представляет тело создания/обновления клиента
type CustomerRequest struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Shop        int64  `json:"shop,omitempty"`
}

// Package представляет тариф продажи (объём + цена)
type Package struct {
	Name   string  `json:"name"`
	ID     int64   `json:"id"`
	Litres float64 `json:"litres"`
	Price  float64 `json:"price"`
}

// Sale представляет продажу воды
type Sale struct {
	CreatedAt     time.Time `json:"created_at"`
	PaymentMethod string    `json:"payment_method"` // cash, mpesa, credit
	Reference     string    `json:"reference"`      // клиентский идемпотентный ключ
	ID            int64     `json:"id"`
	Customer      int64     `json:"customer,omitempty"`
	Shop          int64     `json:"shop"`
	Package       int64     `json:"package"`
	Quantity      int64     `json:"quantity"`
	Amount        float64   `json:"amount"`
}

// SaleRequest представляет тело создания продажи
type SaleRequest struct {
	PaymentMethod string  `json:"payment_method"`
	Reference     string  `json:"reference"`
	Customer      int64   `json:"customer,omitempty"`
	Package       int64   `json:"package"`
	Quantity      int64   `json:"quantity"`
	Amount        float64 `json:"amount"`
}

// Refill представляет дозаправку бутыли клиента
type Refill struct {
	CreatedAt time.Time `json:"created_at"`
	Reference string    `json:"reference"`
	ID        int64     `json:"id"`
	Customer  int64     `json:"customer"`
	Shop      int64     `json:"shop"`
	Litres    float64   `json:"litres"`
	Amount    float64   `json:"amount"`
}

// RefillRequest представляет тело создания дозаправки
type RefillRequest struct {
	Reference string  `json:"reference"`
	Customer  int64   `json:"customer"`
	Litres    float64 `json:"litres"`
	Amount    float64 `json:"amount"`
}

// StockItem представляет позицию на складе (бутыли, крышки, фильтры)
type StockItem struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"` // pcs, litres
	ID           int64   `json:"id"`
	Quantity     float64 `json:"quantity"`
	ReorderLevel float64 `json:"reorder_level"` // порог уведомления о закупке
}

// StockItemRequest представляет тело создания складской позиции
type StockItemRequest struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Quantity     float64 `json:"quantity"`
	ReorderLevel float64 `json:"reorder_level,omitempty"`
}

// StockLog представляет движение по складу
type StockLog struct {
	CreatedAt time.Time `json:"created_at"`
	Reason    string    `json:"reason"` // purchase, sale, damage, adjustment
	ID        int64     `json:"id"`
	Item      int64     `json:"item"`
	Change    float64   `json:"change"` // отрицательное значение — расход
}

// StockLogRequest представляет тело записи движения по складу
type StockLogRequest struct {
	Reason string  `json:"reason"`
	Item   int64   `json:"item"`
	Change float64 `json:"change"`
}

// MeterReading представляет показание счётчика воды.
// PhotoURL заполняется сервером после загрузки фото показания
type MeterReading struct {
	CreatedAt time.Time `json:"created_at"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	ID        int64     `json:"id"`
	Shop      int64     `json:"shop"`
	Reading   float64   `json:"reading"` // показание в кубометрах
}

// Expense представляет расход точки.
// ReceiptURL заполняется сервером после загрузки чека
type Expense struct {
	CreatedAt   time.Time `json:"created_at"`
	Category    string    `json:"category"` // electricity, rent, maintenance...
	Description string    `json:"description,omitempty"`
	Reference   string    `json:"reference"`
	ReceiptURL  string    `json:"receipt_url,omitempty"`
	ID          int64     `json:"id"`
	Shop        int64     `json:"shop"`
	Amount      float64   `json:"amount"`
}

// Credit представляет долг клиента (продажа в долг)
type Credit struct {
	CreatedAt time.Time `json:"created_at"`
	ID        int64     `json:"id"`
	Customer  int64     `json:"customer"`
	Amount    float64   `json:"amount"`  // исходная сумма долга
	Balance   float64   `json:"balance"` // остаток к оплате
}

// CreditPaymentRequest представляет тело погашения долга
type CreditPaymentRequest struct {
	PaymentMethod string  `json:"payment_method"`
	Amount        float64 `json:"amount"`
}

// SMSMessage представляет отправленное SMS из истории рассылок
type SMSMessage struct {
	SentAt    time.Time `json:"sent_at"`
	Recipient string    `json:"recipient"`
	Body      string    `json:"body"`
	Status    string    `json:"status"` // queued, sent, failed
	ID        int64     `json:"id"`
}

// SendSMSRequest представляет запрос на отправку одного SMS
type SendSMSRequest struct {
	Recipient string `json:"recipient"`
	Body      string `json:"body"`
}

// BulkSMSRequest представляет запрос на массовую рассылку.
// Пустой список Customers означает "всем клиентам точки"
type BulkSMSRequest struct {
	Body      string  `json:"body"`
	Customers []int64 `json:"customers,omitempty"`
}

// SendSMSResponse представляет результат постановки SMS в очередь
type SendSMSResponse struct {
	Status string `json:"status"`
	Queued int64  `json:"queued"` // количество сообщений в очереди
}

// DashboardStats представляет сводку дашборда за сегодня
type DashboardStats struct {
	SalesToday        float64 `json:"sales_today"`         // выручка за сегодня
	RefillsToday      int64   `json:"refills_today"`       // количество дозаправок
	LitresToday       float64 `json:"litres_today"`        // продано литров
	ExpensesToday     float64 `json:"expenses_today"`      // расходы за сегодня
	NewCustomers      int64   `json:"new_customers"`       // новых клиентов
	CreditOutstanding float64 `json:"credit_outstanding"`  // сумма долгов
	LowStockItems     int64   `json:"low_stock_items"`     // позиций ниже порога
}
