package domain

import (
	"regexp"
	"strings"
	"time"
)

// OrderStatus описывает жизненный цикл заказа в бургерной.
type OrderStatus string

const (
	// OrderStatusPending — заказ принят, но кухня его ещё не подтвердила.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusConfirmed — заказ подтверждён и поставлен в очередь.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusPreparing — заказ готовится на кухне.
	OrderStatusPreparing OrderStatus = "preparing"
	// OrderStatusReady — заказ собран и ждёт выдачи/курьера.
	OrderStatusReady OrderStatus = "ready"
	// OrderStatusDelivered — заказ доставлен клиенту; терминальный статус.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled — заказ отменён; терминальный статус.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid проверяет, что статус относится к известным значениям.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal сообщает, является ли статус конечным (без исходящих переходов).
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Order агрегирует заказ вместе со снапшотом данных клиента на момент оформления.
// Все поля, кроме Status, неизменяемы после создания.
type Order struct {
	ID          string
	UserID      string
	UserName    string
	UserEmail   string
	UserPhone   string
	UserAddress string
	// Items хранит позиции заказа как сырую JSON-строку из внешней системы.
	// Ядро не разбирает её глубже, чем ItemsSummary.
	Items     string
	Total     float64
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrder содержит входные данные на создание заказа.
type NewOrder struct {
	UserID      string
	UserName    string
	UserEmail   string
	UserPhone   string
	UserAddress string
	Items       string
	Total       float64
}

// Validate проверяет входные данные и возвращает список замечаний.
func (n NewOrder) Validate() []error {
	var errs []error

	if n.UserID == "" {
		errs = append(errs, ErrUserRequired)
	}
	if n.UserName == "" {
		errs = append(errs, ErrUserNameRequired)
	}
	if n.Total < 0 {
		errs = append(errs, ErrTotalNegative)
	}

	return errs
}

const (
	itemsSummaryFallback    = "productos varios"
	itemsSummaryUnavailable = "items no disponibles"
)

var itemNamePattern = regexp.MustCompile(`"name"\s*:\s*"([^"]+)"`)

// ItemsSummary извлекает названия позиций из items для отображения.
// Работает best-effort: при любом сбое разбора возвращает фиксированную
// заглушку и никогда не возвращает ошибку.
func (o Order) ItemsSummary() string {
	items := strings.TrimSpace(o.Items)
	if items == "" || items == "[]" {
		return itemsSummaryUnavailable
	}
	if !strings.Contains(items, "name") {
		return itemsSummaryFallback
	}

	matches := itemNamePattern.FindAllStringSubmatch(items, -1)
	if len(matches) == 0 {
		return itemsSummaryFallback
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return strings.Join(names, ", ")
}
