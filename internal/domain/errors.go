package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUserRequired — отсутствует идентификатор клиента.
	ErrUserRequired = errors.New("user_id is required")
	// ErrUserNameRequired — отсутствует имя клиента.
	ErrUserNameRequired = errors.New("user_name is required")
	// ErrTotalNegative — отрицательная сумма заказа.
	ErrTotalNegative = errors.New("total must be non-negative")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrStoreUnavailable — хранилище заказов недоступно; ошибка временная,
	// вызывающая сторона может повторить запрос.
	ErrStoreUnavailable = errors.New("order store unavailable")
	// ErrRowDecode — строка хранилища не отображается на доменную модель.
	ErrRowDecode = errors.New("order row decode failed")
	// ErrInvalidTransition — запрошенный переход статуса запрещён политикой.
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// InvalidTransitionError уточняет ErrInvalidTransition парой from/to,
// чтобы вызывающая сторона могла показать конкретное сообщение.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("status transition not allowed: %s -> %s", e.From, e.To)
}

// Is позволяет errors.Is(err, ErrInvalidTransition) для типизированной ошибки.
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// IsInvalidTransition проверяет, является ли ошибка запрещённым переходом.
func IsInvalidTransition(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}

// IsStoreUnavailable проверяет, является ли ошибка временной недоступностью хранилища.
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
