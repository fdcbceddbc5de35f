package domain

// OrderRepository описывает требования к хранилищу заказов.
// Репозиторий — "глупый" адаптер: переходы статусов он не проверяет,
// этим занимается lifecycle-сервис.
type OrderRepository interface {
	// GetAll возвращает все заказы, новые первыми (created_at DESC, id DESC).
	GetAll() ([]Order, error)
	// GetByStatus возвращает заказы с указанным статусом в том же порядке.
	GetByStatus(status OrderStatus) ([]Order, error)
	// GetByID возвращает заказ или ErrOrderNotFound, если его нет.
	GetByID(id string) (Order, error)
	// Create генерирует новый идентификатор, выставляет статус pending,
	// сохраняет заказ и возвращает его id.
	Create(input NewOrder) (string, error)
	// UpdateStatus безусловно записывает новый статус или возвращает
	// ErrOrderNotFound, если заказа не существует.
	UpdateStatus(orderID string, newStatus OrderStatus) error
}
