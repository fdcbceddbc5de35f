package domain

// transitions — единственный источник правды о допустимых переходах статусов.
// Валидация в сервисе и варианты для UI обязаны сверяться именно с этой таблицей.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusDelivered},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// displayNames содержит локализованные подписи статусов для клиента.
var displayNames = map[OrderStatus]string{
	OrderStatusPending:   "Pendiente",
	OrderStatusConfirmed: "Confirmado",
	OrderStatusPreparing: "Preparando",
	OrderStatusReady:     "Listo",
	OrderStatusDelivered: "Entregado",
	OrderStatusCancelled: "Cancelado",
}

// IsAllowed сообщает, разрешён ли переход from -> to.
func IsAllowed(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AvailableTransitions возвращает допустимые следующие статусы.
// Для терминальных и неизвестных статусов возвращается пустой срез.
func AvailableTransitions(from OrderStatus) []OrderStatus {
	next, ok := transitions[from]
	if !ok {
		return []OrderStatus{}
	}
	result := make([]OrderStatus, len(next))
	copy(result, next)
	return result
}

// NextStatus возвращает следующий "штатный" статус заказа (без отмены)
// и false, если из текущего статуса двигаться некуда.
func NextStatus(from OrderStatus) (OrderStatus, bool) {
	for _, next := range transitions[from] {
		if next != OrderStatusCancelled {
			return next, true
		}
	}
	return "", false
}

// DisplayName возвращает локализованную подпись статуса.
// Неизвестный статус возвращается как есть.
func DisplayName(status OrderStatus) string {
	if name, ok := displayNames[status]; ok {
		return name
	}
	return string(status)
}
