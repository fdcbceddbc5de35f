package domain

// NotificationSink доставляет событие жизненного цикла пользователю.
// Ошибка доставки не считается ошибкой ядра: вызывающая сторона логирует
// её и продолжает работу.
type NotificationSink interface {
	Notify(event Event) error
}

// Snapshot хранит последнее увиденное детектором состояние всех заказов:
// ключи Statuses — это множество известных id.
type Snapshot struct {
	Statuses map[string]OrderStatus `json:"statuses"`
}

// NewSnapshot строит снапшот по текущему списку заказов.
func NewSnapshot(orders []Order) Snapshot {
	statuses := make(map[string]OrderStatus, len(orders))
	for _, order := range orders {
		statuses[order.ID] = order.Status
	}
	return Snapshot{Statuses: statuses}
}

// Has сообщает, присутствовал ли заказ в снапшоте.
func (s Snapshot) Has(orderID string) bool {
	_, ok := s.Statuses[orderID]
	return ok
}

// Len возвращает число заказов в снапшоте.
func (s Snapshot) Len() int {
	return len(s.Statuses)
}

// SnapshotStore — долговременное key-value хранилище снапшота детектора,
// переживающее перезапуск процесса.
type SnapshotStore interface {
	// Load возвращает сохранённый снапшот; ok=false, если его ещё нет.
	Load() (snapshot Snapshot, ok bool, err error)
	// Save атомарно заменяет сохранённый снапшот.
	Save(snapshot Snapshot) error
}
