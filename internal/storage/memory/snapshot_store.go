package memory

import (
	"sync"

	"github.com/prograshaco/burger-oms/internal/domain"
)

// snapshotStoreInMemory хранит снапшот детектора в памяти процесса.
// Перезапуск процесса снапшот не переживает, поэтому реализация пригодна
// только для тестов и локальной разработки.
type snapshotStoreInMemory struct {
	mu       sync.Mutex
	snapshot domain.Snapshot
	stored   bool
}

// NewSnapshotStore возвращает in-memory хранилище снапшота.
func NewSnapshotStore() domain.SnapshotStore {
	return &snapshotStoreInMemory{}
}

// Load возвращает сохранённый снапшот; ok=false, если Save ещё не вызывался.
func (s *snapshotStoreInMemory) Load() (domain.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.stored {
		return domain.Snapshot{}, false, nil
	}
	return copySnapshot(s.snapshot), true, nil
}

// Save заменяет снапшот целиком.
func (s *snapshotStoreInMemory) Save(snapshot domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = copySnapshot(snapshot)
	s.stored = true
	return nil
}

// copySnapshot защищает внутреннее состояние от мутаций извне.
func copySnapshot(snapshot domain.Snapshot) domain.Snapshot {
	statuses := make(map[string]domain.OrderStatus, len(snapshot.Statuses))
	for id, status := range snapshot.Statuses {
		statuses[id] = status
	}
	return domain.Snapshot{Statuses: statuses}
}

var _ domain.SnapshotStore = (*snapshotStoreInMemory)(nil)
