package lifecycle

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/prograshaco/burger-oms/internal/domain"
	"github.com/prograshaco/burger-oms/internal/metrics"
)

const (
	opCreateOrder  = "create_order"
	opUpdateStatus = "update_status"
)

// Service оркестрирует жизненный цикл заказа: проверяет переходы статусов
// по политике, сохраняет изменения и эмитит уведомления.
// На каждый успешный мутирующий вызов приходится ровно одно уведомление;
// на любой неуспешный — ни одного.
type Service struct {
	repo    domain.OrderRepository
	sink    domain.NotificationSink
	logger  *log.Entry
	metrics *metrics.LifecycleMetrics
}

// NewService создаёт рабочий экземпляр сервиса.
func NewService(repo domain.OrderRepository, sink domain.NotificationSink, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "lifecycle")
	}
	return &Service{
		repo:    repo,
		sink:    sink,
		logger:  logger,
		metrics: metrics.NewLifecycleMetrics(),
	}
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(repo domain.OrderRepository, sink domain.NotificationSink, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "lifecycle")
	}
	return &Service{
		repo:   repo,
		sink:   sink,
		logger: logger,
	}
}

// CreateOrder валидирует входные данные, сохраняет заказ и эмитит
// уведомление о новом заказе. При любой ошибке уведомление не эмитится,
// а ошибка возвращается вызывающей стороне без изменений.
func (s *Service) CreateOrder(input domain.NewOrder) (string, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(opCreateOrder, time.Since(start))
		}
	}()

	if errs := input.Validate(); len(errs) > 0 {
		if s.metrics != nil {
			s.metrics.RecordCreateFailed()
		}
		return "", errors.Join(errs...)
	}

	orderID, err := s.repo.Create(input)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", input.UserID).Error("failed to create order")
		if s.metrics != nil {
			s.metrics.RecordCreateFailed()
		}
		return "", err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
	}
	s.logger.WithFields(log.Fields{
		"order_id":  orderID,
		"user_name": input.UserName,
	}).Info("order created")

	s.notify(domain.NewOrderEvent(orderID, input.UserName, input.Total))
	return orderID, nil
}

// UpdateStatus переводит заказ в запрошенный статус, если переход разрешён
// политикой. При запрещённом переходе репозиторий не вызывается вовсе,
// а вызывающая сторона получает InvalidTransitionError с парой from/to.
func (s *Service) UpdateStatus(orderID string, requested domain.OrderStatus) error {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(opUpdateStatus, time.Since(start))
		}
	}()

	order, err := s.repo.GetByID(orderID)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Warn("failed to load order for status update")
		if s.metrics != nil {
			s.metrics.RecordUpdateFailed()
		}
		return err
	}

	if !domain.IsAllowed(order.Status, requested) {
		if s.metrics != nil {
			s.metrics.RecordInvalidTransition()
		}
		s.logger.WithFields(log.Fields{
			"order_id": orderID,
			"from":     order.Status,
			"to":       requested,
		}).Warn("status transition rejected by policy")
		return &domain.InvalidTransitionError{From: order.Status, To: requested}
	}

	if err := s.repo.UpdateStatus(orderID, requested); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id": orderID,
			"to":       requested,
		}).Error("failed to persist status")
		if s.metrics != nil {
			s.metrics.RecordUpdateFailed()
		}
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordStatusUpdate(string(requested))
	}
	s.logger.WithFields(log.Fields{
		"order_id": orderID,
		"from":     order.Status,
		"to":       requested,
	}).Info("order status updated")

	s.notify(domain.StatusChangedEvent(orderID, requested, order.UserName))
	return nil
}

// GetOrder возвращает заказ по идентификатору.
func (s *Service) GetOrder(orderID string) (domain.Order, error) {
	order, err := s.repo.GetByID(orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// ListOrders возвращает все заказы, новые первыми.
func (s *Service) ListOrders() ([]domain.Order, error) {
	orders, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ListByStatus возвращает заказы с указанным статусом.
func (s *Service) ListByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	orders, err := s.repo.GetByStatus(status)
	if err != nil {
		return nil, fmt.Errorf("list orders by status: %w", err)
	}
	return orders, nil
}

// AvailableStatuses возвращает статусы, в которые заказ можно перевести
// из его текущего состояния.
func (s *Service) AvailableStatuses(orderID string) ([]domain.OrderStatus, error) {
	order, err := s.repo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("load order for available statuses: %w", err)
	}
	return domain.AvailableTransitions(order.Status), nil
}

// notify доставляет событие в sink. Ошибка доставки логируется и не
// возвращается: уведомления для ядра fire-and-forget.
func (s *Service) notify(event domain.Event) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Notify(event); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id":   event.OrderID,
			"event_type": event.Type,
		}).Warn("notification delivery failed")
		if s.metrics != nil {
			s.metrics.RecordNotificationError()
		}
		return
	}
	if s.metrics != nil {
		s.metrics.RecordNotification(string(event.Type))
	}
}
