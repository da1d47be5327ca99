package service

import (
	"fmt"

	"orderhub/internal/domain"
	"orderhub/internal/repository"

	"go.uber.org/zap"
)

// OrderService handles customer-side business logic
type OrderService struct {
	orders   repository.OrderRepository
	catalog  *domain.Catalog
	notifier *Notifier
	logger   *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orders repository.OrderRepository,
	catalog *domain.Catalog,
	notifier *Notifier,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		catalog:  catalog,
		notifier: notifier,
		logger:   logger,
	}
}

// Catalog returns the category catalog
func (s *OrderService) Catalog() *domain.Catalog {
	return s.catalog
}

// CreateOrder validates the draft and stores it under the next order id
func (s *OrderService) CreateOrder(draft domain.OrderDraft) (*domain.Order, error) {
	if err := draft.Validate(s.catalog); err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}

	order, err := s.orders.CreateOrder(draft)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("customer_id", order.CustomerID),
		zap.String("category", order.Category),
	)
	return order, nil
}

// RequestCallback forwards a customer's call-back request to administrators
func (s *OrderService) RequestCallback(who domain.Contact, rawPhone string) error {
	phone, err := domain.NormalizePhone(rawPhone)
	if err != nil {
		return err
	}

	s.logger.Info("Callback requested", zap.Int64("user_id", who.ID))

	s.notifier.NotifyAdmins(fmt.Sprintf(
		"📞 <b>Обратный звонок</b>\nОт: %s\nТелефон: <b>%s</b>",
		Mention(who), Esc(phone),
	))
	return nil
}
