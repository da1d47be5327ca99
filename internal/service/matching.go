package service

import (
	"errors"
	"fmt"

	"orderhub/internal/channel"
	"orderhub/internal/domain"
	"orderhub/internal/repository"

	"go.uber.org/zap"
)

// AlertKind tells which administrator alert a dispatch produced
type AlertKind string

const (
	AlertNone        AlertKind = ""
	AlertNoEligible  AlertKind = "no_eligible"
	AlertUnreachable AlertKind = "unreachable"
)

// DispatchReport describes the outcome of fanning an order out to executors
type DispatchReport struct {
	OrderID  int64
	Found    bool
	Eligible int
	Fanout   FanoutReport
	Alert    AlertKind
}

// MatchingService matches orders to eligible executors and relays acceptances
type MatchingService struct {
	executors repository.ExecutorRepository
	orders    repository.OrderRepository
	sender    channel.Sender
	notifier  *Notifier
	logger    *zap.Logger
}

// NewMatchingService creates a new matching service; sender is the executor channel
func NewMatchingService(
	executors repository.ExecutorRepository,
	orders repository.OrderRepository,
	sender channel.Sender,
	notifier *Notifier,
	logger *zap.Logger,
) *MatchingService {
	return &MatchingService{
		executors: executors,
		orders:    orders,
		sender:    sender,
		notifier:  notifier,
		logger:    logger,
	}
}

// EligibleExecutors returns approved executors whose categories contain category
func (s *MatchingService) EligibleExecutors(category string) ([]*domain.Executor, error) {
	approved, err := s.executors.ListExecutors(domain.StatusApproved)
	if err != nil {
		return nil, err
	}

	var eligible []*domain.Executor
	for _, ex := range approved {
		if ex.Eligible(category) {
			eligible = append(eligible, ex)
		}
	}
	return eligible, nil
}

// DispatchOrder delivers the order card to every eligible executor and alerts
// administrators when nobody is eligible or nobody could be reached
func (s *MatchingService) DispatchOrder(orderID int64) DispatchReport {
	report := DispatchReport{OrderID: orderID}

	order, err := s.orders.GetOrder(orderID)
	if err != nil {
		s.logger.Warn("Dispatch of unknown order skipped",
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)
		return report
	}
	report.Found = true

	eligible, err := s.EligibleExecutors(order.Category)
	if err != nil {
		s.logger.Error("Failed to list executors", zap.Error(err))
	}
	report.Eligible = len(eligible)

	if len(eligible) == 0 {
		s.logger.Info("No eligible executors for order",
			zap.Int64("order_id", order.ID),
			zap.String("category", order.Category),
		)
		s.notifier.NotifyAdmins(fmt.Sprintf(
			"⚠️ Нет одобренных исполнителей по категории [%s] для заявки #%d.\n"+
				"Клиент: <b>%s</b> — позвоните вручную.",
			Esc(order.Category), order.ID, Esc(order.CustomerPhone),
		))
		report.Alert = AlertNoEligible
		return report
	}

	recipients := make([]int64, 0, len(eligible))
	for _, ex := range eligible {
		recipients = append(recipients, ex.UserID)
	}

	report.Fanout = fanout(s.sender, recipients, OrderCardText(order), OrderCardKeyboard(order), s.logger)

	s.logger.Info("Order dispatched",
		zap.Int64("order_id", order.ID),
		zap.String("category", order.Category),
		zap.Int("eligible", len(eligible)),
		zap.Int("delivered", report.Fanout.Delivered()),
	)

	if report.Fanout.Delivered() == 0 {
		s.notifier.NotifyAdmins(fmt.Sprintf(
			"⚠️ Ни одному исполнителю не доставлено в личку (никто не нажал Start у бота исполнителей) по заявке #%d [%s].\n"+
				"Клиент: <b>%s</b>",
			order.ID, Esc(order.Category), Esc(order.CustomerPhone),
		))
		report.Alert = AlertUnreachable
	}

	return report
}

// AcceptOrder records that an approved executor is ready to take the order
// and hands the contact details to administrators
func (s *MatchingService) AcceptOrder(orderID int64, who domain.Contact) (*domain.Order, error) {
	order, err := s.orders.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("order %d: %w", orderID, domain.ErrOrderNotAvailable)
		}
		return nil, err
	}

	ex, err := s.executors.GetExecutor(who.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("executor %d: %w", who.ID, domain.ErrUnauthorized)
		}
		return nil, err
	}
	if ex.Status != domain.StatusApproved {
		return nil, fmt.Errorf("executor %d is %s: %w", who.ID, ex.Status, domain.ErrUnauthorized)
	}

	if err := s.orders.RecordAcceptance(order.ID, ex.UserID); err != nil {
		return nil, fmt.Errorf("record acceptance: %w", err)
	}
	// repeated taps are already relayed
	if order.Accepted(ex.UserID) {
		return order, nil
	}
	order.AcceptedBy[ex.UserID] = struct{}{}

	s.logger.Info("Order accepted",
		zap.Int64("order_id", order.ID),
		zap.Int64("executor_id", ex.UserID),
	)

	if who.FullName == "" {
		who.FullName = ex.Name
	}
	s.notifier.NotifyAdmins(fmt.Sprintf(
		"✅ <b>Отклик</b> по заявке #%d [%s]\n"+
			"Исполнитель: %s\nТел.: <b>%s</b>\n"+
			"Клиент: <b>%s</b>\nАдрес: %s\nДата: %s\nОписание: %s",
		order.ID, Esc(order.Category),
		Mention(who), Esc(ex.Phone),
		Esc(order.CustomerPhone), Esc(order.Address), Esc(order.Date), Esc(order.Description),
	))

	return order, nil
}

// SkipOrder acknowledges that an executor declined the order; nothing is stored
func (s *MatchingService) SkipOrder(orderID int64, who domain.Contact) {
	s.logger.Info("Order skipped",
		zap.Int64("order_id", orderID),
		zap.Int64("executor_id", who.ID),
	)
}
