package service

import (
	"errors"
	"fmt"
	"strings"

	"orderhub/internal/domain"
	"orderhub/internal/repository"

	"go.uber.org/zap"
)

// Registration is a completed executor sign-up form
type Registration struct {
	Contact    domain.Contact
	Name       string
	Phone      string
	Categories domain.CategorySet
}

// ExecutorService handles the executor registration and approval lifecycle
type ExecutorService struct {
	executors repository.ExecutorRepository
	catalog   *domain.Catalog
	notifier  *Notifier
	logger    *zap.Logger
}

// NewExecutorService creates a new executor service
func NewExecutorService(
	executors repository.ExecutorRepository,
	catalog *domain.Catalog,
	notifier *Notifier,
	logger *zap.Logger,
) *ExecutorService {
	return &ExecutorService{
		executors: executors,
		catalog:   catalog,
		notifier:  notifier,
		logger:    logger,
	}
}

// Catalog returns the category catalog
func (s *ExecutorService) Catalog() *domain.Catalog {
	return s.catalog
}

// Get returns the executor record for userID
func (s *ExecutorService) Get(userID int64) (*domain.Executor, error) {
	return s.executors.GetExecutor(userID)
}

// CanRegister reports whether userID may start or resubmit registration.
// Approved and blocked executors can not, since either would revert to pending.
func (s *ExecutorService) CanRegister(userID int64) error {
	ex, err := s.executors.GetExecutor(userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	switch ex.Status {
	case domain.StatusApproved:
		return domain.ErrAlreadyRegistered
	case domain.StatusBlocked:
		return domain.ErrRegistrationClosed
	}
	return nil
}

// Register stores the executor as pending and asks administrators to review it
func (s *ExecutorService) Register(reg Registration) (*domain.Executor, error) {
	name := strings.TrimSpace(reg.Name)
	if name == "" {
		return nil, domain.ErrEmptyField
	}
	phone, err := domain.NormalizePhone(reg.Phone)
	if err != nil {
		return nil, err
	}
	if len(reg.Categories) == 0 {
		return nil, domain.ErrEmptySelection
	}
	for c := range reg.Categories {
		if !s.catalog.Contains(c) {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, c)
		}
	}
	if err := s.CanRegister(reg.Contact.ID); err != nil {
		return nil, err
	}

	ex := &domain.Executor{
		UserID:     reg.Contact.ID,
		Username:   reg.Contact.Username,
		Name:       name,
		Phone:      phone,
		Categories: reg.Categories.Clone(),
		Status:     domain.StatusPending,
	}
	if err := s.executors.UpsertExecutor(ex); err != nil {
		return nil, fmt.Errorf("save executor: %w", err)
	}

	s.logger.Info("Executor registered",
		zap.Int64("user_id", ex.UserID),
		zap.Strings("categories", ex.Categories.Sorted()),
	)

	who := reg.Contact
	if who.FullName == "" {
		who.FullName = name
	}
	s.notifier.NotifyAdmins(fmt.Sprintf(
		"🆕 <b>Новая регистрация исполнителя</b>\n"+
			"%s (%s)\nТелефон: <b>%s</b>\nКатегории: %s\n"+
			"Одобрить: %s\nЗаблокировать: %s",
		Mention(who), Esc(name), Esc(phone), Esc(ex.Categories.Join()),
		ApproveCommand(ex.UserID), BlockCommand(ex.UserID),
	))

	return s.executors.GetExecutor(ex.UserID)
}

// Approve lets a pending executor receive orders
func (s *ExecutorService) Approve(userID int64) (*domain.Executor, error) {
	return s.setStatus(userID, domain.StatusApproved)
}

// Block stops an executor from receiving or accepting orders for good
func (s *ExecutorService) Block(userID int64) (*domain.Executor, error) {
	return s.setStatus(userID, domain.StatusBlocked)
}

func (s *ExecutorService) setStatus(userID int64, status domain.ExecutorStatus) (*domain.Executor, error) {
	ex, err := s.executors.SetExecutorStatus(userID, status)
	if err != nil {
		return ex, err
	}

	s.logger.Info("Executor status changed",
		zap.Int64("user_id", userID),
		zap.String("status", string(status)),
	)
	return ex, nil
}

// ListByStatus returns every executor grouped by status
func (s *ExecutorService) ListByStatus() (map[domain.ExecutorStatus][]*domain.Executor, error) {
	all, err := s.executors.ListExecutors("")
	if err != nil {
		return nil, err
	}

	grouped := make(map[domain.ExecutorStatus][]*domain.Executor, len(domain.Statuses))
	for _, ex := range all {
		grouped[ex.Status] = append(grouped[ex.Status], ex)
	}
	return grouped, nil
}
