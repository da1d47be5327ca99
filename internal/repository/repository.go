package repository

import (
	"orderhub/internal/domain"
)

// ExecutorRepository defines executor data operations
type ExecutorRepository interface {
	UpsertExecutor(ex *domain.Executor) error
	GetExecutor(userID int64) (*domain.Executor, error)
	ListExecutors(status domain.ExecutorStatus) ([]*domain.Executor, error)
	SetExecutorStatus(userID int64, status domain.ExecutorStatus) (*domain.Executor, error)
}

// OrderRepository defines order data operations
type OrderRepository interface {
	CreateOrder(draft domain.OrderDraft) (*domain.Order, error)
	GetOrder(id int64) (*domain.Order, error)
	RecordAcceptance(orderID, executorID int64) error
}
