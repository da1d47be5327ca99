package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"orderhub/internal/domain"
)

// ExecutorRepo implements repository.ExecutorRepository in process memory
type ExecutorRepo struct {
	mu        sync.RWMutex
	executors map[int64]*domain.Executor
	now       func() time.Time
}

// NewExecutorRepo creates an empty executor registry
func NewExecutorRepo() *ExecutorRepo {
	return &ExecutorRepo{
		executors: make(map[int64]*domain.Executor),
		now:       time.Now,
	}
}

// UpsertExecutor stores ex, keeping the registration time of an existing record
func (r *ExecutorRepo) UpsertExecutor(ex *domain.Executor) error {
	if ex == nil || ex.UserID == 0 {
		return fmt.Errorf("upsert executor: %w", domain.ErrEmptyField)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := ex.Clone()
	if prev, ok := r.executors[ex.UserID]; ok {
		stored.RegisteredAt = prev.RegisteredAt
	} else if stored.RegisteredAt.IsZero() {
		stored.RegisteredAt = r.now()
	}
	if stored.Status == "" {
		stored.Status = domain.StatusPending
	}
	r.executors[ex.UserID] = stored
	return nil
}

// GetExecutor returns a copy of the executor or domain.ErrNotFound
func (r *ExecutorRepo) GetExecutor(userID int64) (*domain.Executor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ex, ok := r.executors[userID]
	if !ok {
		return nil, fmt.Errorf("executor %d: %w", userID, domain.ErrNotFound)
	}
	return ex.Clone(), nil
}

// ListExecutors returns executors with the given status ordered by registration
// time. An empty status returns everyone.
func (r *ExecutorRepo) ListExecutors(status domain.ExecutorStatus) ([]*domain.Executor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Executor
	for _, ex := range r.executors {
		if status != "" && ex.Status != status {
			continue
		}
		out = append(out, ex.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].RegisteredAt.Equal(out[j].RegisteredAt) {
			return out[i].UserID < out[j].UserID
		}
		return out[i].RegisteredAt.Before(out[j].RegisteredAt)
	})
	return out, nil
}

// SetExecutorStatus moves an executor to status if the transition is allowed
func (r *ExecutorRepo) SetExecutorStatus(userID int64, status domain.ExecutorStatus) (*domain.Executor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ex, ok := r.executors[userID]
	if !ok {
		return nil, fmt.Errorf("executor %d: %w", userID, domain.ErrNotFound)
	}
	if !ex.Status.CanTransition(status) {
		return ex.Clone(), fmt.Errorf("executor %d %s -> %s: %w", userID, ex.Status, status, domain.ErrInvalidTransition)
	}

	ex.Status = status
	return ex.Clone(), nil
}
