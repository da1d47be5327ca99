package memory

import (
	"fmt"
	"sync"
	"time"

	"orderhub/internal/domain"
)

// OrderRepo implements repository.OrderRepository in process memory
type OrderRepo struct {
	mu     sync.RWMutex
	orders map[int64]*domain.Order
	lastID int64
	now    func() time.Time
}

// NewOrderRepo creates an empty order registry; the first id is 1
func NewOrderRepo() *OrderRepo {
	return &OrderRepo{
		orders: make(map[int64]*domain.Order),
		now:    time.Now,
	}
}

// CreateOrder allocates the next sequential id and stores the order
func (r *OrderRepo) CreateOrder(draft domain.OrderDraft) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	o := &domain.Order{
		ID:            r.lastID,
		CustomerID:    draft.CustomerID,
		CustomerPhone: draft.CustomerPhone,
		Category:      draft.Category,
		Description:   draft.Description,
		Address:       draft.Address,
		Date:          draft.Date,
		CreatedAt:     r.now(),
		AcceptedBy:    make(map[int64]struct{}),
	}
	r.orders[o.ID] = o
	return o.Clone(), nil
}

// GetOrder returns a copy of the order or domain.ErrNotFound
func (r *OrderRepo) GetOrder(id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	return o.Clone(), nil
}

// RecordAcceptance adds executorID to the order's acceptance set.
// Recording the same executor twice is a no-op.
func (r *OrderRepo) RecordAcceptance(orderID, executorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return fmt.Errorf("order %d: %w", orderID, domain.ErrNotFound)
	}
	o.AcceptedBy[executorID] = struct{}{}
	return nil
}
