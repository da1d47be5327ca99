package domain

import (
	"strings"
	"time"
)

// OrderDraft holds the answers collected by the customer flow
type OrderDraft struct {
	CustomerID    int64
	CustomerPhone string
	Category      string
	Description   string
	Address       string
	Date          string
}

// Validate checks the draft against the category catalog.
func (d OrderDraft) Validate(catalog *Catalog) error {
	if !catalog.Contains(d.Category) {
		return ErrUnknownCategory
	}
	if _, err := NormalizePhone(d.CustomerPhone); err != nil {
		return err
	}
	if strings.TrimSpace(d.Description) == "" || strings.TrimSpace(d.Address) == "" || d.Date == "" {
		return ErrEmptyField
	}
	return nil
}

// Order is a customer service request
type Order struct {
	ID            int64
	CustomerID    int64
	CustomerPhone string
	Category      string
	Description   string
	Address       string
	Date          string
	CreatedAt     time.Time
	AcceptedBy    map[int64]struct{}
}

// Accepted reports whether executorID has accepted the order.
func (o *Order) Accepted(executorID int64) bool {
	_, ok := o.AcceptedBy[executorID]
	return ok
}

// Clone returns a deep copy of the order.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	out := *o
	out.AcceptedBy = make(map[int64]struct{}, len(o.AcceptedBy))
	for id := range o.AcceptedBy {
		out.AcceptedBy[id] = struct{}{}
	}
	return &out
}
