package domain

import "time"

// ExecutorStatus is the approval state of an executor
type ExecutorStatus string

const (
	StatusPending  ExecutorStatus = "pending"
	StatusApproved ExecutorStatus = "approved"
	StatusBlocked  ExecutorStatus = "blocked"
)

// Statuses lists every status in display order.
var Statuses = []ExecutorStatus{StatusPending, StatusApproved, StatusBlocked}

// CanTransition reports whether an executor may move from s to next.
// Re-applying the current status is allowed and changes nothing.
func (s ExecutorStatus) CanTransition(next ExecutorStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusBlocked
	case StatusApproved:
		return next == StatusBlocked
	default:
		return false
	}
}

// Executor is a registered service provider
type Executor struct {
	UserID       int64
	Username     string
	Name         string
	Phone        string
	Categories   CategorySet
	Status       ExecutorStatus
	RegisteredAt time.Time
}

// Eligible reports whether the executor should receive orders in category
func (e *Executor) Eligible(category string) bool {
	return e.Status == StatusApproved && e.Categories.Has(category)
}

// Clone returns a deep copy so callers never share the category set.
func (e *Executor) Clone() *Executor {
	if e == nil {
		return nil
	}
	out := *e
	out.Categories = e.Categories.Clone()
	return &out
}

// Contact identifies the person behind an update on any channel.
type Contact struct {
	ID       int64
	Username string
	FullName string
}
