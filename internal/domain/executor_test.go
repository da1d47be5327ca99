package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutorStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from     ExecutorStatus
		to       ExecutorStatus
		expected bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusBlocked, true},
		{StatusPending, StatusPending, true},
		{StatusApproved, StatusBlocked, true},
		{StatusApproved, StatusApproved, true},
		{StatusApproved, StatusPending, false},
		{StatusBlocked, StatusApproved, false},
		{StatusBlocked, StatusPending, false},
		{StatusBlocked, StatusBlocked, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransition(tt.to))
		})
	}
}

func TestExecutor_Eligible(t *testing.T) {
	ex := &Executor{Status: StatusApproved, Categories: NewCategorySet("Кран")}

	assert.True(t, ex.Eligible("Кран"))
	assert.False(t, ex.Eligible("Кровля"))

	ex.Status = StatusPending
	assert.False(t, ex.Eligible("Кран"))
}

func TestExecutor_Clone(t *testing.T) {
	ex := &Executor{UserID: 1, Categories: NewCategorySet("Кран")}

	cp := ex.Clone()
	cp.Categories["Кровля"] = struct{}{}

	assert.False(t, ex.Categories.Has("Кровля"))
	assert.Nil(t, (*Executor)(nil).Clone())
}

func TestOrderDraft_Validate(t *testing.T) {
	catalog := NewCatalog([]string{"Кран"})
	valid := OrderDraft{
		CustomerPhone: "+375291234567",
		Category:      "Кран",
		Description:   "подъем плиты",
		Address:       "ул. Ленина 1",
		Date:          "15.10.2026",
	}

	tests := []struct {
		name     string
		mutate   func(d *OrderDraft)
		expected error
	}{
		{name: "valid", mutate: func(d *OrderDraft) {}},
		{name: "unknown category", mutate: func(d *OrderDraft) { d.Category = "Лифт" }, expected: ErrUnknownCategory},
		{name: "bad phone", mutate: func(d *OrderDraft) { d.CustomerPhone = "123" }, expected: ErrInvalidPhone},
		{name: "blank description", mutate: func(d *OrderDraft) { d.Description = "  " }, expected: ErrEmptyField},
		{name: "missing date", mutate: func(d *OrderDraft) { d.Date = "" }, expected: ErrEmptyField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)

			err := d.Validate(catalog)

			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}
