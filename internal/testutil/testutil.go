package testutil

import (
	"time"

	"orderhub/internal/domain"

	"go.uber.org/zap"
)

// AdminID is the administrator used across tests
const AdminID int64 = 900

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestCatalog returns the default category catalog
func NewTestCatalog() *domain.Catalog {
	return domain.NewCatalog(domain.DefaultCategories)
}

// NewTestExecutor creates a test executor
func NewTestExecutor(userID int64, status domain.ExecutorStatus, categories ...string) *domain.Executor {
	return &domain.Executor{
		UserID:       userID,
		Name:         "Исполнитель",
		Phone:        "+375291112233",
		Categories:   domain.NewCategorySet(categories...),
		Status:       status,
		RegisteredAt: time.Now(),
	}
}

// NewTestDraft creates a complete order draft for category
func NewTestDraft(category string) domain.OrderDraft {
	return domain.OrderDraft{
		CustomerID:    1,
		CustomerPhone: "+375291234567",
		Category:      category,
		Description:   "подъем плиты",
		Address:       "ул. Ленина 1",
		Date:          "15.10.2026",
	}
}

// NewTestContact creates a contact with a username
func NewTestContact(id int64) domain.Contact {
	return domain.Contact{ID: id, Username: "user", FullName: "Test User"}
}
