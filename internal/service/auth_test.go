package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthService_IsAdmin(t *testing.T) {
	tests := []struct {
		name           string
		admins         []int64
		userID         int64
		expectedResult bool
	}{
		{
			name:           "listed admin",
			admins:         []int64{100, 200},
			userID:         200,
			expectedResult: true,
		},
		{
			name:           "not listed",
			admins:         []int64{100, 200},
			userID:         300,
			expectedResult: false,
		},
		{
			name:           "empty allow-list",
			admins:         nil,
			userID:         100,
			expectedResult: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewAuthService(tt.admins)

			assert.Equal(t, tt.expectedResult, service.IsAdmin(tt.userID))
		})
	}
}

func TestAuthService_Admins(t *testing.T) {
	service := NewAuthService([]int64{300, 100, 200, 100})

	assert.Equal(t, []int64{100, 200, 300}, service.Admins())
}
