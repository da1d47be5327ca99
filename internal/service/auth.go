package service

import (
	"sort"
)

// AuthService holds the static administrator allow-list
type AuthService struct {
	admins map[int64]struct{}
}

// NewAuthService creates a new auth service for the given admin ids
func NewAuthService(adminIDs []int64) *AuthService {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &AuthService{admins: admins}
}

// IsAdmin checks if userID is an administrator
func (s *AuthService) IsAdmin(userID int64) bool {
	_, ok := s.admins[userID]
	return ok
}

// Admins returns administrator ids in ascending order
func (s *AuthService) Admins() []int64 {
	ids := make([]int64, 0, len(s.admins))
	for id := range s.admins {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
