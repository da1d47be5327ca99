package service

import (
	"fmt"
	"strings"

	"orderhub/internal/domain"
	"orderhub/internal/repository"

	"go.uber.org/zap"
)

// DigestService reminds administrators about registrations awaiting review
type DigestService struct {
	executors repository.ExecutorRepository
	notifier  *Notifier
	logger    *zap.Logger
}

// NewDigestService creates a new digest service
func NewDigestService(executors repository.ExecutorRepository, notifier *Notifier, logger *zap.Logger) *DigestService {
	return &DigestService{
		executors: executors,
		notifier:  notifier,
		logger:    logger,
	}
}

// SendPendingDigest notifies administrators when executors are still pending.
// It returns the number of pending executors reported.
func (s *DigestService) SendPendingDigest() (int, error) {
	pending, err := s.executors.ListExecutors(domain.StatusPending)
	if err != nil {
		s.logger.Error("Failed to list pending executors", zap.Error(err))
		return 0, err
	}
	if len(pending) == 0 {
		s.logger.Debug("No pending executors, digest skipped")
		return 0, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⏳ <b>Ожидают одобрения (%d)</b>\n", len(pending))
	for _, ex := range pending {
		fmt.Fprintf(&b, "\n%s\n%s · %s\n", ExecutorLine(ex), ApproveCommand(ex.UserID), BlockCommand(ex.UserID))
	}

	report := s.notifier.NotifyAdmins(b.String())

	s.logger.Info("Pending digest sent",
		zap.Int("pending", len(pending)),
		zap.Int("delivered", report.Delivered()),
	)
	return len(pending), nil
}
