package service

import (
	"sync"

	"orderhub/internal/channel"

	"go.uber.org/zap"
)

// Delivery is the outcome of sending one message to one recipient
type Delivery struct {
	Recipient int64
	Ref       channel.MessageRef
	Err       error
}

// FanoutReport aggregates per-recipient outcomes of a broadcast
type FanoutReport struct {
	Deliveries []Delivery
}

// Delivered returns the number of successful sends
func (r FanoutReport) Delivered() int {
	n := 0
	for _, d := range r.Deliveries {
		if d.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the recipients whose send failed
func (r FanoutReport) Failed() []int64 {
	var ids []int64
	for _, d := range r.Deliveries {
		if d.Err != nil {
			ids = append(ids, d.Recipient)
		}
	}
	return ids
}

// fanout sends the same message to every recipient concurrently.
// A failed send never affects the others; outcomes keep recipient order.
func fanout(sender channel.Sender, recipients []int64, text string, kb channel.Keyboard, logger *zap.Logger) FanoutReport {
	report := FanoutReport{Deliveries: make([]Delivery, len(recipients))}

	var wg sync.WaitGroup
	for i, to := range recipients {
		wg.Add(1)
		go func(i int, to int64) {
			defer wg.Done()

			ref, err := sender.Send(to, text, kb)
			if err != nil {
				logger.Warn("Delivery failed",
					zap.Int64("recipient", to),
					zap.Error(err),
				)
			}
			report.Deliveries[i] = Delivery{Recipient: to, Ref: ref, Err: err}
		}(i, to)
	}
	wg.Wait()

	return report
}

// Notifier broadcasts operational messages to administrators over the dispatcher channel
type Notifier struct {
	sender channel.Sender
	auth   *AuthService
	logger *zap.Logger
}

// NewNotifier creates a new admin notifier
func NewNotifier(sender channel.Sender, auth *AuthService, logger *zap.Logger) *Notifier {
	return &Notifier{
		sender: sender,
		auth:   auth,
		logger: logger,
	}
}

// NotifyAdmins sends text to every administrator
func (n *Notifier) NotifyAdmins(text string) FanoutReport {
	admins := n.auth.Admins()
	if len(admins) == 0 {
		n.logger.Warn("No administrators configured, notification dropped")
		return FanoutReport{}
	}

	report := fanout(n.sender, admins, text, nil, n.logger)
	if report.Delivered() == 0 {
		n.logger.Error("Admin notification reached nobody",
			zap.Int("admins", len(admins)),
		)
	}
	return report
}
