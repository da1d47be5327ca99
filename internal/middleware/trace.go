package middleware

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// TraceKey is the context key holding the update's trace id
const TraceKey = "trace_id"

// Trace tags every update with a trace id and logs how it was handled
func Trace(channel string, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			traceID := uuid.NewString()
			c.Set(TraceKey, traceID)

			fields := []zap.Field{
				zap.String("channel", channel),
				zap.String(TraceKey, traceID),
				zap.String("kind", updateKind(c)),
			}
			if sender := c.Sender(); sender != nil {
				fields = append(fields, zap.Int64("user_id", sender.ID))
			}

			start := time.Now()
			err := next(c)
			fields = append(fields, zap.Duration("took", time.Since(start)))

			if err != nil {
				logger.Error("Update failed", append(fields, zap.Error(err))...)
				return err
			}
			logger.Debug("Update handled", fields...)
			return nil
		}
	}
}

func updateKind(c tele.Context) string {
	switch {
	case c.Callback() != nil:
		return "callback"
	case c.Message() != nil:
		return "message"
	default:
		return "other"
	}
}
