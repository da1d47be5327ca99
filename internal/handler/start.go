package handler

import (
	"strings"

	"orderhub/internal/domain"
	"orderhub/internal/flow"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// eventFrom turns a telebot update into a flow event.
// Updates without a sender (channel posts) are ignored.
func (h *Handler) eventFrom(c tele.Context) (flow.Event, bool) {
	sender := c.Sender()
	if sender == nil {
		h.logger.Debug("Update without sender ignored")
		return flow.Event{}, false
	}

	ev := flow.Event{From: contactFrom(sender)}

	if cb := c.Callback(); cb != nil {
		ev.Kind = flow.EventButton
		ev.Data = cleanCallbackData(cb.Data)
		return ev, true
	}

	text := strings.TrimSpace(c.Text())
	if isStart(text) {
		ev.Kind = flow.EventStart
		if msg := c.Message(); msg != nil {
			ev.Payload = strings.TrimSpace(msg.Payload)
		}
		h.logger.Info("User started bot",
			zap.Int64("user_id", sender.ID),
			zap.String("username", sender.Username),
			zap.String("payload", ev.Payload),
		)
		return ev, true
	}

	ev.Kind = flow.EventText
	ev.Text = text
	return ev, true
}

// isStart matches "/start", "/start payload" and "/start@bot payload"
func isStart(text string) bool {
	cmd, _, _ := strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.EqualFold(cmd, "/start")
}

func contactFrom(u *tele.User) domain.Contact {
	return domain.Contact{
		ID:       u.ID,
		Username: u.Username,
		FullName: strings.TrimSpace(u.FirstName + " " + u.LastName),
	}
}
