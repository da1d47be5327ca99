package handler

import (
	"strings"
	"unicode"

	"orderhub/internal/channel"
	"orderhub/internal/flow"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError reports whether a failed edit can be ignored.
// "message is not modified" means another press already produced the same
// content; anything else should fall back to sending a new message.
func (h *Handler) handleEditError(err error, c tele.Context) bool {
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback",
			zap.Int64("user_id", c.Sender().ID),
		)
		return true
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", c.Sender().ID),
	)
	return false
}

// render performs the effects of a machine result on the current update;
// out is the sender of the bot that received it
func (h *Handler) render(c tele.Context, out channel.Sender, res flow.Result) error {
	cb := c.Callback()

	for _, reply := range res.Replies {
		if reply.Edit && cb != nil && cb.Message != nil {
			if err := h.edit(c, reply); err == nil || h.handleEditError(err, c) {
				continue
			}
		}
		if reply.Text == "" {
			continue
		}
		if err := send(c, reply); err != nil {
			h.logger.Error("Failed to send reply",
				zap.Int64("user_id", c.Sender().ID),
				zap.Error(err),
			)
			if cb != nil {
				_ = c.Respond()
			}
			return err
		}
	}

	if cb == nil {
		if res.Notice != "" {
			return c.Send(res.Notice)
		}
		return nil
	}

	if res.DropControls && cb.Message != nil && cb.Message.Chat != nil {
		ref := channel.MessageRef{ChatID: cb.Message.Chat.ID, MessageID: cb.Message.ID}
		if err := out.DisableControls(ref); err != nil && !h.handleEditError(err, c) {
			h.logger.Warn("Failed to remove buttons", zap.Error(err))
		}
	}

	if res.Notice == "" {
		return c.Respond()
	}
	return c.Respond(&tele.CallbackResponse{Text: res.Notice, ShowAlert: res.Alert})
}

func (h *Handler) edit(c tele.Context, reply flow.Reply) error {
	markup := channel.Markup(reply.Keyboard)
	if reply.Text == "" {
		_, err := c.Bot().EditReplyMarkup(c.Callback().Message, markup)
		return err
	}
	if markup == nil {
		return c.Edit(reply.Text)
	}
	return c.Edit(reply.Text, markup)
}

func send(c tele.Context, reply flow.Reply) error {
	if markup := channel.Markup(reply.Keyboard); markup != nil {
		return c.Send(reply.Text, markup)
	}
	return c.Send(reply.Text)
}
