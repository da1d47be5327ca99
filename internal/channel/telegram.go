package channel

import (
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v3"
)

// Telegram implements Sender on top of a telebot bot
type Telegram struct {
	bot  *tele.Bot
	name Name
}

// NewTelegram wraps bot as the sender for channel name
func NewTelegram(name Name, bot *tele.Bot) *Telegram {
	return &Telegram{bot: bot, name: name}
}

// Send delivers text with optional inline controls to a user's private chat
func (t *Telegram) Send(to int64, text string, kb Keyboard) (MessageRef, error) {
	var opts []interface{}
	if markup := Markup(kb); markup != nil {
		opts = append(opts, markup)
	}

	msg, err := t.bot.Send(tele.ChatID(to), text, opts...)
	if err != nil {
		return MessageRef{}, fmt.Errorf("%s: send to %d: %w", t.name, to, err)
	}
	return MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID}, nil
}

// DisableControls removes the inline keyboard from a delivered message
func (t *Telegram) DisableControls(ref MessageRef) error {
	stored := tele.StoredMessage{
		MessageID: strconv.Itoa(ref.MessageID),
		ChatID:    ref.ChatID,
	}
	if _, err := t.bot.EditReplyMarkup(stored, nil); err != nil {
		return fmt.Errorf("%s: disable controls %d/%d: %w", t.name, ref.ChatID, ref.MessageID, err)
	}
	return nil
}

// Markup converts a keyboard into telebot inline markup; nil for an empty keyboard.
// Buttons are built without Unique so callback data arrives verbatim.
func Markup(kb Keyboard) *tele.ReplyMarkup {
	if len(kb) == 0 {
		return nil
	}
	rows := make([][]tele.InlineButton, 0, len(kb))
	for _, r := range kb {
		row := make([]tele.InlineButton, 0, len(r))
		for _, b := range r {
			row = append(row, tele.InlineButton{Text: b.Text, Data: b.Data})
		}
		rows = append(rows, row)
	}
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}
