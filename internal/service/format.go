package service

import (
	"fmt"
	"html"
	"strings"

	"orderhub/internal/channel"
	"orderhub/internal/domain"
)

// Callback data prefixes for order card buttons
const (
	TakePrefix = "take:"
	SkipPrefix = "skip:"
)

// Esc escapes user-provided text for HTML parse mode
func Esc(s string) string {
	return html.EscapeString(s)
}

// Mention renders a clickable reference to a user
func Mention(c domain.Contact) string {
	if c.Username != "" {
		return "@" + Esc(c.Username)
	}
	name := strings.TrimSpace(c.FullName)
	if name == "" {
		name = "Пользователь"
	}
	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, c.ID, Esc(name))
}

// OrderCardText is the order summary delivered to eligible executors
func OrderCardText(o *domain.Order) string {
	return fmt.Sprintf(
		"📥 <b>Заявка #%d</b>\n"+
			"Категория: <b>%s</b>\n"+
			"Дата: <b>%s</b>\n"+
			"Адрес: %s\n"+
			"Описание: %s\n\n"+
			"Готовы взяться?",
		o.ID, Esc(o.Category), Esc(o.Date), Esc(o.Address), Esc(o.Description),
	)
}

// OrderCardKeyboard holds the accept and skip controls of an order card
func OrderCardKeyboard(o *domain.Order) channel.Keyboard {
	return channel.Keyboard{
		channel.Row(
			channel.Button{Text: "👍 Беру", Data: fmt.Sprintf("%s%d", TakePrefix, o.ID)},
			channel.Button{Text: "👎 Пропустить", Data: fmt.Sprintf("%s%d", SkipPrefix, o.ID)},
		),
	}
}

// ExecutorLine is the one-line executor summary used in admin listings
func ExecutorLine(e *domain.Executor) string {
	return fmt.Sprintf("• %d %s %s", e.UserID, Esc(e.Name), Esc(e.Phone))
}

// ApproveCommand and BlockCommand are the admin commands pre-formatted for reply
func ApproveCommand(userID int64) string {
	return fmt.Sprintf("/exec_approve %d", userID)
}

func BlockCommand(userID int64) string {
	return fmt.Sprintf("/exec_block %d", userID)
}
