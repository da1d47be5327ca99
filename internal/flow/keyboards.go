package flow

import (
	"time"

	"orderhub/internal/channel"
	"orderhub/internal/domain"
)

// Customer callback data
const (
	dataNewOrder = "cb:new"
	dataCallback = "cb:call"
	dataAbout    = "cb:about"
	dataHome     = "cb:home"
	prefixCat    = "cbcat:"
	prefixDate   = "cbdate:"
	dataDateWeek = prefixDate + "week"
	dataDateBack = prefixDate + "back"
)

const (
	catsPerRow    = 2
	btnCancelText = "Отмена"
)

// Executor callback data
const (
	prefixProCat = "procat:"
	dataCatsDone = "pro:cats_ok"
	dataMyCats   = "pro:cats"
	dataMyPhone  = "pro:phone"
	dataProHelp  = "pro:help"
)

func customerMenu() channel.Keyboard {
	return channel.Keyboard{
		channel.Row(channel.Button{Text: "➕ Создать заявку", Data: dataNewOrder}),
		channel.Row(channel.Button{Text: "📞 Обратный звонок", Data: dataCallback}),
		channel.Row(channel.Button{Text: "ℹ️ О нас", Data: dataAbout}),
	}
}

func cancelKeyboard() channel.Keyboard {
	return channel.Keyboard{
		channel.Row(channel.Button{Text: btnCancelText, Data: dataHome}),
	}
}

func categoryKeyboard(catalog *domain.Catalog) channel.Keyboard {
	names := catalog.Names()
	buttons := make([]channel.Button, 0, len(names))
	for _, n := range names {
		buttons = append(buttons, channel.Button{Text: n, Data: prefixCat + n})
	}
	kb := channel.Chunk(buttons, catsPerRow)
	return append(kb, channel.Row(channel.Button{Text: btnCancelText, Data: dataHome}))
}

func dateMenu(now time.Time) channel.Keyboard {
	var kb channel.Keyboard
	for _, d := range domain.QuickDays(now) {
		kb = append(kb, channel.Row(channel.Button{Text: d.QuickLabel(now), Data: prefixDate + d.DateString()}))
	}
	return append(kb,
		channel.Row(channel.Button{Text: "📅 В течение недели", Data: dataDateWeek}),
		channel.Row(channel.Button{Text: btnCancelText, Data: dataHome}),
	)
}

func weekMenu(now time.Time) channel.Keyboard {
	var kb channel.Keyboard
	for _, d := range domain.WeekDaysFrom(now) {
		kb = append(kb, channel.Row(channel.Button{Text: d.WeekLabel(), Data: prefixDate + d.DateString()}))
	}
	return append(kb, channel.Row(channel.Button{Text: "◀︎ Назад", Data: dataDateBack}))
}

func executorMenu() channel.Keyboard {
	return channel.Keyboard{
		channel.Row(channel.Button{Text: "📋 Мои категории", Data: dataMyCats}),
		channel.Row(channel.Button{Text: "📞 Мой телефон", Data: dataMyPhone}),
		channel.Row(channel.Button{Text: "ℹ️ Помощь", Data: dataProHelp}),
	}
}

// categoryPicker marks selected categories and ends with the done button
func categoryPicker(catalog *domain.Catalog, selected domain.CategorySet) channel.Keyboard {
	var kb channel.Keyboard
	for _, n := range catalog.Names() {
		label := n
		if selected.Has(n) {
			label = "✅ " + n
		}
		kb = append(kb, channel.Row(channel.Button{Text: label, Data: prefixProCat + n}))
	}
	return append(kb, channel.Row(channel.Button{Text: "Готово", Data: dataCatsDone}))
}
