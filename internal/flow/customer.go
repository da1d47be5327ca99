package flow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderhub/internal/domain"
	"orderhub/internal/service"

	"go.uber.org/zap"
)

const (
	customerGreeting   = "Здравствуйте! Чем можем помочь?"
	customerHome       = "Главное меню:"
	askOrderPhone      = "Для связи укажите ваш номер <code>" + domain.PhoneHint + "</code>:"
	askCallbackPhone   = "Оставьте номер <b>в формате</b> <code>" + domain.PhoneHint + "</code> — мы перезвоним."
	badPhone           = "Формат: <code>" + domain.PhoneHint + "</code> (ровно 9 цифр после +375)."
	askCategory        = "Выберите категорию:"
	askCategoryButtons = "Пожалуйста, выберите категорию кнопкой ниже:"
	askDescription     = "Коротко опишите, что нужно (объём, особенности):"
	askAddress         = "Адрес (улица, дом; ориентиры по желанию):"
	askDate            = "Когда нужно начать работы?"
	askWeekDay         = "Выберите день в течение недели:"
	callbackThanks     = "Спасибо! Передали диспетчеру — скоро свяжемся."
	noticeStale        = "Это действие больше недоступно"
	noticeUnknownCat   = "Неизвестная категория"
	noticeBadDate      = "Неверная дата"
	orderFailed        = "Не удалось создать заявку. Попробуйте ещё раз."
	emptyAnswer        = "Пожалуйста, напишите ответ текстом."
	aboutTemplate      = "Мы — диспетчерский центр строительных работ в Могилёве.\n\n" +
		"• Помогаем быстро найти технику и бригады.\n" +
		"• Подбираем исполнителей под вашу задачу.\n" +
		"• Диспетчер связывается и сопровождает до старта работ.\n\n" +
		"Телефон диспетчера: <b>%s</b>"
)

// Customer is the state machine of the customer-facing bot
type Customer struct {
	orders       *service.OrderService
	supportPhone string
	loc          *time.Location
	now          func() time.Time
	logger       *zap.Logger
}

// NewCustomer creates the customer machine; dates are computed in loc
func NewCustomer(orders *service.OrderService, supportPhone string, loc *time.Location, logger *zap.Logger) *Customer {
	if loc == nil {
		loc = time.Local
	}
	return &Customer{
		orders:       orders,
		supportPhone: supportPhone,
		loc:          loc,
		now:          time.Now,
		logger:       logger,
	}
}

// Handle applies ev to st and returns the next state and the effects to perform
func (m *Customer) Handle(st domain.CustomerState, ev Event) (domain.CustomerState, Result) {
	switch ev.Kind {
	case EventStart:
		return domain.CustomerState{Step: domain.CustomerIdle}, say(customerGreeting, customerMenu())
	case EventButton:
		return m.onButton(st, ev)
	case EventText:
		return m.onText(st, ev)
	}
	return st, Result{}
}

func (m *Customer) onButton(st domain.CustomerState, ev Event) (domain.CustomerState, Result) {
	data := ev.Data

	switch data {
	case dataHome:
		return domain.CustomerState{Step: domain.CustomerIdle}, say(customerHome, customerMenu())
	case dataNewOrder:
		next := domain.CustomerState{
			Step:  domain.CustomerOrderPhone,
			Draft: domain.OrderDraft{CustomerID: ev.From.ID},
		}
		return next, say(askOrderPhone, cancelKeyboard())
	case dataCallback:
		return domain.CustomerState{Step: domain.CustomerCallbackPhone}, say(askCallbackPhone, cancelKeyboard())
	case dataAbout:
		return st, say(fmt.Sprintf(aboutTemplate, service.Esc(m.supportPhone)), nil)
	}

	switch {
	case strings.HasPrefix(data, prefixCat):
		return m.onCategory(st, strings.TrimPrefix(data, prefixCat))
	case strings.HasPrefix(data, prefixDate):
		return m.onDate(st, ev, strings.TrimPrefix(data, prefixDate))
	}

	return st, Result{}
}

func (m *Customer) onCategory(st domain.CustomerState, category string) (domain.CustomerState, Result) {
	if st.Step != domain.CustomerCategory {
		return st, notice(noticeStale, false)
	}
	if !m.orders.Catalog().Contains(category) {
		return st, notice(noticeUnknownCat, true)
	}

	st.Draft.Category = category
	st.Step = domain.CustomerDescription
	return st, say(askDescription, cancelKeyboard())
}

func (m *Customer) onDate(st domain.CustomerState, ev Event, value string) (domain.CustomerState, Result) {
	if st.Step != domain.CustomerDate {
		return st, notice(noticeStale, false)
	}

	now := m.now().In(m.loc)
	switch value {
	case "week":
		return st, edit(askWeekDay, weekMenu(now))
	case "back":
		return st, edit(askDate, dateMenu(now))
	}

	day, err := domain.ParseDay(value, m.loc)
	if err != nil {
		return st, notice(noticeBadDate, true)
	}

	draft := st.Draft
	draft.CustomerID = ev.From.ID
	draft.Date = day.OrderString()

	order, err := m.orders.CreateOrder(draft)
	if err != nil {
		m.logger.Error("Failed to create order",
			zap.Int64("user_id", ev.From.ID),
			zap.Error(err),
		)
		if errors.Is(err, domain.ErrUnknownCategory) || errors.Is(err, domain.ErrEmptyField) || errors.Is(err, domain.ErrInvalidPhone) {
			return domain.CustomerState{Step: domain.CustomerIdle}, say(orderFailed, customerMenu())
		}
		return st, notice(orderFailed, true)
	}

	res := say(orderConfirmation(order), customerMenu())
	res.Dispatch = order.ID
	return domain.CustomerState{Step: domain.CustomerIdle}, res
}

func (m *Customer) onText(st domain.CustomerState, ev Event) (domain.CustomerState, Result) {
	text := strings.TrimSpace(ev.Text)

	switch st.Step {
	case domain.CustomerOrderPhone:
		phone, err := domain.NormalizePhone(text)
		if err != nil {
			return st, say(badPhone, cancelKeyboard())
		}
		st.Draft.CustomerPhone = phone
		st.Step = domain.CustomerCategory
		return st, say(askCategory, categoryKeyboard(m.orders.Catalog()))

	case domain.CustomerCategory:
		return st, say(askCategoryButtons, categoryKeyboard(m.orders.Catalog()))

	case domain.CustomerDescription:
		if text == "" {
			return st, say(emptyAnswer, cancelKeyboard())
		}
		st.Draft.Description = text
		st.Step = domain.CustomerAddress
		return st, say(askAddress, cancelKeyboard())

	case domain.CustomerAddress:
		if text == "" {
			return st, say(emptyAnswer, cancelKeyboard())
		}
		st.Draft.Address = text
		st.Step = domain.CustomerDate
		return st, say(askDate, dateMenu(m.now().In(m.loc)))

	case domain.CustomerDate:
		return st, say(askDate, dateMenu(m.now().In(m.loc)))

	case domain.CustomerCallbackPhone:
		if err := m.orders.RequestCallback(ev.From, text); err != nil {
			return st, say(badPhone, cancelKeyboard())
		}
		return domain.CustomerState{Step: domain.CustomerIdle}, say(callbackThanks, customerMenu())
	}

	return domain.CustomerState{Step: domain.CustomerIdle}, say(customerGreeting, customerMenu())
}

func orderConfirmation(o *domain.Order) string {
	return fmt.Sprintf(
		"✅ Заявка <b>#%d</b> создана.\n\n"+
			"<b>Категория:</b> %s\n"+
			"<b>Описание:</b> %s\n"+
			"<b>Адрес:</b> %s\n"+
			"<b>Дата:</b> %s\n\n"+
			"Мы отправили заявку подходящим исполнителям. Диспетчер свяжется с вами.",
		o.ID, service.Esc(o.Category), service.Esc(o.Description), service.Esc(o.Address), service.Esc(o.Date),
	)
}
