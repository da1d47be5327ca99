package flow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"orderhub/internal/domain"
	"orderhub/internal/service"

	"go.uber.org/zap"
)

const (
	executorWelcome    = "Бот для исполнителей. Здесь будут приходить заявки по вашим категориям."
	askExecutorName    = "Как к вам обращаться? (Имя/название бригады)"
	askExecutorPhone   = "Укажите телефон в формате <code>" + domain.PhoneHint + "</code>:"
	askCategories      = "Выберите категории (можно несколько), затем «Готово»:"
	registrationThanks = "Спасибо! Заявка на регистрацию отправлена. Ждите одобрения."
	alreadyRegistered  = "Вы уже зарегистрированы и одобрены."
	registrationClosed = "Регистрация недоступна. Свяжитесь с диспетчером."
	registrationFailed = "Не удалось сохранить регистрацию. Попробуйте ещё раз: /start "
	notRegistered      = "Вы ещё не зарегистрированы. Получите ссылку на регистрацию у диспетчера."
	executorHelp       = "Когда появится заявка по вашей категории, придёт карточка с кнопками.\n" +
		"👍 Беру — диспетчер получит ваши контакты и свяжется с вами.\n" +
		"👎 Пропустить — заявка скроется."
	noticePickOne      = "Выберите хотя бы одну категорию"
	noticeUnavailable  = "Заявка недоступна"
	noticeNotApproved  = "Доступ только для одобренных исполнителей"
	noticeTaken        = "Принято! Диспетчер с вами свяжется."
	noticeSkipped      = "Пропущено"
	noticeTryLater     = "Ошибка, попробуйте позже"
	emptyName          = "Имя не может быть пустым. Как к вам обращаться?"
)

var statusLabels = map[domain.ExecutorStatus]string{
	domain.StatusPending:  "⏳ на рассмотрении",
	domain.StatusApproved: "✅ одобрен",
	domain.StatusBlocked:  "⛔ заблокирован",
}

// Executor is the state machine of the executor-facing bot
type Executor struct {
	executors *service.ExecutorService
	matching  *service.MatchingService
	payload   string
	logger    *zap.Logger
}

// NewExecutor creates the executor machine; payload is the deep-link
// argument that opens registration
func NewExecutor(
	executors *service.ExecutorService,
	matching *service.MatchingService,
	payload string,
	logger *zap.Logger,
) *Executor {
	return &Executor{
		executors: executors,
		matching:  matching,
		payload:   payload,
		logger:    logger,
	}
}

// Handle applies ev to st and returns the next state and the effects to perform
func (m *Executor) Handle(st domain.ExecutorState, ev Event) (domain.ExecutorState, Result) {
	switch ev.Kind {
	case EventStart:
		return m.onStart(ev)
	case EventButton:
		return m.onButton(st, ev)
	case EventText:
		return m.onText(st, ev)
	}
	return st, Result{}
}

func (m *Executor) onStart(ev Event) (domain.ExecutorState, Result) {
	idle := domain.ExecutorState{Step: domain.ExecutorIdle}

	if m.payload != "" && strings.EqualFold(strings.TrimSpace(ev.Payload), m.payload) {
		err := m.executors.CanRegister(ev.From.ID)
		switch {
		case err == nil:
			return domain.ExecutorState{Step: domain.ExecutorAwaitingName}, say(askExecutorName, nil)
		case errors.Is(err, domain.ErrAlreadyRegistered):
			return idle, say(alreadyRegistered, executorMenu())
		case errors.Is(err, domain.ErrRegistrationClosed):
			return idle, say(registrationClosed, nil)
		default:
			m.logger.Error("Failed to check registration", zap.Int64("user_id", ev.From.ID), zap.Error(err))
			return idle, say(noticeTryLater, nil)
		}
	}

	ex, err := m.executors.Get(ev.From.ID)
	if err != nil {
		return idle, say(executorWelcome+"\n\n"+notRegistered, nil)
	}
	return idle, say(executorWelcome+"\n\nСтатус: <b>"+StatusLabel(ex.Status)+"</b>", executorMenu())
}

func (m *Executor) onText(st domain.ExecutorState, ev Event) (domain.ExecutorState, Result) {
	text := strings.TrimSpace(ev.Text)

	switch st.Step {
	case domain.ExecutorAwaitingName:
		if text == "" {
			return st, say(emptyName, nil)
		}
		st.Name = text
		st.Step = domain.ExecutorAwaitingPhone
		return st, say(askExecutorPhone, nil)

	case domain.ExecutorAwaitingPhone:
		phone, err := domain.NormalizePhone(text)
		if err != nil {
			return st, say(badPhone, nil)
		}
		st.Phone = phone
		st.Selected = domain.NewCategorySet()
		st.Step = domain.ExecutorPickingCategories
		return st, say(askCategories, categoryPicker(m.executors.Catalog(), st.Selected))

	case domain.ExecutorPickingCategories:
		return st, say(askCategories, categoryPicker(m.executors.Catalog(), st.Selected))
	}

	return st, Result{}
}

func (m *Executor) onButton(st domain.ExecutorState, ev Event) (domain.ExecutorState, Result) {
	data := ev.Data

	switch {
	case strings.HasPrefix(data, service.TakePrefix):
		return st, m.onTake(ev, strings.TrimPrefix(data, service.TakePrefix))
	case strings.HasPrefix(data, service.SkipPrefix):
		return st, m.onSkip(ev, strings.TrimPrefix(data, service.SkipPrefix))
	case strings.HasPrefix(data, prefixProCat):
		return m.onToggle(st, strings.TrimPrefix(data, prefixProCat))
	}

	switch data {
	case dataCatsDone:
		return m.onDone(st, ev)
	case dataMyCats, dataMyPhone:
		ex, err := m.executors.Get(ev.From.ID)
		if err != nil {
			return st, say(notRegistered, nil)
		}
		if data == dataMyCats {
			return st, say("Ваши категории: "+service.Esc(ex.Categories.Join()), nil)
		}
		return st, say("Ваш телефон: <b>"+service.Esc(ex.Phone)+"</b>", nil)
	case dataProHelp:
		return st, say(executorHelp, nil)
	}

	return st, Result{}
}

func (m *Executor) onToggle(st domain.ExecutorState, category string) (domain.ExecutorState, Result) {
	if st.Step != domain.ExecutorPickingCategories {
		return st, notice(noticeStale, false)
	}
	if !m.executors.Catalog().Contains(category) {
		return st, notice(noticeUnknownCat, true)
	}

	st.Selected = st.Selected.Toggled(category)
	return st, edit("", categoryPicker(m.executors.Catalog(), st.Selected))
}

func (m *Executor) onDone(st domain.ExecutorState, ev Event) (domain.ExecutorState, Result) {
	if st.Step != domain.ExecutorPickingCategories {
		return st, notice(noticeStale, false)
	}
	if len(st.Selected) == 0 {
		return st, notice(noticePickOne, true)
	}

	_, err := m.executors.Register(service.Registration{
		Contact:    ev.From,
		Name:       st.Name,
		Phone:      st.Phone,
		Categories: st.Selected,
	})
	idle := domain.ExecutorState{Step: domain.ExecutorIdle}
	switch {
	case err == nil:
		res := say(registrationThanks, nil)
		res.DropControls = true
		return idle, res
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return idle, say(alreadyRegistered, executorMenu())
	case errors.Is(err, domain.ErrRegistrationClosed):
		return idle, say(registrationClosed, nil)
	default:
		m.logger.Error("Failed to register executor", zap.Int64("user_id", ev.From.ID), zap.Error(err))
		return idle, say(registrationFailed+m.payload, nil)
	}
}

func (m *Executor) onTake(ev Event, rawID string) Result {
	orderID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return notice(noticeUnavailable, true)
	}

	_, err = m.matching.AcceptOrder(orderID, ev.From)
	switch {
	case err == nil:
		res := notice(noticeTaken, false)
		res.DropControls = true
		return res
	case errors.Is(err, domain.ErrOrderNotAvailable):
		return notice(noticeUnavailable, true)
	case errors.Is(err, domain.ErrUnauthorized):
		return notice(noticeNotApproved, true)
	default:
		m.logger.Error("Failed to accept order",
			zap.Int64("order_id", orderID),
			zap.Int64("executor_id", ev.From.ID),
			zap.Error(err),
		)
		return notice(noticeTryLater, true)
	}
}

func (m *Executor) onSkip(ev Event, rawID string) Result {
	orderID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return notice(noticeUnavailable, true)
	}

	m.matching.SkipOrder(orderID, ev.From)
	res := notice(noticeSkipped, false)
	res.DropControls = true
	return res
}

// StatusLabel renders an executor status for people
func StatusLabel(s domain.ExecutorStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("%q", s)
}
