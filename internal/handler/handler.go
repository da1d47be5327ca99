package handler

import (
	"orderhub/internal/channel"
	"orderhub/internal/domain"
	"orderhub/internal/flow"
	"orderhub/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler connects the three bots to their conversation machines
type Handler struct {
	customer   *flow.Customer
	executor   *flow.Executor
	dispatcher *flow.Dispatcher
	matching   *service.MatchingService
	logger     *zap.Logger

	// In-memory conversation state, one store per channel
	customers *flow.Sessions[domain.CustomerState]
	executors *flow.Sessions[domain.ExecutorState]

	// Outbound side of each bot, set on registration
	customerOut   channel.Sender
	executorOut   channel.Sender
	dispatcherOut channel.Sender
}

// NewHandler creates a new handler instance
func NewHandler(
	customer *flow.Customer,
	executor *flow.Executor,
	dispatcher *flow.Dispatcher,
	matching *service.MatchingService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		customer:   customer,
		executor:   executor,
		dispatcher: dispatcher,
		matching:   matching,
		logger:     logger,
		customers:  flow.NewSessions[domain.CustomerState](),
		executors:  flow.NewSessions[domain.ExecutorState](),
	}
}

// RegisterCustomer registers the customer bot handlers
func (h *Handler) RegisterCustomer(bot *tele.Bot) {
	h.customerOut = channel.NewTelegram(channel.Customer, bot)
	bot.Handle("/start", h.handleCustomer)
	bot.Handle(tele.OnText, h.handleCustomer)
	bot.Handle(tele.OnCallback, h.handleCustomer)
}

// RegisterExecutor registers the executor bot handlers
func (h *Handler) RegisterExecutor(bot *tele.Bot) {
	h.executorOut = channel.NewTelegram(channel.Executor, bot)
	bot.Handle("/start", h.handleExecutor)
	bot.Handle(tele.OnText, h.handleExecutor)
	bot.Handle(tele.OnCallback, h.handleExecutor)
}

// RegisterDispatcher registers the dispatcher bot handlers.
// Commands fall through to OnText, where the dispatcher parses them.
func (h *Handler) RegisterDispatcher(bot *tele.Bot) {
	h.dispatcherOut = channel.NewTelegram(channel.Dispatcher, bot)
	bot.Handle("/start", h.handleDispatcher)
	bot.Handle(tele.OnText, h.handleDispatcher)
	bot.Handle(tele.OnCallback, h.handleDispatcher)
}

func (h *Handler) handleCustomer(c tele.Context) error {
	ev, ok := h.eventFrom(c)
	if !ok {
		return nil
	}

	unlock := h.customers.Lock(ev.From.ID)
	next, res := h.customer.Handle(h.customers.Get(ev.From.ID), ev)
	if next.Step == domain.CustomerIdle {
		h.customers.Reset(ev.From.ID)
	} else {
		h.customers.Set(ev.From.ID, next)
	}
	err := h.render(c, h.customerOut, res)
	unlock()

	if res.Dispatch != 0 {
		h.matching.DispatchOrder(res.Dispatch)
	}
	return err
}

func (h *Handler) handleExecutor(c tele.Context) error {
	ev, ok := h.eventFrom(c)
	if !ok {
		return nil
	}

	unlock := h.executors.Lock(ev.From.ID)
	defer unlock()

	next, res := h.executor.Handle(h.executors.Get(ev.From.ID), ev)
	if next.Step == domain.ExecutorIdle {
		h.executors.Reset(ev.From.ID)
	} else {
		h.executors.Set(ev.From.ID, next)
	}
	return h.render(c, h.executorOut, res)
}

func (h *Handler) handleDispatcher(c tele.Context) error {
	ev, ok := h.eventFrom(c)
	if !ok {
		return nil
	}
	return h.render(c, h.dispatcherOut, h.dispatcher.Handle(ev))
}
