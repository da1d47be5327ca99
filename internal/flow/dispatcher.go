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
	accessDenied     = "Нет доступа."
	executorNotFound = "Исполнитель не найден"
	dispatcherHelp   = "Команды диспетчера:\n" +
		"/exec_list — исполнители по статусам\n" +
		"/exec_approve &lt;id&gt; — одобрить\n" +
		"/exec_block &lt;id&gt; — заблокировать\n" +
		"/exec_info &lt;id&gt; — карточка исполнителя"
)

// Dispatcher answers administrator commands; it keeps no conversation state
type Dispatcher struct {
	auth      *service.AuthService
	executors *service.ExecutorService
	logger    *zap.Logger
}

// NewDispatcher creates the dispatcher command handler
func NewDispatcher(auth *service.AuthService, executors *service.ExecutorService, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		auth:      auth,
		executors: executors,
		logger:    logger,
	}
}

// Handle executes one command. Anything from a non-administrator is refused.
func (d *Dispatcher) Handle(ev Event) Result {
	if !d.auth.IsAdmin(ev.From.ID) {
		d.logger.Warn("Dispatcher access denied", zap.Int64("user_id", ev.From.ID))
		if ev.Kind == EventButton {
			return notice(accessDenied, true)
		}
		return say(accessDenied, nil)
	}

	if ev.Kind == EventStart {
		return say(dispatcherHelp, nil)
	}
	if ev.Kind != EventText {
		return Result{}
	}

	cmd, args := parseCommand(ev.Text)
	switch cmd {
	case "/start", "/help":
		return say(dispatcherHelp, nil)
	case "/exec_list":
		return d.list()
	case "/exec_approve":
		return d.withID(cmd, args, d.approve)
	case "/exec_block":
		return d.withID(cmd, args, d.block)
	case "/exec_info":
		return d.withID(cmd, args, d.info)
	}
	return say(dispatcherHelp, nil)
}

// parseCommand splits "/cmd@bot a b" into "/cmd" and its arguments
func parseCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil
	}
	cmd := strings.ToLower(fields[0])
	if at := strings.IndexByte(cmd, '@'); at >= 0 {
		cmd = cmd[:at]
	}
	return cmd, fields[1:]
}

func (d *Dispatcher) withID(cmd string, args []string, fn func(int64) Result) Result {
	if len(args) != 1 {
		return say(usage(cmd), nil)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return say(usage(cmd), nil)
	}
	return fn(id)
}

func usage(cmd string) string {
	return "Использование: " + cmd + " &lt;id&gt;"
}

func (d *Dispatcher) list() Result {
	grouped, err := d.executors.ListByStatus()
	if err != nil {
		d.logger.Error("Failed to list executors", zap.Error(err))
		return say(noticeTryLater, nil)
	}

	titles := map[domain.ExecutorStatus]string{
		domain.StatusPending:  "Ожидают",
		domain.StatusApproved: "Одобренные",
		domain.StatusBlocked:  "Заблокированные",
	}

	var b strings.Builder
	for i, status := range domain.Statuses {
		if i > 0 {
			b.WriteString("\n\n")
		}
		group := grouped[status]
		fmt.Fprintf(&b, "<b>%s (%d):</b>", titles[status], len(group))
		if len(group) == 0 {
			b.WriteString("\n—")
			continue
		}
		for _, ex := range group {
			b.WriteString("\n")
			b.WriteString(service.ExecutorLine(ex))
		}
	}
	return say(b.String(), nil)
}

func (d *Dispatcher) approve(id int64) Result {
	ex, err := d.executors.Approve(id)
	if err != nil {
		return d.statusError(id, err)
	}
	return say(fmt.Sprintf("Одобрен: %s", service.ExecutorLine(ex)), nil)
}

func (d *Dispatcher) block(id int64) Result {
	ex, err := d.executors.Block(id)
	if err != nil {
		return d.statusError(id, err)
	}
	return say(fmt.Sprintf("Заблокирован: %s", service.ExecutorLine(ex)), nil)
}

func (d *Dispatcher) statusError(id int64, err error) Result {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return say(executorNotFound, nil)
	case errors.Is(err, domain.ErrInvalidTransition):
		return say(fmt.Sprintf("Нельзя изменить статус исполнителя %d: заблокированного нельзя вернуть.", id), nil)
	default:
		d.logger.Error("Failed to change executor status", zap.Int64("user_id", id), zap.Error(err))
		return say(noticeTryLater, nil)
	}
}

func (d *Dispatcher) info(id int64) Result {
	ex, err := d.executors.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return say(executorNotFound, nil)
		}
		d.logger.Error("Failed to get executor", zap.Int64("user_id", id), zap.Error(err))
		return say(noticeTryLater, nil)
	}

	username := "—"
	if ex.Username != "" {
		username = "@" + service.Esc(ex.Username)
	}
	return say(fmt.Sprintf(
		"<b>Исполнитель %d</b>\n"+
			"Имя: %s\nUsername: %s\nТелефон: <b>%s</b>\n"+
			"Категории: %s\nСтатус: %s\nЗарегистрирован: %s",
		ex.UserID, service.Esc(ex.Name), username, service.Esc(ex.Phone),
		service.Esc(ex.Categories.Join()), StatusLabel(ex.Status),
		ex.RegisteredAt.Format("02.01.2006 15:04"),
	), nil)
}
