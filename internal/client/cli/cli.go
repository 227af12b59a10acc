package cli

import (
	"context"
	"fmt"

	"github.com/majisoft/majidesk/internal/client/api"
	"github.com/majisoft/majidesk/internal/client/auth"
	"github.com/majisoft/majidesk/internal/client/eventbus"
	"github.com/majisoft/majidesk/internal/client/iocli"
)

type Cli struct {
	apiClient *api.Client
	manager   *auth.Manager
	bus       *eventbus.Bus
	io        iocli.IO
}

func New(apiClient *api.Client, manager *auth.Manager, bus *eventbus.Bus, io iocli.IO) *Cli {
	c := &Cli{
		apiClient: apiClient,
		manager:   manager,
		bus:       bus,
		io:        io,
	}
	c.subscribeNotifications()
	return c
}

// subscribeNotifications выводит toast- и навигационные события в терминал.
// Подписки живут столько же, сколько Cli, поэтому unsubscribe не сохраняем
func (c *Cli) subscribeNotifications() {
	c.bus.Subscribe(eventbus.EventToastSuccess, c.printToast("✓"))
	c.bus.Subscribe(eventbus.EventToastError, c.printToast("✗"))
	c.bus.Subscribe(eventbus.EventToastWarning, c.printToast("⚠"))
	c.bus.Subscribe(eventbus.EventToastInfo, c.printToast("ℹ"))
	c.bus.Subscribe(eventbus.EventNavigateLogin, func(args ...any) {
		c.io.Println("Run 'majidesk login' to authenticate.")
	})
}

// printToast возвращает обработчик toast-события. Первый аргумент
// события — текст сообщения, остальные (autoHide) терминалу не нужны
func (c *Cli) printToast(prefix string) eventbus.Handler {
	return func(args ...any) {
		if len(args) == 0 {
			return
		}
		message, ok := args[0].(string)
		if !ok {
			return
		}
		c.io.Printf("%s %s\n", prefix, message)
	}
}

// requireAuth проверяет, что пользователь залогинен, до выполнения команды
func (c *Cli) requireAuth() error {
	if c.manager.Status() != auth.StatusAuthenticated {
		return fmt.Errorf("not authenticated. Please run 'majidesk login' first")
	}
	return nil
}

// ensureSession восстанавливает сессию из локального хранилища,
// если менеджер ещё не инициализирован
func (c *Cli) ensureSession(ctx context.Context) error {
	if c.manager.Initialized() {
		return nil
	}
	return c.manager.Bootstrap(ctx)
}
