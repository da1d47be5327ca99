package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderhub/internal/channel"
	"orderhub/internal/config"
	"orderhub/internal/domain"
	"orderhub/internal/flow"
	"orderhub/internal/handler"
	"orderhub/internal/middleware"
	"orderhub/internal/repository/memory"
	"orderhub/internal/server"
	"orderhub/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
	telemw "gopkg.in/telebot.v3/middleware"
)

func main() {
	envFile := pflag.String("env-file", ".env", "path to an optional env file")
	pflag.Parse()

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting order hub")

	// Load configuration
	cfg, err := config.Load(*envFile)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if len(cfg.AdminIDs) == 0 {
		logger.Warn("ADMIN_IDS is empty, dispatcher alerts will not be delivered")
	}

	logger.Info("Configuration loaded successfully",
		zap.Bool("webhook", cfg.Webhook.Enabled()),
		zap.Int("admins", len(cfg.AdminIDs)),
		zap.Int("categories", len(cfg.Categories)),
	)

	// Initialize bots
	customerBot, customerHook, err := newBot(cfg, cfg.Tokens.Customer, server.CustomerPath, logger)
	if err != nil {
		logger.Fatal("Failed to create customer bot", zap.Error(err))
	}
	proBot, proHook, err := newBot(cfg, cfg.Tokens.Executor, server.ExecutorPath, logger)
	if err != nil {
		logger.Fatal("Failed to create executor bot", zap.Error(err))
	}
	dispatcherBot, dispatcherHook, err := newBot(cfg, cfg.Tokens.Dispatcher, server.DispatcherPath, logger)
	if err != nil {
		logger.Fatal("Failed to create dispatcher bot", zap.Error(err))
	}

	logger.Info("Telegram bots initialized")

	// Initialize repositories
	executorRepo := memory.NewExecutorRepo()
	orderRepo := memory.NewOrderRepo()

	// Initialize services
	catalog := domain.NewCatalog(cfg.Categories)
	authService := service.NewAuthService(cfg.AdminIDs)
	notifier := service.NewNotifier(channel.NewTelegram(channel.Dispatcher, dispatcherBot), authService, logger)
	orderService := service.NewOrderService(orderRepo, catalog, notifier, logger)
	executorService := service.NewExecutorService(executorRepo, catalog, notifier, logger)
	matchingService := service.NewMatchingService(
		executorRepo, orderRepo, channel.NewTelegram(channel.Executor, proBot), notifier, logger,
	)
	digestService := service.NewDigestService(executorRepo, notifier, logger)

	// Initialize handler
	h := handler.NewHandler(
		flow.NewCustomer(orderService, cfg.SupportPhone, cfg.Location, logger),
		flow.NewExecutor(executorService, matchingService, cfg.RegistrationPayload, logger),
		flow.NewDispatcher(authService, executorService, logger),
		matchingService,
		logger,
	)

	customerBot.Use(telemw.Recover(), middleware.Trace(string(channel.Customer), logger))
	proBot.Use(telemw.Recover(), middleware.Trace(string(channel.Executor), logger))
	dispatcherBot.Use(telemw.Recover(), middleware.Trace(string(channel.Dispatcher), logger))

	h.RegisterCustomer(customerBot)
	h.RegisterExecutor(proBot)
	h.RegisterDispatcher(dispatcherBot)

	logger.Info("Handlers registered")

	// Start pending digest job
	digestJob, err := startDigestJob(cfg, digestService, logger)
	if err != nil {
		logger.Fatal("Failed to schedule digest", zap.Error(err))
	}

	// Start HTTP server in background
	deps := server.Dependencies{Secret: cfg.Webhook.Secret, Logger: logger}
	if cfg.Webhook.Enabled() {
		deps.Webhooks = map[string]http.Handler{
			server.CustomerPath:   customerHook,
			server.ExecutorPath:   proHook,
			server.DispatcherPath: dispatcherHook,
		}
		deps.Setup = func(ctx context.Context) error {
			return errors.Join(
				customerBot.SetWebhook(customerHook),
				proBot.SetWebhook(proHook),
				dispatcherBot.SetWebhook(dispatcherHook),
			)
		}
	}
	srv := &http.Server{
		Addr:              cfg.Webhook.ListenAddr,
		Handler:           server.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Start bots in background
	for _, bot := range []*tele.Bot{customerBot, proBot, dispatcherBot} {
		go bot.Start()
	}
	logger.Info("Bots started successfully")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bots...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("HTTP server shutdown", zap.Error(err))
	}
	for _, bot := range []*tele.Bot{customerBot, proBot, dispatcherBot} {
		bot.Stop()
	}
	if digestJob != nil {
		select {
		case <-digestJob.Stop().Done():
		case <-ctx.Done():
		}
	}

	logger.Info("Bots stopped gracefully")
}

// newBot creates a bot with long polling, or with a webhook served by the
// HTTP router when a public URL is configured
func newBot(cfg *config.Config, token, path string, logger *zap.Logger) (*tele.Bot, *tele.Webhook, error) {
	var (
		poller tele.Poller = &tele.LongPoller{Timeout: 10 * time.Second}
		hook   *tele.Webhook
	)
	if cfg.Webhook.Enabled() {
		hook = &tele.Webhook{
			Endpoint:    &tele.WebhookEndpoint{PublicURL: cfg.Webhook.URL(path)},
			SecretToken: cfg.Webhook.Secret,
			DropUpdates: true,
		}
		poller = hook
	}

	bot, err := tele.NewBot(tele.Settings{
		Token:     token,
		Poller:    poller,
		ParseMode: tele.ModeHTML,
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.String("path", path), zap.Error(err)}
			if c != nil {
				if traceID, ok := c.Get(middleware.TraceKey).(string); ok {
					fields = append(fields, zap.String(middleware.TraceKey, traceID))
				}
			}
			logger.Error("Bot error", fields...)
		},
	})
	if err != nil {
		return nil, nil, err
	}
	return bot, hook, nil
}

// startDigestJob schedules the pending registrations digest
func startDigestJob(cfg *config.Config, digest *service.DigestService, logger *zap.Logger) (*cron.Cron, error) {
	if cfg.DigestSchedule == config.DigestOff {
		logger.Info("Pending digest disabled")
		return nil, nil
	}

	c := cron.New(cron.WithLocation(cfg.Location))
	_, err := c.AddFunc(cfg.DigestSchedule, func() {
		logger.Info("Running scheduled pending digest")
		count, err := digest.SendPendingDigest()
		if err != nil {
			logger.Error("Failed to send pending digest", zap.Error(err))
			return
		}
		logger.Info("Pending digest done", zap.Int("pending", count))
	})
	if err != nil {
		return nil, fmt.Errorf("DIGEST_SCHEDULE %q: %w", cfg.DigestSchedule, err)
	}

	c.Start()
	return c, nil
}
