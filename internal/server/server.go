// Package server exposes the HTTP side of the process: Telegram webhooks,
// a health probe and a manual webhook re-registration endpoint.
package server

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SecretHeader carries the webhook secret Telegram echoes on every update
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// Webhook paths, one per bot
const (
	CustomerPath   = "/tg/customer"
	ExecutorPath   = "/tg/pro"
	DispatcherPath = "/tg/dispatcher"
)

// Dependencies holds what the router serves
type Dependencies struct {
	// Webhooks maps a webhook path to the bot's update handler
	Webhooks map[string]http.Handler
	// Secret guards the webhook and setup endpoints; empty disables the check
	Secret string
	// Setup re-registers every webhook with Telegram
	Setup  func(ctx context.Context) error
	Logger *zap.Logger
}

// NewRouter builds the chi router
func NewRouter(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(deps.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(requireSecret(deps.Secret, func(r *http.Request) string {
			return r.Header.Get(SecretHeader)
		}))
		for path, h := range deps.Webhooks {
			r.Method(http.MethodPost, path, h)
		}
	})

	r.With(requireSecret(deps.Secret, func(r *http.Request) string {
		return r.URL.Query().Get("key")
	})).Post("/setup", setupHandler(deps))

	return r
}

func setupHandler(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Setup == nil {
			http.Error(w, "webhooks disabled", http.StatusNotFound)
			return
		}
		if err := deps.Setup(r.Context()); err != nil {
			deps.Logger.Error("Webhook setup failed", zap.Error(err))
			http.Error(w, "setup failed", http.StatusBadGateway)
			return
		}
		deps.Logger.Info("Webhooks re-registered")
		_, _ = w.Write([]byte("ok"))
	}
}

// requireSecret rejects requests whose secret does not match
func requireSecret(secret string, extract func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret != "" && subtle.ConstantTimeCompare([]byte(extract(r)), []byte(secret)) != 1 {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
