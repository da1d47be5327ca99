package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"orderhub/internal/domain"
)

// DigestOff disables the pending registrations digest
const DigestOff = "off"

// Config holds all application configuration
type Config struct {
	Tokens              TokenConfig
	AdminIDs            []int64
	SupportPhone        string
	RegistrationPayload string
	Location            *time.Location
	Categories          []string
	DigestSchedule      string
	Webhook             WebhookConfig
}

// TokenConfig holds one bot token per channel
type TokenConfig struct {
	Customer   string
	Executor   string
	Dispatcher string
}

// WebhookConfig holds the HTTP transport settings. An empty BaseURL means
// the bots use long polling.
type WebhookConfig struct {
	BaseURL    string
	Secret     string
	ListenAddr string
}

// Enabled reports whether updates arrive through webhooks
func (w WebhookConfig) Enabled() bool {
	return w.BaseURL != ""
}

// URL returns the public webhook URL for path
func (w WebhookConfig) URL(path string) string {
	return strings.TrimRight(w.BaseURL, "/") + path
}

type categoriesFile struct {
	Categories []string `yaml:"categories"`
}

// Load reads configuration from environment variables, after loading envFile
// when it exists
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Tokens: TokenConfig{
			Customer:   os.Getenv("CUSTOMER_BOT_TOKEN"),
			Executor:   os.Getenv("PRO_BOT_TOKEN"),
			Dispatcher: os.Getenv("DISPATCHER_BOT_TOKEN"),
		},
		SupportPhone:        getEnv("SUPPORT_PHONE", "+37529XXXXXXX"),
		RegistrationPayload: getEnv("REGISTRATION_PAYLOAD", "exec"),
		DigestSchedule:      getEnv("DIGEST_SCHEDULE", "0 9 * * *"),
		Webhook: WebhookConfig{
			BaseURL:    strings.TrimSpace(os.Getenv("BASE_WEBHOOK_URL")),
			Secret:     os.Getenv("WEBHOOK_SECRET"),
			ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
		},
	}

	// Validate required fields
	if cfg.Tokens.Customer == "" {
		return nil, fmt.Errorf("CUSTOMER_BOT_TOKEN is required")
	}
	if cfg.Tokens.Executor == "" {
		return nil, fmt.Errorf("PRO_BOT_TOKEN is required")
	}
	if cfg.Tokens.Dispatcher == "" {
		return nil, fmt.Errorf("DISPATCHER_BOT_TOKEN is required")
	}

	admins, err := parseAdminIDs(os.Getenv("ADMIN_IDS"))
	if err != nil {
		return nil, err
	}
	cfg.AdminIDs = admins

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Europe/Minsk"))
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	cfg.Location = loc

	cfg.Categories = domain.DefaultCategories
	if path := os.Getenv("CATEGORIES_FILE"); path != "" {
		cats, err := loadCategories(path)
		if err != nil {
			return nil, err
		}
		cfg.Categories = cats
	}

	return cfg, nil
}

// parseAdminIDs parses a comma separated list of Telegram user ids
func parseAdminIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_IDS: invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// loadCategories reads the catalog from a YAML file with a "categories" list
func loadCategories(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("CATEGORIES_FILE: %w", err)
	}

	var file categoriesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("CATEGORIES_FILE %s: %w", path, err)
	}

	var out []string
	for _, c := range file.Categories {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("CATEGORIES_FILE %s: no categories", path)
	}
	return out, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
