package config

import (
	"os"
	"path/filepath"
	"testing"

	"orderhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("CUSTOMER_BOT_TOKEN", "customer_token")
	t.Setenv("PRO_BOT_TOKEN", "pro_token")
	t.Setenv("DISPATCHER_BOT_TOKEN", "dispatcher_token")
}

func clearOptional(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ADMIN_IDS", "SUPPORT_PHONE", "REGISTRATION_PAYLOAD", "DIGEST_SCHEDULE",
		"BASE_WEBHOOK_URL", "WEBHOOK_SECRET", "LISTEN_ADDR", "TIMEZONE", "CATEGORIES_FILE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		missing string
	}{
		{name: "customer token", missing: "CUSTOMER_BOT_TOKEN"},
		{name: "executor token", missing: "PRO_BOT_TOKEN"},
		{name: "dispatcher token", missing: "DISPATCHER_BOT_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearOptional(t)
			setRequired(t)
			t.Setenv(tt.missing, "")

			cfg, err := Load("")

			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	clearOptional(t)
	setRequired(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "customer_token", cfg.Tokens.Customer)
	assert.Equal(t, "pro_token", cfg.Tokens.Executor)
	assert.Equal(t, "dispatcher_token", cfg.Tokens.Dispatcher)
	assert.Empty(t, cfg.AdminIDs)
	assert.Equal(t, "+37529XXXXXXX", cfg.SupportPhone)
	assert.Equal(t, "exec", cfg.RegistrationPayload)
	assert.Equal(t, "0 9 * * *", cfg.DigestSchedule)
	assert.Equal(t, ":8080", cfg.Webhook.ListenAddr)
	assert.False(t, cfg.Webhook.Enabled())
	assert.Equal(t, "Europe/Minsk", cfg.Location.String())
	assert.Equal(t, domain.DefaultCategories, cfg.Categories)
}

func TestLoad_FromEnvFile(t *testing.T) {
	clearOptional(t)
	setRequired(t)
	t.Setenv("CUSTOMER_BOT_TOKEN", "")
	os.Unsetenv("CUSTOMER_BOT_TOKEN")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CUSTOMER_BOT_TOKEN=from_file\nADMIN_IDS=1, 2\n"), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from_file", cfg.Tokens.Customer)
	assert.Equal(t, []int64{1, 2}, cfg.AdminIDs)
}

func TestLoad_Webhook(t *testing.T) {
	clearOptional(t)
	setRequired(t)
	t.Setenv("BASE_WEBHOOK_URL", "https://bots.example.com/")
	t.Setenv("WEBHOOK_SECRET", "s3cret")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.True(t, cfg.Webhook.Enabled())
	assert.Equal(t, "https://bots.example.com/tg/pro", cfg.Webhook.URL("/tg/pro"))
	assert.Equal(t, "s3cret", cfg.Webhook.Secret)
}

func TestLoad_InvalidTimezone(t *testing.T) {
	clearOptional(t)
	setRequired(t)
	t.Setenv("TIMEZONE", "Mars/Olympus")

	cfg, err := Load("")

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "TIMEZONE")
}

func TestParseAdminIDs(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		expected  []int64
		expectErr bool
	}{
		{name: "empty", raw: "", expected: nil},
		{name: "single", raw: "42", expected: []int64{42}},
		{name: "spaces and trailing comma", raw: " 1, 2 ,3,", expected: []int64{1, 2, 3}},
		{name: "not a number", raw: "1,abc", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := parseAdminIDs(tt.raw)

			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestLoadCategories(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		expected  []string
		expectErr bool
	}{
		{
			name:     "list",
			content:  "categories:\n  - Кран\n  - \" Кровля \"\n  - \"\"\n",
			expected: []string{"Кран", "Кровля"},
		},
		{
			name:      "empty list",
			content:   "categories: []\n",
			expectErr: true,
		},
		{
			name:      "broken yaml",
			content:   "categories: [Кран\n",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "categories.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			cats, err := loadCategories(path)

			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cats)
		})
	}
}
