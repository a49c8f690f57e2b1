package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DISCORD_BOT_TOKEN", "DISCORD_CHANNEL_ID", "ANTHROPIC_API_KEY",
		"GOOGLE_API_KEY", "AI_PROVIDER", "MOODCAST_HTTP_ADDR", "MOODCAST_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	// .env is read from the working directory
	t.Chdir(t.TempDir())
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 8, cfg.Proactive.MorningHour)
	assert.Equal(t, time.Minute, cfg.AI.RateWindow)
	assert.False(t, cfg.DiscordEnabled())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
discord:
  bot_token: file-token
  channel_id: "123"
http:
  address: ":9090"
proactive:
  morning_hour: 7
log:
  level: debug
`), 0o644))

	t.Setenv("DISCORD_BOT_TOKEN", "env-token")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Discord.BotToken)
	assert.Equal(t, "123", cfg.Discord.ChannelID)
	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, 7, cfg.Proactive.MorningHour)
	assert.True(t, cfg.DiscordEnabled())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadRejectsTokenWithoutChannel(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISCORD_BOT_TOKEN", "token")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_CHANNEL_ID")
}

func TestLoadRejectsBadMorningHour(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("proactive:\n  morning_hour: 24\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsBadCheckInterval(t *testing.T) {
	clearEnv(t)

	for _, body := range []string{
		"proactive:\n  check_interval: 0s\n",
		"proactive:\n  check_interval: -5s\n",
	} {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		_, err := Load(path)
		require.Error(t, err, body)
		assert.Contains(t, err.Error(), "proactive.check_interval")
	}
}

func TestLoadAllowsZeroCheckIntervalWhenProactiveDisabled(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("proactive:\n  enabled: false\n  check_interval: 0s\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Proactive.Enabled)
}

func TestLoadRejectsNegativeRateWindow(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ai:\n  rate_window: -1m\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ai.rate_window")
}

func TestLoadGeminiMaxTokens(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, int64(512), cfg.Gemini.MaxTokens)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("claude:\n  max_tokens: 1024\ngemini:\n  max_tokens: 256\n"), 0o644))

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1024), cfg.Claude.MaxTokens)
	assert.Equal(t, int64(256), cfg.Gemini.MaxTokens)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)

	require.NoError(t, os.WriteFile(".env", []byte(`
# comment
GOOGLE_API_KEY="from-dotenv"
AI_PROVIDER=claude
`), 0o644))
	t.Setenv("AI_PROVIDER", "gemini")

	cfg, err := Load("missing.yaml")
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini", cfg.AI.Provider)
}
