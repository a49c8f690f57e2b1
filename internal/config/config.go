package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Discord   DiscordConfig   `yaml:"discord"`
	AI        AIConfig        `yaml:"ai"`
	Claude    ClaudeConfig    `yaml:"claude"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	HTTP      HTTPConfig      `yaml:"http"`
	Proactive ProactiveConfig `yaml:"proactive"`
	Log       LogConfig       `yaml:"log"`
}

type AIConfig struct {
	Provider string `yaml:"provider"` // "claude", "gemini", or "" (auto-detect)
	MaxTools int    `yaml:"max_tool_iterations"`
	// Sliding window rate limiter
	RateLimit  int           `yaml:"rate_limit"`
	RateWindow time.Duration `yaml:"rate_window"`
}

type DiscordConfig struct {
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

type ClaudeConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int64  `yaml:"max_tokens"`
}

type GeminiConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int64  `yaml:"max_tokens"`
}

type HTTPConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type ProactiveConfig struct {
	Enabled       bool          `yaml:"enabled"`
	CheckInterval time.Duration `yaml:"check_interval"`
	MorningHour   int           `yaml:"morning_hour"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DiscordEnabled reports whether a bot token is configured.
func (c *Config) DiscordEnabled() bool {
	return c.Discord.BotToken != ""
}

// SlogLevel maps Log.Level to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Load(path string) (*Config, error) {
	cfg := defaults()

	loadDotEnv(".env")

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No file: defaults + env vars
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv lets environment variables override the file (secrets live in .env or environment).
func applyEnv(cfg *Config) {
	if env := os.Getenv("DISCORD_BOT_TOKEN"); env != "" {
		cfg.Discord.BotToken = env
	}
	if env := os.Getenv("DISCORD_CHANNEL_ID"); env != "" {
		cfg.Discord.ChannelID = env
	}
	if env := os.Getenv("ANTHROPIC_API_KEY"); env != "" {
		cfg.Claude.APIKey = env
	}
	if env := os.Getenv("GOOGLE_API_KEY"); env != "" {
		cfg.Gemini.APIKey = env
	}
	if env := os.Getenv("AI_PROVIDER"); env != "" {
		cfg.AI.Provider = env
	}
	if env := os.Getenv("MOODCAST_HTTP_ADDR"); env != "" {
		cfg.HTTP.Address = env
	}
	if env := os.Getenv("MOODCAST_LOG_LEVEL"); env != "" {
		cfg.Log.Level = env
	}
}

// loadDotEnv reads a .env file and sets env vars that aren't already set.
func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		// Strip surrounding quotes
		if len(val) >= 2 {
			if (val[0] == '"' && val[len(val)-1] == '"') ||
				(val[0] == '\'' && val[len(val)-1] == '\'') {
				val = val[1 : len(val)-1]
			}
		}

		if os.Getenv(key) == "" && val != "" {
			os.Setenv(key, val)
		}
	}
}

func defaults() *Config {
	return &Config{
		AI: AIConfig{
			MaxTools:   3,
			RateLimit:  10,
			RateWindow: time.Minute,
		},
		Claude: ClaudeConfig{
			Model:     "claude-sonnet-4-5-20250929",
			MaxTokens: 512,
		},
		Gemini: GeminiConfig{
			Model:     "gemini-2.5-flash",
			MaxTokens: 512,
		},
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Proactive: ProactiveConfig{
			Enabled:       true,
			CheckInterval: 60 * time.Second,
			MorningHour:   8,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func validate(cfg *Config) error {
	if cfg.Discord.BotToken != "" && cfg.Discord.ChannelID == "" {
		return fmt.Errorf("missing DISCORD_CHANNEL_ID (required when DISCORD_BOT_TOKEN is set)")
	}
	if cfg.Proactive.MorningHour < 0 || cfg.Proactive.MorningHour > 23 {
		return fmt.Errorf("proactive.morning_hour must be 0-23, got %d", cfg.Proactive.MorningHour)
	}
	if cfg.Proactive.Enabled && cfg.Proactive.CheckInterval <= 0 {
		return fmt.Errorf("proactive.check_interval must be positive, got %s", cfg.Proactive.CheckInterval)
	}
	if cfg.AI.RateWindow < 0 {
		return fmt.Errorf("ai.rate_window must not be negative, got %s", cfg.AI.RateWindow)
	}
	if cfg.HTTP.Address == "" {
		return fmt.Errorf("http.address must not be empty")
	}
	return nil
}
