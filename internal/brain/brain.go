package brain

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/moorebrett0/moodcast/internal/mood"
	"github.com/moorebrett0/moodcast/internal/observability"
)

const (
	toolName        = "mood_tip"
	toolDescription = "Look up the wellness tip for a weather condition. weather must be one of the known lowercase labels; temp_c is the temperature in Celsius if the user mentioned one."
)

// RateLimitedReply is returned instead of calling the provider when the window is full.
const RateLimitedReply = "I need a moment to catch my breath... too many messages! Try again shortly."

// Brain wraps an AI provider with the system prompt and the mood_tip tool loop.
type Brain struct {
	provider Provider
	maxTools int

	// Sliding-window rate limiter
	mu      sync.Mutex
	window  []time.Time
	rateMax int
	rateDur time.Duration
}

// Config for creating a Brain.
type Config struct {
	ClaudeAPIKey string
	ClaudeModel  string

	GeminiAPIKey string
	GeminiModel  string

	// Which provider to force ("claude", "gemini", or "" for auto-detect)
	Provider string

	ClaudeMaxTokens int64
	GeminiMaxTokens int64

	MaxTools   int
	RateLimit  int
	RateWindow time.Duration
}

// New creates a Brain. Returns nil if no API key is configured.
func New(ctx context.Context, cfg Config) *Brain {
	provider := newProvider(ctx, cfg)
	if provider == nil {
		slog.Info("brain: no API key configured, AI features disabled")
		return nil
	}
	return newWithProvider(provider, cfg)
}

func newWithProvider(p Provider, cfg Config) *Brain {
	return &Brain{
		provider: p,
		maxTools: cfg.MaxTools,
		rateMax:  cfg.RateLimit,
		rateDur:  cfg.RateWindow,
	}
}

// newProvider auto-detects or forces the AI provider.
func newProvider(ctx context.Context, cfg Config) Provider {
	pick := cfg.Provider

	if pick == "" {
		switch {
		case cfg.ClaudeAPIKey != "":
			pick = "claude"
		case cfg.GeminiAPIKey != "":
			pick = "gemini"
		}
	}

	switch pick {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			slog.Error("brain: AI_PROVIDER=claude but ANTHROPIC_API_KEY is not set")
			return nil
		}
		slog.Info("brain: using claude", "model", cfg.ClaudeModel)
		return newClaudeProvider(cfg.ClaudeAPIKey, cfg.ClaudeModel, cfg.ClaudeMaxTokens)
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			slog.Error("brain: AI_PROVIDER=gemini but GOOGLE_API_KEY is not set")
			return nil
		}
		slog.Info("brain: using gemini", "model", cfg.GeminiModel)
		p, err := newGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiMaxTokens)
		if err != nil {
			slog.Error("brain: failed to create gemini provider", "err", err)
			return nil
		}
		return p
	case "":
		return nil
	default:
		slog.Error("brain: unknown AI_PROVIDER", "provider", pick)
		return nil
	}
}

// Ask sends a user message to the AI and returns the text response,
// running mood_tip calls as the model requests them. Emails and phone
// numbers are masked before the message leaves the process.
func (b *Brain) Ask(ctx context.Context, userMessage string) (string, error) {
	if !b.rateAllow() {
		return RateLimitedReply, nil
	}

	systemPrompt := buildSystemPrompt()

	history := []Message{
		{Role: "user", Text: redactPII(userMessage)},
	}

	for i := 0; i <= b.maxTools; i++ {
		resp, err := b.provider.Send(ctx, systemPrompt, history)
		if err != nil {
			slog.Error("brain: AI API error", "err", err)
			return "", fmt.Errorf("AI API error: %w", err)
		}

		if resp.Done {
			return resp.Text, nil
		}

		history = append(history, Message{
			Role:      "assistant",
			Text:      resp.Text,
			ToolCalls: resp.ToolCalls,
		})

		var results []ToolResult
		for _, tc := range resp.ToolCalls {
			content, isError := executeTool(tc.Name, tc.Input)
			results = append(results, ToolResult{
				ID:      tc.ID,
				Content: content,
				IsError: isError,
			})
		}

		history = append(history, Message{
			Role:        "user",
			ToolResults: results,
		})
	}

	slog.Warn("brain: hit max tool iterations", "max", b.maxTools)
	return "I looked up a few tips but lost my train of thought. Try /tip for a quick one.", nil
}

// tipInput is the mood_tip argument shape.
type tipInput struct {
	Weather string   `json:"weather"`
	TempC   *float64 `json:"temp_c"`
}

func executeTool(name string, input json.RawMessage) (string, bool) {
	switch name {
	case toolName:
		var params tipInput
		if err := json.Unmarshal(input, &params); err != nil {
			return fmt.Sprintf("invalid input: %v", err), true
		}

		tip := mood.Tip(params.Weather, params.TempC)
		observability.RecordTip(params.Weather, observability.SourceBrain)
		slog.Debug("brain: mood_tip", "weather", params.Weather, "known", mood.Known(params.Weather))
		return tip, false

	default:
		return fmt.Sprintf("unknown tool: %s", name), true
	}
}

func buildSystemPrompt() string {
	labels := make([]string, 0, len(mood.Labels()))
	for _, l := range mood.Labels() {
		labels = append(labels, string(l))
	}

	return fmt.Sprintf(`You are moodcast, a gentle wellness companion that pairs the weather with a small mood-lifting suggestion.

## Known weather labels
%s

## Guidelines
- When the user describes their weather, map it to one known label and call the mood_tip tool.
- Pass temp_c only if the user gave a temperature; convert Fahrenheit to Celsius first.
- Quote the tip the tool returns. Do not invent your own tip.
- If no label fits, call mood_tip with the closest description anyway; the tool has a fallback.
- Keep responses warm and short (1-3 sentences).
- You cannot look up real weather. Ask the user what it's like outside if they don't say.`,
		strings.Join(labels, ", "))
}

// --- Sliding-window rate limiter ---

// rateAllow reports whether another request fits the window. rateMax <= 0 disables the limit.
func (b *Brain) rateAllow() bool {
	if b.rateMax <= 0 {
		return true
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-b.rateDur)

	valid := b.window[:0]
	for _, t := range b.window {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	b.window = valid

	if len(b.window) >= b.rateMax {
		return false
	}

	b.window = append(b.window, now)
	return true
}
