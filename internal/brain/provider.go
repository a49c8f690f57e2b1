package brain

import (
	"context"
	"encoding/json"
)

// Provider abstracts the AI API (Claude, Gemini).
type Provider interface {
	Send(ctx context.Context, systemPrompt string, history []Message) (*Response, error)
}

// Message is a provider-agnostic conversation turn.
type Message struct {
	Role        string // "user", "assistant"
	Text        string
	ToolCalls   []ToolCall   // assistant → mood_tip invocations
	ToolResults []ToolResult // user → mood_tip outputs
}

// ToolCall is a request from the model to invoke a tool.
type ToolCall struct {
	ID    string // provider-assigned ID (Gemini falls back to the function name)
	Name  string
	Input json.RawMessage
}

// ToolResult is the output of a tool invocation sent back to the model.
type ToolResult struct {
	ID      string // matches ToolCall.ID
	Content string
	IsError bool
}

// Response is what a provider returns from a single Send() call.
type Response struct {
	Text      string
	ToolCalls []ToolCall
	Done      bool // no more tool calls requested
}
