package brain

import (
	"context"
	"encoding/json"

	"google.golang.org/genai"
)

// moodTipDecl is the Gemini function declaration for mood_tip.
var moodTipDecl = &genai.FunctionDeclaration{
	Name:        toolName,
	Description: toolDescription,
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"weather": {
				Type:        genai.TypeString,
				Description: "Lowercase weather label, e.g. rainy, hot, foggy",
			},
			"temp_c": {
				Type:        genai.TypeNumber,
				Description: "Temperature in degrees Celsius, omit if unknown",
			},
		},
		Required: []string{"weather"},
	},
}

// geminiProvider implements Provider using the Google Gemini API.
type geminiProvider struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

func newGeminiProvider(ctx context.Context, apiKey, model string, maxTokens int64) (*geminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &geminiProvider{
		client:    client,
		model:     model,
		maxTokens: int32(maxTokens),
	}, nil
}

func (g *geminiProvider) Send(ctx context.Context, systemPrompt string, history []Message) (*Response, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, ""),
		MaxOutputTokens:   g.maxTokens,
		Tools: []*genai.Tool{
			{FunctionDeclarations: []*genai.FunctionDeclaration{moodTipDecl}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, toGeminiContents(history), config)
	if err != nil {
		return nil, err
	}

	calls := resp.FunctionCalls()
	if len(calls) == 0 {
		return &Response{Text: resp.Text(), Done: true}, nil
	}

	out := &Response{Text: resp.Text()}
	for _, fc := range calls {
		raw, _ := json.Marshal(fc.Args)
		id := fc.ID
		if id == "" {
			id = fc.Name
		}
		out.ToolCalls = append(out.ToolCalls, ToolCall{
			ID:    id,
			Name:  fc.Name,
			Input: raw,
		})
	}
	return out, nil
}

func toGeminiContents(history []Message) []*genai.Content {
	var contents []*genai.Content
	for _, m := range history {
		role := m.Role
		if role == "assistant" {
			role = "model"
		}

		switch {
		case len(m.ToolResults) > 0:
			var parts []*genai.Part
			for _, tr := range m.ToolResults {
				resp := map[string]any{"output": tr.Content}
				if tr.IsError {
					resp["error"] = true
				}
				// Gemini matches responses by function name.
				parts = append(parts, genai.NewPartFromFunctionResponse(toolName, resp))
			}
			contents = append(contents, &genai.Content{Role: role, Parts: parts})

		case len(m.ToolCalls) > 0:
			var parts []*genai.Part
			if m.Text != "" {
				parts = append(parts, genai.NewPartFromText(m.Text))
			}
			for _, tc := range m.ToolCalls {
				var args map[string]any
				_ = json.Unmarshal(tc.Input, &args)
				parts = append(parts, genai.NewPartFromFunctionCall(tc.Name, args))
			}
			contents = append(contents, &genai.Content{Role: role, Parts: parts})

		default:
			contents = append(contents, genai.NewContentFromText(m.Text, genai.Role(role)))
		}
	}
	return contents
}
