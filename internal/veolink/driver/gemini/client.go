// Package gemini implements the completion driver against the Gemini API
// using the official genai client.
package gemini

import (
	"context"
	"fmt"
	"strings"

	genai "google.golang.org/genai"

	"github.com/adforge/adforge/internal/veolink/driver"
)

// Client is a thin wrapper around the official genai client. It only
// focuses on the API call itself; cross-cutting concerns stay with callers.
type Client struct {
	cli *genai.Client
}

// NewClient builds a Gemini driver. An empty apiKey defers to the client's
// own environment lookup (GEMINI_API_KEY).
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	cfg := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if strings.TrimSpace(apiKey) != "" {
		cfg.APIKey = strings.TrimSpace(apiKey)
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Client{cli: cli}, nil
}

// Name returns the driver identifier.
func (c *Client) Name() string { return "gemini" }

// Complete sends a single GenerateContent call. JSON response formats map to
// ResponseMIMEType application/json; an advisory schema, when present, is
// translated to the genai schema shape.
func (c *Client) Complete(ctx context.Context, req *driver.Request) (*driver.Response, error) {
	if c == nil || c.cli == nil {
		return nil, fmt.Errorf("gemini client not configured")
	}
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	if strings.TrimSpace(req.Model) == "" {
		return nil, fmt.Errorf("model is required")
	}

	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	if req.Temperature != nil {
		temp := float32(*req.Temperature)
		cfg.Temperature = &temp
	}
	if req.MaxTokens != nil {
		cfg.MaxOutputTokens = int32(*req.MaxTokens)
	}
	if req.ResponseFormat != nil && req.ResponseFormat.Type != "text" {
		cfg.ResponseMIMEType = "application/json"
		if req.ResponseFormat.JSONSchema != nil {
			cfg.ResponseSchema = toGenaiSchema(req.ResponseFormat.JSONSchema.Schema)
		}
	}

	user := req.User
	if user == "" {
		user = req.System
		cfg.SystemInstruction = nil
	}

	resp, err := c.cli.Models.GenerateContent(ctx, req.Model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: user}}}},
		cfg,
	)
	if err != nil {
		return nil, &driver.ProviderError{Provider: "gemini", Message: err.Error()}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &driver.ProviderError{Provider: "gemini", Message: "empty candidates in response"}
	}

	out := &driver.Response{
		Text:         resp.Candidates[0].Content.Parts[0].Text,
		FinishReason: string(resp.Candidates[0].FinishReason),
	}
	if resp.UsageMetadata != nil {
		out.Usage = &driver.Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return out, nil
}

// toGenaiSchema converts the advisory JSON-schema map into the genai schema
// shape. Only the subset the prompt compiler emits is handled: object,
// array, string, integer, number, boolean, properties, items, required.
func toGenaiSchema(m map[string]any) *genai.Schema {
	if len(m) == 0 {
		return nil
	}
	s := &genai.Schema{}
	if t, ok := m["type"].(string); ok {
		switch t {
		case "object":
			s.Type = genai.TypeObject
		case "array":
			s.Type = genai.TypeArray
		case "string":
			s.Type = genai.TypeString
		case "integer":
			s.Type = genai.TypeInteger
		case "number":
			s.Type = genai.TypeNumber
		case "boolean":
			s.Type = genai.TypeBoolean
		}
	}
	if desc, ok := m["description"].(string); ok {
		s.Description = desc
	}
	if props, ok := m["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if sub, ok := raw.(map[string]any); ok {
				s.Properties[name] = toGenaiSchema(sub)
			}
		}
	}
	if items, ok := m["items"].(map[string]any); ok {
		s.Items = toGenaiSchema(items)
	}
	switch req := m["required"].(type) {
	case []string:
		s.Required = append(s.Required, req...)
	case []any:
		for _, r := range req {
			if name, ok := r.(string); ok {
				s.Required = append(s.Required, name)
			}
		}
	}
	return s
}
