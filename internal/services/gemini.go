package services

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/soaringjerry/evoa/internal/logging"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GenerateRequest is one prompt sent to the text-generation backend. JSON
// asks the backend to answer with a JSON document only.
type GenerateRequest struct {
	Prompt string
	JSON   bool
}

// Generator hides the hosted model behind a single call so the proxy can be
// tested without network access.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional override, used by tests and regional gateways
}

// GeminiGenerator calls the Gemini API through the official SDK.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, NewUnavailableError("gemini api key not configured")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultGeminiModel
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Model() string { return g.model }

func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	gc := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0.4)}
	if req.JSON {
		gc.ResponseMIMEType = "application/json"
	}
	logging.Debug("Gemini request starting", "model", g.model, "json", req.JSON, "prompt_length", len(req.Prompt))
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), gc)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := resp.Text()
	logging.Debug("Gemini response", "model", g.model, "content_length", len(text))
	return text, nil
}

var _ Generator = (*GeminiGenerator)(nil)
