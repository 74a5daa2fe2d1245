package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiTranslator translates with the Gemini API via the genai SDK.
type GeminiTranslator struct {
	client *genai.Client
	model  string
}

// NewGeminiTranslator creates a Gemini backed translator.
func NewGeminiTranslator(ctx context.Context, apiKey, model string) (*GeminiTranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key not found")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiTranslator{client: cli, model: model}, nil
}

// Translate translates text from one language to another
func (g *GeminiTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	temperature := float32(0.2)
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(buildPrompt(text, from, to)),
		&genai.GenerateContentConfig{Temperature: &temperature},
	)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	translation := strings.TrimSpace(firstText(resp))
	if translation == "" {
		return "", fmt.Errorf("no translation returned")
	}
	return translation, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var b strings.Builder
		for _, part := range cand.Content.Parts {
			if part != nil {
				b.WriteString(part.Text)
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return ""
}
