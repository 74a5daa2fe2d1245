package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Default language pair of the original LeetCode solution trees.
const (
	DefaultSourceLanguage = "zh-cn"
	DefaultTargetLanguage = "en"
)

// Translator converts text between two languages.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}

var languageNames = map[string]string{
	"zh-cn": "Simplified Chinese",
	"zh-tw": "Traditional Chinese",
	"en":    "English",
	"ja":    "Japanese",
	"ko":    "Korean",
	"de":    "German",
	"fr":    "French",
	"es":    "Spanish",
	"ru":    "Russian",
	"bg":    "Bulgarian",
}

// LanguageName returns a human readable name for a language code.
func LanguageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

func buildPrompt(text, from, to string) string {
	return fmt.Sprintf(`Translate the following Markdown document from %s to %s.
Keep the Markdown structure, code blocks, inline code, LaTeX and URLs unchanged.
Respond with only the translated document, nothing else.

%s`, LanguageName(from), LanguageName(to), text)
}

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAITranslator translates with the OpenAI chat completion API
type OpenAITranslator struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAITranslator creates a new translator instance
func NewOpenAITranslator(apiKey, model string) *OpenAITranslator {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAITranslator{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClient(apiKey),
	}
}

// Translate translates text from one language to another
func (t *OpenAITranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not found")
	}
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a precise technical translator for programming problem statements.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(text, from, to),
			},
		},
		MaxTokens:   4096,
		Temperature: 0.2,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	translation := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translation == "" {
		return "", fmt.Errorf("empty translation returned")
	}
	return translation, nil
}

// Passthrough returns the text unchanged. Used when translation is disabled.
type Passthrough struct{}

// Translate returns text as is.
func (Passthrough) Translate(_ context.Context, text, _, _ string) (string, error) {
	return text, nil
}
