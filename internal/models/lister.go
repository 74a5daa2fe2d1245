package models

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister lists OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// ListTranslationModels writes the chat models available to the API key.
func (l *Lister) ListTranslationModels(ctx context.Context, w io.Writer) error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .codewise.yaml")
	}

	list, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}

	writeChatModels(w, chatModels(ids))
	return nil
}

// chatModels filters ids down to sorted chat completion models. Audio,
// realtime, search and embedding variants cannot translate text.
func chatModels(ids []string) []string {
	var out []string
	for _, id := range ids {
		if !strings.Contains(id, "gpt") && !strings.HasPrefix(id, "o") {
			continue
		}
		if strings.HasPrefix(id, "o") && !isReasoningModel(id) {
			continue
		}
		if containsAny(id, "tts", "audio", "realtime", "transcribe", "search", "embedding", "image", "instruct") {
			continue
		}
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// isReasoningModel matches ids like o1, o3-mini and o4-mini.
func isReasoningModel(id string) bool {
	return len(id) >= 2 && id[0] == 'o' && id[1] >= '0' && id[1] <= '9'
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func writeChatModels(w io.Writer, ids []string) {
	fmt.Fprintln(w, "Chat/Translation Models (for README translation):")
	if len(ids) == 0 {
		fmt.Fprintln(w, "  No chat models found")
		return
	}
	for _, id := range ids {
		fmt.Fprintf(w, "  %s\n", id)
	}
}
