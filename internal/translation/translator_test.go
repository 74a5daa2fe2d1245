package translation

import (
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"codeberg.org/snonux/codewise/internal/testutil"
)

func TestNewOpenAITranslator(t *testing.T) {
	translator := NewOpenAITranslator("test-api-key", "")

	if translator == nil {
		t.Fatal("NewOpenAITranslator returned nil")
	}

	if translator.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", translator.apiKey)
	}

	if translator.model != "gpt-4o-mini" {
		t.Errorf("Expected default model gpt-4o-mini, got '%s'", translator.model)
	}

	if translator.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestTranslate_NoAPIKey(t *testing.T) {
	translator := NewOpenAITranslator("", "")

	_, err := translator.Translate(context.Background(), "两数之和", DefaultSourceLanguage, DefaultTargetLanguage)
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}

	if err.Error() != "OpenAI API key not found" {
		t.Errorf("Expected 'OpenAI API key not found' error, got: %v", err)
	}
}

func TestTranslate_EmptyText(t *testing.T) {
	translator := NewOpenAITranslator("test-api-key", "")

	got, err := translator.Translate(context.Background(), "  \n", "zh-cn", "en")
	if err != nil {
		t.Fatalf("Expected no API call for blank text, got error: %v", err)
	}
	if got != "  \n" {
		t.Errorf("Expected blank text back, got %q", got)
	}
}

func TestTranslate_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	translator := NewOpenAITranslator(apiKey, "")

	translation, err := translator.Translate(context.Background(), "# 两数之和\n\n给定一个整数数组 `nums`。", "zh-cn", "en")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if translation == "" {
		t.Error("Got empty translation")
	}

	t.Logf("Translation: %s", translation)
}

func TestNewGeminiTranslator_NoAPIKey(t *testing.T) {
	_, err := NewGeminiTranslator(context.Background(), "", "")
	if err == nil || err.Error() != "Gemini API key not found" {
		t.Errorf("Expected 'Gemini API key not found', got %v", err)
	}
}

func TestGeminiTranslate_Integration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GEMINI_API_KEY not set")
	}

	g, err := NewGeminiTranslator(context.Background(), apiKey, "")
	if err != nil {
		t.Fatalf("NewGeminiTranslator failed: %v", err)
	}

	translation, err := g.Translate(context.Background(), "两数之和", "zh-cn", "en")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	t.Logf("Translation: %s", translation)
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt("给定", "zh-cn", "en")

	for _, want := range []string{"Simplified Chinese", "English", "给定"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q, got %q", want, prompt)
		}
	}
}

func TestLanguageName(t *testing.T) {
	tests := map[string]string{
		"zh-cn": "Simplified Chinese",
		"ZH-CN": "Simplified Chinese",
		"en":    "English",
		"xx":    "xx",
	}
	for code, want := range tests {
		if got := LanguageName(code); got != want {
			t.Errorf("LanguageName(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestPassthrough(t *testing.T) {
	got, err := Passthrough{}.Translate(context.Background(), "原文", "zh-cn", "en")
	if err != nil || got != "原文" {
		t.Errorf("Passthrough = %q, %v", got, err)
	}
}

func TestCached(t *testing.T) {
	mock := &testutil.MockTranslator{
		Translations: map[string]string{"两数之和": "Two Sum"},
		Errors:       map[string]error{"坏": errors.New("rate limited")},
	}
	c := NewCached(mock)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := c.Translate(ctx, "两数之和", "zh-cn", "en")
		if err != nil || got != "Two Sum" {
			t.Fatalf("Translate = %q, %v", got, err)
		}
	}
	if len(mock.Calls) != 1 {
		t.Errorf("Expected one upstream call, got %d", len(mock.Calls))
	}

	// Different language pair is a different entry
	if _, err := c.Translate(ctx, "两数之和", "zh-cn", "de"); err != nil {
		t.Fatal(err)
	}
	if len(mock.Calls) != 2 {
		t.Errorf("Expected second upstream call for new pair, got %d", len(mock.Calls))
	}

	// Failures are not cached
	for i := 0; i < 2; i++ {
		if _, err := c.Translate(ctx, "坏", "zh-cn", "en"); err == nil {
			t.Error("Expected error to be propagated")
		}
	}
	if len(mock.Calls) != 4 {
		t.Errorf("Expected failed translations to be retried on next use, got %d calls", len(mock.Calls))
	}
	if c.Cache().Len() != 2 {
		t.Errorf("Expected 2 cached entries, got %d", c.Cache().Len())
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		cfg      Config
		wantType any
		wantErr  bool
	}{
		{"default is cached openai", Config{OpenAIKey: "k"}, &Cached{}, false},
		{"uncached openai", Config{Provider: "openai", DisableCache: true}, &OpenAITranslator{}, false},
		{"none", Config{Provider: "none"}, Passthrough{}, false},
		{"gemini without key", Config{Provider: "gemini"}, nil, true},
		{"unknown", Config{Provider: "deepl"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := New(ctx, tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if reflect.TypeOf(tr) != reflect.TypeOf(tt.wantType) {
				t.Errorf("New() returned %T, want %T", tr, tt.wantType)
			}
		})
	}
}

func TestTranslationCache(t *testing.T) {
	cache := NewTranslationCache()

	// Test empty cache
	_, found := cache.Get("两数之和")
	if found {
		t.Error("Expected not found in empty cache")
	}

	// Test adding and retrieving
	cache.Add("两数之和", "Two Sum")
	cache.Add("三数之和", "3Sum")

	translation, found := cache.Get("两数之和")
	if !found {
		t.Error("Expected to find '两数之和' in cache")
	}
	if translation != "Two Sum" {
		t.Errorf("Expected 'Two Sum', got '%s'", translation)
	}

	// Test overwriting
	cache.Add("两数之和", "Two Sum (hash map)")
	translation, found = cache.Get("两数之和")
	if !found || translation != "Two Sum (hash map)" {
		t.Errorf("Expected 'Two Sum (hash map)', got '%s'", translation)
	}
}

func TestTranslationCache_GetAll(t *testing.T) {
	cache := NewTranslationCache()

	cache.Add("两数之和", "Two Sum")
	cache.Add("三数之和", "3Sum")

	all := cache.GetAll()

	expected := map[string]string{
		"两数之和": "Two Sum",
		"三数之和": "3Sum",
	}

	if !reflect.DeepEqual(all, expected) {
		t.Errorf("GetAll() = %v, want %v", all, expected)
	}

	// Test that modifying returned map doesn't affect cache
	all["两数之和"] = "modified"

	translation, _ := cache.Get("两数之和")
	if translation != "Two Sum" {
		t.Error("Cache was modified through returned map")
	}
}
