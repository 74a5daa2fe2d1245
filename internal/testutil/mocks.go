package testutil

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"sync"

	"codeberg.org/snonux/codewise/internal/logging"
)

// MockTranslator mocks translation service
type MockTranslator struct {
	Translations map[string]string
	Errors       map[string]error
	Calls        []string
}

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	call := fmt.Sprintf("Translate: %s (%s->%s)", text, fromLang, toLang)
	m.Calls = append(m.Calls, call)

	if err, ok := m.Errors[text]; ok {
		return "", err
	}

	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}

	// Default mock translation
	return fmt.Sprintf("mock translation of %s", text), nil
}

// MockSearcher mocks a web search provider. Results are keyed by query.
type MockSearcher struct {
	Results map[string][]string
	Errors  map[string]error
	Calls   []string
	// Yielded counts URLs handed to consumers, to check early termination.
	Yielded int
}

// Search mocks a lazy search result sequence.
func (m *MockSearcher) Search(ctx context.Context, query string, maxResults int) iter.Seq2[string, error] {
	m.Calls = append(m.Calls, query)
	return func(yield func(string, error) bool) {
		if err, ok := m.Errors[query]; ok {
			yield("", err)
			return
		}
		for i, u := range m.Results[query] {
			if i >= maxResults {
				return
			}
			m.Yielded++
			if !yield(u, nil) {
				return
			}
		}
	}
}

// LogEntry is one captured log call.
type LogEntry struct {
	Level   string
	Message string
	Err     error
	Args    []any
	Trace   bool
}

// RecordingLogger captures log calls for assertions.
type RecordingLogger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

var _ logging.Logger = (*RecordingLogger)(nil)

func (l *RecordingLogger) add(e LogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, e)
}

func (l *RecordingLogger) Info(msg string, args ...any) {
	l.add(LogEntry{Level: "INFO", Message: msg, Args: args})
}

func (l *RecordingLogger) Warn(msg string, args ...any) {
	l.add(LogEntry{Level: "WARN", Message: msg, Args: args})
}

func (l *RecordingLogger) Error(msg string, err error, args ...any) {
	l.add(LogEntry{Level: "ERROR", Message: msg, Err: err, Args: args})
}

func (l *RecordingLogger) ErrorTrace(msg string, err error, args ...any) {
	l.add(LogEntry{Level: "ERROR", Message: msg, Err: err, Args: args, Trace: true})
}

// Count returns how many entries at level contain substr in their message
// or arguments.
func (l *RecordingLogger) Count(level, substr string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, e := range l.Entries {
		if e.Level != level {
			continue
		}
		if strings.Contains(e.Message, substr) || strings.Contains(fmt.Sprint(e.Args...), substr) {
			n++
		}
	}
	return n
}
