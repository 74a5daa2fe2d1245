package translation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// TranslationCache stores translations in memory for the duration of a run
type TranslationCache struct {
	mu           sync.RWMutex
	translations map[string]string
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		translations: make(map[string]string),
	}
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(key, translation string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.translations[key] = translation
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(key string) (string, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	translation, ok := tc.translations[key]
	return translation, ok
}

// Len returns the number of cached translations.
func (tc *TranslationCache) Len() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.translations)
}

// GetAll returns all cached translations
func (tc *TranslationCache) GetAll() map[string]string {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	// Return a copy to prevent external modification
	result := make(map[string]string, len(tc.translations))
	for k, v := range tc.translations {
		result[k] = v
	}
	return result
}

// Cached memoizes successful translations of an underlying Translator.
// Failures are not cached.
type Cached struct {
	next  Translator
	cache *TranslationCache
}

// NewCached wraps next with a fresh cache.
func NewCached(next Translator) *Cached {
	return &Cached{next: next, cache: NewTranslationCache()}
}

// Translate returns a cached translation or delegates to the wrapped translator.
func (c *Cached) Translate(ctx context.Context, text, from, to string) (string, error) {
	key := cacheKey(text, from, to)
	if translation, ok := c.cache.Get(key); ok {
		return translation, nil
	}

	translation, err := c.next.Translate(ctx, text, from, to)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, translation)
	return translation, nil
}

// Cache exposes the underlying cache.
func (c *Cached) Cache() *TranslationCache {
	return c.cache
}

func cacheKey(text, from, to string) string {
	sum := sha256.Sum256([]byte(text))
	return from + "|" + to + "|" + hex.EncodeToString(sum[:])
}
