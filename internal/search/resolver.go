package search

import (
	"context"
	"errors"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sony/gobreaker"

	"codeberg.org/snonux/codewise/internal/logging"
)

// Defaults taken from the original LeetCode collection script.
const (
	DefaultTarget      = "leetcode.com"
	DefaultQuerySuffix = "leetcode.com"
	DefaultMaxResults  = 10
)

const (
	defaultCacheSize        = 1024
	defaultBreakerThreshold = 5
	defaultBreakerCooldown  = 30 * time.Second
)

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	Target      string
	QuerySuffix string
	MaxResults  int
	CacheSize   int
	// BreakerThreshold is the number of consecutive search failures that
	// open the circuit.
	BreakerThreshold uint32
	BreakerCooldown  time.Duration
}

type resolution struct {
	link string
	ok   bool
}

// Resolver finds the first search result on the target site for a key.
type Resolver struct {
	searcher   Searcher
	target     string
	suffix     string
	maxResults int
	logger     logging.Logger
	cache      *lru.Cache[string, resolution]
	breaker    *gobreaker.CircuitBreaker
}

// NewResolver creates a resolver over searcher.
func NewResolver(searcher Searcher, cfg ResolverConfig, logger logging.Logger) (*Resolver, error) {
	if cfg.Target == "" {
		cfg.Target = DefaultTarget
	}
	if cfg.QuerySuffix == "" {
		cfg.QuerySuffix = DefaultQuerySuffix
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}
	if cfg.BreakerThreshold == 0 {
		cfg.BreakerThreshold = defaultBreakerThreshold
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = defaultBreakerCooldown
	}
	if logger == nil {
		logger = logging.Nop{}
	}

	cache, err := lru.New[string, resolution](cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	threshold := cfg.BreakerThreshold
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "search",
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Search circuit breaker changed state", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Resolver{
		searcher:   searcher,
		target:     cfg.Target,
		suffix:     cfg.QuerySuffix,
		maxResults: cfg.MaxResults,
		logger:     logger,
		cache:      cache,
		breaker:    breaker,
	}, nil
}

// Resolve returns the canonical link for key, or ok == false when the search
// failed or nothing on the target site was found.
func (r *Resolver) Resolve(ctx context.Context, key string) (string, bool) {
	if cached, ok := r.cache.Get(key); ok {
		return cached.link, cached.ok
	}

	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.lookup(ctx, key)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			r.logger.Warn("Skipping link lookup, search service unavailable", "key", key)
		} else {
			r.logger.Error("Error searching for LeetCode link", err, "key", key)
		}
		return "", false
	}

	link := result.(string)
	if link == "" {
		r.logger.Warn("No relevant LeetCode link found for key", "key", key)
		r.cache.Add(key, resolution{})
		return "", false
	}

	r.cache.Add(key, resolution{link: link, ok: true})
	return link, true
}

func (r *Resolver) lookup(ctx context.Context, key string) (string, error) {
	query := strings.TrimSpace(key + " " + r.suffix)
	for u, err := range r.searcher.Search(ctx, query, r.maxResults) {
		if err != nil {
			return "", err
		}
		if strings.Contains(u, r.target) {
			return u, nil
		}
	}
	return "", nil
}

// Disabled never resolves a link. Used when link lookups are switched off.
type Disabled struct{}

// Resolve always reports no link.
func (Disabled) Resolve(context.Context, string) (string, bool) {
	return "", false
}
