package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultsPage(links ...string) string {
	body := `<html><body><div class="results">`
	for _, l := range links {
		body += fmt.Sprintf(`<div class="result"><h2><a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=%s&amp;rut=abc">title</a></h2>
<a class="result__url" href="%s">ignored</a></div>`, url.QueryEscape(l), l)
	}
	return body + `</div></body></html>`
}

func TestDuckDuckGo_Search(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("q"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		fmt.Fprint(w, resultsPage(
			"https://example.com/two-sum",
			"https://leetcode.com/problems/two-sum/",
		))
	}))
	defer srv.Close()

	d := NewDuckDuckGo(DuckDuckGoOptions{Endpoint: srv.URL, Timeout: 5 * time.Second})

	var got []string
	for u, err := range d.Search(context.Background(), "two-sum leetcode.com", 10) {
		require.NoError(t, err)
		got = append(got, u)
	}

	assert.Equal(t, []string{"https://example.com/two-sum", "https://leetcode.com/problems/two-sum/"}, got)
	assert.Equal(t, "two-sum leetcode.com", queries[0])
}

func TestDuckDuckGo_Paginates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("s"))
		if offset >= 4 {
			fmt.Fprint(w, resultsPage())
			return
		}
		fmt.Fprint(w, resultsPage(
			fmt.Sprintf("https://example.com/%d", offset),
			fmt.Sprintf("https://example.com/%d", offset+1),
		))
	}))
	defer srv.Close()

	d := NewDuckDuckGo(DuckDuckGoOptions{Endpoint: srv.URL})

	var got []string
	for u, err := range d.Search(context.Background(), "q", 3) {
		require.NoError(t, err)
		got = append(got, u)
	}
	assert.Len(t, got, 3, "maxResults caps the sequence")

	got = nil
	for u, err := range d.Search(context.Background(), "q", 100) {
		require.NoError(t, err)
		got = append(got, u)
	}
	assert.Len(t, got, 4, "empty page ends the sequence")
}

func TestDuckDuckGo_StopsEarly(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, resultsPage("https://a.example/1", "https://b.example/2"))
	}))
	defer srv.Close()

	d := NewDuckDuckGo(DuckDuckGoOptions{Endpoint: srv.URL})
	for range d.Search(context.Background(), "q", 10) {
		break
	}
	assert.Equal(t, 1, requests)
}

func TestDuckDuckGo_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	d := NewDuckDuckGo(DuckDuckGoOptions{Endpoint: srv.URL})

	var errs []error
	for _, err := range d.Search(context.Background(), "q", 10) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "unexpected status 429")
}

func TestResultURL(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fleetcode.com%2Fproblems%2Ftwo-sum%2F&rut=x", "https://leetcode.com/problems/two-sum/"},
		{"https://leetcode.com/problems/two-sum/", "https://leetcode.com/problems/two-sum/"},
		{"javascript:void(0)", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resultURL(tt.href), tt.href)
	}
}

func TestDuckDuckGo_Live(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping live search in short mode")
	}
	if os.Getenv("CODEWISE_LIVE_SEARCH") == "" {
		t.Skip("Skipping live search: CODEWISE_LIVE_SEARCH not set")
	}

	r, err := NewResolver(NewDuckDuckGo(DuckDuckGoOptions{Timeout: 5 * time.Second}), ResolverConfig{}, nil)
	require.NoError(t, err)

	link, ok := r.Resolve(context.Background(), "two-sum")
	t.Logf("two-sum -> %q (%v)", link, ok)
}
