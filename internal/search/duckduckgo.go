package search

import (
	"context"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// DefaultEndpoint is the DuckDuckGo HTML-only search page.
const DefaultEndpoint = "https://html.duckduckgo.com/html/"

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) codewise"

// Searcher yields result URLs for a query, at most maxResults of them.
// A failing search yields a single non-nil error and stops.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) iter.Seq2[string, error]
}

// DuckDuckGoOptions configures the DuckDuckGo searcher. Timeout and Pause are
// handed to the HTTP client and page loop unchanged.
type DuckDuckGoOptions struct {
	Endpoint  string
	Timeout   time.Duration
	Pause     time.Duration
	UserAgent string
	Language  string
}

// DuckDuckGo scrapes the DuckDuckGo HTML results page.
type DuckDuckGo struct {
	endpoint   string
	httpClient *http.Client
	pause      time.Duration
	userAgent  string
	language   string
}

var _ Searcher = (*DuckDuckGo)(nil)

// NewDuckDuckGo creates a DuckDuckGo searcher.
func NewDuckDuckGo(opts DuckDuckGoOptions) *DuckDuckGo {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	return &DuckDuckGo{
		endpoint:   opts.Endpoint,
		httpClient: &http.Client{Timeout: opts.Timeout},
		pause:      opts.Pause,
		userAgent:  opts.UserAgent,
		language:   opts.Language,
	}
}

// Search pages through results until maxResults unique URLs were yielded,
// a page comes back empty, or the consumer stops.
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		seen := make(map[string]struct{})
		offset := 0
		count := 0

		for count < maxResults {
			if offset > 0 && d.pause > 0 {
				select {
				case <-ctx.Done():
					yield("", ctx.Err())
					return
				case <-time.After(d.pause):
				}
			}

			urls, err := d.fetchPage(ctx, query, offset)
			if err != nil {
				yield("", err)
				return
			}

			fresh := 0
			for _, u := range urls {
				if _, dup := seen[u]; dup {
					continue
				}
				seen[u] = struct{}{}
				fresh++
				count++
				if !yield(u, nil) || count >= maxResults {
					return
				}
			}
			if fresh == 0 {
				return
			}
			offset += len(urls)
		}
	}
}

func (d *DuckDuckGo) fetchPage(ctx context.Context, query string, offset int) ([]string, error) {
	params := url.Values{}
	params.Set("q", query)
	if offset > 0 {
		params.Set("s", strconv.Itoa(offset))
	}
	if d.language != "" {
		params.Set("kl", d.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	var urls []string
	collectResultLinks(doc, &urls)
	return urls, nil
}

func collectResultLinks(node *html.Node, urls *[]string) {
	if node.Type == html.ElementNode && node.Data == "a" && hasClass(node, "result__a") {
		if u := resultURL(attr(node, "href")); u != "" {
			*urls = append(*urls, u)
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectResultLinks(child, urls)
	}
}

// resultURL unwraps DuckDuckGo redirect links (//duckduckgo.com/l/?uddg=...).
func resultURL(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		u, err = url.Parse(target)
		if err != nil {
			return ""
		}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

func attr(node *html.Node, key string) string {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(node *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(node, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
