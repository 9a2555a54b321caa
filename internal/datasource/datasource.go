// Package datasource provides news retrieval for the agent.
// It defines a common Fetcher interface and implements NewsAPI and RSS
// sources plus the bundled sample corpus used when no live source is
// available.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/pkg/models"
)

// Fetcher retrieves recent articles for a query.
type Fetcher interface {
	// Name returns the human-readable name of this source.
	Name() string

	// FetchArticles returns articles matching q, newest first, at most
	// q.PageSize of them. One attempt is made per call.
	FetchArticles(ctx context.Context, q Query) ([]models.Article, error)
}

// Query describes one retrieval request.
type Query struct {
	Text     string
	Sources  string // comma-separated source identifiers; empty means all
	PageSize int
}

// DefaultPageSize is used when a query does not set PageSize.
const DefaultPageSize = 50

// --- Sentinel errors ---

// ErrMissingCredentials is returned when a source needs an API key that is
// not configured. No network request is made in that case.
var ErrMissingCredentials = errors.New("news source credentials not configured")

// ErrNoFeeds is returned when the RSS source has no usable feed.
var ErrNoFeeds = errors.New("no RSS feeds available")

// ErrHTTP wraps an HTTP error with status code.
type ErrHTTP struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// --- Shared HTTP helpers ---

// DefaultUserAgent is the user agent string used for HTTP requests.
const DefaultUserAgent = "newsagent/1.0 (+https://github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT)"

// doGet performs a GET request and returns the response body.
// The caller is responsible for closing the returned ReadCloser.
func doGet(ctx context.Context, client *http.Client, rawURL string, params url.Values, headers map[string]string) (io.ReadCloser, error) {
	if len(params) > 0 {
		rawURL += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET %s: %w", redact(req.URL), err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &ErrHTTP{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return resp.Body, nil
}

// redact drops the query string so keys never end up in error messages.
func redact(u *url.URL) string {
	c := *u
	c.RawQuery = ""
	return c.String()
}

// cleanHTML strips HTML tags from a string using goquery.
func cleanHTML(s string) string {
	if s == "" || !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

// sortArticlesByDate sorts articles by published time, newest first.
// Insertion sort keeps equal timestamps in their original order.
func sortArticlesByDate(articles []models.Article) {
	for i := 1; i < len(articles); i++ {
		key := articles[i]
		kt := key.PublishedTime()
		j := i - 1
		for j >= 0 && articles[j].PublishedTime().Before(kt) {
			articles[j+1] = articles[j]
			j--
		}
		articles[j+1] = key
	}
}

// formatTime renders t the way NewsAPI reports publishedAt.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
