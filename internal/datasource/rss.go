package datasource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/pkg/models"
)

// Feed is one RSS/Atom feed.
type Feed struct {
	Name string
	URL  string
}

// RSS fetches articles from a fixed set of feeds and filters them locally.
// It needs no credentials.
type RSS struct {
	feeds   []Feed
	window  time.Duration
	client  *http.Client
	log     *zap.Logger
	now     func() time.Time
	workers int
}

// RSSOption configures the RSS source.
type RSSOption func(*RSS)

// WithRSSWindow sets how far back articles may have been published.
func WithRSSWindow(d time.Duration) RSSOption {
	return func(r *RSS) {
		if d > 0 {
			r.window = d
		}
	}
}

// WithRSSHTTPClient sets a custom HTTP client.
func WithRSSHTTPClient(c *http.Client) RSSOption {
	return func(r *RSS) { r.client = c }
}

// WithRSSLogger sets the logger used for per-feed failures.
func WithRSSLogger(l *zap.Logger) RSSOption {
	return func(r *RSS) {
		if l != nil {
			r.log = l
		}
	}
}

// WithRSSClock sets the time source used to compute the publish window.
func WithRSSClock(now func() time.Time) RSSOption {
	return func(r *RSS) { r.now = now }
}

// NewRSS creates an RSS source over feeds.
func NewRSS(feeds []Feed, opts ...RSSOption) *RSS {
	r := &RSS{
		feeds:   feeds,
		window:  24 * time.Hour,
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     zap.NewNop(),
		now:     time.Now,
		workers: 4,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the data source name.
func (r *RSS) Name() string { return "RSS" }

// FetchArticles parses every selected feed concurrently and returns the
// items that mention q.Text and fall inside the publish window, newest
// first. Failing feeds are skipped; an error is returned only when every
// feed fails.
func (r *RSS) FetchArticles(ctx context.Context, q Query) ([]models.Article, error) {
	feeds := r.selectFeeds(q.Sources)
	if len(feeds) == 0 {
		return nil, ErrNoFeeds
	}

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var (
		mu       sync.Mutex
		perFeed  = make([][]models.Article, len(feeds))
		failures []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, f := range feeds {
		g.Go(func() error {
			articles, err := r.fetchFeed(gctx, f)
			if err != nil {
				r.log.Warn("rss feed failed", zap.String("feed", f.Name), zap.Error(err))
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
				return nil // non-fatal
			}
			perFeed[i] = articles
			return nil
		})
	}
	_ = g.Wait()

	if len(failures) == len(feeds) {
		return nil, fmt.Errorf("rss: %w", errors.Join(failures...))
	}

	cutoff := r.now().Add(-r.window)
	needle := strings.ToLower(strings.TrimSpace(q.Text))

	var all []models.Article
	for _, articles := range perFeed {
		for _, a := range articles {
			if a.PublishedTime().Before(cutoff) {
				continue
			}
			if needle != "" && !strings.Contains(strings.ToLower(a.Text()), needle) {
				continue
			}
			all = append(all, a)
		}
	}

	sortArticlesByDate(all)
	if len(all) > pageSize {
		all = all[:pageSize]
	}
	return all, nil
}

// selectFeeds returns the feeds named in the comma-separated sources list,
// or all feeds when sources is empty.
func (r *RSS) selectFeeds(sources string) []Feed {
	if strings.TrimSpace(sources) == "" {
		return r.feeds
	}
	want := make(map[string]bool)
	for _, s := range strings.Split(sources, ",") {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			want[s] = true
		}
	}
	var out []Feed
	for _, f := range r.feeds {
		if want[strings.ToLower(f.Name)] {
			out = append(out, f)
		}
	}
	return out
}

// fetchFeed parses one feed. A parser per call keeps goroutines independent.
func (r *RSS) fetchFeed(ctx context.Context, f Feed) ([]models.Article, error) {
	parser := gofeed.NewParser()
	parser.Client = r.client
	parser.UserAgent = DefaultUserAgent

	feed, err := parser.ParseURLWithContext(f.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse RSS %s: %w", f.Name, err)
	}

	articles := make([]models.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		a := models.Article{
			Title:       strings.TrimSpace(item.Title),
			Description: cleanHTML(item.Description),
			Source:      f.Name,
			URL:         item.Link,
		}
		switch {
		case item.PublishedParsed != nil:
			a.PublishedAt = formatTime(*item.PublishedParsed)
		case item.UpdatedParsed != nil:
			a.PublishedAt = formatTime(*item.UpdatedParsed)
		}
		articles = append(articles, a)
	}
	return articles, nil
}
