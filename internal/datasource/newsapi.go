package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/pkg/models"
)

// DefaultNewsAPIURL is the NewsAPI "everything" endpoint.
const DefaultNewsAPIURL = "https://newsapi.org/v2/everything"

// NewsAPI fetches articles from newsapi.org.
type NewsAPI struct {
	apiKey   string
	baseURL  string
	language string
	window   time.Duration
	client   *http.Client
	limiter  *rate.Limiter
	now      func() time.Time
}

// NewsAPIOption configures the NewsAPI source.
type NewsAPIOption func(*NewsAPI)

// WithBaseURL overrides the endpoint URL.
func WithBaseURL(u string) NewsAPIOption {
	return func(n *NewsAPI) {
		if u != "" {
			n.baseURL = u
		}
	}
}

// WithLanguage sets the article language filter.
func WithLanguage(lang string) NewsAPIOption {
	return func(n *NewsAPI) {
		if lang != "" {
			n.language = lang
		}
	}
}

// WithWindow sets how far back articles may have been published.
func WithWindow(d time.Duration) NewsAPIOption {
	return func(n *NewsAPI) {
		if d > 0 {
			n.window = d
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) NewsAPIOption {
	return func(n *NewsAPI) { n.client = c }
}

// WithClock sets the time source used to compute the publish window.
func WithClock(now func() time.Time) NewsAPIOption {
	return func(n *NewsAPI) { n.now = now }
}

// NewNewsAPI creates a NewsAPI source. An empty apiKey is allowed; every
// fetch then fails fast with ErrMissingCredentials.
func NewNewsAPI(apiKey string, opts ...NewsAPIOption) *NewsAPI {
	n := &NewsAPI{
		apiKey:   apiKey,
		baseURL:  DefaultNewsAPIURL,
		language: "en",
		window:   24 * time.Hour,
		client:   &http.Client{Timeout: 30 * time.Second},
		limiter:  rate.NewLimiter(rate.Every(500*time.Millisecond), 2), // conservative: 2 req/s
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Name returns the data source name.
func (n *NewsAPI) Name() string { return "NewsAPI" }

// HasCredentials reports whether an API key is configured.
func (n *NewsAPI) HasCredentials() bool { return n.apiKey != "" }

// newsAPIResponse is the body of /v2/everything.
type newsAPIResponse struct {
	Status       string `json:"status"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// FetchArticles queries NewsAPI for English articles published within the
// configured window, newest first.
func (n *NewsAPI) FetchArticles(ctx context.Context, q Query) ([]models.Article, error) {
	if n.apiKey == "" {
		return nil, ErrMissingCredentials
	}
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	params := url.Values{}
	params.Set("q", q.Text)
	params.Set("language", n.language)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("from", formatTime(n.now().Add(-n.window)))
	if q.Sources != "" {
		params.Set("sources", q.Sources)
	}

	body, err := doGet(ctx, n.client, n.baseURL, params, map[string]string{"X-Api-Key": n.apiKey})
	if err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}
	defer body.Close()

	var resp newsAPIResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("newsapi: decode response: %w", err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("newsapi: status %q: %s %s", resp.Status, resp.Code, resp.Message)
	}

	articles := make([]models.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		source := strings.TrimSpace(a.Source.Name)
		if source == "" {
			source = "Unknown"
		}
		articles = append(articles, models.Article{
			Title:       strings.TrimSpace(a.Title),
			Description: cleanHTML(a.Description),
			PublishedAt: a.PublishedAt,
			Source:      source,
			URL:         a.URL,
		})
	}
	if len(articles) > pageSize {
		articles = articles[:pageSize]
	}
	return articles, nil
}
