// Package agent wires retrieval, sentiment scoring, categorization and
// insight generation into one refresh cycle.
package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/analysis/insight"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/analysis/sentiment"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/analysis/topic"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/config"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/datasource"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/logger"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/metrics"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/pkg/models"
)

// RetrievalError reports a failed live fetch. It is recovered by serving the
// sample corpus and surfaced to the user as a warning.
type RetrievalError struct {
	Source string
	Err    error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("fetch news from %s: %v", e.Source, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// FetchResult is the outcome of FetchArticles. Err is set only in fallback
// mode.
type FetchResult struct {
	Articles []models.Article
	Mode     models.FetchMode
	Err      *RetrievalError
}

// Warning returns the user-facing notice for non-live results. The demo
// notice is informational; only fallback reports an error.
func (r FetchResult) Warning() string {
	switch r.Mode {
	case models.FetchDemo:
		return "NEWS_API_KEY not configured. Showing sample articles for demonstration."
	case models.FetchFallback:
		return fmt.Sprintf("Error fetching news: %v. Showing sample articles.", r.Err)
	}
	return ""
}

// Request describes one refresh.
type Request struct {
	Query    string
	Sources  string // comma-separated source filter, optional
	PageSize int    // 0 means datasource.DefaultPageSize
}

// Config holds the collaborators of a NewsAgent.
type Config struct {
	Fetcher    datasource.Fetcher
	Classifier sentiment.Classifier // nil selects the lexicon
	Analysis   config.AnalysisConfig
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
	Workers    int // enrichment concurrency, default 4

	now   func() time.Time
	newID func() string
}

// NewsAgent runs fetch → enrich → insight cycles. It holds no state between
// refreshes and is safe for concurrent use.
type NewsAgent struct {
	fetcher     datasource.Fetcher
	analyzer    *sentiment.Analyzer
	categorizer *topic.Categorizer
	insights    *insight.Generator
	metrics     *metrics.Metrics
	log         *zap.Logger
	workers     int
	now         func() time.Time
	newID       func() string
}

// New creates a NewsAgent.
func New(cfg Config) *NewsAgent {
	a := &NewsAgent{
		fetcher:     cfg.Fetcher,
		analyzer:    sentiment.NewAnalyzer(cfg.Classifier, cfg.Analysis),
		categorizer: topic.New(cfg.Analysis),
		insights:    insight.New(cfg.Analysis),
		metrics:     cfg.Metrics,
		log:         logger.OrNop(cfg.Logger),
		workers:     cfg.Workers,
		now:         cfg.now,
		newID:       cfg.newID,
	}
	if a.fetcher == nil {
		a.fetcher = datasource.NewNewsAPI("")
	}
	if a.workers <= 0 {
		a.workers = 4
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.newID == nil {
		a.newID = uuid.NewString
	}
	return a
}

// NewFromConfig builds a NewsAgent for the provider and classifier selected
// in cfg.
func NewFromConfig(cfg *config.Config, log *zap.Logger, m *metrics.Metrics) *NewsAgent {
	return New(Config{
		Fetcher:    NewFetcher(cfg.News, log),
		Classifier: sentiment.NewClassifier(cfg.Sentiment, log),
		Analysis:   cfg.Analysis(),
		Metrics:    m,
		Logger:     log,
	})
}

// NewFetcher builds the news source selected by cfg.Provider.
func NewFetcher(cfg config.NewsConfig, log *zap.Logger) datasource.Fetcher {
	client := &http.Client{Timeout: cfg.Timeout}
	if cfg.Provider == config.ProviderRSS {
		feeds := make([]datasource.Feed, len(cfg.Feeds))
		for i, f := range cfg.Feeds {
			feeds[i] = datasource.Feed{Name: f.Name, URL: f.URL}
		}
		return datasource.NewRSS(feeds,
			datasource.WithRSSWindow(cfg.Window),
			datasource.WithRSSHTTPClient(client),
			datasource.WithRSSLogger(log),
		)
	}
	return datasource.NewNewsAPI(cfg.APIKey,
		datasource.WithBaseURL(cfg.BaseURL),
		datasource.WithLanguage(cfg.Language),
		datasource.WithWindow(cfg.Window),
		datasource.WithHTTPClient(client),
	)
}

// Source returns the name of the configured news source.
func (a *NewsAgent) Source() string { return a.fetcher.Name() }

// FetchArticles retrieves articles for query. Missing credentials select
// demo mode; any other failure selects fallback mode with the error
// attached. Both serve the sample corpus. There is no retry.
func (a *NewsAgent) FetchArticles(ctx context.Context, query, sources string, pageSize int) FetchResult {
	if pageSize <= 0 {
		pageSize = datasource.DefaultPageSize
	}
	articles, err := a.fetcher.FetchArticles(ctx, datasource.Query{
		Text:     query,
		Sources:  sources,
		PageSize: pageSize,
	})
	switch {
	case err == nil:
		return FetchResult{Articles: articles, Mode: models.FetchLive}
	case errors.Is(err, datasource.ErrMissingCredentials):
		a.log.Info("no news credentials, using sample corpus", zap.String("source", a.fetcher.Name()))
		return FetchResult{Articles: datasource.SampleCorpus(), Mode: models.FetchDemo}
	default:
		a.log.Warn("news fetch failed, using sample corpus", zap.String("source", a.fetcher.Name()), zap.Error(err))
		a.metrics.ObserveFetchError(a.fetcher.Name())
		return FetchResult{
			Articles: datasource.SampleCorpus(),
			Mode:     models.FetchFallback,
			Err:      &RetrievalError{Source: a.fetcher.Name(), Err: err},
		}
	}
}

// Enrich scores and categorizes every article. The result has one row per
// article in the same order.
func (a *NewsAgent) Enrich(ctx context.Context, articles []models.Article) []models.EnrichedArticle {
	rows := make([]models.EnrichedArticle, len(articles))
	g := new(errgroup.Group)
	g.SetLimit(a.workers)
	for i, art := range articles {
		g.Go(func() error {
			score, label := a.analyzer.Analyze(ctx, art.Text())
			rows[i] = models.EnrichedArticle{
				Article:        art,
				SentimentScore: score,
				SentimentLabel: label,
				Category:       a.categorizer.Categorize(art.Title, art.Description),
			}
			return nil
		})
	}
	_ = g.Wait()
	return rows
}

// GenerateInsights derives the insights of rows. It returns
// insight.ErrEmptyInput for an empty batch.
func (a *NewsAgent) GenerateInsights(rows []models.EnrichedArticle) ([]models.Insight, error) {
	return a.insights.Generate(rows)
}

// Refresh runs one full cycle. Retrieval failures do not fail the refresh;
// they are reported through Report.Mode and Report.Warning. A fetch with no
// articles yields a report with NoResults set and no insights.
func (a *NewsAgent) Refresh(ctx context.Context, req Request) (*models.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := a.now()

	res := a.FetchArticles(ctx, req.Query, req.Sources, req.PageSize)
	rows := a.Enrich(ctx, res.Articles)

	report := &models.Report{
		ID:          a.newID(),
		Query:       req.Query,
		Mode:        res.Mode,
		Warning:     res.Warning(),
		Articles:    rows,
		Insights:    []models.Insight{},
		Stats:       insight.Summarize(rows),
		GeneratedAt: start.UTC(),
	}

	if len(rows) == 0 {
		report.NoResults = true
	} else {
		ins, err := a.GenerateInsights(rows)
		if err != nil {
			return nil, err
		}
		report.Insights = ins
	}

	took := a.now().Sub(start)
	a.metrics.ObserveReport(report, took)
	a.log.Info("refresh complete",
		zap.String("id", report.ID),
		zap.String("query", req.Query),
		zap.String("mode", string(report.Mode)),
		zap.Int("articles", len(rows)),
		zap.Int("insights", len(report.Insights)),
		zap.Duration("took", took),
	)
	return report, nil
}
