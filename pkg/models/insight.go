package models

import "time"

// InsightKind distinguishes alerts from informational observations.
type InsightKind string

const (
	InsightAlert InsightKind = "alert"
	InsightInfo  InsightKind = "info"
)

// InsightLevel is the polarity of an alert. Info insights carry no level.
type InsightLevel string

const (
	LevelPositive InsightLevel = "positive"
	LevelNegative InsightLevel = "negative"
)

// Insight is a human-readable observation about one batch of articles.
type Insight struct {
	Kind    InsightKind  `json:"type"`
	Level   InsightLevel `json:"level,omitempty"`
	Message string       `json:"message"`
}

// FetchMode records where the articles of a refresh came from.
type FetchMode string

const (
	// FetchLive means the articles came from the configured news source.
	FetchLive FetchMode = "live"
	// FetchDemo means no credentials were configured and the sample corpus was used.
	FetchDemo FetchMode = "demo"
	// FetchFallback means live retrieval failed and the sample corpus was substituted.
	FetchFallback FetchMode = "fallback"
)

// CategoryCount is the number of articles assigned to one category.
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// Stats holds the dashboard metrics of one batch.
type Stats struct {
	Total        int             `json:"total"`
	AvgSentiment float64         `json:"avg_sentiment"`
	Positive     int             `json:"positive"`
	Negative     int             `json:"negative"`
	Neutral      int             `json:"neutral"`
	Categories   []CategoryCount `json:"categories"` // first-appearance order
}

// Report is the complete output of one refresh: enriched rows in fetch
// order plus the insights derived from them.
type Report struct {
	ID          string            `json:"id"`
	Query       string            `json:"query"`
	Mode        FetchMode         `json:"mode"`
	Warning     string            `json:"warning,omitempty"`
	NoResults   bool              `json:"no_results,omitempty"`
	Articles    []EnrichedArticle `json:"articles"`
	Insights    []Insight         `json:"insights"`
	Stats       Stats             `json:"stats"`
	GeneratedAt time.Time         `json:"generated_at"`
}
