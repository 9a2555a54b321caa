// Package models defines the core data types shared across the news agent:
// raw articles, enriched articles, insights and refresh reports.
package models

import (
	"strings"
	"time"
)

// Article is a single news item as returned by a news source.
// Articles are never modified after they are fetched.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishedAt string `json:"published_at"` // ISO-8601 as delivered by the source
	Source      string `json:"source"`
	URL         string `json:"url,omitempty"`
}

// Text returns the title and description joined by a single space.
func (a Article) Text() string {
	return a.Title + " " + a.Description
}

// PublishedTime parses PublishedAt. The zero time is returned when the
// timestamp is missing or malformed.
func (a Article) PublishedTime() time.Time {
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, a.PublishedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// SentimentLabel is the discrete sentiment class of an article.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// ParseSentimentLabel parses a label case-insensitively.
func ParseSentimentLabel(s string) (SentimentLabel, bool) {
	switch SentimentLabel(strings.ToLower(strings.TrimSpace(s))) {
	case SentimentPositive:
		return SentimentPositive, true
	case SentimentNegative:
		return SentimentNegative, true
	case SentimentNeutral:
		return SentimentNeutral, true
	}
	return "", false
}

// Category is the topic an article was assigned to.
type Category string

const (
	CategoryTechnology    Category = "technology"
	CategoryBusiness      Category = "business"
	CategoryHealth        Category = "health"
	CategoryEnvironment   Category = "environment"
	CategoryPolitics      Category = "politics"
	CategorySports        Category = "sports"
	CategoryEntertainment Category = "entertainment"
	CategoryOther         Category = "other"
)

// Categories lists every category in priority order, "other" last.
var Categories = []Category{
	CategoryTechnology,
	CategoryBusiness,
	CategoryHealth,
	CategoryEnvironment,
	CategoryPolitics,
	CategorySports,
	CategoryEntertainment,
	CategoryOther,
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// EnrichedArticle is an article with its computed sentiment and topic.
type EnrichedArticle struct {
	Article
	SentimentScore float64        `json:"sentiment_score"`
	SentimentLabel SentimentLabel `json:"sentiment_label"`
	Category       Category       `json:"category"`
}

// FilterBySentiment returns the rows carrying the given label, in order.
// An empty label keeps every row. A positive limit truncates the result.
func FilterBySentiment(rows []EnrichedArticle, label SentimentLabel, limit int) []EnrichedArticle {
	out := make([]EnrichedArticle, 0, len(rows))
	for _, r := range rows {
		if label != "" && r.SentimentLabel != label {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
