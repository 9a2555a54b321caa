// Package insight derives aggregate observations from a batch of enriched
// articles.
package insight

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/config"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/pkg/models"
)

// ErrEmptyInput is returned when insights are requested for zero articles.
var ErrEmptyInput = errors.New("insight: no articles to analyze")

// Generator turns enriched rows into at most three insights.
type Generator struct {
	positive float64
	negative float64
	ratio    float64
	title    cases.Caser
}

// New creates a generator using the insight thresholds of cfg.
func New(cfg config.AnalysisConfig) *Generator {
	return &Generator{
		positive: cfg.InsightPositiveThreshold,
		negative: cfg.InsightNegativeThreshold,
		ratio:    cfg.NegativeCoverageRatio,
		title:    cases.Title(language.English),
	}
}

// Generate returns the insights for rows in fixed order: the sentiment
// alert when the average is outside the insight thresholds, the
// dominant-topic info insight (always), and the negative-coverage alert
// when strictly more than ratio*n rows are negative.
func (g *Generator) Generate(rows []models.EnrichedArticle) ([]models.Insight, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	st := Summarize(rows)
	out := make([]models.Insight, 0, 3)

	switch {
	case st.AvgSentiment < g.negative:
		out = append(out, models.Insight{
			Kind:    models.InsightAlert,
			Level:   models.LevelNegative,
			Message: fmt.Sprintf("🚨 NEGATIVE SENTIMENT DETECTED: Average sentiment is %.2f. Market conditions may be concerning.", st.AvgSentiment),
		})
	case st.AvgSentiment > g.positive:
		out = append(out, models.Insight{
			Kind:    models.InsightAlert,
			Level:   models.LevelPositive,
			Message: fmt.Sprintf("✅ POSITIVE SENTIMENT DETECTED: Average sentiment is %.2f. Market outlook appears optimistic.", st.AvgSentiment),
		})
	}

	top := Dominant(st.Categories)
	out = append(out, models.Insight{
		Kind:    models.InsightInfo,
		Message: fmt.Sprintf("📊 TRENDING TOPIC: %s dominates news coverage with %d articles", g.title.String(string(top.Category)), top.Count),
	})

	if float64(st.Negative) > g.ratio*float64(st.Total) {
		out = append(out, models.Insight{
			Kind:    models.InsightAlert,
			Level:   models.LevelNegative,
			Message: fmt.Sprintf("⚠️ HIGH NEGATIVE COVERAGE: %d out of %d articles are negative", st.Negative, st.Total),
		})
	}
	return out, nil
}

// Summarize computes the batch statistics of rows. Category counts are
// listed in order of first appearance. An empty batch has zero stats.
func Summarize(rows []models.EnrichedArticle) models.Stats {
	st := models.Stats{Total: len(rows), Categories: []models.CategoryCount{}}
	if len(rows) == 0 {
		return st
	}

	idx := make(map[models.Category]int)
	var sum float64
	for _, r := range rows {
		sum += r.SentimentScore
		switch r.SentimentLabel {
		case models.SentimentPositive:
			st.Positive++
		case models.SentimentNegative:
			st.Negative++
		default:
			st.Neutral++
		}

		i, ok := idx[r.Category]
		if !ok {
			i = len(st.Categories)
			idx[r.Category] = i
			st.Categories = append(st.Categories, models.CategoryCount{Category: r.Category})
		}
		st.Categories[i].Count++
	}
	st.AvgSentiment = sum / float64(len(rows))
	return st
}

// Dominant returns the category with the highest count. Ties go to the
// entry that appears first in counts.
func Dominant(counts []models.CategoryCount) models.CategoryCount {
	var best models.CategoryCount
	for _, c := range counts {
		if c.Count > best.Count {
			best = c
		}
	}
	return best
}
