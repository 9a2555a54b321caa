// Package topic assigns articles to a fixed set of categories using an
// ordered keyword table.
package topic

import (
	"strings"

	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/config"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/pkg/models"
)

type rule struct {
	category models.Category
	keywords []string
}

// Categorizer matches lower-cased article text against keyword rules.
// The first rule with any keyword present as a substring wins, so the
// rule order is the tie-break between categories.
type Categorizer struct {
	rules []rule
}

// New builds a categorizer from the ordered keyword table in cfg.
// Keywords are lower-cased; empty keywords are ignored.
func New(cfg config.AnalysisConfig) *Categorizer {
	c := &Categorizer{rules: make([]rule, 0, len(cfg.Categories))}
	for _, ck := range cfg.Categories {
		r := rule{category: ck.Name}
		for _, kw := range ck.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				r.keywords = append(r.keywords, kw)
			}
		}
		c.rules = append(c.rules, r)
	}
	return c
}

// Default returns a categorizer over the built-in keyword table.
func Default() *Categorizer {
	return New(config.DefaultAnalysis())
}

// Categorize returns the category of an article with the given title and
// description, or models.CategoryOther when no keyword matches.
//
// Matching is plain substring search, so "ai" also matches inside words
// like "said" or "rain".
func (c *Categorizer) Categorize(title, description string) models.Category {
	text := strings.ToLower(title + " " + description)
	for _, r := range c.rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.category
			}
		}
	}
	return models.CategoryOther
}

// Article is shorthand for Categorize(a.Title, a.Description).
func (c *Categorizer) Article(a models.Article) models.Category {
	return c.Categorize(a.Title, a.Description)
}
