package sentiment

import (
	"context"

	"go.uber.org/zap"

	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/internal/config"
	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/pkg/models"
)

// Analyzer maps classifier scores onto sentiment labels.
type Analyzer struct {
	classifier Classifier
	positive   float64
	negative   float64
}

// NewAnalyzer creates an analyzer using the label thresholds of cfg.
// A nil classifier selects the lexicon.
func NewAnalyzer(c Classifier, cfg config.AnalysisConfig) *Analyzer {
	if c == nil {
		c = NewLexicon()
	}
	return &Analyzer{
		classifier: c,
		positive:   cfg.PositiveThreshold,
		negative:   cfg.NegativeThreshold,
	}
}

// Analyze scores text and labels the score. Empty text is neutral with a
// zero score and never reaches the classifier; whitespace is scored.
func (a *Analyzer) Analyze(ctx context.Context, text string) (float64, models.SentimentLabel) {
	if text == "" {
		return 0, models.SentimentNeutral
	}
	score := clamp(a.classifier.Score(ctx, text))
	return score, a.Label(score)
}

// Label applies the thresholds: strictly above positive is positive,
// strictly below negative is negative, anything in between is neutral.
func (a *Analyzer) Label(score float64) models.SentimentLabel {
	switch {
	case score > a.positive:
		return models.SentimentPositive
	case score < a.negative:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// NewClassifier builds the classifier selected by cfg.
func NewClassifier(cfg config.SentimentConfig, log *zap.Logger) Classifier {
	if cfg.Backend == config.BackendOllama {
		return NewOllama(cfg.OllamaURL,
			WithOllamaModel(cfg.OllamaModel),
			WithOllamaLogger(log),
		)
	}
	return NewLexicon()
}
