// Package sentiment turns article text into a polarity score and a
// discrete sentiment label.
//
// Scoring is delegated to a Classifier. The default Lexicon classifier is
// offline and deterministic; the Ollama classifier asks a local LLM and
// falls back to the lexicon when the model is unavailable.
package sentiment

import (
	"context"
	"strings"
	"unicode"
)

// Classifier scores text polarity in [-1, 1].
// Implementations must be total: they never fail for any string input and
// return the same score for the same text.
type Classifier interface {
	Score(ctx context.Context, text string) float64
}

// ------------------------------------------------------------------
// Pattern-style lexicon: every known word contributes its polarity,
// scaled by a preceding intensifier and flipped (at half strength) by a
// preceding negation. The score is the mean of all contributions.
// ------------------------------------------------------------------

var polarityWords = map[string]float64{
	// positive
	"good": 0.7, "great": 0.8, "excellent": 1.0, "best": 1.0, "better": 0.5,
	"positive": 0.23, "optimistic": 0.5, "promise": 0.4, "promising": 0.5,
	"success": 0.6, "successful": 0.75, "win": 0.6, "wins": 0.6, "won": 0.5,
	"gain": 0.4, "gains": 0.4, "growth": 0.4, "grow": 0.3, "grows": 0.3,
	"strong": 0.43, "record": 0.3, "boost": 0.5, "boosts": 0.5,
	"improve": 0.5, "improved": 0.5, "improves": 0.5, "improvement": 0.5,
	"breakthrough": 0.5, "innovative": 0.5, "revolutionary": 0.6, "revolutionizing": 0.4,
	"milestone": 0.3, "achieve": 0.3, "achieves": 0.3, "recovery": 0.5,
	"rally": 0.6, "surge": 0.5, "upbeat": 0.5, "bullish": 0.7, "upgrade": 0.6,
	"profit": 0.3, "profits": 0.3, "beat": 0.4, "exceeds": 0.5, "outperform": 0.6,
	"significant": 0.375, "enhanced": 0.3, "practical": 0.2, "personalized": 0.2,
	"new": 0.136, "major": 0.06, "happy": 0.8, "love": 0.5, "amazing": 0.6,
	"safe": 0.5, "secure": 0.4, "healthy": 0.5, "hope": 0.4, "celebrate": 0.6,

	// negative
	"bad": -0.7, "worse": -0.4, "worst": -1.0, "terrible": -1.0, "poor": -0.4,
	"negative": -0.3, "pessimistic": -0.5, "concern": -0.3, "concerns": -0.3,
	"concerning": -0.4, "fear": -0.5, "fears": -0.5, "risk": -0.3, "risks": -0.3,
	"loss": -0.4, "losses": -0.4, "lose": -0.4, "decline": -0.5, "declines": -0.5,
	"fall": -0.4, "falls": -0.4, "drop": -0.4, "drops": -0.4, "plummet": -0.7,
	"plummets": -0.7, "plunge": -0.7, "plunges": -0.7, "crash": -0.8, "slump": -0.6,
	"selloff": -0.7, "bearish": -0.7, "downgrade": -0.6, "weak": -0.4,
	"uncertainty": -0.4, "uncertain": -0.3, "volatility": -0.3, "volatile": -0.3,
	"crisis": -0.7, "threat": -0.5, "threats": -0.5, "attack": -0.6, "attacks": -0.6,
	"war": -0.6, "fraud": -0.8, "scam": -0.8, "failure": -0.6, "fail": -0.5,
	"fails": -0.5, "warning": -0.4, "danger": -0.6, "dangerous": -0.6,
	"death": -0.7, "deaths": -0.7, "killed": -0.8, "dead": -0.7, "sad": -0.5,
	"angry": -0.6, "problem": -0.4, "problems": -0.4, "damage": -0.5,
	"lawsuit": -0.4, "investigation": -0.3, "layoffs": -0.6, "recession": -0.7,
	"inflation": -0.2, "shortage": -0.4, "outage": -0.5, "breach": -0.6,
}

var intensifiers = map[string]float64{
	"very": 1.3, "extremely": 1.5, "highly": 1.3, "really": 1.2,
	"dramatically": 1.3, "sharply": 1.3, "deeply": 1.3, "incredibly": 1.5,
	"slightly": 0.5, "somewhat": 0.7,
}

var negations = map[string]bool{
	"not": true, "no": true, "never": true, "without": true, "nor": true,
	"isn't": true, "aren't": true, "wasn't": true, "don't": true, "doesn't": true,
	"didn't": true, "won't": true, "can't": true, "cannot": true,
}

// Lexicon is the offline word-list classifier.
type Lexicon struct{}

// NewLexicon returns the default lexicon classifier.
func NewLexicon() Lexicon { return Lexicon{} }

// Score implements Classifier.
func (Lexicon) Score(_ context.Context, text string) float64 {
	return LexiconScore(text)
}

// LexiconScore returns the mean polarity of the known words in text,
// clamped to [-1, 1]. Text with no known words scores 0.
func LexiconScore(text string) float64 {
	var (
		sum     float64
		n       int
		mult    = 1.0
		negated bool
	)

	for _, tok := range tokenize(text) {
		if negations[tok] {
			negated = true
			continue
		}
		if m, ok := intensifiers[tok]; ok {
			mult = m
			continue
		}
		p, ok := polarityWords[tok]
		if !ok {
			continue
		}
		p *= mult
		if negated {
			p *= -0.5
		}
		sum += clamp(p)
		n++
		mult, negated = 1.0, false
	}

	if n == 0 {
		return 0
	}
	return clamp(sum / float64(n))
}

// tokenize lower-cases text and splits it into words. Apostrophes stay
// inside words so contractions like "don't" survive.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func clamp(x float64) float64 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	}
	return x
}
