package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Ollama scores text with a local Ollama model. Any failure (server down,
// bad status, unparseable reply) falls back to the configured fallback
// classifier so Score stays total.
type Ollama struct {
	baseURL  string
	model    string
	client   *http.Client
	fallback Classifier
	log      *zap.Logger
}

// OllamaOption configures the Ollama classifier.
type OllamaOption func(*Ollama)

// WithOllamaModel sets the model name.
func WithOllamaModel(model string) OllamaOption {
	return func(o *Ollama) {
		if model != "" {
			o.model = model
		}
	}
}

// WithOllamaHTTPClient sets a custom HTTP client.
func WithOllamaHTTPClient(c *http.Client) OllamaOption {
	return func(o *Ollama) { o.client = c }
}

// WithFallback sets the classifier used when Ollama fails.
func WithFallback(c Classifier) OllamaOption {
	return func(o *Ollama) { o.fallback = c }
}

// WithOllamaLogger sets the logger for fallback warnings.
func WithOllamaLogger(l *zap.Logger) OllamaOption {
	return func(o *Ollama) {
		if l != nil {
			o.log = l
		}
	}
}

// NewOllama creates an Ollama classifier.
// baseURL is the Ollama server URL (e.g., "http://localhost:11434").
func NewOllama(baseURL string, opts ...OllamaOption) *Ollama {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	o := &Ollama{
		baseURL:  strings.TrimRight(baseURL, "/"),
		model:    "qwen2.5:7b",
		client:   &http.Client{Timeout: 60 * time.Second},
		fallback: NewLexicon(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

const polarityPrompt = `Rate the sentiment polarity of the following news text.
Reply with a single number between -1 (very negative) and 1 (very positive), 0 for neutral.
Reply with the number only.

Text:
`

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Score implements Classifier.
func (o *Ollama) Score(ctx context.Context, text string) float64 {
	score, err := o.generate(ctx, text)
	if err != nil {
		o.log.Warn("ollama sentiment failed, using fallback", zap.String("model", o.model), zap.Error(err))
		return o.fallback.Score(ctx, text)
	}
	return score
}

func (o *Ollama) generate(ctx context.Context, text string) (float64, error) {
	data, err := json.Marshal(ollamaGenerateRequest{
		Model:   o.model,
		Prompt:  polarityPrompt + text,
		Stream:  false,
		Options: map[string]any{"temperature": 0},
	})
	if err != nil {
		return 0, fmt.Errorf("ollama: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, fmt.Errorf("ollama: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var out ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("ollama: decode response: %w", err)
	}
	return parsePolarity(out.Response)
}

var numberRe = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// parsePolarity extracts the first number of a model reply and clamps it
// to [-1, 1]. Bare labels are accepted too.
func parsePolarity(reply string) (float64, error) {
	r := strings.ToLower(strings.TrimSpace(reply))
	switch r {
	case "positive":
		return 1, nil
	case "negative":
		return -1, nil
	case "neutral":
		return 0, nil
	}

	m := numberRe.FindString(r)
	if m == "" {
		return 0, fmt.Errorf("ollama: no polarity in reply %q", reply)
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, fmt.Errorf("ollama: parse polarity %q: %w", m, err)
	}
	return clamp(f), nil
}
