// Package config handles configuration loading for the news agent.
// It supports YAML config files, an optional .env file and environment
// variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aishwaryareddy05/NEWS-SENTIMENT-ANALYSIS-AGENT/pkg/models"
)

// Config represents the complete application configuration.
type Config struct {
	News       NewsConfig         `mapstructure:"news"       yaml:"news"`
	Sentiment  SentimentConfig    `mapstructure:"sentiment"  yaml:"sentiment"`
	Insights   InsightConfig      `mapstructure:"insights"   yaml:"insights"`
	Categories []CategoryKeywords `mapstructure:"categories" yaml:"categories"`
	Dashboard  DashboardConfig    `mapstructure:"dashboard"  yaml:"dashboard"`
	API        APIConfig          `mapstructure:"api"        yaml:"api"`
	Logging    LoggingConfig      `mapstructure:"logging"    yaml:"logging"`
}

// NewsConfig holds news retrieval settings.
type NewsConfig struct {
	Provider string        `mapstructure:"provider"  yaml:"provider"` // "newsapi" or "rss"
	APIKey   string        `mapstructure:"api_key"   yaml:"api_key"`
	BaseURL  string        `mapstructure:"base_url"  yaml:"base_url"`
	Language string        `mapstructure:"language"  yaml:"language"`
	PageSize int           `mapstructure:"page_size" yaml:"page_size"`
	Window   time.Duration `mapstructure:"window"    yaml:"window"`
	Timeout  time.Duration `mapstructure:"timeout"   yaml:"timeout"`
	Feeds    []FeedConfig  `mapstructure:"feeds"     yaml:"feeds"`
}

// FeedConfig is one RSS feed used by the rss provider.
type FeedConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
	URL  string `mapstructure:"url"  yaml:"url"`
}

// SentimentConfig holds classifier settings and the label thresholds.
type SentimentConfig struct {
	Backend           string  `mapstructure:"backend"            yaml:"backend"` // "lexicon" or "ollama"
	PositiveThreshold float64 `mapstructure:"positive_threshold" yaml:"positive_threshold"`
	NegativeThreshold float64 `mapstructure:"negative_threshold" yaml:"negative_threshold"`
	OllamaURL         string  `mapstructure:"ollama_url"         yaml:"ollama_url"`
	OllamaModel       string  `mapstructure:"ollama_model"       yaml:"ollama_model"`
}

// InsightConfig holds the aggregate insight thresholds.
type InsightConfig struct {
	PositiveThreshold     float64 `mapstructure:"positive_threshold"      yaml:"positive_threshold"`
	NegativeThreshold     float64 `mapstructure:"negative_threshold"      yaml:"negative_threshold"`
	NegativeCoverageRatio float64 `mapstructure:"negative_coverage_ratio" yaml:"negative_coverage_ratio"`
}

// CategoryKeywords maps a category to the keyword substrings that select it.
// The position of an entry in Config.Categories is its match priority.
type CategoryKeywords struct {
	Name     models.Category `mapstructure:"name"     yaml:"name"`
	Keywords []string        `mapstructure:"keywords" yaml:"keywords"`
}

// DashboardConfig holds refresh settings for the watch loop and the API push.
type DashboardConfig struct {
	DefaultQuery    string        `mapstructure:"default_query"    yaml:"default_query"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval" yaml:"refresh_interval"`
	AutoRefresh     bool          `mapstructure:"auto_refresh"     yaml:"auto_refresh"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// AnalysisConfig is the immutable set of thresholds and keyword rules used
// by the sentiment adapter, the categorizer and the insight generator.
type AnalysisConfig struct {
	PositiveThreshold        float64
	NegativeThreshold        float64
	InsightPositiveThreshold float64
	InsightNegativeThreshold float64
	NegativeCoverageRatio    float64
	Categories               []CategoryKeywords
}

// Provider names.
const (
	ProviderNewsAPI = "newsapi"
	ProviderRSS     = "rss"
)

// Sentiment backends.
const (
	BackendLexicon = "lexicon"
	BackendOllama  = "ollama"
)

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.newsagent/config.yaml (home directory)
//  3. /etc/newsagent/config.yaml (system)
//
// A .env file in the working directory is loaded first when present.
// Environment variables override config file values.
// Format: NEWSAGENT_<SECTION>_<KEY>, e.g., NEWSAGENT_NEWS_API_KEY
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".newsagent"))
	v.AddConfigPath("/etc/newsagent")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file: defaults + env vars.
	}

	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return decode(v)
}

// Default returns the configuration built from defaults only, ignoring
// config files and the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config: decode defaults: %v", err))
	}
	cfg.Categories = DefaultCategories()
	cfg.News.Feeds = DefaultFeeds()
	return &cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("NEWSAGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories()
	}
	if len(cfg.News.Feeds) == 0 {
		cfg.News.Feeds = DefaultFeeds()
	}

	overrideFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets the default values for all config keys.
func setDefaults(v *viper.Viper) {
	// News defaults
	v.SetDefault("news.provider", ProviderNewsAPI)
	v.SetDefault("news.api_key", "")
	v.SetDefault("news.base_url", "https://newsapi.org/v2/everything")
	v.SetDefault("news.language", "en")
	v.SetDefault("news.page_size", 50)
	v.SetDefault("news.window", 24*time.Hour)
	v.SetDefault("news.timeout", 30*time.Second)

	// Sentiment defaults
	v.SetDefault("sentiment.backend", BackendLexicon)
	v.SetDefault("sentiment.positive_threshold", 0.1)
	v.SetDefault("sentiment.negative_threshold", -0.1)
	v.SetDefault("sentiment.ollama_url", "http://localhost:11434")
	v.SetDefault("sentiment.ollama_model", "qwen2.5:7b")

	// Insight defaults
	v.SetDefault("insights.positive_threshold", 0.2)
	v.SetDefault("insights.negative_threshold", -0.2)
	v.SetDefault("insights.negative_coverage_ratio", 0.3)

	// Dashboard defaults
	v.SetDefault("dashboard.default_query", "technology")
	v.SetDefault("dashboard.refresh_interval", 30*time.Second)
	v.SetDefault("dashboard.auto_refresh", false)

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// DefaultCategories returns the built-in category keyword table in
// priority order.
func DefaultCategories() []CategoryKeywords {
	return []CategoryKeywords{
		{Name: models.CategoryTechnology, Keywords: []string{"ai", "tech", "digital", "software", "computer", "internet", "cyber"}},
		{Name: models.CategoryBusiness, Keywords: []string{"stock", "market", "business", "finance", "economy", "trade"}},
		{Name: models.CategoryHealth, Keywords: []string{"health", "medical", "hospital", "doctor", "medicine", "covid"}},
		{Name: models.CategoryEnvironment, Keywords: []string{"climate", "environment", "renewable", "green", "pollution"}},
		{Name: models.CategoryPolitics, Keywords: []string{"government", "political", "election", "policy", "congress"}},
		{Name: models.CategorySports, Keywords: []string{"sport", "game", "team", "player", "match", "tournament"}},
		{Name: models.CategoryEntertainment, Keywords: []string{"movie", "music", "celebrity", "entertainment", "film"}},
	}
}

// DefaultFeeds returns the RSS feeds used when the rss provider is selected
// without an explicit feed list.
func DefaultFeeds() []FeedConfig {
	return []FeedConfig{
		{Name: "BBC News", URL: "https://feeds.bbci.co.uk/news/rss.xml"},
		{Name: "BBC Technology", URL: "https://feeds.bbci.co.uk/news/technology/rss.xml"},
		{Name: "Sky News", URL: "https://feeds.skynews.com/feeds/rss/home.xml"},
	}
}

// Analysis returns the analysis settings derived from the configuration.
// The keyword table is deep-copied so callers cannot mutate cfg through it.
func (c *Config) Analysis() AnalysisConfig {
	cats := make([]CategoryKeywords, len(c.Categories))
	for i, ck := range c.Categories {
		cats[i] = CategoryKeywords{Name: ck.Name, Keywords: append([]string(nil), ck.Keywords...)}
	}
	return AnalysisConfig{
		PositiveThreshold:        c.Sentiment.PositiveThreshold,
		NegativeThreshold:        c.Sentiment.NegativeThreshold,
		InsightPositiveThreshold: c.Insights.PositiveThreshold,
		InsightNegativeThreshold: c.Insights.NegativeThreshold,
		NegativeCoverageRatio:    c.Insights.NegativeCoverageRatio,
		Categories:               cats,
	}
}

// DefaultAnalysis returns the analysis settings of the default configuration.
func DefaultAnalysis() AnalysisConfig {
	return Default().Analysis()
}

// Validate checks the configuration for inconsistent values.
func (c *Config) Validate() error {
	var errs []error

	switch c.News.Provider {
	case ProviderNewsAPI, ProviderRSS:
	default:
		errs = append(errs, fmt.Errorf("news.provider: unknown provider %q", c.News.Provider))
	}
	if c.News.PageSize < 1 || c.News.PageSize > 100 {
		errs = append(errs, fmt.Errorf("news.page_size: %d not in [1,100]", c.News.PageSize))
	}
	if c.News.Window <= 0 {
		errs = append(errs, fmt.Errorf("news.window: must be positive"))
	}

	switch c.Sentiment.Backend {
	case BackendLexicon, BackendOllama:
	default:
		errs = append(errs, fmt.Errorf("sentiment.backend: unknown backend %q", c.Sentiment.Backend))
	}
	if c.Sentiment.NegativeThreshold > c.Sentiment.PositiveThreshold {
		errs = append(errs, fmt.Errorf("sentiment thresholds overlap: negative %.2f > positive %.2f",
			c.Sentiment.NegativeThreshold, c.Sentiment.PositiveThreshold))
	}
	if c.Insights.NegativeThreshold > c.Insights.PositiveThreshold {
		errs = append(errs, fmt.Errorf("insight thresholds overlap: negative %.2f > positive %.2f",
			c.Insights.NegativeThreshold, c.Insights.PositiveThreshold))
	}
	if r := c.Insights.NegativeCoverageRatio; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("insights.negative_coverage_ratio: %.2f not in [0,1]", r))
	}

	seen := make(map[models.Category]bool, len(c.Categories))
	for _, ck := range c.Categories {
		if !ck.Name.Valid() || ck.Name == models.CategoryOther {
			errs = append(errs, fmt.Errorf("categories: %q is not a keyword category", ck.Name))
			continue
		}
		if seen[ck.Name] {
			errs = append(errs, fmt.Errorf("categories: %q listed twice", ck.Name))
		}
		seen[ck.Name] = true
	}

	if c.Dashboard.RefreshInterval <= 0 {
		errs = append(errs, fmt.Errorf("dashboard.refresh_interval: must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
// NEWS_API_KEY is accepted for compatibility with plain .env files.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("NEWS_API_KEY"); key != "" {
		cfg.News.APIKey = key
	}
	if key := os.Getenv("NEWSAGENT_NEWS_API_KEY"); key != "" {
		cfg.News.APIKey = key
	}
}

// loadDotEnv loads path into the process environment. A missing file is
// not an error. Existing variables are never overwritten.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
