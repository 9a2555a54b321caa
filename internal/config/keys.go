package config

import "os"

// APIKeySource represents where an API key comes from.
type APIKeySource string

const (
	KeySourceEnv    APIKeySource = "env"
	KeySourceConfig APIKeySource = "config"
	KeySourceNone   APIKeySource = "none"
)

// KeyStatus represents the status of an API key.
type KeyStatus struct {
	Name   string       `json:"name"`
	Source APIKeySource `json:"source"`
	IsSet  bool         `json:"is_set"`
	Masked string       `json:"masked,omitempty"` // e.g., "abc...xyz"
}

// CheckAPIKeys returns the status of all credentials the agent can use.
func CheckAPIKeys(cfg *Config) []KeyStatus {
	return []KeyStatus{
		checkKey("NewsAPI Key", cfg.News.APIKey, "NEWSAGENT_NEWS_API_KEY", "NEWS_API_KEY"),
	}
}

// DemoMode reports whether live retrieval will be skipped because the
// selected provider needs credentials that are not configured.
func DemoMode(cfg *Config) bool {
	return cfg.News.Provider == ProviderNewsAPI && cfg.News.APIKey == ""
}

// checkKey checks if a key is set and where it came from.
func checkKey(name, value string, envVars ...string) KeyStatus {
	status := KeyStatus{
		Name:  name,
		IsSet: value != "",
	}

	if value == "" {
		status.Source = KeySourceNone
		return status
	}

	status.Source = KeySourceConfig
	for _, env := range envVars {
		if os.Getenv(env) != "" {
			status.Source = KeySourceEnv
			break
		}
	}
	status.Masked = maskKey(value)
	return status
}

// maskKey masks an API key for display, showing only first 3 and last 3 chars.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:3] + "..." + key[len(key)-3:]
}

// Redacted returns a copy of cfg safe to show to clients: secrets are
// masked and slices are not shared with cfg.
func (c *Config) Redacted() *Config {
	out := *c
	if out.News.APIKey != "" {
		out.News.APIKey = maskKey(out.News.APIKey)
	}
	out.News.Feeds = append([]FeedConfig(nil), c.News.Feeds...)
	out.API.CORSOrigins = append([]string(nil), c.API.CORSOrigins...)
	out.Categories = c.Analysis().Categories
	return &out
}
