package config

import "time"

type ServiceConfig struct {
	Name        string           `yaml:"name"`
	Environment string           `yaml:"environment"`
	Version     string           `yaml:"version"`
	ClientURL   string           `yaml:"client_url"`
	Supabase    SupabaseConfig   `yaml:"supabase"`
	OpenRouter  OpenRouterConfig `yaml:"openrouter"`
}

type SupabaseConfig struct {
	JWTSecret  string `yaml:"jwt_secret"`
	ProjectURL string `yaml:"project_url"`
	APIKey     string `yaml:"api_key"`
}

// OpenRouterConfig holds the settings for the summary generation provider.
type OpenRouterConfig struct {
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int64         `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`
}
