// Package config handles application configuration using Viper.
// Viper supports YAML files, environment variables, and defaults, merged in priority order.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration struct. `mapstructure` tags tell Viper how
// to map YAML/env keys to struct fields.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	CORS      CORSConfig      `mapstructure:"cors"`
	LLM       LLMConfig       `mapstructure:"llm"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// TrustedProxies lists proxy IPs/CIDRs whose X-Forwarded-For is believed.
	// Empty means the client IP is always the TCP peer.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// AuthConfig lists the keys accepted by the JSON API. Empty disables auth.
type AuthConfig struct {
	APIKeys []string `mapstructure:"api_keys"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LLMConfig struct {
	// Provider selects the structured-completion backend: gemini, anthropic or openai.
	Provider    string         `mapstructure:"provider"`
	Temperature float64        `mapstructure:"temperature"`
	Gemini      ProviderConfig `mapstructure:"gemini"`
	Anthropic   ProviderConfig `mapstructure:"anthropic"`
	OpenAI      ProviderConfig `mapstructure:"openai"`
}

// ProviderConfig names the model and the environment variable holding the key.
// The key itself is never stored here: it is read from the environment on every call.
type ProviderConfig struct {
	Model     string `mapstructure:"model"`
	APIKeyEnv string `mapstructure:"api_key_env"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults apply when neither file nor env provides a value
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("auth.api_keys", []string{})
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.gemini.model", "gemini-2.5-flash")
	v.SetDefault("llm.gemini.api_key_env", "API_KEY")
	v.SetDefault("llm.anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("llm.anthropic.api_key_env", "ANTHROPIC_API_KEY")
	v.SetDefault("llm.openai.model", "gpt-4o")
	v.SetDefault("llm.openai.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("rate_limit.requests_per_second", 1)
	v.SetDefault("rate_limit.burst", 5)
	v.SetDefault("log.level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Read config file (ignore "not found": defaults + env are enough)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// THERAPIST_ prefix + nested keys: THERAPIST_SERVER_PORT=9090 → server.port=9090
	v.SetEnvPrefix("THERAPIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.LLM.Provider {
	case "gemini", "anthropic", "openai":
	default:
		return fmt.Errorf("unknown llm provider %q: must be gemini, anthropic or openai", c.LLM.Provider)
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit.requests_per_second and rate_limit.burst must be positive")
	}
	return nil
}

// Address returns the listen address string like "0.0.0.0:8080".
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Active returns the configuration of the selected provider.
func (l LLMConfig) Active() ProviderConfig {
	switch l.Provider {
	case "anthropic":
		return l.Anthropic
	case "openai":
		return l.OpenAI
	default:
		return l.Gemini
	}
}
