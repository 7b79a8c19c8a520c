// Package config loads agent settings from defaults, an optional config file
// and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Runtime backends for the container adapter.
const (
	RuntimeDocker = "docker"
	RuntimeMemory = "memory"
)

// Config holds all agent settings.
type Config struct {
	ListenAddr     string        `mapstructure:"listen_addr"`
	N8NWebhookURL  string        `mapstructure:"n8n_webhook_url"`
	WebhookTimeout time.Duration `mapstructure:"webhook_timeout"`
	SharedDir      string        `mapstructure:"shared_dir"`
	Runtime        string        `mapstructure:"runtime"`
	BodyLimit      int           `mapstructure:"body_limit"`
	LLM            LLMConfig     `mapstructure:"llm"`
	Log            LogConfig     `mapstructure:"log"`
}

// LLMConfig points at the Ollama server used for chat.
type LLMConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// env maps config keys to the environment variables that override them.
var env = map[string]string{
	"listen_addr":     "LISTEN_ADDR",
	"n8n_webhook_url": "N8N_WEBHOOK_URL",
	"webhook_timeout": "WEBHOOK_TIMEOUT",
	"shared_dir":      "SHARED_DIR",
	"runtime":         "RUNTIME",
	"body_limit":      "BODY_LIMIT",
	"llm.base_url":    "OLLAMA_HOST",
	"llm.model":       "LLM_MODEL",
	"llm.timeout":     "LLM_TIMEOUT",
	"log.level":       "LOG_LEVEL",
	"log.format":      "LOG_FORMAT",
}

// New returns a viper instance with defaults and environment bindings set.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("listen_addr", ":8000")
	v.SetDefault("n8n_webhook_url", "http://host.docker.internal:5678")
	v.SetDefault("webhook_timeout", 5*time.Second)
	v.SetDefault("shared_dir", "/app/shared")
	v.SetDefault("runtime", RuntimeDocker)
	v.SetDefault("body_limit", 64<<20)
	v.SetDefault("llm.base_url", "http://localhost:11434")
	v.SetDefault("llm.model", "llama3.1")
	v.SetDefault("llm.timeout", 120*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	for key, name := range env {
		// BindEnv only fails when called without a key.
		_ = v.BindEnv(key, name)
	}
	return v
}

// Load reads configFile (if non-empty) on top of the defaults and returns the
// validated result. Environment variables win over the file.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if v == nil {
		v = New()
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.N8NWebhookURL = strings.TrimRight(cfg.N8NWebhookURL, "/")
	cfg.LLM.BaseURL = strings.TrimRight(cfg.LLM.BaseURL, "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings for obvious mistakes.
func (c *Config) Validate() error {
	var errs []error
	if err := validateURL("n8n_webhook_url", c.N8NWebhookURL); err != nil {
		errs = append(errs, err)
	}
	if err := validateURL("llm.base_url", c.LLM.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if c.Runtime != RuntimeDocker && c.Runtime != RuntimeMemory {
		errs = append(errs, fmt.Errorf("runtime must be %q or %q, got %q", RuntimeDocker, RuntimeMemory, c.Runtime))
	}
	if strings.TrimSpace(c.SharedDir) == "" {
		errs = append(errs, errors.New("shared_dir must not be empty"))
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		errs = append(errs, errors.New("llm.model must not be empty"))
	}
	if c.WebhookTimeout <= 0 {
		errs = append(errs, errors.New("webhook_timeout must be positive"))
	}
	if c.LLM.Timeout <= 0 {
		errs = append(errs, errors.New("llm.timeout must be positive"))
	}
	if c.BodyLimit <= 0 {
		errs = append(errs, errors.New("body_limit must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func validateURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", key, raw)
	}
	return nil
}
