// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type FetchMode string

const (
	// ModeHTTP fetches the page with a plain HTTP GET.
	ModeHTTP FetchMode = "http"
	// ModeBrowser renders the page in a headless browser before reading it.
	ModeBrowser FetchMode = "browser"
)

// Source describes one careers page to watch. Immutable after Load.
type Source struct {
	Name string    `yaml:"name"`
	URL  string    `yaml:"url"`
	Mode FetchMode `yaml:"mode"`
	// ReadySelector is the CSS selector that must be present before the
	// rendered page is considered usable. Browser mode only.
	ReadySelector string `yaml:"ready_selector"`
	// Strategy names the extraction strategy for this source. Defaults to
	// the source name.
	Strategy string `yaml:"strategy"`
	Referer  string `yaml:"referer"`
}

type Config struct {
	DataDir             string   `yaml:"data_dir"`
	UserAgent           string   `yaml:"user_agent"`
	FetchTimeoutSeconds int      `yaml:"fetch_timeout_seconds"`
	Sources             []Source `yaml:"sources"`
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Override with env vars
	if dir := os.Getenv("CAREERWATCH_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	if ua := os.Getenv("CAREERWATCH_USER_AGENT"); ua != "" {
		cfg.UserAgent = ua
	}

	// Set default values if not set
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.FetchTimeoutSeconds <= 0 {
		cfg.FetchTimeoutSeconds = 20
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("config: no sources defined")
	}
	seen := make(map[string]bool, len(c.Sources))
	for i := range c.Sources {
		src := &c.Sources[i]
		if src.Name == "" {
			return fmt.Errorf("config: source %d has no name", i)
		}
		if seen[src.Name] {
			return fmt.Errorf("config: duplicate source %q", src.Name)
		}
		seen[src.Name] = true
		if src.URL == "" {
			return fmt.Errorf("config: source %q has no url", src.Name)
		}
		switch src.Mode {
		case ModeHTTP, ModeBrowser:
		case "":
			src.Mode = ModeHTTP
		default:
			return fmt.Errorf("config: source %q has unknown mode %q", src.Name, src.Mode)
		}
		if src.Mode == ModeBrowser && src.ReadySelector == "" {
			return fmt.Errorf("config: browser source %q has no ready_selector", src.Name)
		}
		if src.Strategy == "" {
			src.Strategy = src.Name
		}
	}
	return nil
}

// FetchTimeout is the per-request deadline for both fetch modes.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}
