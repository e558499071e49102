package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App       AppConfig                `yaml:"app"`
	Provider  ProviderConfig           `yaml:"provider"`
	Browser   BrowserConfig            `yaml:"browser"`
	Memory    MemoryConfig             `yaml:"memory"`
	Gateways  map[string]GatewayConfig `yaml:"gateways"`
	Scheduler SchedulerConfig          `yaml:"scheduler"`
	Policy    PolicyConfig             `yaml:"policy"`
}

type AppConfig struct {
	Name string `yaml:"name"`
}

type ProviderConfig struct {
	Name    string `yaml:"name"` // openai, openrouter
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url,omitempty"`
	Enabled bool   `yaml:"enabled"`
}

type BrowserConfig struct {
	Headless             bool   `yaml:"headless"`
	ActionTimeoutSeconds int    `yaml:"action_timeout_seconds"`
	NavTimeoutSeconds    int    `yaml:"nav_timeout_seconds"`
	UserAgent            string `yaml:"user_agent,omitempty"`
}

type MemoryConfig struct {
	Path string `yaml:"path"`
}

type GatewayConfig struct {
	Token   string `yaml:"token"`
	Enabled bool   `yaml:"enabled"`
}

type SchedulerConfig struct {
	Enabled             bool `yaml:"enabled"`
	PollIntervalSeconds int  `yaml:"poll_interval_seconds"`
}

type PolicyConfig struct {
	DeniedURLs    []string `yaml:"denied_urls"`
	DeniedTargets []string `yaml:"denied_targets"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %v", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a usable configuration when no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "saarthi"
	}
	if c.Browser.ActionTimeoutSeconds == 0 {
		c.Browser.ActionTimeoutSeconds = 30
	}
	if c.Browser.NavTimeoutSeconds == 0 {
		c.Browser.NavTimeoutSeconds = 60
	}
	if c.Memory.Path == "" {
		c.Memory.Path = "saarthi.db"
	}
	if c.Scheduler.PollIntervalSeconds == 0 {
		c.Scheduler.PollIntervalSeconds = 30
	}
	// Environment fallback so a bare install works without a config file.
	if c.Provider.APIKey == "" {
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			c.Provider.APIKey = key
			c.Provider.Enabled = true
			if c.Provider.Name == "" {
				c.Provider.Name = "openai"
			}
		}
	}
	if c.Provider.Model == "" {
		c.Provider.Model = "gpt-4o-mini"
	}
}

func (c *Config) ActionTimeout() time.Duration {
	return time.Duration(c.Browser.ActionTimeoutSeconds) * time.Second
}

func (c *Config) NavTimeout() time.Duration {
	return time.Duration(c.Browser.NavTimeoutSeconds) * time.Second
}

// GetTelegramConfig returns telegram config if enabled.
func (c *Config) GetTelegramConfig() (GatewayConfig, bool) {
	tg, ok := c.Gateways["telegram"]
	if ok && tg.Enabled && tg.Token != "" {
		return tg, true
	}
	return GatewayConfig{}, false
}
