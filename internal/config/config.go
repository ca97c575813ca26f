package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Questrade struct {
		LoginURL     string `yaml:"login_url"`
		RefreshToken string `yaml:"refresh_token"`
	} `yaml:"questrade"`
	AlphaVantage struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"alphavantage"`
	Screen struct {
		Tickers        []string `yaml:"tickers"`
		SMAPeriods     []int    `yaml:"sma_periods"`
		PivotLookback  int      `yaml:"pivot_lookback"`
		VolumeLookback int      `yaml:"volume_lookback"`
	} `yaml:"screen"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	HTTP struct {
		MaxRetries    int   `yaml:"max_retries"`
		BackoffMS     int   `yaml:"backoff_ms"`
		RetryStatuses []int `yaml:"retry_statuses"`
	} `yaml:"http"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides; secrets normally arrive this way.
	if v := os.Getenv("QUESTRADE_REFRESH_TOKEN"); v != "" {
		cfg.Questrade.RefreshToken = v
	}
	if v := os.Getenv("QUESTRADE_LOGIN_URL"); v != "" {
		cfg.Questrade.LoginURL = v
	}
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		cfg.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if len(cfg.Screen.SMAPeriods) == 0 {
		cfg.Screen.SMAPeriods = []int{20, 200}
	}
	if cfg.Screen.PivotLookback == 0 {
		cfg.Screen.PivotLookback = 20
	}
	if cfg.Screen.VolumeLookback == 0 {
		cfg.Screen.VolumeLookback = 20
	}
	if cfg.Schedule.DailyCron == "" {
		// Weekdays, shortly before the open (Eastern).
		cfg.Schedule.DailyCron = "0 0 9 * * 1-5"
	}
	if cfg.HTTP.MaxRetries == 0 {
		cfg.HTTP.MaxRetries = 3
	}
	if cfg.HTTP.BackoffMS == 0 {
		cfg.HTTP.BackoffMS = 300
	}
	if len(cfg.HTTP.RetryStatuses) == 0 {
		cfg.HTTP.RetryStatuses = []int{500, 502, 504}
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Questrade.RefreshToken == "" {
		return fmt.Errorf("questrade.refresh_token is required")
	}
	if c.AlphaVantage.APIKey == "" {
		return fmt.Errorf("alphavantage.api_key is required")
	}
	if len(c.Screen.Tickers) == 0 {
		return fmt.Errorf("screen.tickers cannot be empty")
	}
	if c.Screen.PivotLookback < 0 || c.Screen.VolumeLookback < 0 {
		return fmt.Errorf("screen lookbacks must be positive")
	}
	for _, p := range c.Screen.SMAPeriods {
		if p <= 0 {
			return fmt.Errorf("screen.sma_periods must be positive, got %d", p)
		}
	}
	return nil
}
