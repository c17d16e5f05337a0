package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIPort  string `yaml:"api_port"`
	LogLevel string `yaml:"log_level"`

	OpenAIURL    string `yaml:"openai_url"`
	OpenAIAPIKey string `yaml:"openai_api_key"`
	OpenAIModel  string `yaml:"openai_model"`

	MaxTokens int `yaml:"max_tokens"`

	DailyLimitUSD   float64 `yaml:"daily_limit_usd"`
	MonthlyLimitUSD float64 `yaml:"monthly_limit_usd"`
	CostPerTokenUSD float64 `yaml:"cost_per_token_usd"`

	InterCallDelay    time.Duration `yaml:"inter_call_delay"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`

	LedgerPath    string `yaml:"ledger_path"`
	HistoryDBPath string `yaml:"history_db_path"`
	UploadDir     string `yaml:"upload_dir"`
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		OpenAIURL:    mustEnv("OPENAI_URL", "https://api.openai.com"),
		OpenAIAPIKey: mustEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  mustEnv("OPENAI_MODEL", "gpt-4o-mini"),

		MaxTokens: mustEnvInt("MAX_TOKENS", 3000),

		DailyLimitUSD:   mustEnvFloat("DAILY_LIMIT_USD", 450),
		MonthlyLimitUSD: mustEnvFloat("MONTHLY_LIMIT_USD", 2000),
		CostPerTokenUSD: mustEnvFloat("COST_PER_TOKEN_USD", 0.00001),

		InterCallDelay:    mustEnvDuration("INTER_CALL_DELAY", 500*time.Millisecond),
		RequestsPerSecond: mustEnvFloat("REQUESTS_PER_SECOND", 2),

		LedgerPath:    mustEnv("LEDGER_PATH", "./data/usage_data.json"),
		HistoryDBPath: mustEnv("HISTORY_DB_PATH", "./data/history.db"),
		UploadDir:     mustEnv("UPLOAD_DIR", "./data/uploads"),
	}
}

// FromFile overlays a yaml config file on top of the env-derived config.
// Values present in the file win over env/defaults.
func FromFile(path string) (Config, error) {
	cfg := Load()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
