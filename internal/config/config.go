package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	hostEnv             = "CALC_HOST"
	portEnv             = "CALC_PORT"
	dbPathEnv           = "CALC_DB_PATH"
	logLevelEnv         = "CALC_LOG_LEVEL"
	rateLimitEnabledEnv = "CALC_RATE_LIMIT_ENABLED"
	rateLimitRPSEnv     = "CALC_RATE_LIMIT_RPS"
	rateLimitBurstEnv   = "CALC_RATE_LIMIT_BURST"
	rateLimitIdleTTLEnv = "CALC_RATE_LIMIT_IDLE_TTL"
	historyQueueEnv     = "CALC_HISTORY_QUEUE"
)

var defaultPaths = []string{
	"configs/config.yaml",
	"config.yaml",
}

type Config struct {
	Host      string          `yaml:"host"`
	Port      int             `yaml:"port"`
	DBPath    string          `yaml:"dbPath"`
	LogLevel  string          `yaml:"logLevel"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	History   HistoryConfig   `yaml:"history"`
}

type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
	// IdleTTL is how long a client bucket survives without requests.
	IdleTTL time.Duration `yaml:"idleTTL"`
}

type HistoryConfig struct {
	QueueSize int `yaml:"queueSize"`
}

func Default() Config {
	return Config{
		Host:     "http://localhost",
		Port:     8080,
		DBPath:   "store.db",
		LogLevel: "info",
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     30,
			Burst:   60,
			IdleTTL: 10 * time.Minute,
		},
		History: HistoryConfig{QueueSize: 64},
	}
}

// Load reads the first readable file among path and the default locations,
// then applies environment overrides. Broken files are skipped.
func Load(path string) Config {
	cfg := Default()

	candidates := defaultPaths
	if strings.TrimSpace(path) != "" {
		candidates = []string{path}
	}
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		parsed := Default()
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			continue
		}
		cfg = parsed
		break
	}

	applyEnv(&cfg)
	cfg.normalize()
	return cfg
}

func applyEnv(cfg *Config) {
	if raw := strings.TrimSpace(os.Getenv(hostEnv)); raw != "" {
		cfg.Host = raw
	}
	if raw := strings.TrimSpace(os.Getenv(portEnv)); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			cfg.Port = parsed
		}
	}
	if raw, ok := os.LookupEnv(dbPathEnv); ok {
		cfg.DBPath = strings.TrimSpace(raw)
	}
	if raw := strings.TrimSpace(os.Getenv(logLevelEnv)); raw != "" {
		cfg.LogLevel = raw
	}
	if raw := strings.TrimSpace(os.Getenv(rateLimitEnabledEnv)); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			cfg.RateLimit.Enabled = parsed
		}
	}
	if raw := strings.TrimSpace(os.Getenv(rateLimitRPSEnv)); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
			cfg.RateLimit.RPS = parsed
		}
	}
	if raw := strings.TrimSpace(os.Getenv(rateLimitBurstEnv)); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			cfg.RateLimit.Burst = parsed
		}
	}
	if raw := strings.TrimSpace(os.Getenv(rateLimitIdleTTLEnv)); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			cfg.RateLimit.IdleTTL = parsed
		}
	}
	if raw := strings.TrimSpace(os.Getenv(historyQueueEnv)); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			cfg.History.QueueSize = parsed
		}
	}
}

func (c *Config) normalize() {
	def := Default()
	if c.Port <= 0 {
		c.Port = def.Port
	}
	if c.RateLimit.RPS <= 0 {
		c.RateLimit.RPS = def.RateLimit.RPS
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = def.RateLimit.Burst
	}
	if c.RateLimit.IdleTTL <= 0 {
		c.RateLimit.IdleTTL = def.RateLimit.IdleTTL
	}
	if c.History.QueueSize <= 0 {
		c.History.QueueSize = def.History.QueueSize
	}
}

// SlogLevel falls back to info for unknown names.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
