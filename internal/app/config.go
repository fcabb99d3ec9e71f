package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
)

type Config struct {
	Addr         string        `yaml:"addr"`
	JWTSecretKey string        `yaml:"jwt_secret_key"`
	AllowOrigins []string      `yaml:"allow_origins"`
	AvatarFont   string        `yaml:"avatar_font"`
	TaskWorkers  int           `yaml:"task_workers"`
	TaskTimeout  time.Duration `yaml:"task_timeout"`

	Payments struct {
		BaseURL       string `yaml:"base_url"`
		SecretKey     string `yaml:"secret_key"`
		WebhookSecret string `yaml:"webhook_secret"`
	} `yaml:"payments"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
}

// LoadConfig reads an optional YAML file (CONFIG_FILE, default config.yaml)
// and lets environment variables override it.
func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Addr:        ":8080",
		TaskWorkers: 8,
		TaskTimeout: 30 * time.Second,
	}

	path := getEnv("CONFIG_FILE", "config.yaml")
	if raw, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			log.Warn("config file unparseable, falling back to env only", "path", path, "error", err)
		} else {
			log.Info("config file loaded", "path", path)
		}
	}

	cfg.Addr = getEnv("ADDR", cfg.Addr)
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", cfg.JWTSecretKey)
	if cfg.JWTSecretKey == "" {
		cfg.JWTSecretKey = "defaultsecret"
	}
	if origins := getEnv("ALLOW_ORIGINS", ""); origins != "" {
		cfg.AllowOrigins = splitCSV(origins)
	}
	cfg.AvatarFont = getEnv("AVATAR_FONT", cfg.AvatarFont)
	cfg.TaskWorkers = getEnvAsInt("TASK_WORKERS", cfg.TaskWorkers)
	if secs := getEnvAsInt("TASK_TIMEOUT_SECONDS", 0); secs > 0 {
		cfg.TaskTimeout = time.Duration(secs) * time.Second
	}

	cfg.Payments.BaseURL = getEnv("PAYMENTS_BASE_URL", cfg.Payments.BaseURL)
	cfg.Payments.SecretKey = getEnv("PAYMENTS_SECRET_KEY", cfg.Payments.SecretKey)
	cfg.Payments.WebhookSecret = getEnv("PAYMENTS_WEBHOOK_SECRET", cfg.Payments.WebhookSecret)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)

	return cfg
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
