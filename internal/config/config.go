package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Checkout CheckoutConfig
	Telegram TelegramConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

type LogConfig struct {
	Level string
}

type CheckoutConfig struct {
	FreeDeliveryThreshold int64
	DeliveryFee           int64
	TxTimeout             time.Duration
	MaxRetryAttempts      int
	IdempotencyTTL        time.Duration
	NotifyTimeout         time.Duration
}

type TelegramConfig struct {
	BotToken    string
	APIBaseURL  string
	AdminChatID int64
	AdminIDs    []int64
	InitDataTTL time.Duration
}

// Load reads configuration from an optional YAML file, a .env file and the
// process environment. Environment variables win over the file.
func Load(path string) (*Config, error) {
	// .env is optional, real environment variables take precedence
	_ = godotenv.Load()

	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	setDefaults(v)

	if path != "" {
		if err := mergeFile(v, path); err != nil {
			return nil, err
		}
	}

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetInt("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Checkout: CheckoutConfig{
			FreeDeliveryThreshold: v.GetInt64("CHECKOUT_FREE_DELIVERY_THRESHOLD"),
			DeliveryFee:           v.GetInt64("CHECKOUT_DELIVERY_FEE"),
			MaxRetryAttempts:      v.GetInt("CHECKOUT_MAX_RETRY_ATTEMPTS"),
		},
		Telegram: TelegramConfig{
			BotToken:    v.GetString("TELEGRAM_BOT_TOKEN"),
			APIBaseURL:  v.GetString("TELEGRAM_API_BASE_URL"),
			AdminChatID: v.GetInt64("TELEGRAM_ADMIN_CHAT_ID"),
		},
	}

	durations := []struct {
		key  string
		dest *time.Duration
	}{
		{"DB_CONN_MAX_LIFETIME", &cfg.Database.ConnMaxLifetime},
		{"CHECKOUT_TX_TIMEOUT", &cfg.Checkout.TxTimeout},
		{"CHECKOUT_IDEMPOTENCY_TTL", &cfg.Checkout.IdempotencyTTL},
		{"CHECKOUT_NOTIFY_TIMEOUT", &cfg.Checkout.NotifyTimeout},
		{"TELEGRAM_INIT_DATA_TTL", &cfg.Telegram.InitDataTTL},
	}
	for _, d := range durations {
		parsed, err := time.ParseDuration(v.GetString(d.key))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", d.key, err)
		}
		*d.dest = parsed
	}

	adminIDs, err := parseIDList(v.GetString("TELEGRAM_ADMIN_IDS"))
	if err != nil {
		return nil, fmt.Errorf("parsing TELEGRAM_ADMIN_IDS: %w", err)
	}
	cfg.Telegram.AdminIDs = adminIDs

	if cfg.Checkout.MaxRetryAttempts < 1 {
		cfg.Checkout.MaxRetryAttempts = 1
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "dekorhouse")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "dekorhouse")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CHECKOUT_FREE_DELIVERY_THRESHOLD", 500000)
	v.SetDefault("CHECKOUT_DELIVERY_FEE", 25000)
	v.SetDefault("CHECKOUT_TX_TIMEOUT", "5s")
	v.SetDefault("CHECKOUT_MAX_RETRY_ATTEMPTS", 3)
	v.SetDefault("CHECKOUT_IDEMPOTENCY_TTL", "24h")
	v.SetDefault("CHECKOUT_NOTIFY_TIMEOUT", "10s")
	v.SetDefault("TELEGRAM_BOT_TOKEN", "")
	v.SetDefault("TELEGRAM_API_BASE_URL", "https://api.telegram.org")
	v.SetDefault("TELEGRAM_ADMIN_CHAT_ID", 0)
	v.SetDefault("TELEGRAM_ADMIN_IDS", "")
	v.SetDefault("TELEGRAM_INIT_DATA_TTL", "24h")
}

// mergeFile loads a flat YAML document whose keys use the same names as the
// environment variables.
func mergeFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var values map[string]any
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&values); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	normalized := make(map[string]any, len(values))
	for k, val := range values {
		normalized[strings.ToUpper(k)] = val
	}

	if err := v.MergeConfigMap(normalized); err != nil {
		return fmt.Errorf("merging config file: %w", err)
	}
	return nil
}

func parseIDList(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
