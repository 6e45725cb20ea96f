package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	ClickHouse ClickHouseConfig
	Engine     EngineConfig
	Seed       SeedConfig
}

type AppConfig struct {
	Env   string
	Port  int
	Host  string
	Store string // "clickhouse" or "memory"
}

type ClickHouseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type EngineConfig struct {
	MaxConcurrentScans int
	QueryTimeout       time.Duration
}

type SeedConfig struct {
	TotalEvents int
	BatchSize   int
	Seed        int64
	SpanDays    int
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/secintel")

	// Environment variables
	viper.AutomaticEnv()

	bindEnvVars()
	setDefaults()

	// Try to read config file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("Error reading config file", "error", err)
		}
	}

	config := &Config{
		App: AppConfig{
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetInt("APP_PORT"),
			Host:  viper.GetString("APP_HOST"),
			Store: viper.GetString("APP_STORE"),
		},
		ClickHouse: ClickHouseConfig{
			Host:     viper.GetString("CLICKHOUSE_HOST"),
			Port:     viper.GetInt("CLICKHOUSE_PORT"),
			User:     viper.GetString("CLICKHOUSE_USER"),
			Password: viper.GetString("CLICKHOUSE_PASSWORD"),
			Database: viper.GetString("CLICKHOUSE_DATABASE"),
		},
		Engine: EngineConfig{
			MaxConcurrentScans: viper.GetInt("ENGINE_MAX_CONCURRENT_SCANS"),
			QueryTimeout:       viper.GetDuration("ENGINE_QUERY_TIMEOUT"),
		},
		Seed: SeedConfig{
			TotalEvents: viper.GetInt("SEED_TOTAL_EVENTS"),
			BatchSize:   viper.GetInt("SEED_BATCH_SIZE"),
			Seed:        viper.GetInt64("SEED_RANDOM_SEED"),
			SpanDays:    viper.GetInt("SEED_SPAN_DAYS"),
		},
	}

	return config, nil
}

func bindEnvVars() {
	// App
	viper.BindEnv("APP_ENV")
	viper.BindEnv("APP_PORT")
	viper.BindEnv("APP_HOST")
	viper.BindEnv("APP_STORE")

	// ClickHouse
	viper.BindEnv("CLICKHOUSE_HOST")
	viper.BindEnv("CLICKHOUSE_PORT")
	viper.BindEnv("CLICKHOUSE_USER")
	viper.BindEnv("CLICKHOUSE_PASSWORD")
	viper.BindEnv("CLICKHOUSE_DATABASE")

	// Engine
	viper.BindEnv("ENGINE_MAX_CONCURRENT_SCANS")
	viper.BindEnv("ENGINE_QUERY_TIMEOUT")

	// Seeder
	viper.BindEnv("SEED_TOTAL_EVENTS")
	viper.BindEnv("SEED_BATCH_SIZE")
	viper.BindEnv("SEED_RANDOM_SEED")
	viper.BindEnv("SEED_SPAN_DAYS")
}

func setDefaults() {
	// App defaults
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", 8080)
	viper.SetDefault("APP_HOST", "0.0.0.0")
	viper.SetDefault("APP_STORE", "clickhouse")

	// ClickHouse defaults
	viper.SetDefault("CLICKHOUSE_HOST", "localhost")
	viper.SetDefault("CLICKHOUSE_PORT", 9000)
	viper.SetDefault("CLICKHOUSE_USER", "secadmin")
	viper.SetDefault("CLICKHOUSE_DATABASE", "security_intel")

	// Engine defaults
	viper.SetDefault("ENGINE_MAX_CONCURRENT_SCANS", 8)
	viper.SetDefault("ENGINE_QUERY_TIMEOUT", 30*time.Second)

	// Seeder defaults
	viper.SetDefault("SEED_TOTAL_EVENTS", 1_000_000)
	viper.SetDefault("SEED_BATCH_SIZE", 50_000)
	viper.SetDefault("SEED_RANDOM_SEED", 1)
	viper.SetDefault("SEED_SPAN_DAYS", 30)
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func SetupLogger(cfg *Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if cfg.IsDevelopment() {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
