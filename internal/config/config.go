// Package config 從環境變數（與可選的 .env）讀取服務設定
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

var ErrUnknownDriver = errors.New("unknown STORE_DRIVER")

type (
	Config struct {
		MongoURI        string        `env:"MONGODB_URI"`
		MongoDatabase   string        `env:"MONGODB_DATABASE"`
		DatabaseURL     string        `env:"DATABASE_URL"`
		StoreDriver     string        `env:"STORE_DRIVER" env-default:"mongo"`
		Port            int           `env:"PORT" env-default:"3000"`
		Env             string        `env:"NODE_ENV"`
		LogLevel        string        `env:"LOG_LEVEL" env-default:"info"`
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
		Redis           RedisConfig
	}

	// RedisConfig 只在 Addr 有值時啟用限流
	RedisConfig struct {
		Addr      string        `env:"REDIS_ADDR"`
		Password  string        `env:"REDIS_PASSWORD"`
		DB        int           `env:"REDIS_DB" env-default:"0"`
		RateLimit int           `env:"RATE_LIMIT" env-default:"100"`
		Window    time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"1m"`
	}
)

// dotenvFiles 可在測試中覆寫
var dotenvFiles = []string{".env"}

// Load 先嘗試載入 .env（不存在時忽略），再讀取環境變數。
// 已存在的環境變數不會被 .env 覆蓋。
func Load() (*Config, error) {
	_ = godotenv.Load(dotenvFiles...)

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	switch cfg.StoreDriver {
	case DriverMongo, DriverPostgres:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StoreDriver)
	}
	return cfg, nil
}

// IsDevelopment 決定 500 回應是否帶出錯誤細節
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}
