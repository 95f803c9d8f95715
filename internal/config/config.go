package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	API         struct {
		BaseURL string `env:"BASE_URL" envDefault:"http://localhost:5000/api"`
		Timeout int    `env:"TIMEOUT" envDefault:"30"`
	} `envPrefix:"API_"`
	Session struct {
		Backend string `env:"BACKEND" envDefault:"file"` // file, redis 或 memory
		File    string `env:"FILE"`
	} `envPrefix:"SESSION_"`
	Redis struct {
		Host             string `env:"HOST" envDefault:"localhost"`
		Port             int    `env:"PORT" envDefault:"6379"`
		Password         string `env:"PASSWORD"`
		DB               int    `env:"DB" envDefault:"0"`
		KeyPrefix        string `env:"KEY_PREFIX" envDefault:"gestor:"`
		OperationTimeout int    `env:"OPERATION_TIMEOUT" envDefault:"5"`
	} `envPrefix:"REDIS_"`
	UI struct {
		NoticeDuration time.Duration `env:"NOTICE_DURATION" envDefault:"3s"`
		CreateMode     string        `env:"CREATE_MODE" envDefault:"append"` // append 或 refetch
	} `envPrefix:"UI_"`
	Stub struct {
		Port            string `env:"PORT" envDefault:"5000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
		JWT             struct {
			Expiration int    `env:"EXPIRATION" envDefault:"30"` // 分钟
			Secret     string `env:"SECRET" envDefault:"dev-secret-change-me"`
		} `envPrefix:"JWT_"`
		// DSN 为空时使用内存存储
		Database struct {
			DSN            string `env:"DSN"`
			ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
			QueryTimeout   int    `env:"QUERY_TIMEOUT" envDefault:"10"`
			MaxOpenConns   int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
			MaxIdleConns   int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
			MaxIdleTime    int    `env:"MAX_IDLE_TIME" envDefault:"60"`
		} `envPrefix:"DATABASE_"`
		InitialAdmin struct {
			Username string `env:"USERNAME" envDefault:"admin"`
			Password string `env:"PASSWORD" envDefault:"admin123"`
			Email    string `env:"EMAIL" envDefault:"admin@example.com"`
		} `envPrefix:"INITIAL_ADMIN_"`
	} `envPrefix:"STUB_"`
}

func LoadConfig() (*Config, error) {
	// .env 文件是可选的
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Session.Backend {
	case "file", "redis", "memory":
	default:
		return errors.New("SESSION_BACKEND must be one of file, redis, memory")
	}
	switch c.UI.CreateMode {
	case "append", "refetch":
	default:
		return errors.New("UI_CREATE_MODE must be append or refetch")
	}
	if c.API.Timeout <= 0 {
		return errors.New("API_TIMEOUT must be positive")
	}
	if c.Environment == "production" && c.Stub.JWT.Secret == "dev-secret-change-me" {
		return errors.New("STUB_JWT_SECRET must be changed in production")
	}
	return nil
}
