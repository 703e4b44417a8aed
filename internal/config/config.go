package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort        string        `env:"HTTP_PORT" envDefault:"8000"`
	ModelPath       string        `env:"MODEL_PATH" envDefault:"weights/best_model.json"`
	EncodersPath    string        `env:"ENCODERS_PATH" envDefault:"encoders/label_encoders.json"`
	DatasetPath     string        `env:"DATASET_PATH" envDefault:"data/train.csv"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"LOG_FORMAT" envDefault:"json"`
	LogFile       string `env:"LOG_FILE"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	DatabaseURL   string `env:"DATABASE_URL"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	PredictRateLimit  int           `env:"PREDICT_RATE_LIMIT" envDefault:"0"`
	PredictRateWindow time.Duration `env:"PREDICT_RATE_WINDOW" envDefault:"1m"`

	// solo aplican cuando REDIS_ADDR esta definido
	PredictRateRedisTimeout time.Duration `env:"PREDICT_RATE_REDIS_TIMEOUT" envDefault:"500ms"`
	PredictRateRedisPrefix  string        `env:"PREDICT_RATE_REDIS_PREFIX" envDefault:"predict:rl:"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.CORSAllowedOrigins = trimAll(cfg.CORSAllowedOrigins)
	return &cfg, nil
}

// AllowAllOrigins indica si CORS acepta cualquier origen.
func (c *Config) AllowAllOrigins() bool {
	if len(c.CORSAllowedOrigins) == 0 {
		return true
	}
	for _, o := range c.CORSAllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
