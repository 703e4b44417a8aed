package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "8000" {
		t.Fatalf("expected port 8000, got %q", cfg.HTTPPort)
	}
	if cfg.ModelPath != "weights/best_model.json" || cfg.EncodersPath != "encoders/label_encoders.json" || cfg.DatasetPath != "data/train.csv" {
		t.Fatalf("unexpected artifact paths: %+v", cfg)
	}
	if cfg.PredictRateLimit != 0 || cfg.PredictRateWindow != time.Minute || cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected limits: %+v", cfg)
	}
	if cfg.PredictRateRedisTimeout != 500*time.Millisecond || cfg.PredictRateRedisPrefix != "predict:rl:" {
		t.Fatalf("unexpected redis limiter config: %+v", cfg)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" || cfg.LogMaxSizeMB != 100 {
		t.Fatalf("unexpected log config: %+v", cfg)
	}
	if !cfg.AllowAllOrigins() {
		t.Fatalf("expected all origins by default, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("MODEL_PATH", "/srv/model.json")
	t.Setenv("PREDICT_RATE_LIMIT", "30")
	t.Setenv("PREDICT_RATE_WINDOW", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com ,")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("PREDICT_RATE_REDIS_TIMEOUT", "2s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "9090" || cfg.ModelPath != "/srv/model.json" || cfg.RedisDB != 2 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.PredictRateLimit != 30 || cfg.PredictRateWindow != 30*time.Second || cfg.PredictRateRedisTimeout != 2*time.Second {
		t.Fatalf("unexpected rate limit config: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://app.example.com" {
		t.Fatalf("unexpected origins: %q", cfg.CORSAllowedOrigins)
	}
	if cfg.AllowAllOrigins() {
		t.Fatalf("explicit origins must not allow all")
	}
}

func TestLoadConfigInvalidValue(t *testing.T) {
	t.Setenv("PREDICT_RATE_WINDOW", "soon")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
