package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	SinkURL             string
	SinkSecret          string
	Port                string
	HTTPTimeout         time.Duration
	LogLevel            slog.Level
	MaxUploadBytes      int64
	SynonymsFile        string
	ConversionThreshold float64
}

// Load reads .env files present in the working directory (process env
// wins) and then builds the config from the environment.
func Load() Config {
	loadEnvFiles(slog.Default(), ".env", ".env.local")
	return FromEnv()
}

// loadEnvFiles skips missing files; a file that exists but does not parse
// is logged and otherwise ignored.
func loadEnvFiles(log *slog.Logger, files ...string) {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			log.Warn("env file", slog.String("path", f), slog.String("err", err.Error()))
		}
	}
}

func FromEnv() Config {
	to := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	return Config{
		SinkURL:             os.Getenv("SINK_URL"),
		SinkSecret:          os.Getenv("SINK_SECRET"),
		Port:                envOr("PORT", "8080"),
		HTTPTimeout:         to,
		LogLevel:            lvl,
		MaxUploadBytes:      int64(envInt("MAX_UPLOAD_BYTES", 10<<20)),
		SynonymsFile:        os.Getenv("SYNONYMS_FILE"),
		ConversionThreshold: envFloat("CONVERSION_RATE_THRESHOLD", 3.0),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}
