package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	GSTRate      float64
	CacheTTL     time.Duration
	RateLimitRPS int
	SeedWorkers  int
	SeedStart    string
	SeedDays     int
}

func Load() Config {
	// .env is a dev convenience; absence is fine.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/villastay?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		GSTRate:      atof("GST_RATE", 0.18),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		RateLimitRPS: atoi("RATE_LIMIT_RPS", 50),
		SeedWorkers:  atoi("SEED_WORKERS", 4),
		SeedStart:    env("SEED_START", "2025-01-10"),
		SeedDays:     atoi("SEED_DAYS", 6),
	}
	if c.GSTRate < 0 || c.GSTRate >= 1 {
		log.Warn().Float64("gst_rate", c.GSTRate).Msg("GST_RATE out of the expected range")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
