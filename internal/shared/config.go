package shared

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv      string
	DBDriver    string // sqlite | mysql
	SQLitePath  string
	MySQLDSN    string
	DataDir     string // document (mirror) store directory
	MetricsAddr string
	RedisAddr   string // empty disables the query cache
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration
	DBRateRPS   int // >0 paces a network-backed relational store
	DBRetries   int // connect-time ping attempts
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	return Config{
		AppEnv:      env("APP_ENV", "prod"),
		DBDriver:    env("DB_DRIVER", "sqlite"),
		SQLitePath:  env("SQLITE_PATH", "data/silaf_hotel.db"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/silaf?charset=utf8mb4,utf8&loc=UTC"),
		DataDir:     env("DATA_DIR", "data/files"),
		MetricsAddr: env("METRICS_ADDR", ""),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		DBRateRPS:   atoi("DB_RPS", 0),
		DBRetries:   atoi("DB_RETRIES", 0),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
