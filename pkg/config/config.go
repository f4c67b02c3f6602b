package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	MySQLDSN  string
	RedisAddr string
}

func Load() Config {
	return Config{
		AppEnv:    getEnv("APP_ENV", "dev"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		HTTPPort:  getEnvInt("HTTP_PORT", 8080),
		MySQLDSN:  getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/ecommerce?parseTime=true"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
