package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port              string
	DatabaseURL       string
	DBMaxConns        int
	JWTSecret         string
	JWTExpiresMinutes int
}

func Load() Config {
	_ = godotenv.Load()

	port := getEnv("PORT", "8080")
	dbURL := getEnv("DATABASE_URL", "")
	dbMaxConns := getEnvInt("DB_MAX_CONNS", 10)
	jwtSecret := getEnv("JWT_SECRET", "dev-secret-change-me")
	jwtExp := getEnvInt("JWT_EXPIRES_MINUTES", 60)

	if dbURL == "" {
		logrus.Fatal("DATABASE_URL is required")
	}

	return Config{
		Port:              port,
		DatabaseURL:       dbURL,
		DBMaxConns:        dbMaxConns,
		JWTSecret:         jwtSecret,
		JWTExpiresMinutes: jwtExp,
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
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
