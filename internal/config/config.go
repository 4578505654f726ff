package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	APIBaseURL string
	SessionDSN string
	LogFile    string
	LogLevel   string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] could not load .env: %v", err)
	}

	cfg := Config{
		Port:       getEnv("PORT", "8080"),
		APIBaseURL: getEnv("API_BASE_URL", "http://127.0.0.1:8000"),
		SessionDSN: getEnv("SESSION_DSN", "shopfront.db"), // sqlite file in project root
		LogFile:    getEnv("LOG_FILE", "./shopfront.log"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}
	log.Printf("[config] PORT=%s API_BASE_URL=%s SESSION_DSN=%s LOG_FILE=%s LOG_LEVEL=%s",
		cfg.Port, cfg.APIBaseURL, cfg.SessionDSN, cfg.LogFile, cfg.LogLevel)
	return cfg
}
