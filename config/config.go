package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/loverfish/Social-network/log"
)

type Config struct {
	Port        string
	PostgresURL string
	RedisURL    string
	MediaDir    string
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		PostgresURL: getEnv("POSTGRES_URL", ""),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		MediaDir:    getEnv("MEDIA_DIR", "media"),
	}

	if cfg.PostgresURL == "" {
		log.Error.Fatalln("$POSTGRES_URL not set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
