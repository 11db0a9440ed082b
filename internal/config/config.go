package config

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DatabaseURL string
	JWKSURL     string
	RedisURL    string
	LogLevel    string
	LogFormat   string
}

func Load() Config {
	// a missing .env is fine, the environment may be set directly
	_ = godotenv.Load()

	port := flag.String("port", "8080", "HTTP port")
	flag.Parse()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		panic("DATABASE_URL environment variable is required")
	}

	jwksURL := os.Getenv("AUTH_JWKS_URL")
	if jwksURL == "" {
		panic("AUTH_JWKS_URL environment variable is required")
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}

	return Config{
		Addr:        ":" + *port,
		DatabaseURL: databaseURL,
		JWKSURL:     jwksURL,
		RedisURL:    os.Getenv("REDIS_URL"),
		LogLevel:    logLevel,
		LogFormat:   logFormat,
	}
}
