package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName      string
	DatabaseURL  string
	ServerPort   string
	LogLevel     string
	KafkaAddress string
	ESURL        string
	ESUser       string
	ESPassword   string
}

func getenvDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v, using system environment variables", err)
	}

	cfg := &Config{
		AppName:      getenvDefault("APP_NAME", "webshop"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		ServerPort:   getenvDefault("SERVER_PORT", "8080"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		KafkaAddress: os.Getenv("KAFKA_ADDRESS"),
		ESURL:        os.Getenv("ES_URL"),
		ESUser:       os.Getenv("ES_USER"),
		ESPassword:   os.Getenv("ES_PASSWORD"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("missing required env DATABASE_URL")
	}

	return cfg, nil
}
