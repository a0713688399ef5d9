package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL   string
	AwsAccessKey  string
	AwsSecretKey  string
	AwsRegion     string
	BucketName    string
	OCRAPIURL     string
	OCRLanguage   string
	OCRTimeout    time.Duration
	IngestWorkers int
	QueueSize     int
	JWTSecret     string
	Port          string
}

// LoadConfig loads the environment variables and returns the config.
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		AwsAccessKey:  getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey:  getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:     getEnv("AWS_REGION", "us-east-2"),
		BucketName:    getEnv("BUCKET_NAME", "lexhub-docs"),
		OCRAPIURL:     getEnv("OCR_API_URL", ""),
		OCRLanguage:   getEnv("OCR_LANGUAGE", "en"),
		OCRTimeout:    time.Duration(getEnvInt("OCR_TIMEOUT_SECONDS", 120)) * time.Second,
		IngestWorkers: getEnvInt("INGEST_WORKERS", 2),
		QueueSize:     getEnvInt("INGEST_QUEUE_SIZE", 64),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		Port:          getEnv("PORT", "8080"),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if cfg.OCRAPIURL == "" {
		log.Fatal("OCR_API_URL not set")
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}
