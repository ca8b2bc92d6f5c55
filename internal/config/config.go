package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	CORSOrigins []string

	// Upload handling
	MaxFileSize  int64
	AllowedTypes []string

	// Generation pipeline
	MinTextLength int
	MaxQuestions  int
	MaxTopics     int

	// Remote AI providers
	OpenAIAPIKey      string
	OpenAIAPIURL      string
	OpenAIModel       string
	GeminiAPIKey      string
	GeminiModel       string
	GeminiTier        string
	RemoteTimeout     int // seconds, per remote call
	RemoteConcurrency int
	RemoteRetries     int

	// Extraction cache
	CacheTTL      int // seconds
	CacheCleanup  int // seconds
	CacheEnabled  bool

	// HTTP rate limiting
	RateLimitReqs   int
	RateLimitWindow int

	// Telemetry
	OTLPEndpoint   string
	TracingEnabled bool
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"), ","),

		MaxFileSize:  getEnvInt64("MAX_FILE_SIZE", 20971520), // 20MB upload cap
		AllowedTypes: strings.Split(getEnv("ALLOWED_FILE_TYPES", "application/pdf"), ","),

		MinTextLength: getEnvInt("MIN_TEXT_LENGTH", 100),
		MaxQuestions:  getEnvInt("MAX_QUESTIONS", 20),
		MaxTopics:     getEnvInt("MAX_TOPICS", 20),

		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIAPIURL:      getEnv("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiTier:        getEnv("GEMINI_TIER", "free"),
		RemoteTimeout:     getEnvInt("REMOTE_TIMEOUT", 30),
		RemoteConcurrency: getEnvInt("REMOTE_CONCURRENCY", 4),
		RemoteRetries:     getEnvInt("REMOTE_RETRIES", 2),

		CacheTTL:     getEnvInt("CACHE_TTL", 900),
		CacheCleanup: getEnvInt("CACHE_CLEANUP_INTERVAL", 300),
		CacheEnabled: getEnvBool("CACHE_ENABLED", true),

		RateLimitReqs:   getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow: getEnvInt("RATE_LIMIT_WINDOW", 60),

		OTLPEndpoint:   getEnv("OTLP_ENDPOINT", "localhost:4317"),
		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
	}

	if cfg.MinTextLength <= 0 {
		return nil, fmt.Errorf("MIN_TEXT_LENGTH must be positive")
	}

	if cfg.MaxQuestions <= 0 {
		return nil, fmt.Errorf("MAX_QUESTIONS must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
