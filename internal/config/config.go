package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Fetcher   FetcherConfig
	Citation  CitationConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// MongoDBConfig holds MongoDB connection configuration
type MongoDBConfig struct {
	URI            string
	Database       string
	CollectionName string
	Timeout        time.Duration
}

// FetcherConfig holds page fetcher configuration
type FetcherConfig struct {
	RequestTimeout time.Duration
	UserAgent      string
}

// CitationConfig holds API keys and pacing for real citation checks.
// Empty keys leave the corresponding source unconfigured.
type CitationConfig struct {
	OpenAIKey       string
	OpenAIModel     string
	PerplexityKey   string
	PerplexityModel string
	BraveKey        string
	QueryInterval   time.Duration
	RequestTimeout  time.Duration
}

// AuthConfig holds the accepted subscription API keys
type AuthConfig struct {
	APIKeys []string
}

// RateLimitConfig holds per-client request pacing
type RateLimitConfig struct {
	RequestsPerSecond float64
	BucketSize        int
}

// New creates a new Config with values from environment variables
func New() (*Config, error) {
	port := getEnv("PORT", "9090")
	readTimeout, err := strconv.Atoi(getEnv("READ_TIMEOUT", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := strconv.Atoi(getEnv("WRITE_TIMEOUT", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid WRITE_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := strconv.Atoi(getEnv("SHUTDOWN_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	requestTimeout, err := strconv.Atoi(getEnv("REQUEST_TIMEOUT", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	mongoTimeout, err := strconv.Atoi(getEnv("MONGO_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONGO_TIMEOUT: %w", err)
	}

	queryInterval, err := strconv.Atoi(getEnv("CITATION_QUERY_INTERVAL_MS", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid CITATION_QUERY_INTERVAL_MS: %w", err)
	}

	citationTimeout, err := strconv.Atoi(getEnv("CITATION_TIMEOUT", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid CITATION_TIMEOUT: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "2"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	bucket, err := strconv.Atoi(getEnv("RATE_LIMIT_BUCKET", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BUCKET: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     time.Duration(readTimeout) * time.Second,
			WriteTimeout:    time.Duration(writeTimeout) * time.Second,
			ShutdownTimeout: time.Duration(shutdownTimeout) * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:            getEnv("MONGO_URI", "mongodb://host.docker.internal:27017"),
			Database:       getEnv("MONGO_DB", "ai_visibility"),
			CollectionName: getEnv("MONGO_COLLECTION", "reports"),
			Timeout:        time.Duration(mongoTimeout) * time.Second,
		},
		Fetcher: FetcherConfig{
			RequestTimeout: time.Duration(requestTimeout) * time.Second,
			UserAgent:      getEnv("USER_AGENT", "AIVisibilityBot/1.0"),
		},
		Citation: CitationConfig{
			OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-search-preview"),
			PerplexityKey:   getEnv("PERPLEXITY_API_KEY", ""),
			PerplexityModel: getEnv("PERPLEXITY_MODEL", "sonar"),
			BraveKey:        getEnv("BRAVE_API_KEY", ""),
			QueryInterval:   time.Duration(queryInterval) * time.Millisecond,
			RequestTimeout:  time.Duration(citationTimeout) * time.Second,
		},
		Auth: AuthConfig{
			APIKeys: splitKeys(getEnv("API_KEYS", "")),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: rps,
			BucketSize:        bucket,
		},
	}, nil
}

// splitKeys parses the comma-separated API_KEYS value
func splitKeys(raw string) []string {
	var out []string
	for _, k := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(k); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
