package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"fad/pkg/logger"
)

const (
	placeholderProject = "placeholder-project"
	placeholderAPIKey  = "placeholder-api-key"
)

type Config struct {
	ServerPort  string
	Environment string

	FirebaseProject    string
	FirebaseApiKey     string
	ServiceAccountJSON string
	ServiceAccountPath string
	StorageBucket      string

	// UsingPlaceholders is set when the gateway project or key were missing.
	// The server still starts but every gateway call will fail.
	UsingPlaceholders bool

	RedisURL            string
	DashboardCacheTTL   time.Duration
	ClassifierRulesPath string
	ReviewAutoPublish   bool
	RateLimitPerMinute  int
	MaxUploadBytes      int64
	AllowedOrigins      []string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		FirebaseProject:     getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:      getEnv("FIREBASE_API_KEY", ""),
		ServiceAccountJSON:  getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		ServiceAccountPath:  getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		StorageBucket:       getEnv("STORAGE_BUCKET", ""),
		RedisURL:            getEnv("REDIS_URL", ""),
		DashboardCacheTTL:   time.Duration(getEnvAsInt64("DASHBOARD_CACHE_TTL_SECONDS", 30)) * time.Second,
		ClassifierRulesPath: getEnv("CLASSIFIER_RULES_PATH", ""),
		ReviewAutoPublish:   getEnvAsBool("REVIEW_AUTO_PUBLISH", false),
		RateLimitPerMinute:  int(getEnvAsInt64("RATE_LIMIT_PER_MINUTE", 60)),
		MaxUploadBytes:      getEnvAsInt64("MAX_UPLOAD_MB", 5) * 1024 * 1024,
		AllowedOrigins:      getEnvAsList("ALLOWED_ORIGINS"),
	}

	if config.FirebaseProject == "" {
		logger.Warn("FIREBASE_PROJECT_ID is not set, using placeholder %q", placeholderProject)
		config.FirebaseProject = placeholderProject
		config.UsingPlaceholders = true
	}
	if config.FirebaseApiKey == "" {
		logger.Warn("FIREBASE_API_KEY is not set, using placeholder key")
		config.FirebaseApiKey = placeholderAPIKey
		config.UsingPlaceholders = true
	}
	if config.StorageBucket == "" {
		config.StorageBucket = config.FirebaseProject + ".appspot.com"
	}

	return config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		boolValue, err := strconv.ParseBool(value)
		if err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value and drops empty entries.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
