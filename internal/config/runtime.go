package config

import (
	"os"
	"strconv"
	"strings"
)

// Runtime holds settings read from the environment on every call.
// Nothing here is cached between requests, so rotating a credential or
// changing a limit takes effect on the next request.
type Runtime struct {
	Bucket             string
	MaxRetries         int
	RateLimitPerMinute int
	Provider           string
	OpenAIAPIKey       string
	OpenAIModel        string
	GeminiAPIKey       string
	GeminiModel        string
	SearchAPIKey       string
	SearchEngineID     string
	SearchEndpoint     string
	ProjectURL         string
	ServiceKey         string
	CacheVersion       string
	PlaceholderURL     string
}

const (
	DefaultBucket             = "quiz-images"
	DefaultMaxRetries         = 2
	DefaultRateLimitPerMinute = 30
	DefaultProvider           = "openai"
	DefaultPlaceholderURL     = "/images/placeholder/history-default.png"
	DefaultSearchEndpoint     = "https://www.googleapis.com/customsearch/v1"
)

// LoadRuntime reads the current runtime settings from the environment
func LoadRuntime() Runtime {
	return Runtime{
		Bucket:             getEnv("IMAGE_BUCKET", DefaultBucket),
		MaxRetries:         getEnvInt("MAX_RETRIES", DefaultMaxRetries),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", DefaultRateLimitPerMinute),
		Provider:           strings.ToLower(getEnv("IMAGE_PROVIDER", DefaultProvider)),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:        getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_IMAGE_MODEL", "imagen-3.0-generate-002"),
		SearchAPIKey:       getEnv("SEARCH_API_KEY", ""),
		SearchEngineID:     getEnv("SEARCH_ENGINE_ID", ""),
		SearchEndpoint:     getEnv("SEARCH_ENDPOINT", DefaultSearchEndpoint),
		ProjectURL:         strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		ServiceKey:         getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		CacheVersion:       getEnv("CACHE_VERSION", ""),
		PlaceholderURL:     getEnv("PLACEHOLDER_URL", DefaultPlaceholderURL),
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// getEnvInt falls back to def for unset, malformed or negative values
func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && i >= 0 {
			return i
		}
	}
	return def
}
