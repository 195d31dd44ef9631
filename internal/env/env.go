package env

import (
	"os"
	"strings"
)

const (
	APIBaseURL  = "ACADEMY_API_URL"
	WSBaseURL   = "ACADEMY_WS_URL"
	TokenFile   = "ACADEMY_TOKEN_FILE"
	MetricsAddr = "ACADEMY_METRICS_ADDR"
)

const DefaultAPIBaseURL = "http://localhost:8000"

func Get(key string) string {
	return os.Getenv(key)
}

func GetOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func MustGet(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("env: required environment variable not set: " + key)
	}
	return val
}

// ResolveWSBaseURL returns ACADEMY_WS_URL when set, otherwise derives the
// websocket base from the API base URL by swapping the scheme (http -> ws,
// https -> wss). The hosted service exposes both on the same host.
func ResolveWSBaseURL() string {
	if val := os.Getenv(WSBaseURL); val != "" {
		return val
	}
	api := GetOrDefault(APIBaseURL, DefaultAPIBaseURL)
	switch {
	case strings.HasPrefix(api, "https://"):
		return "wss://" + strings.TrimPrefix(api, "https://")
	case strings.HasPrefix(api, "http://"):
		return "ws://" + strings.TrimPrefix(api, "http://")
	}
	return api
}
