package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

type Config struct {
	APIPort        string
	LogLevel       string
	RequestTimeout time.Duration

	CORSAllowedOrigins []string

	UpstreamTimeout  time.Duration
	UserAgent        string
	MaxResponseBytes int64

	LeetCodeBaseURL   string
	HackerRankBaseURL string
	CodeChefBaseURL   string
	CodeForcesBaseURL string
}

var AppConfig *Config

// Load reads .env when present and sets AppConfig. AppConfig is always set;
// the returned error only reports a missing or unreadable .env file.
func Load() error {
	err := godotenv.Load()
	AppConfig = FromEnv()
	return err
}

// FromEnv builds a Config from the current environment without touching AppConfig.
func FromEnv() *Config {
	return &Config{
		APIPort:            getEnv("API_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		RequestTimeout:     time.Duration(getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 60)) * time.Second,
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		UpstreamTimeout:    time.Duration(getEnvAsInt("UPSTREAM_TIMEOUT_SECONDS", 10)) * time.Second,
		UserAgent:          getEnv("USER_AGENT", defaultUserAgent),
		MaxResponseBytes:   int64(getEnvAsInt("MAX_RESPONSE_BYTES", 5*1024*1024)),
		LeetCodeBaseURL:    trimBaseURL(getEnv("LEETCODE_BASE_URL", "https://leetcode.com")),
		HackerRankBaseURL:  trimBaseURL(getEnv("HACKERRANK_BASE_URL", "https://www.hackerrank.com")),
		CodeChefBaseURL:    trimBaseURL(getEnv("CODECHEF_BASE_URL", "https://www.codechef.com")),
		CodeForcesBaseURL:  trimBaseURL(getEnv("CODEFORCES_BASE_URL", "https://codeforces.com")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil && value > 0 {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func trimBaseURL(u string) string {
	return strings.TrimRight(u, "/")
}
