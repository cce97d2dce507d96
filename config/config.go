package config

import (
	"os"
	"strings"
	"time"
)

// PlaceholderAPIKey .env.example 中的占位值，视为未配置
const PlaceholderAPIKey = "your_gemini_api_key_here"

// Config 应用配置
type Config struct {
	Port          string
	GeminiModel   string
	GeminiBaseURL string
	FetchTimeout  time.Duration // 0 表示不设置超时
	GeminiTimeout time.Duration
	DatabaseURL   string
	LogLevel      string
}

// Load 从环境变量加载配置
// GEMINI_API_KEY 不在这里读取，每次请求通过 GeminiAPIKey 获取
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL: strings.TrimRight(getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"), "/"),
		FetchTimeout:  getDuration("FETCH_TIMEOUT", 0),
		GeminiTimeout: getDuration("GEMINI_TIMEOUT", 0),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

// GeminiAPIKey 读取当前进程的 Gemini API key
func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

// KeyConfigured 空值和占位值都算未配置
func KeyConfigured(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != PlaceholderAPIKey
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return defaultValue
	}
	return d
}
