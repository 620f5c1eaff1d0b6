package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	Port           string
	APIBaseURL     string
	StaticDir      string
	SessionStore   string
	RedisAddr      string
	RedisPassword  string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
	LogLevel       string
	SecureCookie   bool

	FakeBackend     bool
	FakeBackendPort string
	JWTSecret       string
	AdminEmail      string
	AdminPassword   string

	SessionFile string
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found, using defaults")
	}

	return Config{
		Port:           getEnv("PORT", "8080"),
		APIBaseURL:     strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:5000/api"), "/"),
		StaticDir:      getEnv("STATIC_DIR", "./public"),
		SessionStore:   strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory)),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		CORSOrigins:    parseCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 20),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 15*time.Second),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		SecureCookie:   getEnv("SECURE_COOKIE", "false") == "true",

		FakeBackend:     getEnv("FAKE_BACKEND", "false") == "true",
		FakeBackendPort: getEnv("FAKE_BACKEND_PORT", "5000"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AdminEmail:      os.Getenv("FAKE_ADMIN_EMAIL"),
		AdminPassword:   os.Getenv("FAKE_ADMIN_PASSWORD"),

		SessionFile: getEnv("DEVHUB_SESSION_FILE", defaultSessionFile()),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil && f > 0 {
		return f
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".devhub-session.json"
	}
	return dir + string(os.PathSeparator) + "devhub" + string(os.PathSeparator) + "session.json"
}
