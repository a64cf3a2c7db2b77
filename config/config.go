package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "kisan-dev-secret-change-me"

type AppConfig struct {
	Port     string
	DBPath   string
	LogLevel string
	// json|console
	LogFormat   string
	CORSOrigins []string

	JWTSecret  string
	SessionTTL time.Duration

	UploadDir     string
	MaxUploadMB   int
	DiagnosisWait time.Duration

	ListenWait    time.Duration
	ReplyWait     time.Duration
	SpeakDuration time.Duration
	LLMEndpoint   string
	LLMAPIKey     string
	LLMModel      string

	SeedPrices        bool
	PriceImportHosts  []string
	PriceImportMaxLen int
}

// Load reads an optional .env file and then the process environment.
func Load() AppConfig {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	return AppConfig{
		Port:        get("PORT", "8080"),
		DBPath:      get("DB_PATH", "kisan.db"),
		LogLevel:    get("LOG_LEVEL", "info"),
		LogFormat:   get("LOG_FORMAT", "json"),
		CORSOrigins: list(get("CORS_ORIGINS", "*")),

		JWTSecret:  get("JWT_SECRET", devJWTSecret),
		SessionTTL: duration("SESSION_TTL", 72*time.Hour),

		UploadDir:     get("UPLOAD_DIR", "uploads"),
		MaxUploadMB:   integer("MAX_UPLOAD_MB", 10),
		DiagnosisWait: duration("DIAGNOSIS_DELAY", 3*time.Second),

		ListenWait:    duration("LISTEN_DELAY", 3*time.Second),
		ReplyWait:     duration("REPLY_DELAY", 1500*time.Millisecond),
		SpeakDuration: duration("SPEAK_DURATION", 4*time.Second),
		LLMEndpoint:   get("LLM_ENDPOINT", ""),
		LLMAPIKey:     get("LLM_API_KEY", ""),
		LLMModel:      get("LLM_MODEL", "gpt-4o-mini"),

		SeedPrices:        get("SEED_PRICES", "true") == "true",
		PriceImportHosts:  list(get("PRICE_IMPORT_ALLOWED_DOMAINS", "")),
		PriceImportMaxLen: integer("PRICE_IMPORT_MAX_BYTES", 1500000),
	}
}

// UsesDevSecret reports whether sessions are signed with the built-in secret.
func (c AppConfig) UsesDevSecret() bool { return c.JWTSecret == devJWTSecret }

func (c AppConfig) MaxUploadBytes() int64 { return int64(c.MaxUploadMB) << 20 }

// Redacted renders the config for logs with secrets masked.
func (c AppConfig) Redacted() string {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "***"
	}
	r := c
	r.JWTSecret = mask(r.JWTSecret)
	r.LLMAPIKey = mask(r.LLMAPIKey)
	return fmt.Sprintf("%+v", r)
}

func get(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func duration(k string, def time.Duration) time.Duration {
	v := get(k, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}

func integer(k string, def int) int {
	n, err := strconv.Atoi(get(k, ""))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func list(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, strings.ToLower(s))
		}
	}
	return out
}
