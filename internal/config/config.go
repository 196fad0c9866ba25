package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	SessionBackendMemory   = "memory"
	SessionBackendRedis    = "redis"
	SessionBackendPostgres = "postgres"
)

type MailConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

type AppConfig struct {
	HTTPPort       string
	LogLevel       string
	SessionBackend string
	SessionTTL     time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DatabaseURL string
	AMQPURL     string
	Mail        MailConfig

	NotificationInterval    time.Duration
	NotificationProbability float64

	DefaultAssignee string
	CompanyName     string
	CORSOrigins     []string
}

// Load lê o .env (se existir) e as variáveis de ambiente.
func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("Config: sem .env, usando variáveis do sistema")
	}
	return FromEnv()
}

func FromEnv() AppConfig {
	return AppConfig{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		SessionBackend: strings.ToLower(getEnv("SESSION_BACKEND", SessionBackendMemory)),
		SessionTTL:     getDuration("SESSION_TTL", 0),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		AMQPURL:     getEnv("AMQP_URL", ""),
		Mail: MailConfig{
			Host: getEnv("MAIL_HOST", ""),
			Port: getInt("MAIL_PORT", 587),
			User: getEnv("MAIL_USER", ""),
			Pass: getEnv("MAIL_PASS", ""),
			From: getEnv("MAIL_FROM", "nao-responda@ligue.com"),
		},

		NotificationInterval:    getDuration("NOTIFICATION_INTERVAL", time.Minute),
		NotificationProbability: getFloat("NOTIFICATION_PROBABILITY", 0.2),

		DefaultAssignee: getEnv("DEFAULT_ASSIGNEE", "Juan Pérez"),
		CompanyName:     getEnv("COMPANY_NAME", "Ligue"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v < 0 || v > 1 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
