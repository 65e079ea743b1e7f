package config

import (
	"os"
	"strconv"
	"time"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Notifier NotifierConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig describes connectivity to PostgreSQL.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// NotifierConfig controls the complaint notification dispatcher.
type NotifierConfig struct {
	ResendAPIKey string
	FromAddress  string
	AdminEmail   string
	QueueSize    int
	SendTimeout  time.Duration
}

const (
	defaultPort            = "8080"
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultQueueSize       = 64
	defaultSendTimeout     = 10 * time.Second
	defaultFromAddress     = "Muzaffarpur Seva Sathi <onboarding@resend.dev>"
)

// Load reads configuration from the environment, falling back to defaults.
func Load() Config {
	return Config{
		HTTP: HTTPConfig{
			Port:            getEnv("PORT", defaultPort),
			ReadTimeout:     getDuration("HTTP_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    getDuration("HTTP_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     getDuration("HTTP_IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: getDuration("HTTP_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "postgres"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Notifier: NotifierConfig{
			ResendAPIKey: os.Getenv("RESEND_API_KEY"),
			FromAddress:  getEnv("NOTIFY_FROM", defaultFromAddress),
			AdminEmail:   os.Getenv("NOTIFY_ADMIN_EMAIL"),
			QueueSize:    getInt("NOTIFY_QUEUE_SIZE", defaultQueueSize),
			SendTimeout:  getDuration("NOTIFY_SEND_TIMEOUT", defaultSendTimeout),
		},
	}
}

// DSN assembles the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
