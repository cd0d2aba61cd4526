package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port           int
	TrustedProxies []string

	// Logging
	LogLevel    string
	LogFormat   string
	LogDir      string
	ServiceName string
	Version     string
	Environment string

	// Database
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Auth
	APIKey    string // admin routes
	JWTSecret string // student bearer tokens

	// Locking. Empty RedisAddr selects in-process locks.
	RedisAddr    string
	RedisLockTTL time.Duration

	// Duel rules
	InvitationTTL        time.Duration
	SessionTTL           time.Duration
	PointsPerCorrect     int
	MaxQuizzesPerSubject int

	// Expiry sweep
	SweepInterval time.Duration
	SweepBatch    int
	WorkerCount   int

	// Quiz content cache
	ContentCacheSize int
	ContentCacheTTL  time.Duration

	// Events
	DeadLetterPath  string
	EventMaxRetries int
	EventRetryDelay time.Duration

	// Duel event history
	EventLogRetention       time.Duration
	EventLogCleanupInterval time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		APIKey:    getEnv("API_KEY", ""),
		JWTSecret: getEnv("JWT_SECRET", ""),

		RedisAddr:    getEnv("REDIS_ADDR", ""),
		RedisLockTTL: getEnvAsDuration("REDIS_LOCK_TTL", DefaultRedisLockTTL),

		InvitationTTL:        getEnvAsDuration("INVITATION_TTL", DefaultInvitationTTL),
		SessionTTL:           getEnvAsDuration("SESSION_TTL", DefaultSessionTTL),
		PointsPerCorrect:     getEnvAsInt("POINTS_PER_CORRECT", DefaultPointsPerCorrect),
		MaxQuizzesPerSubject: getEnvAsInt("MAX_QUIZZES_PER_SUBJECT", DefaultMaxQuizzesPerSubject),

		SweepInterval: getEnvAsDuration("SWEEP_INTERVAL", DefaultSweepInterval),
		SweepBatch:    getEnvAsInt("SWEEP_BATCH", DefaultSweepBatch),
		WorkerCount:   getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),

		ContentCacheSize: getEnvAsInt("CONTENT_CACHE_SIZE", DefaultContentCacheSize),
		ContentCacheTTL:  getEnvAsDuration("CONTENT_CACHE_TTL", DefaultContentCacheTTL),

		DeadLetterPath:  getEnv("DEAD_LETTER_PATH", DefaultDeadLetterPath),
		EventMaxRetries: getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay: getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),

		EventLogRetention:       getEnvAsDuration("EVENT_LOG_RETENTION", DefaultEventLogRetention),
		EventLogCleanupInterval: getEnvAsDuration("EVENT_LOG_CLEANUP_INTERVAL", DefaultEventLogCleanupInterval),
	}

	portStr := getEnv("PORT", DefaultPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back on absence or parse failure
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a Go duration string, falling back on absence or parse failure
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL URL with credentials escaped
func (c *Config) GetDBConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// UseRedisLocks reports whether per-duel locks are shared through Redis
func (c *Config) UseRedisLocks() bool {
	return c.RedisAddr != ""
}
