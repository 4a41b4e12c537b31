package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Manifest     ManifestConfig
	Notification NotificationConfig
	GraphQL      GraphQLConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Root                  string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines credential parameters.
type AuthConfig struct {
	BcryptCost              int
	GeneratedPasswordLength int
}

// ManifestOnError selects what the version query does when the manifest
// cannot be read or decoded.
type ManifestOnError string

const (
	ManifestOnErrorFail     ManifestOnError = "fail"
	ManifestOnErrorFallback ManifestOnError = "fallback"
)

// ManifestConfig locates the version manifest.
type ManifestConfig struct {
	Path     string
	Fallback string
	OnError  ManifestOnError
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom           string
	RedisChannel        string
	PublishTimeoutMilli int
}

// GraphQLConfig bounds executor-side pagination.
type GraphQLConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	onError := ManifestOnError(strings.ToLower(getEnv("VERSION_MANIFEST_ON_ERROR", string(ManifestOnErrorFail))))
	switch onError {
	case ManifestOnErrorFail, ManifestOnErrorFallback:
	default:
		return nil, fmt.Errorf("invalid VERSION_MANIFEST_ON_ERROR: %q", onError)
	}

	root := os.Getenv("APP_ROOT")
	if root == "" {
		if root, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "dlf-graphql-example"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Root:                  root,
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			BcryptCost:              getEnvAsInt("AUTH_BCRYPT_COST", 12),
			GeneratedPasswordLength: getEnvAsInt("AUTH_GENERATED_PASSWORD_LENGTH", 8),
		},
		Manifest: ManifestConfig{
			Path:     getEnv("VERSION_MANIFEST_PATH", "manifest.json"),
			Fallback: getEnv("VERSION_FALLBACK", "onbekend"),
			OnError:  onError,
		},
		Notification: NotificationConfig{
			EmailFrom:           getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			RedisChannel:        getEnv("NOTIFY_REDIS_CHANNEL", "users.events"),
			PublishTimeoutMilli: getEnvAsInt("NOTIFY_PUBLISH_TIMEOUT_MS", 2000),
		},
		GraphQL: GraphQLConfig{
			DefaultPageSize: getEnvAsInt("GRAPHQL_DEFAULT_PAGE_SIZE", 15),
			MaxPageSize:     getEnvAsInt("GRAPHQL_MAX_PAGE_SIZE", 100),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// PublishTimeout bounds a single event publish to Redis.
func (n NotificationConfig) PublishTimeout() time.Duration {
	return time.Duration(n.PublishTimeoutMilli) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
