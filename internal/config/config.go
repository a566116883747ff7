package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Env  string `env:"APP_ENV" env-default:"dev"`
	Port int    `env:"PORT" env-default:"5000"`

	StoreDriver string `env:"STORE_DRIVER" env-default:"memory"`

	// postgres
	DBHost     string `env:"DB_HOST" env-default:"127.0.0.1"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"staffhub"`
	DBPassword string `env:"DB_PASSWORD" env-default:"staffhub"`
	DBName     string `env:"DB_NAME" env-default:"staffhub"`
	DBSSLMode  string `env:"DB_SSLMODE" env-default:"disable"`
	DBURL      string `env:"DATABASE_URL"`

	// mongo
	MongoURI  string `env:"MONGO_URI"`
	MongoHost string `env:"MONGO_HOST" env-default:"cluster0.mongodb.net"`
	MongoUser string `env:"DB_USER"`
	MongoPass string `env:"DB_PASS"`
	MongoDB   string `env:"MONGO_DB" env-default:"employeeDB"`

	TokenSecret string        `env:"ACCESS_TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" env-default:"1h"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" env-default:"0"`
	RoleCacheTTL  time.Duration `env:"ROLE_CACHE_TTL" env-default:"30s"`

	OTLPEndpoint   string   `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	TraceSampling  float64  `env:"OTEL_TRACES_SAMPLE_RATIO" env-default:"1"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" env-separator:","`

	AdminEmail string `env:"ADMIN_EMAIL"`
	AdminName  string `env:"ADMIN_NAME" env-default:"Admin"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"3s"`

	LedgerPollInterval time.Duration `env:"LEDGER_POLL_INTERVAL" env-default:"10s"`
	LedgerHealthPort   int           `env:"LEDGER_HEALTH_PORT" env-default:"5001"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	if cfg.DBURL == "" {
		cfg.DBURL = buildDBURL(cfg)
	}

	if cfg.MongoURI == "" {
		cfg.MongoURI = buildMongoURI(cfg)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.TokenSecret == "" && !c.IsLocal() {
		return errors.New("ACCESS_TOKEN_SECRET is required outside dev")
	}

	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}

	return nil
}

// IsLocal reports whether the process runs in a developer or test environment.
func (c Config) IsLocal() bool {
	return c.Env == "dev" || c.Env == "test"
}

func buildDBURL(c Config) string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

func buildMongoURI(c Config) string {
	if c.MongoUser == "" {
		return "mongodb://127.0.0.1:27017"
	}

	host := strings.TrimPrefix(c.MongoHost, "mongodb+srv://")

	return "mongodb+srv://" + url.QueryEscape(c.MongoUser) + ":" + url.QueryEscape(c.MongoPass) + "@" + host + "/?retryWrites=true&w=majority"
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}
