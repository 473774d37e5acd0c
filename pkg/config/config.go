package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable consumed by the gateway.
const EnvPrefix = "CAMPUSEATS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Store    StoreConfig
	Cart     CartConfig
	Catalog  CatalogConfig
	Checkout CheckoutConfig
	Session  SessionConfig
	Blob     BlobConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	if cfg.Redis.URL == "" && cfg.Redis.Address == "" && !cfg.Store.UseSQLite {
		return nil, fmt.Errorf("session state needs redis or the sqlite store; set %s_REDIS_URL or %s_USE_SQLITE", EnvPrefix, EnvPrefix)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CAMPUSEATS_APP_ENV" required:"true"`
	Port         string `envconfig:"CAMPUSEATS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CAMPUSEATS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CAMPUSEATS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points at the campus dining REST API that owns the catalog,
// inventory, accounts and orders.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"CAMPUSEATS_UPSTREAM_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"CAMPUSEATS_UPSTREAM_TIMEOUT" default:"5s"`
}

func (u UpstreamConfig) validate() error {
	parsed, err := url.Parse(u.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing upstream base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("upstream base url %q must be absolute", u.BaseURL)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"CAMPUSEATS_REDIS_URL"`
	Address      string        `envconfig:"CAMPUSEATS_REDIS_ADDR"`
	Password     string        `envconfig:"CAMPUSEATS_REDIS_PASSWORD"`
	DB           int           `envconfig:"CAMPUSEATS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CAMPUSEATS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CAMPUSEATS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CAMPUSEATS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CAMPUSEATS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CAMPUSEATS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// StoreConfig selects the durable backend for per-session state when redis
// is not available (single-instance and local development deployments).
type StoreConfig struct {
	UseSQLite  bool   `envconfig:"CAMPUSEATS_USE_SQLITE" default:"false"`
	SQLitePath string `envconfig:"CAMPUSEATS_SQLITE_PATH" default:"campuseats.db"`
}

type CartConfig struct {
	// DefaultStockLimit bounds the quantity of a line whose product did not
	// report stock at add time.
	DefaultStockLimit int `envconfig:"CAMPUSEATS_CART_DEFAULT_STOCK_LIMIT" default:"99"`
}

type CatalogConfig struct {
	// CacheTTL bounds how long a product listing may be served from memory
	// before the upstream is asked again. Checkout success invalidates the
	// cache early.
	CacheTTL time.Duration `envconfig:"CAMPUSEATS_CATALOG_CACHE_TTL" default:"5m"`
}

type CheckoutConfig struct {
	Timeout          time.Duration `envconfig:"CAMPUSEATS_CHECKOUT_TIMEOUT" default:"5s"`
	SuccessNoticeTTL time.Duration `envconfig:"CAMPUSEATS_CHECKOUT_SUCCESS_NOTICE_TTL" default:"4s"`
}

type SessionConfig struct {
	// HeaderName carries the opaque per-client session identifier; the
	// gateway mints one when absent.
	HeaderName string        `envconfig:"CAMPUSEATS_SESSION_HEADER" default:"X-Session-Id"`
	TTL        time.Duration `envconfig:"CAMPUSEATS_SESSION_TTL" default:"720h"`
}

// BlobConfig points at the external object store that keeps product images
// and menu PDFs; the gateway only uploads and relays the returned URL.
type BlobConfig struct {
	BaseURL     string        `envconfig:"CAMPUSEATS_BLOB_BASE_URL"`
	Bucket      string        `envconfig:"CAMPUSEATS_BLOB_BUCKET" default:"campuseats-media"`
	Timeout     time.Duration `envconfig:"CAMPUSEATS_BLOB_TIMEOUT" default:"10s"`
	MaxUploadMB int           `envconfig:"CAMPUSEATS_BLOB_MAX_UPLOAD_MB" default:"10"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CAMPUSEATS_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
