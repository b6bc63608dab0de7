package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix applied to every configuration variable.
const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names used by tests and deploy tooling.
const (
	EnvAppEnv   = "STOREFRONT_APP_ENV"
	EnvPort     = "STOREFRONT_APP_PORT"
	EnvRedisURL = "STOREFRONT_REDIS_URL"
	EnvDBPath   = "STOREFRONT_DB_PATH"
	EnvSheetID  = "STOREFRONT_SHEET_ID"
)

type Config struct {
	App     AppConfig
	Store   StoreConfig
	Feed    FeedConfig
	Catalog CatalogConfig
	Redis   RedisConfig
	DB      DBConfig
	Images  ImagesConfig
	Sheets  SheetsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig identifies the deployed store. Each template fork of the
// storefront sets its own values here.
type StoreConfig struct {
	Name       string `envconfig:"STOREFRONT_STORE_NAME" default:"Harborlight Market"`
	Tagline    string `envconfig:"STOREFRONT_STORE_TAGLINE"`
	LocationID string `envconfig:"STOREFRONT_STORE_LOCATION_ID" default:"main-store"`
}

// FeedConfig describes where the inventory CSV export lives. Paths are tried
// in order until one returns content carrying a recognized header marker.
type FeedConfig struct {
	BaseURL       string        `envconfig:"STOREFRONT_FEED_BASE_URL" required:"true"`
	Paths         []string      `envconfig:"STOREFRONT_FEED_PATHS" default:"/inventory-categorized.csv,/inventory.csv"`
	HeaderMarkers []string      `envconfig:"STOREFRONT_FEED_HEADER_MARKERS" default:"Name of Product,Category"`
	FetchTimeout  time.Duration `envconfig:"STOREFRONT_FEED_FETCH_TIMEOUT" default:"15s"`
}

type CatalogConfig struct {
	CacheTTL        time.Duration `envconfig:"STOREFRONT_CATALOG_CACHE_TTL" default:"1h"`
	DefaultPageSize int           `envconfig:"STOREFRONT_CATALOG_DEFAULT_PAGE_SIZE" default:"24"`
	FeaturedLimit   int           `envconfig:"STOREFRONT_CATALOG_FEATURED_LIMIT" default:"8"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// DBConfig points at the SQLite file backing the durable image cache.
type DBConfig struct {
	Path            string        `envconfig:"STOREFRONT_DB_PATH" default:"storefront.db"`
	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
}

type ImagesConfig struct {
	LookupBaseURL string        `envconfig:"STOREFRONT_IMAGE_LOOKUP_BASE_URL" default:"https://world.openfoodfacts.org/api/v0/product"`
	LookupTimeout time.Duration `envconfig:"STOREFRONT_IMAGE_LOOKUP_TIMEOUT" default:"10s"`
}

// SheetsConfig addresses the per-tab CSV exports for the secondary feeds.
type SheetsConfig struct {
	BaseURL       string `envconfig:"STOREFRONT_SHEETS_BASE_URL" default:"https://docs.google.com"`
	SheetID       string `envconfig:"STOREFRONT_SHEET_ID"`
	LocationsGID  string `envconfig:"STOREFRONT_SHEET_LOCATIONS_GID" default:"1"`
	CategoriesGID string `envconfig:"STOREFRONT_SHEET_CATEGORIES_GID" default:"2"`
	FAQsGID       string `envconfig:"STOREFRONT_SHEET_FAQS_GID" default:"3"`
}
