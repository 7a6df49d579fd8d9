package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Session      SessionConfig
	Catalog      CatalogConfig
	DB           DBConfig
	Redis        RedisConfig
	Store        StoreConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ELECTRONICS_APP_ENV" required:"true"`
	Port         string `envconfig:"ELECTRONICS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ELECTRONICS_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"ELECTRONICS_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"ELECTRONICS_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"ELECTRONICS_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type SessionConfig struct {
	CookieName string        `envconfig:"ELECTRONICS_SESSION_COOKIE" default:"es_session"`
	TTL        time.Duration `envconfig:"ELECTRONICS_SESSION_TTL" default:"24h"`
	Secure     bool          `envconfig:"ELECTRONICS_SESSION_SECURE" default:"false"`
	Backend    string        `envconfig:"ELECTRONICS_SESSION_BACKEND" default:"memory"`
}

// UsesRedis reports whether carts are kept in Redis rather than process memory.
func (s SessionConfig) UsesRedis() bool {
	return strings.EqualFold(strings.TrimSpace(s.Backend), SessionBackendRedis)
}

// SecureCookies reports whether the session cookie carries the Secure
// attribute. Production always does.
func (c *Config) SecureCookies() bool {
	return c.Session.Secure || c.App.IsProd()
}

type CatalogConfig struct {
	Source string `envconfig:"ELECTRONICS_CATALOG_SOURCE" default:"static"`
}

func (c CatalogConfig) UsesDB() bool {
	return strings.EqualFold(strings.TrimSpace(c.Source), CatalogSourceDB)
}

type DBConfig struct {
	DSN    string `envconfig:"ELECTRONICS_DB_DSN"`
	Driver string `envconfig:"ELECTRONICS_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"ELECTRONICS_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"ELECTRONICS_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"ELECTRONICS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ELECTRONICS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// NormalizedDriver returns the lower-cased driver name, defaulting to postgres.
func (d DBConfig) NormalizedDriver() string {
	driver := strings.ToLower(strings.TrimSpace(d.Driver))
	if driver == "" {
		return DBDriverPostgres
	}
	return driver
}

type RedisConfig struct {
	URL          string        `envconfig:"ELECTRONICS_REDIS_URL"`
	Address      string        `envconfig:"ELECTRONICS_REDIS_ADDR"`
	Password     string        `envconfig:"ELECTRONICS_REDIS_PASSWORD"`
	DB           int           `envconfig:"ELECTRONICS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ELECTRONICS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ELECTRONICS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ELECTRONICS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ELECTRONICS_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"ELECTRONICS_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Configured reports whether any Redis endpoint was supplied.
func (r RedisConfig) Configured() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

// StoreConfig holds the storefront's fixed public details.
type StoreConfig struct {
	Name           string `envconfig:"ELECTRONICS_STORE_NAME" default:"ELECTRONICS STORE"`
	ContactPhone   string `envconfig:"ELECTRONICS_CONTACT_PHONE" default:"89226125076"`
	PaymentPhone   string `envconfig:"ELECTRONICS_PAYMENT_PHONE" default:"89221193616"`
	CurrencySymbol string `envconfig:"ELECTRONICS_CURRENCY_SYMBOL" default:"₽"`
}

type RateLimitConfig struct {
	CartWindow time.Duration `envconfig:"ELECTRONICS_CART_RATE_LIMIT_WINDOW" default:"1m"`
	CartLimit  int           `envconfig:"ELECTRONICS_CART_RATE_LIMIT" default:"120"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ELECTRONICS_AUTO_MIGRATE" default:"false"`
}

func (c *Config) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.App.LogFormat)) {
	case LogFormatJSON, LogFormatConsole:
	default:
		return fmt.Errorf("unsupported %s %q", EnvLogFormat, c.App.LogFormat)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("%s must be positive", EnvSessionTTL)
	}
	switch strings.ToLower(strings.TrimSpace(c.Session.Backend)) {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if !c.Redis.Configured() {
			return fmt.Errorf("%s=redis requires %s or %s", EnvSessionBackend, EnvRedisURL, EnvRedisAddr)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvSessionBackend, c.Session.Backend)
	}

	switch strings.ToLower(strings.TrimSpace(c.Catalog.Source)) {
	case CatalogSourceStatic:
	case CatalogSourceDB:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("%s=db requires %s", EnvCatalogSource, EnvDBDSN)
		}
		switch c.DB.NormalizedDriver() {
		case DBDriverPostgres, DBDriverSQLite:
		default:
			return fmt.Errorf("unsupported %s %q", EnvDBDriver, c.DB.Driver)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvCatalogSource, c.Catalog.Source)
	}

	if strings.TrimSpace(c.Store.PaymentPhone) == "" {
		return fmt.Errorf("%s is required", EnvPaymentPhone)
	}
	return nil
}
