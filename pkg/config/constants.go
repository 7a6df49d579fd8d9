package config

const (
	EnvPrefix = "ELECTRONICS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv       = "ELECTRONICS_APP_ENV"
	EnvPort         = "ELECTRONICS_APP_PORT"
	EnvLogLevel     = "ELECTRONICS_LOG_LEVEL"
	EnvLogFormat    = "ELECTRONICS_LOG_FORMAT"
	EnvLogWarnStack = "ELECTRONICS_LOG_WARN_STACK"

	EnvSessionCookie  = "ELECTRONICS_SESSION_COOKIE"
	EnvSessionTTL     = "ELECTRONICS_SESSION_TTL"
	EnvSessionSecure  = "ELECTRONICS_SESSION_SECURE"
	EnvSessionBackend = "ELECTRONICS_SESSION_BACKEND"

	EnvCatalogSource = "ELECTRONICS_CATALOG_SOURCE"

	EnvDBDSN    = "ELECTRONICS_DB_DSN"
	EnvDBDriver = "ELECTRONICS_DB_DRIVER"

	EnvRedisURL  = "ELECTRONICS_REDIS_URL"
	EnvRedisAddr = "ELECTRONICS_REDIS_ADDR"

	EnvContactPhone = "ELECTRONICS_CONTACT_PHONE"
	EnvPaymentPhone = "ELECTRONICS_PAYMENT_PHONE"

	EnvCartRateWindow = "ELECTRONICS_CART_RATE_LIMIT_WINDOW"
	EnvCartRateLimit  = "ELECTRONICS_CART_RATE_LIMIT"

	EnvAutoMigrate = "ELECTRONICS_AUTO_MIGRATE"
)

const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"

	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"

	CatalogSourceStatic = "static"
	CatalogSourceDB     = "db"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)
