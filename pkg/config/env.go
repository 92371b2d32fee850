package config

const EnvPrefix = "FOODGRAM"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv      = "FOODGRAM_APP_ENV"
	EnvPort        = "FOODGRAM_APP_PORT"
	EnvCORSOrigins = "FOODGRAM_CORS_ORIGINS"
	EnvDBDSN       = "FOODGRAM_DB_DSN"
	EnvDBDriver    = "FOODGRAM_DB_DRIVER"
	EnvDBHost      = "FOODGRAM_DB_HOST"
	EnvDBUser      = "FOODGRAM_DB_USER"
	EnvDBName      = "FOODGRAM_DB_NAME"
	EnvDBPassword  = "FOODGRAM_DB_PASSWORD"
	EnvRedisURL    = "FOODGRAM_REDIS_URL"
	EnvJWTSecret   = "FOODGRAM_JWT_SECRET"
	EnvJWTIssuer   = "FOODGRAM_JWT_ISSUER"
	EnvJWTExpMins  = "FOODGRAM_JWT_EXPIRATION_MINUTES"
	EnvRateWindow  = "FOODGRAM_RATE_LIMIT_WINDOW"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
