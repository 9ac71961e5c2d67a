package config

// EnvPrefix is passed to envconfig; field tags carry the full variable names.
const EnvPrefix = "ECOTECH"

const (
	AppEnvDev     = "dev"
	AppEnvStaging = "staging"
	AppEnvProd    = "prod"
)

const (
	EnvAppEnv   = "ECOTECH_APP_ENV"
	EnvPort     = "ECOTECH_APP_PORT"
	EnvLogLevel = "ECOTECH_LOG_LEVEL"

	EnvDBDSN      = "ECOTECH_DB_DSN"
	EnvDBHost     = "ECOTECH_DB_HOST"
	EnvDBPort     = "ECOTECH_DB_PORT"
	EnvDBUser     = "ECOTECH_DB_USER"
	EnvDBPassword = "ECOTECH_DB_PASSWORD"
	EnvDBName     = "ECOTECH_DB_NAME"

	EnvRedisURL       = "ECOTECH_REDIS_URL"
	EnvRedisAddr      = "ECOTECH_REDIS_ADDR"
	EnvRedisNamespace = "ECOTECH_REDIS_NAMESPACE"

	EnvCORSOrigins    = "ECOTECH_CORS_ALLOWED_ORIGINS"
	EnvCronInterval   = "ECOTECH_CRON_INTERVAL"
	EnvCronLockTTL    = "ECOTECH_CRON_LOCK_TTL"
	EnvCronJobTimeout = "ECOTECH_CRON_JOB_TIMEOUT"
	EnvAutoMigrate    = "ECOTECH_AUTO_MIGRATE"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
