package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	CORS         CORSConfig
	Features     FeatureFlagsConfig
	Cron         CronConfig
}

// Load reads the ECOTECH_* environment, fills the DSN from its parts when
// unset and reports every invalid setting at once.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs error
	switch strings.ToLower(c.App.Env) {
	case AppEnvDev, AppEnvStaging, AppEnvProd:
	default:
		errs = multierr.Append(errs, fmt.Errorf("%s must be one of dev, staging, prod; got %q", EnvAppEnv, c.App.Env))
	}
	if c.Cron.Interval < time.Minute {
		errs = multierr.Append(errs, fmt.Errorf("%s must be at least 1m", EnvCronInterval))
	}
	if c.Cron.LockTTL > 0 && c.Cron.LockTTL < c.Cron.JobTimeout {
		errs = multierr.Append(errs, fmt.Errorf("%s must not be shorter than %s", EnvCronLockTTL, EnvCronJobTimeout))
	}
	if ns := c.Redis.Namespace; ns == "" || strings.ContainsAny(ns, ": ") {
		errs = multierr.Append(errs, fmt.Errorf("%s must be non-empty without colons or spaces", EnvRedisNamespace))
	}
	if c.IsProd() && c.Features.AutoMigrate {
		errs = multierr.Append(errs, fmt.Errorf("%s is dev-only", EnvAutoMigrate))
	}
	return errs
}

func (c *Config) IsProd() bool {
	return c.App.IsProd()
}

type AppConfig struct {
	Env          string `envconfig:"ECOTECH_APP_ENV" required:"true"`
	Port         string `envconfig:"ECOTECH_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"ECOTECH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ECOTECH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"ECOTECH_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN string `envconfig:"ECOTECH_DB_DSN"`

	Host     string `envconfig:"ECOTECH_DB_HOST"`
	Port     int    `envconfig:"ECOTECH_DB_PORT" default:"5432"`
	User     string `envconfig:"ECOTECH_DB_USER"`
	Password string `envconfig:"ECOTECH_DB_PASSWORD"`
	Name     string `envconfig:"ECOTECH_DB_NAME"`
	SSLMode  string `envconfig:"ECOTECH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ECOTECH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ECOTECH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ECOTECH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ECOTECH_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	// SlowQuery marks statements at or above this duration as warn lines.
	SlowQuery  time.Duration `envconfig:"ECOTECH_DB_SLOW_QUERY" default:"200ms"`
	LogQueries bool          `envconfig:"ECOTECH_DB_LOG_QUERIES" default:"false"`
}

// RedisConfig is optional; an empty URL and address disables redis-backed features.
type RedisConfig struct {
	URL            string        `envconfig:"ECOTECH_REDIS_URL"`
	Address        string        `envconfig:"ECOTECH_REDIS_ADDR"`
	Password       string        `envconfig:"ECOTECH_REDIS_PASSWORD"`
	DB             int           `envconfig:"ECOTECH_REDIS_DB" default:"0"`
	PoolSize       int           `envconfig:"ECOTECH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns   int           `envconfig:"ECOTECH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout    time.Duration `envconfig:"ECOTECH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout    time.Duration `envconfig:"ECOTECH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout   time.Duration `envconfig:"ECOTECH_REDIS_WRITE_TIMEOUT" default:"5s"`
	IdempotencyTTL time.Duration `envconfig:"ECOTECH_REDIS_IDEMPOTENCY_TTL" default:"24h"`
	Namespace      string        `envconfig:"ECOTECH_REDIS_NAMESPACE" default:"eco"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ECOTECH_CORS_ALLOWED_ORIGINS" default:"*"`
	MaxAge         int      `envconfig:"ECOTECH_CORS_MAX_AGE" default:"300"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ECOTECH_AUTO_MIGRATE" default:"false"`
}

type CronConfig struct {
	Interval        time.Duration `envconfig:"ECOTECH_CRON_INTERVAL" default:"1h"`
	LockTTL         time.Duration `envconfig:"ECOTECH_CRON_LOCK_TTL" default:"10m"`
	JobTimeout      time.Duration `envconfig:"ECOTECH_CRON_JOB_TIMEOUT" default:"5m"`
	MetricsAddr     string        `envconfig:"ECOTECH_CRON_METRICS_ADDR" default:":9102"`
	AnalyticsJobOff bool          `envconfig:"ECOTECH_CRON_ANALYTICS_DISABLED" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range discreteDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
