package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"FOODGRAM_APP_ENV" required:"true"`
	Port            string        `envconfig:"FOODGRAM_APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"FOODGRAM_LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"FOODGRAM_LOG_FORMAT" default:"json"`
	LogWarnStack    bool          `envconfig:"FOODGRAM_LOG_WARN_STACK" default:"false"`
	ReadTimeout     time.Duration `envconfig:"FOODGRAM_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"FOODGRAM_HTTP_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"FOODGRAM_HTTP_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"FOODGRAM_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	CORSOrigins     []string      `envconfig:"FOODGRAM_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FOODGRAM_DB_DSN"`
	Driver string `envconfig:"FOODGRAM_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"FOODGRAM_DB_HOST"`
	Port     int    `envconfig:"FOODGRAM_DB_PORT" default:"5432"`
	User     string `envconfig:"FOODGRAM_DB_USER"`
	Password string `envconfig:"FOODGRAM_DB_PASSWORD"`
	Name     string `envconfig:"FOODGRAM_DB_NAME"`
	SSLMode  string `envconfig:"FOODGRAM_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FOODGRAM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FOODGRAM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FOODGRAM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FOODGRAM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the local file-backed driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"FOODGRAM_REDIS_URL"`
	Address      string        `envconfig:"FOODGRAM_REDIS_ADDR"`
	Password     string        `envconfig:"FOODGRAM_REDIS_PASSWORD"`
	DB           int           `envconfig:"FOODGRAM_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FOODGRAM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FOODGRAM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FOODGRAM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FOODGRAM_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"FOODGRAM_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether any Redis endpoint was configured. Without one the
// API runs with rate limiting and idempotency replay disabled.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"FOODGRAM_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FOODGRAM_JWT_ISSUER" default:"foodgram"`
	ExpirationMinutes int    `envconfig:"FOODGRAM_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// PasswordConfig tunes argon2id hashing for accounts created by the seed tool.
type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FOODGRAM_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FOODGRAM_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FOODGRAM_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FOODGRAM_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FOODGRAM_ARGON_KEY_LEN" default:"32"`
}

type RateLimitConfig struct {
	Window time.Duration `envconfig:"FOODGRAM_RATE_LIMIT_WINDOW" default:"1m"`
	Limit  int           `envconfig:"FOODGRAM_RATE_LIMIT_REQUESTS" default:"120"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FOODGRAM_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
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
