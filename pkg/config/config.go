package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "BEMART"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv     = "BEMART_APP_ENV"
	EnvPort       = "BEMART_APP_PORT"
	EnvDBDSN      = "BEMART_DB_DSN"
	EnvDBHost     = "BEMART_DB_HOST"
	EnvDBUser     = "BEMART_DB_USER"
	EnvDBName     = "BEMART_DB_NAME"
	EnvRedisURL   = "BEMART_REDIS_URL"
	EnvJWTSecret  = "BEMART_JWT_SECRET"
	EnvJWTIssuer  = "BEMART_JWT_ISSUER"
	EnvJWTExpMins = "BEMART_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Cart          CartConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"BEMART_APP_ENV" required:"true"`
	Port         string `envconfig:"BEMART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BEMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BEMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BEMART_DB_DSN"`
	Driver string `envconfig:"BEMART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BEMART_DB_HOST"`
	LegacyPort     int    `envconfig:"BEMART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BEMART_DB_USER"`
	LegacyPassword string `envconfig:"BEMART_DB_PASSWORD"`
	LegacyName     string `envconfig:"BEMART_DB_NAME"`
	LegacySSLMode  string `envconfig:"BEMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BEMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BEMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BEMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BEMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BEMART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BEMART_REDIS_ADDR"`
	Password     string        `envconfig:"BEMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"BEMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BEMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BEMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BEMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BEMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BEMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"BEMART_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BEMART_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"BEMART_JWT_EXPIRATION_MINUTES" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BEMART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BEMART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BEMART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BEMART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BEMART_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"BEMART_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"BEMART_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"BEMART_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"BEMART_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"BEMART_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"BEMART_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CartConfig struct {
	// MergeGuardTTL bounds how long a guest-cart merge marker survives, so a
	// crashed merge can eventually be retried with a fresh session.
	MergeGuardTTL time.Duration `envconfig:"BEMART_CART_MERGE_GUARD_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BEMART_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
