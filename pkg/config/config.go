package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every configuration variable.
	EnvPrefix = "QOMMERCE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Notify       NotifyConfig
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
	Env          string `envconfig:"QOMMERCE_APP_ENV" required:"true"`
	Port         string `envconfig:"QOMMERCE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"QOMMERCE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QOMMERCE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"QOMMERCE_DB_DSN"`

	Host     string `envconfig:"QOMMERCE_DB_HOST"`
	Port     int    `envconfig:"QOMMERCE_DB_PORT" default:"5432"`
	User     string `envconfig:"QOMMERCE_DB_USER"`
	Password string `envconfig:"QOMMERCE_DB_PASSWORD"`
	Name     string `envconfig:"QOMMERCE_DB_NAME"`
	SSLMode  string `envconfig:"QOMMERCE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"QOMMERCE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"QOMMERCE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"QOMMERCE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"QOMMERCE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN assembles a Postgres DSN from the discrete parts when one was not
// provided directly.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database config incomplete: set QOMMERCE_DB_DSN or host/user/name")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"QOMMERCE_REDIS_URL"`
	Address      string        `envconfig:"QOMMERCE_REDIS_ADDR"`
	Password     string        `envconfig:"QOMMERCE_REDIS_PASSWORD"`
	DB           int           `envconfig:"QOMMERCE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"QOMMERCE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"QOMMERCE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"QOMMERCE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"QOMMERCE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"QOMMERCE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"QOMMERCE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"QOMMERCE_JWT_ISSUER" default:"qommercehub"`
	ExpirationMinutes int    `envconfig:"QOMMERCE_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"QOMMERCE_AUTO_MIGRATE" default:"false"`
}

type NotifyConfig struct {
	FromName    string `envconfig:"QOMMERCE_NOTIFY_FROM_NAME" default:"QommerceHub"`
	FromAddress string `envconfig:"QOMMERCE_NOTIFY_FROM_ADDRESS" default:"noreply@qommercehub.com"`
}
