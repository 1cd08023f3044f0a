package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "MEDIASAAS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Cloudinary   CloudinaryConfig
	Upload       UploadConfig
	Cleanup      CleanupConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MEDIASAAS_APP_ENV" required:"true"`
	Port         string `envconfig:"MEDIASAAS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MEDIASAAS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MEDIASAAS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

type DBConfig struct {
	Driver string `envconfig:"MEDIASAAS_DB_DRIVER" default:"postgres"`
	DSN    string `envconfig:"MEDIASAAS_DB_DSN"`

	MaxOpenConns    int           `envconfig:"MEDIASAAS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MEDIASAAS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MEDIASAAS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MEDIASAAS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) validate() error {
	switch db.Driver {
	case DBDriverPostgres, DBDriverSQLite:
	default:
		return fmt.Errorf("unsupported db driver %q", db.Driver)
	}
	if db.DSN == "" {
		return fmt.Errorf("MEDIASAAS_DB_DSN is required")
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"MEDIASAAS_REDIS_URL"`
	Address      string        `envconfig:"MEDIASAAS_REDIS_ADDR"`
	Password     string        `envconfig:"MEDIASAAS_REDIS_PASSWORD"`
	DB           int           `envconfig:"MEDIASAAS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MEDIASAAS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MEDIASAAS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MEDIASAAS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MEDIASAAS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MEDIASAAS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig verifies bearer tokens minted by the external identity provider,
// which shares the HS256 secret with this service.
type JWTConfig struct {
	Secret string `envconfig:"MEDIASAAS_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"MEDIASAAS_JWT_ISSUER" required:"true"`
}

type CloudinaryConfig struct {
	CloudName     string        `envconfig:"MEDIASAAS_CLOUDINARY_CLOUD_NAME" required:"true"`
	APIKey        string        `envconfig:"MEDIASAAS_CLOUDINARY_API_KEY" required:"true"`
	APISecret     string        `envconfig:"MEDIASAAS_CLOUDINARY_API_SECRET" required:"true"`
	Folder        string        `envconfig:"MEDIASAAS_CLOUDINARY_FOLDER" default:"media-storage-uploads"`
	UploadTimeout time.Duration `envconfig:"MEDIASAAS_CLOUDINARY_UPLOAD_TIMEOUT" default:"2m"`
}

type UploadConfig struct {
	// MaxVideoBytes defaults to the 70 MiB ingestion cap.
	MaxVideoBytes   int64         `envconfig:"MEDIASAAS_UPLOAD_MAX_VIDEO_BYTES" default:"73400320"`
	MaxImageBytes   int64         `envconfig:"MEDIASAAS_UPLOAD_MAX_IMAGE_BYTES" default:"10485760"`
	RateLimitWindow time.Duration `envconfig:"MEDIASAAS_UPLOAD_RATE_LIMIT_WINDOW" default:"1m"`
	UserRateLimit   int           `envconfig:"MEDIASAAS_UPLOAD_RATE_LIMIT_USER" default:"10"`
	IPRateLimit     int           `envconfig:"MEDIASAAS_UPLOAD_RATE_LIMIT_IP" default:"30"`
}

type CleanupConfig struct {
	Retention time.Duration `envconfig:"MEDIASAAS_CLEANUP_RETENTION" default:"24h"`
	Interval  time.Duration `envconfig:"MEDIASAAS_CLEANUP_INTERVAL" default:"1h"`
	LockTTL   time.Duration `envconfig:"MEDIASAAS_CLEANUP_LOCK_TTL" default:"55m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MEDIASAAS_AUTO_MIGRATE" default:"false"`
}
