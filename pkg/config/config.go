package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable read by Load.
	EnvPrefix = "partsdesk"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv     = "PARTSDESK_APP_ENV"
	EnvPort       = "PARTSDESK_APP_PORT"
	EnvDBDSN      = "PARTSDESK_DB_DSN"
	EnvDBDriver   = "PARTSDESK_DB_DRIVER"
	EnvDBHost     = "PARTSDESK_DB_HOST"
	EnvDBUser     = "PARTSDESK_DB_USER"
	EnvDBName     = "PARTSDESK_DB_NAME"
	EnvRedisURL   = "PARTSDESK_REDIS_URL"
	EnvJWTSecret  = "PARTSDESK_JWT_SECRET"
	EnvJWTIssuer  = "PARTSDESK_JWT_ISSUER"
	EnvJWTExpMins = "PARTSDESK_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Uploads       UploadsConfig
	Offline       OfflineConfig
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
	Env          string `envconfig:"PARTSDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"PARTSDESK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PARTSDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PARTSDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PARTSDESK_DB_DSN"`
	Driver string `envconfig:"PARTSDESK_DB_DRIVER" default:"sqlite"`

	LegacyHost     string `envconfig:"PARTSDESK_DB_HOST"`
	LegacyPort     int    `envconfig:"PARTSDESK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PARTSDESK_DB_USER"`
	LegacyPassword string `envconfig:"PARTSDESK_DB_PASSWORD"`
	LegacyName     string `envconfig:"PARTSDESK_DB_NAME"`
	LegacySSLMode  string `envconfig:"PARTSDESK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PARTSDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PARTSDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PARTSDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PARTSDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver targets SQLite.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"PARTSDESK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PARTSDESK_REDIS_ADDR"`
	Password     string        `envconfig:"PARTSDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"PARTSDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PARTSDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PARTSDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PARTSDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PARTSDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PARTSDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"PARTSDESK_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"PARTSDESK_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"PARTSDESK_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"PARTSDESK_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PARTSDESK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PARTSDESK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PARTSDESK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PARTSDESK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PARTSDESK_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"PARTSDESK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"PARTSDESK_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"PARTSDESK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type UploadsConfig struct {
	Dir         string `envconfig:"PARTSDESK_UPLOADS_DIR" default:"uploads"`
	MaxUploadMB int    `envconfig:"PARTSDESK_MAX_UPLOAD_MB" default:"10"`
}

// MaxUploadBytes converts the configured megabyte cap to bytes.
func (u UploadsConfig) MaxUploadBytes() int64 {
	return int64(u.MaxUploadMB) * 1024 * 1024
}

type OfflineConfig struct {
	BaseURL       string        `envconfig:"PARTSDESK_OFFLINE_BASE_URL" default:"http://localhost:8080"`
	QueuePath     string        `envconfig:"PARTSDESK_OFFLINE_QUEUE_PATH" default:"offline-queue.db"`
	ProbeInterval time.Duration `envconfig:"PARTSDESK_OFFLINE_PROBE_INTERVAL" default:"15s"`
	FlushBatch    int           `envconfig:"PARTSDESK_OFFLINE_FLUSH_BATCH" default:"50"`
	MaxAttempts   int           `envconfig:"PARTSDESK_OFFLINE_MAX_ATTEMPTS" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate  bool `envconfig:"PARTSDESK_AUTO_MIGRATE" default:"false"`
	SeedDefaults bool `envconfig:"PARTSDESK_SEED_DEFAULTS" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.IsSQLite() {
		db.DSN = "partsdesk.db"
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
