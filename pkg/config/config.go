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
	Admin        AdminConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	GCS          GCSConfig
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
	Env          string `envconfig:"INGENIO_APP_ENV" required:"true"`
	Port         string `envconfig:"INGENIO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"INGENIO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"INGENIO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"INGENIO_DB_DSN"`
	Driver string `envconfig:"INGENIO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"INGENIO_DB_HOST"`
	LegacyPort     int    `envconfig:"INGENIO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"INGENIO_DB_USER"`
	LegacyPassword string `envconfig:"INGENIO_DB_PASSWORD"`
	LegacyName     string `envconfig:"INGENIO_DB_NAME"`
	LegacySSLMode  string `envconfig:"INGENIO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"INGENIO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"INGENIO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"INGENIO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"INGENIO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"INGENIO_REDIS_URL"`
	Address      string        `envconfig:"INGENIO_REDIS_ADDR"`
	Password     string        `envconfig:"INGENIO_REDIS_PASSWORD"`
	DB           int           `envconfig:"INGENIO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"INGENIO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"INGENIO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"INGENIO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"INGENIO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"INGENIO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"INGENIO_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"INGENIO_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"INGENIO_JWT_EXPIRATION_MINUTES" default:"720"`
}

// AdminConfig holds the shared admin credential. The panel uses a single
// password, there is no user table.
type AdminConfig struct {
	Password string `envconfig:"INGENIO_ADMIN_PASSWORD" required:"true"`
}

// CheckoutConfig carries storefront checkout constants.
type CheckoutConfig struct {
	ShippingFee   int    `envconfig:"INGENIO_CHECKOUT_SHIPPING_FEE" default:"100"`
	WhatsAppPhone string `envconfig:"INGENIO_CHECKOUT_WHATSAPP_PHONE"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"INGENIO_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"INGENIO_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"INGENIO_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"INGENIO_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"INGENIO_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName string `envconfig:"INGENIO_GCS_BUCKET_NAME"`
	PathPrefix string `envconfig:"INGENIO_GCS_PATH_PREFIX" default:"products"`
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
