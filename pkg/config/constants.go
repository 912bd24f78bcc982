package config

const (
	EnvPrefix = "ingenio"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv        = "INGENIO_APP_ENV"
	EnvPort          = "INGENIO_APP_PORT"
	EnvDBDSN         = "INGENIO_DB_DSN"
	EnvDBHost        = "INGENIO_DB_HOST"
	EnvDBUser        = "INGENIO_DB_USER"
	EnvDBName        = "INGENIO_DB_NAME"
	EnvRedisURL      = "INGENIO_REDIS_URL"
	EnvRedisAddr     = "INGENIO_REDIS_ADDR"
	EnvJWTSecret     = "INGENIO_JWT_SECRET"
	EnvJWTIssuer     = "INGENIO_JWT_ISSUER"
	EnvAdminPassword = "INGENIO_ADMIN_PASSWORD"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
