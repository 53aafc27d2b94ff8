package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "VISIONHUT"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "VISIONHUT_APP_ENV"
	EnvPort       = "VISIONHUT_APP_PORT"
	EnvDBDSN      = "VISIONHUT_DB_DSN"
	EnvDBHost     = "VISIONHUT_DB_HOST"
	EnvDBUser     = "VISIONHUT_DB_USER"
	EnvDBName     = "VISIONHUT_DB_NAME"
	EnvRedisURL   = "VISIONHUT_REDIS_URL"
	EnvJWTSecret  = "VISIONHUT_JWT_SECRET"
	EnvJWTIssuer  = "VISIONHUT_JWT_ISSUER"
	EnvJWTExpMins = "VISIONHUT_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
