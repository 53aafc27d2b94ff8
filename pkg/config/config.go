package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	FeatureFlags  FeatureFlagsConfig
	AuthRateLimit AuthRateLimitConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	BigQuery      BigQueryConfig
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
	Env          string `envconfig:"VISIONHUT_APP_ENV" required:"true"`
	Port         string `envconfig:"VISIONHUT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VISIONHUT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VISIONHUT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"VISIONHUT_DB_DSN"`

	LegacyHost     string `envconfig:"VISIONHUT_DB_HOST"`
	LegacyPort     int    `envconfig:"VISIONHUT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VISIONHUT_DB_USER"`
	LegacyPassword string `envconfig:"VISIONHUT_DB_PASSWORD"`
	LegacyName     string `envconfig:"VISIONHUT_DB_NAME"`
	LegacySSLMode  string `envconfig:"VISIONHUT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VISIONHUT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VISIONHUT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VISIONHUT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VISIONHUT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VISIONHUT_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"VISIONHUT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VISIONHUT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VISIONHUT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VISIONHUT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VISIONHUT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"VISIONHUT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"VISIONHUT_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"VISIONHUT_JWT_EXPIRATION_MINUTES" default:"480"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"VISIONHUT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"VISIONHUT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"VISIONHUT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"VISIONHUT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"VISIONHUT_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"VISIONHUT_AUTH_LOGIN_WINDOW" default:"15m"`
	LoginIPLimit    int           `envconfig:"VISIONHUT_AUTH_LOGIN_IP_LIMIT" default:"20"`
	LoginEmailLimit int           `envconfig:"VISIONHUT_AUTH_LOGIN_EMAIL_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate        bool `envconfig:"VISIONHUT_AUTO_MIGRATE" default:"false"`
	AuditPublishEvents bool `envconfig:"VISIONHUT_AUDIT_PUBLISH_EVENTS" default:"true"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"VISIONHUT_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"VISIONHUT_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"VISIONHUT_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	CalculationTopic        string        `envconfig:"VISIONHUT_PUBSUB_CALCULATION_TOPIC" default:"vh-calculation-events"`
	CalculationSubscription string        `envconfig:"VISIONHUT_PUBSUB_CALCULATION_SUBSCRIPTION" default:"vh-calculation-events-worker"`
	IdempotencyTTL          time.Duration `envconfig:"VISIONHUT_PUBSUB_IDEMPOTENCY_TTL" default:"24h"`
}

type BigQueryConfig struct {
	Dataset           string `envconfig:"VISIONHUT_BIGQUERY_DATASET" default:"visionhut"`
	CalculationsTable string `envconfig:"VISIONHUT_BIGQUERY_CALCULATIONS_TABLE" default:"calculation_events"`
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
