package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string
	Port   string

	Backend BackendConfig
	Auth    AuthConfig
	Session SessionConfig
	Redis   RedisConfig
	Minio   MinioConfig
	Elastic ElasticConfig
	Logger  LoggerConfig

	// ImageBaseURL prefixes relative product image paths.
	ImageBaseURL string
	// TrackingBaseURL is the storefront page a tracking QR code points to
	// when the order has no courier link yet.
	TrackingBaseURL string
	CORSOrigins     []string

	// EnvFileLoaded is false when no .env file was found and only the
	// process environment was used.
	EnvFileLoaded bool
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AuthConfig struct {
	JWTSecret string
}

type SessionConfig struct {
	Secret string
	Idle   time.Duration
	Secure bool
}

type RedisConfig struct {
	Host       string
	Password   string
	DB         int
	CatalogTTL time.Duration
}

type MinioConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Bucket       string
	UseSSL       bool
	SignedURLTTL time.Duration
}

type ElasticConfig struct {
	Addresses []string
	Username  string
	Password  string
	Index     string
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads .env (when present) then the process environment.
func Load(files ...string) *Config {
	if len(files) == 0 {
		files = []string{".env"}
	}
	loaded := godotenv.Load(files...) == nil

	return &Config{
		AppEnv: get("APP_ENV", "development"),
		Port:   get("PORT", "8080"),

		Backend: BackendConfig{
			BaseURL: strings.TrimRight(get("BACKEND_BASE_URL", ""), "/"),
			Timeout: getDuration("BACKEND_TIMEOUT", 15*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret: get("JWT_SECRET", ""),
		},
		Session: SessionConfig{
			Secret: get("SESSION_SECRET", ""),
			Idle:   getDuration("POS_SESSION_IDLE", 12*time.Hour),
			Secure: getBool("SESSION_SECURE", false),
		},
		Redis: RedisConfig{
			Host:       get("REDIS_HOST", ""),
			Password:   get("REDIS_PASSWORD", ""),
			DB:         getInt("REDIS_DB", 0),
			CatalogTTL: getDuration("CATALOG_CACHE_TTL", 30*time.Second),
		},
		Minio: MinioConfig{
			Endpoint:     get("MINIO_ENDPOINT", ""),
			AccessKey:    get("MINIO_ACCESS_KEY", ""),
			SecretKey:    get("MINIO_SECRET_KEY", ""),
			Bucket:       get("MINIO_BUCKET", "product-images"),
			UseSSL:       getBool("MINIO_USE_SSL", false),
			SignedURLTTL: getDuration("MINIO_SIGNED_URL_TTL", time.Hour),
		},
		Elastic: ElasticConfig{
			Addresses: getSlice("ELASTICSEARCH_ADDRESSES", nil),
			Username:  get("ELASTICSEARCH_USERNAME", ""),
			Password:  get("ELASTICSEARCH_PASSWORD", ""),
			Index:     get("ELASTICSEARCH_INDEX", "pos-products"),
		},
		Logger: LoggerConfig{
			Level:    get("LOGGER_LEVEL", "info"),
			Encoding: get("LOGGER_ENCODING", "json"),
		},

		ImageBaseURL:    get("IMAGE_BASE_URL", ""),
		TrackingBaseURL: strings.TrimRight(get("ORDER_TRACKING_URL", ""), "/"),
		CORSOrigins:     getSlice("CORS_ORIGINS", []string{"http://localhost:5173"}),
		EnvFileLoaded:   loaded,
	}
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev"
}

// Validate reports the settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Backend.BaseURL == "" {
		errs = append(errs, errors.New("BACKEND_BASE_URL is required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}
	return errors.Join(errs...)
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func getSlice(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
