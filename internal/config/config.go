// PlantDiseaseDetector | 2026
// config.go

package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App        AppConfig        `koanf:"app"`
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Redis      RedisConfig      `koanf:"redis"`
	JWT        JWTConfig        `koanf:"jwt"`
	Upload     UploadConfig     `koanf:"upload"`
	Classifier ClassifierConfig `koanf:"classifier"`
	Seed       SeedConfig       `koanf:"seed"`
	Mirror     MirrorConfig     `koanf:"mirror"`
	RateLimit  RateLimitConfig  `koanf:"rate_limit"`
	CORS       CORSConfig       `koanf:"cors"`
	Log        LogConfig        `koanf:"log"`
	Otel       OtelConfig       `koanf:"otel"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type JWTConfig struct {
	PrivateKeyPath    string        `koanf:"private_key_path"`
	PublicKeyPath     string        `koanf:"public_key_path"`
	AccessTokenExpire time.Duration `koanf:"access_token_expire"`
	Issuer            string        `koanf:"issuer"`
	Audience          string        `koanf:"audience"`
	CookieName        string        `koanf:"cookie_name"`
	CookieSecure      bool          `koanf:"cookie_secure"`
}

// UploadConfig bounds the leaf-photo store: where files land, how big
// they may be, and how long orphans survive before the retention sweep
// reclaims them.
type UploadConfig struct {
	Dir           string        `koanf:"dir"`
	MaxSizeBytes  int64         `koanf:"max_size_bytes"`
	RetentionAge  time.Duration `koanf:"retention_age"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

type ClassifierConfig struct {
	Endpoint   string        `koanf:"endpoint"`
	LabelsPath string        `koanf:"labels_path"`
	Timeout    time.Duration `koanf:"timeout"`
}

type SeedConfig struct {
	CatalogPath string `koanf:"catalog_path"`
}

// MirrorConfig drives the optional best-effort copy of stored images to
// an S3-compatible bucket such as Backblaze B2.
type MirrorConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Endpoint  string `koanf:"endpoint"`
	Region    string `koanf:"region"`
	Bucket    string `koanf:"bucket"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
}

type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
	Burst    int           `koanf:"burst"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

var (
	cfg     *Config
	loadErr error
	once    sync.Once
)

// Load parses configuration once per process. A failed first load is
// sticky: later calls return the same error instead of a nil config.
func Load(configPath string) (*Config, error) {
	once.Do(func() {
		k := koanf.New(".")

		if err := loadDefaults(k); err != nil {
			loadErr = fmt.Errorf("load defaults: %w", err)
			return
		}

		if configPath != "" {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				loadErr = fmt.Errorf("load config file: %w", err)
				return
			}
		}

		if err := k.Load(env.Provider("", ".", envKeyReplacer), nil); err != nil {
			loadErr = fmt.Errorf("load env vars: %w", err)
			return
		}

		cfg = &Config{}
		if err := k.Unmarshal("", cfg); err != nil {
			loadErr = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		if err := validate(cfg); err != nil {
			loadErr = fmt.Errorf("validate config: %w", err)
			return
		}
	})

	if loadErr != nil {
		return nil, loadErr
	}

	return cfg, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":        "Plant Disease Detector",
		"app.version":     "1.0.0",
		"app.environment": "development",

		"server.host":             "0.0.0.0",
		"server.port":             8080,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "60s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",

		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",

		"redis.pool_size":      10,
		"redis.min_idle_conns": 5,

		"jwt.access_token_expire": "24h",
		"jwt.issuer":              "plant-disease-detector",
		"jwt.audience":            "plant-disease-detector-api",
		"jwt.private_key_path":    "keys/private.pem",
		"jwt.public_key_path":     "keys/public.pem",
		"jwt.cookie_name":         "access_token",
		"jwt.cookie_secure":       false,

		"upload.dir":            "uploads",
		"upload.max_size_bytes": 10 << 20,
		"upload.retention_age":  "720h",
		"upload.sweep_interval": "24h",

		"classifier.endpoint":    "http://localhost:9000",
		"classifier.labels_path": "ml_model/class_disease.json",
		"classifier.timeout":     "30s",

		"seed.catalog_path": "data/diseases.json",

		"mirror.enabled": false,
		"mirror.region":  "us-west-004",

		"rate_limit.requests": 100,
		"rate_limit.window":   "1m",
		"rate_limit.burst":    20,

		"cors.allowed_origins": []string{"http://localhost:3000"},
		"cors.allowed_methods": []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
		},
		"cors.allowed_headers": []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		"cors.allow_credentials": true,
		"cors.max_age":           300,

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "plant-disease-detector",
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"DATABASE_URL":            "database.url",
	"REDIS_URL":               "redis.url",
	"ENVIRONMENT":             "app.environment",
	"HOST":                    "server.host",
	"PORT":                    "server.port",
	"LOG_LEVEL":               "log.level",
	"LOG_FORMAT":              "log.format",
	"JWT_PRIVATE_KEY_PATH":    "jwt.private_key_path",
	"JWT_PUBLIC_KEY_PATH":     "jwt.public_key_path",
	"JWT_ACCESS_TOKEN_EXPIRE": "jwt.access_token_expire",
	"JWT_ISSUER":              "jwt.issuer",
	"JWT_AUDIENCE":            "jwt.audience",
	"JWT_COOKIE_SECURE":       "jwt.cookie_secure",
	"UPLOAD_DIR":              "upload.dir",
	"UPLOAD_RETENTION_AGE":    "upload.retention_age",
	"UPLOAD_SWEEP_INTERVAL":   "upload.sweep_interval",
	"CLASSIFIER_ENDPOINT":     "classifier.endpoint",
	"CLASSIFIER_LABELS_PATH":  "classifier.labels_path",
	"SEED_CATALOG_PATH":       "seed.catalog_path",
	"B2_ENDPOINT":             "mirror.endpoint",
	"B2_BUCKET_NAME":          "mirror.bucket",
	"B2_ACCESS_KEY":           "mirror.access_key",
	"B2_SECRET_KEY":           "mirror.secret_key",
	"MIRROR_ENABLED":          "mirror.enabled",
	"RATE_LIMIT_REQUESTS":     "rate_limit.requests",
	"RATE_LIMIT_WINDOW":       "rate_limit.window",
	"RATE_LIMIT_BURST":        "rate_limit.burst",
	"OTEL_ENDPOINT":           "otel.endpoint",
	"OTEL_SERVICE_NAME":       "otel.service_name",
	"OTEL_ENABLED":            "otel.enabled",
	"OTEL_INSECURE":           "otel.insecure",
	"OTEL_SAMPLE_RATE":        "otel.sample_rate",
}

func envKeyReplacer(s string) string {
	if mapped, ok := envKeyMap[s]; ok {
		return mapped
	}
	return ""
}

func validate(c *Config) error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.JWT.PrivateKeyPath == "" {
		return fmt.Errorf("JWT_PRIVATE_KEY_PATH is required")
	}

	if c.Upload.Dir == "" {
		return fmt.Errorf("upload.dir is required")
	}

	if c.Upload.RetentionAge <= 0 {
		return fmt.Errorf("upload.retention_age must be positive")
	}

	if c.Mirror.Enabled {
		if c.Mirror.Endpoint == "" || c.Mirror.Bucket == "" {
			return fmt.Errorf("mirror requires endpoint and bucket")
		}
	}

	if c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf(
					"CORS wildcard '*' cannot be used with AllowCredentials",
				)
			}
		}
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
