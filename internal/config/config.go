package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// DevJWTSecret is the fallback signing secret. It is only acceptable for local development.
const DevJWTSecret = "your-secret-key"

// Config holds application level configuration loaded from the environment.
type Config struct {
	ServerPort string `mapstructure:"port"`

	JWTSecret  string        `mapstructure:"jwt_secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`

	DatabaseDriver string `mapstructure:"database_driver"`
	MySQLDSN       string `mapstructure:"mysql_dsn"`
	MongoURI       string `mapstructure:"mongo_uri"`
	MongoDatabase  string `mapstructure:"mongo_database"`

	RedisAddr string `mapstructure:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db"`
	RedisPass string `mapstructure:"redis_password"`

	MediaBackend  string `mapstructure:"media_backend"`
	UploadDir     string `mapstructure:"upload_dir"`
	MediaMaxBytes int64  `mapstructure:"media_max_bytes"`
	S3Bucket      string `mapstructure:"s3_bucket"`
	S3Prefix      string `mapstructure:"s3_prefix"`
	S3Region      string `mapstructure:"s3_region"`
	S3Endpoint    string `mapstructure:"s3_endpoint"`
	AWSProfile    string `mapstructure:"aws_profile"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	SwaggerHost string `mapstructure:"swagger_host"`
}

var defaults = map[string]any{
	"port":            "5000",
	"jwt_secret":      DevJWTSecret,
	"token_ttl":       time.Hour,
	"bcrypt_cost":     10,
	"database_driver": "mysql",
	"mysql_dsn":       "user:password@tcp(localhost:3306)/userdb?charset=utf8mb4&parseTime=True&loc=Local",
	"mongo_uri":       "mongodb://localhost:27017",
	"mongo_database":  "userdb",
	"redis_addr":      "",
	"redis_db":        0,
	"redis_password":  "",
	"media_backend":   "local",
	"upload_dir":      "uploads",
	"media_max_bytes": int64(5 << 20),
	"s3_bucket":       "",
	"s3_prefix":       "profile-pictures",
	"s3_region":       "us-east-1",
	"s3_endpoint":     "",
	"aws_profile":     "",
	"log_level":       "info",
	"log_format":      "text",
	"swagger_host":    "",
}

// Load builds Config from defaults, an optional .env file and the environment.
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		_ = v.ReadInConfig() // optional file
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	switch cfg.DatabaseDriver {
	case "mysql", "mongo":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
	switch cfg.MediaBackend {
	case "local", "s3":
	default:
		return nil, fmt.Errorf("unsupported media backend %q", cfg.MediaBackend)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}

	return &cfg, nil
}

// UsesDevSecret reports whether the development signing secret is configured.
func (c *Config) UsesDevSecret() bool {
	return c.JWTSecret == DevJWTSecret
}
