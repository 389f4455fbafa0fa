// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port            string `mapstructure:"PORT"`
	Env             string `mapstructure:"APP_ENV"`
	JWTSecret       string `mapstructure:"JWT_SECRET"`
	RefreshSecret   string `mapstructure:"REFRESH_TOKEN_SECRET"`
	AccessTokenTTL  time.Duration `mapstructure:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL time.Duration `mapstructure:"REFRESH_TOKEN_TTL"`
	DBHost          string `mapstructure:"DB_HOST"`
	DBPort          string `mapstructure:"DB_PORT"`
	DBUser          string `mapstructure:"DB_USER"`
	DBPassword      string `mapstructure:"DB_PASSWORD"`
	DBName          string `mapstructure:"DB_NAME"`
	DBSSLMode       string `mapstructure:"DB_SSLMODE"`
	RedisURL        string `mapstructure:"REDIS_URL"`
	AllowedOrigins  string `mapstructure:"ALLOWED_ORIGINS"`
	MediaEndpoint   string `mapstructure:"MEDIA_ENDPOINT"`
	MediaAccessKey  string `mapstructure:"MEDIA_ACCESS_KEY"`
	MediaSecretKey  string `mapstructure:"MEDIA_SECRET_KEY"`
	MediaBucket     string `mapstructure:"MEDIA_BUCKET"`
	MediaPublicURL  string `mapstructure:"MEDIA_PUBLIC_URL"`
	MediaUseSSL     bool   `mapstructure:"MEDIA_USE_SSL"`
	MaxUploadBytes  int64  `mapstructure:"MAX_UPLOAD_BYTES"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// Initial read to get APP_ENV if set in base config
	// We intentionally ignore this error as the config file may not exist yet
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			log.Printf("No config.%s.yml profile found, using base config and environment", env)
		}
	}

	// Set default values for development
	viper.SetDefault("PORT", "8420")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("JWT_SECRET", "your-secret-key-change-in-production")
	viper.SetDefault("REFRESH_TOKEN_SECRET", "your-refresh-secret-change-in-production")
	viper.SetDefault("ACCESS_TOKEN_TTL", "24h")
	viper.SetDefault("REFRESH_TOKEN_TTL", "240h")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "videotube")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("MEDIA_ENDPOINT", "localhost:9000")
	viper.SetDefault("MEDIA_ACCESS_KEY", "minioadmin")
	viper.SetDefault("MEDIA_SECRET_KEY", "minioadmin")
	viper.SetDefault("MEDIA_BUCKET", "videotube-media")
	viper.SetDefault("MEDIA_PUBLIC_URL", "http://localhost:9000/videotube-media")
	viper.SetDefault("MEDIA_USE_SSL", false)
	viper.SetDefault("MAX_UPLOAD_BYTES", int64(512*1024*1024))

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.RefreshSecret == "" {
		return errors.New("REFRESH_TOKEN_SECRET is required")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("token TTLs must be positive durations")
	}

	isProduction := c.Env == "production" || c.Env == "prod"

	// Strict checks for production
	if isProduction {
		if c.JWTSecret == "your-secret-key-change-in-production" {
			return errors.New("JWT_SECRET must be changed from the default value in production")
		}
		if len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters in production")
		}
		if c.RefreshSecret == "your-refresh-secret-change-in-production" {
			return errors.New("REFRESH_TOKEN_SECRET must be changed from the default value in production")
		}
		if c.DBPassword == "password" || c.DBPassword == "" {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
			return errors.New("DB_SSLMODE must enable SSL in production")
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	} else {
		// Development/Test warnings
		if len(c.JWTSecret) < 32 {
			log.Println("WARNING: JWT_SECRET is shorter than 32 characters. Consider using a stronger secret for production.")
		}
	}

	return nil
}
