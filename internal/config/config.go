package config

import (
	"errors"
	"strings"

	"warbler/backend/pkg/log"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	SessionBackendCookie = "cookie"
	SessionBackendRedis  = "redis"
)

// Config holds the application configuration.
type Config struct {
	AppEnv          string `mapstructure:"APP_ENV"`
	Port            int    `mapstructure:"PORT"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	SecretKey       string `mapstructure:"SECRET_KEY"`
	JWTSecret       string `mapstructure:"JWT_SECRET"`
	SessionBackend  string `mapstructure:"SESSION_BACKEND"`
	SessionTTLHours int    `mapstructure:"SESSION_TTL_HOURS"`
	RedisURL        string `mapstructure:"REDIS_URL"`
}

var AppConfig *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "postgres://localhost:5432/warbler?sslmode=disable")
	v.SetDefault("SECRET_KEY", "it's a secret")
	v.SetDefault("JWT_SECRET", "it's also a secret")
	v.SetDefault("SESSION_BACKEND", SessionBackendCookie)
	v.SetDefault("SESSION_TTL_HOURS", 24*7)
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
}

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() error {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName(".env")
	v.SetConfigType("env")
	setDefaults(v)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.L.Info(".env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	AppConfig = &cfg
	log.SetLevel(cfg.LogLevel)
	log.L.Debug("configuration loaded", zap.String("env", cfg.AppEnv), zap.String("session_backend", cfg.SessionBackend))
	return nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.SessionBackend {
	case SessionBackendCookie, SessionBackendRedis:
	default:
		return errors.New("SESSION_BACKEND must be cookie or redis, got " + c.SessionBackend)
	}
	if c.Production() {
		if c.SecretKey == "" || c.SecretKey == "it's a secret" {
			return errors.New("SECRET_KEY must be set in production")
		}
		if c.JWTSecret == "" || c.JWTSecret == "it's also a secret" {
			return errors.New("JWT_SECRET must be set in production")
		}
	}
	return nil
}

func (c *Config) Production() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Get returns AppConfig, loading it on first use.
func Get() *Config {
	if AppConfig == nil {
		if err := LoadConfig(); err != nil {
			log.L.Fatal("unable to load configuration", zap.Error(err))
		}
	}
	return AppConfig
}
