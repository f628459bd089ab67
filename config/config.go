package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Backend API (the Express/Mongo service owning clients and bookings).
	BackendAPIURL     string `mapstructure:"BACKEND_API_URL"`
	BackendAPIKey     string `mapstructure:"BACKEND_API_KEY"`
	BackendTimeoutSec int    `mapstructure:"BACKEND_TIMEOUT_SEC"`

	// Draft store configuration. DRAFT_STORE is "memory" or "redis".
	DraftStore      string `mapstructure:"DRAFT_STORE"`
	DraftTTLMinutes int    `mapstructure:"DRAFT_TTL_MINUTES"`

	// Redis configuration (used when DRAFT_STORE=redis).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDraftDB  int    `mapstructure:"REDIS_DRAFT_DB"`

	// Comma-separated list of origins allowed to call the wizard API.
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("BACKEND_API_URL", "http://localhost:5000/api")
	viper.SetDefault("BACKEND_API_KEY", "")
	viper.SetDefault("BACKEND_TIMEOUT_SEC", 15)
	viper.SetDefault("DRAFT_STORE", "memory")
	viper.SetDefault("DRAFT_TTL_MINUTES", 30)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DRAFT_DB", 0)
	viper.SetDefault("ALLOWED_ORIGINS", "*")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// BackendTimeout returns the HTTP timeout for backend API calls.
func BackendTimeout() time.Duration {
	secs := AppConfig.BackendTimeoutSec
	if secs <= 0 {
		secs = 15
	}
	return time.Duration(secs) * time.Second
}

// DraftTTL returns how long an untouched draft survives in the store.
func DraftTTL() time.Duration {
	mins := AppConfig.DraftTTLMinutes
	if mins <= 0 {
		mins = 30
	}
	return time.Duration(mins) * time.Minute
}
