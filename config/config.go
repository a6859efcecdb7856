package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// External auth backend (admin login, profile, refresh).
	AuthAPIURL string `mapstructure:"AUTH_API_URL"`

	// Content on disk.
	LegalDocsDir string `mapstructure:"LEGAL_DOCS_DIR"`
	ContentDir   string `mapstructure:"CONTENT_DIR"`

	// Admin surface feature flag.
	AdminEnabled bool `mapstructure:"ADMIN_ENABLED"`

	// Public site base URL, used by the payment-return redirect.
	SiteBaseURL string `mapstructure:"SITE_BASE_URL"`

	// Redis configuration (admin session store).
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
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
	viper.SetDefault("AUTH_API_URL", "http://localhost:9000/api")
	viper.SetDefault("LEGAL_DOCS_DIR", "_resources/legal")
	viper.SetDefault("CONTENT_DIR", "_resources/content")
	viper.SetDefault("ADMIN_ENABLED", true)
	viper.SetDefault("SITE_BASE_URL", "https://cocoti.app")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 1)

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
