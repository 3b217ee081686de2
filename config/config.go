package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort    int           `mapstructure:"http_port"`
	LogLevel    string        `mapstructure:"log_level"`
	DatabaseURL string        `mapstructure:"database_url"`
	ServiceName string        `mapstructure:"service_name"`
	JwtSecret   string        `mapstructure:"jwt_secret"`
	JwtTTL      time.Duration `mapstructure:"jwt_ttl"`

	SeedAdminEmail    string `mapstructure:"seed_admin_email"`
	SeedAdminPassword string `mapstructure:"seed_admin_password"`

	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	SMTPFrom     string `mapstructure:"smtp_from"`
}

var AppConfig Config

// InitConfig loads config.yaml (if present) and applies BNC_* environment
// overrides on top of the defaults.
func InitConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix("BNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("http_port", 8080)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("service_name", "bnconnect")
	viper.SetDefault("jwt_secret", "default-very-insecure-secret-key") // CHANGE THIS IN PRODUCTION
	viper.SetDefault("jwt_ttl", "24h")
	viper.SetDefault("seed_admin_email", "admin@example.com")
	viper.SetDefault("seed_admin_password", "admin123")
	viper.SetDefault("smtp_port", 587)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("Config file not found, using defaults and environment variables.")
		} else {
			panic(fmt.Errorf("fatal error reading config file: %w", err))
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		panic(fmt.Errorf("unable to decode config into struct: %w", err))
	}
}
