package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	httpapi "github.com/travelops/contact-insights/internal/api/http"
	"github.com/travelops/contact-insights/internal/apisrv/auth"
	"github.com/travelops/contact-insights/internal/export"
	"github.com/travelops/contact-insights/internal/filecleanup"
	"github.com/travelops/contact-insights/internal/store"
	"github.com/travelops/contact-insights/internal/tokenstore"
	"github.com/travelops/contact-insights/log"
)

// Config represents the global configuration for the service.
type Config struct {
	DB          store.Config       `mapstructure:"mysql"`
	Logger      log.Config         `mapstructure:"logger"`
	HTTP        httpapi.Config     `mapstructure:"http"`
	Auth        auth.Config        `mapstructure:"auth"`
	Redis       tokenstore.Config  `mapstructure:"redis"`
	FileCleanup filecleanup.Config `mapstructure:"file_cleanup"`
	Export      export.Config      `mapstructure:"export"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
func LoadConfig(cfgFile string) (*Config, error) {
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	bindEnvVars()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			// a missing file is fine, env vars can carry the whole config
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/config/contact-insights")
		viper.AddConfigPath("/etc/contact-insights")
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	return &config, nil
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars() {
	// MySQL
	viper.BindEnv("mysql.dsn", "MYSQL_DSN")
	viper.BindEnv("mysql.automigrate", "MYSQL_AUTOMIGRATE")
	viper.BindEnv("mysql.max_open_connections", "MYSQL_MAX_OPEN_CONNECTIONS")
	viper.BindEnv("mysql.max_idle_connections", "MYSQL_MAX_IDLE_CONNECTIONS")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	viper.BindEnv("http.port", "HTTP_PORT")
	viper.BindEnv("http.address", "HTTP_ADDRESS")
	viper.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")

	// Auth
	viper.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET")
	viper.BindEnv("auth.jwt_ttl", "AUTH_JWT_TTL")
	viper.BindEnv("auth.otp_ttl", "AUTH_OTP_TTL")
	viper.BindEnv("auth.reset_ttl", "AUTH_RESET_TTL")
	viper.BindEnv("auth.password_hasher_salt_size", "AUTH_PASSWORD_HASHER_SALT_SIZE")
	viper.BindEnv("auth.password_hasher_iterations", "AUTH_PASSWORD_HASHER_ITERATIONS")

	// Redis
	viper.BindEnv("redis.address", "REDIS_ADDRESS")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	// File cleanup
	viper.BindEnv("file_cleanup.worker_interval", "FILE_CLEANUP_WORKER_INTERVAL")
	viper.BindEnv("file_cleanup.retention", "FILE_CLEANUP_RETENTION")

	// Export
	viper.BindEnv("export.parallelism", "EXPORT_PARALLELISM")
}
