// Package config provides Viper-based hierarchical configuration management
// and environment loading for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	once sync.Once
	// Logger is the global logger instance shared across the application
	Logger = logrus.New()
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	App struct {
		// Mode is either "prod" or "demo"
		Mode string `mapstructure:"mode" yaml:"mode"`
	} `mapstructure:"app" yaml:"app"`

	Schema struct {
		CategoriesFile string `mapstructure:"categories_file" yaml:"categories_file"`
		FieldsFile     string `mapstructure:"fields_file" yaml:"fields_file"`
	} `mapstructure:"schema" yaml:"schema"`

	Database struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"database" yaml:"database"`

	Demo struct {
		Days        int `mapstructure:"days" yaml:"days"`
		MinPerMonth int `mapstructure:"min_per_month" yaml:"min_per_month"`
		CacheSize   int `mapstructure:"cache_size" yaml:"cache_size"`
		CacheTTL    int `mapstructure:"cache_ttl_minutes" yaml:"cache_ttl_minutes"`
	} `mapstructure:"demo" yaml:"demo"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.cashsense")
	v.AddConfigPath(".cashsense")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("CASHSENSE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// App defaults
	v.SetDefault("app.mode", "prod")

	// Schema defaults: empty means use the embedded schema
	v.SetDefault("schema.categories_file", "")
	v.SetDefault("schema.fields_file", "")

	// Database defaults
	v.SetDefault("database.path", "data/cashsense.db")

	// Demo data defaults
	v.SetDefault("demo.days", 30)
	v.SetDefault("demo.min_per_month", 15)
	v.SetDefault("demo.cache_size", 128)
	v.SetDefault("demo.cache_ttl_minutes", 60)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.App.Mode != "prod" && config.App.Mode != "demo" {
		return fmt.Errorf("invalid app mode: %s (must be 'prod' or 'demo')", config.App.Mode)
	}

	if config.Demo.Days < 1 {
		return fmt.Errorf("demo.days must be positive, got: %d", config.Demo.Days)
	}

	if config.Demo.MinPerMonth < 0 {
		return fmt.Errorf("demo.min_per_month must not be negative, got: %d", config.Demo.MinPerMonth)
	}

	return nil
}

// ConfigureLogging configures the global logger from the given configuration
// and returns it.
func ConfigureLogging(config *Config) *logrus.Logger {
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		Logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	Logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return Logger
}

// LoadEnv loads environment variables from a .env file if one exists
func LoadEnv() {
	once.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				Logger.Info("No .env file found, using environment variables")
				return
			}
		}

		if err := godotenv.Load(envFile); err != nil {
			Logger.Warnf("Error loading .env file: %v", err)
			return
		}
		Logger.Infof("Loaded environment variables from %s", envFile)
	})
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
