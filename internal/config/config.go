// Package config loads daemon configuration from a YAML file and
// THERMOPRINT_* environment variables. Every field has a usable
// default; a missing config file is not an error.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full daemon configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Printing PrintingConfig `mapstructure:"printing"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// Address returns the host:port the API binds to.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// PrintingConfig configures rendering defaults and job delivery.
type PrintingConfig struct {
	RegistryPath    string        `mapstructure:"registry_path"`
	MaxRetries      int           `mapstructure:"max_retries"`
	MonitorInterval time.Duration `mapstructure:"monitor_interval"`
	DefaultWidth    string        `mapstructure:"default_width"`
	DefaultCurrency string        `mapstructure:"default_currency"`
	DefaultLanguage string        `mapstructure:"default_language"`
}

// LoggingConfig configures the zap logger and file rotation.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // json or console
	Output     string `mapstructure:"output"` // stdout, stderr, or a file path
	MaxSize    int    `mapstructure:"max_size"` // MB per rotated file
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

// Load reads configuration from the given file path (optional) plus
// environment variables and returns it with defaults applied.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("THERMOPRINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("thermoprint")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/thermoprint")
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8330)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("printing.registry_path", "./devices.json")
	v.SetDefault("printing.max_retries", 3)
	v.SetDefault("printing.monitor_interval", "5s")
	v.SetDefault("printing.default_width", "80mm")
	v.SetDefault("printing.default_currency", "FCFA")
	v.SetDefault("printing.default_language", "fr")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", true)
}
