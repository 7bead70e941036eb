package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds runtime settings for the CLI and HTTP server. Everything can
// be set via environment (QUOTE_ prefix) or an optional config file; the
// database is optional, catalog and policies can come from files instead.
type Config struct {
	DatabaseURL            string   `mapstructure:"database_url"`
	Port                   string   `mapstructure:"port"`
	LogLevel               string   `mapstructure:"log_level"`
	CatalogFile            string   `mapstructure:"catalog_file"`
	PolicyFile             string   `mapstructure:"policy_file"`
	AuditDir               string   `mapstructure:"audit_dir"`
	DefaultMeasurementUnit string   `mapstructure:"default_measurement_unit"`
	CORSOrigins            []string `mapstructure:"cors_origins"`
}

// Load reads configuration from the environment and, when present, a
// quote-engine.yaml in the working directory.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("audit_dir", "audit")
	v.SetDefault("default_measurement_unit", "ft")
	v.SetDefault("cors_origins", []string{"http://localhost:5173", "http://localhost:3000"})

	v.SetEnvPrefix("QUOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("quote-engine")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// HasDatabase reports whether a Postgres catalog/version store is configured
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}
