package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment key, e.g. GERMINATION_PORT.
const EnvPrefix = "GERMINATION"

type AppConfig struct {
	AppName     string `mapstructure:"app_name"`
	Port        int    `mapstructure:"port"`
	DBPath      string `mapstructure:"db_path"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

func DefaultConfig() *AppConfig {
	return &AppConfig{
		AppName:     "Germination Tracker",
		Port:        3000,
		DBPath:      "germination.db",
		AutoMigrate: true,
		Environment: "dev",
		LogLevel:    "info",
	}
}

// Addr is the fiber listen address for Port.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads the configuration from GERMINATION_* variables and, when
// CONFIG_FILE is set, from that file. Environment values win over the file.
func Load() (*AppConfig, error) {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("app_name", def.AppName)
	v.SetDefault("port", def.Port)
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("auto_migrate", def.AutoMigrate)
	v.SetDefault("environment", def.Environment)
	v.SetDefault("log_level", def.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if p := os.Getenv("CONFIG_FILE"); p != "" {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", p, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db_path must not be empty")
	}
	return cfg, nil
}
