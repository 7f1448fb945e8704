package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address           string        `mapstructure:"address"`
	Port              int           `mapstructure:"port"`
	Mode              string        `mapstructure:"mode"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"` // covers CSV/XLSX rendering
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr is the listen address, host:port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Address, strconv.Itoa(s.Port))
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // sqlite | postgres | mysql
	Path         string `mapstructure:"path"`   // sqlite file
	DSN          string `mapstructure:"dsn"`    // postgres / mysql
	LogMode      bool   `mapstructure:"log_mode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type AuthConfig struct {
	APIKey     string `mapstructure:"api_key"`
	APIKeyHash string `mapstructure:"api_key_hash"` // bcrypt, takes precedence over api_key
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type AppSubConfig struct {
	Timezone       string   `mapstructure:"timezone"`
	StrictNotFound bool     `mapstructure:"strict_not_found"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	App      AppSubConfig   `mapstructure:"app"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_header_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/solar-burji.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.log_mode", false)
	// keys must be known to viper for SBA_* overrides to reach Unmarshal
	v.SetDefault("auth.api_key", "")
	v.SetDefault("auth.api_key_hash", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("app.timezone", "Local")
	v.SetDefault("app.strict_not_found", false)
	v.SetDefault("app.cors_origins", []string{"*"})
}

// Load reads configuration from the given YAML file (e.g. "config.yaml").
// If path is empty, "config.yaml" in the working directory is used. A missing file
// is fine: defaults plus SBA_* environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	// environment overrides, e.g. SBA_AUTH_API_KEY=secret
	v.SetEnvPrefix("SBA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("config: database.path required for sqlite")
		}
	case "postgres", "mysql":
		if c.Database.DSN == "" {
			return fmt.Errorf("config: database.dsn required for %s", c.Database.Driver)
		}
	default:
		return fmt.Errorf("config: unsupported database.driver %q", c.Database.Driver)
	}
	if c.Auth.APIKey == "" && c.Auth.APIKeyHash == "" {
		return fmt.Errorf("config: auth.api_key or auth.api_key_hash must be set")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves app.timezone; it decides what "today" means for reports.
func (c *Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: app.timezone: %w", err)
	}
	return loc, nil
}
