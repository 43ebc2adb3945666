// Package config loads server configuration.
//
// Priority (highest to lowest):
//  1. Environment variables with the INVOICER_ prefix (e.g. INVOICER_APP_PORT),
//     including those set by a .env file in the working directory
//  2. config.toml
//  3. Built-in defaults
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mmynk/invoicer/internal/qr"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Export renderers.
const (
	RendererChrome = "chrome"
	RendererMaroto = "maroto"
	RendererNone   = "none"
)

// Config is the complete server configuration.
type Config struct {
	App     AppConfig
	Log     LogConfig
	Storage StorageConfig
	Redis   RedisConfig
	Export  ExportConfig
	UI      UIConfig
	Payment qr.Payment
	QR      QRConfig
}

type AppConfig struct {
	Port       int
	StaticPath string
}

type LogConfig struct {
	Level  string
	Format string
}

type StorageConfig struct {
	Driver      string
	SQLitePath  string
	PostgresDSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type ExportConfig struct {
	Renderer  string
	ChromeURL string
	NoSandbox bool
	Scale     float64
	Quality   float64
	Timeout   time.Duration
}

type UIConfig struct {
	// PreferDark is used as the dark-mode setting until the user saves one.
	PreferDark bool
}

type QRConfig struct {
	Endpoint string
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

// Load reads configuration. searchPaths are the directories checked for
// config.toml; when empty the working directory and /etc/invoicer are used.
func Load(searchPaths ...string) (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	if len(searchPaths) == 0 {
		searchPaths = []string{".", "/etc/invoicer"}
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("INVOICER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Port:       v.GetInt("app.port"),
			StaticPath: v.GetString("app.static_path"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(v.GetString("storage.driver")),
			SQLitePath:  v.GetString("storage.sqlite_path"),
			PostgresDSN: v.GetString("storage.postgres_dsn"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			Prefix:   v.GetString("redis.prefix"),
		},
		Export: ExportConfig{
			Renderer:  strings.ToLower(v.GetString("export.renderer")),
			ChromeURL: v.GetString("export.chrome_url"),
			NoSandbox: v.GetBool("export.no_sandbox"),
			Scale:     v.GetFloat64("export.scale"),
			Quality:   v.GetFloat64("export.quality"),
			Timeout:   v.GetDuration("export.timeout"),
		},
		UI: UIConfig{
			PreferDark: v.GetBool("ui.prefer_dark"),
		},
		Payment: qr.Payment{
			CompanyName:   v.GetString("payment.company_name"),
			AccountNumber: v.GetString("payment.account_number"),
			BankName:      v.GetString("payment.bank_name"),
			SwiftIBAN:     v.GetString("payment.swift_iban"),
		},
		QR: QRConfig{
			Endpoint: v.GetString("qr.endpoint"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.static_path", "./web/static")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.sqlite_path", "./data/invoicer.db")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "invoicer:")
	v.SetDefault("export.renderer", RendererMaroto)
	v.SetDefault("export.chrome_url", "")
	v.SetDefault("export.no_sandbox", false)
	v.SetDefault("export.scale", 2.0)
	v.SetDefault("export.quality", 0.95)
	v.SetDefault("export.timeout", 30*time.Second)
	v.SetDefault("ui.prefer_dark", false)
	v.SetDefault("payment.company_name", "")
	v.SetDefault("payment.account_number", "")
	v.SetDefault("payment.bank_name", "")
	v.SetDefault("payment.swift_iban", "")
	v.SetDefault("qr.endpoint", qr.DefaultEndpoint)
}

func (c *Config) validate() error {
	var errs []error

	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("app.port must be between 1 and 65535, got %d", c.App.Port))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("storage.sqlite_path is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			errs = append(errs, errors.New("storage.postgres_dsn is required for the postgres driver"))
		}
	case DriverRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("redis.addr is required for the redis driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be one of sqlite, postgres, redis, memory, got %q", c.Storage.Driver))
	}

	switch c.Export.Renderer {
	case RendererChrome, RendererMaroto, RendererNone:
	default:
		errs = append(errs, fmt.Errorf("export.renderer must be one of chrome, maroto, none, got %q", c.Export.Renderer))
	}
	if c.Export.Scale <= 0 {
		errs = append(errs, fmt.Errorf("export.scale must be positive, got %v", c.Export.Scale))
	}
	if c.Export.Quality <= 0 || c.Export.Quality > 1 {
		errs = append(errs, fmt.Errorf("export.quality must be in (0, 1], got %v", c.Export.Quality))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
