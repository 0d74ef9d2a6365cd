package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Notification delivery modes. Picked at deployment time, never at runtime.
const (
	NotifyResend    = "resend"
	NotifyFormspree = "formspree"
)

// Storage backends for uploaded assets.
const (
	StorageS3    = "s3"
	StorageLocal = "local"
)

type Config struct {
	Server struct {
		Port        string `mapstructure:"port"`
		MetricsPort string `mapstructure:"metrics_port"`
		Env         string `mapstructure:"env"`
	} `mapstructure:"server"`
	Database struct {
		URL  string `mapstructure:"url"`
		Seed bool   `mapstructure:"seed"`
	} `mapstructure:"database"`
	Admin struct {
		APIKey string `mapstructure:"api_key"`
	} `mapstructure:"admin"`
	Notify struct {
		Mode              string `mapstructure:"mode"`
		ResendAPIKey      string `mapstructure:"resend_api_key"`
		ContactEmail      string `mapstructure:"contact_email"`
		FromAddress       string `mapstructure:"from_address"`
		FormspreeEndpoint string `mapstructure:"formspree_endpoint"`
	} `mapstructure:"notify"`
	Storage struct {
		Provider      string `mapstructure:"provider"`
		KeyID         string `mapstructure:"key_id"`
		AppKey        string `mapstructure:"app_key"`
		Endpoint      string `mapstructure:"endpoint"`
		Region        string `mapstructure:"region"`
		Bucket        string `mapstructure:"bucket"`
		PublicBaseURL string `mapstructure:"public_base_url"`
		LocalPath     string `mapstructure:"local_path"`
	} `mapstructure:"storage"`
}

// Load reads config.yaml (if present) and environment variables into a
// Config. Every key is reachable under the SBB_ prefix; the secrets the
// hosting platform already provisions keep their bare names as aliases.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SBB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("server.port", "SBB_SERVER_PORT", "PORT")
	v.BindEnv("server.metrics_port")
	v.BindEnv("server.env", "SBB_SERVER_ENV", "ENV")

	v.BindEnv("database.url", "SBB_DATABASE_URL", "DATABASE_URL")
	v.BindEnv("database.seed")

	v.BindEnv("admin.api_key", "SBB_ADMIN_API_KEY", "ADMIN_API_KEY")

	v.BindEnv("notify.mode")
	v.BindEnv("notify.resend_api_key", "SBB_NOTIFY_RESEND_API_KEY", "RESEND_API_KEY")
	v.BindEnv("notify.contact_email", "SBB_NOTIFY_CONTACT_EMAIL", "CONTACT_EMAIL")
	v.BindEnv("notify.from_address")
	v.BindEnv("notify.formspree_endpoint", "SBB_NOTIFY_FORMSPREE_ENDPOINT", "FORMSPREE_ENDPOINT")

	v.BindEnv("storage.provider")
	v.BindEnv("storage.key_id")
	v.BindEnv("storage.app_key")
	v.BindEnv("storage.endpoint")
	v.BindEnv("storage.region")
	v.BindEnv("storage.bucket")
	v.BindEnv("storage.public_base_url")
	v.BindEnv("storage.local_path")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.metrics_port", ":9091")
	v.SetDefault("server.env", "development")
	v.SetDefault("database.seed", false)
	v.SetDefault("notify.mode", NotifyResend)
	v.SetDefault("notify.from_address", "Tradscendence Booking <bookings@soundbeyondborders.com>")
	v.SetDefault("storage.provider", StorageLocal)
	v.SetDefault("storage.local_path", "./data")
	v.SetDefault("storage.bucket", "sbb-assets")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("../")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Notify.Mode {
	case NotifyResend, NotifyFormspree:
	default:
		return errors.New("notify.mode must be \"resend\" or \"formspree\"")
	}
	if c.Notify.Mode == NotifyResend && c.Database.URL == "" {
		return errors.New("database.url is required (DATABASE_URL)")
	}
	switch c.Storage.Provider {
	case StorageS3, StorageLocal:
	default:
		return errors.New("storage.provider must be \"s3\" or \"local\"")
	}
	return nil
}

// IsProduction reports whether the server should run in release mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
