package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jask/chatwidget/internal/chat"
	"github.com/jask/chatwidget/internal/logger"
)

// Config holds application configuration.
type Config struct {
	Chat ChatConfig `mapstructure:"chat"`
	UI   UIConfig   `mapstructure:"ui"`
	Log  LogConfig  `mapstructure:"log"`
	Stub StubConfig `mapstructure:"stub"`
}

// ChatConfig holds the remote endpoint settings.
type ChatConfig struct {
	Endpoint       string        `mapstructure:"endpoint"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Title           string        `mapstructure:"title"`
	Greeting        string        `mapstructure:"greeting"`
	Placeholder     string        `mapstructure:"placeholder"`
	CloseTransition time.Duration `mapstructure:"close_transition"`
	PanelWidth      int           `mapstructure:"panel_width"`
	PanelHeight     int           `mapstructure:"panel_height"`
}

type LogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
}

// StubConfig configures the local development endpoint.
type StubConfig struct {
	Addr          string        `mapstructure:"addr"`
	Delay         time.Duration `mapstructure:"delay"`
	Reply         string        `mapstructure:"reply"`
	AllowedOrigin string        `mapstructure:"allowed_origin"`
}

const envPrefix = "CHATWIDGET"

// DefaultPath is where Load looks when neither an explicit path nor
// CHATWIDGET_CONFIG is given.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "chatwidget", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("chat.endpoint", chat.DefaultEndpoint)
	v.SetDefault("chat.request_timeout", "0s")
	v.SetDefault("ui.title", "Echo5Digital Bot")
	v.SetDefault("ui.greeting", chat.Greeting)
	v.SetDefault("ui.placeholder", "Type your message...")
	v.SetDefault("ui.close_transition", "300ms")
	v.SetDefault("ui.panel_width", 40)
	v.SetDefault("ui.panel_height", 18)
	v.SetDefault("log.enabled", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(os.Getenv("HOME"), ".local", "state", "chatwidget", "chatwidget.log"))
	v.SetDefault("stub.addr", ":8080")
	v.SetDefault("stub.delay", "1s")
	v.SetDefault("stub.reply", "Thank you for your message!")
	v.SetDefault("stub.allowed_origin", "*")
}

// Load reads configuration from defaults, an optional TOML file and the
// environment. Env var overrides use prefix CHATWIDGET_ and may also come
// from a .env file in the working directory. An explicit path must exist;
// the default location is optional.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	explicit := strings.TrimSpace(path)
	if explicit == "" {
		explicit = strings.TrimSpace(os.Getenv(envPrefix + "_CONFIG"))
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that would otherwise fail at runtime.
func (c Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.Chat.Endpoint))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: chat.endpoint %q must be an absolute http(s) URL", c.Chat.Endpoint)
	}
	if c.Chat.RequestTimeout < 0 {
		return fmt.Errorf("config: chat.request_timeout must not be negative")
	}
	if c.UI.CloseTransition < 0 {
		return fmt.Errorf("config: ui.close_transition must not be negative")
	}
	if c.UI.PanelWidth <= 0 || c.UI.PanelHeight <= 0 {
		return fmt.Errorf("config: ui panel size must be positive, got %dx%d", c.UI.PanelWidth, c.UI.PanelHeight)
	}
	if c.Stub.Delay < 0 {
		return fmt.Errorf("config: stub.delay must not be negative")
	}
	return nil
}

// LoggerConfig adapts the log section for the logger package.
func (c Config) LoggerConfig() logger.Config {
	return logger.Config{Enabled: c.Log.Enabled, Level: c.Log.Level, File: c.Log.File}
}

// Save writes cfg as TOML to path, creating the directory if needed. An
// empty path means DefaultPath.
func Save(path string, cfg Config) error {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("chat.endpoint", cfg.Chat.Endpoint)
	v.Set("chat.request_timeout", cfg.Chat.RequestTimeout.String())
	v.Set("ui.title", cfg.UI.Title)
	v.Set("ui.greeting", cfg.UI.Greeting)
	v.Set("ui.placeholder", cfg.UI.Placeholder)
	v.Set("ui.close_transition", cfg.UI.CloseTransition.String())
	v.Set("ui.panel_width", cfg.UI.PanelWidth)
	v.Set("ui.panel_height", cfg.UI.PanelHeight)
	v.Set("log.enabled", cfg.Log.Enabled)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)
	v.Set("stub.addr", cfg.Stub.Addr)
	v.Set("stub.delay", cfg.Stub.Delay.String())
	v.Set("stub.reply", cfg.Stub.Reply)
	v.Set("stub.allowed_origin", cfg.Stub.AllowedOrigin)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
