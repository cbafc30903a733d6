package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/edgekit-labs/edgegen/internal/branding"
	"github.com/edgekit-labs/edgegen/internal/platform"
	"github.com/edgekit-labs/edgegen/internal/runner"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyPackageManager    = "package_manager"
	KeyCompatibilityDate = "compatibility_date"
	KeyChatDatabase      = "chat_database"
	KeyContactDatabase   = "contact_database"
	KeyLogLevel          = "log_level"
	KeyCommandTimeout    = "command_timeout"
)

// Keys lists every key accepted by Set, in display order.
var Keys = []string{
	KeyPackageManager,
	KeyCompatibilityDate,
	KeyChatDatabase,
	KeyContactDatabase,
	KeyLogLevel,
	KeyCommandTimeout,
}

var defaults = map[string]any{
	KeyPackageManager:    "npm",
	KeyCompatibilityDate: "2024-01-01",
	KeyChatDatabase:      "chat-history",
	KeyContactDatabase:   "contact-submissions",
	KeyLogLevel:          "info",
	KeyCommandTimeout:    "0s",
}

// Settings is a typed snapshot of the loaded configuration.
type Settings struct {
	PackageManager    string
	CompatibilityDate string
	ChatDatabase      string
	ContactDatabase   string
	LogLevel          string
	CommandTimeout    time.Duration
}

// Dir returns the path to the config directory (~/.edgegen/). The
// EDGEGEN_HOME environment variable overrides it.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.edgegen/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, platform.DirPerm); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// All returns every recognized key with its effective value.
func All() map[string]string {
	out := make(map[string]string, len(Keys))
	for _, k := range Keys {
		out[k] = viper.GetString(k)
	}
	return out
}

// Current returns the loaded configuration as a Settings value.
func Current() Settings {
	return Settings{
		PackageManager:    viper.GetString(KeyPackageManager),
		CompatibilityDate: viper.GetString(KeyCompatibilityDate),
		ChatDatabase:      viper.GetString(KeyChatDatabase),
		ContactDatabase:   viper.GetString(KeyContactDatabase),
		LogLevel:          viper.GetString(KeyLogLevel),
		CommandTimeout:    viper.GetDuration(KeyCommandTimeout),
	}
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	switch key {
	case KeyCommandTimeout:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
	case KeyPackageManager:
		pm, err := runner.ParsePackageManager(value)
		if err != nil {
			return err
		}
		value = string(pm)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
