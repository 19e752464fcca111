package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/energyprofiles/reffix/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the fixer.
const (
	KeyTargetDir = "target_dir"
	KeyExtension = "extension"
	KeyColor     = "color"
)

// Defaults used when neither flags, env nor the config file set a key.
const (
	DefaultTargetDir = "profiles"
	DefaultExtension = ".yaml"
	DefaultColor     = "auto"
)

// Dir returns the path to the config directory (~/.reffix/).
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("home")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.reffix/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
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

	viper.SetDefault(KeyTargetDir, DefaultTargetDir)
	viper.SetDefault(KeyExtension, DefaultExtension)
	viper.SetDefault(KeyColor, DefaultColor)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// TargetDir returns the directory the fixer scans.
func TargetDir() string { return viper.GetString(KeyTargetDir) }

// Extension returns the description-file suffix.
func Extension() string { return viper.GetString(KeyExtension) }

// Color returns the color mode: auto, always or never.
func Color() string { return viper.GetString(KeyColor) }

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
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
