package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BONDED_STORAGE_PATH.
const EnvPrefix = "BONDED"

// ConfigName is the file name, without extension, searched for when no
// configuration path is given.
const ConfigName = "bondedd"

// SearchPaths lists the directories searched for ConfigName, in order.
func SearchPaths() []string {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, ConfigName))
	}
	return append(paths, "/etc/"+ConfigName)
}

// LoadConfig loads configuration from multiple sources in priority order:
// 1. Default values
// 2. Configuration file: configPath, or the first ConfigName found in
// SearchPaths when configPath is empty
// 3. Environment variables (BONDED_ prefix)
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults first
	setDefaults(v)

	// 2. Load configuration file
	if configPath != "" {
		if err := loadMainConfig(v, configPath); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		found, err := searchConfig(v)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		configPath = found
	}

	// 3. Set up environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Unmarshal into struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.configPath = configPath

	// 5. Validate the complete configuration
	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// loadMainConfig loads the configuration file
func loadMainConfig(v *viper.Viper, configPath string) error {
	v.SetConfigFile(configPath)

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("config file does not exist: %s", configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	return nil
}

// searchConfig reads the first ConfigName in SearchPaths and returns its
// path. Finding none is not an error.
func searchConfig(v *viper.Viper) (string, error) {
	v.SetConfigName(ConfigName)
	v.SetConfigType("toml")
	for _, p := range SearchPaths() {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// SaveExampleConfig writes an example configuration file. The format follows
// the file extension.
func SaveExampleConfig(configPath string) error {
	v := viper.New()
	for key, value := range generateExampleConfig() {
		v.Set(key, value)
	}

	v.SetConfigFile(configPath)
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write example config: %w", err)
	}
	return nil
}
