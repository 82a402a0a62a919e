package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file location, ~/.port/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".port", "config.yaml"), nil
}

// Load reads the config file at path, falling back to PORT_CONFIG_FILE and
// then the default location when path is empty. A missing file is not an
// error; it yields an empty config.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path == "" {
		path = os.Getenv("PORT_CONFIG_FILE")
	}
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return &Config{}, nil
		}
		path = defaultPath
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// WriteDefault scaffolds a starter config file at path with placeholder
// credentials, creating parent directories as needed. Refuses to overwrite
// an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	cfg := Config{
		DefaultOrg: "production",
		Organizations: map[string]Organization{
			"production": {
				ClientID:     "your-client-id",
				ClientSecret: "your-client-secret",
				APIURL:       "https://api.getport.io/v1",
			},
			"staging": {
				ClientID:     "your-staging-client-id",
				ClientSecret: "your-staging-client-secret",
				APIURL:       "https://api.getport.io/v1",
			},
		},
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	// Credentials live here; keep the file private.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
