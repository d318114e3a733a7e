package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Spotify  SpotifyConfig  `toml:"spotify"`
	Preview  PreviewConfig  `toml:"preview"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
}

// SpotifyConfig contains the compiled-in Spotify application identity.
//
// The client performs an authorization-code + PKCE flow, so no client
// secret is required or stored.
type SpotifyConfig struct {
	ClientID string   `toml:"client_id"`
	Scopes   []string `toml:"scopes"`
	Market   string   `toml:"market"`
}

// PreviewConfig contains settings for the preview lookup service.
type PreviewConfig struct {
	BaseURL string `toml:"base_url"`
}

// DatabaseConfig contains credential store settings.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// ServerConfig contains loopback redirect server settings for the OAuth flow.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// RedirectURI builds the loopback redirect URI registered with the provider.
func (s ServerConfig) RedirectURI() string {
	return fmt.Sprintf("http://%s:%d/callback", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// SaveConfig writes the configuration back to disk as TOML.
func SaveConfig(path string, config *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
