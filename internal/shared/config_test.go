package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("missing file", func(t *testing.T) {
			_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
			if !errors.Is(err, ErrMissingConfig) {
				t.Errorf("expected ErrMissingConfig, got %v", err)
			}
		})

		t.Run("invalid toml", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte("spotify = [broken"), 0644); err != nil {
				t.Fatalf("failed to write file: %v", err)
			}

			_, err := LoadConfig(path)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})

		t.Run("valid file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			content := `
[spotify]
client_id = "abc123"
market = "US"
scopes = ["user-read-private"]

[server]
host = "localhost"
port = 9000
`
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write file: %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.Spotify.ClientID != "abc123" {
				t.Errorf("expected client_id abc123, got %q", config.Spotify.ClientID)
			}
			if config.Spotify.Market != "US" {
				t.Errorf("expected market US, got %q", config.Spotify.Market)
			}
			if config.Server.Port != 9000 {
				t.Errorf("expected port 9000, got %d", config.Server.Port)
			}
		})
	})

	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Spotify.ClientID != "" {
			t.Error("expected empty client_id in defaults")
		}
		if len(config.Spotify.Scopes) == 0 {
			t.Error("expected default scopes")
		}
		if config.Preview.BaseURL == "" {
			t.Error("expected default preview base URL")
		}
		if config.Database.Path == "" {
			t.Error("expected default database path")
		}
		if config.Server.Port == 0 {
			t.Error("expected default server port")
		}
	})

	t.Run("SaveConfig round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		config := DefaultConfig()
		config.Spotify.ClientID = "saved-id"
		config.Spotify.Market = "NG"

		if err := SaveConfig(path, config); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		loaded, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to reload config: %v", err)
		}
		if loaded.Spotify.ClientID != "saved-id" {
			t.Errorf("expected saved client_id, got %q", loaded.Spotify.ClientID)
		}
		if loaded.Spotify.Market != "NG" {
			t.Errorf("expected market NG, got %q", loaded.Spotify.Market)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		t.Run("creates from template", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")

			if err := CreateConfigFile(path); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("created config does not parse: %v", err)
			}
			if config.Server.Host == "" {
				t.Error("expected template to carry server host")
			}
		})

		t.Run("refuses to overwrite", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte("# existing"), 0644); err != nil {
				t.Fatalf("failed to write file: %v", err)
			}

			if err := CreateConfigFile(path); err == nil {
				t.Error("expected error for existing file")
			}
		})
	})

	t.Run("RedirectURI", func(t *testing.T) {
		server := ServerConfig{Host: "127.0.0.1", Port: 8585}
		want := "http://127.0.0.1:8585/callback"
		if got := server.RedirectURI(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})
}
