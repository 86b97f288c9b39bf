package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
app:
  name: "frontdesk-test"
database:
  path: "hotel.db"
session:
  ttl_minutes: 60
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Database.Path != "hotel.db" {
		t.Errorf("expected database path hotel.db, got %s", cfg.Database.Path)
	}

	if cfg.Session.TTLMinutes != 60 {
		t.Errorf("expected session ttl 60, got %d", cfg.Session.TTLMinutes)
	}

	// defaults
	if cfg.Session.MaxLoginAttempts != 5 {
		t.Errorf("expected default max login attempts 5, got %d", cfg.Session.MaxLoginAttempts)
	}
	if cfg.Exports.Path != "exports" {
		t.Errorf("expected default exports path, got %s", cfg.Exports.Path)
	}
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("HOTEL_DB_PATH", filepath.Join(tmpDir, "hotel.db"))

	yamlContent := `
database:
  path: "${HOTEL_DB_PATH}"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Database.Path != filepath.Join(tmpDir, "hotel.db") {
		t.Errorf("env expansion failed, got %s", cfg.Database.Path)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid config",
			cfg:     Config{Database: DatabaseConfig{Path: "hotel.db"}},
			wantErr: false,
		},
		{
			name:    "missing database path",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name: "redis enabled without address",
			cfg: Config{
				Database: DatabaseConfig{Path: "hotel.db"},
				Redis:    RedisConfig{Enabled: true},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
