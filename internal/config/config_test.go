package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
database:
  host: "localhost"
  port: 5432
  name: "liftlog"
  user: "liftlog"
  password: "secret"
  sslmode: "disable"
auth:
  api_key: "test-key-123"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "liftlog" {
		t.Errorf("database.name = %q, want %q", cfg.Database.Name, "liftlog")
	}
	if cfg.Auth.APIKey != "test-key-123" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "test-key-123")
	}
}

// TestEnvOverride verifies that LIFTLOG_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("LIFTLOG_SERVER_PORT", "9999")
	t.Setenv("LIFTLOG_DB_PASSWORD", "from-env")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999 (env override)", cfg.Server.Port)
	}
	if cfg.Database.Password != "from-env" {
		t.Errorf("database.password = %q, want %q", cfg.Database.Password, "from-env")
	}
}

// TestDSN verifies the PostgreSQL connection string layout and the sslmode
// default.
func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Name: "liftlog", User: "u", Password: "p"}
	want := "postgres://u:p@db:5432/liftlog?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}

	d.SSLMode = "require"
	want = "postgres://u:p@db:5432/liftlog?sslmode=require"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

// TestValidateMissingFields verifies each required field is enforced.
func TestValidateMissingFields(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing port", "database: {host: h, port: 5432, name: n, user: u}"},
		{"missing db host", "server: {port: 8080}\ndatabase: {port: 5432, name: n, user: u}"},
		{"missing db name", "server: {port: 8080}\ndatabase: {host: h, port: 5432, user: u}"},
		{"missing db user", "server: {port: 8080}\ndatabase: {host: h, port: 5432, name: n}"},
		{"tailscale without hostname", "tailscale: {enabled: true}\ndatabase: {host: h, port: 5432, name: n, user: u}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeTemp(t, tt.yaml)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

// TestAPIKeyOptional verifies an empty api_key is accepted; auth is simply
// disabled in that case.
func TestAPIKeyOptional(t *testing.T) {
	yaml := `
server: {port: 8080}
database: {host: h, port: 5432, name: n, user: u}
`
	cfg, err := Load(writeTemp(t, yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Auth.APIKey != "" {
		t.Errorf("api_key = %q, want empty", cfg.Auth.APIKey)
	}
}
