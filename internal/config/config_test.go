package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv blanks every config-related variable so host environments
// don't bleed into the tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TORROW_TOKEN", "TORROW_API_BASE", "MCP_SERVER_NAME",
		"HOST", "PORT", "TORROW_DANGEROUSLY_OMIT_AUTH",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("an explicit missing config file should be an error")
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerName != DefaultServerName {
		t.Errorf("ServerName = %q", cfg.ServerName)
	}
	if cfg.Addr() != "127.0.0.1:3000" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "serverName: my-torrow\ntoken: abc\nport: 4100\ndangerouslyOmitAuth: true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerName != "my-torrow" || cfg.Token != "abc" || cfg.Port != 4100 {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.DangerouslyOmitAuth {
		t.Error("DangerouslyOmitAuth should be set")
	}
	if cfg.Host != DefaultHost {
		t.Errorf("Host = %q, want default kept", cfg.Host)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("token: from-file\nport: 4100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TORROW_TOKEN", "from-env")
	t.Setenv("PORT", "5200")
	t.Setenv("TORROW_DANGEROUSLY_OMIT_AUTH", "1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token != "from-env" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if cfg.Port != 5200 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if !cfg.DangerouslyOmitAuth {
		t.Error("DangerouslyOmitAuth should be set from env")
	}
}

func TestBadPortEnvIsIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want default on malformed env", cfg.Port)
	}
}
