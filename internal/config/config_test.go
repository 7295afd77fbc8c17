package config

import "testing"

func TestInitConfigDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("MONGO_ADDRESS", "")

	cfg, err := InitConfig()
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if cfg.Database.Address != "" {
		t.Errorf("Database.Address = %q, want empty", cfg.Database.Address)
	}
	if cfg.Database.Collection != "games" {
		t.Errorf("Database.Collection = %q, want games", cfg.Database.Collection)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestInitConfigFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := InitConfig()
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if got := cfg.ListenAddress(); got != "127.0.0.1:8080" {
		t.Errorf("ListenAddress() = %q, want 127.0.0.1:8080", got)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}
