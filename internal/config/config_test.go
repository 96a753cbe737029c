package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("TASKFLOW_BACKEND", "")
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendLocal || cfg.DefaultCategory != "Work" || cfg.DefaultPriority != "Medium" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "backend: api\napi_url: http://localhost:8080\napi_key: from-file\ndefault_priority: high\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TASKFLOW_BACKEND", "")
	t.Setenv("TASKFLOW_API_KEY", "from-env")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendAPI || cfg.APIURL != "http://localhost:8080" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.APIKey != "from-env" {
		t.Errorf("env should override file, got %q", cfg.APIKey)
	}
	if cfg.DefaultPriority != "High" {
		t.Errorf("priority should be normalized, got %q", cfg.DefaultPriority)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Backend: "Memory"}, false},
		{"api without url", Config{Backend: "api"}, true},
		{"unknown backend", Config{Backend: "cloud"}, true},
		{"bad priority", Config{Backend: "local", DefaultPriority: "urgent"}, true},
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

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("TASKFLOW_BACKEND", "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Backend = BackendMemory
	cfg.DefaultCategory = "Personal"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Backend != BackendMemory || got.DefaultCategory != "Personal" {
		t.Errorf("round trip lost values: %+v", got)
	}
}

func TestSetValueWritesFileOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("TASKFLOW_CONFIG", path)
	t.Setenv("TASKFLOW_BACKEND", "")
	t.Setenv("TASKFLOW_DB", "/from/env.db")

	if _, err := SetValue("default_priority", "low"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if _, err := SetValue("confirm_delete", "false"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(data), "/from/env.db") {
		t.Errorf("env override written to file:\n%s", data)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultPriority != "Low" || cfg.ConfirmDelete {
		t.Errorf("settings not saved: %+v", cfg)
	}
	if cfg.DBPath != "/from/env.db" {
		t.Errorf("env should still apply on load, got %q", cfg.DBPath)
	}
}

func TestSetRejects(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unknown key", "colour", "red"},
		{"bad bool", "confirm_delete", "maybe"},
		{"bad priority", "default_priority", "urgent"},
		{"bad backend", "backend", "cloud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			t.Setenv("TASKFLOW_CONFIG", path)
			if _, err := SetValue(tt.key, tt.value); err == nil {
				t.Errorf("SetValue(%q, %q) succeeded", tt.key, tt.value)
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Errorf("rejected value was saved")
			}
		})
	}
}
