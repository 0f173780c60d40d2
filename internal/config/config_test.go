package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoad_DefaultWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Fatalf("Load() = %+v, want defaults %+v", cfg, DefaultConfig())
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	data := `{"body_max_chars": 500, "image_max_bytes": 2048, "log_level": "debug"}`
	if err := os.WriteFile(configPath, []byte(data), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BodyMaxChars != 500 {
		t.Fatalf("BodyMaxChars = %d, want %d", cfg.BodyMaxChars, 500)
	}
	if cfg.ImageMaxBytes != 2048 {
		t.Fatalf("ImageMaxBytes = %d, want %d", cfg.ImageMaxBytes, 2048)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	// Untouched keys keep their defaults
	if cfg.PageTimeoutSeconds != DefaultConfig().PageTimeoutSeconds {
		t.Fatalf("PageTimeoutSeconds = %d, want default", cfg.PageTimeoutSeconds)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{not json}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

func TestLoad_DisabledTools(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{"disabled_tools": ["recipe_delete", " recipe_import ", "recipe_delete"]}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := []string{"recipe_delete", "recipe_import"}
	if !reflect.DeepEqual(cfg.DisabledTools, want) {
		t.Fatalf("DisabledTools = %v, want %v", cfg.DisabledTools, want)
	}
}

func TestMerge_ScalarOverride(t *testing.T) {
	base := &Config{BodyMaxChars: 100, UserAgent: "base", DBMaxOpenConns: 4}
	overlay := &Config{BodyMaxChars: 200, UserAgent: "   "}

	result := Merge(base, overlay)
	if result.BodyMaxChars != 200 {
		t.Errorf("BodyMaxChars = %d, want 200", result.BodyMaxChars)
	}
	if result.UserAgent != "base" {
		t.Errorf("UserAgent = %q, want base (blank overlay ignored)", result.UserAgent)
	}
	if result.DBMaxOpenConns != 4 {
		t.Errorf("DBMaxOpenConns = %d, want 4", result.DBMaxOpenConns)
	}
}

func TestMerge_ArrayMergeDedup(t *testing.T) {
	base := &Config{DisabledTools: []string{"a", "b"}}
	overlay := &Config{DisabledTools: []string{"b", "c", ""}}

	result := Merge(base, overlay)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(result.DisabledTools, want) {
		t.Errorf("DisabledTools = %v, want %v", result.DisabledTools, want)
	}

	empty := Merge(&Config{}, &Config{})
	if empty.DisabledTools != nil {
		t.Errorf("DisabledTools = %v, want nil", empty.DisabledTools)
	}
}

func TestPageTimeout(t *testing.T) {
	cfg := &Config{PageTimeoutSeconds: 3}
	if cfg.PageTimeout() != 3*time.Second {
		t.Errorf("PageTimeout() = %v, want 3s", cfg.PageTimeout())
	}
}
