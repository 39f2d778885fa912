package utils

import (
	"path/filepath"
	"testing"
)

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	original := DefaultConfig()
	original.UI.Opacity = 0.6
	original.UI.ShowControlPanel = false

	if err := SaveConfig(path, original); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.UI.Opacity != 0.6 {
		t.Errorf("Opacity not preserved: %v", loaded.UI.Opacity)
	}
	if loaded.UI.ShowControlPanel {
		t.Error("ShowControlPanel not preserved")
	}
	if loaded.UI.WindowWidth != original.UI.WindowWidth {
		t.Errorf("WindowWidth not preserved: %d", loaded.UI.WindowWidth)
	}
}

func TestConfig_OpacityClamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultConfig()
	cfg.UI.Opacity = 0
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.UI.Opacity != 1 {
		t.Errorf("Expected zero opacity to reset to 1, got %v", loaded.UI.Opacity)
	}
}

func TestConfig_LoadMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("Expected error for missing config file")
	}
}
