package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration. Provider endpoints and
// models are not configured here; the provider registry is fixed at build
// time and credentials live in the settings database.
type Config struct {
	UI   UIConfig   `json:"ui"`
	Data DataConfig `json:"data"`
}

// UIConfig represents presentation settings.
type UIConfig struct {
	Theme            string  `json:"theme"`
	FontSize         int     `json:"font_size"`
	WindowWidth      int     `json:"window_width"`
	WindowHeight     int     `json:"window_height"`
	Opacity          float64 `json:"opacity"`
	ShowControlPanel bool    `json:"show_control_panel"`
}

// DataConfig represents data storage settings.
type DataConfig struct {
	DBPath string `json:"db_path"`
}

// LoadConfig loads configuration from file.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.Data.DBPath != "" {
		config.Data.DBPath = expandPath(config.Data.DBPath)
	}
	if config.UI.Opacity <= 0 || config.UI.Opacity > 1 {
		config.UI.Opacity = 1
	}

	return &config, nil
}

// SaveConfig saves configuration to file.
func SaveConfig(configPath string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// expandPath expands ~ and relative paths.
func expandPath(path string) string {
	if len(path) == 0 {
		return path
	}

	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	absPath, err := filepath.Abs(path)
	if err == nil {
		return absPath
	}

	return path
}

// GetConfigPath returns the default config path.
func GetConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "./config/default.json"
	}

	return filepath.Join(configDir, "overlay-chat", "config.json")
}

// DefaultConfig returns the configuration used on first run. The window is
// tall and narrow to suit an overlay docked at a screen edge.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Theme:            "dark",
			FontSize:         13,
			WindowWidth:      420,
			WindowHeight:     680,
			Opacity:          0.85,
			ShowControlPanel: true,
		},
		Data: DataConfig{
			DBPath: "./data/overlay.db",
		},
	}
}

// EnsureDefaultConfig creates a default config file if it doesn't exist.
func EnsureDefaultConfig() (string, error) {
	configPath := GetConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if err := SaveConfig(configPath, DefaultConfig()); err != nil {
		return "", err
	}

	return configPath, nil
}
