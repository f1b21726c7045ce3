package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	TabWidth   uint16 `toml:"tab-width"`
	ExpandTabs bool   `toml:"expand-tabs"`
}

type Script struct {
	// Init is the path of an init script for the embedded interpreter.
	// Load reads it from config.toml; the app does not read or run it.
	Init string `toml:"init"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Script Script        `toml:"script"`
	Debug  bool          `toml:"debug"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth:   8,
			ExpandTabs: false,
		},
	}
}

// ConfigDir resolves the badred config directory:
// BADRED_CONFIG_HOME, then XDG_CONFIG_HOME/badred, then ~/.config/badred.
func ConfigDir() (string, error) {
	if v := os.Getenv("BADRED_CONFIG_HOME"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "badred"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "badred"), nil
}

// Load reads config.toml from the config directory on top of the defaults.
// A missing file is not an error.
func Load() (Config, error) {
	cfg := Default()
	dir, err := ConfigDir()
	if err != nil {
		return cfg, err
	}
	path := filepath.Join(dir, "config.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
