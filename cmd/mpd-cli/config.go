package main

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds CLI configuration from config.toml.
type Config struct {
	Host     string    `toml:"host"`
	Port     string    `toml:"port"`
	Password string    `toml:"password"`
	Timeout  Duration  `toml:"timeout"`
	Log      LogConfig `toml:"log"`
}

// LogConfig describes logging options.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Duration decodes "2s"-style TOML strings.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// LoadConfig loads config.toml if present. Missing file returns an empty config.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		p, err := configPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	if info.IsDir() {
		return Config{}, errors.New("config path is a directory")
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func configPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "mpd-cli", "config.toml"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mpd-cli", "config.toml"), nil
}

// resolve picks the first non-empty value: flag, environment, config file,
// then the default.
func resolve(flagVal, envKey, cfgVal, def string) string {
	if flagVal != "" {
		return flagVal
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if cfgVal != "" {
		return cfgVal
	}
	return def
}
