package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Output    Output              `toml:"output"`
	Exclude   Exclude             `toml:"exclude"`
	Watch     Watch               `toml:"watch"`
	History   History             `toml:"history"`
	Metrics   Metrics             `toml:"metrics"`
	Languages map[string]Language `toml:"languages"`
}

type Output struct {
	Filename string `toml:"filename"`
	Banner   string `toml:"banner"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type History struct {
	Enabled    bool   `toml:"enabled"`
	Path       string `toml:"path"`
	ProjectKey string `toml:"project_key"`
}

type Metrics struct {
	Addr string `toml:"addr"`
}

type Language struct {
	Enabled    *bool    `toml:"enabled"`
	Extensions []string `toml:"extensions"`
}

const DefaultBanner = "/* eslint-disable */\n// Auto-generated by schemagen. DO NOT EDIT.\n"

func Default() *Config {
	return &Config{
		Output: Output{
			Filename: "generated-types.ts",
			Banner:   DefaultBanner,
		},
		Exclude: Exclude{
			Dirs: []string{".git", "node_modules"},
		},
		Watch: Watch{
			Debounce: 500 * time.Millisecond,
		},
		History: History{
			Path:       ".schemagen/history.db",
			ProjectKey: "default",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Output.Filename == "" {
		cfg.Output.Filename = "generated-types.ts"
	}
	if cfg.Output.Banner == "" {
		cfg.Output.Banner = DefaultBanner
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.History.Path == "" {
		cfg.History.Path = ".schemagen/history.db"
	}
	if cfg.History.ProjectKey == "" {
		cfg.History.ProjectKey = "default"
	}
}
