package core

import (
	"os"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

const ConfigFile = "vista.config.yml"

type Config struct {
	OutputDir    string            `yaml:"outputDir"`
	CacheEnabled bool              `yaml:"cache"`
	DebugHeaders bool              `yaml:"debugHeaders"`
	DebugLogs    bool              `yaml:"debugLogs"`
	DataDir      string            `yaml:"dataDir"`
	DataBaseURL  string            `yaml:"dataBaseURL"`
	ViewsDir     string            `yaml:"viewsDir"`
	FetchTimeout time.Duration     `yaml:"fetchTimeout"`
	Sources      map[string]string `yaml:"sources"`
	Defaults     map[string]any    `yaml:"defaults"`
}

func DefaultConfig() Config {
	return Config{
		OutputDir:    "./cache",
		DataDir:      "data",
		ViewsDir:     "views",
		FetchTimeout: 5 * time.Second,
		Sources: map[string]string{
			"about":   "about.json",
			"transit": "brian.json",
		},
		Defaults: map[string]any{},
	}
}

// LoadConfigFunc is swapped out by tests that need a fixed config.
var LoadConfigFunc = LoadConfig

func LoadConfig(path string) Config {
	defaults := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return defaults
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return defaults
	}

	if cfg.FetchTimeout < 0 {
		cfg.FetchTimeout = defaults.FetchTimeout
	}

	// Fills empty fields and adds default sources the file leaves out.
	if err := mergo.Merge(&cfg, defaults); err != nil {
		return defaults
	}

	return cfg
}

func (c Config) Source(name string) string {
	return c.Sources[name]
}
