package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port  int  `yaml:"port"`
		Debug bool `yaml:"debug"`
	} `yaml:"app"`

	TVDB struct {
		APIKey            string  `yaml:"api_key"`
		PIN               string  `yaml:"pin"`
		BaseURL           string  `yaml:"base_url"`
		Language          string  `yaml:"language"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
	} `yaml:"tvdb"`

	Provider struct {
		// Identifier is echoed back in every response container.
		Identifier string `yaml:"identifier"`
		// Country is the default content-rating country when a request
		// carries no country hint.
		Country string `yaml:"country"`
	} `yaml:"provider"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	loadFromEnv(cfg)
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.App.Port = 8085
	cfg.App.Debug = false

	cfg.TVDB.BaseURL = "https://api4.thetvdb.com/v4"
	cfg.TVDB.Language = "eng"
	cfg.TVDB.RequestsPerSecond = 10

	cfg.Provider.Identifier = "tv.tvbridge.thetvdb"
	cfg.Provider.Country = "US"
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TVDB_API_KEY"); v != "" {
		cfg.TVDB.APIKey = v
	}
	if v := os.Getenv("TVDB_PIN"); v != "" {
		cfg.TVDB.PIN = v
	}
	if v := os.Getenv("TVBRIDGE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = port
		}
	}
	if v := os.Getenv("TVBRIDGE_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			cfg.App.Debug = debug
		}
	}
}
