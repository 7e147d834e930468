package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Source struct {
		Kind         string `yaml:"kind"` // imdb | postgres | static
		URL          string `yaml:"url"`
		APIKey       string `yaml:"api_key"`
		MaxItems     int    `yaml:"max_items"`
		Timeout      string `yaml:"timeout"`
		ResizeImages bool   `yaml:"resize_images"`
	} `yaml:"source"`
	Quiz struct {
		Questions     int    `yaml:"questions"`
		FeedbackDelay string `yaml:"feedback_delay"`
		Locale        string `yaml:"locale"`
	} `yaml:"quiz"`
	Stats struct {
		Backend    string `yaml:"backend"` // memory | redis | postgres | sqlite
		SQLitePath string `yaml:"sqlite_path"`
		Namespace  string `yaml:"namespace"`
	} `yaml:"stats"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return fallback
}

// Default returns the settings used when no config file exists.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Source.Kind = "imdb"
	cfg.Quiz.Questions = 10
	cfg.Quiz.FeedbackDelay = "1s"
	cfg.Quiz.Locale = "en"
	cfg.Stats.Backend = "memory"
	return cfg
}
