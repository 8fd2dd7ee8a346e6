package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/rpggio/fcea/internal/sharecode"
	"gopkg.in/yaml.v3"
)

// Transport modes.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
	Scenario  ScenarioConfig  `yaml:"scenario"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// BaseURL is the public agreement URL that share links point at.
	BaseURL string `yaml:"base_url"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// ScenarioConfig selects the state every new workspace starts from and
// returns to on reset.
type ScenarioConfig struct {
	Query string `yaml:"query"`
	Path  string `yaml:"path"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			BaseURL: "http://localhost:8080/agreement",
		},
		Transport: TransportConfig{
			Mode: TransportHTTP,
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("FCEA_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("FCEA_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("FCEA_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FCEA_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if base := os.Getenv("FCEA_BASE_URL"); base != "" {
		cfg.Server.BaseURL = base
	}
	if mode := os.Getenv("FCEA_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if level := os.Getenv("FCEA_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if path := os.Getenv("FCEA_LOG_PATH"); path != "" {
		cfg.Log.Path = path
	}
	if query := os.Getenv("FCEA_SCENARIO_QUERY"); query != "" {
		cfg.Scenario.Query = query
	}
	if path := os.Getenv("FCEA_SCENARIO_PATH"); path != "" {
		cfg.Scenario.Path = path
	}

	switch cfg.Transport.Mode {
	case TransportHTTP, TransportStdio:
	default:
		return Config{}, fmt.Errorf("invalid transport mode %q: want %q or %q", cfg.Transport.Mode, TransportHTTP, TransportStdio)
	}
	if _, err := url.Parse(cfg.Server.BaseURL); err != nil {
		return Config{}, fmt.Errorf("invalid base url: %w", err)
	}

	return cfg, nil
}

// Seeder builds the startup seed from the scenario file and query. Query
// parameters override values from the file.
func (c Config) Seeder() (sharecode.QuerySeeder, error) {
	values := url.Values{}
	if c.Scenario.Path != "" {
		scenario, err := LoadScenario(c.Scenario.Path)
		if err != nil {
			return sharecode.QuerySeeder{}, err
		}
		values = scenario.Values()
	}
	if c.Scenario.Query != "" {
		query, err := url.ParseQuery(sharecode.QueryPart(c.Scenario.Query))
		if err != nil {
			return sharecode.QuerySeeder{}, fmt.Errorf("parse scenario query: %w", err)
		}
		for key, v := range query {
			values[key] = v
		}
	}
	return sharecode.QuerySeeder{Query: values.Encode()}, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
