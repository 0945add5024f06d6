package config

import (
	"fmt"
	"log/slog"

	"appboot/system/file"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "appboot.yaml"

type DriverConfig struct {
	Package     string `yaml:"package"`
	KeyName     string `yaml:"key-name"`
	KeyUrl      string `yaml:"key-url"`
	Fingerprint string `yaml:"fingerprint"`
	RepoName    string `yaml:"repo-name"`
	RepoUrl     string `yaml:"repo-url"`
}

type PythonConfig struct {
	Interpreter  string   `yaml:"interpreter"`
	Requirements []string `yaml:"requirements"`
}

type AppConfig struct {
	EntryPoint string   `yaml:"entry-point"`
	Args       []string `yaml:"args"`
}

type Config struct {
	Driver DriverConfig `yaml:"driver"`
	Python PythonConfig `yaml:"python"`
	App    AppConfig    `yaml:"app"`
}

// Default returns the built-in configuration. Driver fields left empty here
// fall back to the odbc manager's own defaults.
func Default() *Config {
	return &Config{
		Python: PythonConfig{
			Interpreter:  "python3",
			Requirements: []string{"requirements.txt"},
		},
		App: AppConfig{
			EntryPoint: "app.py",
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path loads
// DefaultPath when it exists and is otherwise not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	optional := path == ""
	if optional {
		path = DefaultPath
	}

	exists, err := file.IsPathExist(path)
	if err != nil {
		return nil, fmt.Errorf("failed to check if config file '%s' exists: %w", path, err)
	}
	if !exists {
		if optional {
			slog.Debug("No config file at " + path + ", using defaults")
			return cfg, nil
		}
		return nil, fmt.Errorf("config file '%s' does not exist", path)
	}

	contents, err := file.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}

	slog.Debug("Loaded config from " + path)
	return cfg, nil
}
