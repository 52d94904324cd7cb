// Package config exposes strongly typed provisioning settings loaded from YAML.
//
// Every knob defaults to the fixed checkout layout the Trading-Agents
// application expects, so a setup.yaml is only needed to deviate from it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root of the provisioner configuration.
type Config struct {
	Python  Python  `yaml:"python"`
	Layout  Layout  `yaml:"layout"`
	Install Install `yaml:"install"`
}

// Python selects the interpreter and the isolated environment location.
type Python struct {
	// Candidates are tried in order against the search path.
	Candidates []string `yaml:"candidates"`
	VenvDir    string   `yaml:"venv_dir"`
}

// Layout lists the filesystem artifacts materialized during setup.
// All paths are relative to the invocation root.
type Layout struct {
	Markers     []string `yaml:"markers"`
	Dirs        []string `yaml:"dirs"`
	EnvFile     string   `yaml:"env_file"`
	EnvTemplate string   `yaml:"env_template"`
}

// Install tunes the two network-bound installer steps.
type Install struct {
	Requirements string `yaml:"requirements"`
	// NetworkRetries is the total attempt count for pip invocations.
	// 1 means no retry, matching the original procedure.
	NetworkRetries int `yaml:"network_retries"`
	RetryDelayMS   int `yaml:"retry_delay_ms"`
	// ContinueOnError restores the shell script's behavior of running every
	// step regardless of installer failures.
	ContinueOnError bool `yaml:"continue_on_error"`
	// PostInstall lists extra shell-style command lines to run from the
	// invocation root after the layout steps, e.g. "pre-commit install".
	PostInstall []string `yaml:"post_install"`
}

// Default returns the configuration matching the fixed Trading-Agents layout.
func Default() Config {
	return Config{
		Python: Python{
			Candidates: []string{"python3", "python", "py"},
			VenvDir:    "venv",
		},
		Layout: Layout{
			Markers: []string{
				"src/__init__.py",
				"src/agents/__init__.py",
				"src/data/__init__.py",
				"src/orchestration/__init__.py",
				"src/backtesting/__init__.py",
			},
			Dirs:        []string{"data", "logs", "notebooks"},
			EnvFile:     ".env",
			EnvTemplate: ".env.template",
		},
		Install: Install{
			Requirements:   "requirements.txt",
			NetworkRetries: 1,
			RetryDelayMS:   2000,
		},
	}
}

// Load reads a YAML file and overlays it on the defaults.
// A missing file is not an error: the defaults describe a standard checkout.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}

		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if len(c.Python.Candidates) == 0 {
		return errors.New("config: python.candidates must not be empty")
	}

	if c.Python.VenvDir == "" {
		return errors.New("config: python.venv_dir must not be empty")
	}

	if c.Install.NetworkRetries < 1 {
		return errors.New("config: install.network_retries must be >= 1")
	}

	return nil
}
