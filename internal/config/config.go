package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultOutputFile is where successful results are appended when no output
// file is configured.
const DefaultOutputFile = "correct_urls_output.txt"

// Config represents the application configuration structure.
// Command line flags override these values when set.
type Config struct {
	// Environment selects the log encoder (development or production)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Checker contains settings for issuing the HTTP requests
	Checker struct {
		// Concurrency is the maximum number of requests in flight; 1 checks URLs strictly one after another
		Concurrency int `env:"CHECKER_CONCURRENCY" env-default:"1" yaml:"concurrency"`
		// Timeout bounds a single request; zero keeps the HTTP client's default (no timeout)
		Timeout time.Duration `env:"CHECKER_TIMEOUT" env-default:"0s" yaml:"timeout"`
	} `yaml:"checker"`

	// Output contains the result destinations
	Output struct {
		// File is the append-only file receiving successful results
		File string `env:"OUTPUT_FILE" env-default:"correct_urls_output.txt" yaml:"file"`
		// ReportFile receives a JSON summary of the run when set
		ReportFile string `env:"OUTPUT_REPORT_FILE" yaml:"reportFile"`
	} `yaml:"output"`

	// Metrics contains the metrics export settings
	Metrics struct {
		// TextfilePath receives a Prometheus textfile dump of the run metrics when set
		TextfilePath string `env:"METRICS_TEXTFILE_PATH" yaml:"textfilePath"`
	} `yaml:"metrics"`
}

// Load receives the path for a yaml config file and returns a filled Config
// struct. A missing file is not an error: values then come from the
// environment and defaults only.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(configPath); configPath == "" || errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from environment: %w", err)
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
