package config

import (
	"fmt"
	"os"

	"github.com/RevCBH/datebatch/internal/dates"
	"gopkg.in/yaml.v3"
)

// EnvSpec is the environment handed to one container. Variables are
// passed as literal KEY=value pairs and Files as runtime env files; the
// runtime layers them with literal variables taking precedence.
type EnvSpec struct {
	// Variables are literal environment variables
	Variables map[string]string `yaml:"variables,omitempty"`

	// Files are paths to env files on the host
	Files []string `yaml:"files,omitempty"`
}

// RunSpec is one task launched for every date in the batch.
type RunSpec struct {
	// Container is the image reference to run
	Container string `yaml:"container"`

	// Envs is the environment payload for the container
	Envs EnvSpec `yaml:"envs"`
}

// BatchSpec is the root batch document. It is immutable after LoadBatch
// returns.
type BatchSpec struct {
	// RunData lists the tasks launched for each date, in order
	RunData []RunSpec `yaml:"run_data"`

	// Dates are literal date strings run first, verbatim
	Dates []string `yaml:"dates"`

	// DateRanges are expanded after Dates, in listed order
	DateRanges []dates.Range `yaml:"date_ranges"`

	// Delta is the step between dates within a range (nil until defaults apply)
	Delta *dates.Step `yaml:"delta"`

	// DateFormat is the strftime layout for range bounds and generated dates
	DateFormat string `yaml:"date_format"`

	// MaxStored caps how many finished containers are kept (nil = unbounded)
	MaxStored *int `yaml:"max_stored"`

	// Runtime is the container CLI: "docker", "podman", or "" to detect
	Runtime string `yaml:"runtime"`

	// DateVariable is the environment variable carrying the current date
	DateVariable string `yaml:"date_variable"`

	// NamePrefix starts every container name
	NamePrefix string `yaml:"name_prefix"`
}

// Step returns the configured step, or the default when none was set.
func (b *BatchSpec) Step() dates.Step {
	if b.Delta == nil {
		return dates.DefaultStep
	}
	return *b.Delta
}

// Unbounded reports whether finished containers are never pruned.
func (b *BatchSpec) Unbounded() bool {
	return b.MaxStored == nil
}

// LoadBatch reads the batch document at path. JSON documents are
// accepted as YAML. It applies defaults, then file values, then
// environment overrides, then validates.
func LoadBatch(path string) (*BatchSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	return ParseBatch(data)
}

// ParseBatch is LoadBatch for an in-memory document.
func ParseBatch(data []byte) (*BatchSpec, error) {
	cfg := DefaultBatchSpec()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse batch file: %w", err)
	}

	// A partial delta must not inherit the default day step.
	if cfg.Delta == nil {
		step := dates.DefaultStep
		cfg.Delta = &step
	}

	applyEnvOverrides(cfg)

	if err := validateBatch(cfg); err != nil {
		return nil, fmt.Errorf("validate batch file: %w", err)
	}

	return cfg, nil
}
