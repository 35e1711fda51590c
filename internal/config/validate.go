package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ValidationError contains details about what failed validation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// namePrefixPattern matches the characters container runtimes accept at
// the start of a container name.
var namePrefixPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

// validateBatch checks all batch values for validity.
// Returns nil if valid, or joined errors for all validation failures.
func validateBatch(cfg *BatchSpec) error {
	var errs []error

	// At least one task must run per date
	if len(cfg.RunData) == 0 {
		errs = append(errs, &ValidationError{
			Field:   "run_data",
			Value:   len(cfg.RunData),
			Message: "must list at least one container",
		})
	}

	for i, run := range cfg.RunData {
		if strings.TrimSpace(run.Container) == "" {
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("run_data[%d].container", i),
				Value:   run.Container,
				Message: "must not be empty",
			})
		}
		for key := range run.Envs.Variables {
			if key == "" || strings.Contains(key, "=") {
				errs = append(errs, &ValidationError{
					Field:   fmt.Sprintf("run_data[%d].envs.variables", i),
					Value:   key,
					Message: "variable names must be non-empty and contain no '='",
				})
			}
		}
		for j, file := range run.Envs.Files {
			if strings.TrimSpace(file) == "" {
				errs = append(errs, &ValidationError{
					Field:   fmt.Sprintf("run_data[%d].envs.files[%d]", i, j),
					Value:   file,
					Message: "must not be empty",
				})
			}
		}
	}

	if cfg.Delta != nil {
		if err := cfg.Delta.Validate(); err != nil {
			errs = append(errs, &ValidationError{
				Field:   "delta",
				Value:   *cfg.Delta,
				Message: err.Error(),
			})
		}
	}

	if cfg.DateFormat == "" {
		errs = append(errs, &ValidationError{
			Field:   "date_format",
			Value:   cfg.DateFormat,
			Message: "must not be empty",
		})
	}

	// MaxStored must be >= 0 (nil = unbounded)
	if cfg.MaxStored != nil && *cfg.MaxStored < 0 {
		errs = append(errs, &ValidationError{
			Field:   "max_stored",
			Value:   *cfg.MaxStored,
			Message: "must be non-negative (omit for unbounded)",
		})
	}

	validRuntimes := map[string]bool{
		"":       true,
		"docker": true,
		"podman": true,
	}
	if !validRuntimes[cfg.Runtime] {
		errs = append(errs, &ValidationError{
			Field:   "runtime",
			Value:   cfg.Runtime,
			Message: "must be one of: docker, podman (or empty to detect)",
		})
	}

	if cfg.DateVariable == "" || strings.Contains(cfg.DateVariable, "=") {
		errs = append(errs, &ValidationError{
			Field:   "date_variable",
			Value:   cfg.DateVariable,
			Message: "must be non-empty and contain no '='",
		})
	}

	if !namePrefixPattern.MatchString(cfg.NamePrefix) {
		errs = append(errs, &ValidationError{
			Field:   "name_prefix",
			Value:   cfg.NamePrefix,
			Message: "must start with a letter or digit and contain only [a-zA-Z0-9_.-]",
		})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
