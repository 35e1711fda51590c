package config

import "os"

// envOverrides maps environment variables to batch field setters.
var envOverrides = []struct {
	envVar string
	apply  func(*BatchSpec, string)
}{
	{
		envVar: "DATEBATCH_RUNTIME",
		apply: func(c *BatchSpec, v string) {
			c.Runtime = v
		},
	},
	{
		envVar: "DATEBATCH_DATE_VARIABLE",
		apply: func(c *BatchSpec, v string) {
			c.DateVariable = v
		},
	},
	{
		envVar: "DATEBATCH_NAME_PREFIX",
		apply: func(c *BatchSpec, v string) {
			c.NamePrefix = v
		},
	},
}

// applyEnvOverrides modifies the batch in place with environment variable values.
func applyEnvOverrides(cfg *BatchSpec) {
	for _, override := range envOverrides {
		if val := os.Getenv(override.envVar); val != "" {
			override.apply(cfg, val)
		}
	}
}
