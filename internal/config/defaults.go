package config

import "github.com/RevCBH/datebatch/internal/dates"

const (
	DefaultDateFormat   = dates.DefaultFormat
	DefaultRuntime      = "" // auto-detect
	DefaultDateVariable = "CUSTOM_DATE"
	DefaultNamePrefix   = "batch"
)

// DefaultBatchSpec returns a BatchSpec with all default values applied.
// Delta and MaxStored stay nil: the step default is applied after
// decoding and a nil cap means unbounded.
func DefaultBatchSpec() *BatchSpec {
	return &BatchSpec{
		DateFormat:   DefaultDateFormat,
		Runtime:      DefaultRuntime,
		DateVariable: DefaultDateVariable,
		NamePrefix:   DefaultNamePrefix,
	}
}
