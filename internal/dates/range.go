package dates

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// RangeDelimiter separates start and end in the compact range form.
const RangeDelimiter = "_"

// Range is an inclusive start/end pair, both rendered in the batch's
// date format. A range whose start is after its end is empty.
type Range struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// ParseRange reads the compact "<start>_<end>" form.
func ParseRange(s string) (Range, error) {
	parts := strings.Split(s, RangeDelimiter)
	if len(parts) != 2 {
		return Range{}, fmt.Errorf("date range %q: want <start>%s<end>", s, RangeDelimiter)
	}
	start, end := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if start == "" || end == "" {
		return Range{}, fmt.Errorf("date range %q: start and end must not be empty", s)
	}
	return Range{Start: start, End: end}, nil
}

// String returns the compact form.
func (r Range) String() string {
	return r.Start + RangeDelimiter + r.End
}

// UnmarshalYAML accepts either the compact string form or a mapping with
// start and end keys.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseRange(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*r = parsed
		return nil
	case yaml.MappingNode:
		var raw struct {
			Start string `yaml:"start"`
			End   string `yaml:"end"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		if raw.Start == "" || raw.End == "" {
			return fmt.Errorf("line %d: date range needs both start and end", node.Line)
		}
		*r = Range{Start: raw.Start, End: raw.End}
		return nil
	default:
		return fmt.Errorf("line %d: date range must be a string or a mapping", node.Line)
	}
}
