package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RevCBH/datebatch/internal/dates"
)

// writeFile creates a file with the given content for testing
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func TestLoadBatch_JSONDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.json")
	writeFile(t, path, `{
    "run_data": [
        {
            "container": "ghcr.io/hcdp/task-preliminary-rainfall-daily:latest",
            "envs": {
                "files": ["/home/exouser/container_envs/aggregation/aggregation.env"]
            }
        },
        {
            "container": "ghcr.io/hcdp/task-ingest-values:latest",
            "envs": {
                "variables": {
                    "INGESTION_CONFIG_URL": "https://example.com/ingestion.json"
                },
                "files": ["/home/exouser/container_envs/ingestion/ingestion.env"]
            }
        }
    ],
    "date_ranges": [
        "2024-07-15_2024-07-16"
    ]
}`)

	cfg, err := LoadBatch(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.RunData) != 2 {
		t.Fatalf("expected 2 run specs, got %d", len(cfg.RunData))
	}
	if cfg.RunData[0].Container != "ghcr.io/hcdp/task-preliminary-rainfall-daily:latest" {
		t.Errorf("unexpected first container %q", cfg.RunData[0].Container)
	}
	if len(cfg.RunData[0].Envs.Variables) != 0 {
		t.Errorf("expected no variables for first run, got %v", cfg.RunData[0].Envs.Variables)
	}
	if got := cfg.RunData[1].Envs.Variables["INGESTION_CONFIG_URL"]; got != "https://example.com/ingestion.json" {
		t.Errorf("unexpected INGESTION_CONFIG_URL %q", got)
	}
	if len(cfg.RunData[1].Envs.Files) != 1 {
		t.Errorf("expected 1 env file, got %v", cfg.RunData[1].Envs.Files)
	}

	want := []dates.Range{{Start: "2024-07-15", End: "2024-07-16"}}
	if len(cfg.DateRanges) != 1 || cfg.DateRanges[0] != want[0] {
		t.Errorf("expected date ranges %v, got %v", want, cfg.DateRanges)
	}
}

func TestLoadBatch_Defaults(t *testing.T) {
	cfg, err := ParseBatch([]byte(`run_data: [{container: alpine}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Step() != dates.DefaultStep {
		t.Errorf("expected default step %v, got %v", dates.DefaultStep, cfg.Step())
	}
	if cfg.DateFormat != DefaultDateFormat {
		t.Errorf("expected DateFormat %q, got %q", DefaultDateFormat, cfg.DateFormat)
	}
	if !cfg.Unbounded() {
		t.Errorf("expected unbounded retention, got %d", *cfg.MaxStored)
	}
	if cfg.DateVariable != DefaultDateVariable {
		t.Errorf("expected DateVariable %q, got %q", DefaultDateVariable, cfg.DateVariable)
	}
	if cfg.NamePrefix != DefaultNamePrefix {
		t.Errorf("expected NamePrefix %q, got %q", DefaultNamePrefix, cfg.NamePrefix)
	}
	if cfg.Runtime != DefaultRuntime {
		t.Errorf("expected Runtime %q, got %q", DefaultRuntime, cfg.Runtime)
	}
	if len(cfg.Dates) != 0 || len(cfg.DateRanges) != 0 {
		t.Errorf("expected no dates, got %v and %v", cfg.Dates, cfg.DateRanges)
	}
}

func TestLoadBatch_FileOverrides(t *testing.T) {
	cfg, err := ParseBatch([]byte(`
run_data:
  - container: alpine:3
    envs:
      variables:
        MODE: backfill
dates: [2024-01-01, "2024-01-05"]
date_ranges:
  - 01/02/2024_03/02/2024
  - {start: 01/03/2024, end: 02/03/2024}
delta: {months: 1}
date_format: "%d/%m/%Y"
max_stored: 3
runtime: podman
date_variable: RUN_DATE
name_prefix: backfill
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Step() != (dates.Step{Months: 1}) {
		t.Errorf("expected a one month step without the default day, got %+v", cfg.Step())
	}
	if cfg.MaxStored == nil || *cfg.MaxStored != 3 {
		t.Errorf("expected MaxStored 3, got %v", cfg.MaxStored)
	}
	if cfg.DateFormat != "%d/%m/%Y" {
		t.Errorf("expected DateFormat %%d/%%m/%%Y, got %q", cfg.DateFormat)
	}
	if strings.Join(cfg.Dates, ",") != "2024-01-01,2024-01-05" {
		t.Errorf("expected literal dates kept verbatim, got %v", cfg.Dates)
	}
	if len(cfg.DateRanges) != 2 || cfg.DateRanges[1].Start != "01/03/2024" {
		t.Errorf("unexpected date ranges %v", cfg.DateRanges)
	}
	if cfg.Runtime != "podman" || cfg.DateVariable != "RUN_DATE" || cfg.NamePrefix != "backfill" {
		t.Errorf("unexpected runtime settings: %q %q %q", cfg.Runtime, cfg.DateVariable, cfg.NamePrefix)
	}
}

func TestLoadBatch_ZeroMaxStored(t *testing.T) {
	cfg, err := ParseBatch([]byte(`{"run_data": [{"container": "alpine"}], "max_stored": 0}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Unbounded() || *cfg.MaxStored != 0 {
		t.Errorf("expected MaxStored 0, got %v", cfg.MaxStored)
	}
}

func TestLoadBatch_EnvOverridesFile(t *testing.T) {
	t.Setenv("DATEBATCH_RUNTIME", "docker")

	cfg, err := ParseBatch([]byte(`{"run_data": [{"container": "alpine"}], "runtime": "podman"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Runtime != "docker" {
		t.Errorf("expected env to override runtime, got %q", cfg.Runtime)
	}
}

func TestLoadBatch_MissingFile(t *testing.T) {
	_, err := LoadBatch(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLoadBatch_InvalidYAML(t *testing.T) {
	_, err := ParseBatch([]byte("run_data: [unclosed"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "parse batch file") {
		t.Errorf("error should mention parsing, got: %v", err)
	}
}

func TestLoadBatch_BadDateRange(t *testing.T) {
	_, err := ParseBatch([]byte(`{"run_data": [{"container": "alpine"}], "date_ranges": ["2024-07-15"]}`))
	if err == nil {
		t.Fatal("expected error for range without delimiter")
	}
	if !strings.Contains(err.Error(), "2024-07-15") {
		t.Errorf("error should name the range, got: %v", err)
	}
}

func TestLoadBatch_ValidationFailure(t *testing.T) {
	_, err := ParseBatch([]byte(`{"run_data": [], "delta": {"days": 0}}`))
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	for _, field := range []string{"run_data", "delta"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error should mention %q, got: %v", field, err)
		}
	}
}

func TestBatchSpec_StepDefaultsWhenNil(t *testing.T) {
	cfg := &BatchSpec{}
	if cfg.Step() != dates.DefaultStep {
		t.Errorf("expected default step, got %v", cfg.Step())
	}
}
