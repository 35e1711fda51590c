// Package batch runs every configured container once per date, one at a
// time, and prunes finished containers beyond the retention cap.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/RevCBH/datebatch/internal/config"
	"github.com/RevCBH/datebatch/internal/container"
	"github.com/RevCBH/datebatch/internal/dates"
	"github.com/oklog/ulid/v2"
)

// Labels attached to every launched container.
const (
	LabelBatch = "datebatch.batch"
	LabelDate  = "datebatch.date"
	LabelTask  = "datebatch.task"
)

// failureLogLines is how much container output a non-zero exit reports.
const failureLogLines = 20

// Hooks observe container lifecycle from the runner loop.
type Hooks struct {
	// OnLaunch is called after a container starts
	OnLaunch func(name string)

	// OnExit is called after a container has been waited on
	OnExit func(name string)
}

// Summary counts what a finished batch did.
type Summary struct {
	// Dates is the number of dates fully processed
	Dates int

	// Units is the number of (date, run spec) pairs processed
	Units int

	// Removed is the number of containers pruned
	Removed int
}

// Runner drives a batch. It is single-use and not safe for concurrent use.
type Runner struct {
	spec     *config.BatchSpec
	launcher container.Launcher

	out     io.Writer
	dryRun  bool
	now     func() time.Time
	batchID string
	hooks   Hooks

	history   *RunHistory
	announcer *announcer
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where announcement lines go (default: os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithDryRun announces every unit without launching anything.
func WithDryRun(dryRun bool) Option {
	return func(r *Runner) { r.dryRun = dryRun }
}

// WithClock replaces time.Now for timestamps and container names.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithBatchID sets the batch label value (default: a new ULID).
func WithBatchID(id string) Option {
	return func(r *Runner) { r.batchID = id }
}

// WithHooks registers lifecycle callbacks.
func WithHooks(h Hooks) Option {
	return func(r *Runner) { r.hooks = h }
}

// NewRunner creates a Runner for spec. launcher may be nil in dry-run mode.
func NewRunner(spec *config.BatchSpec, launcher container.Launcher, opts ...Option) *Runner {
	r := &Runner{
		spec:     spec,
		launcher: launcher,
		out:      os.Stdout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.batchID == "" {
		r.batchID = ulid.Make().String()
	}

	r.history = NewRunHistory(spec.MaxStored)
	r.announcer = newAnnouncer(r.out, spec.DateVariable)
	return r
}

// BatchID returns the value of the batch label on launched containers.
func (r *Runner) BatchID() string {
	return r.batchID
}

// History returns the retained container names, oldest first.
func (r *Runner) History() []string {
	return r.history.Names()
}

// Run expands the dates and processes every (date, run spec) pair in
// order. Date errors are reported before anything is launched. The first
// LaunchFailure stops the batch; finished runs are left in place.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	seq, err := dates.Expand(r.spec.Dates, r.spec.DateRanges, r.spec.Step(), r.spec.DateFormat)
	if err != nil {
		return Summary{}, fmt.Errorf("expand dates: %w", err)
	}
	if r.launcher == nil && !r.dryRun {
		return Summary{}, errors.New("no container launcher configured")
	}

	var sum Summary
	for _, date := range seq {
		for i, run := range r.spec.RunData {
			if err := ctx.Err(); err != nil {
				return sum, err
			}

			removed, err := r.runUnit(ctx, date, i, run)
			if err != nil {
				return sum, err
			}
			sum.Units++
			sum.Removed += removed
		}
		sum.Dates++
	}

	return sum, nil
}

// runUnit announces, launches, waits for, and records one container.
// It returns how many containers were pruned.
func (r *Runner) runUnit(ctx context.Context, date string, index int, run config.RunSpec) (int, error) {
	r.announcer.announce(run.Container, date, r.now())
	if r.dryRun {
		return 0, nil
	}

	cfg := r.compose(date, index, run)
	fail := func(op string, err error) *LaunchFailure {
		return &LaunchFailure{Op: op, Run: cfg.Name, Image: cfg.Image, Date: date, Err: err}
	}

	if _, err := r.launcher.Launch(ctx, cfg); err != nil {
		return 0, fail(OpLaunch, err)
	}
	if r.hooks.OnLaunch != nil {
		r.hooks.OnLaunch(cfg.Name)
	}

	exitCode, err := r.launcher.Wait(ctx, cfg.Name)
	if err != nil {
		return 0, fail(OpWait, err)
	}
	if exitCode != 0 {
		f := fail(OpWait, fmt.Errorf("container exited with code %d", exitCode))
		f.ExitCode = exitCode
		f.Logs = r.tailLogs(ctx, cfg.Name)
		return 0, f
	}
	if r.hooks.OnExit != nil {
		r.hooks.OnExit(cfg.Name)
	}

	evicted, ok := r.history.Push(cfg.Name)
	if !ok {
		return 0, nil
	}
	if err := r.launcher.Remove(ctx, evicted); err != nil {
		return 0, &LaunchFailure{Op: OpRemove, Run: evicted, Err: err}
	}
	log.Printf("removed container %s (%d retained)", evicted, r.history.Len())
	return 1, nil
}

// compose builds the run configuration for one unit. The date variable
// comes first so a literal variable of the same name overrides it.
func (r *Runner) compose(date string, index int, run config.RunSpec) container.RunConfig {
	env := make([]string, 0, 1+len(run.Envs.Variables))
	env = append(env, r.spec.DateVariable+"="+date)
	for _, k := range slices.Sorted(maps.Keys(run.Envs.Variables)) {
		env = append(env, k+"="+run.Envs.Variables[k])
	}

	return container.RunConfig{
		Image:    run.Container,
		Name:     runName(r.spec.NamePrefix, date, index, r.now()),
		Env:      env,
		EnvFiles: slices.Clone(run.Envs.Files),
		Labels: map[string]string{
			LabelBatch: r.batchID,
			LabelDate:  date,
			LabelTask:  strconv.Itoa(index),
		},
	}
}

func (r *Runner) tailLogs(ctx context.Context, name string) string {
	lr, ok := r.launcher.(container.LogReader)
	if !ok {
		return ""
	}
	logs, err := lr.Logs(ctx, name, failureLogLines)
	if err != nil {
		log.Printf("could not read logs for %s: %v", name, err)
		return ""
	}
	return logs
}

// invalidNameChars matches characters container runtimes reject in names.
var invalidNameChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

// runName returns <prefix>_<date>_<index>_<unix nanos>.
func runName(prefix, date string, index int, at time.Time) string {
	safeDate := strings.Trim(invalidNameChars.ReplaceAllString(date, "-"), "-")
	if safeDate == "" {
		safeDate = "date"
	}
	return fmt.Sprintf("%s_%s_%d_%d", prefix, safeDate, index, at.UnixNano())
}
