package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/RevCBH/datebatch/internal/batch"
	"github.com/RevCBH/datebatch/internal/config"
	"github.com/RevCBH/datebatch/internal/container"
)

// RunBatch loads the batch file at path and runs it to completion or to
// the first failure.
func (a *App) RunBatch(ctx context.Context, out io.Writer, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	spec, err := config.LoadBatch(path)
	if err != nil {
		return fmt.Errorf("failed to load batch: %w", err)
	}

	var launcher container.Launcher
	if !a.dryRun {
		launcher, err = a.newLauncher(spec.Runtime)
		if err != nil {
			return fmt.Errorf("failed to set up container runtime: %w", err)
		}
	}

	// Create cancellable context
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inflight := &inflightRun{}
	runner := batch.NewRunner(spec, launcher,
		batch.WithOutput(out),
		batch.WithDryRun(a.dryRun),
		batch.WithHooks(batch.Hooks{
			OnLaunch: inflight.set,
			OnExit:   inflight.clear,
		}),
	)

	// Setup signal handler
	handler := NewSignalHandler(cancel)
	handler.OnShutdown(func() {
		if name := inflight.get(); name != "" {
			log.Printf("container %s is still running and must be removed by hand", name)
		}
		log.Printf("containers from this batch are labelled %s=%s", batch.LabelBatch, runner.BatchID())
	})
	handler.StartWithNotify(a.notifySignals)
	defer handler.Stop()

	sum, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if a.dryRun {
		log.Printf("dry run: %d runs over %d dates", sum.Units, sum.Dates)
	} else {
		log.Printf("batch %s complete: %d runs over %d dates, %d containers removed",
			runner.BatchID(), sum.Units, sum.Dates, sum.Removed)
	}
	return nil
}

// inflightRun tracks the container currently being waited on. The signal
// handler reads it from its own goroutine.
type inflightRun struct {
	mu   sync.Mutex
	name string
}

func (r *inflightRun) set(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.name = name
}

func (r *inflightRun) clear(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.name == name {
		r.name = ""
	}
}

func (r *inflightRun) get() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name
}
