package container

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes container runtime commands.
type Runner interface {
	// Exec returns stdout. On failure the error carries stderr.
	Exec(ctx context.Context, args ...string) (string, error)

	// ExecCombined returns stdout and stderr interleaved.
	ExecCombined(ctx context.Context, args ...string) (string, error)
}

// osRunner executes real runtime commands via exec.CommandContext.
type osRunner struct {
	bin string
}

func (r osRunner) Exec(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s failed: %w\nstderr: %s",
			r.bin, args[0], err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}

func (r osRunner) ExecCombined(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.bin, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s %s failed: %w\noutput: %s",
			r.bin, args[0], err, strings.TrimSpace(string(output)))
	}

	return string(output), nil
}
