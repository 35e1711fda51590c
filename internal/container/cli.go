package container

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// CLILauncher implements Launcher using the docker/podman CLI.
type CLILauncher struct {
	runtime string // "docker" or "podman"
	runner  Runner
}

// NewCLILauncher creates a Launcher using the specified runtime.
// Use ResolveRuntime() to pick an available runtime first.
func NewCLILauncher(runtime string) *CLILauncher {
	return NewCLILauncherWithRunner(runtime, osRunner{bin: runtime})
}

// NewCLILauncherWithRunner creates a Launcher that sends runtime commands
// through runner.
func NewCLILauncherWithRunner(runtime string, runner Runner) *CLILauncher {
	return &CLILauncher{runtime: runtime, runner: runner}
}

// Runtime returns the CLI binary this launcher invokes.
func (l *CLILauncher) Runtime() string {
	return l.runtime
}

// Launch runs a new detached container.
func (l *CLILauncher) Launch(ctx context.Context, cfg RunConfig) (ContainerID, error) {
	output, err := l.runner.Exec(ctx, runArgs(cfg)...)
	if err != nil {
		return "", fmt.Errorf("failed to run container: %w", err)
	}

	return ContainerID(strings.TrimSpace(output)), nil
}

// runArgs builds `run -d` arguments: labels, -e entries, then env files,
// with the image last.
func runArgs(cfg RunConfig) []string {
	args := []string{"run", "-d", "--name=" + cfg.Name}

	keys := make([]string, 0, len(cfg.Labels))
	for k := range cfg.Labels {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		args = append(args, "--label", fmt.Sprintf("%s=%s", k, cfg.Labels[k]))
	}

	for _, kv := range cfg.Env {
		args = append(args, "-e", kv)
	}

	for _, f := range cfg.EnvFiles {
		args = append(args, "--env-file="+f)
	}

	return append(args, cfg.Image)
}

// Wait blocks until the container exits and returns the exit code.
func (l *CLILauncher) Wait(ctx context.Context, name string) (int, error) {
	output, err := l.runner.Exec(ctx, "wait", name)
	if err != nil {
		return -1, fmt.Errorf("failed to wait for container: %w", err)
	}

	exitCode, err := strconv.Atoi(strings.TrimSpace(output))
	if err != nil {
		return -1, fmt.Errorf("failed to parse exit code: %w", err)
	}

	return exitCode, nil
}

// Logs returns the last lines of the container's stdout and stderr.
func (l *CLILauncher) Logs(ctx context.Context, name string, lines int) (string, error) {
	output, err := l.runner.ExecCombined(ctx, "logs", "--tail", strconv.Itoa(lines), name)
	if err != nil {
		return "", fmt.Errorf("failed to read container logs: %w", err)
	}
	return output, nil
}

// Remove removes a stopped container.
func (l *CLILauncher) Remove(ctx context.Context, name string) error {
	if _, err := l.runner.ExecCombined(ctx, "rm", name); err != nil {
		return fmt.Errorf("failed to remove container: %w", err)
	}

	return nil
}

// Verify CLILauncher implements Launcher and LogReader
var (
	_ Launcher  = (*CLILauncher)(nil)
	_ LogReader = (*CLILauncher)(nil)
)
