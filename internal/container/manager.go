package container

import (
	"context"
)

// Launcher starts, waits for, and removes single detached containers.
// Containers are addressed by the name given in RunConfig.
type Launcher interface {
	// Launch starts a new detached container.
	Launch(ctx context.Context, cfg RunConfig) (ContainerID, error)

	// Wait blocks until the container exits and returns the exit code.
	// Returns an error if the container doesn't exist or wait fails.
	Wait(ctx context.Context, name string) (exitCode int, err error)

	// Remove removes a stopped container.
	Remove(ctx context.Context, name string) error
}

// LogReader is implemented by launchers that can return the tail of a
// container's output.
type LogReader interface {
	Logs(ctx context.Context, name string, lines int) (string, error)
}
