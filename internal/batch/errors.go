package batch

import (
	"fmt"
	"strings"
)

// Launcher operations that can fail a batch.
const (
	OpLaunch = "launch"
	OpWait   = "wait"
	OpRemove = "remove"
)

// LaunchFailure is returned when the launcher fails to start, wait for,
// or remove a container. Any LaunchFailure aborts the batch.
type LaunchFailure struct {
	// Op is one of OpLaunch, OpWait, OpRemove
	Op string

	// Run is the container name
	Run string

	// Image and Date identify the unit (empty for OpRemove)
	Image string
	Date  string

	// ExitCode is the container's exit code when it exited non-zero
	ExitCode int

	// Logs is the tail of the container output, when available
	Logs string

	Err error
}

func (e *LaunchFailure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Op, e.Run)
	if e.Image != "" {
		fmt.Fprintf(&b, " (image %s, date %s)", e.Image, e.Date)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	if logs := strings.TrimSpace(e.Logs); logs != "" {
		b.WriteString("\ncontainer output:\n")
		b.WriteString(logs)
	}
	return b.String()
}

func (e *LaunchFailure) Unwrap() error {
	return e.Err
}
