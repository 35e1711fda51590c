package container

// ContainerID is the identifier printed by `docker run -d`.
type ContainerID string

// RunConfig specifies one detached container run.
type RunConfig struct {
	// Image is the container image (e.g., "ghcr.io/hcdp/task-ingest-values:latest")
	Image string

	// Name is the container name (e.g., "batch_2024-07-15_0_1721001600000000000")
	Name string

	// Env holds KEY=value entries passed with -e, in order. Later entries
	// win over earlier ones with the same key.
	Env []string

	// EnvFiles are host paths passed with --env-file, in order
	EnvFiles []string

	// Labels are attached to the container for later lookup
	Labels map[string]string
}
