package engine

// Options represents configuration options for the Engine.
type Options struct {
	// FlushPerCommand flushes the sink after every processed command, so
	// each command's trades and snapshots become visible as one step.
	// Disabled only in benchmarks.
	FlushPerCommand bool
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		FlushPerCommand: true,
	}
}
