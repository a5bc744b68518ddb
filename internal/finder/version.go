package finder

// Build metadata, overridden at link time via -ldflags.
var (
	Version   = "0.3.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
