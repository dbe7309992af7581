package version

// Application version information, overridden at build time via -ldflags.
var (
	Version = "dev"
	Commit  = ""
)
