// Package version exposes build metadata, set at link time with -ldflags.
package version

//nolint:gochecknoglobals // overridden by the linker
var (
	name    = "replisome"
	version = "dev"
	commit  = "unknown"
)

// Name returns the binary name.
func Name() string {
	return name
}

// Version returns the build version.
func Version() string {
	return version
}

// Commit returns the git commit the binary was built from.
func Commit() string {
	return commit
}
