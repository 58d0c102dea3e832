// Package settings provides build metadata, runtime options, and context
// helpers shared by the easyface CLI and its internal packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "easyface"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Paths groups the on-disk locations a run reads and writes.
type Paths struct {
	Settings  string
	Shortcuts string
	Config    string
	Log       string
	Downloads string
}

// Run holds configuration settings for a single execution of the application.
type Run struct {
	MinLogLevel int8
	Paths       Paths
	NoColor     bool
	Debug       bool
	ScanOnStart bool
}

// NewCliParams returns the defaults used when the binary is launched from a shell.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		NoColor:     false,
		Debug:       false,
		ScanOnStart: false,
	}
}
