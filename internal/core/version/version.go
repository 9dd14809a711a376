// Package version provides information about the build version of the service.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service" example:"robots-api"`
	Version string `json:"version" example:"v0.1.0"`
	Commit  string `json:"commit"  example:"abcd123"`
	Date    string `json:"date"    example:"2025-09-02"`
}

// Service is the name reported in build info, logs and the pg application_name
const Service = "robots-api"

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'robots/internal/core/version.version=v0.1.0'
	// -X 'robots/internal/core/version.commit=abcd' -X 'robots/internal/core/version.date=2025-09-02'"
	return BuildInfo{
		Service: Service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
