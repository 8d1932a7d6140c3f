package version

// Version is the release of the trendscout binary, set at build time:
// -ldflags "-X github.com/rxtech-lab/trendscout/internal/version.Version=v0.3.1"
// "main" marks a development build.
var Version = "main"

// GetVersion returns the version of the running binary.
func GetVersion() string {
	return Version
}
