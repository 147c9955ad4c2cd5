// Package version holds the build version, overridden at link time with
// -ldflags "-X .../internal/version.Version=v1.2.3".
package version

// Version is the application version reported by the system endpoint.
var Version = "dev"
