// Package version holds the build version, set at link time with
// -ldflags "-X github.com/wrapsnake/engine/version.Version=...".
package version

// Version of the binary.
var Version = "dev"
