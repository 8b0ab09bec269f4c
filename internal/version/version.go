// Package version holds the abidesgen version string.
package version

// Version is the current abidesgen release version.
const Version = "1.0.0"
