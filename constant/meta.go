// Package constant defines immutable application-level identifiers and build metadata.
package constant

const (
	// Reel is the canonical application identifier used for filesystem paths and CLI branding.
	Reel = "reel"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// SampleSource is played when no source is given and none is configured.
	SampleSource = "https://storage.googleapis.com/exoplayer-test-media-01/mkv/android-screensavers-540p.mkv"
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
