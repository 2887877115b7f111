// Package media defines the locators and playlists handed to the playback engine.
package media

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"unicode"
)

var (
	ErrEmptySource    = errors.New("empty source")
	ErrInvalidSource  = errors.New("invalid source")
	ErrEmptyPlaylist  = errors.New("playlist must contain at least one source")
	ErrUnsupportedURL = errors.New("unsupported url scheme")
)

// Source is an opaque, immutable locator of one playable item.
type Source struct {
	uri    string
	remote bool
}

// ParseSource validates raw and returns a Source.
// Values containing "://" are treated as URLs; anything else is a local path.
func ParseSource(raw string) (Source, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Source{}, ErrEmptySource
	}

	if hasControl(s) {
		return Source{}, fmt.Errorf("%w: control characters in %q", ErrInvalidSource, s)
	}

	// a leading dash would be read as an engine flag
	if strings.HasPrefix(s, "-") {
		return Source{}, fmt.Errorf("%w: %q looks like a flag", ErrInvalidSource, s)
	}

	// local paths are absolute so they stay valid from any working directory
	if !strings.Contains(s, "://") {
		abs, err := filepath.Abs(s)
		if err != nil {
			return Source{}, fmt.Errorf("%w: %w", ErrInvalidSource, err)
		}
		return Source{uri: abs}, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %w", ErrInvalidSource, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https", "rtmp", "rtsp":
		return Source{uri: s, remote: true}, nil
	case "file":
		return Source{uri: s}, nil
	default:
		return Source{}, fmt.Errorf("%w: %s", ErrUnsupportedURL, u.Scheme)
	}
}

// MustParseSource is like ParseSource but panics on error.
func MustParseSource(raw string) Source {
	s, err := ParseSource(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// URI returns the locator exactly as handed to the engine.
func (s Source) URI() string {
	return s.uri
}

// IsRemote reports whether the source is fetched over the network.
func (s Source) IsRemote() bool {
	return s.remote
}

// IsZero reports whether s was never parsed.
func (s Source) IsZero() bool {
	return s.uri == ""
}

// Title returns a short human label: the last path element, or the host for bare URLs.
func (s Source) Title() string {
	if !strings.Contains(s.uri, "://") {
		return filepath.Base(s.uri)
	}

	u, err := url.Parse(s.uri)
	if err != nil {
		return s.uri
	}

	if base := path.Base(u.EscapedPath()); base != "/" && base != "." && base != "" {
		// percent-encoded control characters stay encoded
		if unescaped, err := url.PathUnescape(base); err == nil && !hasControl(unescaped) {
			return unescaped
		}
		return base
	}

	if u.Host != "" {
		return u.Host
	}
	return s.uri
}

func hasControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

func (s Source) String() string {
	return s.uri
}
