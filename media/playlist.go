package media

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/afero"
)

// Playlist is an ordered, non-empty sequence of sources.
// A single video is a playlist of length one.
type Playlist struct {
	sources []Source
}

// NewPlaylist builds a playlist preserving the given order.
func NewPlaylist(sources ...Source) (Playlist, error) {
	if len(sources) == 0 {
		return Playlist{}, ErrEmptyPlaylist
	}

	for i, s := range sources {
		if s.IsZero() {
			return Playlist{}, fmt.Errorf("entry %d: %w", i, ErrEmptySource)
		}
	}

	return Playlist{sources: append([]Source(nil), sources...)}, nil
}

// ParsePlaylist parses each raw locator in order.
func ParsePlaylist(raw ...string) (Playlist, error) {
	sources := make([]Source, 0, len(raw))
	for i, r := range raw {
		s, err := ParseSource(r)
		if err != nil {
			return Playlist{}, fmt.Errorf("entry %d: %w", i, err)
		}
		sources = append(sources, s)
	}

	return NewPlaylist(sources...)
}

// Len returns the number of sources.
func (p Playlist) Len() int {
	return len(p.sources)
}

// At returns the source at index i and whether it exists.
func (p Playlist) At(i int) (Source, bool) {
	if i < 0 || i >= len(p.sources) {
		return Source{}, false
	}
	return p.sources[i], true
}

// Sources returns a copy of the ordered sources.
func (p Playlist) Sources() []Source {
	return append([]Source(nil), p.sources...)
}

// URIs returns the locators in order.
func (p Playlist) URIs() []string {
	return lo.Map(p.sources, func(s Source, _ int) string { return s.URI() })
}

// Title returns the title of the source at index i, or an empty string.
func (p Playlist) Title(i int) string {
	s, ok := p.At(i)
	if !ok {
		return ""
	}
	return s.Title()
}

// LoadM3U reads a plain or extended M3U file.
// Directives and blank lines are skipped; relative entries resolve against the file's directory.
func LoadM3U(fs afero.Fs, path string) (Playlist, error) {
	f, err := fs.Open(path)
	if err != nil {
		return Playlist{}, fmt.Errorf("open playlist: %w", err)
	}
	defer f.Close()

	var (
		dir     = filepath.Dir(path)
		raw     []string
		scanner = bufio.NewScanner(f)
	)

	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !strings.Contains(line, "://") && !filepath.IsAbs(line) {
			line = filepath.Join(dir, line)
		}
		raw = append(raw, line)
	}

	if err := scanner.Err(); err != nil {
		return Playlist{}, fmt.Errorf("read playlist: %w", err)
	}

	return ParsePlaylist(raw...)
}

// IsM3U reports whether path names an M3U playlist file.
func IsM3U(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".m3u", ".m3u8":
		return !strings.Contains(path, "://")
	default:
		return false
	}
}
