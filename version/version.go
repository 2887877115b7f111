// Package version compares release versions and inspects the playback engine's version.
package version

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"time"

	"github.com/metafates/gache"
	"github.com/reel-cli/reel/filesystem"
	"github.com/reel-cli/reel/where"
)

// MinimumEngine is the oldest engine release whose IPC supports every command we issue.
const MinimumEngine = "0.33.0"

// ErrNoVersion is returned when the engine output carries no recognizable version.
var ErrNoVersion = errors.New("no version found in engine output")

var versionPattern = regexp.MustCompile(`\bv?(\d+\.\d+\.\d+)`)

// engineCacher remembers the version reported by each engine binary.
var engineCacher = gache.New[map[string]string](&gache.Options{
	Path:       filepath.Join(where.Temp(), "engine-version.json"),
	Lifetime:   time.Hour * 24,
	FileSystem: &filesystem.GacheFs{},
})

// Parse extracts the first semantic version from an engine's --version output.
func Parse(output string) (string, error) {
	match := versionPattern.FindStringSubmatch(output)
	if match == nil {
		return "", ErrNoVersion
	}
	return match[1], nil
}

// Engine returns the version reported by binary --version, cached for a day.
func Engine(binary string) (string, error) {
	cached, expired, err := engineCacher.Get()
	if err == nil && !expired {
		if v, ok := cached[binary]; ok {
			return v, nil
		}
	}
	if cached == nil || expired {
		cached = make(map[string]string)
	}

	out, err := exec.Command(binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", binary, err)
	}

	v, err := Parse(string(out))
	if err != nil {
		return "", err
	}

	cached[binary] = v
	_ = engineCacher.Set(cached)
	return v, nil
}
