// Package version compares release versions and inspects the playback engine's version.
package version

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// release is a major.minor.patch triple.
type release [3]int

func parseRelease(s string) (release, error) {
	var r release

	parts := strings.SplitN(strings.TrimPrefix(s, "v"), ".", 3)
	if len(parts) != 3 {
		return r, fmt.Errorf("malformed version %q", s)
	}

	for i, part := range parts {
		// tolerate suffixes such as 0.35.1-dirty
		digits := strings.TrimRightFunc(part, func(r rune) bool { return r < '0' || r > '9' })
		n, err := strconv.Atoi(digits)
		if err != nil {
			return r, fmt.Errorf("malformed version %q: %w", s, err)
		}
		r[i] = n
	}

	return r, nil
}

// Compare orders two version strings: 1 if a is newer, -1 if b is newer, 0 if equal.
func Compare(a, b string) (int, error) {
	ra, err := parseRelease(a)
	if err != nil {
		return 0, err
	}

	rb, err := parseRelease(b)
	if err != nil {
		return 0, err
	}

	for i := range ra {
		if c := cmp.Compare(ra[i], rb[i]); c != 0 {
			return c, nil
		}
	}
	return 0, nil
}
