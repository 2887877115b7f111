package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/reel-cli/reel/media"
	"github.com/reel-cli/reel/player"
	"github.com/reel-cli/reel/screen"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ItemsFilter narrows the playlist before playback.
type ItemsFilter func([]media.Source) ([]media.Source, error)

type Options struct {
	Out      io.Writer
	Provider player.Provider
	Playlist media.Playlist
	Items    mo.Option[ItemsFilter]
	Recorder screen.Recorder

	AutoStart    bool
	Json         bool
	ExitOnEnd    bool
	WatchSignals bool
	PollInterval time.Duration
}

// ParseItemsFilter parses an item selection.
// Accepted forms: "first", "last", "all", a zero-based index "2",
// an inclusive range "1-3" and a title substring "@intro@".
func ParseItemsFilter(description string) (ItemsFilter, error) {
	switch description {
	case "first":
		return func(items []media.Source) ([]media.Source, error) {
			if len(items) == 0 {
				return items, nil
			}
			return items[:1], nil
		}, nil
	case "last":
		return func(items []media.Source) ([]media.Source, error) {
			if len(items) == 0 {
				return items, nil
			}
			return items[len(items)-1:], nil
		}, nil
	case "all":
		return func(items []media.Source) ([]media.Source, error) {
			return items, nil
		}, nil
	}

	if from, to, ok := strings.Cut(description, "-"); ok {
		start, err1 := strconv.ParseUint(from, 10, 16)
		end, err2 := strconv.ParseUint(to, 10, 16)
		if err1 == nil && err2 == nil {
			return func(items []media.Source) ([]media.Source, error) {
				n := uint64(len(items))
				start, end := min(start, n), min(end+1, n)
				if start > end {
					return []media.Source{}, nil
				}
				return items[start:end], nil
			}, nil
		}
	}

	if len(description) > 1 && strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(items []media.Source) ([]media.Source, error) {
			return lo.Filter(items, func(s media.Source, _ int) bool {
				return strings.Contains(strings.ToLower(s.Title()), sub)
			}), nil
		}, nil
	}

	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(items []media.Source) ([]media.Source, error) {
			if uint64(len(items)) <= idx {
				return []media.Source{}, nil
			}
			return []media.Source{items[idx]}, nil
		}, nil
	}

	return nil, fmt.Errorf("invalid items filter: %s", description)
}
