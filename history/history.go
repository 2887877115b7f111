// Package history persists the last playback position per source.
package history

import (
	"errors"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/reel-cli/reel/filesystem"
	"github.com/reel-cli/reel/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ErrNoSource is returned when saving an entry without a source.
var ErrNoSource = errors.New("history entry has no source")

var cacher = gache.New[map[string]*Entry](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every stored entry keyed by source URI.
func Get() (map[string]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Lookup returns the entry for a source URI, if any.
func Lookup(uri string) (mo.Option[*Entry], error) {
	saved, err := Get()
	if err != nil {
		return mo.None[*Entry](), err
	}

	if entry, ok := saved[uri]; ok {
		return mo.Some(entry), nil
	}
	return mo.None[*Entry](), nil
}

// List returns every entry, most recently updated first.
func List() ([]*Entry, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
	})
	return entries, nil
}

// Find returns the entries whose title or source fuzzily matches query,
// most recently updated first.
func Find(query string) ([]*Entry, error) {
	entries, err := List()
	if err != nil {
		return nil, err
	}

	return lo.Filter(entries, func(e *Entry, _ int) bool {
		return fuzzy.MatchNormalizedFold(query, e.Title) || fuzzy.MatchNormalizedFold(query, e.Source)
	}), nil
}

// Save stores entry, replacing any previous entry for the same source.
func Save(entry *Entry) error {
	if entry == nil || entry.Source == "" {
		return ErrNoSource
	}

	saved, err := Get()
	if err != nil {
		return err
	}

	saved[entry.Source] = entry
	return cacher.Set(saved)
}

// Remove deletes the entry for a source URI.
func Remove(uri string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, uri)
	return cacher.Set(saved)
}

// Clear deletes every entry.
func Clear() error {
	return cacher.Set(make(map[string]*Entry))
}
