// Package player defines the playback engine capability set consumed by sessions.
// The production adapter drives mpv over its JSON-IPC socket; Fake is an in-memory double for tests.
package player

import (
	"context"
	"errors"
	"time"

	"github.com/reel-cli/reel/media"
	"github.com/samber/mo"
)

// ErrReleased is returned by engines for directives issued after Release.
var ErrReleased = errors.New("engine released")

// Engine is the external playback engine as seen by a session.
// Directives are one-way commands; state accessors are pure reads.
type Engine interface {
	// SetPlaylist records the ordered sources to load on Prepare.
	SetPlaylist(playlist media.Playlist) error

	// Prepare loads every source of the playlist, in order, without starting playback.
	Prepare() error

	Play() error
	Pause() error
	Next() error
	Previous() error

	// Release frees every engine-held resource. The engine is unusable afterwards.
	Release() error

	IsPlaying() bool
	IsLoading() bool
	IsPlayingAd() bool
	CurrentPosition() time.Duration
	CurrentIndex() int
	CurrentFormat() mo.Option[media.Format]

	// Done is closed when the engine terminates on its own, e.g. the user closed the video window.
	Done() <-chan struct{}
}

// Provider constructs engines. It is the platform resource provider injected into sessions.
type Provider interface {
	NewEngine(ctx context.Context) (Engine, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (Engine, error)

func (f ProviderFunc) NewEngine(ctx context.Context) (Engine, error) {
	return f(ctx)
}
