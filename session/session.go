// Package session owns one playback engine for the lifetime of a screen.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/reel-cli/reel/log"
	"github.com/reel-cli/reel/media"
	"github.com/reel-cli/reel/player"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInitialization wraps every failure to construct, load or prepare the engine.
	ErrInitialization = errors.New("playback session initialization failed")

	// ErrUseAfterRelease is returned by every directive issued after Release.
	ErrUseAfterRelease = errors.New("playback session already released")
)

// Session binds exactly one engine to one playlist.
// Directives and Release are serialized; accessors never wait on them.
type Session struct {
	engine   player.Engine
	playlist media.Playlist

	mu       sync.Mutex
	status   atomic.Int32
	done     atomic.Bool
	released chan struct{}
}

// Create constructs an engine through provider, loads playlist in order and prepares it.
// With autoStart playback is requested right away. Nothing is retried: any
// failure is returned wrapped in ErrInitialization and the engine, if one was
// built, is released first.
func Create(ctx context.Context, provider player.Provider, playlist media.Playlist, autoStart bool) (*Session, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: no engine provider", ErrInitialization)
	}
	if playlist.Len() == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, media.ErrEmptyPlaylist)
	}

	engine, err := provider.NewEngine(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create engine: %w", ErrInitialization, err)
	}

	abort := func(step string, err error) (*Session, error) {
		if releaseErr := engine.Release(); releaseErr != nil {
			log.Warnf("releasing engine after failed %s: %v", step, releaseErr)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrInitialization, step, err)
	}

	if err := engine.SetPlaylist(playlist); err != nil {
		return abort("load playlist", err)
	}

	if err := engine.Prepare(); err != nil {
		return abort("prepare", err)
	}

	s := &Session{
		engine:   engine,
		playlist: playlist,
		released: make(chan struct{}),
	}
	s.status.Store(int32(Prepared))

	log.WithFields(logrus.Fields{
		"items":     playlist.Len(),
		"autostart": autoStart,
	}).Info("playback session prepared")

	if autoStart {
		s.forward("play", engine.Play)
		s.status.Store(int32(Playing))
	}

	return s, nil
}

// forward issues a directive. Engine failures are logged, never surfaced.
func (s *Session) forward(name string, directive func() error) {
	if err := directive(); err != nil {
		log.WithFields(logrus.Fields{"directive": name}).Warnf("engine rejected directive: %v", err)
	}
}

func (s *Session) direct(name string, directive func() error, next mo.Option[Status]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done.Load() {
		return ErrUseAfterRelease
	}

	s.forward(name, directive)
	if status, ok := next.Get(); ok {
		s.status.Store(int32(status))
	}
	return nil
}

// Play requests playback. Playing an already playing session is a no-op for the caller.
func (s *Session) Play() error {
	return s.direct("play", s.engine.Play, mo.Some(Playing))
}

// Pause requests a pause. Pausing an already paused session is a no-op for the caller.
func (s *Session) Pause() error {
	return s.direct("pause", s.engine.Pause, mo.Some(Paused))
}

// Next skips to the following playlist item.
func (s *Session) Next() error {
	return s.direct("next", s.engine.Next, mo.None[Status]())
}

// Previous goes back to the preceding playlist item.
func (s *Session) Previous() error {
	return s.direct("previous", s.engine.Previous, mo.None[Status]())
}

// Release frees the engine. Only the first call has effect; later calls return ErrUseAfterRelease.
// The session is released even when the engine reports an error.
func (s *Session) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done.Load() {
		return ErrUseAfterRelease
	}

	s.done.Store(true)
	s.status.Store(int32(Released))
	close(s.released)

	if err := s.engine.Release(); err != nil {
		return fmt.Errorf("release engine: %w", err)
	}

	log.Info("playback session released")
	return nil
}

// Released is closed once Release has been called.
func (s *Session) Released() <-chan struct{} {
	return s.released
}

// Done is closed when the engine terminates on its own.
func (s *Session) Done() <-chan struct{} {
	return s.engine.Done()
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	return Status(s.status.Load())
}

// Playlist returns the playlist the session was created with.
func (s *Session) Playlist() media.Playlist {
	return s.playlist
}

func (s *Session) IsPlaying() bool {
	return !s.done.Load() && s.engine.IsPlaying()
}

func (s *Session) IsLoading() bool {
	return !s.done.Load() && s.engine.IsLoading()
}

func (s *Session) IsPlayingAd() bool {
	return !s.done.Load() && s.engine.IsPlayingAd()
}

func (s *Session) CurrentPosition() time.Duration {
	if s.done.Load() {
		return 0
	}
	return s.engine.CurrentPosition()
}

// CurrentIndex returns the playlist index of the current item, or -1 when there is none.
func (s *Session) CurrentIndex() int {
	if s.done.Load() {
		return -1
	}
	return s.engine.CurrentIndex()
}

func (s *Session) CurrentFormat() mo.Option[media.Format] {
	if s.done.Load() {
		return mo.None[media.Format]()
	}
	return s.engine.CurrentFormat()
}

// AwaitPlaying blocks until the engine reports playback, ctx ends or the session is released.
func (s *Session) AwaitPlaying(ctx context.Context, poll time.Duration) error {
	if poll <= 0 {
		poll = 100 * time.Millisecond
	}

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		if s.done.Load() {
			return ErrUseAfterRelease
		}
		if s.engine.IsPlaying() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.released:
			return ErrUseAfterRelease
		case <-ticker.C:
		}
	}
}
