// Package screen ties one playback session and its lifecycle bridge to a host scope.
package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/reel-cli/reel/history"
	"github.com/reel-cli/reel/lifecycle"
	"github.com/reel-cli/reel/log"
	"github.com/reel-cli/reel/media"
	"github.com/reel-cli/reel/player"
	"github.com/reel-cli/reel/session"
)

// ErrClosed is returned by Close after the first call.
var ErrClosed = errors.New("screen already closed")

// Recorder stores the last position of a closed screen.
type Recorder func(*history.Entry) error

// Options configure Open.
type Options struct {
	Provider  player.Provider
	Playlist  media.Playlist
	AutoStart bool
	// Owner publishes host lifecycle events. Without one no bridge is attached.
	Owner lifecycle.Owner
	// Recorder, when set, receives the position on Close.
	Recorder Recorder
}

// Screen is the owning scope of one session.
type Screen struct {
	session  *session.Session
	bridge   *lifecycle.Bridge
	recorder Recorder

	once sync.Once
}

// Open creates the session and attaches it to the owner.
func Open(ctx context.Context, options Options) (*Screen, error) {
	s, err := session.Create(ctx, options.Provider, options.Playlist, options.AutoStart)
	if err != nil {
		return nil, err
	}

	scr := &Screen{
		session:  s,
		recorder: options.Recorder,
	}

	if options.Owner != nil {
		scr.bridge = lifecycle.Attach(s, options.Owner)
	}

	return scr, nil
}

// Session returns the owned session.
func (s *Screen) Session() *session.Session {
	return s.session
}

// Status returns a presentation snapshot.
func (s *Screen) Status() Status {
	return snapshot(s.session)
}

// Close detaches the bridge, records history and releases the session, in that order.
// Only the first call has effect.
func (s *Screen) Close() error {
	err := ErrClosed

	s.once.Do(func() {
		if s.bridge != nil {
			s.bridge.Detach()
		}

		s.record()

		err = s.session.Release()
		if errors.Is(err, session.ErrUseAfterRelease) {
			err = nil
		}
		if err != nil {
			err = fmt.Errorf("close screen: %w", err)
		}
	})

	return err
}

func (s *Screen) record() {
	if s.recorder == nil {
		return
	}

	status := s.Status()
	source, ok := s.session.Playlist().At(status.Index)
	if !ok {
		return
	}

	entry := history.NewEntry(source, status.Index, status.Total, status.PositionDuration())
	if err := s.recorder(entry); err != nil {
		log.Warnf("saving history: %v", err)
	}
}
