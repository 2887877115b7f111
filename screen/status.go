package screen

import (
	"time"

	"github.com/reel-cli/reel/media"
	"github.com/reel-cli/reel/session"
)

// Status text shown for the current playback state.
const (
	TextPlaying    = "Playing"
	TextLoading    = "Loading"
	TextPlayingAds = "Playing Ads"
	TextPaused     = "Paused"
	TextReleased   = "Released"
)

// Status is a presentation snapshot of a screen's session.
type Status struct {
	State     string        `json:"state" jsonschema:"enum=Playing,enum=Loading,enum=Playing Ads,enum=Paused,enum=Released,description=Human readable playback state."`
	Playing   bool          `json:"playing" jsonschema:"description=Engine is rendering frames."`
	Loading   bool          `json:"loading" jsonschema:"description=Playback was requested but is buffering or not started."`
	PlayingAd bool          `json:"playing_ad" jsonschema:"description=An inserted advertisement is playing."`
	Released  bool          `json:"released" jsonschema:"description=The session has been released."`
	Position  float64       `json:"position_seconds" jsonschema:"description=Position within the current item in seconds."`
	Index     int           `json:"index" jsonschema:"description=Zero-based index of the current item or -1."`
	Total     int           `json:"total" jsonschema:"description=Number of items in the playlist."`
	Source    string        `json:"source,omitempty" jsonschema:"description=URI of the current item."`
	Title     string        `json:"title,omitempty" jsonschema:"description=Short label of the current item."`
	Format    *media.Format `json:"format,omitempty" jsonschema:"description=Format of the video being rendered when known."`
}

// PositionDuration returns Position as a duration.
func (s Status) PositionDuration() time.Duration {
	return time.Duration(s.Position * float64(time.Second))
}

func snapshot(s *session.Session) Status {
	playlist := s.Playlist()
	status := Status{
		Playing:   s.IsPlaying(),
		Loading:   s.IsLoading(),
		PlayingAd: s.IsPlayingAd(),
		Released:  s.Status() == session.Released,
		Position:  s.CurrentPosition().Seconds(),
		Index:     s.CurrentIndex(),
		Total:     playlist.Len(),
	}

	if source, ok := playlist.At(status.Index); ok {
		status.Source = source.URI()
		status.Title = source.Title()
	}

	if format, ok := s.CurrentFormat().Get(); ok {
		status.Format = &format
	}

	status.State = stateText(status)
	return status
}

func stateText(s Status) string {
	switch {
	case s.Released:
		return TextReleased
	case s.PlayingAd:
		return TextPlayingAds
	case s.Loading:
		return TextLoading
	case s.Playing:
		return TextPlaying
	default:
		return TextPaused
	}
}
