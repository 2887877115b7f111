// Package inline plays a playlist without the interactive interface, printing status lines.
package inline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/reel-cli/reel/lifecycle"
	"github.com/reel-cli/reel/log"
	"github.com/reel-cli/reel/media"
	"github.com/reel-cli/reel/screen"
	"github.com/reel-cli/reel/session"
)

const defaultPollInterval = 500 * time.Millisecond

// Run opens a screen and reports its status until ctx ends, the engine exits
// or, with ExitOnEnd, the last item stops playing.
func Run(ctx context.Context, options *Options) (err error) {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	poll := options.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}

	playlist, err := selectItems(options)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	notifier := lifecycle.NewNotifier()
	defer notifier.Close()

	if options.WatchSignals {
		lifecycle.WatchSignals(ctx, notifier)
	}

	scr, err := screen.Open(ctx, screen.Options{
		Provider:  options.Provider,
		Playlist:  playlist,
		AutoStart: options.AutoStart,
		Owner:     notifier,
		Recorder:  options.Recorder,
	})
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := scr.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	writer := newStatusWriter(options.Out, options.Json)
	defer writer.finish()

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	var end endDetector
	for {
		status := scr.Status()
		if err := writer.write(status); err != nil {
			return fmt.Errorf("write status: %w", err)
		}

		if options.ExitOnEnd && end.ended(status, scr.Session().Status()) {
			log.Info("playlist finished")
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-scr.Session().Done():
			log.Info("engine exited")
			return nil
		case <-ticker.C:
		}
	}
}

func selectItems(options *Options) (media.Playlist, error) {
	filter, ok := options.Items.Get()
	if !ok {
		return options.Playlist, nil
	}

	selected, err := filter(options.Playlist.Sources())
	if err != nil {
		return media.Playlist{}, err
	}
	if len(selected) == 0 {
		return media.Playlist{}, errors.New("no playlist items match the selection")
	}

	return media.NewPlaylist(selected...)
}

// endDetector recognizes the last item stopping after it was seen playing
// while the session still wants playback.
type endDetector struct {
	sawLast bool
}

func (d *endDetector) ended(status screen.Status, state session.Status) bool {
	onLast := status.Index == status.Total-1
	if status.Playing && onLast {
		d.sawLast = true
	}

	if !d.sawLast || state != session.Playing || status.Playing || status.Loading {
		return false
	}

	// the engine may drop back to no current item once the playlist is exhausted
	return onLast || status.Index < 0
}
