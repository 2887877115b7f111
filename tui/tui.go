// Package tui provides the interactive player screen.
package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/reel-cli/reel/lifecycle"
	"github.com/reel-cli/reel/media"
	"github.com/reel-cli/reel/player"
	"github.com/reel-cli/reel/screen"
	"github.com/reel-cli/reel/util"
)

// Options encapsulates the runtime configuration for the player screen.
type Options struct {
	Provider     player.Provider
	Playlist     media.Playlist
	Recorder     screen.Recorder
	AutoStart    bool
	PollInterval time.Duration

	PauseOnBlur    bool
	PauseOnSuspend bool
	ShowHelp       bool
}

// Run opens a screen, runs the Bubble Tea program over it and closes the screen once the program exits.
func Run(ctx context.Context, options *Options) (err error) {
	notifier := lifecycle.NewNotifier()
	defer notifier.Close()

	erase := util.PrintErasable("Starting player...")
	scr, err := screen.Open(ctx, screen.Options{
		Provider:  options.Provider,
		Playlist:  options.Playlist,
		AutoStart: options.AutoStart,
		Owner:     notifier,
		Recorder:  options.Recorder,
	})
	erase()
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := scr.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	bubble := newBubble(scr, notifier, options)

	programOptions := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if options.PauseOnBlur {
		programOptions = append(programOptions, tea.WithReportFocus())
	}

	_, err = tea.NewProgram(bubble, programOptions...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	return err
}
