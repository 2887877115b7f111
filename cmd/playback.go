package cmd

import (
	"errors"
	"fmt"

	"github.com/reel-cli/reel/filesystem"
	"github.com/reel-cli/reel/history"
	"github.com/reel-cli/reel/key"
	"github.com/reel-cli/reel/log"
	"github.com/reel-cli/reel/media"
	"github.com/reel-cli/reel/player"
	"github.com/reel-cli/reel/screen"
	"github.com/reel-cli/reel/util"
	"github.com/reel-cli/reel/where"
	"github.com/spf13/viper"
)

// newProvider builds the engine provider from configuration.
func newProvider() player.Provider {
	return player.MPVProvider{
		Binary:       viper.GetString(key.PlayerBinary),
		SocketDir:    where.Sockets(),
		ExtraArgs:    viper.GetStringSlice(key.PlayerExtraArgs),
		Window:       viper.GetBool(key.PlayerWindow),
		StartTimeout: util.Millis(viper.GetInt(key.PlayerStartTimeoutMs), 0),
	}
}

// newRecorder returns the history recorder, or nil when history is disabled.
func newRecorder() screen.Recorder {
	if !viper.GetBool(key.HistorySave) {
		return nil
	}
	return history.Save
}

// buildPlaylist turns CLI arguments into a playlist. M3U files are expanded in place.
// Without arguments the configured default source is played.
func buildPlaylist(args []string) (media.Playlist, error) {
	if len(args) == 0 {
		fallback := viper.GetString(key.PlayerDefaultSource)
		if fallback == "" {
			return media.Playlist{}, errors.New("nothing to play: pass a source or set " + key.PlayerDefaultSource)
		}
		args = []string{fallback}
	}

	var sources []media.Source
	for _, arg := range args {
		if media.IsM3U(arg) {
			playlist, err := media.LoadM3U(filesystem.API(), arg)
			if err != nil {
				return media.Playlist{}, fmt.Errorf("playlist %s: %w", arg, err)
			}
			sources = append(sources, playlist.Sources()...)
			continue
		}

		source, err := media.ParseSource(arg)
		if err != nil {
			return media.Playlist{}, err
		}
		sources = append(sources, source)
	}

	return media.NewPlaylist(sources...)
}

// lastPlayed returns the source of the most recent history entry.
func lastPlayed() (media.Playlist, error) {
	entries, err := history.List()
	if err != nil {
		return media.Playlist{}, err
	}
	if len(entries) == 0 {
		return media.Playlist{}, errors.New("history is empty")
	}
	log.Infof("continuing %s", entries[0])
	return media.ParsePlaylist(entries[0].Source)
}
