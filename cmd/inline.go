package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/reel-cli/reel/filesystem"
	"github.com/reel-cli/reel/inline"
	"github.com/reel-cli/reel/key"
	"github.com/reel-cli/reel/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("items", "i", "", "Select which playlist items to play")
	inlineCmd.Flags().BoolP("json", "j", false, "Print status lines as JSON objects")
	inlineCmd.Flags().BoolP("exit", "e", false, "Exit once the last item finishes playing")
	inlineCmd.Flags().StringP("output", "o", "", "Write status lines to a file instead of stdout")
	inlineCmd.Flags().Int("poll", 0, "Status poll interval in milliseconds")
	lo.Must0(viper.BindPFlag(key.PlayerPollIntervalMs, inlineCmd.Flags().Lookup("poll")))
}

// inlineCmd plays sources without the interactive screen.
var inlineCmd = &cobra.Command{
	Use:   "inline [sources...]",
	Short: "Play sources without the interactive screen, printing status lines",
	Long: `Play sources headlessly and print one status line per poll.

Item selectors:
  first - first item in the playlist
  last - last item in the playlist
  all - every item in the playlist
  [number] - select an item by index (starting from 0)
  [from]-[to] - select items by range
  @[substring]@ - select items whose title contains substring`,
	Example: "  reel inline --json --exit talk.mkv\n  reel inline -i 2-4 ~/playlists/morning.m3u",
	Run: func(cmd *cobra.Command, args []string) {
		playlist, err := buildPlaylist(args)
		handleErr(err)

		items := mo.None[inline.ItemsFilter]()
		if flag := lo.Must(cmd.Flags().GetString("items")); flag != "" {
			fn, err := inline.ParseItemsFilter(flag)
			handleErr(err)
			items = mo.Some(fn)
		}

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			f, err := filesystem.API().Create(output)
			handleErr(err)
			defer f.Close()
			writer = f
		}

		CheckDependencies()

		ctx, stop := signalContext()
		defer stop()

		options := &inline.Options{
			Out:          writer,
			Provider:     newProvider(),
			Playlist:     playlist,
			Items:        items,
			Recorder:     newRecorder(),
			AutoStart:    viper.GetBool(key.PlayerAutoStart),
			Json:         lo.Must(cmd.Flags().GetBool("json")),
			ExitOnEnd:    lo.Must(cmd.Flags().GetBool("exit")),
			WatchSignals: viper.GetBool(key.LifecyclePauseOnSuspend),
			PollInterval: util.Millis(viper.GetInt(key.PlayerPollIntervalMs), 0),
		}

		handleErr(inline.Run(ctx, options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd prints the JSON schema of an inline status line.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of inline status lines",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(json.NewEncoder(os.Stdout).Encode(inline.Schema()))
	},
}
