// Package cmd implements the command-line interface for reel.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/reel-cli/reel/color"
	"github.com/reel-cli/reel/constant"
	"github.com/reel-cli/reel/icon"
	"github.com/reel-cli/reel/key"
	"github.com/reel-cli/reel/log"
	"github.com/reel-cli/reel/media"
	"github.com/reel-cli/reel/style"
	"github.com/reel-cli/reel/tui"
	"github.com/reel-cli/reel/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Remember the playback position when the player closes")
	lo.Must0(viper.BindPFlag(key.HistorySave, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().StringP("player", "P", "", "Path to the player binary")
	lo.Must0(viper.BindPFlag(key.PlayerBinary, rootCmd.PersistentFlags().Lookup("player")))

	rootCmd.PersistentFlags().Bool("autostart", true, "Start playback as soon as the player is ready")
	lo.Must0(viper.BindPFlag(key.PlayerAutoStart, rootCmd.PersistentFlags().Lookup("autostart")))

	rootCmd.Flags().BoolP("continue", "c", false, "Play the most recent history entry again")
}

// rootCmd plays the given sources in the interactive player screen.
var rootCmd = &cobra.Command{
	Use:   constant.Reel + " [sources...]",
	Short: "A terminal front-end for watching videos and playlists",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal front-end for watching videos and playlists"),
	Example: "  reel ~/Videos/talk.mkv\n  reel https://example.com/live.m3u8 intro.mp4\n  reel ~/playlists/morning.m3u",
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		var (
			playlist media.Playlist
			err      error
		)

		if lo.Must(cmd.Flags().GetBool("continue")) {
			playlist, err = lastPlayed()
		} else {
			playlist, err = buildPlaylist(args)
		}
		handleErr(err)

		CheckDependencies()

		ctx, stop := signalContext()
		defer stop()

		options := tui.Options{
			Provider:       newProvider(),
			Playlist:       playlist,
			Recorder:       newRecorder(),
			AutoStart:      viper.GetBool(key.PlayerAutoStart),
			PollInterval:   util.Millis(viper.GetInt(key.PlayerPollIntervalMs), 0),
			PauseOnBlur:    viper.GetBool(key.LifecyclePauseOnBlur),
			PauseOnSuspend: viper.GetBool(key.LifecyclePauseOnSuspend),
			ShowHelp:       viper.GetBool(key.TUIShowHelp),
		}
		handleErr(tui.Run(ctx, &options))
	},
}

// signalContext is cancelled on interrupt or termination.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", style.ErrorTitle(icon.Get(icon.Fail)+" Error"), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
