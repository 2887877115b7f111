package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/reel-cli/reel/color"
	"github.com/reel-cli/reel/history"
	"github.com/reel-cli/reel/icon"
	"github.com/reel-cli/reel/style"
	"github.com/reel-cli/reel/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	historyCmd.Flags().StringP("remove", "r", "", "Forget the entry for a source")
	historyCmd.Flags().StringP("find", "f", "", "Only show entries whose title or source matches")
	historyCmd.SetOut(os.Stdout)
}

// historyCmd lists remembered playback positions.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List remembered playback positions",
	Run: func(cmd *cobra.Command, args []string) {
		if uri := lo.Must(cmd.Flags().GetString("remove")); uri != "" {
			handleErr(history.Remove(uri))
			fmt.Printf("%s removed %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Fg(color.Purple)(uri))
			return
		}

		var (
			entries []*history.Entry
			err     error
		)
		if query := lo.Must(cmd.Flags().GetString("find")); query != "" {
			entries, err = history.Find(query)
		} else {
			entries, err = history.List()
		}
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(entries))
			return
		}

		if len(entries) == 0 {
			cmd.Println(style.Faint("No history yet"))
			return
		}

		cmd.Println(style.Faint(util.Quantify(len(entries), "entry", "entries")))
		for _, e := range entries {
			cmd.Printf("%s\n  %s\n", style.Fg(color.Purple)(e.String()), style.Faint(e.Source))
		}
	},
}
