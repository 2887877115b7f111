package version

import (
	"fmt"

	"github.com/reel-cli/reel/color"
	"github.com/reel-cli/reel/icon"
	"github.com/reel-cli/reel/log"
	"github.com/reel-cli/reel/style"
)

// Notify prints a warning when the engine is older than MinimumEngine.
// Failing to determine the version is only logged.
func Notify(binary string) {
	v, err := Engine(binary)
	if err != nil {
		log.Warnf("engine version: %v", err)
		return
	}

	comp, err := Compare(v, MinimumEngine)
	if err != nil || comp >= 0 {
		return
	}

	fmt.Printf(`
%s %s %s is older than %s
%s

`,
		style.Fg(color.Yellow)("▇▇▇"),
		icon.Get(icon.Fail),
		style.Bold(binary+" "+v),
		style.Bold(MinimumEngine),
		style.Faint("Playback state may not be reported correctly. Please upgrade the player."),
	)
}
