// Package icon renders UI symbols in the variant chosen by the user.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII or
// Unicode squares.
package icon

import (
	"github.com/reel-cli/reel/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	squares = "squares"
)

// AvailableVariants returns every registered icon style identifier.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, squares}
}

// Icon identifies one symbol.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Play
	Pause
	Loading
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	squares string
}

var icons = map[Icon]*iconDef{
	Fail:     {emoji: "💀", nerd: "", plain: "X", squares: "🟥"},
	Success:  {emoji: "🎉", nerd: "", plain: "✓", squares: "🟩"},
	Progress: {emoji: "⏳", nerd: "", plain: "~", squares: "🟨"},
	Play:     {emoji: "▶️", nerd: "", plain: ">", squares: "🟩"},
	Pause:    {emoji: "⏸️", nerd: "", plain: "||", squares: "🟧"},
	Loading:  {emoji: "🌀", nerd: "", plain: "...", squares: "🟦"},
}

func (d *iconDef) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for i in the configured variant.
func Get(i Icon) string {
	d, ok := icons[i]
	if !ok {
		return ""
	}
	return d.get()
}
