package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/reel-cli/reel/color"
	"github.com/reel-cli/reel/constant"
	"github.com/reel-cli/reel/icon"
	"github.com/reel-cli/reel/screen"
	"github.com/reel-cli/reel/style"
	"github.com/reel-cli/reel/util"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *bubble) View() string {
	status := b.status
	truncate := style.Truncate(b.width)

	title := status.Title
	if title == "" {
		title = b.screen.Session().Playlist().Title(0)
	}

	lines := []string{
		style.Title(constant.Reel),
		"",
		truncate(fmt.Sprintf("%s %s", stateIcon(status), style.Fg(color.Purple)(title))),
		"",
		b.viewState(status),
		truncate(style.Faint("Position: ") + util.FormatPosition(status.PositionDuration())),
	}

	if status.Format != nil {
		lines = append(lines,
			truncate(style.Faint("Resolution: ")+fmt.Sprintf("%dx%d", status.Format.Width, status.Format.Height)),
			truncate(style.Faint("Format: ")+status.Format.ContainerMimeType),
		)
	}

	if status.Total > 1 {
		lines = append(lines,
			"",
			b.viewPlaylistProgress(status),
		)
	}

	if notice := b.notice.Notice(); notice != "" {
		lines = append(lines, "", truncate(style.Faint(notice)))
	}

	return b.renderLines(b.options.ShowHelp, lines)
}

func (b *bubble) viewState(status screen.Status) string {
	switch status.State {
	case screen.TextLoading:
		return b.spinnerC.View() + " " + status.State
	case screen.TextPlayingAds:
		return style.Fg(color.Yellow)(status.State)
	case screen.TextPlaying:
		return style.Fg(color.Green)(status.State)
	default:
		return style.Faint(status.State)
	}
}

func (b *bubble) viewPlaylistProgress(status screen.Status) string {
	current := util.Clamp(status.Index+1, 0, status.Total)
	percent := float64(current) / float64(status.Total)
	return fmt.Sprintf("%s %s", b.progressC.ViewAs(percent), style.Faint(fmt.Sprintf("%d/%d", current, status.Total)))
}

func stateIcon(status screen.Status) string {
	switch status.State {
	case screen.TextPlaying, screen.TextPlayingAds:
		return icon.Get(icon.Play)
	case screen.TextLoading:
		return icon.Get(icon.Loading)
	default:
		return icon.Get(icon.Pause)
	}
}

func (b *bubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h+1 {
			l += strings.Repeat("\n", b.height-h-1)
		} else {
			l += "\n"
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
