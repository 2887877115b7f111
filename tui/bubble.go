package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/reel-cli/reel/internal/ui"
	"github.com/reel-cli/reel/lifecycle"
	"github.com/reel-cli/reel/log"
	"github.com/reel-cli/reel/screen"
	"github.com/reel-cli/reel/util"
)

const defaultPollInterval = 500 * time.Millisecond

type (
	pollMsg         time.Time
	engineExitedMsg struct{}
)

// bubble is the player screen model. It only reads the session through
// Screen.Status and issues directives on key presses.
type bubble struct {
	screen   *screen.Screen
	notifier *lifecycle.Notifier
	options  *Options
	keymap   *keymap

	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model
	notice    ui.Model

	status       screen.Status
	poll         time.Duration
	engineExited bool

	width, height int
}

func newBubble(scr *screen.Screen, notifier *lifecycle.Notifier, options *Options) *bubble {
	b := &bubble{
		screen:   scr,
		notifier: notifier,
		options:  options,
		keymap:   newKeymap(),
		poll:     util.Millis(int(options.PollInterval/time.Millisecond), defaultPollInterval),
	}

	b.spinnerC = spinner.New()
	b.spinnerC.Spinner = spinner.Dot
	b.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	b.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	b.helpC = help.New()

	b.status = scr.Status()
	return b
}

func (b *bubble) Init() tea.Cmd {
	return tea.Batch(b.tick(), b.waitForExit(), b.spinnerC.Tick)
}

func (b *bubble) tick() tea.Cmd {
	return tea.Tick(b.poll, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

func (b *bubble) waitForExit() tea.Cmd {
	done := b.screen.Session().Done()
	return func() tea.Msg {
		<-done
		return engineExitedMsg{}
	}
}

func (b *bubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	b.width = width - x
	b.height = height - y
	b.progressC.Width = util.Clamp(b.width, 10, 80)
	b.helpC.Width = b.width
}

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil

	case tea.KeyMsg:
		return b.handleKey(msg)

	case pollMsg:
		b.status = b.screen.Status()
		return b, b.tick()

	case engineExitedMsg:
		log.Info("player window closed")
		b.engineExited = true
		return b, tea.Quit

	case ui.NoticeMsg, ui.ClearNoticeMsg:
		return b, b.notice.Update(msg)

	case tea.BlurMsg:
		if b.options.PauseOnBlur {
			b.notifier.Publish(lifecycle.Backgrounded)
			return b, ui.Notify("paused while unfocused")
		}
		return b, nil

	case tea.FocusMsg:
		if b.options.PauseOnBlur {
			b.notifier.Publish(lifecycle.Foregrounded)
		}
		return b, nil

	case tea.ResumeMsg:
		if b.options.PauseOnSuspend {
			b.notifier.Publish(lifecycle.Foregrounded)
		}
		return b, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	}

	return b, nil
}

func (b *bubble) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := b.screen.Session()

	var err error
	switch {
	case key.Matches(msg, b.keymap.quit, b.keymap.forceQuit):
		return b, tea.Quit
	case key.Matches(msg, b.keymap.playPause):
		if b.status.Playing || b.status.Loading {
			err = s.Pause()
		} else {
			err = s.Play()
		}
	case key.Matches(msg, b.keymap.next):
		err = s.Next()
	case key.Matches(msg, b.keymap.previous):
		err = s.Previous()
	case key.Matches(msg, b.keymap.suspend):
		if b.options.PauseOnSuspend {
			b.notifier.Publish(lifecycle.Backgrounded)
		}
		return b, tea.Suspend
	case key.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
		return b, nil
	default:
		return b, nil
	}

	b.status = b.screen.Status()

	if err != nil {
		log.Warnf("player directive: %v", err)
		return b, ui.Notify(err.Error())
	}
	return b, nil
}
