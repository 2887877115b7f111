// Package ui holds the transient notice line shown under the player screen.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// noticeLifetime is how long a notice stays visible.
const noticeLifetime = 3 * time.Second

// NoticeMsg sets the notice text.
type NoticeMsg string

// ClearNoticeMsg resets the notice once it has expired.
type ClearNoticeMsg struct {
	at time.Time
}

// Notify returns a tea.Cmd that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NoticeMsg(text)
	}
}

// Model is the notice state.
type Model struct {
	notice     string
	notifiedAt time.Time
}

func clearAfter(at time.Time) tea.Cmd {
	return tea.Tick(noticeLifetime, func(time.Time) tea.Msg {
		return ClearNoticeMsg{at: at}
	})
}

// Update handles notice messages. Other messages are ignored.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NoticeMsg:
		m.notice = string(msg)
		m.notifiedAt = time.Now()
		return clearAfter(m.notifiedAt)
	case ClearNoticeMsg:
		// a newer notice restarted the timer
		if msg.at.Equal(m.notifiedAt) {
			m.notice = ""
		}
	}
	return nil
}

// Notice returns the visible notice, if any.
func (m *Model) Notice() string {
	return m.notice
}
