package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const noticeTTL = 4 * time.Second

// noticeExpiredMsg clears a transient notice unless a newer one replaced it.
type noticeExpiredMsg struct {
	seq int
}

func noticeExpiryCmd(seq int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// setNotice shows a transient status line under the submit button
func (m *Model) setNotice(text string, isError bool) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	m.noticeError = isError
	return noticeExpiryCmd(m.noticeSeq)
}

func (m Model) handleNoticeExpired(msg noticeExpiredMsg) (Model, tea.Cmd) {
	if msg.seq == m.noticeSeq {
		m.notice = ""
		m.noticeError = false
	}
	return m, nil
}
