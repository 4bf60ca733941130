package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/brensch/snekplan/game"
	"github.com/brensch/snekplan/play"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var statusStyle = lipgloss.NewStyle().Faint(true)

type TickMsg time.Time

func tickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type stepMsg struct {
	frame play.Frame
	err   error
}

// stepCmd plays one tick off the UI goroutine so a slow planning call does
// not block key handling.
func stepCmd(session *play.Session) tea.Cmd {
	return func() tea.Msg {
		out, err := session.Step()
		return stepMsg{
			frame: play.Frame{Snapshot: session.Snapshot(), Outcome: out, Final: session.Finished()},
			err:   err,
		}
	}
}

// model drives a session from bubbletea's update loop: every tick asks for
// one game step and the next tick is scheduled once that step lands.
type model struct {
	session *play.Session
	every   time.Duration
	frame   play.Frame
	err     error
}

func initialModel(session *play.Session, every time.Duration) model {
	return model{
		session: session,
		every:   every,
		frame:   play.Frame{Snapshot: session.Snapshot()},
	}
}

func (m model) Init() tea.Cmd {
	return tickCmd(m.every)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case TickMsg:
		if m.frame.Final {
			return m, nil
		}
		return m, stepCmd(m.session)
	case stepMsg:
		m.frame = msg.frame
		m.err = msg.err
		if m.frame.Final {
			return m, tea.Quit
		}
		return m, tickCmd(m.every)
	}
	return m, nil
}

func (m model) View() string {
	var sb strings.Builder
	sb.WriteString(play.StyledBoard(m.frame.Snapshot))
	sb.WriteByte('\n')

	status := fmt.Sprintf("session %s  length %d", m.session.ID, len(m.frame.Snapshot.Body))
	if m.frame.Final {
		outcome := m.session.Outcome()
		if outcome == game.Continue {
			status += "  stopped"
		} else {
			status += "  " + outcome.String()
		}
	}
	if m.err != nil {
		status += "  error: " + m.err.Error()
	}
	sb.WriteString(statusStyle.Render(status))
	sb.WriteString("\nPress q to quit.\n")
	return sb.String()
}
