package client

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lanchat/internal/protocol"
)

const (
	rosterWidth  = 18
	inputHeight  = 1
	headerHeight = 1
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	joinStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // cyan
	leaveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	authorStyle = lipgloss.NewStyle().Bold(true)
	stampStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	rosterStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			PaddingLeft(1)
)

func textLine(ev protocol.Event) string {
	return fmt.Sprintf("%s %s %s",
		stampStyle.Render("["+ev.Timestamp.Local().Format("15:04:05")+"]"),
		authorStyle.Render(ev.Pseudonym+":"),
		ev.Body,
	)
}

func joinLine(pseudonym string) string {
	return joinStyle.Render(fmt.Sprintf("* %s has joined", pseudonym))
}

func leaveLine(pseudonym string) string {
	return leaveStyle.Render(fmt.Sprintf("* %s has left", pseudonym))
}

func noticeLine(body string) string {
	return noticeStyle.Render(body)
}

func errorLine(body string) string {
	return errorStyle.Render(body)
}

func helpLines() []string {
	return []string{
		noticeLine("/help - this message"),
		noticeLine("/who  - list who is online"),
		noticeLine("/quit - leave the chat"),
		noticeLine("use the :name: form for emojis, e.g. :smile:"),
	}
}

func (m Model) View() string {
	if !m.ready {
		return "connecting..."
	}

	status := " as " + m.pseudonym
	if m.disconnected {
		status += errorStyle.Render(" (disconnected)")
	}
	header := titleStyle.Render("lanchat") + status

	roster := rosterStyle.
		Width(rosterWidth).
		Height(m.viewport.Height).
		Render("online (" + fmt.Sprint(m.roster.Len()) + ")\n" +
			strings.Join(m.roster.Names(), "\n"))

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), roster)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.input.View())
}
