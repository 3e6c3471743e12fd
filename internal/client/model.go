package client

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"lanchat/internal/emoji"
	"lanchat/internal/protocol"
)

// transport - the outbound half of the connection the model needs;
// narrowed for testability.
type transport interface {
	Send(protocol.Event) error
	CloseWrite() error
}

// Messages merged into the single event loop.
type (
	// netEventMsg - one decoded inbound chat event.
	netEventMsg protocol.Event
	// disconnectedMsg - the network source closed or failed.
	disconnectedMsg struct{ err error }
	// sendFailedMsg - an outbound write failed; treated as a disconnect.
	sendFailedMsg struct{ err error }
	// tickMsg - low-frequency idle redraw.
	tickMsg time.Time
)

const tickInterval = 500 * time.Millisecond

// Model - the terminal state machine. Exactly one goroutine (the
// bubbletea runtime) mutates it, one event at a time, so scrollback,
// roster and the input line never tear.
type Model struct {
	transport transport
	events    <-chan tea.Msg
	pseudonym string

	input    textinput.Model
	viewport viewport.Model
	scroll   *Scrollback
	roster   *Roster

	width, height int
	ready         bool
	disconnected  bool
}

// NewModel - builds the event loop state for an established connection.
func NewModel(conn *Conn, pseudonym string, scrollbackCap int) (Model, error) {
	m, err := newModel(conn, listen(conn), pseudonym, scrollbackCap)
	if err != nil {
		return Model{}, err
	}
	m.appendLine(noticeLine("your address is " + conn.LocalAddr().String()))
	m.appendLine(noticeLine("connected to " + conn.RemoteAddr().String()))
	return m, nil
}

func newModel(t transport, events <-chan tea.Msg, pseudonym string, scrollbackCap int) (Model, error) {
	scroll, err := NewScrollback(scrollbackCap)
	if err != nil {
		return Model{}, err
	}
	input := textinput.New()
	input.Placeholder = "Enter message here"
	input.Prompt = "> "
	input.Focus()

	m := Model{
		transport: t,
		events:    events,
		pseudonym: pseudonym,
		input:     input,
		scroll:    scroll,
		roster:    &Roster{},
	}
	// the peer knows it joined: the roster is seeded locally, the relay
	// only announces it to the others
	m.roster.Add(pseudonym)
	return m, nil
}

// listen - pumps inbound events into the loop; the returned channel
// closes after the disconnect notification.
func listen(conn *Conn) <-chan tea.Msg {
	ch := make(chan tea.Msg, 32)
	go func() {
		defer close(ch)
		for {
			ev, err := conn.Recv()
			if err != nil {
				ch <- disconnectedMsg{err}
				return
			}
			ch <- netEventMsg(ev)
		}
	}()
	return ch
}

// waitForEvent - re-arming command servicing the network source.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.events), tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var tiCmd, vpCmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m.quit()
		case tea.KeyEnter:
			return m.submit()
		}
		m.input, tiCmd = m.input.Update(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		chatWidth := m.width - rosterWidth - 1
		chatHeight := m.height - inputHeight - headerHeight
		if !m.ready {
			m.viewport = viewport.New(chatWidth, chatHeight)
			m.viewport.SetContent(strings.Join(m.scroll.Lines(), "\n"))
			m.viewport.GotoBottom()
			m.ready = true
		} else {
			m.viewport.Width = chatWidth
			m.viewport.Height = chatHeight
		}
		m.input.Width = m.width - len(m.input.Prompt) - 2

	case netEventMsg:
		m.apply(protocol.Event(msg))
		return m, waitForEvent(m.events)

	case disconnectedMsg:
		m.disconnect()
		return m, nil

	case sendFailedMsg:
		m.disconnect()
		return m, nil

	case tickMsg:
		// nothing to mutate: the pass through Update already redraws
		return m, tick()
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

// quit closes the outbound half first so the relay observes EOF and
// broadcasts the departure, then stops the loop.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if !m.disconnected {
		m.transport.CloseWrite()
	}
	return m, tea.Quit
}

// submit handles Enter: local commands run immediately, everything else
// becomes a text event sent fire-and-forget with a local self-echo (the
// relay never echoes a message back to its sender).
func (m Model) submit() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		return m, nil
	}

	if cmd, ok := strings.CutPrefix(raw, "/"); ok {
		return m.runCommand(cmd)
	}
	if m.disconnected {
		m.appendLine(errorLine("disconnected: the message was not sent"))
		return m, nil
	}

	body := protocol.NormalizeBody(emoji.Replace(raw))
	m.input.Reset()
	if body == "" {
		return m, nil
	}

	ev := protocol.Text(m.pseudonym, body, time.Now().UTC())
	m.appendLine(textLine(ev))

	send := func() tea.Msg {
		if err := m.transport.Send(ev); err != nil {
			return sendFailedMsg{err}
		}
		return nil
	}
	return m, send
}

func (m Model) runCommand(cmd string) (tea.Model, tea.Cmd) {
	m.input.Reset()
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		m.appendLine(errorLine("unknown command, try /help"))
		return m, nil
	}
	switch fields[0] {
	case "quit":
		return m.quit()
	case "help":
		for _, line := range helpLines() {
			m.appendLine(line)
		}
	case "who":
		m.appendLine(noticeLine("online: " + strings.Join(m.roster.Names(), ", ")))
	default:
		m.appendLine(errorLine("unknown command, try /help"))
	}
	return m, nil
}

// apply folds one inbound event into the terminal state.
func (m *Model) apply(ev protocol.Event) {
	switch ev.Kind {
	case protocol.KindJoin:
		if m.roster.Add(ev.Pseudonym) {
			m.appendLine(joinLine(ev.Pseudonym))
		}
	case protocol.KindLeave:
		if m.roster.Remove(ev.Pseudonym) {
			m.appendLine(leaveLine(ev.Pseudonym))
		}
	case protocol.KindText:
		ev.Body = emoji.Replace(ev.Body)
		m.appendLine(textLine(ev))
	case protocol.KindNotice:
		m.appendLine(noticeLine(ev.Body))
	case protocol.KindReject:
		m.appendLine(errorLine("registration refused: " + ev.Body))
		m.disconnect()
	}
}

func (m *Model) disconnect() {
	if m.disconnected {
		return
	}
	m.disconnected = true
	m.input.Placeholder = "disconnected, /quit to exit"
	m.appendLine(errorLine("disconnected from server; scrollback stays readable, /quit to exit"))
}

func (m *Model) appendLine(line string) {
	m.scroll.Push(line)
	if m.ready {
		m.viewport.SetContent(strings.Join(m.scroll.Lines(), "\n"))
		m.viewport.GotoBottom()
	}
}

// Run - drives the event loop until the user quits.
func Run(conn *Conn, pseudonym string, scrollbackCap int) error {
	m, err := NewModel(conn, pseudonym, scrollbackCap)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
