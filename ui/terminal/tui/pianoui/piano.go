package pianoui

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/rapidmidiex/pianoweb/internal/game"
	"github.com/rapidmidiex/pianoweb/internal/melody"
	"github.com/rapidmidiex/pianoweb/internal/note"
)

const width = 72

// Hold is how long a key stays down after it is struck, a terminal only
// reports presses.
const Hold = 150 * time.Millisecond

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warning   = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}

	docStyle = lipgloss.NewStyle().Padding(1, 2, 1, 2)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(highlight).MarginBottom(1)

	keyBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      "-",
		Left:        "│",
		Right:       "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "╰",
		BottomRight: "╯",
	}

	keyStyle = lipgloss.NewStyle().
			Align(lipgloss.Center).
			Border(keyBorder, true).
			BorderForeground(subtle).
			Padding(0, 1)

	targetKey = keyStyle.Copy().BorderForeground(special)
	remoteKey = keyStyle.Copy().BorderForeground(highlight).Foreground(highlight)
	heldKey   = keyStyle.Copy().BorderForeground(highlight).Background(highlight)

	statusStyle = lipgloss.NewStyle().Foreground(special).MarginTop(1)
	errorStyle  = lipgloss.NewStyle().Foreground(warning).MarginTop(1)
	helpMenu    = lipgloss.NewStyle().PaddingTop(1)
)

// Conn carries note events to and from the piano server.
type Conn interface {
	Send(note.Event) error
	Receive() (note.Event, error)
}

// Message types
type Received struct{ Event note.Event }

type released struct{ note note.Note }

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

type Model struct {
	conn Conn
	keys keyMap
	help help.Model

	held   map[note.Note]struct{} // struck on this terminal
	remote map[note.Note]struct{} // down on another client

	game    *game.Game
	trainer *game.Trainer

	status string
	err    error
}

type Option func(*Model)

// WithMelody starts a follow-the-melody round.
func WithMelody(m melody.Melody) Option {
	return func(p *Model) { p.game = game.New(m) }
}

// WithTraining runs key training before the melody.
func WithTraining(m melody.Melody, presses int) Option {
	return func(p *Model) { p.trainer = game.NewTrainer(m, presses) }
}

func New(c Conn, opts ...Option) Model {
	m := Model{
		conn:   c,
		keys:   keys,
		help:   help.New(),
		held:   make(map[note.Note]struct{}),
		remote: make(map[note.Note]struct{}),
	}

	for _, opt := range opts {
		opt(&m)
	}

	if m.game != nil {
		if _, err := m.game.Start(); err != nil {
			m.err = err
		}
	}
	m.status = m.prompt()
	return m
}

func (m Model) Init() tea.Cmd {
	return listen(m.conn)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		if n, ok := note.FromKey(msg.String()); ok {
			return m.press(n)
		}

	case released:
		delete(m.held, msg.note)
		if err := m.conn.Send(note.NoteOff(msg.note)); err != nil {
			m.err = err
		}

	case Received:
		switch msg.Event.State {
		case note.On:
			m.remote[msg.Event.Note] = struct{}{}
		case note.Off:
			delete(m.remote, msg.Event.Note)
		}
		return m, listen(m.conn)

	case errMsg:
		m.err = msg.err
	}

	return m, nil
}

// press strikes n. Repeats of a key that is still held, as sent by terminal
// auto-repeat, are ignored until it is released.
func (m Model) press(n note.Note) (tea.Model, tea.Cmd) {
	if _, down := m.held[n]; down {
		return m, nil
	}

	correct := m.judge(n)
	m.status = m.prompt()
	if !correct {
		m.status = "try again, " + m.status
	}

	m.held[n] = struct{}{}
	if err := m.conn.Send(note.NoteOn(n)); err != nil {
		m.err = err
	}
	return m, release(n)
}

// judge feeds n to the running practice mode.
func (m *Model) judge(n note.Note) bool {
	var (
		ok  bool
		err error
	)

	switch {
	case m.trainer != nil:
		ok, err = m.trainer.Press(n)
	case m.game != nil:
		var res game.Result
		res, err = m.game.Press(n)
		ok = res.Correct
	default:
		return true
	}

	if errors.Is(err, game.ErrNotPlaying) {
		return true
	}
	if err != nil {
		m.err = err
	}
	return ok
}

func (m Model) prompt() string {
	switch {
	case m.trainer != nil:
		t := m.trainer
		switch t.Phase() {
		case game.Basic:
			c, total := t.Progress()
			return fmt.Sprintf("press %s (%d/%d)", t.Target().Label(), c, total)
		case game.Song:
			return "play " + t.Target().Label()
		}
		return "training complete"

	case m.game != nil:
		if m.game.Playing() {
			return "play " + m.game.Next().Label()
		}
		return fmt.Sprintf("%s complete: %d correct, %d mistakes",
			m.game.Melody().Name, m.game.Score(), m.game.Mistakes())
	}

	return "free play"
}

// Target is the key the player is asked to press, a rest in free play.
func (m Model) Target() note.Note {
	switch {
	case m.trainer != nil:
		return m.trainer.Target()
	case m.game != nil:
		return m.game.Next()
	}
	return note.Rest
}

func (m Model) Status() string { return m.status }
func (m Model) Err() error     { return m.err }

func (m Model) title() string {
	switch {
	case m.trainer != nil:
		return "Training: " + m.trainer.Melody().Name
	case m.game != nil:
		return "Follow the melody: " + m.game.Melody().Name
	}
	return "Piano"
}

func (m Model) View() string {
	physicalWidth, _, _ := term.GetSize(int(os.Stdout.Fd()))
	doc := strings.Builder{}

	doc.WriteString(titleStyle.Render(m.title()) + "\n")

	// Keyboard
	{
		target := m.Target()
		ks := make([]string, 0, len(note.All))
		for _, n := range note.All {
			style := keyStyle
			if _, ok := m.remote[n]; ok {
				style = remoteKey
			}
			if n == target {
				style = targetKey
			}
			if _, ok := m.held[n]; ok {
				style = heldKey
			}
			ks = append(ks, style.Render(n.Label()+"\n\n("+n.Key()+")"))
		}
		doc.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, ks...) + "\n")
	}

	doc.WriteString(statusStyle.Render(m.status))
	if m.err != nil {
		doc.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	doc.WriteString("\n" + helpMenu.Render(m.help.View(m.keys)))

	style := docStyle.Width(width)
	if physicalWidth > 0 {
		style = style.MaxWidth(physicalWidth)
	}
	return style.Render(doc.String())
}

// Commands
func listen(c Conn) tea.Cmd {
	return func() tea.Msg {
		e, err := c.Receive()
		if err != nil {
			return errMsg{err}
		}
		return Received{e}
	}
}

func release(n note.Note) tea.Cmd {
	return tea.Tick(Hold, func(time.Time) tea.Msg {
		return released{n}
	})
}
