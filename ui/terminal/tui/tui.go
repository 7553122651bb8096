package tui

import (
	"net/url"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/rapidmidiex/pianoweb/internal/note"
	"github.com/rapidmidiex/pianoweb/ui/terminal/tui/pianoui"
	"github.com/rapidmidiex/pianoweb/ui/terminal/tui/pickerui"
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94")).Padding(1, 2, 0, 2)

type Options struct {
	// Melody skips the picker and plays the melody with this id.
	Melody  string
	Train   bool
	Presses int
}

type appView int

const (
	pickerView appView = iota
	pianoView
)

// Message types
type connected struct {
	conn *socket
	sel  pickerui.Selected
}

type failed struct{ err error }

// session outlives the copies of mainModel that bubbletea hands around.
type session struct {
	mu   sync.Mutex
	conn *socket
}

func (s *session) set(c *socket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn = c
}

func (s *session) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

type mainModel struct {
	curView     appView
	picker      tea.Model
	piano       tea.Model
	APIEndpoint string
	WSEndpoint  string
	opts        Options
	s           *session
	err         error
}

func NewModel(serverURL string, opts Options) (mainModel, error) {
	u, err := url.Parse(strings.TrimSuffix(serverURL, "/"))
	if err != nil {
		return mainModel{}, errors.Wrap(err, "parsing server address")
	}
	if u.Scheme == "" || u.Host == "" {
		return mainModel{}, errors.Errorf("server address %q needs a scheme and a host", serverURL)
	}

	ws := *u
	switch u.Scheme {
	case "https":
		ws.Scheme = "wss"
	default:
		ws.Scheme = "ws"
	}

	api := u.String() + "/api/v1"
	return mainModel{
		curView:     pickerView,
		picker:      pickerui.New(api, opts.Train),
		APIEndpoint: api,
		WSEndpoint:  ws.String() + "/ws",
		opts:        opts,
		s:           &session{},
	}, nil
}

func (m mainModel) Init() tea.Cmd {
	if m.opts.Melody != "" {
		return pickerui.FetchMelody(m.APIEndpoint, m.opts.Melody, m.opts.Train)
	}
	return m.picker.Init()
}

func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

	case pickerui.Selected:
		return m, connect(m.WSEndpoint, msg)

	case failed:
		m.err = msg.err
		return m, nil

	case connected:
		m.s.set(msg.conn)
		m.piano = pianoui.New(msg.conn, m.pianoOptions(msg.sel)...)
		m.curView = pianoView
		m.err = nil
		return m, m.piano.Init()
	}

	var cmd tea.Cmd
	switch m.curView {
	case pickerView:
		m.picker, cmd = m.picker.Update(msg)
	case pianoView:
		m.piano, cmd = m.piano.Update(msg)
	}
	return m, cmd
}

func (m mainModel) pianoOptions(sel pickerui.Selected) []pianoui.Option {
	switch {
	case sel.Melody == nil:
		return nil
	case sel.Train:
		return []pianoui.Option{pianoui.WithTraining(*sel.Melody, m.opts.Presses)}
	default:
		return []pianoui.Option{pianoui.WithMelody(*sel.Melody)}
	}
}

func (m mainModel) View() string {
	var v string
	switch m.curView {
	case pianoView:
		v = m.piano.View()
	default:
		v = m.picker.View()
	}

	if m.err != nil {
		v = errorStyle.Render("Error: "+m.err.Error()) + "\n" + v
	}
	return v
}

// Commands
func connect(endpoint string, sel pickerui.Selected) tea.Cmd {
	return func() tea.Msg {
		c, err := dial(endpoint)
		if err != nil {
			return failed{err}
		}
		return connected{conn: c, sel: sel}
	}
}

// Run opens the terminal piano against the server at serverURL and blocks
// until the player quits.
func Run(serverURL string, opts Options) error {
	m, err := NewModel(serverURL, opts)
	if err != nil {
		return err
	}
	defer m.s.close()

	return tea.NewProgram(m, tea.WithAltScreen()).Start()
}

// socket is a note event connection to the relay at /ws.
type socket struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func dial(endpoint string) (*socket, error) {
	ws, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to %s", endpoint)
	}
	return &socket{ws: ws}, nil
}

func (s *socket) Send(e note.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ws.WriteMessage(websocket.TextMessage, []byte(e.String()))
}

// Receive blocks until the next well formed event arrives.
func (s *socket) Receive() (note.Event, error) {
	for {
		typ, p, err := s.ws.ReadMessage()
		if err != nil {
			return note.Event{}, err
		}
		if typ != websocket.TextMessage {
			continue
		}
		if e, err := note.ParseEvent(string(p)); err == nil {
			return e, nil
		}
	}
}

func (s *socket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = s.ws.WriteMessage(websocket.CloseMessage, msg)
	return s.ws.Close()
}
