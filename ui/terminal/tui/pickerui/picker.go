package pickerui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/rapidmidiex/pianoweb/internal/melody"
)

const width = 72

// Styles
var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#343433", Dark: "#C1C6B2"}).
			Background(lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#353533"})

	statusStyle = lipgloss.NewStyle().
			Inherit(statusBarStyle).
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#FF5F87")).
			Padding(0, 1).
			MarginRight(1)

	statusText = lipgloss.NewStyle().Inherit(statusBarStyle)

	messageText = lipgloss.NewStyle().Align(lipgloss.Left)

	helpMenu = lipgloss.NewStyle().Align(lipgloss.Center).PaddingTop(2)

	docStyle = lipgloss.NewStyle().Padding(1, 2, 1, 2)
)

var client = &http.Client{Timeout: 10 * time.Second}

// Message types
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

type melodiesResp []melody.Descriptor

// Selected is sent once the player has chosen what to play. A nil Melody
// means free play.
type Selected struct {
	Melody *melody.Melody
	Train  bool
}

// Commands
func FetchMelodies(apiURL string) tea.Cmd {
	return func() tea.Msg {
		var ds melodiesResp
		if err := getJSON(apiURL+"/melodies", &ds); err != nil {
			return errMsg{errors.Wrap(err, "fetching melodies")}
		}
		return ds
	}
}

func freePlay() tea.Msg { return Selected{} }

// FetchMelody loads the notes of one melody and selects it.
func FetchMelody(apiURL, id string, train bool) tea.Cmd {
	return func() tea.Msg {
		var m melody.Melody
		if err := getJSON(apiURL+"/melodies/"+url.PathEscape(id), &m); err != nil {
			return errMsg{errors.Wrapf(err, "fetching melody %q", id)}
		}
		return Selected{Melody: &m, Train: train}
	}
}

func getJSON(u string, v any) error {
	res, err := client.Get(u)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return errors.Errorf("unexpected status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(v)
}

type Model struct {
	apiURL   string
	melodies []melody.Descriptor
	table    table.Model
	keys     keyMap
	help     help.Model
	train    bool
	loading  bool
	err      error
}

func New(apiURL string, train bool) Model {
	return Model{
		apiURL:  apiURL,
		keys:    keys,
		help:    help.New(),
		train:   train,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return FetchMelodies(m.apiURL)
}

// Training reports whether the next selection starts with key training.
func (m Model) Training() bool { return m.train }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if len(m.melodies) > 0 {
			m.table.SetWidth(msg.Width - 10)
		}
	case errMsg:
		m.err = msg
		m.loading = false
	case melodiesResp:
		m.melodies = msg
		m.table = makeMelodyTable(msg)
		m.table.Focus()
		m.loading = false
		m.err = nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Select):
			if len(m.melodies) == 0 {
				return m, nil
			}
			id := m.table.SelectedRow()[1]
			return m, FetchMelody(m.apiURL, id, m.train)
		case key.Matches(msg, m.keys.Free):
			return m, freePlay
		case key.Matches(msg, m.keys.Train):
			m.train = !m.train
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, FetchMelodies(m.apiURL)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	physicalWidth, _, _ := term.GetSize(int(os.Stdout.Fd()))
	doc := strings.Builder{}

	status := "melody mode"
	if m.train {
		status = "training mode"
	}
	if m.loading {
		status = "Fetching melodies..."
	}
	if m.err != nil {
		status = fmt.Sprintf("Error: %v!", m.err)
	}

	// Melody table
	{
		if len(m.melodies) > 0 {
			doc.WriteString(baseStyle.Width(width).Render(m.table.View()))
		} else if !m.loading {
			doc.WriteString(messageText.Render("No melodies on this server. Press f for free play.\n\n"))
		}
	}
	// Status bar
	{
		w := lipgloss.Width

		statusKey := statusStyle.Render("STATUS")
		statusVal := statusText.Copy().
			Width(width - w(statusKey)).
			Render(status)

		bar := lipgloss.JoinHorizontal(lipgloss.Top, statusKey, statusVal)
		doc.WriteString("\n" + statusBarStyle.Width(width).Render(bar))
	}
	// Help menu
	doc.WriteString("\n" + helpMenu.Render(m.help.View(m.keys)))

	style := docStyle
	if physicalWidth > 0 {
		style = style.MaxWidth(physicalWidth)
	}
	return style.Render(doc.String())
}

func makeMelodyTable(ds []melody.Descriptor) table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 30},
		{Title: "ID", Width: 20},
	}

	rows := make([]table.Row, 0, len(ds))
	for _, d := range ds {
		rows = append(rows, table.Row{d.Name, d.ID})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(7),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}
