package term

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/they4kman/stonesweep/game"
)

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Reveal key.Binding
	Flag   key.Binding
	Step   key.Binding
	New    key.Binding
	Quit   key.Binding
}

var DefaultKeyMap = KeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Reveal: key.NewBinding(key.WithKeys("enter", " ", "x"), key.WithHelp("space", "reveal")),
	Flag:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flag")),
	Step:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "step")),
	New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new game")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model plays a Session interactively: a cursor is moved over the board with
// the arrow keys and the cell under it is revealed or flagged.
type Model struct {
	session *Session
	keys    KeyMap
	cursor  game.Position
	err     error
	width   int
	height  int
}

func NewModel(session *Session) Model {
	return Model{
		session: session,
		keys:    DefaultKeyMap,
	}
}

func (m Model) Cursor() game.Position {
	return m.cursor
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		m.err = nil
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1, 0)
		case key.Matches(msg, m.keys.Left):
			m.moveCursor(0, -1)
		case key.Matches(msg, m.keys.Right):
			m.moveCursor(0, 1)
		case key.Matches(msg, m.keys.Reveal):
			m.err = m.session.Reveal(m.cursor.Row, m.cursor.Col)
		case key.Matches(msg, m.keys.Flag):
			m.err = m.session.ToggleFlag(m.cursor.Row, m.cursor.Col)
		case key.Matches(msg, m.keys.Step):
			m.err = m.session.Step()
		case key.Matches(msg, m.keys.New):
			m.err = m.session.NewGame()
			m.moveCursor(0, 0)
		}
	}
	return m, nil
}

// moveCursor shifts the cursor, wrapping around the board edges
func (m *Model) moveCursor(dRow, dCol int) {
	board := m.session.Game().Board()
	m.cursor.Row = (m.cursor.Row + dRow + board.Rows()) % board.Rows()
	m.cursor.Col = (m.cursor.Col + dCol + board.Cols()) % board.Cols()
}

func (m Model) View() string {
	status := helpStyle.Render(m.helpLine())
	if m.err != nil {
		status = errorStyle.Render("error: " + m.err.Error())
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		frameStyle.Render(strings.TrimSuffix(renderBoard(m.session.Game(), m.session.highlight, &m.cursor), "\n")),
		status,
	)
	if m.width > 0 && m.height > 0 {
		view = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

func (m Model) helpLine() string {
	if m.session.Game().State().Finished() {
		return "n new game • q quit"
	}

	bindings := []key.Binding{m.keys.Reveal, m.keys.Flag, m.keys.Step, m.keys.New, m.keys.Quit}
	line := "arrows/hjkl move"
	for _, binding := range bindings {
		help := binding.Help()
		line += " • " + help.Key + " " + help.Desc
	}
	return line
}
