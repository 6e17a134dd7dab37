package term

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/they4kman/stonesweep/game"
)

// Classic Minesweeper number colors, as ANSI palette indices
var numberColors = map[game.CellState]lipgloss.Color{
	game.Number1: lipgloss.Color("12"),
	game.Number2: lipgloss.Color("2"),
	game.Number3: lipgloss.Color("9"),
	game.Number4: lipgloss.Color("4"),
	game.Number5: lipgloss.Color("1"),
	game.Number6: lipgloss.Color("6"),
	game.Number7: lipgloss.Color("13"),
	game.Number8: lipgloss.Color("7"),
}

type cellGlyph struct {
	text  string
	style lipgloss.Style
}

var glyphs = buildGlyphs()

var (
	winStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	loseStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	counterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	indexStyle     = lipgloss.NewStyle().Faint(true)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle      = lipgloss.NewStyle().Faint(true)
	frameStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func buildGlyphs() map[game.CellState]cellGlyph {
	table := make(map[game.CellState]cellGlyph, len(game.CellStates))
	for _, state := range game.CellStates {
		glyph := cellGlyph{style: lipgloss.NewStyle()}
		switch state {
		case game.Unrevealed:
			glyph.text = "#"
			glyph.style = glyph.style.Foreground(lipgloss.Color("8"))
		case game.Empty:
			glyph.text = "."
			glyph.style = glyph.style.Faint(true)
		case game.Flag:
			glyph.text = "F"
			glyph.style = glyph.style.Foreground(lipgloss.Color("11")).Bold(true)
		case game.Mine:
			glyph.text = "*"
			glyph.style = glyph.style.Foreground(lipgloss.Color("9")).Bold(true)
		default:
			glyph.text = strconv.Itoa(int(state))
			glyph.style = glyph.style.Foreground(numberColors[state])
		}
		table[state] = glyph
	}
	return table
}
