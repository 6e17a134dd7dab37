package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/they4kman/stonesweep/game"
	"github.com/they4kman/stonesweep/util/collections"
)

// Render draws the board as a grid of glyphs with row and column indices.
// Cells in highlight are bracketed.
func Render(out io.Writer, g *game.Game, highlight collections.Set[game.Position]) error {
	_, err := io.WriteString(out, renderBoard(g, highlight, nil))
	return err
}

// renderBoard lays out the counter, banner and grid. Each cell takes as many
// columns as the widest column index plus two, so headers stay aligned on
// wide boards. The cell under cursor, if any, is drawn in angle brackets.
func renderBoard(g *game.Game, highlight collections.Set[game.Position], cursor *game.Position) string {
	board := g.Board()
	rowWidth := len(fmt.Sprint(board.Rows() - 1))
	colWidth := len(fmt.Sprint(board.Cols() - 1))
	cellPad := strings.Repeat(" ", colWidth-1)

	var buf strings.Builder

	buf.WriteString(counterStyle.Render(fmt.Sprintf("%03d", g.NumMines()-g.NumFlags())))
	switch g.State() {
	case game.Won:
		buf.WriteString("   " + winStyle.Render("WIN!"))
	case game.Lost:
		buf.WriteString("   " + loseStyle.Render("LOSE :("))
	}
	buf.WriteByte('\n')

	buf.WriteString(strings.Repeat(" ", rowWidth+1))
	for col := 0; col < board.Cols(); col++ {
		buf.WriteString(indexStyle.Render(fmt.Sprintf("%*d", colWidth+1, col)))
		buf.WriteByte(' ')
	}
	buf.WriteByte('\n')

	cells := g.Cells()
	for row := 0; row < board.Rows(); row++ {
		buf.WriteString(indexStyle.Render(fmt.Sprintf("%*d", rowWidth, row)))
		buf.WriteByte(' ')
		for _, cell := range cells[row*board.Cols() : (row+1)*board.Cols()] {
			glyph := glyphs[cell.State]
			text := glyph.style.Render(glyph.text)

			buf.WriteString(cellPad)
			switch pos := cell.Position(); {
			case cursor != nil && *cursor == pos:
				buf.WriteString(cursorStyle.Render("<" + glyph.text + ">"))
			case highlight.Contains(pos):
				buf.WriteString(highlightStyle.Render("[" + glyph.text + "]"))
			default:
				buf.WriteString(" " + text + " ")
			}
		}
		buf.WriteByte('\n')
	}

	return buf.String()
}
