package game

import "fmt"

// Position identifies a cell by row and column, both zero-based
type Position struct {
	Row, Col int
}

func (pos Position) String() string {
	return fmt.Sprintf("(%d, %d)", pos.Row, pos.Col)
}

type Cell struct {
	pos Position

	isMine, isRevealed, isFlagged bool

	// Only meaningful when !isMine
	numMines int
}

func (cell *Cell) String() string {
	return fmt.Sprintf("Cell%v", cell.pos)
}

func (cell *Cell) Position() Position {
	return cell.pos
}

func (cell *Cell) IsMine() bool {
	return cell.isMine
}

func (cell *Cell) IsRevealed() bool {
	return cell.isRevealed
}

func (cell *Cell) IsFlagged() bool {
	return cell.isFlagged
}

func (cell *Cell) NumMines() int {
	return cell.numMines
}

// State returns the glyph a renderer should show for the cell
func (cell *Cell) State() CellState {
	switch {
	case cell.isRevealed && cell.isMine:
		return Mine
	case cell.isRevealed:
		return CellState(cell.numMines)
	case cell.isFlagged:
		return Flag
	default:
		return Unrevealed
	}
}

func (cell *Cell) view() CellView {
	return CellView{
		Row:               cell.pos.Row,
		Col:               cell.pos.Col,
		IsMine:            cell.isMine,
		IsFlagged:         cell.isFlagged,
		IsRevealed:        cell.isRevealed,
		AdjacentMineCount: cell.numMines,
		State:             cell.State(),
	}
}

// CellView is a read-only copy of a cell, safe to hand to a presentation layer
type CellView struct {
	Row, Col          int
	IsMine            bool
	IsFlagged         bool
	IsRevealed        bool
	AdjacentMineCount int
	State             CellState
}

func (view CellView) Position() Position {
	return Position{Row: view.Row, Col: view.Col}
}
