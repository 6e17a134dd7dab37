package game

import (
	"math/rand"
	"strings"
)

const (
	layoutMine = '*'
	layoutSafe = '.'
)

type Board struct {
	rows, cols int // in number of cells
	numMines   int
	cells      [][]Cell
}

func (board *Board) Rows() int {
	return board.rows
}

func (board *Board) Cols() int {
	return board.cols
}

func (board *Board) NumCells() int {
	return board.rows * board.cols
}

func (board *Board) NumMines() int {
	return board.numMines
}

func (board *Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < board.rows && col < board.cols
}

// CellAt returns the cell at the given coordinates, or nil if out of bounds
func (board *Board) CellAt(row, col int) *Cell {
	if board.InBounds(row, col) {
		return &board.cells[row][col]
	}
	return nil
}

// Cells returns every cell in row-major order
func (board *Board) Cells() []*Cell {
	out := make([]*Cell, 0, board.NumCells())
	for row := range board.cells {
		for col := range board.cells[row] {
			out = append(out, &board.cells[row][col])
		}
	}
	return out
}

// Neighbors returns the in-bounds cells among the 8 surrounding the given cell
func (board *Board) Neighbors(cell *Cell) []*Cell {
	neighbors := make([]*Cell, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		if neighbor := board.CellAt(cell.pos.Row+offset[0], cell.pos.Col+offset[1]); neighbor != nil {
			neighbors = append(neighbors, neighbor)
		}
	}
	return neighbors
}

// Layout renders the mine placement, one line per row: '*' for mines and '.'
// for everything else. It is the inverse of BoardFromLayout.
func (board *Board) Layout() string {
	var layout strings.Builder
	for row := range board.cells {
		if row > 0 {
			layout.WriteByte('\n')
		}
		for col := range board.cells[row] {
			if board.cells[row][col].isMine {
				layout.WriteByte(layoutMine)
			} else {
				layout.WriteByte(layoutSafe)
			}
		}
	}
	return layout.String()
}

func createBoard(rows, cols int) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, invalidArgument("board dimensions must be positive, got %dx%d", rows, cols)
	}

	board := Board{
		rows:  rows,
		cols:  cols,
		cells: make([][]Cell, rows),
	}

	for row := 0; row < rows; row++ {
		board.cells[row] = make([]Cell, cols)
		for col := 0; col < cols; col++ {
			board.cells[row][col].pos = Position{Row: row, Col: col}
		}
	}

	return &board, nil
}

// Generate creates a board whose cells are each, independently, a mine with
// the given probability. The total number of mines is not fixed; it may be
// zero, or every cell.
func Generate(rows, cols int, rng *rand.Rand, mineProbability float64) (*Board, error) {
	if mineProbability < 0 || mineProbability > 1 {
		return nil, invalidArgument("mine probability must be within [0, 1], got %v", mineProbability)
	}

	board, err := createBoard(rows, cols)
	if err != nil {
		return nil, err
	}

	for _, cell := range board.Cells() {
		if rng.Float64() < mineProbability {
			cell.isMine = true
			board.numMines++
		}
	}

	board.computeAdjacency()
	return board, nil
}

// BoardFromLayout creates a board with mines placed exactly as described by
// layout: one line per row, '*' for a mine and '.' for a safe cell. Blank
// lines and surrounding whitespace are ignored.
func BoardFromLayout(layout string) (*Board, error) {
	var lines []string
	for _, line := range strings.Split(layout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, invalidArgument("layout is empty")
	}

	board, err := createBoard(len(lines), len(lines[0]))
	if err != nil {
		return nil, err
	}

	for row, line := range lines {
		if len(line) != board.cols {
			return nil, invalidArgument("layout row %d has %d cells, expected %d", row, len(line), board.cols)
		}

		for col, c := range line {
			switch c {
			case layoutMine:
				board.cells[row][col].isMine = true
				board.numMines++
			case layoutSafe:
			default:
				return nil, invalidArgument("layout row %d has unknown cell %q", row, c)
			}
		}
	}

	board.computeAdjacency()
	return board, nil
}

// computeAdjacency stores, for every non-mine cell, the number of mines among
// its neighbors. It must run exactly once, after mines are placed.
func (board *Board) computeAdjacency() {
	for _, cell := range board.Cells() {
		if cell.isMine {
			continue
		}
		for _, neighbor := range board.Neighbors(cell) {
			if neighbor.isMine {
				cell.numMines++
			}
		}
	}
}

// revealAll force-reveals every cell, once the game has ended
func (board *Board) revealAll() {
	for _, cell := range board.Cells() {
		cell.isRevealed = true
	}
}
