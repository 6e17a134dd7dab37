package game

import "github.com/gammazero/deque"

// flood reveals origin and, if it is an empty non-mine cell, cascades outward
// through empty cells. Numbered cells on the border of the region are revealed
// but not expanded. Flagged cells are never touched.
//
// isRevealed doubles as the visited set, so each cell is revealed at most once.
// Returns the cells revealed, in visiting order.
func flood(board *Board, origin *Cell) []*Cell {
	var visitQueue deque.Deque
	var revealed []*Cell

	visit := func(cell *Cell) {
		cell.isRevealed = true
		revealed = append(revealed, cell)

		if !cell.isMine && cell.numMines == 0 {
			visitQueue.PushBack(cell)
		}
	}

	visit(origin)

	for visitQueue.Len() > 0 {
		cell := visitQueue.PopFront().(*Cell)

		for _, neighbor := range board.Neighbors(cell) {
			if neighbor.isRevealed || neighbor.isFlagged {
				continue
			}
			visit(neighbor)
		}
	}

	return revealed
}
