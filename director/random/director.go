package random

import (
	"github.com/they4kman/stonesweep/game"
)

// Director reveals concealed, unflagged cells in a random order
type Director struct {
	game  *game.Game
	order []game.Position
}

func (director *Director) Init(g *game.Game) {
	director.game = g

	cells := g.Board().Cells()
	director.order = make([]game.Position, len(cells))
	for i, cell := range cells {
		director.order[i] = cell.Position()
	}

	g.Rand().Shuffle(len(director.order), func(i, j int) {
		director.order[i], director.order[j] = director.order[j], director.order[i]
	})
}

// Candidate returns the next cell the director would reveal
func (director *Director) Candidate() (game.Position, bool) {
	for len(director.order) > 0 {
		pos := director.order[0]
		cell := director.game.Board().CellAt(pos.Row, pos.Col)
		if !cell.IsRevealed() && !cell.IsFlagged() {
			return pos, true
		}
		director.order = director.order[1:]
	}
	return game.Position{}, false
}

func (director *Director) Act() (bool, error) {
	if director.game.State().Finished() {
		return false, nil
	}

	pos, ok := director.Candidate()
	if !ok {
		return false, nil
	}

	if _, err := director.game.Reveal(pos.Row, pos.Col); err != nil {
		return false, err
	}
	return true, nil
}
