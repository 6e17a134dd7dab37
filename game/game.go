package game

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

type GameConfig struct {
	Rows, Cols      int
	MineProbability float64

	// Seed for mine placement; 0 picks one from the clock
	Seed int64

	// Fixed mine layout, as accepted by BoardFromLayout. When set, Rows, Cols
	// and MineProbability are ignored.
	Layout string

	Logger logrus.FieldLogger

	// Called once, when the game is won or lost
	OnGameEnd func(*Game)
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Rows:            6,
		Cols:            6,
		MineProbability: DefaultMineProbability,
		Logger:          logrus.StandardLogger(),
	}
}

func (config GameConfig) createBoard(rng *rand.Rand) (*Board, error) {
	if config.Layout != "" {
		return BoardFromLayout(config.Layout)
	}
	return Generate(config.Rows, config.Cols, rng, config.MineProbability)
}

// Game is a single Minesweeper session. It is not safe for concurrent use;
// callers serialize their moves.
type Game struct {
	board    *Board
	state    BoardState
	numFlags int

	seed int64
	rand *rand.Rand

	log       logrus.FieldLogger
	onGameEnd func(*Game)
}

// RevealResult describes the outcome of a single Reveal
type RevealResult struct {
	State BoardState

	// Cells revealed by the move itself, not counting the reveal of the whole
	// board once the game ends
	Revealed []Position
}

func NewGame(config GameConfig) (*Game, error) {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	rng := rand.New(rand.NewSource(seed))
	board, err := config.createBoard(rng)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"rows":  board.rows,
		"cols":  board.cols,
		"mines": board.numMines,
		"seed":  seed,
	}).Debug("board generated")

	return &Game{
		board:     board,
		state:     Ongoing,
		seed:      seed,
		rand:      rng,
		log:       logger,
		onGameEnd: config.OnGameEnd,
	}, nil
}

func (game *Game) Board() *Board {
	return game.board
}

func (game *Game) State() BoardState {
	return game.state
}

func (game *Game) Seed() int64 {
	return game.seed
}

func (game *Game) Rand() *rand.Rand {
	return game.rand
}

func (game *Game) NumMines() int {
	return game.board.numMines
}

func (game *Game) NumFlags() int {
	return game.numFlags
}

func (game *Game) canPlay() bool {
	return game.state == Ongoing
}

func (game *Game) cellAt(row, col int) (*Cell, error) {
	cell := game.board.CellAt(row, col)
	if cell == nil {
		return nil, invalidArgument("cell (%d, %d) is outside the %dx%d board", row, col, game.board.rows, game.board.cols)
	}
	return cell, nil
}

// CellAt returns a snapshot of a single cell
func (game *Game) CellAt(row, col int) (CellView, error) {
	cell, err := game.cellAt(row, col)
	if err != nil {
		return CellView{}, err
	}
	return cell.view(), nil
}

// Cells returns a snapshot of every cell, in row-major order
func (game *Game) Cells() []CellView {
	views := make([]CellView, 0, game.board.NumCells())
	for _, cell := range game.board.Cells() {
		views = append(views, cell.view())
	}
	return views
}

// Reveal uncovers the cell at (row, col), cascading through empty cells, and
// then checks whether the game has been won or lost. Revealing a flagged or
// already-revealed cell, or playing after the game has ended, changes nothing.
func (game *Game) Reveal(row, col int) (RevealResult, error) {
	cell, err := game.cellAt(row, col)
	if err != nil {
		return RevealResult{State: game.state}, err
	}

	if !game.canPlay() || cell.isRevealed || cell.isFlagged {
		return RevealResult{State: game.state}, nil
	}

	revealed := flood(game.board, cell)

	result := RevealResult{
		State:    game.evaluate(),
		Revealed: make([]Position, len(revealed)),
	}
	for i, revealedCell := range revealed {
		result.Revealed[i] = revealedCell.pos
	}

	game.log.WithFields(logrus.Fields{
		"row":      row,
		"col":      col,
		"revealed": len(revealed),
		"state":    result.State,
	}).Debug("cell revealed")

	return result, nil
}

// ToggleFlag flags or unflags the cell at (row, col). Revealed cells cannot be
// flagged. Flagging never ends the game by itself; the next Reveal will notice
// if every mine has been flagged.
func (game *Game) ToggleFlag(row, col int) error {
	cell, err := game.cellAt(row, col)
	if err != nil {
		return err
	}

	if !game.canPlay() || cell.isRevealed {
		return nil
	}

	cell.isFlagged = !cell.isFlagged
	if cell.isFlagged {
		game.numFlags++
	} else {
		game.numFlags--
	}

	game.log.WithFields(logrus.Fields{
		"row":     row,
		"col":     col,
		"flagged": cell.isFlagged,
	}).Debug("flag toggled")

	return nil
}

// evaluate scans the board once and ends the game if a mine has been revealed
// (loss), or if either only mines remain concealed or every mine is flagged
// (win).
func (game *Game) evaluate() BoardState {
	var totalMines, unrevealedCount int
	anyRevealedMine := false
	allMinesFlagged := true

	for _, cell := range game.board.Cells() {
		if cell.isMine {
			totalMines++

			if cell.isRevealed {
				anyRevealedMine = true
			}
			if !cell.isFlagged {
				allMinesFlagged = false
			}
		}
		if !cell.isRevealed {
			unrevealedCount++
		}
	}

	switch {
	case anyRevealedMine:
		game.endGame(Lost)
	case totalMines == unrevealedCount || allMinesFlagged:
		game.endGame(Won)
	}

	return game.state
}

func (game *Game) endGame(state BoardState) {
	game.state = state
	game.board.revealAll()

	game.log.WithFields(logrus.Fields{
		"state": state,
		"mines": game.board.numMines,
		"seed":  game.seed,
	}).Infof("game %s", state)

	if game.onGameEnd != nil {
		game.onGameEnd(game)
	}
}
