package term

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/they4kman/stonesweep/game"
	"github.com/they4kman/stonesweep/util/collections"
)

const helpText = `Commands:
  r ROW COL   reveal a cell
  f ROW COL   flag or unflag a cell
  s           let the director make a move
  n           start a new game
  q           quit
`

// ErrNoDirector is returned when a director move is requested but the session
// was created without one
var ErrNoDirector = errors.New("no director configured")

// Session owns the game being played and translates line-based commands from
// the player into moves, redrawing the board after each one.
type Session struct {
	config      game.GameConfig
	newDirector func() game.Director

	in  *bufio.Scanner
	out io.Writer
	log logrus.FieldLogger

	game      *game.Game
	director  game.Director
	highlight collections.Set[game.Position]
}

// NewSession starts a game from config. newDirector may be nil, in which case
// the step command is unavailable.
func NewSession(config game.GameConfig, newDirector func() game.Director, in io.Reader, out io.Writer) (*Session, error) {
	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	session := &Session{
		config:      config,
		newDirector: newDirector,
		in:          bufio.NewScanner(in),
		out:         out,
		log:         logger,
	}

	if err := session.NewGame(); err != nil {
		return nil, err
	}
	return session, nil
}

func (session *Session) Game() *game.Game {
	return session.game
}

// NewGame replaces the current game. Each new game after the first is seeded
// from the previous one, so a whole session is reproducible from one seed.
func (session *Session) NewGame() error {
	if session.game != nil {
		session.config.Seed = session.game.Rand().Int63()
	}

	g, err := game.NewGame(session.config)
	if err != nil {
		return err
	}

	session.game = g
	session.highlight = nil
	session.director = nil
	if session.newDirector != nil {
		session.director = session.newDirector()
		session.director.Init(g)
	}
	return nil
}

// Run reads commands until the player quits or the input ends
func (session *Session) Run() error {
	if _, err := io.WriteString(session.out, helpText); err != nil {
		return err
	}
	if err := session.render(); err != nil {
		return err
	}

	for session.prompt() && session.in.Scan() {
		quit, err := session.Execute(session.in.Text())
		if err != nil {
			if cause := errors.Cause(err); cause == game.ErrInvalidArgument || cause == errUsage || cause == ErrNoDirector {
				fmt.Fprintf(session.out, "error: %v\n", err)
				continue
			}
			return err
		}
		if quit {
			return nil
		}
	}

	return session.in.Err()
}

// AutoPlay lets the director play until the game ends or it runs out of moves
func (session *Session) AutoPlay() error {
	if session.director == nil {
		return ErrNoDirector
	}

	for !session.game.State().Finished() {
		acted, err := session.step()
		if err != nil {
			return err
		}
		if err := session.render(); err != nil {
			return err
		}
		if !acted {
			session.log.Warn("director has no moves left")
			break
		}
	}
	return nil
}

var errUsage = errors.New("usage")

// Execute runs a single command line. Reports whether the player asked to quit.
func (session *Session) Execute(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch command, args := strings.ToLower(fields[0]), fields[1:]; command {
	case "q", "quit", "exit":
		return true, nil

	case "h", "help", "?":
		_, err := io.WriteString(session.out, helpText)
		return false, err

	case "n", "new":
		if err := session.NewGame(); err != nil {
			return false, err
		}

	case "r", "reveal":
		row, col, err := parseCoords(command, args)
		if err != nil {
			return false, err
		}
		if err := session.Reveal(row, col); err != nil {
			return false, err
		}

	case "f", "flag":
		row, col, err := parseCoords(command, args)
		if err != nil {
			return false, err
		}
		if err := session.ToggleFlag(row, col); err != nil {
			return false, err
		}

	case "s", "step":
		if err := session.Step(); err != nil {
			return false, err
		}

	default:
		return false, errors.Wrapf(errUsage, "unknown command %q, type help for a list", command)
	}

	return false, session.render()
}

// Reveal uncovers a cell, highlighting everything the move revealed
func (session *Session) Reveal(row, col int) error {
	result, err := session.game.Reveal(row, col)
	if err != nil {
		return err
	}
	session.highlight = collections.SetOf(result.Revealed...)
	return nil
}

func (session *Session) ToggleFlag(row, col int) error {
	if err := session.game.ToggleFlag(row, col); err != nil {
		return err
	}
	session.highlight = collections.SetOf(game.Position{Row: row, Col: col})
	return nil
}

// Step asks the director for one move
func (session *Session) Step() error {
	if session.director == nil {
		return ErrNoDirector
	}
	_, err := session.step()
	return err
}

// step makes one director move, highlighting every cell it changed
func (session *Session) step() (bool, error) {
	before := session.game.Cells()

	acted, err := session.director.Act()
	if err != nil {
		return false, err
	}

	session.highlight = make(collections.Set[game.Position])
	for i, cell := range session.game.Cells() {
		if cell.IsRevealed != before[i].IsRevealed || cell.IsFlagged != before[i].IsFlagged {
			session.highlight.Add(cell.Position())
		}
	}
	return acted, nil
}

func (session *Session) prompt() bool {
	prompt := "> "
	if session.game.State().Finished() {
		prompt = "n for a new game, q to quit > "
	}
	_, err := io.WriteString(session.out, prompt)
	return err == nil
}

func (session *Session) render() error {
	return Render(session.out, session.game, session.highlight)
}

func parseCoords(command string, args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, errors.Wrapf(errUsage, "%s takes a row and a column", command)
	}

	row, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, errors.Wrapf(errUsage, "row %q is not a number", args[0])
	}
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, errors.Wrapf(errUsage, "column %q is not a number", args[1])
	}
	return row, col, nil
}
