package term

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/they4kman/stonesweep/director/constraint"
	"github.com/they4kman/stonesweep/game"
	"github.com/they4kman/stonesweep/util/collections"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func testConfig(layout string) game.GameConfig {
	config := game.NewGameConfig()
	config.Layout = layout
	config.Seed = 1
	config.Logger, _ = test.NewNullLogger()
	return config
}

func newConstraintDirector() game.Director {
	return &constraint.Director{}
}

func runSession(t *testing.T, config game.GameConfig, newDirector func() game.Director, input string) (*Session, string) {
	t.Helper()

	var out bytes.Buffer
	session, err := NewSession(config, newDirector, strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if err := session.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return session, out.String()
}

func TestRender(t *testing.T) {
	g, err := game.NewGame(testConfig("*.\n.."))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	if err := g.ToggleFlag(0, 0); err != nil {
		t.Fatalf("ToggleFlag failed: %v", err)
	}

	var out bytes.Buffer
	if err := Render(&out, g, collections.SetOf(game.Position{Row: 0, Col: 0})); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	expected := strings.Join([]string{
		"000",
		"   0  1 ",
		"0 [F] # ",
		"1  #  # ",
		"",
	}, "\n")
	if out.String() != expected {
		t.Fatalf("unexpected render:\n%q\nexpected:\n%q", out.String(), expected)
	}
}

func TestRenderAlignsWideBoards(t *testing.T) {
	layout := "*" + strings.Repeat(".", 101)
	g, err := game.NewGame(testConfig(layout))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}

	var out bytes.Buffer
	if err := Render(&out, g, nil); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	lines := strings.Split(out.String(), "\n")
	header, row := lines[1], lines[2]
	if len(header) != len(row) {
		t.Fatalf("header and row widths differ: %d vs %d\n%s\n%s", len(header), len(row), header, row)
	}

	// The last digit of every column index sits above its glyph
	for _, col := range []string{" 0 ", " 9 ", " 10 ", " 101 "} {
		at := strings.Index(header, col) + len(col) - 2
		if row[at] != '#' {
			t.Fatalf("column%sis not above a cell:\n%s\n%s", col, header, row)
		}
	}
}

func TestGlyphsCoverEveryCellState(t *testing.T) {
	seen := make(map[string]game.CellState)
	for _, state := range game.CellStates {
		glyph, ok := glyphs[state]
		if !ok || len(glyph.text) != 1 {
			t.Fatalf("state %d has glyph %q", state, glyph.text)
		}
		if other, duplicate := seen[glyph.text]; duplicate {
			t.Fatalf("states %d and %d share glyph %q", other, state, glyph.text)
		}
		seen[glyph.text] = state
	}

	if glyphs[game.Number3].text != "3" {
		t.Fatalf("unexpected glyph for three adjacent mines: %q", glyphs[game.Number3].text)
	}
}

func TestSessionRevealWins(t *testing.T) {
	session, out := runSession(t, testConfig("...\n..."), nil, "r 1 1\nq\n")

	if session.Game().State() != game.Won {
		t.Fatalf("expected win, got %v", session.Game().State())
	}
	if !strings.Contains(out, "WIN!") {
		t.Fatalf("expected win banner in output:\n%s", out)
	}
}

func TestSessionRevealMineLoses(t *testing.T) {
	session, out := runSession(t, testConfig("*.\n.."), nil, "f 1 1\nr 0 0\n")

	if session.Game().State() != game.Lost {
		t.Fatalf("expected loss, got %v", session.Game().State())
	}
	if !strings.Contains(out, "LOSE :(") {
		t.Fatalf("expected loss banner in output:\n%s", out)
	}
	if !strings.Contains(out, "n for a new game") {
		t.Fatalf("expected new game prompt in output:\n%s", out)
	}
}

func TestSessionReportsBadCommands(t *testing.T) {
	session, out := runSession(t, testConfig("*.\n.."), nil, "dance\nr 9 9\nr a 1\nf 1\ns\nq\nr 1 1\n")

	for _, message := range []string{
		`unknown command "dance"`,
		"outside the 2x2 board",
		`row "a" is not a number`,
		"f takes a row and a column",
		"no director configured",
	} {
		if !strings.Contains(out, message) {
			t.Fatalf("expected %q in output:\n%s", message, out)
		}
	}

	// Input after quitting is never read
	if cell, _ := session.Game().CellAt(1, 1); cell.IsRevealed {
		t.Fatal("command after quit was executed")
	}
}

func TestSessionNewGame(t *testing.T) {
	session, _ := runSession(t, testConfig("*.\n.."), nil, "r 0 0\nn\n")

	if session.Game().State() != game.Ongoing {
		t.Fatalf("expected a fresh game, got %v", session.Game().State())
	}
	for _, cell := range session.Game().Cells() {
		if cell.IsRevealed {
			t.Fatalf("(%d, %d) revealed in a fresh game", cell.Row, cell.Col)
		}
	}
}

func TestSessionStep(t *testing.T) {
	session, out := runSession(t, testConfig(".*."), newConstraintDirector, "r 0 0\ns\nq\n")

	if cell, _ := session.Game().CellAt(0, 1); !cell.IsFlagged {
		t.Fatal("expected the director to flag (0, 1)")
	}
	if !strings.Contains(out, "[F]") {
		t.Fatalf("expected the flagged cell to be highlighted:\n%s", out)
	}
}

func TestAutoPlay(t *testing.T) {
	config := testConfig("")
	config.Rows, config.Cols = 8, 8

	var out bytes.Buffer
	session, err := NewSession(config, newConstraintDirector, strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if err := session.AutoPlay(); err != nil {
		t.Fatalf("AutoPlay failed: %v", err)
	}
	if !session.Game().State().Finished() {
		t.Fatalf("expected a finished game, got %v", session.Game().State())
	}
}

func TestAutoPlayWithoutDirector(t *testing.T) {
	var out bytes.Buffer
	session, err := NewSession(testConfig("*."), nil, strings.NewReader(""), &out)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if err := session.AutoPlay(); errors.Cause(err) != ErrNoDirector {
		t.Fatalf("expected ErrNoDirector, got %v", err)
	}
}
