package cmd

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/they4kman/stonesweep/game"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "stonesweep.yaml")
	if err := ioutil.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestSettingsLoadFile(t *testing.T) {
	path := writeConfig(t, `
rows: 9
cols: 12
mine_probability: 0.15
seed: 77
strategy: random
layout: |
  *..
  ...
`)

	s := defaultSettings()
	if err := s.loadFile(path); err != nil {
		t.Fatalf("loadFile failed: %v", err)
	}

	if s.Rows != 9 || s.Cols != 12 || s.MineProbability != 0.15 || s.Seed != 77 || s.Strategy != "random" {
		t.Fatalf("unexpected settings %+v", s)
	}
	if s.LogLevel != logrus.WarnLevel.String() {
		t.Fatalf("default log level overwritten: %q", s.LogLevel)
	}

	g, err := game.NewGame(s.gameConfig(logrus.New()))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	if g.Board().Rows() != 2 || g.Board().Cols() != 3 || g.NumMines() != 1 {
		t.Fatalf("layout not applied: %dx%d with %d mines", g.Board().Rows(), g.Board().Cols(), g.NumMines())
	}
}

func TestSettingsLoadFileRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "rows: 9\ndifficulty: hard\n")

	s := defaultSettings()
	if err := s.loadFile(path); err == nil {
		t.Fatal("expected an error for an unknown key")
	}
}

func TestSettingsLoadEnv(t *testing.T) {
	t.Setenv("STONESWEEP_COLS", "14")
	t.Setenv("STONESWEEP_AUTO_PLAY", "true")

	s := defaultSettings()
	s.Rows = 3
	if err := s.loadEnv(); err != nil {
		t.Fatalf("loadEnv failed: %v", err)
	}

	if s.Cols != 14 || !s.AutoPlay {
		t.Fatalf("environment not applied: %+v", s)
	}
	if s.Rows != 3 {
		t.Fatalf("unset variable overwrote rows: %d", s.Rows)
	}
}

func TestSettingsLoadEnvRejectsBadValues(t *testing.T) {
	t.Setenv("STONESWEEP_ROWS", "many")

	s := defaultSettings()
	if err := s.loadEnv(); err == nil {
		t.Fatal("expected an error for a malformed variable")
	}
}

func TestSettingsLogger(t *testing.T) {
	s := defaultSettings()
	s.LogLevel = "debug"

	logger, err := s.logger()
	if err != nil {
		t.Fatalf("logger failed: %v", err)
	}
	if logger.Level != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %v", logger.Level)
	}

	s.LogLevel = "chatty"
	if _, err := s.logger(); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}

func TestResolveSettingsPrecedence(t *testing.T) {
	options := &rootOptions{flags: defaultSettings()}
	cmd := options.command()
	options.configPath = writeConfig(t, "rows: 7\ncols: 8\nseed: 5\n")

	t.Setenv("STONESWEEP_COLS", "10")
	t.Setenv("STONESWEEP_SEED", "6")

	if err := cmd.Flags().Parse([]string{"--seed", "99"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	s, err := options.resolveSettings(cmd)
	if err != nil {
		t.Fatalf("resolveSettings failed: %v", err)
	}

	if s.Rows != 7 {
		t.Fatalf("expected rows from the config file, got %d", s.Rows)
	}
	if s.Cols != 10 {
		t.Fatalf("expected cols from the environment, got %d", s.Cols)
	}
	if s.Seed != 99 {
		t.Fatalf("expected seed from the flag, got %d", s.Seed)
	}
}

func TestRootCommandsDoNotShareFlags(t *testing.T) {
	first := &rootOptions{flags: defaultSettings()}
	if err := first.command().Flags().Parse([]string{"--seed", "99", "--rows", "3"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	second := &rootOptions{flags: defaultSettings()}
	cmd := second.command()
	s, err := second.resolveSettings(cmd)
	if err != nil {
		t.Fatalf("resolveSettings failed: %v", err)
	}

	if cmd.Flags().Changed("seed") || s.Seed != 0 || s.Rows != defaultSettings().Rows {
		t.Fatalf("flags leaked between commands: %+v", s)
	}
}

func TestStrategyValue(t *testing.T) {
	var strategy string
	value := newStrategyValue("constraint", &strategy)

	if err := value.Set("random"); err != nil || strategy != "random" {
		t.Fatalf("Set(random) = %v, strategy %q", err, strategy)
	}
	if err := value.Set("psychic"); err == nil {
		t.Fatal("expected an error for an unknown strategy")
	}
	if value.String() != "random" {
		t.Fatalf("unexpected String() %q", value.String())
	}
}

func TestRootCommandAutoPlay(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--rows", "6", "--cols", "6", "--seed", "3", "--auto-play", "--log-level", "error"})
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(""))

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out.String(), "WIN!") && !strings.Contains(out.String(), "LOSE :(") {
		t.Fatalf("expected the game to finish:\n%s", out.String())
	}
}

func TestRootCommandPlain(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--plain", "--rows", "3", "--cols", "3", "--mine-probability", "0", "--log-level", "error"})
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("r 1 1\nq\n"))

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out.String(), "WIN!") {
		t.Fatalf("expected a win on a board without mines:\n%s", out.String())
	}
}

func TestRootCommandLeavesErrorReportingToCaller(t *testing.T) {
	for _, args := range [][]string{
		{"--plain", "--log-level", "chatty"},
		{"--no-such-flag"},
	} {
		var out, errOut bytes.Buffer
		cmd := newRootCmd()
		cmd.SetArgs(args)
		cmd.SetOut(&out)
		cmd.SetErr(&errOut)
		cmd.SetIn(strings.NewReader(""))

		if err := cmd.Execute(); err == nil {
			t.Fatalf("%v: expected an error", args)
		}
		if errOut.Len() != 0 || strings.Contains(out.String(), "Error:") {
			t.Fatalf("%v: command printed the error itself:\n%s%s", args, out.String(), errOut.String())
		}
	}
}
