package cmd

import (
	"fmt"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/they4kman/stonesweep/director/constraint"
	"github.com/they4kman/stonesweep/director/random"
	"github.com/they4kman/stonesweep/game"
	"github.com/they4kman/stonesweep/term"
)

// rootOptions holds what the root command's flags write to
type rootOptions struct {
	configPath string
	flags      settings
}

func newRootCmd() *cobra.Command {
	options := &rootOptions{flags: defaultSettings()}
	return options.command()
}

func (options *rootOptions) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stonesweep",
		Short: "Play Minesweeper in the terminal",
		Long: `stonesweep is a Minesweeper game for the terminal, played with the
keyboard or by a computer director.

Run with no arguments to play interactively
	stonesweep

Use the auto-play flag to make the computer play for you
	stonesweep --auto-play

Use the plain flag to play with typed commands, e.g. over a pipe
	stonesweep --plain

Settings may also come from a YAML file (--config) or from
STONESWEEP_* environment variables; flags take precedence.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          options.run,
	}

	flags := cmd.Flags()
	flags.StringVar(&options.configPath, "config", "", "Path to a YAML config file")
	flags.IntVarP(&options.flags.Rows, "rows", "r", options.flags.Rows, "Height of game board, in cells")
	flags.IntVarP(&options.flags.Cols, "cols", "c", options.flags.Cols, "Width of game board, in cells")
	flags.Float64VarP(&options.flags.MineProbability, "mine-probability", "p", options.flags.MineProbability, "Chance of each cell holding a mine")
	flags.Int64VarP(&options.flags.Seed, "seed", "s", 0, "Seed for mine placement (0 picks one from the clock)")
	flags.Var(newStrategyValue(options.flags.Strategy, &options.flags.Strategy), "strategy", fmt.Sprintf("Director used for the step key and auto-play, one of %v", strategyNames()))
	flags.BoolVarP(&options.flags.AutoPlay, "auto-play", "a", false, "Make the computer play")
	flags.BoolVar(&options.flags.Plain, "plain", false, "Read typed commands instead of running the full-screen interface")
	flags.StringVar(&options.flags.LogLevel, "log-level", options.flags.LogLevel, "Log level (debug, info, warn, error)")

	return cmd
}

func (options *rootOptions) run(cmd *cobra.Command, args []string) error {
	s, err := options.resolveSettings(cmd)
	if err != nil {
		return err
	}

	logger, err := s.logger()
	if err != nil {
		return err
	}

	newDirector, ok := strategies[s.Strategy]
	if !ok {
		return fmt.Errorf("unknown strategy %q", s.Strategy)
	}

	session, err := term.NewSession(s.gameConfig(logger), newDirector, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	switch {
	case s.AutoPlay:
		return session.AutoPlay()
	case s.Plain:
		return session.Run()
	}

	program := tea.NewProgram(term.NewModel(session),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)
	_, err = program.Run()
	return err
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveSettings layers the config file and environment over the defaults,
// then applies whichever flags were set explicitly
func (options *rootOptions) resolveSettings(cmd *cobra.Command) (settings, error) {
	s := defaultSettings()

	if options.configPath != "" {
		if err := s.loadFile(options.configPath); err != nil {
			return s, err
		}
	}

	if err := s.loadEnv(); err != nil {
		return s, err
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		s.Rows = options.flags.Rows
	}
	if flags.Changed("cols") {
		s.Cols = options.flags.Cols
	}
	if flags.Changed("mine-probability") {
		s.MineProbability = options.flags.MineProbability
	}
	if flags.Changed("seed") {
		s.Seed = options.flags.Seed
	}
	if flags.Changed("strategy") {
		s.Strategy = options.flags.Strategy
	}
	if flags.Changed("auto-play") {
		s.AutoPlay = options.flags.AutoPlay
	}
	if flags.Changed("plain") {
		s.Plain = options.flags.Plain
	}
	if flags.Changed("log-level") {
		s.LogLevel = options.flags.LogLevel
	}

	return s, nil
}

var strategies = map[string]func() game.Director{
	"constraint": func() game.Director { return &constraint.Director{} },
	"random":     func() game.Director { return &random.Director{} },
}

type strategyValue string

func newStrategyValue(val string, p *string) *strategyValue {
	*p = val
	return (*strategyValue)(p)
}

func (strategyVal *strategyValue) String() string {
	return string(*strategyVal)
}

func (strategyVal *strategyValue) Set(value string) error {
	if _, isValid := strategies[value]; !isValid {
		return fmt.Errorf("invalid strategy")
	}
	*strategyVal = strategyValue(value)
	return nil
}

func (strategyVal *strategyValue) Type() string {
	return "strategy"
}

func strategyNames() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
