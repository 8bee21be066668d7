package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"runechess/internal/bot"
	"runechess/internal/config"
	"runechess/internal/engine"
	"runechess/internal/notation"
)

var (
	// Version is injected via ldflags at build time.
	Version = "dev"
	// Commit is injected via ldflags at build time.
	Commit = "none"
)

type app struct {
	configPath string
	logLevel   string

	cfg config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}
	root := &cobra.Command{
		Use:           "runechess",
		Short:         "Play and analyse runechess games",
		Long:          `runechess runs the 8x9 spell chess variant: scripted games, legal move listings and bot self-play.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./runechess.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level from the config")

	root.AddCommand(
		newPlayCmd(a),
		newMovesCmd(a),
		newSelfplayCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, logger
	return nil
}

func (a *app) newGame() *engine.Game {
	return engine.New(
		engine.WithSettings(a.cfg.Game),
		engine.WithLogger(a.log),
		engine.WithBot(bot.New(a.cfg.Bot, bot.WithLogger(a.log))),
	)
}

// readScript parses path, or standard input when path is "-".
func readScript(cmd *cobra.Command, path string) ([]notation.Step, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return notation.ParseScript(r)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "runechess version %s\n", Version)
			fmt.Fprintf(out, "Commit: %s\n", Commit)
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
