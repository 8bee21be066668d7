package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"runechess/internal/arena"
	"runechess/internal/bot"
)

func newSelfplayCmd(a *app) *cobra.Command {
	var (
		games, depth, maxPlies int
		dot                    string
	)
	cmd := &cobra.Command{
		Use:   "selfplay",
		Short: "Let the bot play against itself",
		Long: `Plays a number of bot-vs-bot games from the standard position and prints
a summary. --dot writes the search tree of Blue's last decision in Graphviz
DOT format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("games") {
				games = a.cfg.Arena.Games
			}
			if !flags.Changed("depth") {
				depth = a.cfg.Bot.Depth
			}
			if !flags.Changed("max-plies") {
				maxPlies = a.cfg.Arena.MaxPlies
			}
			if games < 1 {
				return errors.Errorf("--games must be at least 1, got %d", games)
			}

			seed := a.cfg.Bot.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			var tracer *bot.Tracer
			if dot != "" {
				tracer = bot.NewTracer()
			}
			blueCfg, redCfg := a.cfg.Bot, a.cfg.Bot
			blueCfg.Seed, redCfg.Seed = seed, seed+1
			blue := arena.NewAgent("blue", bot.New(blueCfg, bot.WithLogger(a.log), bot.WithTracer(tracer)), depth)
			red := arena.NewAgent("red", bot.New(redCfg, bot.WithLogger(a.log)), depth)
			ar := arena.New(blue, red,
				arena.WithGame(a.newGame()),
				arena.WithMaxPlies(maxPlies),
				arena.WithLogger(a.log),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			bar := progressbar.NewOptions(games,
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("selfplay"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
			plies := 0
			for i := 0; i < games; i++ {
				out, err := ar.Play(ctx)
				if err != nil {
					return errors.Wrapf(err, "game %d", i+1)
				}
				plies += out.Plies
				a.log.Debug("selfplay game",
					zap.Int("game", i+1),
					zap.String("reason", out.Reason),
					zap.Int("plies", out.Plies),
				)
				_ = bar.Add(1)
			}
			_ = bar.Finish()

			fmt.Fprintf(cmd.OutOrStdout(), "games %d  blue %d  red %d  draws %d  plies %d  seed %d\n",
				games, blue.Wins, red.Wins, blue.Draws, plies, seed)

			if tracer != nil {
				if err := os.WriteFile(dot, []byte(tracer.String()), 0o644); err != nil {
					return errors.Wrap(err, "write dot")
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&games, "games", 1, "number of games (default arena.games)")
	cmd.Flags().IntVar(&depth, "depth", bot.DefaultDepth, "search depth (default bot.depth)")
	cmd.Flags().IntVar(&maxPlies, "max-plies", arena.DefaultMaxPlies, "ply limit per game (default arena.max_plies)")
	cmd.Flags().StringVar(&dot, "dot", "", "write the last search tree to this file")
	return cmd
}
