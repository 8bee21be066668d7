package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"runechess/internal/notation"
)

func newMovesCmd(a *app) *cobra.Command {
	var (
		script string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "moves",
		Short: "List every legal action for the side to move",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := a.newGame()
			if script != "" {
				steps, err := readScript(cmd, script)
				if err != nil {
					return err
				}
				if err := notation.Run(g, steps, nil); err != nil {
					return err
				}
			}

			moves := g.Actions()
			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(moves)
			}
			fmt.Fprintf(out, "# %s to move, %d actions\n", g.Turn(), len(moves))
			for _, m := range moves {
				fmt.Fprintln(out, notation.Format(m))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&script, "script", "", "play this script first")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the actions as JSON")
	return cmd
}
