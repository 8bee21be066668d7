package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"runechess/internal/notation"
)

func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play <script>",
		Short: "Play a notation script against a new game",
		Long: `Plays every line of the script ("-" reads standard input) and prints each
result as a JSON line, followed by the final status. Stops with an error at
the first rejected action.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := readScript(cmd, args[0])
			if err != nil {
				return err
			}
			g := a.newGame()
			enc := json.NewEncoder(cmd.OutOrStdout())

			var encErr error
			err = notation.Run(g, steps, func(p notation.Played) {
				if encErr == nil {
					encErr = enc.Encode(p)
				}
			})
			if err != nil {
				return err
			}
			if encErr != nil {
				return encErr
			}
			if err := enc.Encode(g.Status()); err != nil {
				return err
			}
			if g.Status().Over() {
				fmt.Fprintln(cmd.ErrOrStderr(), "game over:", g.Status())
			}
			return nil
		},
	}
}
