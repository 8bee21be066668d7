package notation

import (
	"github.com/pkg/errors"

	"runechess/internal/bot"
	"runechess/internal/engine"
	"runechess/internal/game"
)

// Played is the outcome of one step.
type Played struct {
	Step   Step        `json:"step"`
	Move   bot.Move    `json:"move"`
	Result game.Result `json:"result"`
	Status game.Status `json:"status"`
}

// Run plays steps in order and reports each accepted one to fn. It stops at
// the first rejected step and returns the error wrapped with its line.
func Run(g *engine.Game, steps []Step, fn func(Played)) error {
	for _, s := range steps {
		m := s.Move
		if s.Bot {
			var err error
			if m, err = g.GetBestMove(s.Depth); err != nil {
				return errors.Wrapf(err, "line %d: %s", s.Line, s)
			}
		}
		res, err := g.Apply(m)
		if err != nil {
			return errors.Wrapf(err, "line %d: %s", s.Line, Format(m))
		}
		if fn != nil {
			fn(Played{Step: s, Move: m, Result: res, Status: g.Status()})
		}
	}
	return nil
}
