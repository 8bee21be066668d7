// Package arena plays bots against each other.
package arena

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"runechess/internal/bot"
	"runechess/internal/engine"
	"runechess/internal/game"
)

// ReasonPlyLimit ends a game that ran out of plies.
const ReasonPlyLimit = "ply-limit"

// DefaultMaxPlies bounds a game when no limit is configured.
const DefaultMaxPlies = 200

// Agent is one side of the arena and keeps its record across games.
type Agent struct {
	Name  string
	Bot   *bot.Bot
	Depth int

	Wins, Losses, Draws int
}

func NewAgent(name string, b *bot.Bot, depth int) *Agent {
	return &Agent{Name: name, Bot: b, Depth: depth}
}

// Outcome describes a finished game.
type Outcome struct {
	Winner    game.Color `json:"winner"`
	HasWinner bool       `json:"hasWinner"`
	Reason    string     `json:"reason"`
	Plies     int        `json:"plies"`
	Moves     []bot.Move `json:"moves"`
}

// Arena represents a game arena. Blue moves first.
type Arena struct {
	game      *engine.Game
	blue, red *Agent
	maxPlies  int
	log       *zap.Logger
}

type Option func(*Arena)

func WithMaxPlies(n int) Option {
	return func(a *Arena) {
		if n > 0 {
			a.maxPlies = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(a *Arena) {
		if l != nil {
			a.log = l
		}
	}
}

// WithGame plays on g, which is reset before every game.
func WithGame(g *engine.Game) Option {
	return func(a *Arena) { a.game = g }
}

func New(blue, red *Agent, opts ...Option) *Arena {
	a := &Arena{
		blue:     blue,
		red:      red,
		maxPlies: DefaultMaxPlies,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.game == nil {
		a.game = engine.New(engine.WithLogger(a.log))
	}
	return a
}

func (a *Arena) Game() *engine.Game { return a.game }
func (a *Arena) Blue() *Agent { return a.blue }
func (a *Arena) Red() *Agent { return a.red }

func (a *Arena) agent(c game.Color) *Agent {
	if c == game.Red {
		return a.red
	}
	return a.blue
}

// Play resets the game and plays it to the end or to the ply limit. The
// context is checked between plies.
func (a *Arena) Play(ctx context.Context) (Outcome, error) {
	a.game.Reset()
	started := time.Now()

	var out Outcome
	for {
		if err := ctx.Err(); err != nil {
			return out, errors.WithStack(err)
		}
		st := a.game.Status()
		if st.Over() {
			out.Reason = st.String()
			out.Winner, out.HasWinner = st.Winner()
			break
		}
		if out.Plies >= a.maxPlies {
			out.Reason = ReasonPlyLimit
			break
		}

		p := a.agent(st.Turn)
		m, err := a.game.Search(p.Bot, p.Depth)
		if err != nil {
			return out, errors.Wrapf(err, "ply %d: %s", out.Plies+1, p.Name)
		}
		if _, err := a.game.Apply(m); err != nil {
			return out, errors.Wrapf(err, "ply %d: %s played %s", out.Plies+1, p.Name, m)
		}
		out.Plies++
		out.Moves = append(out.Moves, m)
	}

	a.record(out)
	a.log.Info("game finished",
		zap.String("reason", out.Reason),
		zap.Bool("hasWinner", out.HasWinner),
		zap.Stringer("winner", out.Winner),
		zap.Int("plies", out.Plies),
		zap.Duration("took", time.Since(started)),
	)
	return out, nil
}

func (a *Arena) record(out Outcome) {
	if !out.HasWinner {
		a.blue.Draws++
		a.red.Draws++
		return
	}
	winner, loser := a.agent(out.Winner), a.agent(out.Winner.Opposite())
	winner.Wins++
	loser.Losses++
}
