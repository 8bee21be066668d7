// Package bot picks moves with a depth-bounded alpha-beta search. The search
// plays and undoes whole turns on the live position and leaves it unchanged.
package bot

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"runechess/internal/game"
)

// tieMargin widens the root window so equally scored actions are searched
// exactly and all of them enter the random tie-break.
const tieMargin = 1e-9

// Position is the part of a game the search needs. *game.StateManager
// satisfies it.
type Position interface {
	Turn() game.Color
	Actions() []game.Action
	Play(a game.Action) (*game.Ply, error)
	AllUnits() []*game.Unit
	IsCheck() bool
	IsMate() bool
	IsStaleMate() bool
	Is50MoveRule() bool
	IsInsufficientMaterial() bool
}

// Move identifies an action by object ids, ready to be replayed through the
// regular game entry points.
type Move struct {
	UnitID   string           `json:"unitId"`
	TargetID string           `json:"targetId"`
	Kind     game.CommandKind `json:"kind"`
}

func MoveOf(a game.Action) Move {
	return Move{UnitID: a.Unit.ID, TargetID: a.Target.ObjectID(), Kind: a.Kind}
}

func (m Move) String() string { return fmt.Sprintf("%s %s %s", m.Kind, m.UnitID, m.TargetID) }

type Config struct {
	Depth   int     `mapstructure:"depth" yaml:"depth"`
	Seed    int64   `mapstructure:"seed" yaml:"seed"`
	Weights Weights `mapstructure:"weights" yaml:"weights"`
}

const DefaultDepth = 2

func DefaultConfig() Config {
	return Config{Depth: DefaultDepth, Weights: DefaultWeights()}
}

// Stats describe the last search.
type Stats struct {
	Nodes   int     `json:"nodes"`
	Cutoffs int     `json:"cutoffs"`
	Score   float64 `json:"score"`
	Ties    int     `json:"ties"`
}

type Bot struct {
	depth   int
	weights Weights
	values  [game.NumKinds]float64
	rng     *rand.Rand
	log     *zap.Logger
	tracer  *Tracer
	stats   Stats
}

type Option func(*Bot)

func WithLogger(l *zap.Logger) Option {
	return func(b *Bot) {
		if l != nil {
			b.log = l
		}
	}
}

// WithTracer records every search root into t.
func WithTracer(t *Tracer) Option {
	return func(b *Bot) { b.tracer = t }
}

func WithRand(r *rand.Rand) Option {
	return func(b *Bot) {
		if r != nil {
			b.rng = r
		}
	}
}

func New(cfg Config, opts ...Option) *Bot {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	depth := cfg.Depth
	if depth < 1 {
		depth = DefaultDepth
	}
	b := &Bot{
		depth:   depth,
		weights: cfg.Weights,
		values:  cfg.Weights.Values(),
		rng:     rand.New(rand.NewSource(seed)),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bot) Depth() int { return b.depth }
func (b *Bot) Stats() Stats { return b.stats }
func (b *Bot) Tracer() *Tracer { return b.tracer }

// BestMove searches depth plies ahead (the configured depth when depth < 1)
// and returns the best action for the side to move. ok is false when the
// side to move has no action.
func (b *Bot) BestMove(pos Position, depth int) (Move, bool, error) {
	if depth < 1 {
		depth = b.depth
	}
	started := time.Now()
	b.stats = Stats{}
	b.tracer.reset()

	actions := pos.Actions()
	if len(actions) == 0 {
		return Move{}, false, nil
	}

	root := pos.Turn()
	best := math.Inf(-1)
	beta := math.Inf(1)
	var candidates []game.Action
	for _, a := range actions {
		score, err := b.child(pos, a, root, depth-1, best-tieMargin, beta)
		if err != nil {
			return Move{}, false, err
		}
		b.tracer.add(MoveOf(a), score)
		switch {
		case score > best:
			best = score
			candidates = append(candidates[:0], a)
		case score == best:
			candidates = append(candidates, a)
		}
	}

	choice := MoveOf(candidates[b.rng.Intn(len(candidates))])
	b.tracer.choose(choice)
	b.stats.Score = best
	b.stats.Ties = len(candidates)
	b.log.Debug("bot move",
		zap.Stringer("move", choice),
		zap.Int("depth", depth),
		zap.Float64("score", best),
		zap.Int("ties", len(candidates)),
		zap.Int("nodes", b.stats.Nodes),
		zap.Int("cutoffs", b.stats.Cutoffs),
		zap.Duration("took", time.Since(started)),
	)
	return choice, true, nil
}

func (b *Bot) child(pos Position, a game.Action, root game.Color, depth int, alpha, beta float64) (float64, error) {
	ply, err := pos.Play(a)
	if err != nil {
		return 0, errors.Wrapf(err, "search %s", a)
	}
	score, err := b.search(pos, root, depth, alpha, beta)
	ply.Undo()
	return score, err
}

func (b *Bot) search(pos Position, root game.Color, depth int, alpha, beta float64) (float64, error) {
	b.stats.Nodes++
	if depth <= 0 || finished(pos) {
		return b.evaluate(pos, root), nil
	}
	actions := pos.Actions()
	if len(actions) == 0 {
		return b.evaluate(pos, root), nil
	}

	maximizing := pos.Turn() == root
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	for _, a := range actions {
		score, err := b.child(pos, a, root, depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}
		if maximizing {
			best = math.Max(best, score)
			alpha = math.Max(alpha, best)
		} else {
			best = math.Min(best, score)
			beta = math.Min(beta, best)
		}
		if alpha >= beta {
			b.stats.Cutoffs++
			break
		}
	}
	return best, nil
}

func finished(pos Position) bool {
	return pos.IsMate() || pos.IsStaleMate() || pos.Is50MoveRule() || pos.IsInsufficientMaterial()
}
