// Package engine is the id-based entry point to a single runechess game. It
// resolves object ids, serialises access, logs every request and hands
// turns to the bot on demand.
package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"runechess/internal/bot"
	"runechess/internal/game"
)

var (
	ErrUnknownObject = errors.New("unknown object id")
	ErrBotDisabled   = errors.New("bot disabled for this game")
	ErrNoMove        = errors.New("no move available")
)

// Game owns one StateManager. All methods are safe for concurrent use; calls
// are applied one at a time.
type Game struct {
	mu       sync.Mutex
	id       uuid.UUID
	settings game.Settings
	setup    func() *game.Board
	turn     game.Color
	state    *game.StateManager
	bot      *bot.Bot
	log      *zap.Logger
}

type Option func(*Game)

func WithSettings(s game.Settings) Option {
	return func(g *Game) { g.settings = s }
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

func WithBot(b *bot.Bot) Option {
	return func(g *Game) { g.bot = b }
}

// WithBoard starts the game from a constructed position. setup is called
// again on Reset.
func WithBoard(setup func() *game.Board, turn game.Color) Option {
	return func(g *Game) {
		g.setup = setup
		g.turn = turn
	}
}

func New(opts ...Option) *Game {
	g := &Game{
		id:       uuid.New(),
		settings: game.DefaultSettings(),
		setup:    game.NewBoard,
		turn:     game.Blue,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.bot == nil && g.settings.EnableBot {
		g.bot = bot.New(bot.DefaultConfig(), bot.WithLogger(g.log))
	}
	g.log = g.log.With(zap.String("game", g.id.String()))
	g.reset()
	return g
}

func (g *Game) reset() {
	g.state = game.NewStateManager(g.setup(), g.settings)
	if g.turn != game.Blue {
		g.state.SetTurn(g.turn)
	}
}

// Reset discards the game and restarts it from its initial position.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset()
	g.log.Info("game reset")
}

func (g *Game) ID() uuid.UUID { return g.id }

func (g *Game) Settings() game.Settings { return g.settings }

// Object resolves a unit or tile id.
func (g *Game) Object(id string) (game.Target, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.object(id)
}

func (g *Game) object(id string) (game.Target, bool) {
	switch {
	case game.IsUnitID(id):
		if u, ok := g.state.Unit(id); ok {
			return u, true
		}
	case game.IsTileID(id):
		if t, ok := g.state.Tile(id); ok {
			return t, true
		}
	}
	return nil, false
}

func (g *Game) unit(id string) (*game.Unit, error) {
	t, ok := g.object(id)
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownObject)
	}
	u, ok := t.(*game.Unit)
	if !ok {
		return nil, fmt.Errorf("%q is not a unit: %w", id, ErrUnknownObject)
	}
	return u, nil
}

func (g *Game) tile(id string) (*game.Tile, error) {
	t, ok := g.object(id)
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownObject)
	}
	tile, ok := t.(*game.Tile)
	if !ok {
		return nil, fmt.Errorf("%q is not a tile: %w", id, ErrUnknownObject)
	}
	return tile, nil
}

func (g *Game) TryMoveUnit(unitID, tileID string) (*game.MoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	u, err := g.unit(unitID)
	if err != nil {
		return nil, g.rejected(game.CommandMove, unitID, tileID, err)
	}
	tile, err := g.tile(tileID)
	if err != nil {
		return nil, g.rejected(game.CommandMove, unitID, tileID, err)
	}
	res, err := g.state.TryMoveUnit(u, tile)
	if err != nil {
		return nil, g.rejected(game.CommandMove, unitID, tileID, err)
	}
	g.accepted(game.CommandMove, unitID, tileID)
	return res, nil
}

func (g *Game) TryCaptureUnit(unitID, victimID string) (*game.CaptureResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	u, victim, err := g.unitPair(unitID, victimID)
	if err != nil {
		return nil, g.rejected(game.CommandCapture, unitID, victimID, err)
	}
	res, err := g.state.TryTakeUnit(u, victim)
	if err != nil {
		return nil, g.rejected(game.CommandCapture, unitID, victimID, err)
	}
	g.accepted(game.CommandCapture, unitID, victimID)
	return res, nil
}

func (g *Game) TryEnPassant(unitID, victimID string) (*game.EnPassantResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	u, victim, err := g.unitPair(unitID, victimID)
	if err != nil {
		return nil, g.rejected(game.CommandEnPassant, unitID, victimID, err)
	}
	res, err := g.state.TryEnPassant(u, victim)
	if err != nil {
		return nil, g.rejected(game.CommandEnPassant, unitID, victimID, err)
	}
	g.accepted(game.CommandEnPassant, unitID, victimID)
	return res, nil
}

func (g *Game) TryCastingSpell(unitID, targetID string) (*game.CastResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	u, err := g.unit(unitID)
	if err != nil {
		return nil, g.rejected(game.CommandSpell, unitID, targetID, err)
	}
	target, ok := g.object(targetID)
	if !ok {
		return nil, g.rejected(game.CommandSpell, unitID, targetID, fmt.Errorf("%q: %w", targetID, ErrUnknownObject))
	}
	res, err := g.state.TryCastingSpell(u, target)
	if err != nil {
		return nil, g.rejected(game.CommandSpell, unitID, targetID, err)
	}
	g.accepted(game.CommandSpell, unitID, targetID)
	return res, nil
}

func (g *Game) unitPair(unitID, victimID string) (*game.Unit, *game.Unit, error) {
	u, err := g.unit(unitID)
	if err != nil {
		return nil, nil, err
	}
	victim, err := g.unit(victimID)
	if err != nil {
		return nil, nil, err
	}
	return u, victim, nil
}

// Apply plays a move given by ids, such as one returned by GetBestMove.
func (g *Game) Apply(m bot.Move) (game.Result, error) {
	var (
		res game.Result
		err error
	)
	switch m.Kind {
	case game.CommandMove:
		var r *game.MoveResult
		if r, err = g.TryMoveUnit(m.UnitID, m.TargetID); err == nil {
			res = r
		}
	case game.CommandCapture:
		var r *game.CaptureResult
		if r, err = g.TryCaptureUnit(m.UnitID, m.TargetID); err == nil {
			res = r
		}
	case game.CommandEnPassant:
		var r *game.EnPassantResult
		if r, err = g.TryEnPassant(m.UnitID, m.TargetID); err == nil {
			res = r
		}
	case game.CommandSpell:
		var r *game.CastResult
		if r, err = g.TryCastingSpell(m.UnitID, m.TargetID); err == nil {
			res = r
		}
	default:
		err = fmt.Errorf("apply %s: %w", m.Kind, game.ErrMoveNotAvailable)
	}
	return res, err
}

// GetBestMove asks the bot for the side to move. depth < 1 uses the bot's
// configured depth.
func (g *Game) GetBestMove(depth int) (bot.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.settings.EnableBot || g.bot == nil {
		return bot.Move{}, ErrBotDisabled
	}
	return g.search(g.bot, depth)
}

// Search asks b instead of the game's own bot. It ignores EnableBot.
func (g *Game) Search(b *bot.Bot, depth int) (bot.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.search(b, depth)
}

func (g *Game) search(b *bot.Bot, depth int) (bot.Move, error) {
	if g.state.Status().Over() {
		return bot.Move{}, ErrNoMove
	}
	m, ok, err := b.BestMove(g.state, depth)
	if err != nil {
		return bot.Move{}, err
	}
	if !ok {
		return bot.Move{}, ErrNoMove
	}
	return m, nil
}

// Actions lists every action available to the side to move.
func (g *Game) Actions() []bot.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	actions := g.state.Actions()
	out := make([]bot.Move, len(actions))
	for i, a := range actions {
		out[i] = bot.MoveOf(a)
	}
	return out
}

// UnitMoves returns the tile and unit ids unitID may act on with a move,
// capture or en passant.
func (g *Game) UnitMoves(unitID string) (game.MovesState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	u, err := g.unit(unitID)
	if err != nil {
		return game.MovesState{}, err
	}
	return g.state.UnitMoves(u).State(), nil
}

// UnitCasts returns the ids unitID's spell may target.
func (g *Game) UnitCasts(unitID string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	u, err := g.unit(unitID)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, t := range g.state.UnitCasts(u) {
		out = append(out, t.ObjectID())
	}
	return out, nil
}

// Undo takes back the last action.
func (g *Game) Undo() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	ok := g.state.Undo()
	if ok {
		g.log.Debug("action undone")
	}
	return ok
}

func (g *Game) Snapshot() game.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Snapshot()
}

func (g *Game) Status() game.Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Status()
}

func (g *Game) Turn() game.Color {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Turn()
}

func (g *Game) IsCheck() bool { return g.Status().Check }
func (g *Game) IsMate() bool { return g.Status().Mate }
func (g *Game) IsStaleMate() bool { return g.Status().Stalemate }
func (g *Game) Is50MoveRule() bool { return g.Status().FiftyMoveRule }
func (g *Game) IsInsufficientMaterial() bool { return g.Status().InsufficientMaterial }

func (g *Game) accepted(kind game.CommandKind, unitID, targetID string) {
	st := g.state.Status()
	g.log.Debug("action accepted",
		zap.Stringer("kind", kind),
		zap.String("unit", unitID),
		zap.String("target", targetID),
		zap.Stringer("turn", st.Turn),
		zap.Stringer("status", st),
	)
}

func (g *Game) rejected(kind game.CommandKind, unitID, targetID string, err error) error {
	g.log.Debug("action rejected",
		zap.Stringer("kind", kind),
		zap.String("unit", unitID),
		zap.String("target", targetID),
		zap.Error(err),
	)
	return err
}
