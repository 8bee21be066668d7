// path: internal/game/state_manager.go
package game

import "fmt"

// Action is one playable move, capture, en passant or cast.
type Action struct {
	Kind   CommandKind
	Unit   *Unit
	Target Target
}

func (a Action) String() string {
	target := "<nil>"
	if a.Target != nil {
		target = a.Target.ObjectID()
	}
	unit := "<nil>"
	if a.Unit != nil {
		unit = a.Unit.ID
	}
	return fmt.Sprintf("%s %s %s", a.Kind, unit, target)
}

// Ply is an applied action together with its turn finish.
type Ply struct {
	action Command
	finish *TurnFinishedCommand
}

// Undo reverts the turn finish and then the action.
func (p *Ply) Undo() {
	p.finish.Undo()
	p.action.Undo()
}

func (p *Ply) Action() Command { return p.action }

type historyEntry struct {
	action Command
	finish *TurnFinishedCommand
}

// StateManager sequences turns. It validates requested actions against the
// cached moves and casts, executes them and finishes the turn.
type StateManager struct {
	board     *Board
	validator *Validator
	spells    *SpellManager
	settings  Settings

	turn      Color
	history   []historyEntry
	halfMoves int
	status    Status
}

// NewStateManager takes ownership of b. Blue moves first.
func NewStateManager(b *Board, settings Settings) *StateManager {
	sm := &StateManager{board: b, settings: settings, turn: Blue}
	sm.validator = newValidator(b, &sm.settings)
	sm.spells = newSpellManager(b, sm.validator, &sm.settings)
	sm.validator.spells = sm.spells
	sm.refresh()
	return sm
}

// NewStandardGame returns a state manager over the standard starting position.
func NewStandardGame(settings Settings) *StateManager {
	return NewStateManager(NewBoard(), settings)
}

// SetTurn chooses the side to move of a constructed position. It only
// applies before the first action.
func (sm *StateManager) SetTurn(color Color) {
	if len(sm.history) > 0 {
		panic("SetTurn after the first action")
	}
	sm.turn = color
	sm.refresh()
}

func (sm *StateManager) refresh() {
	sm.validator.Update(sm.turn)
	sm.spells.Update(sm.turn)
	sm.updateGameStatus()
}

func (sm *StateManager) Board() *Board { return sm.board }
func (sm *StateManager) Settings() Settings { return sm.settings }
func (sm *StateManager) Turn() Color { return sm.turn }
func (sm *StateManager) Status() Status { return sm.status }
func (sm *StateManager) AllUnits() []*Unit { return sm.board.units }
func (sm *StateManager) Validator() *Validator { return sm.validator }
func (sm *StateManager) Spells() *SpellManager { return sm.spells }

// Unit looks up a unit by id, captured or not.
func (sm *StateManager) Unit(id string) (*Unit, bool) { return sm.board.Unit(id) }

// Tile looks up a tile by id.
func (sm *StateManager) Tile(id string) (*Tile, bool) { return sm.board.TileByID(id) }

func (sm *StateManager) IsCheck() bool { return sm.status.Check }
func (sm *StateManager) IsMate() bool { return sm.status.Mate }
func (sm *StateManager) IsStaleMate() bool { return sm.status.Stalemate }
func (sm *StateManager) Is50MoveRule() bool { return sm.status.FiftyMoveRule }
func (sm *StateManager) IsInsufficientMaterial() bool { return sm.status.InsufficientMaterial }

// History returns the applied actions, oldest first.
func (sm *StateManager) History() []Command {
	out := make([]Command, len(sm.history))
	for i, entry := range sm.history {
		out[i] = entry.action
	}
	return out
}

// UnitMoves returns the moves u may make now. Units of the side not to move
// are evaluated on demand.
func (sm *StateManager) UnitMoves(u *Unit) Moves {
	if u == nil || u.Captured {
		return Moves{}
	}
	if u.Color == sm.turn {
		return sm.validator.UnitMoves(u)
	}
	if sm.settings.ValidateMoves {
		return sm.validator.legalMoves(u)
	}
	return sm.validator.rawMoves(u)
}

// UnitCasts returns the targets u's spell may aim at now.
func (sm *StateManager) UnitCasts(u *Unit) []Target {
	if u == nil || !sm.spells.ready(u) {
		return nil
	}
	if u.Color == sm.turn {
		return sm.spells.UnitCasts(u)
	}
	return sm.spells.targets(u, sm.settings.ValidateMoves)
}

func (sm *StateManager) TryMoveUnit(u *Unit, tile *Tile) (*MoveResult, error) {
	cmd, err := sm.prepare(Action{Kind: CommandMove, Unit: u, Target: tile})
	if err != nil {
		return nil, err
	}
	sm.commit(cmd)
	return newMoveResult(cmd.(*MoveCommand)), nil
}

func (sm *StateManager) TryTakeUnit(u, victim *Unit) (*CaptureResult, error) {
	cmd, err := sm.prepare(Action{Kind: CommandCapture, Unit: u, Target: victim})
	if err != nil {
		return nil, err
	}
	sm.commit(cmd)
	return newCaptureResult(cmd.(*CaptureCommand)), nil
}

func (sm *StateManager) TryEnPassant(u, victim *Unit) (*EnPassantResult, error) {
	cmd, err := sm.prepare(Action{Kind: CommandEnPassant, Unit: u, Target: victim})
	if err != nil {
		return nil, err
	}
	sm.commit(cmd)
	return newEnPassantResult(cmd.(*EnPassantCommand)), nil
}

func (sm *StateManager) TryCastingSpell(u *Unit, target Target) (*CastResult, error) {
	cmd, err := sm.prepare(Action{Kind: CommandSpell, Unit: u, Target: target})
	if err != nil {
		return nil, err
	}
	sm.commit(cmd)
	return newCastResult(cmd.(*SpellCommand)), nil
}

// Play applies an action and finishes the turn. The returned ply undoes both.
func (sm *StateManager) Play(a Action) (*Ply, error) {
	cmd, err := sm.prepare(a)
	if err != nil {
		return nil, err
	}
	finish := sm.commit(cmd)
	return &Ply{action: cmd, finish: finish}, nil
}

// Undo takes back the last applied action.
func (sm *StateManager) Undo() bool {
	if len(sm.history) == 0 {
		return false
	}
	last := sm.history[len(sm.history)-1]
	last.finish.Undo()
	last.action.Undo()
	return true
}

// Actions lists every action the side to move may take, in arena order.
func (sm *StateManager) Actions() []Action {
	var out []Action
	for _, u := range sm.board.units {
		if u.Captured || u.Color != sm.turn {
			continue
		}
		moves := sm.validator.UnitMoves(u)
		for _, tile := range moves.Tiles {
			out = append(out, Action{Kind: CommandMove, Unit: u, Target: tile})
		}
		for _, victim := range moves.Units {
			if victim.Kind == Princess {
				continue
			}
			out = append(out, Action{Kind: CommandCapture, Unit: u, Target: victim})
		}
		if moves.EnPassant != nil {
			out = append(out, Action{Kind: CommandEnPassant, Unit: u, Target: moves.EnPassant})
		}
		for _, target := range sm.spells.UnitCasts(u) {
			out = append(out, Action{Kind: CommandSpell, Unit: u, Target: target})
		}
	}
	return out
}

func (sm *StateManager) prepare(a Action) (Command, error) {
	if sm.status.Over() {
		return nil, ErrGameOver
	}
	u := a.Unit
	if u == nil {
		return nil, ErrUnknownUnit
	}
	if u.Captured {
		return nil, ErrUnitCaptured
	}
	if sm.settings.ValidatePlayerColor && u.Color != sm.turn {
		return nil, ErrWrongTurn
	}

	// Targets are always checked against the cache, raw when ValidateMoves is off.
	switch a.Kind {
	case CommandMove:
		tile, ok := a.Target.(*Tile)
		if !ok || !sm.UnitMoves(u).HasTile(tile) {
			return nil, ErrMoveNotAvailable
		}
		return newMoveCommand(sm.board, u, tile.Square), nil
	case CommandCapture:
		victim, ok := a.Target.(*Unit)
		if !ok || victim == nil {
			return nil, ErrMoveNotAvailable
		}
		if victim.Kind == Princess {
			return nil, ErrPrincessTarget
		}
		if !sm.UnitMoves(u).HasUnit(victim) {
			return nil, ErrMoveNotAvailable
		}
		return newCaptureCommand(sm.board, u, victim), nil
	case CommandEnPassant:
		victim, ok := a.Target.(*Unit)
		if !ok || victim == nil || sm.UnitMoves(u).EnPassant != victim {
			return nil, ErrMoveNotAvailable
		}
		return newEnPassantCommand(sm.board, u, victim), nil
	case CommandSpell:
		if sm.spells.spellFor(u) == nil {
			return nil, ErrNoSpell
		}
		if !sm.spells.ready(u) {
			return nil, ErrSpellUsed
		}
		if a.Target == nil || !containsTarget(sm.UnitCasts(u), a.Target) {
			return nil, ErrTargetNotAvailable
		}
		return newSpellCommand(sm.spells, u, a.Target), nil
	default:
		return nil, fmt.Errorf("unsupported action %s: %w", a.Kind, ErrMoveNotAvailable)
	}
}

func (sm *StateManager) commit(cmd Command) *TurnFinishedCommand {
	cmd.Execute()
	finish := newTurnFinishedCommand(sm, cmd)
	finish.Execute()
	if sm.settings.CheckInvariants {
		if err := sm.board.CheckInvariants(); err != nil {
			panic(fmt.Sprintf("board invariant violated after %s: %v", cmd.Kind(), err))
		}
	}
	return finish
}

func containsTarget(targets []Target, target Target) bool {
	for _, t := range targets {
		if t == target {
			return true
		}
	}
	return false
}
