package game

// TurnFinishedCommand settles the position after an action: it expires stale
// en-passant windows, advances the half-move clock, records the action, flips
// the turn and recomputes every cache. Undo restores all of it.
type TurnFinishedCommand struct {
	sm     *StateManager
	action Command

	prev    turnState
	expired []*Unit
}

type turnState struct {
	turn      Color
	halfMoves int
	status    Status
	validator validatorState
	spells    spellState
}

func newTurnFinishedCommand(sm *StateManager, action Command) *TurnFinishedCommand {
	return &TurnFinishedCommand{sm: sm, action: action}
}

func (c *TurnFinishedCommand) Kind() CommandKind { return CommandTurnFinished }

func (c *TurnFinishedCommand) Execute() {
	sm := c.sm
	c.prev = turnState{
		turn:      sm.turn,
		halfMoves: sm.halfMoves,
		status:    sm.status,
		validator: sm.validator.state(),
		spells:    sm.spells.state(),
	}

	var opened *Unit
	if mv, ok := c.action.(*MoveCommand); ok && mv.doubleStep {
		opened = mv.unit
	}
	c.expired = c.expired[:0]
	for _, u := range sm.board.units {
		if u.EnPassant && u != opened {
			u.EnPassant = false
			c.expired = append(c.expired, u)
		}
	}

	if r, ok := c.action.(clockResetter); ok && r.resetsClock() {
		sm.halfMoves = 0
	} else {
		sm.halfMoves++
	}

	sm.history = append(sm.history, historyEntry{action: c.action, finish: c})
	sm.turn = sm.turn.Opposite()
	sm.refresh()
}

func (c *TurnFinishedCommand) Undo() {
	sm := c.sm
	sm.history = sm.history[:len(sm.history)-1]
	for _, u := range c.expired {
		u.EnPassant = true
	}
	sm.turn = c.prev.turn
	sm.halfMoves = c.prev.halfMoves
	sm.status = c.prev.status
	sm.validator.restore(c.prev.validator)
	sm.spells.restore(c.prev.spells)
}
