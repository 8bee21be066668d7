// path: internal/game/commands.go
package game

import "runechess/internal/shared"

// Command is a reversible change to the board. Undo must follow Execute and
// restores every field Execute touched.
type Command interface {
	Execute()
	Undo()
	Kind() CommandKind
}

// clockResetter is implemented by commands that reset the half-move clock.
type clockResetter interface {
	resetsClock() bool
}

// MoveCommand moves a unit to an empty tile, opening an en-passant window on
// a peasant double step and promoting a peasant that reaches the far row.
type MoveCommand struct {
	board *Board
	unit  *Unit
	to    Square

	delta      delta
	from       Square
	peasant    bool
	doubleStep bool
	promote    *PromotePeasantCommand
}

func newMoveCommand(b *Board, u *Unit, to Square) *MoveCommand {
	return &MoveCommand{board: b, unit: u, to: to}
}

func (c *MoveCommand) Kind() CommandKind { return CommandMove }

func (c *MoveCommand) Execute() {
	u := c.unit
	c.delta.reset()
	c.delta.recordUnit(u)
	c.from = u.Square
	c.peasant = u.Kind == Peasant
	c.doubleStep = false
	c.promote = nil

	c.board.relocate(u, c.to)
	u.Moved = true

	if c.peasant && absInt(c.to.Row()-c.from.Row()) == 2 && c.to.Column() == c.from.Column() {
		mid, _ := shared.SquareFromCoords((c.from.Row()+c.to.Row())/2, c.from.Column())
		u.EnPassant = true
		u.EnPassantSquare = mid
		c.doubleStep = true
	}

	if tile := c.board.Tile(c.to); tile.Destroyed {
		c.board.setCaptured(u, true)
		return
	}

	if c.peasant && c.to.Row() == promotionRow(u.Color) {
		c.promote = &PromotePeasantCommand{board: c.board, unitID: u.ID}
		c.promote.Execute()
	}
}

func (c *MoveCommand) Undo() {
	if c.promote != nil {
		c.promote.Undo()
	}
	c.delta.apply(c.board)
}

func (c *MoveCommand) resetsClock() bool { return c.peasant }

func (c *MoveCommand) Unit() *Unit { return c.unit }
func (c *MoveCommand) From() Square { return c.from }
func (c *MoveCommand) To() Square { return c.to }
func (c *MoveCommand) Promoted() bool { return c.promote != nil }
func (c *MoveCommand) DoubleStep() bool { return c.doubleStep }

func promotionRow(color Color) int {
	if color == Blue {
		return shared.Rows - 1
	}
	return 0
}

// PromotePeasantCommand turns a peasant into a King-kind unit with the same id.
type PromotePeasantCommand struct {
	board  *Board
	unitID string
	prev   UnitKind
}

func (c *PromotePeasantCommand) Kind() CommandKind { return CommandPromote }

func (c *PromotePeasantCommand) Execute() {
	u, ok := c.board.Unit(c.unitID)
	if !ok {
		panic("promote: unknown unit " + c.unitID)
	}
	c.prev = u.Kind
	u.Kind = King
}

func (c *PromotePeasantCommand) Undo() {
	u, ok := c.board.Unit(c.unitID)
	if !ok {
		panic("promote undo: unknown unit " + c.unitID)
	}
	u.Kind = c.prev
}

// captureUnit marks victim captured where it stands and records it as the
// tile's last captured unit.
func captureUnit(b *Board, d *delta, victim *Unit) {
	tile := b.Tile(victim.Square)
	d.recordUnit(victim)
	d.recordTile(tile)
	victim.EnPassant = false
	b.setCaptured(victim, true)
	tile.LastCaptured = victim
}

// CaptureCommand takes an enemy unit and moves onto its tile.
type CaptureCommand struct {
	board  *Board
	unit   *Unit
	victim *Unit

	delta delta
	move  *MoveCommand
}

func newCaptureCommand(b *Board, u, victim *Unit) *CaptureCommand {
	return &CaptureCommand{board: b, unit: u, victim: victim}
}

func (c *CaptureCommand) Kind() CommandKind { return CommandCapture }

func (c *CaptureCommand) Execute() {
	c.delta.reset()
	to := c.victim.Square
	captureUnit(c.board, &c.delta, c.victim)
	c.move = newMoveCommand(c.board, c.unit, to)
	c.move.Execute()
}

func (c *CaptureCommand) Undo() {
	c.move.Undo()
	c.delta.apply(c.board)
}

func (c *CaptureCommand) resetsClock() bool { return true }

func (c *CaptureCommand) Unit() *Unit { return c.unit }
func (c *CaptureCommand) Victim() *Unit { return c.victim }
func (c *CaptureCommand) Move() *MoveCommand { return c.move }

// EnPassantCommand takes a peasant that just double-stepped, landing on the
// square it skipped.
type EnPassantCommand struct {
	board  *Board
	unit   *Unit
	victim *Unit

	delta delta
	move  *MoveCommand
}

func newEnPassantCommand(b *Board, u, victim *Unit) *EnPassantCommand {
	return &EnPassantCommand{board: b, unit: u, victim: victim}
}

func (c *EnPassantCommand) Kind() CommandKind { return CommandEnPassant }

func (c *EnPassantCommand) Execute() {
	c.delta.reset()
	landing := c.victim.EnPassantSquare
	captureUnit(c.board, &c.delta, c.victim)
	c.move = newMoveCommand(c.board, c.unit, landing)
	c.move.Execute()
}

func (c *EnPassantCommand) Undo() {
	c.move.Undo()
	c.delta.apply(c.board)
}

func (c *EnPassantCommand) resetsClock() bool { return true }

func (c *EnPassantCommand) Unit() *Unit { return c.unit }
func (c *EnPassantCommand) Victim() *Unit { return c.victim }
func (c *EnPassantCommand) Move() *MoveCommand { return c.move }

// SpellCommand casts the caster's spell and spends it.
type SpellCommand struct {
	spells *SpellManager
	caster *Unit
	target Target

	spell    Spell
	effect   *Effect
	prevUsed bool
}

func newSpellCommand(m *SpellManager, caster *Unit, target Target) *SpellCommand {
	return &SpellCommand{spells: m, caster: caster, target: target, spell: m.spellFor(caster)}
}

func (c *SpellCommand) Kind() CommandKind { return CommandSpell }

func (c *SpellCommand) Execute() {
	c.prevUsed = c.caster.UsedSpell
	c.effect = c.spell.Cast(c.caster, c.target)
	if !c.spells.settings.UnlimitedSpells {
		c.caster.UsedSpell = true
	}
}

func (c *SpellCommand) Undo() {
	c.caster.UsedSpell = c.prevUsed
	c.effect.Undo()
}

func (c *SpellCommand) resetsClock() bool { return c.effect != nil && c.effect.captured > 0 }

func (c *SpellCommand) Caster() *Unit { return c.caster }
func (c *SpellCommand) Target() Target { return c.target }
func (c *SpellCommand) Spell() SpellKind { return c.spell.Kind() }
func (c *SpellCommand) Effect() *Effect { return c.effect }
