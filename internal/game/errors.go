// path: internal/game/errors.go
package game

import "errors"

var (
	ErrUnknownUnit        = errors.New("unknown unit")
	ErrUnitCaptured       = errors.New("unit is captured")
	ErrWrongTurn          = errors.New("not this color's turn")
	ErrMoveNotAvailable   = errors.New("move not available")
	ErrTargetNotAvailable = errors.New("spell target not available")
	ErrPrincessTarget     = errors.New("princess cannot be taken")
	ErrNoSpell            = errors.New("unit has no spell")
	ErrSpellUsed          = errors.New("spell already used")
	ErrSquareOccupied     = errors.New("square occupied")
	ErrDuplicateUnit      = errors.New("duplicate unit id")
	ErrInvalidSquare      = errors.New("invalid square")
	ErrGameOver           = errors.New("game is over")
)
