// path: internal/game/types.go
package game

import (
	"fmt"
	"strings"

	"runechess/internal/shared"
)

type (
	Color     = shared.Color
	Square    = shared.Square
	Direction = shared.Direction
)

const (
	Blue = shared.Blue
	Red  = shared.Red
)

type UnitKind uint8

const (
	Peasant UnitKind = iota
	Knight
	Priest
	Mage
	Princess
	Rogue
	King
	Dragon
	Druid
	Wolf
)

// NumKinds is the number of unit kinds.
const NumKinds = int(Wolf) + 1

var unitKindNames = [NumKinds]string{
	"Peasant", "Knight", "Priest", "Mage", "Princess",
	"Rogue", "King", "Dragon", "Druid", "Wolf",
}

func (k UnitKind) String() string {
	if int(k) < NumKinds {
		return unitKindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

func ParseUnitKind(s string) (UnitKind, bool) {
	for i, name := range unitKindNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return UnitKind(i), true
		}
	}
	return 0, false
}

func (k UnitKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *UnitKind) UnmarshalText(text []byte) error {
	parsed, ok := ParseUnitKind(string(text))
	if !ok {
		return fmt.Errorf("unknown unit kind %q", text)
	}
	*k = parsed
	return nil
}

// Spell returns the spell a unit of this kind carries, if any.
func (k UnitKind) Spell() SpellKind {
	switch k {
	case Princess:
		return SpellCastle
	case King:
		return SpellSacrifice
	case Rogue:
		return SpellShadowstep
	case Priest:
		return SpellResurrection
	case Mage:
		return SpellDestroyTile
	case Knight:
		return SpellPowerStomp
	default:
		return SpellNone
	}
}

type SpellKind uint8

const (
	SpellNone SpellKind = iota
	SpellCastle
	SpellSacrifice
	SpellShadowstep
	SpellResurrection
	SpellDestroyTile
	SpellPowerStomp
)

var spellKindNames = [...]string{
	"None", "Castle", "Sacrifice", "Shadowstep", "Resurrection", "DestroyTile", "PowerStomp",
}

func (s SpellKind) String() string {
	if int(s) < len(spellKindNames) {
		return spellKindNames[s]
	}
	return fmt.Sprintf("spell(%d)", s)
}

func (s SpellKind) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// MoveType marks a cell of a movement pattern.
type MoveType int8

const (
	NoMovement MoveType = iota
	MoveOrTake
	OnlyTake
	OnlyMove
	Slide
)

func (m MoveType) String() string {
	switch m {
	case NoMovement:
		return "none"
	case MoveOrTake:
		return "move-or-take"
	case OnlyTake:
		return "only-take"
	case OnlyMove:
		return "only-move"
	case Slide:
		return "slide"
	default:
		return "?"
	}
}

type CommandKind uint8

const (
	CommandMove CommandKind = iota
	CommandCapture
	CommandEnPassant
	CommandSpell
	CommandPromote
	CommandTurnFinished
)

func (c CommandKind) String() string {
	switch c {
	case CommandMove:
		return "move"
	case CommandCapture:
		return "take"
	case CommandEnPassant:
		return "enpassant"
	case CommandSpell:
		return "cast"
	case CommandPromote:
		return "promote"
	case CommandTurnFinished:
		return "turn"
	default:
		return "?"
	}
}

func ParseCommandKind(s string) (CommandKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "move":
		return CommandMove, true
	case "take", "capture":
		return CommandCapture, true
	case "enpassant", "en-passant":
		return CommandEnPassant, true
	case "cast", "spell":
		return CommandSpell, true
	default:
		return CommandMove, false
	}
}

func (c CommandKind) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *CommandKind) UnmarshalText(text []byte) error {
	parsed, ok := ParseCommandKind(string(text))
	if !ok {
		return fmt.Errorf("unknown command kind %q", text)
	}
	*c = parsed
	return nil
}
