// path: internal/game/board.go
// Package game implements the runechess rules: board model, move validation,
// spells, reversible commands and turn sequencing.
package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"runechess/internal/shared"
)

const (
	unitPrefix = "unit_"
	tilePrefix = "tile_"
)

// Target is anything an action can aim at: a Tile or a Unit.
type Target interface {
	ObjectID() string
	Position() Square
}

// Tile is one board square. Only Destroyed and LastCaptured ever change.
type Tile struct {
	Square       Square
	Destroyed    bool
	LastCaptured *Unit
}

func (t *Tile) ObjectID() string { return TileID(t.Square) }
func (t *Tile) Position() Square { return t.Square }
func (t *Tile) String() string { return t.ObjectID() }

// Unit is a piece on the board. Units are never removed; capture only flips Captured.
type Unit struct {
	ID        string
	Kind      UnitKind
	Color     Color
	Square    Square
	Moved     bool
	Captured  bool
	UsedSpell bool

	// Peasant double-step vulnerability for the opponent's next turn.
	EnPassant       bool
	EnPassantSquare Square

	slot int
}

func (u *Unit) ObjectID() string { return u.ID }
func (u *Unit) Position() Square { return u.Square }
func (u *Unit) Alive() bool { return !u.Captured }
func (u *Unit) String() string { return fmt.Sprintf("%s(%s %s@%s)", u.ID, u.Color, u.Kind, u.Square) }

// Board owns every tile and unit of a game. Units live in an arena whose
// index (slot) never changes.
type Board struct {
	tiles [shared.NumSquares]Tile
	units []*Unit
	byID  map[string]*Unit
	grid  [shared.NumSquares]*Unit
}

// backRank is Blue's first row from column 0; Red mirrors it.
var backRank = [shared.Columns]UnitKind{
	Mage, Rogue, Knight, King, Princess, Knight, Priest, Rogue, Mage,
}

// NewEmptyBoard returns a board with tiles and no units.
func NewEmptyBoard() *Board {
	b := &Board{byID: make(map[string]*Unit)}
	for i := range b.tiles {
		b.tiles[i].Square = Square(i)
	}
	return b
}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	b := NewEmptyBoard()
	for col, kind := range backRank {
		b.mustPlace(kind, Blue, 0, col)
	}
	for col := 0; col < shared.Columns; col++ {
		b.mustPlace(Peasant, Blue, 1, col)
	}
	for col := 0; col < shared.Columns; col++ {
		b.mustPlace(Peasant, Red, shared.Rows-2, col)
	}
	for col, kind := range backRank {
		b.mustPlace(kind, Red, shared.Rows-1, shared.Columns-1-col)
	}
	return b
}

func (b *Board) mustPlace(kind UnitKind, color Color, row, col int) {
	sq, ok := shared.SquareFromCoords(row, col)
	if !ok {
		panic(fmt.Sprintf("setup square %d,%d off board", row, col))
	}
	if _, err := b.Place(kind, color, sq); err != nil {
		panic(err)
	}
}

// Place adds a new unit. Its id derives from the placement square.
func (b *Board) Place(kind UnitKind, color Color, sq Square) (*Unit, error) {
	if !sq.Valid() {
		return nil, ErrInvalidSquare
	}
	if b.grid[sq] != nil || b.tiles[sq].Destroyed {
		return nil, fmt.Errorf("place %s at %s: %w", kind, sq, ErrSquareOccupied)
	}
	id := UnitID(sq)
	if _, exists := b.byID[id]; exists {
		return nil, fmt.Errorf("place %s at %s: %w", kind, sq, ErrDuplicateUnit)
	}
	u := &Unit{
		ID:        id,
		Kind:      kind,
		Color:     color,
		Square:    sq,
		UsedSpell: kind == Peasant,
		slot:      len(b.units),
	}
	b.units = append(b.units, u)
	b.byID[id] = u
	b.grid[sq] = u
	return u, nil
}

// DestroyTile marks a tile destroyed during setup of a constructed position.
func (b *Board) DestroyTile(sq Square) error {
	if !sq.Valid() {
		return ErrInvalidSquare
	}
	if b.grid[sq] != nil {
		return ErrSquareOccupied
	}
	b.tiles[sq].Destroyed = true
	b.tiles[sq].LastCaptured = nil
	return nil
}

func (b *Board) Tile(sq Square) *Tile { return &b.tiles[sq] }

func (b *Board) TileByID(id string) (*Tile, bool) {
	prefix, sq, ok := ParseObjectID(id)
	if !ok || prefix != tilePrefix {
		return nil, false
	}
	return &b.tiles[sq], true
}

func (b *Board) Unit(id string) (*Unit, bool) {
	u, ok := b.byID[id]
	return u, ok
}

// UnitAt returns the living unit on sq, if any.
func (b *Board) UnitAt(sq Square) *Unit { return b.grid[sq] }

// Units returns every unit, captured or not, in arena order.
func (b *Board) Units() []*Unit { return b.units }

// Princesses returns the Princess-kind units of a color, captured included.
func (b *Board) Princesses(color Color) []*Unit {
	var out []*Unit
	for _, u := range b.units {
		if u.Kind == Princess && u.Color == color {
			out = append(out, u)
		}
	}
	return out
}

// free reports whether sq is on the board, undestroyed and empty.
func (b *Board) free(sq Square) bool {
	return b.grid[sq] == nil && !b.tiles[sq].Destroyed
}

func (b *Board) relocate(u *Unit, sq Square) {
	if !u.Captured && b.grid[u.Square] == u {
		b.grid[u.Square] = nil
	}
	u.Square = sq
	if !u.Captured {
		b.grid[sq] = u
	}
}

func (b *Board) setCaptured(u *Unit, captured bool) {
	if captured && b.grid[u.Square] == u {
		b.grid[u.Square] = nil
	}
	u.Captured = captured
	if !captured {
		b.grid[u.Square] = u
	}
}

// reindex rebuilds the occupancy grid from the unit list.
func (b *Board) reindex() {
	b.grid = [shared.NumSquares]*Unit{}
	for _, u := range b.units {
		if !u.Captured {
			b.grid[u.Square] = u
		}
	}
}

// CheckInvariants reports every structural inconsistency of the board.
func (b *Board) CheckInvariants() error {
	var result *multierror.Error
	var seen [shared.NumSquares]*Unit
	for _, u := range b.units {
		if b.units[u.slot] != u {
			result = multierror.Append(result, fmt.Errorf("%s: slot %d mismatch", u.ID, u.slot))
		}
		if b.byID[u.ID] != u {
			result = multierror.Append(result, fmt.Errorf("%s: id index mismatch", u.ID))
		}
		if u.Captured {
			if b.grid[u.Square] == u {
				result = multierror.Append(result, fmt.Errorf("%s: captured unit still on grid", u.ID))
			}
			continue
		}
		if other := seen[u.Square]; other != nil {
			result = multierror.Append(result, fmt.Errorf("%s and %s share %s", other.ID, u.ID, u.Square))
		}
		seen[u.Square] = u
		if b.grid[u.Square] != u {
			result = multierror.Append(result, fmt.Errorf("%s: grid out of sync at %s", u.ID, u.Square))
		}
		if b.tiles[u.Square].Destroyed {
			result = multierror.Append(result, fmt.Errorf("%s: living unit on destroyed tile %s", u.ID, u.Square))
		}
	}
	for sq, u := range b.grid {
		if u != nil && seen[sq] != u {
			result = multierror.Append(result, fmt.Errorf("grid holds stale %s at %s", u.ID, Square(sq)))
		}
	}
	return result.ErrorOrNil()
}

func UnitID(sq Square) string { return unitPrefix + strconv.Itoa(sq.Row()) + strconv.Itoa(sq.Column()) }
func TileID(sq Square) string { return tilePrefix + strconv.Itoa(sq.Row()) + strconv.Itoa(sq.Column()) }

// ParseObjectID splits "unit_RC" or "tile_RC" into its prefix and square.
func ParseObjectID(id string) (prefix string, sq Square, ok bool) {
	switch {
	case strings.HasPrefix(id, unitPrefix):
		prefix = unitPrefix
	case strings.HasPrefix(id, tilePrefix):
		prefix = tilePrefix
	default:
		return "", 0, false
	}
	rest := id[len(prefix):]
	if len(rest) != 2 || rest[0] < '0' || rest[0] > '9' || rest[1] < '0' || rest[1] > '9' {
		return "", 0, false
	}
	sq, ok = shared.SquareFromCoords(int(rest[0]-'0'), int(rest[1]-'0'))
	if !ok {
		return "", 0, false
	}
	return prefix, sq, true
}

// IsUnitID reports whether id lives in the unit namespace.
func IsUnitID(id string) bool { return strings.HasPrefix(id, unitPrefix) }

// IsTileID reports whether id lives in the tile namespace.
func IsTileID(id string) bool { return strings.HasPrefix(id, tilePrefix) }
