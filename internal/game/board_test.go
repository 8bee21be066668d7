package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runechess/internal/shared"
)

func sq(t testing.TB, coord string) Square {
	t.Helper()
	s, ok := shared.CoordToSquare(coord)
	if !ok {
		t.Fatalf("invalid coordinate %q", coord)
	}
	return s
}

func place(t testing.TB, b *Board, kind UnitKind, color Color, coord string) *Unit {
	t.Helper()
	u, err := b.Place(kind, color, sq(t, coord))
	if err != nil {
		t.Fatalf("place %s at %s: %v", kind, coord, err)
	}
	return u
}

func mustUnit(t testing.TB, b *Board, id string) *Unit {
	t.Helper()
	u, ok := b.Unit(id)
	if !ok {
		t.Fatalf("unknown unit %s", id)
	}
	return u
}

func mustTile(t testing.TB, b *Board, id string) *Tile {
	t.Helper()
	tile, ok := b.TileByID(id)
	if !ok {
		t.Fatalf("unknown tile %s", id)
	}
	return tile
}

func TestNewBoardLayout(t *testing.T) {
	b := NewBoard()
	require.Len(t, b.Units(), 36)
	require.NoError(t, b.CheckInvariants())

	tests := []struct {
		id    string
		kind  UnitKind
		color Color
	}{
		{"unit_00", Mage, Blue},
		{"unit_01", Rogue, Blue},
		{"unit_03", King, Blue},
		{"unit_04", Princess, Blue},
		{"unit_06", Priest, Blue},
		{"unit_14", Peasant, Blue},
		{"unit_64", Peasant, Red},
		{"unit_74", Princess, Red},
		{"unit_75", King, Red},
		{"unit_72", Priest, Red},
		{"unit_78", Mage, Red},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			u := mustUnit(t, b, tt.id)
			assert.Equal(t, tt.kind, u.Kind)
			assert.Equal(t, tt.color, u.Color)
			assert.Equal(t, tt.id, UnitID(u.Square))
			assert.False(t, u.Moved)
		})
	}
}

func TestPeasantsStartWithoutSpell(t *testing.T) {
	b := NewBoard()
	for _, u := range b.Units() {
		assert.Equal(t, u.Kind == Peasant, u.UsedSpell, u.ID)
	}
}

func TestPlaceRejectsOccupiedAndDuplicate(t *testing.T) {
	b := NewEmptyBoard()
	place(t, b, Mage, Blue, "a1")

	_, err := b.Place(Rogue, Red, sq(t, "a1"))
	require.ErrorIs(t, err, ErrSquareOccupied)

	require.NoError(t, b.DestroyTile(sq(t, "b1")))
	_, err = b.Place(Rogue, Red, sq(t, "b1"))
	require.ErrorIs(t, err, ErrSquareOccupied)

	_, err = b.Place(Rogue, Red, Square(shared.NumSquares))
	require.ErrorIs(t, err, ErrInvalidSquare)
}

func TestParseObjectID(t *testing.T) {
	tests := []struct {
		id     string
		prefix string
		square string
		ok     bool
	}{
		{"unit_00", unitPrefix, "a1", true},
		{"tile_78", tilePrefix, "i8", true},
		{"tile_34", tilePrefix, "e4", true},
		{"unit_80", "", "", false},
		{"unit_09", "", "", false},
		{"piece_11", "", "", false},
		{"tile_1", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			prefix, s, ok := ParseObjectID(tt.id)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.prefix, prefix)
			assert.Equal(t, tt.square, s.String())
		})
	}
	assert.True(t, IsUnitID("unit_12"))
	assert.True(t, IsTileID("tile_12"))
	assert.False(t, IsUnitID("tile_12"))
}

func TestCheckInvariantsReportsEveryProblem(t *testing.T) {
	b := NewEmptyBoard()
	a := place(t, b, Mage, Blue, "a1")
	c := place(t, b, Mage, Red, "c1")
	require.NoError(t, b.CheckInvariants())

	// Corrupt the board behind its back.
	c.Square = a.Square
	b.tiles[sq(t, "a1")].Destroyed = true

	err := b.CheckInvariants()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "share")
	assert.Contains(t, err.Error(), "destroyed tile")
}

func TestBitboard(t *testing.T) {
	var bb Bitboard
	for _, s := range []Square{0, 5, 63, 64, 71} {
		bb = bb.Add(s)
	}
	bb = bb.Add(5)
	assert.False(t, bb.Empty())

	var got []Square
	bb.Iter(func(s Square) { got = append(got, s) })
	assert.Equal(t, []Square{0, 5, 63, 64, 71}, got)
	assert.True(t, Bitboard{}.Empty())
}
