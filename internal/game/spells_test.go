package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func targetIDs(targets []Target) []string {
	out := make([]string, len(targets))
	for i, t := range targets {
		out[i] = t.ObjectID()
	}
	return out
}

func TestOpeningCasts(t *testing.T) {
	sm := NewStandardGame(DefaultSettings())
	b := sm.Board()

	tests := []struct {
		id    string
		count int
	}{
		{"unit_04", 3},  // castle with the peasant, king and knight beside her
		{"unit_03", 17}, // sacrifice with any ally
		{"unit_01", 1},  // shadowstep over the peasant in front
		{"unit_07", 1},
		{"unit_06", 0}, // nobody to resurrect
		{"unit_00", 36},
		{"unit_02", 0}, // no enemy to stomp
		{"unit_14", 0},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Len(t, sm.UnitCasts(mustUnit(t, b, tt.id)), tt.count)
		})
	}
	assert.Len(t, sm.UnitCasts(mustUnit(t, b, "unit_74")), 3, "off-turn casts are evaluated on demand")
}

func TestCastleWithAdjacentAlly(t *testing.T) {
	sm := NewStandardGame(DefaultSettings())
	b := sm.Board()
	princess := mustUnit(t, b, "unit_04")
	king := mustUnit(t, b, "unit_03")

	res, err := sm.TryCastingSpell(princess, king)
	require.NoError(t, err)
	assert.Equal(t, SpellCastle, res.Spell)
	assert.Len(t, res.Units, 2)
	assert.Equal(t, "d1", princess.Square.String())
	assert.Equal(t, "e1", king.Square.String())
	assert.True(t, princess.UsedSpell)
	assert.Equal(t, Red, sm.Turn())
}

func TestCastleWithDistantAlly(t *testing.T) {
	b := NewEmptyBoard()
	princess := place(t, b, Princess, Blue, "e1")
	mage := place(t, b, Mage, Blue, "a1")
	place(t, b, Princess, Red, "i8")
	sm := NewStateManager(b, DefaultSettings())

	require.Equal(t, []string{"unit_00"}, targetIDs(sm.UnitCasts(princess)))
	_, err := sm.TryCastingSpell(princess, mage)
	require.NoError(t, err)
	assert.Equal(t, "a1", princess.Square.String())
	assert.Equal(t, "b1", mage.Square.String())
}

func TestSacrifice(t *testing.T) {
	sm := NewStandardGame(DefaultSettings())
	b := sm.Board()
	king := mustUnit(t, b, "unit_03")
	peasant := mustUnit(t, b, "unit_13")

	res, err := sm.TryCastingSpell(king, peasant)
	require.NoError(t, err)
	assert.True(t, king.Captured)
	assert.Equal(t, "d2", king.Square.String())
	assert.Equal(t, "d1", peasant.Square.String())
	assert.Nil(t, mustTile(t, b, "tile_13").LastCaptured)
	assert.Equal(t, 0, sm.Status().HalfMoves)

	var captured []string
	for _, ch := range res.Units {
		if ch.Captured {
			captured = append(captured, ch.UnitID)
		}
	}
	assert.Equal(t, []string{"unit_03"}, captured)
}

func TestSacrificedKingCannotBeResurrected(t *testing.T) {
	b := NewEmptyBoard()
	king := place(t, b, King, Blue, "d1")
	ally := place(t, b, Knight, Blue, "d2")
	priest := place(t, b, Priest, Blue, "c3")
	place(t, b, Princess, Blue, "e1")
	place(t, b, Princess, Red, "i8")
	sm := NewStateManager(b, DefaultSettings())

	_, err := sm.TryCastingSpell(king, ally)
	require.NoError(t, err)
	require.True(t, king.Captured)
	assert.Nil(t, mustTile(t, b, "tile_13").LastCaptured)
	assert.Empty(t, sm.UnitCasts(priest))

	require.True(t, sm.Undo())
	assert.False(t, king.Captured)
	assert.Same(t, king, b.UnitAt(sq(t, "d1")))
	assert.Same(t, ally, b.UnitAt(sq(t, "d2")))
}

func TestShadowstep(t *testing.T) {
	b := NewEmptyBoard()
	rogue := place(t, b, Rogue, Blue, "a3")
	victim := place(t, b, Peasant, Red, "a5")
	place(t, b, Princess, Blue, "e1")
	place(t, b, Princess, Red, "i8")
	sm := NewStateManager(b, DefaultSettings())

	require.Equal(t, []string{"unit_40"}, targetIDs(sm.UnitCasts(rogue)))
	_, err := sm.TryCastingSpell(rogue, victim)
	require.NoError(t, err)
	assert.True(t, victim.Captured)
	assert.Equal(t, "a6", rogue.Square.String())
	assert.Same(t, victim, mustTile(t, b, "tile_40").LastCaptured)
}

func TestShadowstepSkipsEnemyPrincess(t *testing.T) {
	b := NewEmptyBoard()
	rogue := place(t, b, Rogue, Blue, "a3")
	place(t, b, Princess, Red, "a5")
	place(t, b, Princess, Blue, "e1")
	sm := NewStateManager(b, DefaultSettings())

	assert.Empty(t, sm.UnitCasts(rogue))
}

func TestResurrection(t *testing.T) {
	b := NewEmptyBoard()
	priest := place(t, b, Priest, Blue, "c3")
	fallen := place(t, b, Knight, Red, "d4")
	place(t, b, Princess, Blue, "e1")
	place(t, b, Princess, Red, "i8")
	captureUnit(b, &delta{}, fallen)
	sm := NewStateManager(b, DefaultSettings())

	require.Equal(t, []string{"unit_33"}, targetIDs(sm.UnitCasts(priest)))
	ply, err := sm.Play(Action{Kind: CommandSpell, Unit: priest, Target: fallen})
	require.NoError(t, err)
	assert.False(t, fallen.Captured)
	assert.Equal(t, Blue, fallen.Color)
	assert.Nil(t, mustTile(t, b, "tile_33").LastCaptured)
	assert.Same(t, fallen, b.UnitAt(fallen.Square))

	ply.Undo()
	assert.True(t, fallen.Captured)
	assert.Equal(t, Red, fallen.Color)
	assert.Same(t, fallen, mustTile(t, b, "tile_33").LastCaptured)
	assert.Nil(t, b.UnitAt(fallen.Square))
}

func TestDestroyTileIsSpentOnce(t *testing.T) {
	sm := NewStandardGame(DefaultSettings())
	b := sm.Board()
	mage := mustUnit(t, b, "unit_00")
	target := mustTile(t, b, "tile_30")

	res, err := sm.TryCastingSpell(mage, target)
	require.NoError(t, err)
	assert.Equal(t, []TileChange{{TileID: "tile_30", Destroyed: true}}, res.Tiles)
	assert.True(t, target.Destroyed)

	_, err = sm.TryMoveUnit(mustUnit(t, b, "unit_60"), mustTile(t, b, "tile_50"))
	require.NoError(t, err)

	assert.Empty(t, sm.UnitCasts(mage))
	_, err = sm.TryCastingSpell(mage, mustTile(t, b, "tile_40"))
	require.ErrorIs(t, err, ErrSpellUsed)

	_, err = sm.TryCastingSpell(mustUnit(t, b, "unit_14"), mustTile(t, b, "tile_40"))
	require.ErrorIs(t, err, ErrNoSpell)
}

func TestUnlimitedSpells(t *testing.T) {
	settings := DefaultSettings()
	settings.UnlimitedSpells = true
	sm := NewStandardGame(settings)
	b := sm.Board()
	mage := mustUnit(t, b, "unit_00")

	_, err := sm.TryCastingSpell(mage, mustTile(t, b, "tile_30"))
	require.NoError(t, err)
	assert.False(t, mage.UsedSpell)
	_, err = sm.TryMoveUnit(mustUnit(t, b, "unit_60"), mustTile(t, b, "tile_50"))
	require.NoError(t, err)
	_, err = sm.TryCastingSpell(mage, mustTile(t, b, "tile_40"))
	require.NoError(t, err)
}

func TestCastOnUnavailableTarget(t *testing.T) {
	sm := NewStandardGame(DefaultSettings())
	b := sm.Board()

	_, err := sm.TryCastingSpell(mustUnit(t, b, "unit_00"), mustTile(t, b, "tile_10"))
	require.ErrorIs(t, err, ErrTargetNotAvailable)
}

func TestPowerStompShovesEnemies(t *testing.T) {
	b := NewEmptyBoard()
	knight := place(t, b, Knight, Blue, "c3")
	enemy := place(t, b, Peasant, Red, "e5")
	place(t, b, Princess, Blue, "a1")
	place(t, b, Princess, Red, "i8")
	sm := NewStateManager(b, DefaultSettings())

	require.Equal(t, []string{"tile_34", "tile_43"}, targetIDs(sm.UnitCasts(knight)))

	res, err := sm.TryCastingSpell(knight, mustTile(t, b, "tile_34"))
	require.NoError(t, err)
	assert.Equal(t, "e4", knight.Square.String())
	assert.Equal(t, "e6", enemy.Square.String())
	assert.Len(t, res.Units, 2)
}

func TestPowerStompThreatIsCheck(t *testing.T) {
	b := NewEmptyBoard()
	place(t, b, Knight, Blue, "c3")
	place(t, b, Princess, Blue, "a1")
	place(t, b, Princess, Red, "e5")
	require.NoError(t, b.DestroyTile(sq(t, "f5")))
	sm := NewStateManager(b, DefaultSettings())
	sm.SetTurn(Red)

	assert.False(t, sm.Validator().IsCheck())
	assert.True(t, sm.Spells().IsSpellCheck())
	assert.True(t, sm.IsCheck())
	assert.False(t, sm.IsMate())
}

func TestStompOntoDestroyedTileCaptures(t *testing.T) {
	b := NewEmptyBoard()
	knight := place(t, b, Knight, Blue, "c3")
	enemy := place(t, b, Druid, Red, "e5")
	place(t, b, Princess, Blue, "a1")
	place(t, b, Princess, Red, "i8")
	require.NoError(t, b.DestroyTile(sq(t, "f5")))
	sm := NewStateManager(b, DefaultSettings())

	ply, err := sm.Play(Action{Kind: CommandSpell, Unit: knight, Target: mustTile(t, b, "tile_43")})
	require.NoError(t, err)
	assert.True(t, enemy.Captured)
	assert.Equal(t, "f5", enemy.Square.String())
	assert.Equal(t, 0, sm.Status().HalfMoves)

	ply.Undo()
	assert.False(t, enemy.Captured)
	assert.Equal(t, "e5", enemy.Square.String())
	assert.Same(t, enemy, b.UnitAt(enemy.Square))
}
