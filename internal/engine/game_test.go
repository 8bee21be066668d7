package engine

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"runechess/internal/bot"
	"runechess/internal/game"
	"runechess/internal/shared"
)

func mateInOneBoard() *game.Board {
	b := game.NewEmptyBoard()
	for _, p := range []struct {
		kind  game.UnitKind
		color game.Color
		coord string
	}{
		{game.Mage, game.Blue, "a7"},
		{game.Mage, game.Blue, "b1"},
		{game.Princess, game.Blue, "e1"},
		{game.Princess, game.Red, "i8"},
	} {
		sq, _ := shared.CoordToSquare(p.coord)
		if _, err := b.Place(p.kind, p.color, sq); err != nil {
			panic(err)
		}
	}
	return b
}

func TestObjectRouting(t *testing.T) {
	g := New()
	require.NotEqual(t, uuid.Nil, g.ID())

	tests := []struct {
		id   string
		ok   bool
		unit bool
	}{
		{"unit_04", true, true},
		{"tile_22", true, false},
		{"tile_04", true, false},
		{"unit_22", false, false},
		{"unit_99", false, false},
		{"04", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			obj, ok := g.Object(tt.id)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			_, isUnit := obj.(*game.Unit)
			assert.Equal(t, tt.unit, isUnit)
			assert.Equal(t, tt.id, obj.ObjectID())
		})
	}
}

func TestTryActionsByID(t *testing.T) {
	g := New()

	res, err := g.TryMoveUnit("unit_12", "tile_32")
	require.NoError(t, err)
	assert.Equal(t, "tile_12", res.FromTileID)
	assert.Equal(t, game.Red, g.Turn())

	_, err = g.TryMoveUnit("unit_13", "tile_23")
	require.ErrorIs(t, err, game.ErrWrongTurn)

	cast, err := g.TryCastingSpell("unit_78", "tile_41")
	require.NoError(t, err)
	assert.Equal(t, game.SpellDestroyTile, cast.Spell)

	moves, err := g.UnitMoves("unit_12")
	require.NoError(t, err)
	assert.Equal(t, []string{"tile_42"}, moves.Tiles)

	casts, err := g.UnitCasts("unit_04")
	require.NoError(t, err)
	assert.Len(t, casts, 3)
}

func TestUnknownObjects(t *testing.T) {
	g := New()
	before := g.Snapshot()

	tests := []struct {
		name string
		call func() error
	}{
		{"move unknown unit", func() error { _, err := g.TryMoveUnit("unit_55", "tile_22"); return err }},
		{"move to unit", func() error { _, err := g.TryMoveUnit("unit_12", "unit_64"); return err }},
		{"capture tile", func() error { _, err := g.TryCaptureUnit("unit_12", "tile_64"); return err }},
		{"en passant garbage", func() error { _, err := g.TryEnPassant("garbage", "unit_64"); return err }},
		{"cast unknown target", func() error { _, err := g.TryCastingSpell("unit_00", "tile_x"); return err }},
		{"moves of tile", func() error { _, err := g.UnitMoves("tile_00"); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.call(), ErrUnknownObject)
		})
	}
	assert.Equal(t, before, g.Snapshot())
}

func TestBotDisabled(t *testing.T) {
	settings := game.DefaultSettings()
	settings.EnableBot = false
	g := New(WithSettings(settings))

	_, err := g.GetBestMove(1)
	require.ErrorIs(t, err, ErrBotDisabled)
}

func TestBestMoveIsAppliedThroughTryPath(t *testing.T) {
	cfg := bot.DefaultConfig()
	cfg.Seed = 5
	g := New(WithBoard(mateInOneBoard, game.Blue), WithBot(bot.New(cfg)))

	m, err := g.GetBestMove(1)
	require.NoError(t, err)
	require.Equal(t, bot.Move{UnitID: "unit_01", TargetID: "tile_71", Kind: game.CommandMove}, m)

	res, err := g.Apply(m)
	require.NoError(t, err)
	assert.Equal(t, game.CommandMove, res.ResultKind())
	assert.True(t, g.IsMate())

	_, err = g.GetBestMove(1)
	require.ErrorIs(t, err, ErrNoMove)
	_, err = g.TryMoveUnit("unit_88", "tile_77")
	require.ErrorIs(t, err, ErrUnknownObject)
	_, err = g.TryMoveUnit("unit_78", "tile_77")
	require.ErrorIs(t, err, game.ErrGameOver)
}

func TestApplyUnknownKind(t *testing.T) {
	g := New()
	res, err := g.Apply(bot.Move{UnitID: "unit_12", TargetID: "tile_22", Kind: game.CommandPromote})
	require.ErrorIs(t, err, game.ErrMoveNotAvailable)
	assert.Nil(t, res)
}

func TestUndoAndReset(t *testing.T) {
	g := New()
	start := g.Snapshot()

	_, err := g.TryMoveUnit("unit_12", "tile_32")
	require.NoError(t, err)
	require.True(t, g.Undo())
	assert.Equal(t, start, g.Snapshot())
	assert.False(t, g.Undo())

	_, err = g.TryMoveUnit("unit_12", "tile_32")
	require.NoError(t, err)
	g.Reset()
	assert.Equal(t, start, g.Snapshot())
}

func TestActionsOfSideToMove(t *testing.T) {
	g := New()
	moves := g.Actions()
	require.NotEmpty(t, moves)
	assert.Contains(t, moves, bot.Move{UnitID: "unit_12", TargetID: "tile_22", Kind: game.CommandMove})
	assert.Contains(t, moves, bot.Move{UnitID: "unit_04", TargetID: "unit_03", Kind: game.CommandSpell})
	for _, m := range moves {
		u, ok := g.Object(m.UnitID)
		require.True(t, ok, m.UnitID)
		assert.Equal(t, game.Blue, u.(*game.Unit).Color, "%s listed on blue's turn", m)
	}
}

func TestRequestsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := New(WithLogger(zap.New(core)))

	_, err := g.TryMoveUnit("unit_12", "tile_22")
	require.NoError(t, err)
	_, err = g.TryMoveUnit("unit_12", "tile_22")
	require.Error(t, err)

	accepted := logs.FilterMessage("action accepted").All()
	rejected := logs.FilterMessage("action rejected").All()
	require.Len(t, accepted, 1)
	require.Len(t, rejected, 1)
	assert.Equal(t, g.ID().String(), accepted[0].ContextMap()["game"])
	assert.Equal(t, "unit_12", rejected[0].ContextMap()["unit"])
}

func TestConcurrentReaders(t *testing.T) {
	g := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = g.Snapshot()
				return
			}
			_ = g.Actions()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, game.Blue, g.Turn())
}
