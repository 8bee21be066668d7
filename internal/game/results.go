package game

// Result describes what an accepted action changed.
type Result interface {
	ResultKind() CommandKind
}

type MoveResult struct {
	UnitID     string `json:"unitId"`
	FromTileID string `json:"fromTileId"`
	TileID     string `json:"tileId"`
	Promoted   bool   `json:"promoted"`
}

type CaptureResult struct {
	UnitID         string `json:"unitId"`
	CapturedUnitID string `json:"capturedUnitId"`
	FromTileID     string `json:"fromTileId"`
	TileID         string `json:"tileId"`
	Promoted       bool   `json:"promoted"`
}

type EnPassantResult struct {
	UnitID         string `json:"unitId"`
	CapturedUnitID string `json:"capturedUnitId"`
	FromTileID     string `json:"fromTileId"`
	TileID         string `json:"tileId"`
}

type CastResult struct {
	CasterID string       `json:"casterId"`
	TargetID string       `json:"targetId"`
	Spell    SpellKind    `json:"spell"`
	Units    []UnitChange `json:"units,omitempty"`
	Tiles    []TileChange `json:"tiles,omitempty"`
}

// UnitChange is one unit touched by a spell.
type UnitChange struct {
	UnitID     string `json:"unitId"`
	FromTileID string `json:"fromTileId"`
	TileID     string `json:"tileId"`
	Color      Color  `json:"color"`
	Captured   bool   `json:"captured,omitempty"`
	Revived    bool   `json:"revived,omitempty"`
}

// TileChange is one tile whose destroyed flag a spell changed.
type TileChange struct {
	TileID    string `json:"tileId"`
	Destroyed bool   `json:"destroyed"`
}

func (*MoveResult) ResultKind() CommandKind { return CommandMove }
func (*CaptureResult) ResultKind() CommandKind { return CommandCapture }
func (*EnPassantResult) ResultKind() CommandKind { return CommandEnPassant }
func (*CastResult) ResultKind() CommandKind { return CommandSpell }

func newMoveResult(c *MoveCommand) *MoveResult {
	return &MoveResult{
		UnitID:     c.unit.ID,
		FromTileID: TileID(c.from),
		TileID:     TileID(c.to),
		Promoted:   c.Promoted(),
	}
}

func newCaptureResult(c *CaptureCommand) *CaptureResult {
	return &CaptureResult{
		UnitID:         c.unit.ID,
		CapturedUnitID: c.victim.ID,
		FromTileID:     TileID(c.move.from),
		TileID:         TileID(c.move.to),
		Promoted:       c.move.Promoted(),
	}
}

func newEnPassantResult(c *EnPassantCommand) *EnPassantResult {
	return &EnPassantResult{
		UnitID:         c.unit.ID,
		CapturedUnitID: c.victim.ID,
		FromTileID:     TileID(c.move.from),
		TileID:         TileID(c.move.to),
	}
}

func newCastResult(c *SpellCommand) *CastResult {
	units, tiles := c.effect.Changes()
	return &CastResult{
		CasterID: c.caster.ID,
		TargetID: c.target.ObjectID(),
		Spell:    c.Spell(),
		Units:    units,
		Tiles:    tiles,
	}
}
