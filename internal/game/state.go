package game

// UnitState is a serializable representation of a Unit.
type UnitState struct {
	ID              string   `json:"id"`
	Kind            UnitKind `json:"kind"`
	Color           Color    `json:"color"`
	ColorName       string   `json:"colorName"`
	TileID          string   `json:"tileId"`
	Square          string   `json:"square"`
	Moved           bool     `json:"moved"`
	Captured        bool     `json:"captured"`
	UsedSpell       bool     `json:"usedSpell"`
	EnPassant       bool     `json:"enPassant"`
	EnPassantTileID string   `json:"enPassantTileId,omitempty"`
}

// TileState is a serializable representation of a Tile that differs from a
// fresh one.
type TileState struct {
	ID           string `json:"id"`
	Destroyed    bool   `json:"destroyed"`
	LastCaptured string `json:"lastCaptured,omitempty"`
}

// MovesState lists the object ids one unit may act on.
type MovesState struct {
	Tiles     []string `json:"tiles,omitempty"`
	Units     []string `json:"units,omitempty"`
	EnPassant string   `json:"enPassant,omitempty"`
}

// Snapshot is a serializable representation of the whole game state,
// including the cached moves and casts of the side to move.
type Snapshot struct {
	Turn     Color                 `json:"turn"`
	TurnName string                `json:"turnName"`
	Status   Status                `json:"status"`
	State    string                `json:"state"`
	Plies    int                   `json:"plies"`
	Units    []UnitState           `json:"units"`
	Tiles    []TileState           `json:"tiles,omitempty"`
	Moves    map[string]MovesState `json:"moves"`
	Casts    map[string][]string   `json:"casts"`
}

// Snapshot returns a serializable copy of the current state.
func (sm *StateManager) Snapshot() Snapshot {
	s := Snapshot{
		Turn:     sm.turn,
		TurnName: sm.turn.String(),
		Status:   sm.status,
		State:    sm.status.String(),
		Plies:    len(sm.history),
		Units:    make([]UnitState, 0, len(sm.board.units)),
		Moves:    make(map[string]MovesState),
		Casts:    make(map[string][]string),
	}

	for _, u := range sm.board.units {
		us := UnitState{
			ID:        u.ID,
			Kind:      u.Kind,
			Color:     u.Color,
			ColorName: u.Color.String(),
			TileID:    TileID(u.Square),
			Square:    u.Square.String(),
			Moved:     u.Moved,
			Captured:  u.Captured,
			UsedSpell: u.UsedSpell,
			EnPassant: u.EnPassant,
		}
		if u.EnPassant {
			us.EnPassantTileID = TileID(u.EnPassantSquare)
		}
		s.Units = append(s.Units, us)

		if u.Captured || u.Color != sm.turn {
			continue
		}
		if mv := sm.validator.UnitMoves(u); !mv.Empty() {
			s.Moves[u.ID] = mv.State()
		}
		if casts := sm.spells.UnitCasts(u); len(casts) > 0 {
			ids := make([]string, len(casts))
			for i, t := range casts {
				ids[i] = t.ObjectID()
			}
			s.Casts[u.ID] = ids
		}
	}

	for i := range sm.board.tiles {
		tile := &sm.board.tiles[i]
		if !tile.Destroyed && tile.LastCaptured == nil {
			continue
		}
		ts := TileState{ID: tile.ObjectID(), Destroyed: tile.Destroyed}
		if tile.LastCaptured != nil {
			ts.LastCaptured = tile.LastCaptured.ID
		}
		s.Tiles = append(s.Tiles, ts)
	}
	return s
}

// State lists the moves by object id.
func (mv Moves) State() MovesState {
	var ms MovesState
	for _, t := range mv.Tiles {
		ms.Tiles = append(ms.Tiles, t.ObjectID())
	}
	for _, u := range mv.Units {
		ms.Units = append(ms.Units, u.ID)
	}
	if mv.EnPassant != nil {
		ms.EnPassant = mv.EnPassant.ID
	}
	return ms
}
