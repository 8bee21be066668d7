// path: internal/game/game_status.go
package game

// Status summarises the position for the side to move.
type Status struct {
	Turn                 Color `json:"turn"`
	Check                bool  `json:"check"`
	Mate                 bool  `json:"mate"`
	Stalemate            bool  `json:"stalemate"`
	FiftyMoveRule        bool  `json:"fiftyMoveRule"`
	InsufficientMaterial bool  `json:"insufficientMaterial"`
	HalfMoves            int   `json:"halfMoves"`
}

// Over reports whether the game has ended.
func (s Status) Over() bool {
	return s.Mate || s.Stalemate || s.FiftyMoveRule || s.InsufficientMaterial
}

// Winner returns the winning color after a mate.
func (s Status) Winner() (Color, bool) {
	if s.Mate {
		return s.Turn.Opposite(), true
	}
	return Blue, false
}

func (s Status) String() string {
	switch {
	case s.Mate:
		return "checkmate"
	case s.Stalemate:
		return "stalemate"
	case s.FiftyMoveRule:
		return "draw-fifty-move"
	case s.InsufficientMaterial:
		return "draw-insufficient-material"
	case s.Check:
		return "check"
	default:
		return "ongoing"
	}
}

// updateGameStatus derives the status from the freshly updated caches.
func (sm *StateManager) updateGameStatus() {
	check := sm.validator.IsCheck() || sm.spells.IsSpellCheck()
	stuck := sm.validator.NoMoves() && sm.spells.NoCasts()

	sm.status = Status{
		Turn:                 sm.turn,
		Check:                check,
		Mate:                 check && stuck,
		Stalemate:            !check && stuck,
		HalfMoves:            sm.halfMoves,
		FiftyMoveRule:        sm.settings.HalfMoveLimit > 0 && sm.halfMoves >= sm.settings.HalfMoveLimit,
		InsufficientMaterial: sm.onlyPrincessesLeft(),
	}
}

func (sm *StateManager) onlyPrincessesLeft() bool {
	for _, u := range sm.board.units {
		if !u.Captured && u.Kind != Princess {
			return false
		}
	}
	return true
}
