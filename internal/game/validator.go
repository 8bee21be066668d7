package game

// Moves are the actions currently available to one unit.
type Moves struct {
	Tiles     []*Tile
	Units     []*Unit
	EnPassant *Unit
}

func (m Moves) Empty() bool { return len(m.Tiles) == 0 && len(m.Units) == 0 && m.EnPassant == nil }

func (m Moves) Count() int {
	n := len(m.Tiles) + len(m.Units)
	if m.EnPassant != nil {
		n++
	}
	return n
}

func (m Moves) HasTile(t *Tile) bool {
	for _, tile := range m.Tiles {
		if tile == t {
			return true
		}
	}
	return false
}

func (m Moves) HasUnit(u *Unit) bool {
	for _, unit := range m.Units {
		if unit == u {
			return true
		}
	}
	return false
}

// Validator computes the moves of every living unit and whether the side to
// move has its Princess under attack.
type Validator struct {
	board    *Board
	settings *Settings
	spells   *SpellManager

	moves   []Moves
	check   bool
	noMoves bool
}

type validatorState struct {
	moves   []Moves
	check   bool
	noMoves bool
}

func newValidator(b *Board, s *Settings) *Validator {
	return &Validator{board: b, settings: s}
}

// Update recomputes the move cache. The mover's moves are filtered so they
// never expose its own Princess; opponent moves are left raw.
func (v *Validator) Update(mover Color) {
	moves := make([]Moves, len(v.board.units))
	noMoves := true
	for _, u := range v.board.units {
		if u.Captured {
			continue
		}
		if u.Color == mover && v.settings.ValidateMoves {
			moves[u.slot] = v.legalMoves(u)
		} else {
			moves[u.slot] = v.rawMoves(u)
		}
		if u.Color == mover && !moves[u.slot].Empty() {
			noMoves = false
		}
	}
	v.moves = moves
	v.noMoves = noMoves
	v.check = v.moveThreat(mover)
}

// UnitMoves returns the cached moves of u.
func (v *Validator) UnitMoves(u *Unit) Moves {
	if u == nil || u.Captured || u.slot >= len(v.moves) {
		return Moves{}
	}
	return v.moves[u.slot]
}

// IsCheck reports whether an enemy move can take the mover's Princess.
func (v *Validator) IsCheck() bool { return v.check }

// IsMate reports check with no move left for the mover.
func (v *Validator) IsMate() bool { return v.check && v.noMoves }

// NoMoves reports that no unit of the mover has a move.
func (v *Validator) NoMoves() bool { return v.noMoves }

func (v *Validator) state() validatorState {
	return validatorState{moves: v.moves, check: v.check, noMoves: v.noMoves}
}

func (v *Validator) restore(s validatorState) {
	v.moves = s.moves
	v.check = s.check
	v.noMoves = s.noMoves
}

// rawMoves expands the unit's pattern without the check-avoidance filter.
func (v *Validator) rawMoves(u *Unit) Moves {
	var mv Moves
	tiles, takes := v.reach(u)
	tiles.Iter(func(sq Square) {
		mv.Tiles = append(mv.Tiles, v.board.Tile(sq))
	})
	takes.Iter(func(sq Square) {
		mv.Units = append(mv.Units, v.board.grid[sq])
	})
	mv.EnPassant = v.enPassantVictim(u)
	return mv
}

func (v *Validator) legalMoves(u *Unit) Moves {
	var legal Moves
	raw := v.rawMoves(u)
	for _, tile := range raw.Tiles {
		if v.safe(newMoveCommand(v.board, u, tile.Square), u.Color) {
			legal.Tiles = append(legal.Tiles, tile)
		}
	}
	for _, victim := range raw.Units {
		if victim.Kind == Princess {
			continue
		}
		if v.safe(newCaptureCommand(v.board, u, victim), u.Color) {
			legal.Units = append(legal.Units, victim)
		}
	}
	if raw.EnPassant != nil && v.safe(newEnPassantCommand(v.board, u, raw.EnPassant), u.Color) {
		legal.EnPassant = raw.EnPassant
	}
	return legal
}

// safe executes cmd, tests the acting color's Princess and undoes cmd.
func (v *Validator) safe(cmd Command, color Color) bool {
	cmd.Execute()
	exposed := v.exposed(color)
	cmd.Undo()
	return !exposed
}

// reach returns the empty squares u can move to and the squares of enemies it can take.
func (v *Validator) reach(u *Unit) (tiles, takes Bitboard) {
	b := v.board
	p := patternOf(u)
	for _, step := range p.steps {
		dr, dc := orient(u.Color, step.dr, step.dc)
		sq, ok := u.Square.Offset(dr, dc)
		if !ok || b.tiles[sq].Destroyed {
			continue
		}
		occ := b.grid[sq]
		switch step.move {
		case MoveOrTake:
			if occ == nil {
				tiles = tiles.Add(sq)
			} else if occ.Color != u.Color {
				takes = takes.Add(sq)
			}
		case OnlyTake:
			if occ != nil && occ.Color != u.Color {
				takes = takes.Add(sq)
			}
		case OnlyMove:
			if occ == nil {
				tiles = tiles.Add(sq)
			}
		}
	}
	for _, slide := range p.slides {
		dr, dc := orient(u.Color, slide.dr, slide.dc)
		stepR, stepC := sign(dr), sign(dc)
		sq, ok := u.Square.Offset(dr, dc)
		for ok && !b.tiles[sq].Destroyed {
			if occ := b.grid[sq]; occ != nil {
				if occ.Color != u.Color {
					takes = takes.Add(sq)
				}
				break
			}
			tiles = tiles.Add(sq)
			sq, ok = sq.Offset(stepR, stepC)
		}
	}
	return tiles, takes
}

// attacks reports whether u's pattern can take a unit standing on target.
func (v *Validator) attacks(u *Unit, target Square) bool {
	b := v.board
	p := patternOf(u)
	for _, step := range p.steps {
		if step.move != MoveOrTake && step.move != OnlyTake {
			continue
		}
		dr, dc := orient(u.Color, step.dr, step.dc)
		if sq, ok := u.Square.Offset(dr, dc); ok && sq == target {
			return true
		}
	}
	for _, slide := range p.slides {
		dr, dc := orient(u.Color, slide.dr, slide.dc)
		stepR, stepC := sign(dr), sign(dc)
		sq, ok := u.Square.Offset(dr, dc)
		for ok && !b.tiles[sq].Destroyed {
			if sq == target {
				return true
			}
			if b.grid[sq] != nil {
				break
			}
			sq, ok = sq.Offset(stepR, stepC)
		}
	}
	return false
}

func (v *Validator) enPassantVictim(u *Unit) *Unit {
	if u.Kind != Peasant {
		return nil
	}
	for _, dc := range [2]int{-1, 1} {
		sq, ok := u.Square.Offset(0, dc)
		if !ok {
			continue
		}
		occ := v.board.grid[sq]
		if occ == nil || occ.Color == u.Color || occ.Kind != Peasant || !occ.EnPassant {
			continue
		}
		if v.board.free(occ.EnPassantSquare) {
			return occ
		}
	}
	return nil
}

// moveThreat reports whether color's Princess is captured or can be taken
// by an enemy move.
func (v *Validator) moveThreat(color Color) bool {
	for _, p := range v.board.units {
		if p.Kind != Princess || p.Color != color {
			continue
		}
		if p.Captured {
			return true
		}
		for _, e := range v.board.units {
			if e.Captured || e.Color == color {
				continue
			}
			if v.attacks(e, p.Square) {
				return true
			}
		}
	}
	return false
}

// exposed reports whether color's Princess could be lost to the opponent's
// next move or spell.
func (v *Validator) exposed(color Color) bool {
	if v.moveThreat(color) {
		return true
	}
	return v.spells != nil && v.spells.threat(color)
}
