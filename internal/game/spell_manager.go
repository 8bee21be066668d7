// path: internal/game/spell_manager.go
package game

// Spell is the strategy behind one unit's once-per-game special action.
type Spell interface {
	Kind() SpellKind
	// Targets lists every target the caster may aim at, unfiltered.
	Targets(caster *Unit) []Target
	// Cast applies the spell and returns its undoable effect.
	Cast(caster *Unit, target Target) *Effect
}

// threatener is implemented by spells able to take an enemy Princess.
type threatener interface {
	Threatens(caster, princess *Unit) bool
}

type spellFactory func(b *Board, v *Validator) Spell

var spellRegistry = map[SpellKind]spellFactory{
	SpellCastle:       func(b *Board, _ *Validator) Spell { return &castle{board: b} },
	SpellSacrifice:    func(b *Board, _ *Validator) Spell { return &sacrifice{board: b} },
	SpellShadowstep:   func(b *Board, _ *Validator) Spell { return &shadowstep{board: b} },
	SpellResurrection: func(b *Board, _ *Validator) Spell { return &resurrection{board: b} },
	SpellDestroyTile:  func(b *Board, _ *Validator) Spell { return &destroyTile{board: b} },
	SpellPowerStomp:   func(b *Board, v *Validator) Spell { return &powerStomp{board: b, validator: v} },
}

// Effect is the undoable outcome of one cast.
type Effect struct {
	board    *Board
	delta    delta
	captured int
}

func newEffect(b *Board) *Effect { return &Effect{board: b} }

// Undo restores every unit and tile the cast touched.
func (e *Effect) Undo() { e.delta.apply(e.board) }

// Changes describes the cast's effect on units and tiles.
func (e *Effect) Changes() ([]UnitChange, []TileChange) { return e.delta.changes(e.board) }

// moveUnit relocates u and marks it moved. A unit landing on a destroyed
// tile is captured.
func (e *Effect) moveUnit(u *Unit, sq Square) {
	e.delta.recordUnit(u)
	e.board.relocate(u, sq)
	u.Moved = true
	if e.board.tiles[sq].Destroyed {
		e.board.setCaptured(u, true)
		e.captured++
	}
}

// capture takes u where it stands and marks it as the tile's last capture.
func (e *Effect) capture(u *Unit) {
	captureUnit(e.board, &e.delta, u)
	e.captured++
}

// remove takes u off the board without marking the tile, so it cannot be
// resurrected.
func (e *Effect) remove(u *Unit) {
	e.delta.recordUnit(u)
	u.EnPassant = false
	e.board.setCaptured(u, true)
	e.captured++
}

// SpellManager computes the casts available to the side to move and owns
// one spell strategy per spell-carrying unit, fixed at setup.
type SpellManager struct {
	board     *Board
	validator *Validator
	settings  *Settings

	spells     []Spell
	casts      [][]Target
	spellCheck bool
	noCasts    bool
}

type spellState struct {
	casts      [][]Target
	spellCheck bool
	noCasts    bool
}

func newSpellManager(b *Board, v *Validator, s *Settings) *SpellManager {
	m := &SpellManager{
		board:     b,
		validator: v,
		settings:  s,
		spells:    make([]Spell, len(b.units)),
	}
	for _, u := range b.units {
		if factory, ok := spellRegistry[u.Kind.Spell()]; ok {
			m.spells[u.slot] = factory(b, v)
		}
	}
	return m
}

func (m *SpellManager) spellFor(u *Unit) Spell {
	if u == nil || u.slot >= len(m.spells) {
		return nil
	}
	return m.spells[u.slot]
}

// ready reports whether u can still cast.
func (m *SpellManager) ready(u *Unit) bool {
	if u.Captured || m.spellFor(u) == nil {
		return false
	}
	return !u.UsedSpell || m.settings.UnlimitedSpells
}

// Update recomputes the cast cache for the mover.
func (m *SpellManager) Update(mover Color) {
	casts := make([][]Target, len(m.board.units))
	noCasts := true
	for _, u := range m.board.units {
		if u.Color != mover || !m.ready(u) {
			continue
		}
		targets := m.targets(u, m.settings.ValidateMoves)
		casts[u.slot] = targets
		if len(targets) > 0 {
			noCasts = false
		}
	}
	m.casts = casts
	m.noCasts = noCasts
	m.spellCheck = m.threat(mover)
}

// UnitCasts returns the cached targets of u's spell.
func (m *SpellManager) UnitCasts(u *Unit) []Target {
	if u == nil || u.slot >= len(m.casts) {
		return nil
	}
	return m.casts[u.slot]
}

// IsSpellCheck reports whether an enemy spell can take the mover's Princess.
func (m *SpellManager) IsSpellCheck() bool { return m.spellCheck }

// IsSpellMate reports that the mover has no cast that could get out of check.
func (m *SpellManager) IsSpellMate() bool { return m.noCasts }

// NoCasts reports that no unit of the mover can cast.
func (m *SpellManager) NoCasts() bool { return m.noCasts }

func (m *SpellManager) state() spellState {
	return spellState{casts: m.casts, spellCheck: m.spellCheck, noCasts: m.noCasts}
}

func (m *SpellManager) restore(s spellState) {
	m.casts = s.casts
	m.spellCheck = s.spellCheck
	m.noCasts = s.noCasts
}

func (m *SpellManager) targets(u *Unit, filtered bool) []Target {
	spell := m.spellFor(u)
	candidates := spell.Targets(u)
	if !filtered {
		return candidates
	}
	legal := make([]Target, 0, len(candidates))
	for _, target := range candidates {
		effect := spell.Cast(u, target)
		exposed := m.validator.exposed(u.Color)
		effect.Undo()
		if !exposed {
			legal = append(legal, target)
		}
	}
	return legal
}

// threat reports whether a ready enemy spell can take color's Princess.
func (m *SpellManager) threat(color Color) bool {
	for _, p := range m.board.units {
		if p.Kind != Princess || p.Color != color || p.Captured {
			continue
		}
		for _, e := range m.board.units {
			if e.Color == color || !m.ready(e) {
				continue
			}
			if th, ok := m.spellFor(e).(threatener); ok && th.Threatens(e, p) {
				return true
			}
		}
	}
	return false
}

// hasTarget reports whether target is among the cached casts of u.
func (m *SpellManager) hasTarget(u *Unit, target Target) bool {
	for _, t := range m.UnitCasts(u) {
		if t == target {
			return true
		}
	}
	return false
}
