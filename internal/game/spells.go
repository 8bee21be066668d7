package game

import "runechess/internal/shared"

// nearest returns the first living unit from sq in direction d.
func (b *Board) nearest(sq Square, d Direction) *Unit {
	cur, ok := sq.Step(d)
	for ok {
		if u := b.grid[cur]; u != nil {
			return u
		}
		cur, ok = cur.Step(d)
	}
	return nil
}

// castle swaps the Princess with the nearest ally on a row or column. When
// the ally is not adjacent the Princess takes its tile and the ally steps
// one tile towards her.
type castle struct{ board *Board }

func (c *castle) Kind() SpellKind { return SpellCastle }

func (c *castle) Targets(caster *Unit) []Target {
	var out []Target
	for _, d := range shared.Orthogonal {
		if ally := c.board.nearest(caster.Square, d); ally != nil && ally.Color == caster.Color {
			out = append(out, ally)
		}
	}
	return out
}

func (c *castle) Cast(caster *Unit, target Target) *Effect {
	ally := target.(*Unit)
	e := newEffect(c.board)
	from, to := caster.Square, ally.Square
	landing := from
	if shared.Distance(from, to) > 1 {
		landing, _ = to.Step(shared.DirectionOf(to, from))
	}
	e.moveUnit(caster, to)
	e.moveUnit(ally, landing)
	return e
}

// sacrifice swaps the King with any living ally; the King dies on arrival.
type sacrifice struct{ board *Board }

func (s *sacrifice) Kind() SpellKind { return SpellSacrifice }

func (s *sacrifice) Targets(caster *Unit) []Target {
	var out []Target
	for _, u := range s.board.units {
		if u != caster && !u.Captured && u.Color == caster.Color {
			out = append(out, u)
		}
	}
	return out
}

func (s *sacrifice) Cast(caster *Unit, target Target) *Effect {
	ally := target.(*Unit)
	e := newEffect(s.board)
	from, to := caster.Square, ally.Square
	e.moveUnit(caster, to)
	e.moveUnit(ally, from)
	if !caster.Captured {
		e.remove(caster)
	}
	return e
}

// shadowstep jumps the Rogue over the nearest unit on a row or column,
// taking it when it is an enemy.
type shadowstep struct{ board *Board }

func (s *shadowstep) Kind() SpellKind { return SpellShadowstep }

func (s *shadowstep) Targets(caster *Unit) []Target {
	var out []Target
	for _, d := range shared.Orthogonal {
		u := s.board.nearest(caster.Square, d)
		if u == nil || (u.Color != caster.Color && u.Kind == Princess) {
			continue
		}
		beyond, ok := u.Square.Step(d)
		if !ok || s.board.grid[beyond] != nil {
			continue
		}
		out = append(out, u)
	}
	return out
}

func (s *shadowstep) Cast(caster *Unit, target Target) *Effect {
	u := target.(*Unit)
	e := newEffect(s.board)
	beyond, _ := u.Square.Step(shared.DirectionOf(caster.Square, u.Square))
	if u.Color != caster.Color && u.Kind != Princess {
		e.capture(u)
	}
	e.moveUnit(caster, beyond)
	return e
}

// resurrection revives a unit that died on an adjacent tile, under the
// caster's color.
type resurrection struct{ board *Board }

func (r *resurrection) Kind() SpellKind { return SpellResurrection }

func (r *resurrection) Targets(caster *Unit) []Target {
	var out []Target
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			sq, ok := caster.Square.Offset(dr, dc)
			if !ok || (dr == 0 && dc == 0) {
				continue
			}
			tile := r.board.Tile(sq)
			dead := tile.LastCaptured
			if tile.Destroyed || dead == nil || !dead.Captured || dead.Square != sq || r.board.grid[sq] != nil {
				continue
			}
			out = append(out, dead)
		}
	}
	return out
}

func (r *resurrection) Cast(caster *Unit, target Target) *Effect {
	u := target.(*Unit)
	e := newEffect(r.board)
	tile := r.board.Tile(u.Square)
	e.delta.recordUnit(u)
	e.delta.recordTile(tile)
	r.board.setCaptured(u, false)
	u.Color = caster.Color
	tile.LastCaptured = nil
	return e
}

// destroyTile removes an empty tile from play for the rest of the game.
type destroyTile struct{ board *Board }

func (d *destroyTile) Kind() SpellKind { return SpellDestroyTile }

func (d *destroyTile) Targets(_ *Unit) []Target {
	var out []Target
	for i := range d.board.tiles {
		tile := &d.board.tiles[i]
		if !tile.Destroyed && d.board.grid[i] == nil {
			out = append(out, tile)
		}
	}
	return out
}

func (d *destroyTile) Cast(_ *Unit, target Target) *Effect {
	tile := target.(*Tile)
	e := newEffect(d.board)
	e.delta.recordTile(tile)
	tile.Destroyed = true
	tile.LastCaptured = nil
	return e
}

// powerStomp moves the Knight along its own pattern and shoves every
// orthogonally adjacent enemy one tile away.
type powerStomp struct {
	board     *Board
	validator *Validator
}

type shove struct {
	unit *Unit
	to   Square
}

func (p *powerStomp) Kind() SpellKind { return SpellPowerStomp }

func (p *powerStomp) Targets(caster *Unit) []Target {
	var out []Target
	tiles, _ := p.validator.reach(caster)
	tiles.Iter(func(sq Square) {
		if len(p.shoves(caster, sq)) > 0 {
			out = append(out, p.board.Tile(sq))
		}
	})
	return out
}

func (p *powerStomp) Cast(caster *Unit, target Target) *Effect {
	tile := target.(*Tile)
	e := newEffect(p.board)
	shoves := p.shoves(caster, tile.Square)
	e.moveUnit(caster, tile.Square)
	for _, sh := range shoves {
		e.moveUnit(sh.unit, sh.to)
	}
	return e
}

// shoves lists the enemies a stomp on sq would push and where they land.
func (p *powerStomp) shoves(caster *Unit, sq Square) []shove {
	var out []shove
	for _, d := range shared.Orthogonal {
		next, ok := sq.Step(d)
		if !ok {
			continue
		}
		enemy := p.board.grid[next]
		if enemy == nil || enemy.Color == caster.Color {
			continue
		}
		behind, ok := next.Step(d)
		if !ok {
			continue
		}
		if occ := p.board.grid[behind]; occ != nil && occ != caster {
			continue
		}
		out = append(out, shove{unit: enemy, to: behind})
	}
	return out
}

// Threatens reports whether some stomp would push princess onto a destroyed tile.
func (p *powerStomp) Threatens(caster, princess *Unit) bool {
	tiles, _ := p.validator.reach(caster)
	found := false
	tiles.Iter(func(sq Square) {
		if found || shared.Distance(sq, princess.Square) != 1 {
			return
		}
		d := shared.DirectionOf(sq, princess.Square)
		if d != shared.DirN && d != shared.DirE && d != shared.DirS && d != shared.DirW {
			return
		}
		if behind, ok := princess.Square.Step(d); ok && p.board.tiles[behind].Destroyed {
			found = true
		}
	})
	return found
}
