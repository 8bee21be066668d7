// path: internal/game/history.go
package game

// delta captures the minimal state needed to undo one command: the prior
// value of every unit and tile the command touched, recorded on first touch.
type delta struct {
	units []unitDelta
	tiles []tileDelta
}

type unitDelta struct {
	unit     *Unit
	snapshot Unit
}

type tileDelta struct {
	square   Square
	snapshot Tile
}

const historyEntryCap = 4

func (d *delta) reset() {
	d.units = d.units[:0]
	d.tiles = d.tiles[:0]
}

func (d *delta) recordUnit(u *Unit) {
	for _, entry := range d.units {
		if entry.unit == u {
			return
		}
	}
	if d.units == nil {
		d.units = make([]unitDelta, 0, historyEntryCap)
	}
	d.units = append(d.units, unitDelta{unit: u, snapshot: *u})
}

func (d *delta) recordTile(t *Tile) {
	for _, entry := range d.tiles {
		if entry.square == t.Square {
			return
		}
	}
	d.tiles = append(d.tiles, tileDelta{square: t.Square, snapshot: *t})
}

// apply restores every recorded entry and rebuilds the occupancy grid.
func (d *delta) apply(b *Board) {
	for i := len(d.tiles) - 1; i >= 0; i-- {
		entry := d.tiles[i]
		b.tiles[entry.square] = entry.snapshot
	}
	for i := len(d.units) - 1; i >= 0; i-- {
		entry := d.units[i]
		*entry.unit = entry.snapshot
	}
	b.reindex()
}

// changes lists the recorded units and tiles next to their current values.
func (d *delta) changes(b *Board) ([]UnitChange, []TileChange) {
	units := make([]UnitChange, 0, len(d.units))
	for _, entry := range d.units {
		before, after := entry.snapshot, entry.unit
		units = append(units, UnitChange{
			UnitID:     after.ID,
			FromTileID: TileID(before.Square),
			TileID:     TileID(after.Square),
			Color:      after.Color,
			Captured:   !before.Captured && after.Captured,
			Revived:    before.Captured && !after.Captured,
		})
	}
	tiles := make([]TileChange, 0, len(d.tiles))
	for _, entry := range d.tiles {
		cur := b.tiles[entry.square]
		if cur.Destroyed == entry.snapshot.Destroyed {
			continue
		}
		tiles = append(tiles, TileChange{TileID: TileID(entry.square), Destroyed: cur.Destroyed})
	}
	return units, tiles
}
