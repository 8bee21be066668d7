package shared

// Direction is one of the eight compass steps. North points towards row 7.
type Direction uint8

const (
	DirN Direction = iota
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
	DirNone Direction = 255
)

// Orthogonal lists the four cardinal directions in clockwise order.
var Orthogonal = [4]Direction{DirN, DirE, DirS, DirW}

var directionDeltas = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

var directionNames = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

func (d Direction) String() string {
	if d > DirNW {
		return "?"
	}
	return directionNames[d]
}

// Delta returns the row and column step of the direction.
func (d Direction) Delta() (dr, dc int) {
	if d > DirNW {
		return 0, 0
	}
	return directionDeltas[d][0], directionDeltas[d][1]
}

func (d Direction) Opposite() Direction {
	if d > DirNW {
		return DirNone
	}
	return (d + 4) % 8
}

// Step moves one square in direction d.
func (s Square) Step(d Direction) (Square, bool) {
	if d > DirNW {
		return 0, false
	}
	dr, dc := d.Delta()
	return s.Offset(dr, dc)
}

// DirectionOf returns the compass direction from one square towards another,
// or DirNone when they are not on a shared row, column or diagonal.
func DirectionOf(from, to Square) Direction {
	dr := to.Row() - from.Row()
	dc := to.Column() - from.Column()
	if dr == 0 && dc == 0 {
		return DirNone
	}
	if dr != 0 && dc != 0 && abs(dr) != abs(dc) {
		return DirNone
	}

	nr, nc := normalize(dr), normalize(dc)
	for d, delta := range directionDeltas {
		if delta[0] == nr && delta[1] == nc {
			return Direction(d)
		}
	}
	return DirNone
}

func normalize(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
