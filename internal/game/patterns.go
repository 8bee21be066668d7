package game

// Movement patterns are authored with the unit facing up (towards lower matrix
// rows). Red moves up the board as written; Blue uses the pattern rotated by
// 180 degrees.
func patternMatrices() map[UnitKind][][]MoveType {
	const (
		x = NoMovement
		m = MoveOrTake
		s = Slide
	)
	return map[UnitKind][][]MoveType{
		Princess: {
			{m, m, m},
			{m, x, m},
			{m, m, m},
		},
		King: {
			{s, s, s},
			{s, x, s},
			{s, s, s},
		},
		Mage: {
			{x, s, x},
			{s, x, s},
			{x, s, x},
		},
		Rogue: {
			{s, x, s},
			{x, x, x},
			{s, x, s},
		},
		Priest: {
			{x, m, x},
			{m, x, m},
			{x, m, x},
		},
		Druid: {
			{x, m, x},
			{m, x, m},
			{x, m, x},
		},
		Knight: {
			{x, m, x, m, x},
			{m, x, x, x, m},
			{x, x, x, x, x},
			{m, x, x, x, m},
			{x, m, x, m, x},
		},
		Dragon: {
			{s, x, s, x, s},
			{x, x, x, x, x},
			{s, x, x, x, s},
			{x, x, x, x, x},
			{s, x, s, x, s},
		},
		Wolf: {
			{m, m, m},
			{x, x, x},
			{x, m, x},
		},
	}
}

func peasantMatrices() (fresh, moved [][]MoveType) {
	const (
		x = NoMovement
		t = OnlyTake
		o = OnlyMove
	)
	fresh = [][]MoveType{
		{x, x, o, x, x},
		{x, t, o, t, x},
		{x, x, x, x, x},
		{x, x, x, x, x},
		{x, x, x, x, x},
	}
	moved = [][]MoveType{
		{t, o, t},
		{x, x, x},
		{x, x, x},
	}
	return fresh, moved
}

// patternStep is one non-empty cell relative to the unit, in authored orientation.
type patternStep struct {
	dr, dc int
	move   MoveType
}

type pattern struct {
	steps  []patternStep
	slides []patternStep
}

var (
	compiledPatterns     [NumKinds]pattern
	compiledPeasantFresh pattern
	compiledPeasantMoved pattern
)

func init() {
	for kind, matrix := range patternMatrices() {
		compiledPatterns[kind] = compilePattern(matrix)
	}
	fresh, moved := peasantMatrices()
	compiledPeasantFresh = compilePattern(fresh)
	compiledPeasantMoved = compilePattern(moved)
}

func compilePattern(matrix [][]MoveType) pattern {
	var p pattern
	half := len(matrix) / 2
	for i, row := range matrix {
		if len(row) != len(matrix) {
			panic("movement pattern must be square")
		}
		for j, cell := range row {
			step := patternStep{dr: i - half, dc: j - half, move: cell}
			switch cell {
			case NoMovement:
			case Slide:
				p.slides = append(p.slides, step)
			default:
				p.steps = append(p.steps, step)
			}
		}
	}
	return p
}

func patternOf(u *Unit) *pattern {
	if u.Kind == Peasant {
		if u.Moved {
			return &compiledPeasantMoved
		}
		return &compiledPeasantFresh
	}
	return &compiledPatterns[u.Kind]
}

// orient maps an authored offset to a board offset for the unit's color.
// Authored "up" is towards row 0, which is Red's forward direction.
func orient(color Color, dr, dc int) (int, int) {
	if color == Blue {
		return -dr, -dc
	}
	return dr, dc
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
