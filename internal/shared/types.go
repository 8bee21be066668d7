package shared

import "fmt"

// Board geometry.
const (
	Rows       = 8
	Columns    = 9
	NumSquares = Rows * Columns
)

type Color uint8

const (
	Blue Color = iota
	Red
)

func (c Color) Opposite() Color {
	if c == Blue {
		return Red
	}
	return Blue
}

func (c Color) String() string {
	if c == Blue {
		return "blue"
	}
	return "red"
}

// Square is a dense board index: row*Columns + column.
type Square uint8

func (s Square) Row() int { return int(s) / Columns }
func (s Square) Column() int { return int(s) % Columns }

func (s Square) Valid() bool { return int(s) < NumSquares }

// String renders the square as a coordinate such as "e1" (column letter, row number).
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("square(%d)", s)
	}
	col := byte('a' + s.Column())
	row := byte('1' + s.Row())
	return string([]byte{col, row})
}

// Offset returns the square dr rows and dc columns away.
func (s Square) Offset(dr, dc int) (Square, bool) {
	return SquareFromCoords(s.Row()+dr, s.Column()+dc)
}

func SquareFromCoords(row, col int) (Square, bool) {
	if row < 0 || row >= Rows || col < 0 || col >= Columns {
		return 0, false
	}
	return Square(row*Columns + col), true
}

func CoordToSquare(coord string) (Square, bool) {
	if len(coord) != 2 {
		return 0, false
	}
	col := coord[0]
	row := coord[1]
	if col < 'a' || col >= 'a'+Columns || row < '1' || row >= '1'+Rows {
		return 0, false
	}
	return SquareFromCoords(int(row-'1'), int(col-'a'))
}

// Distance is the king-step (Chebyshev) distance between two squares.
func Distance(a, b Square) int {
	return max(abs(a.Row()-b.Row()), abs(a.Column()-b.Column()))
}
