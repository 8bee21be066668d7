// path: internal/game/bitboard.go
package game

import "math/bits"

// Bitboard is a set of squares on the 72-square board.
type Bitboard [2]uint64

func (b Bitboard) Empty() bool { return b[0] == 0 && b[1] == 0 }

func (b Bitboard) Add(s Square) Bitboard {
	b[s>>6] |= 1 << (s & 63)
	return b
}

// Iter calls fn for every square in ascending order.
func (b Bitboard) Iter(fn func(Square)) {
	for word := 0; word < 2; word++ {
		w := b[word]
		for w != 0 {
			idx := bits.TrailingZeros64(w)
			fn(Square(word*64 + idx))
			w &= w - 1
		}
	}
}
