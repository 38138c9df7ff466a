package board

import (
	"math/bits"
	"strings"
)

// Bitboard represents a 64-bit board where each bit corresponds to a square.
// Bit index n = 63 - (rank*8 + file): bit 63 is a1 (rank 0, file 0) and
// bit 0 is h8 (rank 7, file 7). Serialized and printed bit patterns depend on
// this ordering.
type Bitboard uint64

const (
	Empty    Bitboard = 0
	Universe Bitboard = 0xFFFFFFFFFFFFFFFF
)

// bitIndex returns the bit position for a rank and file in 0..7.
func bitIndex(rank, file int) uint {
	return uint(63 - (rank*8 + file))
}

// boolBit returns 1 for true and 0 for false.
func boolBit(v bool) Bitboard {
	if v {
		return 1
	}
	return 0
}

// IsSet returns true if the bit at rank, file is set.
func (b Bitboard) IsSet(rank, file int) bool {
	return (b>>bitIndex(rank, file))&1 != 0
}

// Set returns b with the bit at rank, file set.
func (b Bitboard) Set(rank, file int) Bitboard {
	return b | 1<<bitIndex(rank, file)
}

// Clear returns b with the bit at rank, file cleared.
func (b Bitboard) Clear(rank, file int) Bitboard {
	return b &^ (1 << bitIndex(rank, file))
}

// Store returns b with the bit at rank, file set to value.
// The bit is masked out and the new value or'ed in, without branching on the old state.
func (b Bitboard) Store(rank, file int, value bool) Bitboard {
	n := bitIndex(rank, file)
	return b&^(1<<n) | boolBit(value)<<n
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// Bits returns the 64 bits in row-major order: element 0 is bit 63 (a1),
// element 63 is bit 0 (h8).
func (b Bitboard) Bits() [64]bool {
	var out [64]bool
	for i := range out {
		out[i] = (b<<uint(i))&(1<<63) != 0
	}
	return out
}

// String returns 8 lines of 8 '1'/'0' characters in raw bit order,
// rank 0 first. It is not a rendered chessboard.
func (b Bitboard) String() string {
	var sb strings.Builder
	sb.Grow(72)
	for i, bit := range b.Bits() {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
		if i%8 == 7 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
