// Package board implements the chess position model: bit-planes, squares,
// piece identity, positions and the FEN interchange codec.
package board

// Board dimensions.
const (
	NumRanks = 8
	NumFiles = 8
)

// Square is a validated (rank, file) pair.
// Rank 0 is the first rank (White's side), file 0 is the a-file.
// The zero value is a1.
type Square struct {
	rank uint8
	file uint8
}

// NewSquare creates a square from rank and file (0-indexed).
// It fails with a *SquareRangeError if either is outside 0..7.
func NewSquare(rank, file int) (Square, error) {
	if rank < 0 || rank >= NumRanks || file < 0 || file >= NumFiles {
		return Square{}, &SquareRangeError{Rank: rank, File: file}
	}
	return Square{rank: uint8(rank), file: uint8(file)}, nil
}

// MustSquare is like NewSquare but panics on an out of range coordinate.
func MustSquare(rank, file int) Square {
	sq, err := NewSquare(rank, file)
	if err != nil {
		panic(err)
	}
	return sq
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
// Exactly two characters are accepted: a file letter a-h then a rank digit 1-8.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, &InvalidSquareError{Text: s}
	}
	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'
	if file < 0 || file >= NumFiles || rank < 0 || rank >= NumRanks {
		return Square{}, &InvalidSquareError{Text: s}
	}
	return Square{rank: uint8(rank), file: uint8(file)}, nil
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq.rank)
}

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq.file)
}

// RankChar returns the rank digit '1'..'8'.
func (sq Square) RankChar() byte {
	return '1' + sq.rank
}

// FileChar returns the file letter 'a'..'h'.
func (sq Square) FileChar() byte {
	return 'a' + sq.file
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	return string([]byte{sq.FileChar(), sq.RankChar()})
}

// AllSquares returns the 64 squares ordered a1, b1, ..., h1, a2, ..., h8.
func AllSquares() []Square {
	squares := make([]Square, 0, NumRanks*NumFiles)
	for rank := 0; rank < NumRanks; rank++ {
		for file := 0; file < NumFiles; file++ {
			squares = append(squares, Square{rank: uint8(rank), file: uint8(file)})
		}
	}
	return squares
}
