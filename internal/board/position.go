package board

import (
	"fmt"
	"strings"
)

// Position represents a chess position: the side to move and twelve
// bit-planes, one per piece, indexed by the piece's canonical index.
//
// A well-formed position has each square set in at most one plane.
// SetSquare maintains that; PositionFromPlanes does not, see Validate.
// Position is a plain value: copying it copies all planes.
type Position struct {
	planes     [NumPieces]Bitboard
	sideToMove Color
}

// backRank is the starting arrangement of each color's first rank, files a..h.
var backRank = [NumFiles]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// EmptyPosition creates a position with no pieces.
func EmptyPosition(sideToMove Color) Position {
	return Position{sideToMove: sideToMove}
}

// StartingPosition creates the standard initial arrangement with White to move.
func StartingPosition() Position {
	pos := EmptyPosition(White)
	for file, pt := range backRank {
		pos.SetSquare(MustSquare(0, file), NewPiece(White, pt))
		pos.SetSquare(MustSquare(1, file), WhitePawn)
		pos.SetSquare(MustSquare(6, file), BlackPawn)
		pos.SetSquare(MustSquare(7, file), NewPiece(Black, pt))
	}
	return pos
}

// PositionFromPlanes creates a position from raw bit-planes.
// The planes are taken as is; call Validate to check the occupancy invariant.
func PositionFromPlanes(planes [NumPieces]Bitboard, sideToMove Color) Position {
	return Position{planes: planes, sideToMove: sideToMove}
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
// Planes are scanned in canonical index order, so if a square is ever set
// in more than one plane the lowest index wins.
func (p *Position) PieceAt(sq Square) Piece {
	rank, file := sq.Rank(), sq.File()
	for i, bb := range p.planes {
		if bb.IsSet(rank, file) {
			return Piece(i)
		}
	}
	return NoPiece
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.PieceAt(sq) == NoPiece
}

// SetSquare places piece on sq. The square's bit is stored in every plane,
// set only in the piece's own plane, so any previous occupant is removed.
// Passing NoPiece empties the square.
func (p *Position) SetSquare(sq Square, piece Piece) {
	rank, file := sq.Rank(), sq.File()
	for i := range p.planes {
		p.planes[i] = p.planes[i].Store(rank, file, i == piece.Index())
	}
}

// ClearSquare removes whatever piece occupies sq.
func (p *Position) ClearSquare(sq Square) {
	p.SetSquare(sq, NoPiece)
}

// SideToMove returns the color to play.
func (p *Position) SideToMove() Color {
	return p.sideToMove
}

// SetSideToMove sets the color to play.
func (p *Position) SetSideToMove(c Color) {
	p.sideToMove = c
}

// Plane returns the bit-plane of a piece, or Empty for NoPiece.
func (p *Position) Plane(piece Piece) Bitboard {
	if piece >= NoPiece {
		return Empty
	}
	return p.planes[piece]
}

// Planes returns a copy of all twelve bit-planes.
func (p *Position) Planes() [NumPieces]Bitboard {
	return p.planes
}

// Occupied returns the union of all planes.
func (p *Position) Occupied() Bitboard {
	var occ Bitboard
	for _, bb := range p.planes {
		occ |= bb
	}
	return occ
}

// Count returns how many squares hold the given piece.
func (p *Position) Count(piece Piece) int {
	return p.Plane(piece).PopCount()
}

// Validate checks that no square is set in more than one plane.
// It reports the first offending square in a1..h8 order.
func (p *Position) Validate() error {
	var seen Bitboard
	var clash Bitboard
	for _, bb := range p.planes {
		clash |= seen & bb
		seen |= bb
	}
	if clash == Empty {
		return nil
	}
	for _, sq := range AllSquares() {
		if !clash.IsSet(sq.Rank(), sq.File()) {
			continue
		}
		var pieces []Piece
		for i, bb := range p.planes {
			if bb.IsSet(sq.Rank(), sq.File()) {
				pieces = append(pieces, Piece(i))
			}
		}
		return &OverlapError{Square: sq, Pieces: pieces}
	}
	return nil
}

// String returns the board with rank 8 on top, one line per rank,
// a piece letter per occupied square and '-' for empty ones.
func (p *Position) String() string {
	var sb strings.Builder
	sb.Grow(NumRanks * (NumFiles + 1))
	for rank := NumRanks - 1; rank >= 0; rank-- {
		for file := 0; file < NumFiles; file++ {
			sb.WriteByte(p.PieceAt(MustSquare(rank, file)).Char())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DebugString returns the twelve planes as hexadecimal, one per line,
// in canonical index order.
func (p *Position) DebugString() string {
	var sb strings.Builder
	for _, bb := range p.planes {
		fmt.Fprintf(&sb, "0x%016x\n", uint64(bb))
	}
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler using the FEN codec.
func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.ToFEN()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using the FEN codec.
func (p *Position) UnmarshalText(text []byte) error {
	pos, err := ParseFEN(string(text))
	if err != nil {
		return err
	}
	*p = pos
	return nil
}
