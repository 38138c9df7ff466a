package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// Offset returns the color's canonical index offset: 0 for White, 6 for Black.
func (c Color) Offset() int {
	return int(c) * NumPieceTypes
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// Char returns the FEN side to move character, 'w' or 'b'.
func (c Color) Char() byte {
	if c == Black {
		return 'b'
	}
	return 'w'
}

// ParseColor parses a FEN side to move token.
func ParseColor(s string) (Color, error) {
	switch s {
	case "w":
		return White, nil
	case "b":
		return Black, nil
	default:
		return White, &InvalidSideToMoveError{Token: s}
	}
}

// PieceType represents the type of a chess piece.
// The order is fixed: it is the per-color offset of each bit-plane.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Rook
	Bishop
	Queen
	King
)

// NumPieceTypes is the number of piece types per color.
const NumPieceTypes = 6

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Rook:
		return "Rook"
	case Bishop:
		return "Bishop"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	if pt >= NumPieceTypes {
		return ' '
	}
	return pieceChars[pt+NumPieceTypes]
}

// Piece combines Color and PieceType into a single value.
// The value is the canonical index Color.Offset() + PieceType, 0..11,
// and selects one of the twelve bit-planes of a Position.
type Piece uint8

const (
	WhitePawn   Piece = Piece(Pawn)
	WhiteKnight Piece = Piece(Knight)
	WhiteRook   Piece = Piece(Rook)
	WhiteBishop Piece = Piece(Bishop)
	WhiteQueen  Piece = Piece(Queen)
	WhiteKing   Piece = Piece(King)
	BlackPawn   Piece = Piece(Pawn) + NumPieceTypes
	BlackKnight Piece = Piece(Knight) + NumPieceTypes
	BlackRook   Piece = Piece(Rook) + NumPieceTypes
	BlackBishop Piece = Piece(Bishop) + NumPieceTypes
	BlackQueen  Piece = Piece(Queen) + NumPieceTypes
	BlackKing   Piece = Piece(King) + NumPieceTypes

	// NoPiece marks an empty square. It never matches a plane index.
	NoPiece Piece = 12
)

// NumPieces is the number of distinct pieces and bit-planes.
const NumPieces = 12

// pieceChars is indexed by canonical piece index.
const pieceChars = "PNRBQKpnrbqk"

// NewPiece creates a Piece from Color and PieceType.
func NewPiece(c Color, pt PieceType) Piece {
	if c > Black || pt >= NumPieceTypes {
		return NoPiece
	}
	return Piece(c.Offset() + int(pt))
}

// PieceFromIndex returns the piece with canonical index i.
// Indexes below 6 are White, the rest Black; i mod 6 selects the type.
func PieceFromIndex(i int) (Piece, error) {
	if i < 0 || i >= NumPieces {
		return NoPiece, &PieceIndexError{Index: i}
	}
	return Piece(i), nil
}

// Index returns the canonical index 0..11 of the piece.
func (p Piece) Index() int {
	return int(p)
}

// Type returns the PieceType of the piece. NoPiece has the out of range
// type PieceType(NumPieceTypes), whose String is "None".
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NumPieceTypes
	}
	return PieceType(p % NumPieceTypes)
}

// Color returns the Color of the piece.
// NoPiece has no color; the result for it is meaningless.
func (p Piece) Color() Color {
	if p >= NumPieceTypes {
		return Black
	}
	return White
}

// Char returns the FEN letter for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) Char() byte {
	if p >= NoPiece {
		return '-'
	}
	return pieceChars[p]
}

// String returns the FEN letter for the piece, or "-" for NoPiece.
func (p Piece) String() string {
	return string(p.Char())
}

// PieceFromChar converts a FEN character to a Piece, or NoPiece if it is not a piece letter.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'R':
		return WhiteRook
	case 'B':
		return WhiteBishop
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'r':
		return BlackRook
	case 'b':
		return BlackBishop
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// ParsePiece parses a single piece letter.
// Anything other than one of the twelve letters, including longer input,
// fails with an *InvalidPieceError.
func ParsePiece(s string) (Piece, error) {
	if len(s) != 1 {
		return NoPiece, &InvalidPieceError{Letter: s}
	}
	p := PieceFromChar(s[0])
	if p == NoPiece {
		return NoPiece, &InvalidPieceError{Letter: s}
	}
	return p, nil
}

// AllPieces returns the twelve pieces in canonical index order.
func AllPieces() []Piece {
	pieces := make([]Piece, NumPieces)
	for i := range pieces {
		pieces[i] = Piece(i)
	}
	return pieces
}
