package board

import (
	"errors"
	"fmt"
)

// Sentinel errors for each failure category.
// Typed errors below unwrap to one of these, so errors.Is reports the category
// and errors.As recovers the details.
var (
	// ErrNoPiecePlacement indicates a FEN string without a piece placement section.
	ErrNoPiecePlacement = errors.New("no <piece placement> section found")

	// ErrNoSideToMove indicates a FEN string without a side to move section.
	ErrNoSideToMove = errors.New("no <side to move> section found")

	ErrInvalidSideToMove  = errors.New("invalid side to move")
	ErrInvalidPiece       = errors.New("invalid piece")
	ErrInvalidPieceCount  = errors.New("invalid piece count")
	ErrInvalidRowCount    = errors.New("invalid row count")
	ErrSquareOutOfRange   = errors.New("square out of range")
	ErrInvalidSquare      = errors.New("invalid square")
	ErrInvalidPieceIndex  = errors.New("invalid piece index")
	ErrOverlappingSquares = errors.New("square occupied by more than one piece")
)

// InvalidSideToMoveError reports a side to move token other than "w" or "b".
type InvalidSideToMoveError struct {
	Token string
}

func (e *InvalidSideToMoveError) Error() string {
	return fmt.Sprintf("invalid side to move %q", e.Token)
}

func (e *InvalidSideToMoveError) Unwrap() error { return ErrInvalidSideToMove }

// InvalidPieceError reports text that is not one of the twelve piece letters.
type InvalidPieceError struct {
	Letter string
}

func (e *InvalidPieceError) Error() string {
	return fmt.Sprintf("invalid piece %q", e.Letter)
}

func (e *InvalidPieceError) Unwrap() error { return ErrInvalidPiece }

// InvalidPieceCountError reports a rank group whose squares do not sum to 8.
type InvalidPieceCountError struct {
	Count int
	Row   string
}

func (e *InvalidPieceCountError) Error() string {
	return fmt.Sprintf("invalid piece count %d in row %q", e.Count, e.Row)
}

func (e *InvalidPieceCountError) Unwrap() error { return ErrInvalidPieceCount }

// InvalidRowCountError reports a placement that does not have exactly 8 rank groups.
type InvalidRowCountError struct {
	Count int
}

func (e *InvalidRowCountError) Error() string {
	return fmt.Sprintf("invalid row count %d", e.Count)
}

func (e *InvalidRowCountError) Unwrap() error { return ErrInvalidRowCount }

// SquareRangeError reports a rank or file outside 0..7.
type SquareRangeError struct {
	Rank int
	File int
}

func (e *SquareRangeError) Error() string {
	return fmt.Sprintf("square out of range: rank %d, file %d", e.Rank, e.File)
}

func (e *SquareRangeError) Unwrap() error { return ErrSquareOutOfRange }

// InvalidSquareError reports text that is not an algebraic square name.
type InvalidSquareError struct {
	Text string
}

func (e *InvalidSquareError) Error() string {
	return fmt.Sprintf("invalid square %q", e.Text)
}

func (e *InvalidSquareError) Unwrap() error { return ErrInvalidSquare }

// PieceIndexError reports a canonical piece index outside 0..11.
type PieceIndexError struct {
	Index int
}

func (e *PieceIndexError) Error() string {
	return fmt.Sprintf("invalid piece index %d", e.Index)
}

func (e *PieceIndexError) Unwrap() error { return ErrInvalidPieceIndex }

// OverlapError reports a square set in more than one bit-plane.
type OverlapError struct {
	Square Square
	Pieces []Piece
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("square %s occupied by %d pieces %v", e.Square, len(e.Pieces), e.Pieces)
}

func (e *OverlapError) Unwrap() error { return ErrOverlappingSquares }
