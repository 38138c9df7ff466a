package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w"

// ParseFEN decodes "<placement> <side>" into a Position.
//
// The text is split at the first space. The side to move runs up to the next
// single space; later fields (castling, en passant, clocks) are ignored. The
// placement must have 8 '/'-separated groups, rank 8 first, each summing to 8
// squares where a digit 0-9 is a run of empty squares.
func ParseFEN(fen string) (Position, error) {
	placement, rest, found := strings.Cut(fen, " ")
	if placement == "" {
		return Position{}, ErrNoPiecePlacement
	}
	if !found || rest == "" {
		return Position{}, ErrNoSideToMove
	}
	token, _, _ := strings.Cut(rest, " ")
	side, err := ParseColor(token)
	if err != nil {
		return Position{}, err
	}

	pos := EmptyPosition(side)
	if err := parsePiecePlacement(&pos, placement); err != nil {
		return Position{}, err
	}
	return pos, nil
}

// MustParseFEN is like ParseFEN but panics on error.
func MustParseFEN(fen string) Position {
	pos, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return pos
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	rows := strings.Split(placement, "/")
	if len(rows) != NumRanks {
		return &InvalidRowCountError{Count: len(rows)}
	}

	for i, row := range rows {
		rank := NumRanks - 1 - i // FEN starts from rank 8
		file := 0

		for _, c := range row {
			if c >= '0' && c <= '9' {
				file += int(c - '0')
				continue
			}

			piece, err := ParsePiece(string(c))
			if err != nil {
				return err
			}
			// Overlong rows keep counting so the error reports the real total.
			if file < NumFiles {
				pos.SetSquare(MustSquare(rank, file), piece)
			}
			file++
		}

		if file != NumFiles {
			return &InvalidPieceCountError{Count: file, Row: row}
		}
	}

	return nil
}

// ToFEN returns the FEN representation of the position: placement, a space,
// then "w" or "b". There is no trailing whitespace.
func (p *Position) ToFEN() string {
	var sb strings.Builder
	sb.Grow(len(StartFEN))

	for rank := NumRanks - 1; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < NumFiles; file++ {
			piece := p.PieceAt(MustSquare(rank, file))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(piece.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteByte(p.sideToMove.Char())

	return sb.String()
}
