// Package svgboard renders a position as an SVG diagram.
package svgboard

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/hailam/fenboard/internal/board"
)

// Options controls the diagram layout.
type Options struct {
	SquareSize  int  // Pixel size of one square
	Flipped     bool // Black at the bottom
	Coordinates bool // File letters and rank digits along the edges
	LightSquare string
	DarkSquare  string
}

// DefaultOptions returns the default diagram layout.
func DefaultOptions() Options {
	return Options{
		SquareSize:  45,
		Coordinates: true,
		LightSquare: "#f0d9b5",
		DarkSquare:  "#b58863",
	}
}

// figurines is indexed by canonical piece index.
var figurines = [board.NumPieces]string{
	"♙", "♘", "♖", "♗", "♕", "♔",
	"♟", "♞", "♜", "♝", "♛", "♚",
}

// Figurine returns the Unicode chess symbol for a piece, or "" for NoPiece.
func Figurine(p board.Piece) string {
	if p >= board.NoPiece {
		return ""
	}
	return figurines[p]
}

// Size returns the width and height of a diagram rendered with opts.
func (o Options) Size() (int, int) {
	side := o.SquareSize * board.NumFiles
	if o.Coordinates {
		side += o.margin()
	}
	return side, side
}

func (o Options) margin() int {
	return o.SquareSize / 2
}

// SquareOrigin returns the top-left pixel of a square.
func (o Options) SquareOrigin(sq board.Square) (int, int) {
	col, row := sq.File(), board.NumRanks-1-sq.Rank()
	if o.Flipped {
		col, row = board.NumFiles-1-sq.File(), sq.Rank()
	}
	x, y := col*o.SquareSize, row*o.SquareSize
	if o.Coordinates {
		x += o.margin()
	}
	return x, y
}

// Render writes pos as a standalone SVG document to w.
// Only PieceAt is used to read the position.
func Render(w io.Writer, pos *board.Position, opts Options) error {
	if opts.SquareSize <= 0 {
		return fmt.Errorf("svgboard: square size must be positive, got %d", opts.SquareSize)
	}

	width, height := opts.Size()
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title(pos.ToFEN())

	size := opts.SquareSize
	pieceStyle := fmt.Sprintf("font-size:%dpx;text-anchor:middle;dominant-baseline:central;font-family:serif", size*4/5)

	for _, sq := range board.AllSquares() {
		x, y := opts.SquareOrigin(sq)
		fill := opts.LightSquare
		if (sq.Rank()+sq.File())%2 == 0 {
			fill = opts.DarkSquare
		}
		canvas.Rect(x, y, size, size, "fill:"+fill)

		if p := pos.PieceAt(sq); p != board.NoPiece {
			canvas.Text(x+size/2, y+size/2, Figurine(p), pieceStyle, fmt.Sprintf(`data-piece="%s"`, p), fmt.Sprintf(`data-square="%s"`, sq))
		}
	}

	if opts.Coordinates {
		drawCoordinates(canvas, opts)
	}

	canvas.End()
	return nil
}

func drawCoordinates(canvas *svg.SVG, opts Options) {
	size := opts.SquareSize
	m := opts.margin()
	labelStyle := fmt.Sprintf("font-size:%dpx;text-anchor:middle;dominant-baseline:central;font-family:sans-serif;fill:#555", m*3/5)

	canvas.Gstyle(labelStyle)
	for file := 0; file < board.NumFiles; file++ {
		sq := board.MustSquare(0, file)
		x, _ := opts.SquareOrigin(sq)
		canvas.Text(x+size/2, board.NumRanks*size+m/2, string(sq.FileChar()))
	}
	for rank := 0; rank < board.NumRanks; rank++ {
		sq := board.MustSquare(rank, 0)
		_, y := opts.SquareOrigin(sq)
		canvas.Text(m/2, y+size/2, string(sq.RankChar()))
	}
	canvas.Gend()
}
