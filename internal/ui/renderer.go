package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/hailam/fenboard/internal/board"
	"github.com/hailam/fenboard/internal/storage"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
	MutedText      color.RGBA
}

// ThemeByName returns the theme stored under name in the viewer
// preferences. Unknown names get the brown theme.
func ThemeByName(name string) *Theme {
	t := &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180}, // Yellow highlight
		Background:     color.RGBA{40, 44, 52, 255},
		TextColor:      color.RGBA{220, 220, 220, 255},
		MutedText:      color.RGBA{150, 150, 150, 255},
	}
	switch name {
	case storage.ThemeGreen:
		t.LightSquare = color.RGBA{238, 238, 210, 255}
		t.DarkSquare = color.RGBA{118, 150, 86, 255}
	case storage.ThemeBlue:
		t.LightSquare = color.RGBA{222, 227, 230, 255}
		t.DarkSquare = color.RGBA{140, 162, 173, 255}
	}
	return t
}

// geometry maps squares to logical screen pixels and back.
type geometry struct {
	squareSize int
	flipped    bool
}

// SquareToScreen returns the top-left corner of sq in logical pixels.
func (g geometry) SquareToScreen(sq board.Square) (int, int) {
	col, row := sq.File(), board.NumRanks-1-sq.Rank() // rank 1 at the bottom
	if g.flipped {
		col, row = board.NumFiles-1-sq.File(), sq.Rank()
	}
	return col * g.squareSize, row * g.squareSize
}

// ScreenToSquare returns the square under a logical pixel, or false if
// the point is off the board.
func (g geometry) ScreenToSquare(x, y int) (board.Square, bool) {
	boardSize := g.squareSize * board.NumFiles
	if x < 0 || x >= boardSize || y < 0 || y >= boardSize {
		return board.Square{}, false
	}
	col, row := x/g.squareSize, y/g.squareSize
	rank, file := board.NumRanks-1-row, col
	if g.flipped {
		rank, file = row, board.NumFiles-1-col
	}
	return board.MustSquare(rank, file), true
}

// Renderer handles all drawing operations.
type Renderer struct {
	geometry
	sprites *SpriteManager
	theme   *Theme
	scale   float64 // HiDPI scale factor
}

// NewRenderer creates a new renderer.
func NewRenderer(squareSize int) *Renderer {
	return &Renderer{
		geometry: geometry{squareSize: squareSize},
		sprites:  NewSpriteManager(squareSize),
		theme:    ThemeByName(storage.ThemeBrown),
		scale:    1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
}

// SetFlipped puts Black at the bottom when flipped is true.
func (r *Renderer) SetFlipped(flipped bool) {
	r.flipped = flipped
}

// Flipped reports whether Black is at the bottom.
func (r *Renderer) Flipped() bool {
	return r.flipped
}

// SetTheme replaces the color scheme.
func (r *Renderer) SetTheme(t *Theme) {
	r.theme = t
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// s returns the scaled value for rendering.
func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// DrawBoard draws the squares and, if coords is set, the file and rank labels.
func (r *Renderer) DrawBoard(screen *ebiten.Image, coords bool) {
	for _, sq := range board.AllSquares() {
		x, y := r.SquareToScreen(sq)
		vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.squareSize), r.s(r.squareSize), r.squareColor(sq), false)
	}
	if coords {
		r.drawCoordinates(screen)
	}
}

func (r *Renderer) squareColor(sq board.Square) color.RGBA {
	if (sq.Rank()+sq.File())%2 == 0 {
		return r.theme.DarkSquare
	}
	return r.theme.LightSquare
}

// drawCoordinates labels the bottom row with files and the left column
// with ranks, inside the squares, in the opposite square color.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := regularFace(coordFontSize * r.scale)
	if face == nil {
		return
	}
	pad := 3

	for _, sq := range board.AllSquares() {
		x, y := r.SquareToScreen(sq)
		onBottom := y == (board.NumRanks-1)*r.squareSize
		onLeft := x == 0
		if !onBottom && !onLeft {
			continue
		}
		labelColor := r.theme.LightSquare
		if r.squareColor(sq) == r.theme.LightSquare {
			labelColor = r.theme.DarkSquare
		}

		if onBottom {
			label := string(sq.FileChar())
			w, h := text.Measure(label, face, 0)
			op := &text.DrawOptions{}
			op.GeoM.Translate(float64(r.s(x+r.squareSize-pad))-w, float64(r.s(y+r.squareSize-pad))-h)
			op.ColorScale.ScaleWithColor(labelColor)
			text.Draw(screen, label, face, op)
		}
		if onLeft {
			op := &text.DrawOptions{}
			op.GeoM.Translate(float64(r.s(x+pad)), float64(r.s(y+pad)))
			op.ColorScale.ScaleWithColor(labelColor)
			text.Draw(screen, string(sq.RankChar()), face, op)
		}
	}
}

// HighlightSquare draws the selection overlay on a square.
func (r *Renderer) HighlightSquare(screen *ebiten.Image, sq board.Square) {
	x, y := r.SquareToScreen(sq)
	vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.squareSize), r.s(r.squareSize), r.theme.SelectedSquare, false)
}

// DrawPieces draws every occupied square of pos. Occupants are read
// through PieceAt only.
func (r *Renderer) DrawPieces(screen *ebiten.Image, pos *board.Position) {
	for _, sq := range board.AllSquares() {
		piece := pos.PieceAt(sq)
		if piece == board.NoPiece {
			continue
		}
		x, y := r.SquareToScreen(sq)
		r.sprites.DrawPieceAt(screen, piece, float64(r.s(x)), float64(r.s(y)), r.scale)
	}
}

// DrawStatus draws text lines in the status bar below the board.
// The first line is bold.
func (r *Renderer) DrawStatus(screen *ebiten.Image, lines []string) {
	top := r.squareSize * board.NumRanks
	lineHeight := 20
	for i, line := range lines {
		face := regularFace(statusFontSize * r.scale)
		c := r.theme.MutedText
		if i == 0 {
			face = boldFace(statusFontSize * r.scale)
			c = r.theme.TextColor
		}
		if face == nil {
			return
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(r.s(10)), float64(r.s(top+6+i*lineHeight)))
		op.ColorScale.ScaleWithColor(c)
		text.Draw(screen, line, face, op)
	}
}
