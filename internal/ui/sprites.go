// Package ui implements a read-only board viewer using Ebitengine.
package ui

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hailam/fenboard/internal/board"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

// SpriteManager manages piece sprites.
type SpriteManager struct {
	pieces      [board.NumPieces]*ebiten.Image
	size        int     // Display size (e.g., 80)
	renderScale float64 // Render at higher resolution for quality (e.g., 3.0)
}

// NewSpriteManager creates a new sprite manager with pieces of the given size.
func NewSpriteManager(size int) *SpriteManager {
	sm := &SpriteManager{
		size:        size,
		renderScale: 3.0,
	}
	sm.loadPieces()
	return sm
}

// assetPath returns the embedded SVG for a piece, selected by its letter:
// "P" is assets/pieces/wP.svg and "p" is assets/pieces/bP.svg.
func assetPath(p board.Piece) string {
	letter := p.Char()
	color := byte('w')
	if letter >= 'a' && letter <= 'z' {
		color = 'b'
		letter -= 'a' - 'A'
	}
	return fmt.Sprintf("assets/pieces/%c%c.svg", color, letter)
}

// rasterizeSVG renders an SVG icon into a size x size RGBA image.
func rasterizeSVG(data []byte, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}

// loadPieces loads all piece sprites from embedded SVG files.
func (sm *SpriteManager) loadPieces() {
	renderSize := int(float64(sm.size) * sm.renderScale)

	for _, piece := range board.AllPieces() {
		path := assetPath(piece)
		data, err := pieceAssets.ReadFile(path)
		if err != nil {
			log.Printf("Failed to read piece asset %s: %v", path, err)
			continue
		}

		rgba, err := rasterizeSVG(data, renderSize)
		if err != nil {
			log.Printf("Failed to parse SVG %s: %v", path, err)
			continue
		}
		sm.pieces[piece] = ebiten.NewImageFromImage(rgba)
	}
}

// GetPiece returns the sprite for a piece, or nil for NoPiece.
func (sm *SpriteManager) GetPiece(p board.Piece) *ebiten.Image {
	if p >= board.NoPiece {
		return nil
	}
	return sm.pieces[p]
}

// DrawPieceAt draws a piece with its top-left corner at the given pixel
// coordinates, scaled by scale for HiDPI screens.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p board.Piece, x, y float64, scale float64) {
	sprite := sm.GetPiece(p)
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	s := scale / sm.renderScale
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// Size returns the size of piece sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}
