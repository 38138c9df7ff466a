// FENBoard - a read-only chess position viewer built with Ebitengine
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hailam/fenboard/internal/board"
	"github.com/hailam/fenboard/internal/storage"
	"github.com/hailam/fenboard/internal/ui"
)

var fenFlag = flag.String("fen", "", "position to open (default: last opened position)")

func main() {
	flag.Parse()
	if err := run(*fenFlag); err != nil {
		log.Fatal(err)
	}
}

// run opens storage, shows the viewer until the window closes and saves
// preferences on every exit path.
func run(fen string) error {
	store, err := storage.NewStorage()
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
	}

	pos, err := initialPosition(store, fen)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return err
	}

	viewer := ui.NewViewer(store, pos)
	defer viewer.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("FENBoard")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(viewer)
}

// initialPosition decodes fen, or falls back to the last opened position.
// A decoded fen is remembered for the next launch.
func initialPosition(store *storage.Storage, fen string) (board.Position, error) {
	if fen == "" {
		if store == nil {
			return board.StartingPosition(), nil
		}
		pos, err := store.LastPosition()
		if err != nil {
			log.Printf("Warning: Failed to load last position: %v", err)
			return board.StartingPosition(), nil
		}
		return pos, nil
	}

	pos, err := board.ParseFEN(fen)
	if err != nil {
		return board.Position{}, err
	}
	if store != nil {
		if err := store.RememberFEN(fen); err != nil {
			log.Printf("Warning: Failed to remember position: %v", err)
		}
	}
	return pos, nil
}
