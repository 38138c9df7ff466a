package ui

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hailam/fenboard/internal/board"
	"github.com/hailam/fenboard/internal/storage"
)

// UI Constants
const (
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	StatusHeight = 56
	ScreenWidth  = BoardSize
	ScreenHeight = BoardSize + StatusHeight
)

// UIScale is the global HiDPI scale factor for all UI drawing.
// Set by Viewer.Layout() and used by the input handler.
var UIScale float64 = 1.0

// viewState is everything the viewer shows apart from pixels.
type viewState struct {
	position  board.Position
	prefs     *storage.ViewerPreferences
	recent    []string // most recent first
	recentIdx int      // index into recent of the shown FEN, -1 if not from the list

	selected     board.Square
	hasSelection bool
}

func newViewState(pos board.Position, prefs *storage.ViewerPreferences, recent []string) *viewState {
	vs := &viewState{
		position:  pos,
		prefs:     prefs,
		recent:    recent,
		recentIdx: -1,
	}
	fen := pos.ToFEN()
	for i, f := range recent {
		if f == fen {
			vs.recentIdx = i
			break
		}
	}
	return vs
}

func (vs *viewState) flip() {
	vs.prefs.Flipped = !vs.prefs.Flipped
}

func (vs *viewState) toggleCoordinates() {
	vs.prefs.ShowCoordinates = !vs.prefs.ShowCoordinates
}

func (vs *viewState) reset() {
	vs.position = board.StartingPosition()
	vs.recentIdx = -1
	vs.hasSelection = false
}

// step moves through the recent list: +1 is older, -1 is newer.
// It returns false when there is nothing further in that direction.
func (vs *viewState) step(delta int) (bool, error) {
	next := vs.recentIdx + delta
	if next < 0 || next >= len(vs.recent) {
		return false, nil
	}
	pos, err := board.ParseFEN(vs.recent[next])
	if err != nil {
		return false, err
	}
	vs.position = pos
	vs.recentIdx = next
	vs.hasSelection = false
	return true, nil
}

func (vs *viewState) selectSquare(sq board.Square) {
	if vs.hasSelection && vs.selected == sq {
		vs.hasSelection = false
		return
	}
	vs.selected = sq
	vs.hasSelection = true
}

// status returns the lines shown below the board.
func (vs *viewState) status() []string {
	first := fmt.Sprintf("%s to move", vs.position.SideToMove())
	if vs.hasSelection {
		p := vs.position.PieceAt(vs.selected)
		if p == board.NoPiece {
			first += fmt.Sprintf("   %s: empty", vs.selected)
		} else {
			first += fmt.Sprintf("   %s: %s %s (%s)", vs.selected, p.Color(), p.Type(), p)
		}
	}
	second := vs.position.ToFEN()
	if vs.recentIdx >= 0 {
		second += fmt.Sprintf("   [%d/%d]", vs.recentIdx+1, len(vs.recent))
	}
	return []string{first, second}
}

// Viewer implements ebiten.Game. It displays one position and never
// modifies it.
type Viewer struct {
	*viewState

	renderer *Renderer
	input    *InputHandler
	storage  *storage.Storage
	scale    float64
}

// NewViewer creates a viewer showing pos. store may be nil, in which case
// preferences are defaults and nothing persists.
func NewViewer(store *storage.Storage, pos board.Position) *Viewer {
	prefs := storage.DefaultPreferences()
	var recent []string
	if store != nil {
		var err error
		if prefs, err = store.LoadPreferences(); err != nil {
			log.Printf("Warning: Failed to load preferences: %v", err)
			prefs = storage.DefaultPreferences()
		}
		if recent, err = store.RecentFENs(); err != nil {
			log.Printf("Warning: Failed to load recent positions: %v", err)
		}
	}

	v := &Viewer{
		viewState: newViewState(pos, prefs, recent),
		renderer:  NewRenderer(SquareSize),
		input:     NewInputHandler(),
		storage:   store,
		scale:     1.0,
	}
	v.renderer.SetTheme(ThemeByName(prefs.Theme))
	return v
}

// Update handles keyboard and mouse input.
func (v *Viewer) Update() error {
	v.input.Update()

	switch {
	case IsKeyJustPressed(ebiten.KeyF):
		v.flip()
		v.savePreferences()
	case IsKeyJustPressed(ebiten.KeyC):
		v.toggleCoordinates()
		v.savePreferences()
	case IsKeyJustPressed(ebiten.KeyHome):
		v.reset()
	case IsKeyJustPressed(ebiten.KeyLeft):
		v.stepRecent(1)
	case IsKeyJustPressed(ebiten.KeyRight):
		v.stepRecent(-1)
	}

	if v.input.IsLeftJustPressed() {
		if sq, ok := v.renderer.ScreenToSquare(v.input.MousePosition()); ok {
			v.selectSquare(sq)
		}
	}
	return nil
}

func (v *Viewer) stepRecent(delta int) {
	if _, err := v.step(delta); err != nil {
		log.Printf("Warning: Skipping unreadable recent position: %v", err)
	}
}

// Draw renders the board, pieces and status bar.
func (v *Viewer) Draw(screen *ebiten.Image) {
	v.renderer.SetScale(v.scale)
	v.renderer.SetFlipped(v.prefs.Flipped)

	screen.Fill(v.renderer.Theme().Background)
	v.renderer.DrawBoard(screen, v.prefs.ShowCoordinates)
	if v.hasSelection {
		v.renderer.HighlightSquare(screen, v.selected)
	}
	v.renderer.DrawPieces(screen, &v.position)
	v.renderer.DrawStatus(screen, v.status())
}

// Layout returns the screen size in device pixels.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Get and store device scale factor (2.0 on Retina, 1.0 on standard displays)
	v.scale = ebiten.Monitor().DeviceScaleFactor()
	if v.scale < 1.0 {
		v.scale = 1.0
	}
	UIScale = v.scale
	return int(float64(ScreenWidth) * v.scale), int(float64(ScreenHeight) * v.scale)
}

func (v *Viewer) savePreferences() {
	if v.storage == nil {
		return
	}
	if err := v.storage.SavePreferences(v.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

// Close saves preferences and releases storage.
func (v *Viewer) Close() {
	if v.storage != nil {
		v.savePreferences()
		v.storage.Close()
	}
}
