package console

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hailam/fenboard/internal/board"
)

func TestRunScript(t *testing.T) {
	script := strings.Join([]string{
		"position empty b",
		"put e1 K",
		"put e8 k",
		"put d4 Q",
		"",
		"fen",
		"square d4",
		"square d5",
		"clear d4",
		"fen",
		"side w",
		"fen",
		"quit",
		"fen",
	}, "\n")

	var out strings.Builder
	s := New()
	if err := s.Run(strings.NewReader(script), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := strings.Join([]string{
		"4k3/8/8/8/3Q4/8/8/4K3 b",
		"d4 Q",
		"d5 -",
		"4k3/8/8/8/8/8/8/4K3 b",
		"4k3/8/8/8/8/8/8/4K3 w",
		"",
	}, "\n")
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunReportsErrorsAndContinues(t *testing.T) {
	script := "position fen rnbqkbnx/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w\nbogus\nput z9 Q\nfen\n"

	var out strings.Builder
	if err := New().Run(strings.NewReader(script), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out.String())
	}
	if lines[0] != `error: invalid FEN: invalid piece "x"` {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != `error: unknown command "bogus"` {
		t.Errorf("line 1 = %q", lines[1])
	}
	if lines[2] != `error: invalid square "z9"` {
		t.Errorf("line 2 = %q", lines[2])
	}
	if lines[3] != board.StartFEN {
		t.Errorf("position changed after failed load: %q", lines[3])
	}
}

func TestExecuteErrorsAreInspectable(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"position fen rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", board.ErrNoSideToMove},
		{"position fen rnbqkbn/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w", board.ErrInvalidPieceCount},
		{"position fen rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w", board.ErrInvalidRowCount},
		{"position fen", board.ErrNoPiecePlacement},
		{"position empty x", board.ErrInvalidSideToMove},
		{"position", ErrUsage},
		{"put e4", ErrUsage},
		{"put e4 X", board.ErrInvalidPiece},
		{"plane 7", board.ErrInvalidPiece},
		{"square", ErrUsage},
		{"clear i1", board.ErrInvalidSquare},
		{"side white", board.ErrInvalidSideToMove},
		{"castle", ErrUnknownCommand},
		{"quit", ErrQuit},
	}
	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			_, err := New().Execute(tc.line)
			if !errors.Is(err, tc.want) {
				t.Errorf("Execute(%q) error = %v, want %v", tc.line, err, tc.want)
			}
		})
	}
}

func TestExecuteDisplayAndPlanes(t *testing.T) {
	s := New()

	out, err := s.Execute("d")
	if err != nil {
		t.Fatalf("d: %v", err)
	}
	if !strings.HasPrefix(out, "rnbqkbnr\npppppppp\n--------\n") {
		t.Errorf("d output =\n%s", out)
	}
	if !strings.HasSuffix(out, "side to move: White\n") {
		t.Errorf("d output missing side to move:\n%s", out)
	}

	out, err = s.Execute("planes")
	if err != nil {
		t.Fatalf("planes: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 12 {
		t.Fatalf("planes printed %d lines, want 12", len(lines))
	}
	if lines[0] != "P 0x00ff000000000000" || lines[11] != "k 0x0000000000000008" {
		t.Errorf("planes output =\n%s", out)
	}

	out, err = s.Execute("plane R")
	if err != nil {
		t.Fatalf("plane: %v", err)
	}
	if want := "10000001\n" + strings.Repeat("00000000\n", 7); out != want {
		t.Errorf("plane R =\n%s\nwant\n%s", out, want)
	}

	out, err = s.Execute("validate")
	if err != nil || out != "ok" {
		t.Errorf("validate = %q, %v", out, err)
	}
}

func TestSessionPositionAccessors(t *testing.T) {
	s := New()
	if s.Position() != board.StartingPosition() {
		t.Error("New() should start from the starting position")
	}
	s.SetPosition(board.EmptyPosition(board.Black))
	out, _ := s.Execute("fen")
	if out != "8/8/8/8/8/8/8/8 b" {
		t.Errorf("fen after SetPosition = %q", out)
	}
}
