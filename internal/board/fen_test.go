package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/corentings/chess/v2"
	"github.com/google/go-cmp/cmp"
)

// equateErrors treats two errors as equal when they have the same dynamic
// type and message, so typed errors compare by payload.
var equateErrors = cmp.Comparer(func(a, b error) bool {
	return fmt.Sprintf("%T %v", a, a) == fmt.Sprintf("%T %v", b, b)
})

func TestToFENStartingPosition(t *testing.T) {
	pos := StartingPosition()
	if got := pos.ToFEN(); got != StartFEN {
		t.Errorf("ToFEN() = %q, want %q", got, StartFEN)
	}
	if StartFEN != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w" {
		t.Errorf("StartFEN = %q", StartFEN)
	}
}

func TestParseFENStartingPosition(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if pos != StartingPosition() {
		t.Errorf("ParseFEN(StartFEN) =\n%s\nwant starting position", pos.String())
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want error
	}{
		{"no side to move", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", ErrNoSideToMove},
		{"blank side to move", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR ", ErrNoSideToMove},
		{"empty", "", ErrNoPiecePlacement},
		{"no placement", " w", ErrNoPiecePlacement},
		{"invalid piece", "rnbqkbnx/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w", &InvalidPieceError{Letter: "x"}},
		{"nine digit", "rnbqkbnr/pppppppp/8/8/9/8/PPPPPPPP/RNBQKBNR w", &InvalidPieceCountError{Count: 9, Row: "9"}},
		{"zero digit short", "rnbqkbnr/pppppppp/8/8/07/8/PPPPPPPP/RNBQKBNR w", &InvalidPieceCountError{Count: 7, Row: "07"}},
		{"double space before side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR  w", &InvalidSideToMoveError{Token: ""}},
		{"short row", "rnbqkbn/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w", &InvalidPieceCountError{Count: 7, Row: "rnbqkbn"}},
		{"long row", "rnbqkbnr/pppppppp/8/8/44p/8/PPPPPPPP/RNBQKBNR w", &InvalidPieceCountError{Count: 9, Row: "44p"}},
		{"empty row", "rnbqkbnr/pppppppp/8//8/8/PPPPPPPP/RNBQKBNR w", &InvalidPieceCountError{Count: 0, Row: ""}},
		{"seven rows", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w", &InvalidRowCountError{Count: 7}},
		{"nine rows", "rnbqkbnr/pppppppp/8/8/8/8/8/PPPPPPPP/RNBQKBNR w", &InvalidRowCountError{Count: 9}},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x", &InvalidSideToMoveError{Token: "x"}},
		{"upper side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR W", &InvalidSideToMoveError{Token: "W"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFEN(tc.fen)
			if err == nil {
				t.Fatalf("ParseFEN(%q) succeeded, want %v", tc.fen, tc.want)
			}
			if diff := cmp.Diff(tc.want, err, equateErrors); diff != "" {
				t.Errorf("ParseFEN(%q) error mismatch (-want +got):\n%s", tc.fen, diff)
			}
		})
	}
}

func TestParseFENErrorKinds(t *testing.T) {
	_, err := ParseFEN("rnbqkbn/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w")
	var pce *InvalidPieceCountError
	if !errors.As(err, &pce) {
		t.Fatalf("error = %v, want *InvalidPieceCountError", err)
	}
	if pce.Count != 7 || pce.Row != "rnbqkbn" {
		t.Errorf("InvalidPieceCountError = %+v", pce)
	}
	if !errors.Is(err, ErrInvalidPieceCount) {
		t.Error("error does not match ErrInvalidPieceCount")
	}

	_, err = ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w")
	var rce *InvalidRowCountError
	if !errors.As(err, &rce) || rce.Count != 7 {
		t.Errorf("error = %v, want row count 7", err)
	}

	_, err = ParseFEN("rnbqkbnx/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w")
	var ipe *InvalidPieceError
	if !errors.As(err, &ipe) || ipe.Letter != "x" {
		t.Errorf("error = %v, want invalid piece \"x\"", err)
	}
}

func TestParseFENDigitRuns(t *testing.T) {
	tests := []struct {
		fen  string
		want string
	}{
		{"rnbqkbnr/pppppppp/8/8/08/8/PPPPPPPP/RNBQKBNR w", StartFEN},
		{"8/8/8/8/8/8/8/0k07 b", "8/8/8/8/8/8/8/k7 b"},
		{"8/8/8/8/8/8/8/44 w", "8/8/8/8/8/8/8/8 w"},
	}
	for _, tc := range tests {
		pos, err := ParseFEN(tc.fen)
		if err != nil {
			t.Errorf("ParseFEN(%q): %v", tc.fen, err)
			continue
		}
		if got := pos.ToFEN(); got != tc.want {
			t.Errorf("ParseFEN(%q).ToFEN() = %q, want %q", tc.fen, got, tc.want)
		}
	}
}

func TestParseFENIgnoresTrailingFields(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if pos.SideToMove() != Black {
		t.Errorf("SideToMove() = %v, want Black", pos.SideToMove())
	}
	if got := pos.ToFEN(); got != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b" {
		t.Errorf("ToFEN() = %q", got)
	}
}

func TestToFENRunLengths(t *testing.T) {
	pos := EmptyPosition(Black)
	if got, want := pos.ToFEN(), "8/8/8/8/8/8/8/8 b"; got != want {
		t.Errorf("empty ToFEN() = %q, want %q", got, want)
	}

	pos.SetSquare(MustSquare(7, 7), BlackKing) // h8
	pos.SetSquare(MustSquare(0, 0), WhiteKing) // a1
	pos.SetSquare(MustSquare(3, 3), WhiteQueen)
	pos.SetSquare(MustSquare(3, 4), BlackPawn)
	if got, want := pos.ToFEN(), "7k/8/8/8/3Qp3/8/8/K7 b"; got != want {
		t.Errorf("ToFEN() = %q, want %q", got, want)
	}
	if strings.ContainsAny(pos.ToFEN(), "\n\t") || strings.HasSuffix(pos.ToFEN(), " ") {
		t.Error("ToFEN() contains stray whitespace")
	}
}

var roundTripFENs = []string{
	StartFEN,
	"8/8/8/8/8/8/8/8 w",
	"8/8/8/8/8/8/8/8 b",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w",
	"r2q1rk1/pP1p2pp/Q4n2/bbp1p3/Np6/1B3NBn/pPPP1PPP/R3K2R b",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w",
	"QQQQQQQQ/qqqqqqqq/KKKKKKKK/kkkkkkkk/RRRRRRRR/rrrrrrrr/BBBBBBBB/bbbbbbbb b",
	"1n1n1n1n/N1N1N1N1/8/8/8/8/p6P/7p w",
}

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range roundTripFENs {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := pos.ToFEN(); got != fen {
			t.Errorf("ToFEN(ParseFEN(%q)) = %q", fen, got)
		}
		again, err := ParseFEN(pos.ToFEN())
		if err != nil {
			t.Fatalf("ParseFEN(ToFEN()): %v", err)
		}
		if again != pos {
			t.Errorf("ParseFEN(ToFEN(p)) != p for %q", fen)
		}
		if err := pos.Validate(); err != nil {
			t.Errorf("decoded position invalid: %v", err)
		}
	}
}

func TestFENRoundTripEverySquare(t *testing.T) {
	for _, sq := range AllSquares() {
		for _, piece := range AllPieces() {
			pos := EmptyPosition(piece.Color())
			pos.SetSquare(sq, piece)
			decoded, err := ParseFEN(pos.ToFEN())
			if err != nil {
				t.Fatalf("ParseFEN(%q): %v", pos.ToFEN(), err)
			}
			if decoded != pos {
				t.Fatalf("round trip of %v on %v gave %q", piece, sq, decoded.ToFEN())
			}
		}
	}
}

// TestPlacementMatchesReference checks placement parsing and formatting
// against an independent FEN implementation.
func TestPlacementMatchesReference(t *testing.T) {
	for _, fen := range roundTripFENs {
		placement, _, _ := strings.Cut(fen, " ")

		var ref chess.Board
		if err := ref.UnmarshalText([]byte(placement)); err != nil {
			t.Fatalf("reference rejected %q: %v", placement, err)
		}

		pos := MustParseFEN(fen)
		got, _, _ := strings.Cut(pos.ToFEN(), " ")
		if got != ref.String() {
			t.Errorf("placement = %q, reference = %q", got, ref.String())
		}
	}

	// Both implementations reject the same malformed placements.
	for _, placement := range []string{
		"rnbqkbnx/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		"rnbqkbn/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP",
	} {
		var ref chess.Board
		if err := ref.UnmarshalText([]byte(placement)); err == nil {
			t.Errorf("reference accepted %q", placement)
		}
		if _, err := ParseFEN(placement + " w"); err == nil {
			t.Errorf("ParseFEN accepted %q", placement)
		}
	}
}

func TestPositionJSON(t *testing.T) {
	type doc struct {
		Position Position `json:"position"`
	}
	in := doc{Position: MustParseFEN("8/8/8/3k4/8/8/8/4K2R b")}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `{"position":"8/8/8/3k4/8/8/8/4K2R b"}`; string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var out doc
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Position != in.Position {
		t.Errorf("Unmarshal = %q, want %q", out.Position.ToFEN(), in.Position.ToFEN())
	}

	if err := json.Unmarshal([]byte(`{"position":"8/8 w"}`), &out); !errors.Is(err, ErrInvalidRowCount) {
		t.Errorf("Unmarshal bad FEN error = %v, want ErrInvalidRowCount", err)
	}
}

func TestMustParseFENPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseFEN did not panic on bad input")
		}
	}()
	MustParseFEN("not a fen")
}
