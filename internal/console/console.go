// Package console implements a line-oriented command protocol for loading,
// inspecting and editing a position.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hailam/fenboard/internal/board"
)

// ErrQuit is returned by Execute when the session should end.
var ErrQuit = errors.New("quit")

// ErrUnknownCommand is returned for commands the session does not recognise.
var ErrUnknownCommand = errors.New("unknown command")

// ErrUsage is returned when a command has the wrong arguments.
var ErrUsage = errors.New("usage")

const helpText = `commands:
  position startpos | position empty [w|b] | position fen <fen>
  d                 display the board
  fen               print the position as FEN
  planes            print the twelve bit-planes
  plane <piece>     print one bit-plane as 8x8 bits
  square <sq>       print the piece on a square
  put <sq> <piece>  place a piece
  clear <sq>        empty a square
  side <w|b>        set the side to move
  validate          check that no square holds two pieces
  quit`

// Session holds the position a console is working on.
type Session struct {
	position board.Position
}

// New creates a session on the starting position.
func New() *Session {
	return &Session{position: board.StartingPosition()}
}

// Position returns a copy of the current position.
func (s *Session) Position() board.Position {
	return s.position
}

// SetPosition replaces the current position.
func (s *Session) SetPosition(pos board.Position) {
	s.position = pos
}

// Run reads commands from r until EOF or "quit", writing replies to w.
// Command errors are reported as "error: ..." lines and do not stop the loop.
func (s *Session) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		out, err := s.Execute(line)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			if _, werr := fmt.Fprintf(w, "error: %v\n", err); werr != nil {
				return werr
			}
			continue
		}
		if out == "" {
			continue
		}
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
	}

	return scanner.Err()
}

// Execute runs one command line and returns its output.
func (s *Session) Execute(line string) (string, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil
	}
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "position":
		return "", s.handlePosition(args)
	case "d":
		return s.position.String() + fmt.Sprintf("side to move: %s\n", s.position.SideToMove()), nil
	case "fen":
		return s.position.ToFEN(), nil
	case "planes":
		return s.handlePlanes(), nil
	case "plane":
		return s.handlePlane(args)
	case "square":
		return s.handleSquare(args)
	case "put":
		return "", s.handlePut(args)
	case "clear":
		return "", s.handleClear(args)
	case "side":
		return "", s.handleSide(args)
	case "validate":
		if err := s.position.Validate(); err != nil {
			return "", err
		}
		return "ok", nil
	case "help":
		return helpText, nil
	case "quit":
		return "", ErrQuit
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownCommand, cmd)
	}
}

// handlePosition sets up a position.
// Formats:
//   - position startpos
//   - position empty [w|b]
//   - position fen <placement> <side> [ignored fields...]
func (s *Session) handlePosition(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: position startpos|empty|fen", ErrUsage)
	}

	switch args[0] {
	case "startpos":
		s.position = board.StartingPosition()
	case "empty":
		side := board.White
		if len(args) > 1 {
			c, err := board.ParseColor(args[1])
			if err != nil {
				return err
			}
			side = c
		}
		s.position = board.EmptyPosition(side)
	case "fen":
		pos, err := board.ParseFEN(strings.Join(args[1:], " "))
		if err != nil {
			return fmt.Errorf("invalid FEN: %w", err)
		}
		s.position = pos
	default:
		return fmt.Errorf("%w: position startpos|empty|fen", ErrUsage)
	}
	return nil
}

func (s *Session) handlePlanes() string {
	var sb strings.Builder
	planes := s.position.Planes()
	for i, bb := range planes {
		fmt.Fprintf(&sb, "%s 0x%016x\n", board.Piece(i), uint64(bb))
	}
	return sb.String()
}

func (s *Session) handlePlane(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: plane <piece>", ErrUsage)
	}
	piece, err := board.ParsePiece(args[0])
	if err != nil {
		return "", err
	}
	return s.position.Plane(piece).String(), nil
}

func (s *Session) handleSquare(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: square <sq>", ErrUsage)
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s", sq, s.position.PieceAt(sq)), nil
}

func (s *Session) handlePut(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: put <sq> <piece>", ErrUsage)
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		return err
	}
	piece, err := board.ParsePiece(args[1])
	if err != nil {
		return err
	}
	s.position.SetSquare(sq, piece)
	return nil
}

func (s *Session) handleClear(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: clear <sq>", ErrUsage)
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		return err
	}
	s.position.ClearSquare(sq)
	return nil
}

func (s *Session) handleSide(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: side <w|b>", ErrUsage)
	}
	c, err := board.ParseColor(args[0])
	if err != nil {
		return err
	}
	s.position.SetSideToMove(c)
	return nil
}
