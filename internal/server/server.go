// Package server exposes positions over HTTP: JSON lookups, SVG diagrams
// and websocket console sessions.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/hailam/fenboard/internal/board"
	"github.com/hailam/fenboard/internal/console"
	"github.com/hailam/fenboard/internal/svgboard"
)

// DefaultPort is the port the server binary listens on.
const DefaultPort = 8080

// PositionResponse is the JSON form of a decoded position.
type PositionResponse struct {
	FEN        string            `json:"fen"`
	SideToMove string            `json:"sideToMove"`
	Squares    map[string]string `json:"squares"`
	Board      string            `json:"board"`
}

// SquareResponse is the JSON form of one square's occupant.
// Piece is empty when the square is unoccupied.
type SquareResponse struct {
	Square string `json:"square"`
	Piece  string `json:"piece,omitempty"`
	Color  string `json:"color,omitempty"`
	Type   string `json:"type,omitempty"`
}

// ErrorResponse is written with every 4xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

var errorKinds = []struct {
	err  error
	kind string
}{
	{board.ErrNoPiecePlacement, "no_piece_placement"},
	{board.ErrNoSideToMove, "no_side_to_move"},
	{board.ErrInvalidSideToMove, "invalid_side_to_move"},
	{board.ErrInvalidPiece, "invalid_piece"},
	{board.ErrInvalidPieceCount, "invalid_piece_count"},
	{board.ErrInvalidRowCount, "invalid_row_count"},
	{board.ErrSquareOutOfRange, "square_out_of_range"},
	{board.ErrInvalidSquare, "invalid_square"},
}

// ErrorKind names the category of a board error, or "bad_request" if err
// is not one.
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "bad_request"
}

// Application routes requests to the position handlers.
type Application struct {
	router   *mux.Router
	handler  http.Handler
	upgrader websocket.Upgrader
	logOut   io.Writer

	sessionsLock sync.Mutex
	sessions     map[*websocket.Conn]*console.Session
}

// NewApplication creates the router. Access logs go to stdout.
func NewApplication() *Application {
	return NewApplicationWithLog(os.Stdout)
}

// NewApplicationWithLog creates the router with access logs written to out.
func NewApplicationWithLog(out io.Writer) *Application {
	app := &Application{
		router: mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logOut:   out,
		sessions: make(map[*websocket.Conn]*console.Session),
	}

	app.router.NotFoundHandler = app.logged(http.HandlerFunc(notFoundHandler))
	app.router.Use(app.logged)

	api := app.router.PathPrefix("/api").Methods(http.MethodGet).Subrouter()
	api.HandleFunc("/start", app.startHandler)
	api.HandleFunc("/position", app.positionHandler)
	api.HandleFunc("/square/{square}", app.squareHandler)

	app.router.HandleFunc("/board.svg", app.svgHandler).Methods(http.MethodGet)
	app.router.HandleFunc("/ws", app.wsHandler)

	app.handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(app.router)
	return app
}

func (app *Application) logged(next http.Handler) http.Handler {
	return handlers.LoggingHandler(app.logOut, next)
}

// ServeHTTP dispatches to the router, recovering from handler panics.
func (app *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.handler.ServeHTTP(w, r)
}

// Sessions returns the number of open websocket sessions.
func (app *Application) Sessions() int {
	app.sessionsLock.Lock()
	defer app.sessionsLock.Unlock()
	return len(app.sessions)
}

func (app *Application) startHandler(w http.ResponseWriter, r *http.Request) {
	pos := board.StartingPosition()
	writeJSON(w, http.StatusOK, newPositionResponse(&pos))
}

func (app *Application) positionHandler(w http.ResponseWriter, r *http.Request) {
	pos, err := positionFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPositionResponse(&pos))
}

func (app *Application) squareHandler(w http.ResponseWriter, r *http.Request) {
	sq, err := board.ParseSquare(mux.Vars(r)["square"])
	if err != nil {
		writeError(w, err)
		return
	}
	pos, err := positionFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := SquareResponse{Square: sq.String()}
	if p := pos.PieceAt(sq); p != board.NoPiece {
		resp.Piece = p.String()
		resp.Color = p.Color().String()
		resp.Type = p.Type().String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (app *Application) svgHandler(w http.ResponseWriter, r *http.Request) {
	pos, err := positionFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	opts := svgboard.DefaultOptions()
	opts.Flipped = q.Get("flip") == "1"
	opts.Coordinates = q.Get("coords") != "0"

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := svgboard.Render(w, &pos, opts); err != nil {
		log.Printf("Error rendering diagram: %v", err)
	}
}

// wsHandler runs one console session per connection. Each text message is a
// command line; each reply is its output or an "error: ..." line.
func (app *Application) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		return
	}
	log.Printf("New websocket connection from %s", conn.RemoteAddr())

	session := console.New()
	app.sessionsLock.Lock()
	app.sessions[conn] = session
	app.sessionsLock.Unlock()

	go app.serveSession(conn, session)
}

func (app *Application) serveSession(conn *websocket.Conn, session *console.Session) {
	defer func() {
		app.sessionsLock.Lock()
		delete(app.sessions, conn)
		app.sessionsLock.Unlock()
		conn.Close()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Error reading message: %v", err)
			}
			return
		}

		out, err := session.Execute(strings.TrimSpace(string(msg)))
		if errors.Is(err, console.ErrQuit) {
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
			if err := conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
				log.Printf("Error writing close: %v", err)
			}
			return
		}
		if err != nil {
			out = "error: " + err.Error()
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte(out)); err != nil {
			log.Printf("Error writing message: %v", err)
			return
		}
	}
}

// positionFromQuery decodes the "fen" query parameter. A request without
// one gets the starting position.
func positionFromQuery(r *http.Request) (board.Position, error) {
	fen := r.URL.Query().Get("fen")
	if fen == "" {
		return board.StartingPosition(), nil
	}
	return board.ParseFEN(fen)
}

func newPositionResponse(pos *board.Position) PositionResponse {
	squares := make(map[string]string)
	for _, sq := range board.AllSquares() {
		if p := pos.PieceAt(sq); p != board.NoPiece {
			squares[sq.String()] = p.String()
		}
	}
	return PositionResponse{
		FEN:        pos.ToFEN(),
		SideToMove: string(pos.SideToMove().Char()),
		Squares:    squares,
		Board:      pos.String(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: ErrorKind(err)})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "File Not Found", http.StatusNotFound)
}
