package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chess3d-backend/internal/rules"
	"github.com/benbeisheim/chess3d-backend/internal/turn"
	"github.com/benbeisheim/chess3d-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

var (
	ErrGameFull          = errors.New("game is full")
	ErrNotYourPieces     = errors.New("those pieces belong to the other player")
	ErrDuplicateListener = errors.New("connection already exists")
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
	// serializes writes; a websocket allows one writer at a time
	writeMu sync.Mutex
	pending sync.WaitGroup
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Game owns the live state of one board. Every exported method takes the
// game lock, so one move is fully processed before the next is looked at.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       turn.State
	players     Players
	history     []Move
	captured    CapturedPieces
	lastMove    *Ply
	inCheck     bool
	sound       string
	selected    *rules.Square
	legalMoves  []rules.Square
	connections *GameConnections
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		state:       turn.New(),
		history:     make([]Move, 0),
		captured:    newCapturedPieces(),
		connections: NewGameConnections(),
	}
}

func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch playerID {
	case g.players.White.ID:
		return PlayerColorWhite, nil
	case g.players.Black.ID:
		return PlayerColorBlack, nil
	}
	if g.players.White.ID == "" {
		g.players.White = ClientPlayer{ID: playerID, Color: PlayerColorWhite}
		return PlayerColorWhite, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black = ClientPlayer{ID: playerID, Color: PlayerColorBlack}
		return PlayerColorBlack, nil
	}
	return "", ErrGameFull
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return playerID != "" && (g.players.White.ID == playerID || g.players.Black.ID == playerID)
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) Finished() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.Finished()
}

// MakeMove moves the piece on move.From. A rejected move leaves the game
// untouched.
func (g *Game) MakeMove(playerID string, move MoveRequest) (Ply, error) {
	g.mu.Lock()
	ply, err := g.makeMove(playerID, move)
	g.mu.Unlock()

	if err != nil {
		log.Debugw("move rejected", "game", g.ID, "from", move.From, "to", move.To, "error", err)
		return Ply{}, err
	}
	g.broadcast()
	return ply, nil
}

func (g *Game) makeMove(playerID string, move MoveRequest) (Ply, error) {
	piece, ok := rules.PieceAt(move.From, g.state.Position)
	if !ok {
		return Ply{}, fmt.Errorf("%w on %s", turn.ErrNoPiece, move.From)
	}
	if !g.players.mayMove(playerID, piece.Color) {
		return Ply{}, ErrNotYourPieces
	}

	next, res, err := turn.Attempt(g.state, piece, move.To)
	if err != nil {
		return Ply{}, err
	}

	ply := newPly(res, next)
	g.state = next
	g.history = appendPly(g.history, ply)
	if res.Captured != nil {
		g.captured.add(piece.Color, *res.Captured)
	}
	g.lastMove = &ply
	g.inCheck = res.Check
	g.sound = soundFor(res, next)
	g.clearSelection()

	log.Infow("move committed", "game", g.ID, "move", ply.Notation, "status", next.Status().Text)
	return ply, nil
}

// SelectionResult is the outcome of clicking a square.
type SelectionResult struct {
	Selected   *rules.Square  `json:"selected"`
	LegalMoves []rules.Square `json:"legalMoves"`
	Ply        *Ply           `json:"ply,omitempty"`
}

// Select applies a click on sq. Clicking a piece of the side to move selects
// it; clicking anywhere else with a piece selected tries to move it there and
// drops the selection either way. An off-board square clears the selection.
func (g *Game) Select(playerID string, sq rules.Square) (SelectionResult, error) {
	g.mu.Lock()
	sel, err := g.selectSquare(playerID, sq)
	g.mu.Unlock()

	g.broadcast()
	return sel, err
}

func (g *Game) selectSquare(playerID string, sq rules.Square) (SelectionResult, error) {
	if !sq.Valid() {
		g.clearSelection()
		return SelectionResult{}, nil
	}

	piece, occupied := rules.PieceAt(sq, g.state.Position)
	if occupied && piece.Color == g.state.ToMove && !g.state.Finished() {
		if !g.players.mayMove(playerID, piece.Color) {
			return SelectionResult{}, ErrNotYourPieces
		}
		selected := sq
		g.selected = &selected
		g.legalMoves = turn.LegalTargets(g.state, piece)
		return SelectionResult{Selected: g.selected, LegalMoves: g.legalMoves}, nil
	}

	if g.selected == nil {
		return SelectionResult{}, nil
	}
	from := *g.selected
	g.clearSelection()
	ply, err := g.makeMove(playerID, MoveRequest{From: from, To: sq})
	if err != nil {
		return SelectionResult{}, err
	}
	return SelectionResult{Ply: &ply}, nil
}

func (g *Game) clearSelection() {
	g.selected = nil
	g.legalMoves = nil
}

// snapshot copies the live state; callers hold g.mu.
func (g *Game) snapshot() GameState {
	history := make([]Move, len(g.history))
	copy(history, g.history)
	legal := make([]rules.Square, len(g.legalMoves))
	copy(legal, g.legalMoves)

	var selected *rules.Square
	if g.selected != nil {
		s := *g.selected
		selected = &s
	}

	return GameState{
		ID:          g.ID,
		Sound:       g.sound,
		Pieces:      g.state.Position.Clone(),
		ToMove:      g.state.ToMove,
		Status:      g.state.Status(),
		IsCheck:     g.inCheck,
		MoveHistory: history,
		CapturedPieces: CapturedPieces{
			White: append([]rules.Piece{}, g.captured.White...),
			Black: append([]rules.Piece{}, g.captured.Black...),
		},
		SelectedSquare: selected,
		LegalMoves:     legal,
		LastMove:       g.lastMove,
		Players:        g.players,
		FEN:            FEN(g.state, g.fullMove()),
	}
}

func (g *Game) fullMove() int {
	n := 1
	for _, m := range g.history {
		if m.BlackPly != nil {
			n++
		}
	}
	return n
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the healthy connection and turn the new one away
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ErrDuplicateListener.Error()),
		)
		conn.Close()
		return ErrDuplicateListener
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Infow("connection registered", "game", g.ID, "player", playerID)

	g.broadcast()
	return nil
}

func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	// a rejected duplicate must not evict the connection it lost to
	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		log.Infow("connection unregistered", "game", g.ID, "player", playerID)
	}
}

// broadcast pushes the game to every connection in the background.
func (g *Game) broadcast() {
	g.connections.pending.Add(1)
	go func() {
		defer g.connections.pending.Done()
		g.broadcastState()
	}()
}

// broadcastState sends the state as it is when the write lock is acquired,
// so the last send always carries the latest position.
func (g *Game) broadcastState() {
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()

	payload, err := json.Marshal(g.GetState())
	if err != nil {
		log.Errorw("failed to marshal game state", "game", g.ID, "error", err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: payload}

	g.connections.mu.RLock()
	active := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnw("failed to send state, dropping connection", "game", g.ID, "player", playerID, "error", err)
			g.UnregisterConnection(playerID, conn)
		}
	}
}

// WriteTo sends msg to one connection, serialized with broadcasts.
func (g *Game) WriteTo(conn Conn, msg ws.Message) error {
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	return conn.WriteJSON(msg)
}
