package service

import (
	"fmt"
	"io"

	"github.com/benbeisheim/chess3d-backend/internal/dao"
	"github.com/benbeisheim/chess3d-backend/internal/model"
	"github.com/benbeisheim/chess3d-backend/internal/rules"
	"github.com/benbeisheim/chess3d-backend/internal/ws"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.PlayerColor, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

// HandleMove parses algebraic squares and plays the move.
func (gs *GameService) HandleMove(gameID string, playerID string, move ws.MovePayload) (model.Ply, model.GameState, error) {
	from, err := rules.ParseSquare(move.From)
	if err != nil {
		return model.Ply{}, model.GameState{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	to, err := rules.ParseSquare(move.To)
	if err != nil {
		return model.Ply{}, model.GameState{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	return gs.gameManager.MakeMove(gameID, playerID, model.MoveRequest{From: from, To: to})
}

func (gs *GameService) HandleSelect(gameID string, playerID string, sel ws.SelectPayload) (model.SelectionResult, model.GameState, error) {
	sq, err := rules.ParseSquare(sel.Square)
	if err != nil {
		return model.SelectionResult{}, model.GameState{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	return gs.gameManager.Select(gameID, playerID, sq)
}

func (gs *GameService) GetFEN(gameID string) (string, error) {
	state, err := gs.gameManager.GetGameState(gameID)
	if err != nil {
		return "", err
	}
	return state.FEN, nil
}

// WriteDiagram renders the board with the current selection's targets highlighted.
func (gs *GameService) WriteDiagram(gameID string, w io.Writer) error {
	state, err := gs.gameManager.GetGameState(gameID)
	if err != nil {
		return err
	}
	model.Diagram(w, state.Pieces, state.LegalMoves)
	return nil
}

func (gs *GameService) GetArchivedGame(gameID string) (dao.ArchivedGame, error) {
	return gs.gameManager.GetArchivedGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

// Send writes msg to conn without interleaving with the game's broadcasts.
func (gs *GameService) Send(gameID string, conn model.Conn, msg ws.Message) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return conn.WriteJSON(msg)
	}
	return game.WriteTo(conn, msg)
}

func (gs *GameService) GameExists(gameID string) bool {
	_, err := gs.gameManager.GetGame(gameID)
	return err == nil
}
