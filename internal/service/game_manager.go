package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chess3d-backend/internal/dao"
	"github.com/benbeisheim/chess3d-backend/internal/model"
	"github.com/benbeisheim/chess3d-backend/internal/rules"
	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
	ErrBadRequest   = errors.New("malformed request")
)

type GameManager struct {
	games       map[string]*model.Game
	archiveRepo dao.GameRepository
	mu          sync.RWMutex
}

func NewGameManager(archive dao.GameRepository) *GameManager {
	return &GameManager{
		games:       make(map[string]*model.Game),
		archiveRepo: archive,
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	gm.games[gameID] = model.NewGame(gameID)
	log.Infow("game created", "game", gameID)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}

	color, err := game.AddPlayer(playerID)
	if err != nil {
		return "", err
	}
	log.Infow("player joined", "game", gameID, "player", playerID, "color", color)
	return color, nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}

	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.MoveRequest) (model.Ply, model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.Ply{}, model.GameState{}, err
	}

	ply, err := game.MakeMove(playerID, move)
	if err != nil {
		return model.Ply{}, model.GameState{}, err
	}

	state := game.GetState()
	if ply.EndsGame {
		gm.archive(state)
	}
	return ply, state, nil
}

func (gm *GameManager) Select(gameID string, playerID string, sq rules.Square) (model.SelectionResult, model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.SelectionResult{}, model.GameState{}, err
	}

	sel, err := game.Select(playerID, sq)
	if err != nil {
		return model.SelectionResult{}, model.GameState{}, err
	}

	state := game.GetState()
	if sel.Ply != nil && sel.Ply.EndsGame {
		gm.archive(state)
	}
	return sel, state, nil
}

// archive stores a finished game. It runs once, for the ply that ended the
// game. Failures are logged only: that move has already been committed.
func (gm *GameManager) archive(state model.GameState) {
	record := dao.ArchivedGame{
		ID:         state.ID,
		Moves:      model.Notations(state.MoveHistory),
		FEN:        state.FEN,
		Method:     string(state.Status.Method),
		FinishedAt: primitive.NewDateTimeFromTime(time.Now()),
	}
	if state.Status.Winner != nil {
		record.Winner = state.Status.Winner.String()
	}

	if err := gm.archiveRepo.SaveGame(record); err != nil {
		log.Errorw("failed to archive game", "game", state.ID, "error", err)
		return
	}
	log.Infow("game archived", "game", state.ID, "result", state.Status.Text)
}

func (gm *GameManager) GetArchivedGame(gameID string) (dao.ArchivedGame, error) {
	return gm.archiveRepo.GetGame(gameID)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}

	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}

	game.UnregisterConnection(playerID, conn)
}
