package dao

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbeisheim/chess3d-backend/internal/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("archived game not found")

// ArchivedGame is the record kept for a finished game.
type ArchivedGame struct {
	ID         string             `bson:"_id" json:"id"`
	Moves      []string           `bson:"moves" json:"moves"`
	FEN        string             `bson:"fen" json:"fen"`
	Winner     string             `bson:"winner,omitempty" json:"winner,omitempty"`
	Method     string             `bson:"method" json:"method"`
	FinishedAt primitive.DateTime `bson:"finished_at" json:"finishedAt"`
}

type GameRepository interface {
	SaveGame(game ArchivedGame) error

	GetGame(id string) (ArchivedGame, error)
}

type mongoGameRepository struct {
	dbClient *db.GameDbClient
}

func NewGameRepository(dbClient *db.GameDbClient) GameRepository {
	return &mongoGameRepository{dbClient}
}

func (r *mongoGameRepository) SaveGame(game ArchivedGame) error {
	ctx, cancel := context.WithTimeout(context.TODO(), time.Second)
	defer cancel()

	_, err := r.dbClient.GameCollection.InsertOne(ctx, game)
	return err
}

func (r *mongoGameRepository) GetGame(id string) (ArchivedGame, error) {
	ctx, cancel := context.WithTimeout(context.TODO(), time.Second)
	defer cancel()

	var game ArchivedGame
	err := r.dbClient.GameCollection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&game)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ArchivedGame{}, ErrNotFound
	}
	if err != nil {
		return ArchivedGame{}, err
	}
	return game, nil
}

type memoryGameRepository struct {
	games map[string]ArchivedGame
	mu    sync.RWMutex
}

// NewMemoryGameRepository keeps archived games for the life of the process.
func NewMemoryGameRepository() GameRepository {
	return &memoryGameRepository{games: make(map[string]ArchivedGame)}
}

func (r *memoryGameRepository) SaveGame(game ArchivedGame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	game.Moves = append([]string(nil), game.Moves...)
	r.games[game.ID] = game
	return nil
}

func (r *memoryGameRepository) GetGame(id string) (ArchivedGame, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	game, ok := r.games[id]
	if !ok {
		return ArchivedGame{}, ErrNotFound
	}
	return game, nil
}
