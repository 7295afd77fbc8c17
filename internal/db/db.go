package db

import (
	"context"
	"fmt"
	"time"

	"github.com/benbeisheim/chess3d-backend/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

type GameDbClient struct {
	client         *mongo.Client
	GameCollection *mongo.Collection
}

func (r *GameDbClient) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return r.client.Disconnect(ctx)
}

func NewDbClient(cfg *config.Configuration) (*GameDbClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	clientOpts := options.Client().ApplyURI(cfg.Database.Address)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Database.Address, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping %s: %w", cfg.Database.Address, err)
	}

	return &GameDbClient{
		client:         client,
		GameCollection: client.Database(cfg.Database.DatabaseName).Collection(cfg.Database.Collection),
	}, nil
}
