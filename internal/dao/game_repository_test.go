package dao

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryGameRepository(t *testing.T) {
	repo := NewMemoryGameRepository()

	if _, err := repo.GetGame("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetGame(missing) error = %v, want ErrNotFound", err)
	}

	moves := []string{"f3", "e5", "g4", "Qh4#"}
	game := ArchivedGame{
		ID:         "g1",
		Moves:      moves,
		FEN:        "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 0 3",
		Winner:     "black",
		Method:     "checkmate",
		FinishedAt: primitive.NewDateTimeFromTime(time.Unix(1700000000, 0)),
	}
	if err := repo.SaveGame(game); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	moves[0] = "e4"

	got, err := repo.GetGame("g1")
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}
	want := game
	want.Moves = []string{"f3", "e5", "g4", "Qh4#"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetGame mismatch (-want +got):\n%s", diff)
	}
}
