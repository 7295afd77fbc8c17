package service

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/benbeisheim/chess3d-backend/internal/dao"
	"github.com/benbeisheim/chess3d-backend/internal/model"
	"github.com/benbeisheim/chess3d-backend/internal/turn"
	"github.com/benbeisheim/chess3d-backend/internal/ws"
	"github.com/google/go-cmp/cmp"
)

type failingRepository struct{}

func (failingRepository) SaveGame(dao.ArchivedGame) error { return errors.New("disk full") }

func (failingRepository) GetGame(string) (dao.ArchivedGame, error) {
	return dao.ArchivedGame{}, dao.ErrNotFound
}

type countingRepository struct {
	mu    sync.Mutex
	saves int
}

func (r *countingRepository) SaveGame(dao.ArchivedGame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	return nil
}

func (r *countingRepository) GetGame(string) (dao.ArchivedGame, error) {
	return dao.ArchivedGame{}, dao.ErrNotFound
}

var foolsMate = []ws.MovePayload{
	{From: "f2", To: "f3"},
	{From: "e7", To: "e5"},
	{From: "g2", To: "g4"},
	{From: "d8", To: "h4"},
}

func newService(t *testing.T, repo dao.GameRepository) (*GameService, string) {
	t.Helper()
	gs := NewGameService(NewGameManager(repo))
	gameID, err := gs.CreateGame()
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	return gs, gameID
}

func TestCreateAndJoin(t *testing.T) {
	gs, gameID := newService(t, dao.NewMemoryGameRepository())

	if color, err := gs.JoinGame(gameID, "alice"); err != nil || color != model.PlayerColorWhite {
		t.Fatalf("JoinGame(alice) = %q, %v", color, err)
	}
	if color, err := gs.JoinGame(gameID, "bob"); err != nil || color != model.PlayerColorBlack {
		t.Fatalf("JoinGame(bob) = %q, %v", color, err)
	}
	if _, err := gs.JoinGame(gameID, "carol"); !errors.Is(err, model.ErrGameFull) {
		t.Errorf("JoinGame(carol) error = %v, want ErrGameFull", err)
	}
	if _, err := gs.JoinGame("nope", "alice"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("JoinGame(nope) error = %v, want ErrGameNotFound", err)
	}
	if !gs.GameExists(gameID) || gs.GameExists("nope") {
		t.Error("GameExists disagrees with CreateGame")
	}
}

func TestHandleMoveRejectsBadSquares(t *testing.T) {
	gs, gameID := newService(t, dao.NewMemoryGameRepository())

	for _, move := range []ws.MovePayload{{From: "e2", To: "e9"}, {From: "", To: "e4"}, {From: "z2", To: "e4"}} {
		if _, _, err := gs.HandleMove(gameID, "", move); !errors.Is(err, ErrBadRequest) {
			t.Errorf("HandleMove(%+v) error = %v, want ErrBadRequest", move, err)
		}
	}
	if _, _, err := gs.HandleSelect(gameID, "", ws.SelectPayload{Square: "i1"}); !errors.Is(err, ErrBadRequest) {
		t.Errorf("HandleSelect(i1) error = %v, want ErrBadRequest", err)
	}
}

func TestFinishedGameIsArchived(t *testing.T) {
	repo := dao.NewMemoryGameRepository()
	gs, gameID := newService(t, repo)

	if _, err := gs.GetArchivedGame(gameID); !errors.Is(err, dao.ErrNotFound) {
		t.Fatalf("archive before the end: error = %v, want ErrNotFound", err)
	}

	var state model.GameState
	for _, move := range foolsMate {
		var err error
		if _, state, err = gs.HandleMove(gameID, "", move); err != nil {
			t.Fatalf("%+v: %v", move, err)
		}
	}

	record, err := gs.GetArchivedGame(gameID)
	if err != nil {
		t.Fatalf("GetArchivedGame: %v", err)
	}
	if diff := cmp.Diff([]string{"f3", "e5", "g4", "Qh4#"}, record.Moves); diff != "" {
		t.Errorf("Moves mismatch (-want +got):\n%s", diff)
	}
	if record.Winner != "black" || record.Method != string(turn.Checkmate) {
		t.Errorf("record = %+v, want black by checkmate", record)
	}
	if record.FEN != state.FEN {
		t.Errorf("record FEN = %q, want %q", record.FEN, state.FEN)
	}

	fen, err := gs.GetFEN(gameID)
	if err != nil || fen != state.FEN {
		t.Errorf("GetFEN = %q, %v", fen, err)
	}
}

func TestArchiveFailureDoesNotFailTheMove(t *testing.T) {
	gs, gameID := newService(t, failingRepository{})

	for _, move := range foolsMate {
		if _, _, err := gs.HandleMove(gameID, "", move); err != nil {
			t.Fatalf("%+v: %v", move, err)
		}
	}
	state, err := gs.GetGameState(gameID)
	if err != nil {
		t.Fatalf("GetGameState: %v", err)
	}
	if state.Status.Phase != turn.PhaseFinished {
		t.Errorf("Phase = %s, want finished", state.Status.Phase)
	}
}

func TestSelectionMoveIsArchived(t *testing.T) {
	repo := dao.NewMemoryGameRepository()
	gs, gameID := newService(t, repo)

	for _, move := range foolsMate[:3] {
		if _, _, err := gs.HandleMove(gameID, "", move); err != nil {
			t.Fatalf("%+v: %v", move, err)
		}
	}
	if _, _, err := gs.HandleSelect(gameID, "", ws.SelectPayload{Square: "d8"}); err != nil {
		t.Fatalf("select d8: %v", err)
	}
	sel, _, err := gs.HandleSelect(gameID, "", ws.SelectPayload{Square: "h4"})
	if err != nil || sel.Ply == nil {
		t.Fatalf("select h4 = %+v, %v", sel, err)
	}
	if _, err := repo.GetGame(gameID); err != nil {
		t.Errorf("game not archived after a mating selection: %v", err)
	}
}

func TestWriteDiagram(t *testing.T) {
	gs, gameID := newService(t, dao.NewMemoryGameRepository())

	var buf bytes.Buffer
	if err := gs.WriteDiagram(gameID, &buf); err != nil {
		t.Fatalf("WriteDiagram: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "<?xml") {
		t.Errorf("diagram does not start with an xml prolog: %.40q", buf.String())
	}
	if err := gs.WriteDiagram("nope", &buf); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("WriteDiagram(nope) error = %v, want ErrGameNotFound", err)
	}
}

func TestRacingMovesArchiveOnce(t *testing.T) {
	for trial := 0; trial < 50; trial++ {
		repo := &countingRepository{}
		gs, gameID := newService(t, repo)
		for _, move := range foolsMate[:2] {
			if _, _, err := gs.HandleMove(gameID, "", move); err != nil {
				t.Fatalf("%+v: %v", move, err)
			}
		}

		// g4 and the mating reply race; Qh4 only lands once g4 has
		var wg sync.WaitGroup
		for _, move := range foolsMate[2:] {
			wg.Add(1)
			go func(move ws.MovePayload) {
				defer wg.Done()
				for {
					_, _, err := gs.HandleMove(gameID, "", move)
					if !errors.Is(err, turn.ErrNotYourTurn) {
						return
					}
				}
			}(move)
		}
		wg.Wait()

		if repo.saves != 1 {
			t.Fatalf("trial %d: SaveGame called %d times, want 1", trial, repo.saves)
		}
	}
}
