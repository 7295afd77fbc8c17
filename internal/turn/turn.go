// Package turn coordinates whose move it is and commits moves through the
// rules engine. State values are never mutated: Attempt returns a new State.
package turn

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/chess3d-backend/internal/rules"
)

var (
	ErrGameFinished = errors.New("game is finished")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrNoPiece      = errors.New("no such piece on the board")
	ErrIllegalMove  = errors.New("illegal move")
	ErrSelfCheck    = errors.New("move leaves own king in check")
)

type Method string

const (
	Checkmate Method = "checkmate"
	Stalemate Method = "stalemate"
)

// Outcome is set once the game is over. Winner is nil for a draw.
type Outcome struct {
	Winner *rules.Color `json:"winner"`
	Method Method       `json:"method"`
}

type State struct {
	Position rules.Position `json:"position"`
	ToMove   rules.Color    `json:"toMove"`
	Outcome  *Outcome       `json:"outcome"`
}

// New returns the standard starting position with White to move.
func New() State {
	return State{
		Position: rules.StartingPosition(),
		ToMove:   rules.White,
	}
}

func (s State) Finished() bool {
	return s.Outcome != nil
}

// RookMove is the rook half of a castle.
type RookMove struct {
	From rules.Square `json:"from"`
	To   rules.Square `json:"to"`
}

// Result describes a committed move for renderers: Captured is the piece
// removed from the board, if any.
type Result struct {
	Piece    rules.Piece  `json:"piece"`
	From     rules.Square `json:"from"`
	To       rules.Square `json:"to"`
	Captured *rules.Piece `json:"captured"`
	Castle   *RookMove    `json:"castle"`
	Check    bool         `json:"check"`
}

// Attempt moves piece to target. A rejected move returns s unchanged along
// with the reason.
func Attempt(s State, piece rules.Piece, target rules.Square) (State, Result, error) {
	if s.Finished() {
		return s, Result{}, ErrGameFinished
	}
	if piece.Color != s.ToMove {
		return s, Result{}, ErrNotYourTurn
	}
	onBoard, ok := rules.PieceAt(piece.Square, s.Position)
	if !ok || onBoard.Color != piece.Color || onBoard.Kind != piece.Kind {
		return s, Result{}, fmt.Errorf("%w: %v", ErrNoPiece, piece)
	}
	// the caller's copy may carry a stale HasMoved
	piece = onBoard

	if !rules.IsMoveValid(piece, target, s.Position) {
		return s, Result{}, fmt.Errorf("%w: %s to %s", ErrIllegalMove, piece, target)
	}
	castle := rules.IsCastle(piece, target)
	if castle && !rules.IsCastleSafe(piece, target, s.Position) {
		return s, Result{}, fmt.Errorf("%w: cannot castle through check", ErrIllegalMove)
	}
	// only the king's landing square matters here, so the rook stays put
	if rules.IsInCheck(rules.ApplyMove(piece, target, s.Position), piece.Color) {
		return s, Result{}, ErrSelfCheck
	}

	res := Result{Piece: piece, From: piece.Square, To: target}
	if captured, ok := rules.PieceAt(target, s.Position); ok {
		res.Captured = &captured
	}
	if castle {
		from, to := rules.CastleRook(piece, target)
		res.Castle = &RookMove{From: from, To: to}
	}

	next := State{
		Position: rules.CommitMove(piece, target, s.Position),
		ToMove:   s.ToMove,
	}
	opponent := piece.Color.Opposite()
	res.Check = rules.IsInCheck(next.Position, opponent)
	switch {
	case res.Check && rules.IsCheckmate(next.Position, opponent):
		winner := piece.Color
		next.Outcome = &Outcome{Winner: &winner, Method: Checkmate}
	case !res.Check && rules.IsStalemate(next.Position, opponent):
		next.Outcome = &Outcome{Method: Stalemate}
	default:
		next.ToMove = opponent
	}
	return next, res, nil
}

// LegalTargets lists where piece may move if it is its side's turn.
func LegalTargets(s State, piece rules.Piece) []rules.Square {
	if s.Finished() || piece.Color != s.ToMove {
		return nil
	}
	return rules.LegalTargets(piece, s.Position)
}
