package model

import (
	"github.com/benbeisheim/chess3d-backend/internal/rules"
	"github.com/benbeisheim/chess3d-backend/internal/turn"
)

type MoveRequest struct {
	From rules.Square `json:"from"`
	To   rules.Square `json:"to"`
}

type Ply struct {
	Piece          rules.Piece    `json:"piece"`
	From           rules.Square   `json:"from"`
	To             rules.Square   `json:"to"`
	CapturedPiece  *rules.Piece   `json:"capturedPiece"`
	CastleRookMove *turn.RookMove `json:"castleRookMove"`
	Notation       string         `json:"notation"`
	// EndsGame is set on the mating or stalemating ply.
	EndsGame       bool           `json:"endsGame"`
}

// Move pairs a white ply with the black reply, as in a score sheet.
type Move struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

func newPly(res turn.Result, next turn.State) Ply {
	return Ply{
		Piece:          res.Piece,
		From:           res.From,
		To:             res.To,
		CapturedPiece:  res.Captured,
		CastleRookMove: res.Castle,
		Notation:       notation(res, next),
		EndsGame:       next.Finished(),
	}
}

func appendPly(history []Move, ply Ply) []Move {
	p := ply
	if ply.Piece.Color == rules.White {
		return append(history, Move{WhitePly: &p})
	}
	if n := len(history); n > 0 && history[n-1].BlackPly == nil {
		history[n-1].BlackPly = &p
		return history
	}
	return append(history, Move{BlackPly: &p})
}

// Notations flattens the history into ply order.
func Notations(history []Move) []string {
	out := make([]string, 0, 2*len(history))
	for _, m := range history {
		if m.WhitePly != nil {
			out = append(out, m.WhitePly.Notation)
		}
		if m.BlackPly != nil {
			out = append(out, m.BlackPly.Notation)
		}
	}
	return out
}
