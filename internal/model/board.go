package model

import (
	"github.com/benbeisheim/chess3d-backend/internal/rules"
	"github.com/benbeisheim/chess3d-backend/internal/turn"
)

// GameState is the snapshot handed to renderers and the status display.
type GameState struct {
	ID             string         `json:"id"`
	Sound          string         `json:"sound"`
	Pieces         rules.Position `json:"pieces"`
	ToMove         rules.Color    `json:"toMove"`
	Status         turn.Status    `json:"status"`
	IsCheck        bool           `json:"isCheck"`
	MoveHistory    []Move         `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	SelectedSquare *rules.Square  `json:"selectedSquare"`
	LegalMoves     []rules.Square `json:"legalMoves"`
	LastMove       *Ply           `json:"lastMove"`
	Players        Players        `json:"players"`
	FEN            string         `json:"fen"`
}

// CapturedPieces lists removed pieces by the color that took them.
type CapturedPieces struct {
	White []rules.Piece `json:"white"`
	Black []rules.Piece `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]rules.Piece, 0),
		Black: make([]rules.Piece, 0),
	}
}

func (c *CapturedPieces) add(by rules.Color, p rules.Piece) {
	if by == rules.White {
		c.White = append(c.White, p)
		return
	}
	c.Black = append(c.Black, p)
}

func soundFor(res turn.Result, next turn.State) string {
	switch {
	case next.Finished():
		return "gameOver"
	case res.Check:
		return "check"
	case res.Castle != nil:
		return "castle"
	case res.Captured != nil:
		return "capture"
	}
	return "move"
}
