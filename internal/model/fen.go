package model

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/chess3d-backend/internal/rules"
	"github.com/benbeisheim/chess3d-backend/internal/turn"
	"github.com/notnil/chess"
)

var fenPieces = [2][6]chess.Piece{
	rules.White: {
		rules.King:   chess.WhiteKing,
		rules.Queen:  chess.WhiteQueen,
		rules.Bishop: chess.WhiteBishop,
		rules.Knight: chess.WhiteKnight,
		rules.Rook:   chess.WhiteRook,
		rules.Pawn:   chess.WhitePawn,
	},
	rules.Black: {
		rules.King:   chess.BlackKing,
		rules.Queen:  chess.BlackQueen,
		rules.Bishop: chess.BlackBishop,
		rules.Knight: chess.BlackKnight,
		rules.Rook:   chess.BlackRook,
		rules.Pawn:   chess.BlackPawn,
	},
}

// FEN encodes s in Forsyth-Edwards Notation. En passant is never available and
// the halfmove clock is not tracked, so those fields are always "-" and 0.
func FEN(s turn.State, fullMove int) string {
	m := make(map[chess.Square]chess.Piece, len(s.Position))
	for _, p := range s.Position {
		m[chess.Square(p.Square.Rank*8+p.Square.File)] = fenPieces[p.Color][p.Kind]
	}
	board := chess.NewBoard(m)

	side := s.ToMove
	if s.Finished() {
		// a finished game is left on the mover; the side facing mate is to move
		side = side.Opposite()
	}
	sideField := "w"
	if side == rules.Black {
		sideField = "b"
	}
	return fmt.Sprintf("%s %s %s - 0 %d", board.String(), sideField, castlingRights(s.Position), fullMove)
}

func castlingRights(pieces rules.Position) string {
	rights := ""
	for _, c := range []rules.Color{rules.White, rules.Black} {
		rank := 0
		if c == rules.Black {
			rank = 7
		}
		if !unmoved(pieces, c, rules.King, rules.Square{File: 4, Rank: rank}) {
			continue
		}
		var side string
		if unmoved(pieces, c, rules.Rook, rules.Square{File: 7, Rank: rank}) {
			side += "K"
		}
		if unmoved(pieces, c, rules.Rook, rules.Square{File: 0, Rank: rank}) {
			side += "Q"
		}
		if c == rules.Black {
			side = strings.ToLower(side)
		}
		rights += side
	}
	if rights == "" {
		return "-"
	}
	return rights
}

func unmoved(pieces rules.Position, c rules.Color, k rules.Kind, sq rules.Square) bool {
	p, ok := rules.PieceAt(sq, pieces)
	return ok && p.Color == c && p.Kind == k && !p.HasMoved
}
