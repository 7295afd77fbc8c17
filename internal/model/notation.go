package model

import (
	"fmt"

	"github.com/benbeisheim/chess3d-backend/internal/rules"
	"github.com/benbeisheim/chess3d-backend/internal/turn"
)

// notation renders a committed move in short algebraic form without
// disambiguation, e.g. "Nf3", "exd5", "O-O", "Qh4#".
func notation(res turn.Result, next turn.State) string {
	var body string
	switch {
	case res.Castle != nil && res.To.File > res.From.File:
		body = "O-O"
	case res.Castle != nil:
		body = "O-O-O"
	default:
		prefix := res.Piece.Kind.Letter()
		capture := ""
		if res.Captured != nil {
			capture = "x"
			if res.Piece.Kind == rules.Pawn {
				prefix = fmt.Sprintf("%c", 'a'+res.From.File)
			}
		}
		body = prefix + capture + res.To.String()
	}

	switch {
	case next.Outcome != nil && next.Outcome.Method == turn.Checkmate:
		return body + "#"
	case res.Check:
		return body + "+"
	}
	return body
}
