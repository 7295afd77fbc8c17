package model

import (
	"io"

	"github.com/benbeisheim/chess3d-backend/internal/rules"

	svg "github.com/ajstarks/svgo"
)

const squareSize = 48

var glyphs = [2][6]string{
	rules.White: {"♔", "♕", "♗", "♘", "♖", "♙"},
	rules.Black: {"♚", "♛", "♝", "♞", "♜", "♟"},
}

// Diagram writes a flat SVG snapshot of pieces with White at the bottom.
// Squares in highlight are tinted, typically the legal targets of a selection.
func Diagram(w io.Writer, pieces rules.Position, highlight []rules.Square) {
	marked := make(map[rules.Square]bool, len(highlight))
	for _, sq := range highlight {
		marked[sq] = true
	}

	canvas := svg.New(w)
	canvas.Start(8*squareSize, 8*squareSize)
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := rules.Square{File: file, Rank: rank}
			x, y := origin(sq)
			fill := "fill:#b58863"
			if (file+rank)%2 == 1 {
				fill = "fill:#f0d9b5"
			}
			if marked[sq] {
				fill = "fill:#cdd26a"
			}
			canvas.Rect(x, y, squareSize, squareSize, fill)
		}
	}
	for _, p := range pieces {
		x, y := origin(p.Square)
		canvas.Text(x+squareSize/2, y+squareSize*4/5, glyphs[p.Color][p.Kind],
			"font-size:40px;text-anchor:middle;font-family:sans-serif")
	}
	canvas.End()
}

func origin(sq rules.Square) (x, y int) {
	return sq.File * squareSize, (7 - sq.Rank) * squareSize
}
