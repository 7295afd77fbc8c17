package rules

import "fmt"

// findKing returns the king of color. Every position handed to the check
// functions must hold exactly one king per color.
func findKing(pieces Position, color Color) Piece {
	var king Piece
	found := 0
	for _, p := range pieces {
		if p.Kind == King && p.Color == color {
			king = p
			found++
		}
	}
	if found != 1 {
		panic(fmt.Sprintf("rules: position has %d %s kings", found, color))
	}
	return king
}

// IsSquareAttacked reports whether any piece of color by could move to sq in
// the given position.
func IsSquareAttacked(sq Square, by Color, pieces Position) bool {
	for _, p := range pieces {
		if p.Color == by && IsMoveValid(p, sq, pieces) {
			return true
		}
	}
	return false
}

// IsInCheck reports whether the king of color is attacked.
func IsInCheck(pieces Position, color Color) bool {
	king := findKing(pieces, color)
	return IsSquareAttacked(king.Square, color.Opposite(), pieces)
}

// IsMoveLegal reports whether piece may move to target under the full rules:
// the move is valid, a castle neither starts in nor passes through check, and
// the mover's king is not left in check.
func IsMoveLegal(piece Piece, target Square, pieces Position) bool {
	if !IsMoveValid(piece, target, pieces) {
		return false
	}
	if IsCastle(piece, target) && !IsCastleSafe(piece, target, pieces) {
		return false
	}
	return !IsInCheck(ApplyMove(piece, target, pieces), piece.Color)
}

// IsCastleSafe reports whether the castling king is neither in check nor
// passing through an attacked square. The landing square is left to the
// ordinary self-check test.
func IsCastleSafe(king Piece, target Square, pieces Position) bool {
	if IsInCheck(pieces, king.Color) {
		return false
	}
	transit := Square{File: king.Square.File + sign(target.File-king.Square.File), Rank: king.Square.Rank}
	return !IsInCheck(ApplyMove(king, transit, pieces), king.Color)
}

// LegalTargets lists every square piece may legally move to.
func LegalTargets(piece Piece, pieces Position) []Square {
	var targets []Square
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := Square{File: file, Rank: rank}
			if IsMoveLegal(piece, sq, pieces) {
				targets = append(targets, sq)
			}
		}
	}
	return targets
}

// HasLegalMove searches every piece of color against all 64 squares and
// stops at the first legal move.
func HasLegalMove(pieces Position, color Color) bool {
	for _, p := range pieces {
		if p.Color != color {
			continue
		}
		for rank := 0; rank < 8; rank++ {
			for file := 0; file < 8; file++ {
				if IsMoveLegal(p, Square{File: file, Rank: rank}, pieces) {
					return true
				}
			}
		}
	}
	return false
}

// IsCheckmate reports whether color is in check and no move gets it out.
func IsCheckmate(pieces Position, color Color) bool {
	return IsInCheck(pieces, color) && !HasLegalMove(pieces, color)
}

// IsStalemate reports whether color is not in check but has no legal move.
func IsStalemate(pieces Position, color Color) bool {
	return !IsInCheck(pieces, color) && !HasLegalMove(pieces, color)
}
