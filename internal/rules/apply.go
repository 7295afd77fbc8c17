package rules

// ApplyMove returns the position after piece moves to target: an opposing
// piece on target is captured, piece is relocated and marked as moved. The
// rook of a castle is left alone; CommitMove relocates it. pieces is not
// modified.
func ApplyMove(piece Piece, target Square, pieces Position) Position {
	next := make(Position, 0, len(pieces))
	for _, p := range pieces {
		switch {
		case p.Square == piece.Square:
			p.Square = target
			p.HasMoved = true
		case p.Square == target && p.Color != piece.Color:
			continue
		}
		next = append(next, p)
	}
	return next
}

// CommitMove is ApplyMove plus the rook relocation of a castle, applied as a
// single transition.
func CommitMove(piece Piece, target Square, pieces Position) Position {
	next := ApplyMove(piece, target, pieces)
	if !IsCastle(piece, target) {
		return next
	}
	rookFrom, rookTo := CastleRook(piece, target)
	for i := range next {
		if next[i].Square == rookFrom && next[i].Kind == Rook && next[i].Color == piece.Color {
			next[i].Square = rookTo
			next[i].HasMoved = true
			break
		}
	}
	return next
}
