package rules

// IsMoveValid reports whether piece may move to target by the movement rules
// of its kind. It does not consider whether the move leaves the mover's own
// king in check; see IsMoveLegal for that.
//
// pieces must contain the moving piece at its current square.
func IsMoveValid(piece Piece, target Square, pieces Position) bool {
	if !target.Valid() || target == piece.Square {
		return false
	}
	// a piece never lands on a friendly piece, whatever its geometry
	if c, ok := ColorAt(target, pieces); ok && c == piece.Color {
		return false
	}

	df := target.File - piece.Square.File
	dr := target.Rank - piece.Square.Rank
	adf, adr := abs(df), abs(dr)

	switch piece.Kind {
	case King:
		if adf <= 1 && adr <= 1 {
			return true
		}
		return isCastleValid(piece, target, pieces)
	case Queen:
		if adf != adr && df != 0 && dr != 0 {
			return false
		}
		return IsPathEmpty(piece.Square, target, pieces)
	case Bishop:
		return adf == adr && IsPathEmpty(piece.Square, target, pieces)
	case Knight:
		return (adf == 1 && adr == 2) || (adf == 2 && adr == 1)
	case Rook:
		return (df == 0 || dr == 0) && IsPathEmpty(piece.Square, target, pieces)
	case Pawn:
		return isPawnMoveValid(piece, df, dr, target, pieces)
	}
	return false
}

func pawnDirection(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

func isPawnMoveValid(piece Piece, df, dr int, target Square, pieces Position) bool {
	dir := pawnDirection(piece.Color)
	switch {
	case df == 0 && dr == dir:
		return isEmpty(target, pieces)
	case df == 0 && dr == 2*dir:
		between := Square{File: piece.Square.File, Rank: piece.Square.Rank + dir}
		return !piece.HasMoved && isEmpty(between, pieces) && isEmpty(target, pieces)
	case abs(df) == 1 && dr == dir:
		c, ok := ColorAt(target, pieces)
		return ok && c != piece.Color
	}
	return false
}

// IsCastle reports whether moving piece to target is a castling move.
func IsCastle(piece Piece, target Square) bool {
	return piece.Kind == King && abs(target.File-piece.Square.File) == 2 && target.Rank == piece.Square.Rank
}

// CastleRook returns the corner the castling rook starts on and the square it
// lands on, next to the king's destination.
func CastleRook(king Piece, target Square) (from, to Square) {
	if target.File > king.Square.File {
		return Square{File: 7, Rank: king.Square.Rank}, Square{File: target.File - 1, Rank: king.Square.Rank}
	}
	return Square{File: 0, Rank: king.Square.Rank}, Square{File: target.File + 1, Rank: king.Square.Rank}
}

func isCastleValid(king Piece, target Square, pieces Position) bool {
	if king.HasMoved || !IsCastle(king, target) {
		return false
	}
	rookFrom, _ := CastleRook(king, target)
	rook, ok := PieceAt(rookFrom, pieces)
	if !ok || rook.Kind != Rook || rook.Color != king.Color || rook.HasMoved {
		return false
	}
	// covers the transit and landing squares, and the b-file on the long side
	return IsPathEmpty(king.Square, rookFrom, pieces)
}
