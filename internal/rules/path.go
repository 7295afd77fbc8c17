package rules

// PieceAt returns the piece standing on sq.
func PieceAt(sq Square, pieces Position) (Piece, bool) {
	for _, p := range pieces {
		if p.Square == sq {
			return p, true
		}
	}
	return Piece{}, false
}

// ColorAt returns the color of the piece on sq, if any.
func ColorAt(sq Square, pieces Position) (Color, bool) {
	p, ok := PieceAt(sq, pieces)
	return p.Color, ok
}

func isEmpty(sq Square, pieces Position) bool {
	_, occupied := PieceAt(sq, pieces)
	return !occupied
}

// IsPathEmpty reports whether every square strictly between origin and end is
// unoccupied. The two squares must share a rank, file or diagonal; squares
// that do not have no squares between them and are reported empty.
func IsPathEmpty(origin, end Square, pieces Position) bool {
	df, dr := end.File-origin.File, end.Rank-origin.Rank
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return true
	}
	stepF, stepR := sign(df), sign(dr)
	cur := Square{File: origin.File + stepF, Rank: origin.Rank + stepR}
	for cur != end {
		if !isEmpty(cur, pieces) {
			return false
		}
		cur = Square{File: cur.File + stepF, Rank: cur.Rank + stepR}
	}
	return true
}
