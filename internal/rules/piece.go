// Package rules implements chess move legality, check and checkmate detection
// over an immutable list of pieces.
package rules

import (
	"encoding/json"
	"fmt"
)

type Color int

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func ParseColor(s string) (Color, error) {
	switch s {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	}
	return White, fmt.Errorf("unknown color %q", s)
}

// Kind is the closed set of chess piece types.
type Kind int

const (
	King Kind = iota
	Queen
	Bishop
	Knight
	Rook
	Pawn
)

var kindNames = [...]string{"king", "queen", "bishop", "knight", "rook", "pawn"}

func (k Kind) String() string {
	if k < King || k > Pawn {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, name := range kindNames {
		if name == s {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown piece kind %q", s)
}

// Letter returns the algebraic notation letter, empty for pawns.
func (k Kind) Letter() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// Piece is a value record; moving a piece produces a new Piece.
type Piece struct {
	Color    Color  `json:"color"`
	Kind     Kind   `json:"type"`
	HasMoved bool   `json:"hasMoved"`
	Square   Square `json:"square"`
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s@%s", p.Color, p.Kind, p.Square)
}

// Position is the set of pieces on the board. Order carries no meaning.
type Position []Piece

// Clone returns a copy that shares no storage with p.
func (p Position) Clone() Position {
	out := make(Position, len(p))
	copy(out, p)
	return out
}

var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StartingPosition returns the standard 32-piece layout.
func StartingPosition() Position {
	pieces := make(Position, 0, 32)
	for file, kind := range backRank {
		pieces = append(pieces,
			Piece{Color: White, Kind: kind, Square: Square{File: file, Rank: 0}},
			Piece{Color: Black, Kind: kind, Square: Square{File: file, Rank: 7}},
		)
	}
	for file := 0; file < 8; file++ {
		pieces = append(pieces,
			Piece{Color: White, Kind: Pawn, Square: Square{File: file, Rank: 1}},
			Piece{Color: Black, Kind: Pawn, Square: Square{File: file, Rank: 6}},
		)
	}
	return pieces
}
