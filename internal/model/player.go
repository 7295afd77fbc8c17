package model

import "github.com/benbeisheim/chess3d-backend/internal/rules"

type ClientPlayer struct {
	ID    string      `json:"name"`
	Color PlayerColor `json:"color"`
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

func (p Players) seat(c rules.Color) ClientPlayer {
	if c == rules.Black {
		return p.Black
	}
	return p.White
}

// mayMove reports whether playerID may move pieces of color c. An empty seat
// is open to anyone, which makes an unseated game a hot-seat game.
func (p Players) mayMove(playerID string, c rules.Color) bool {
	seat := p.seat(c)
	return seat.ID == "" || seat.ID == playerID
}
