package model

import "github.com/benbeisheim/chess-backend/internal/engine"

type Player struct {
	ID    string
	Color PlayerColor
}

type ClientPlayer struct {
	ID       string `json:"id"`
	Color    string `json:"color"`
	TimeLeft int64  `json:"timeLeft"` // milliseconds
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func (c PlayerColor) Side() engine.Color {
	if c == PlayerColorBlack {
		return engine.Black
	}
	return engine.White
}
