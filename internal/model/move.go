package model

import "github.com/benbeisheim/chess-backend/internal/engine"

// ClientMove is the move payload sent by the board UI, squares in algebraic
// form: {"from":"e2","to":"e4"}.
type ClientMove struct {
	From engine.Square `json:"from"`
	To   engine.Square `json:"to"`
}

func (m ClientMove) Move() engine.Move {
	return engine.Move{From: m.From, To: m.To}
}

type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  PlayerColor `json:"color"`
}

const (
	MatchStatusQueued  = "queued"
	MatchStatusMatched = "matched"
)

// MatchStatus answers players who queued over REST and poll for their game.
type MatchStatus struct {
	Status string      `json:"status"`
	GameID string      `json:"gameId,omitempty"`
	Color  PlayerColor `json:"color,omitempty"`
}
