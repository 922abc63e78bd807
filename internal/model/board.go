package model

import "github.com/benbeisheim/chess-backend/internal/engine"

type ClientPiece struct {
	Type  engine.Kind  `json:"type"`
	Color engine.Color `json:"color"`
}

type CapturedPieces struct {
	White []ClientPiece `json:"white"`
	Black []ClientPiece `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]ClientPiece, 0),
		Black: make([]ClientPiece, 0),
	}
}

func clientPiece(p engine.Piece) ClientPiece {
	return ClientPiece{Type: p.Kind, Color: p.Color}
}

// boardView lays the position out as rows of nullable pieces, row 0 being
// Black's back rank.
func boardView(p engine.Position) [][]*ClientPiece {
	board := make([][]*ClientPiece, engine.Size)
	for row := range board {
		board[row] = make([]*ClientPiece, engine.Size)
		for col := range board[row] {
			pc := p.PieceAt(engine.Sq(row, col))
			if pc.IsEmpty() {
				continue
			}
			cp := clientPiece(pc)
			board[row][col] = &cp
		}
	}
	return board
}
