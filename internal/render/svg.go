// Package render draws board snapshots for clients that cannot run the
// interactive board, e.g. link previews.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/benbeisheim/chess-backend/internal/engine"
)

const (
	squareSize = 60
	margin     = 20

	lightFill     = "fill:#f0d9b5"
	darkFill      = "fill:#b58863"
	highlightFill = "fill:#cdd26a;fill-opacity:0.8"
	labelStyle    = "font-size:12px;font-family:sans-serif;fill:#333"
	glyphStyle    = "font-size:44px;text-anchor:middle;dominant-baseline:central"
)

var glyphs = map[engine.Piece]string{
	engine.NewPiece(engine.White, engine.Pawn):   "♙",
	engine.NewPiece(engine.White, engine.Knight): "♘",
	engine.NewPiece(engine.White, engine.Bishop): "♗",
	engine.NewPiece(engine.White, engine.Rook):   "♖",
	engine.NewPiece(engine.White, engine.Queen):  "♕",
	engine.NewPiece(engine.White, engine.King):   "♔",
	engine.NewPiece(engine.Black, engine.Pawn):   "♟",
	engine.NewPiece(engine.Black, engine.Knight): "♞",
	engine.NewPiece(engine.Black, engine.Bishop): "♝",
	engine.NewPiece(engine.Black, engine.Rook):   "♜",
	engine.NewPiece(engine.Black, engine.Queen):  "♛",
	engine.NewPiece(engine.Black, engine.King):   "♚",
}

type Options struct {
	// Flip draws the board from Black's side.
	Flip      bool
	Highlight []engine.Square
}

// BoardSVG writes an SVG image of p to w.
func BoardSVG(w io.Writer, p engine.Position, opts Options) {
	side := engine.Size*squareSize + 2*margin
	canvas := svg.New(w)
	canvas.Start(side, side)

	highlighted := make(map[engine.Square]bool, len(opts.Highlight))
	for _, sq := range opts.Highlight {
		highlighted[sq] = true
	}

	for row := 0; row < engine.Size; row++ {
		for col := 0; col < engine.Size; col++ {
			sq := engine.Sq(row, col)
			x, y := origin(sq, opts.Flip)

			fill := lightFill
			if (row+col)%2 == 1 {
				fill = darkFill
			}
			canvas.Rect(x, y, squareSize, squareSize, fill)
			if highlighted[sq] {
				canvas.Rect(x, y, squareSize, squareSize, highlightFill)
			}
			if g, ok := glyphs[p.PieceAt(sq)]; ok {
				canvas.Text(x+squareSize/2, y+squareSize/2, g, glyphStyle)
			}
		}
	}

	for i := 0; i < engine.Size; i++ {
		file := engine.Sq(engine.Size-1, i)
		x, _ := origin(file, opts.Flip)
		canvas.Text(x+squareSize/2, side-margin/3, fmt.Sprintf("%c", 'a'+i), labelStyle)

		rank := engine.Sq(i, 0)
		_, y := origin(rank, opts.Flip)
		canvas.Text(margin/4, y+squareSize/2, fmt.Sprintf("%d", engine.Size-i), labelStyle)
	}

	canvas.End()
}

func origin(sq engine.Square, flip bool) (x, y int) {
	row, col := sq.Row, sq.Col
	if flip {
		row, col = engine.Size-1-row, engine.Size-1-col
	}
	return margin + col*squareSize, margin + row*squareSize
}
