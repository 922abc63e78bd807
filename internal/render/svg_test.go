package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/benbeisheim/chess-backend/internal/engine"
)

func TestBoardSVG(t *testing.T) {
	var buf bytes.Buffer
	BoardSVG(&buf, engine.InitialPosition(), Options{})
	out := buf.String()

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an svg document:\n%s", out)
	}
	if n := strings.Count(out, "<rect"); n != 64 {
		t.Fatalf("expected 64 squares, got %d", n)
	}
	if n := strings.Count(out, "♟"); n != 8 {
		t.Fatalf("expected 8 black pawns, got %d", n)
	}
	if n := strings.Count(out, "♔"); n != 1 {
		t.Fatalf("expected one white king, got %d", n)
	}
}

func TestBoardSVGHighlight(t *testing.T) {
	var buf bytes.Buffer
	BoardSVG(&buf, engine.InitialPosition(), Options{
		Flip:      true,
		Highlight: []engine.Square{engine.Sq(5, 4), engine.Sq(4, 4)},
	})
	if n := strings.Count(buf.String(), "<rect"); n != 66 {
		t.Fatalf("expected 64 squares plus 2 highlights, got %d", n)
	}
}

func TestOriginFlip(t *testing.T) {
	x, y := origin(engine.Sq(0, 0), false)
	if x != margin || y != margin {
		t.Fatalf("a8 unflipped at (%d,%d)", x, y)
	}
	x, y = origin(engine.Sq(0, 0), true)
	want := margin + (engine.Size-1)*squareSize
	if x != want || y != want {
		t.Fatalf("a8 flipped at (%d,%d), want (%d,%d)", x, y, want, want)
	}
}
