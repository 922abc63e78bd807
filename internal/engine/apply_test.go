package engine

import "testing"

func TestApplyMoveLeavesInputUntouched(t *testing.T) {
	p1 := InitialPosition()
	m := Move{From: Sq(6, 4), To: Sq(4, 4)}
	p2 := ApplyMove(p1, m)

	if p1.PieceAt(m.From) != NewPiece(White, Pawn) || !p1.PieceAt(m.To).IsEmpty() {
		t.Fatalf("input position changed: %s", p1)
	}
	if p1.SideToMove != White {
		t.Fatalf("input side to move changed to %s", p1.SideToMove)
	}
	if !p2.PieceAt(m.From).IsEmpty() || p2.PieceAt(m.To) != NewPiece(White, Pawn) {
		t.Fatalf("move not applied:\n%s", p2)
	}
	if p2.SideToMove != Black {
		t.Fatalf("expected black to move, got %s", p2.SideToMove)
	}
}

func TestApplyMoveCaptures(t *testing.T) {
	p := EmptyPosition(Black).
		Put(Sq(0, 0), NewPiece(Black, Rook)).
		Put(Sq(0, 5), NewPiece(White, Bishop))
	m := Move{From: Sq(0, 0), To: Sq(0, 5)}
	if !GenerateLegalMoves(p).Contains(m) {
		t.Fatalf("capture %s not generated", m)
	}
	if c := Captured(p, m); c != NewPiece(White, Bishop) {
		t.Fatalf("expected white bishop captured, got %s", c)
	}
	next := ApplyMove(p, m)
	if next.PieceAt(Sq(0, 5)) != NewPiece(Black, Rook) {
		t.Fatalf("rook not on f8:\n%s", next)
	}
	count := 0
	next.Squares(func(Square, Piece) { count++ })
	if count != 1 {
		t.Fatalf("expected a single piece after capture, got %d", count)
	}
}

func TestTurnAlternation(t *testing.T) {
	p := InitialPosition()
	start := p.SideToMove
	for i := 0; i < 2; i++ {
		moves := GenerateLegalMoves(p).Moves()
		if len(moves) == 0 {
			t.Fatalf("no moves for %s", p.SideToMove)
		}
		before := p.SideToMove
		p = ApplyMove(p, moves[0])
		if p.SideToMove == before {
			t.Fatalf("side to move not flipped after %s", moves[0])
		}
	}
	if p.SideToMove != start {
		t.Fatalf("expected %s after two moves, got %s", start, p.SideToMove)
	}
}
