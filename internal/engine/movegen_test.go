package engine

import (
	"slices"
	"testing"
)

func collect(p Position, from Square) []Square {
	pc := p.PieceAt(from)
	var out []Square
	for to := range Targets(p, from, pc, p.SideToMove) {
		out = append(out, to)
	}
	slices.SortFunc(out, func(a, b Square) int {
		if squareLess(a, b) {
			return -1
		}
		if a == b {
			return 0
		}
		return 1
	})
	return out
}

func has(squares []Square, sq Square) bool {
	return slices.Contains(squares, sq)
}

func TestInitialPositionMoveCount(t *testing.T) {
	for _, side := range []Color{White, Black} {
		p := InitialPosition().WithSideToMove(side)
		moves := GenerateLegalMoves(p)
		if moves.Len() != 20 {
			t.Fatalf("%s to move: expected 20 moves, got %d", side, moves.Len())
		}
		for m := range moves {
			if p.PieceAt(m.From).Color != side {
				t.Fatalf("%s to move: move %s starts on a %s piece", side, m, p.PieceAt(m.From))
			}
		}
	}
}

func TestRookRays(t *testing.T) {
	from := Sq(3, 3)
	rook := NewPiece(White, Rook)
	tests := []struct {
		name     string
		blocker  Piece
		expected int
		includes bool
	}{
		{"empty board", Empty, 14, false},
		{"friendly blocker", NewPiece(White, Knight), 12, false},
		{"enemy blocker", NewPiece(Black, Knight), 13, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := EmptyPosition(White).Put(from, rook)
			if !tt.blocker.IsEmpty() {
				p = p.Put(Sq(3, 6), tt.blocker)
			}
			got := collect(p, from)
			if len(got) != tt.expected {
				t.Fatalf("expected %d destinations, got %d: %v", tt.expected, len(got), got)
			}
			if has(got, Sq(3, 7)) && !tt.blocker.IsEmpty() {
				t.Fatalf("ray continued past blocker to h5")
			}
			if !tt.blocker.IsEmpty() && has(got, Sq(3, 6)) != tt.includes {
				t.Fatalf("blocker square included = %v, want %v", has(got, Sq(3, 6)), tt.includes)
			}
		})
	}
}

func TestSlidingCounts(t *testing.T) {
	from := Sq(3, 3)
	for kind, want := range map[Kind]int{Bishop: 13, Rook: 14, Queen: 27} {
		p := EmptyPosition(Black).Put(from, NewPiece(Black, kind))
		if got := len(collect(p, from)); got != want {
			t.Errorf("%s on d5: expected %d, got %d", kind, want, got)
		}
	}
}

func TestPawnForward(t *testing.T) {
	from := Sq(6, 4)
	pawn := NewPiece(White, Pawn)

	p := EmptyPosition(White).Put(from, pawn)
	got := collect(p, from)
	if len(got) != 2 || !has(got, Sq(5, 4)) || !has(got, Sq(4, 4)) {
		t.Fatalf("home pawn: expected e3 and e4, got %v", got)
	}

	for _, blocker := range []Piece{NewPiece(White, Knight), NewPiece(Black, Knight)} {
		blocked := p.Put(Sq(5, 4), blocker)
		if got := collect(blocked, from); len(got) != 0 {
			t.Fatalf("pawn blocked by %s: expected no moves, got %v", blocker, got)
		}
	}

	far := p.Put(Sq(4, 4), NewPiece(Black, Bishop))
	if got := collect(far, from); len(got) != 1 || got[0] != Sq(5, 4) {
		t.Fatalf("double step blocked: expected only e3, got %v", got)
	}
}

func TestPawnOffHomeRowSingleStep(t *testing.T) {
	from := Sq(5, 0)
	p := EmptyPosition(White).Put(from, NewPiece(White, Pawn))
	got := collect(p, from)
	if len(got) != 1 || got[0] != Sq(4, 0) {
		t.Fatalf("expected only a4, got %v", got)
	}
}

func TestPawnCaptures(t *testing.T) {
	from := Sq(6, 4)
	p := EmptyPosition(White).
		Put(from, NewPiece(White, Pawn)).
		Put(Sq(5, 3), NewPiece(Black, Rook))
	got := collect(p, from)
	want := []Square{Sq(4, 4), Sq(5, 3), Sq(5, 4)}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if has(got, Sq(5, 5)) {
		t.Fatalf("empty diagonal listed as destination")
	}

	friendly := p.Put(Sq(5, 3), NewPiece(White, Rook))
	if has(collect(friendly, from), Sq(5, 3)) {
		t.Fatalf("pawn captured its own piece")
	}
}

func TestBlackPawnAdvancesDown(t *testing.T) {
	from := Sq(1, 7)
	p := EmptyPosition(Black).
		Put(from, NewPiece(Black, Pawn)).
		Put(Sq(2, 6), NewPiece(White, Pawn))
	got := collect(p, from)
	want := []Square{Sq(2, 6), Sq(2, 7), Sq(3, 7)}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPawnOnLastRowHasNoMoves(t *testing.T) {
	from := Sq(0, 2)
	p := EmptyPosition(White).
		Put(from, NewPiece(White, Pawn)).
		Put(Sq(1, 1), NewPiece(Black, Pawn))
	if got := collect(p, from); len(got) != 0 {
		t.Fatalf("expected no moves, got %v", got)
	}
}

func TestKnightMoves(t *testing.T) {
	knight := NewPiece(White, Knight)
	corner := EmptyPosition(White).Put(Sq(0, 0), knight)
	if got := collect(corner, Sq(0, 0)); len(got) != 2 {
		t.Fatalf("corner knight: expected 2, got %v", got)
	}
	center := EmptyPosition(White).Put(Sq(3, 3), knight)
	if got := collect(center, Sq(3, 3)); len(got) != 8 {
		t.Fatalf("central knight: expected 8, got %v", got)
	}

	mixed := center.
		Put(Sq(1, 2), NewPiece(White, Pawn)).
		Put(Sq(1, 4), NewPiece(Black, Pawn))
	got := collect(mixed, Sq(3, 3))
	if len(got) != 7 || has(got, Sq(1, 2)) || !has(got, Sq(1, 4)) {
		t.Fatalf("expected friendly square excluded and enemy included, got %v", got)
	}
}

func TestKingMoves(t *testing.T) {
	king := NewPiece(Black, King)
	corner := EmptyPosition(Black).Put(Sq(7, 7), king)
	if got := collect(corner, Sq(7, 7)); len(got) != 3 {
		t.Fatalf("corner king: expected 3, got %v", got)
	}
	center := EmptyPosition(Black).
		Put(Sq(4, 4), king).
		Put(Sq(3, 4), NewPiece(Black, Pawn)).
		Put(Sq(5, 5), NewPiece(White, Queen))
	got := collect(center, Sq(4, 4))
	if len(got) != 7 || has(got, Sq(3, 4)) || !has(got, Sq(5, 5)) {
		t.Fatalf("expected 7 with capture of the queen, got %v", got)
	}
}

func TestTargetsStopsEarly(t *testing.T) {
	p := EmptyPosition(White).Put(Sq(3, 3), NewPiece(White, Queen))
	n := 0
	for range Targets(p, Sq(3, 3), p.PieceAt(Sq(3, 3)), White) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Fatalf("expected to stop after 3, got %d", n)
	}
}

func TestEmptySquareHasNoTargets(t *testing.T) {
	p := EmptyPosition(White)
	if got := collect(p, Sq(4, 4)); len(got) != 0 {
		t.Fatalf("expected nothing from an empty square, got %v", got)
	}
}

func TestOnlySideToMoveGenerates(t *testing.T) {
	p := EmptyPosition(White).
		Put(Sq(7, 0), NewPiece(White, Rook)).
		Put(Sq(0, 7), NewPiece(Black, Rook))
	for m := range GenerateLegalMoves(p) {
		if m.From != Sq(7, 0) {
			t.Fatalf("black rook moved on white's turn: %s", m)
		}
	}
	if n := GenerateLegalMoves(p.WithSideToMove(Black)).Len(); n != 14 {
		t.Fatalf("black rook: expected 14, got %d", n)
	}
}
