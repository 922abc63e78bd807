package engine

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func TestGenerateIsDeterministic(t *testing.T) {
	p := InitialPosition()
	a, b := GenerateLegalMoves(p), GenerateLegalMoves(p)
	if a.Len() != b.Len() {
		t.Fatalf("sizes differ: %d vs %d", a.Len(), b.Len())
	}
	for m := range a {
		if !b.Contains(m) {
			t.Fatalf("%s missing from second generation", m)
		}
	}
}

func TestIsLegal(t *testing.T) {
	p := InitialPosition()
	legal := GenerateLegalMoves(p)
	tests := []struct {
		move Move
		want bool
	}{
		{Move{From: Sq(6, 4), To: Sq(4, 4)}, true},
		{Move{From: Sq(7, 6), To: Sq(5, 5)}, true},
		{Move{From: Sq(6, 4), To: Sq(3, 4)}, false},
		{Move{From: Sq(7, 0), To: Sq(5, 0)}, false},
		{Move{From: Sq(1, 4), To: Sq(3, 4)}, false},
		{Move{From: Sq(6, 4), To: Sq(8, 4)}, false},
	}
	for _, tt := range tests {
		if got := IsLegal(p, tt.move, legal); got != tt.want {
			t.Errorf("IsLegal(%s) = %v, want %v", tt.move, got, tt.want)
		}
	}

	// a set computed for the previous position must not validate a move
	// for a piece that has since left its square
	next := ApplyMove(p, Move{From: Sq(6, 4), To: Sq(4, 4)})
	if IsLegal(next, Move{From: Sq(6, 4), To: Sq(5, 4)}, legal) {
		t.Fatalf("stale set accepted a move from an empty square")
	}
}

func TestDestinationsAndOrdering(t *testing.T) {
	legal := GenerateLegalMoves(InitialPosition())
	got := legal.Destinations(Sq(7, 1))
	if len(got) != 2 || got[0] != Sq(5, 0) || got[1] != Sq(5, 2) {
		t.Fatalf("knight b1: expected [a3 c3], got %v", got)
	}
	moves := legal.Moves()
	if len(moves) != 20 {
		t.Fatalf("expected 20 moves, got %d", len(moves))
	}
	for i := 1; i < len(moves); i++ {
		prev, cur := moves[i-1], moves[i]
		if squareLess(cur.From, prev.From) || (cur.From == prev.From && squareLess(cur.To, prev.To)) {
			t.Fatalf("moves out of order at %d: %s before %s", i, prev, cur)
		}
	}
}

// In these positions no move can expose a king, so the pseudo-legal set must
// match a fully legal generator exactly.
func TestAgreesWithLegalGenerator(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b - - 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w - - 0 2",
		"4k3/8/8/3n4/8/8/3N4/4K3 w - - 0 1",
	}
	for _, fen := range fens {
		p, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		ours := GenerateLegalMoves(p)

		board := dragontoothmg.ParseFen(fen)
		theirs := make(MoveSet)
		for _, m := range board.GenerateLegalMoves() {
			theirs[Move{From: fromIndex(m.From()), To: fromIndex(m.To())}] = struct{}{}
		}

		if ours.Len() != theirs.Len() {
			t.Fatalf("%s: %d moves, legal generator has %d", fen, ours.Len(), theirs.Len())
		}
		for m := range theirs {
			if !ours.Contains(m) {
				t.Fatalf("%s: missing %s", fen, m)
			}
		}
	}
}

func fromIndex(idx uint8) Square {
	return Sq(Size-1-int(idx)/Size, int(idx)%Size)
}
