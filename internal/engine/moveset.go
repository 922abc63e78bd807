package engine

import (
	"sort"

	"golang.org/x/exp/maps"
)

type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// MoveSet is the set of moves available to the side to move. Membership is
// keyed by (from, to); there is no ordering.
type MoveSet map[Move]struct{}

// GenerateLegalMoves collects the pseudo-legal moves of every piece belonging
// to p.SideToMove. Pieces of the other colour contribute nothing.
func GenerateLegalMoves(p Position) MoveSet {
	set := make(MoveSet)
	p.Squares(func(from Square, pc Piece) {
		if pc.Color != p.SideToMove {
			return
		}
		for to := range Targets(p, from, pc, p.SideToMove) {
			set[Move{From: from, To: to}] = struct{}{}
		}
	})
	return set
}

func (s MoveSet) Contains(m Move) bool {
	_, ok := s[m]
	return ok
}

func (s MoveSet) Len() int {
	return len(s)
}

// Destinations returns the targets reachable from one square, in board order.
func (s MoveSet) Destinations(from Square) []Square {
	var out []Square
	for m := range s {
		if m.From == from {
			out = append(out, m.To)
		}
	}
	sort.Slice(out, func(i, j int) bool { return squareLess(out[i], out[j]) })
	return out
}

// Moves lists the members ordered by origin, then destination.
func (s MoveSet) Moves() []Move {
	moves := maps.Keys(s)
	sort.Slice(moves, func(i, j int) bool {
		if moves[i].From != moves[j].From {
			return squareLess(moves[i].From, moves[j].From)
		}
		return squareLess(moves[i].To, moves[j].To)
	})
	return moves
}

func squareLess(a, b Square) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// IsLegal reports whether m belongs to legal, the set generated for p. A move
// whose origin no longer holds a piece of the side to move is rejected even if
// a stale set still lists it.
func IsLegal(p Position, m Move, legal MoveSet) bool {
	if !m.From.InBounds() || !m.To.InBounds() {
		return false
	}
	if !IsFriendly(p.PieceAt(m.From), p.SideToMove) {
		return false
	}
	return legal.Contains(m)
}
