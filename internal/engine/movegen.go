package engine

import (
	"fmt"
	"iter"
)

type offset struct {
	dr, dc int
}

var (
	knightOffsets   = []offset{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets     = []offset{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	bishopDirs      = []offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	rookDirs        = []offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	queenDirs       = append(append([]offset{}, bishopDirs...), rookDirs...)
	pawnCaptureCols = []int{-1, 1}
)

// Targets yields the pseudo-legal destinations of pc standing on from, judged
// from side's point of view. Moves that leave the mover's king attacked are
// not filtered out.
func Targets(p Position, from Square, pc Piece, side Color) iter.Seq[Square] {
	switch pc.Kind {
	case Pawn:
		return pawnTargets(p, from, pc.Color, side)
	case Knight:
		return stepTargets(p, from, side, knightOffsets)
	case Bishop:
		return slidingTargets(p, from, side, bishopDirs)
	case Rook:
		return slidingTargets(p, from, side, rookDirs)
	case Queen:
		return slidingTargets(p, from, side, queenDirs)
	case King:
		return stepTargets(p, from, side, kingOffsets)
	case None:
		return func(func(Square) bool) {}
	}
	panic(fmt.Sprintf("engine: unhandled piece kind %d", pc.Kind))
}

func pawnDirection(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func pawnHomeRow(c Color) int {
	if c == White {
		return Size - 2
	}
	return 1
}

func pawnTargets(p Position, from Square, c Color, side Color) iter.Seq[Square] {
	return func(yield func(Square) bool) {
		dir := pawnDirection(c)
		one := from.Add(dir, 0)
		if one.InBounds() && IsEmptySquare(p, one) {
			if !yield(one) {
				return
			}
			two := from.Add(2*dir, 0)
			if from.Row == pawnHomeRow(c) && two.InBounds() && IsEmptySquare(p, two) {
				if !yield(two) {
					return
				}
			}
		}
		for _, dc := range pawnCaptureCols {
			to := from.Add(dir, dc)
			if to.InBounds() && IsEnemy(p.PieceAt(to), side) {
				if !yield(to) {
					return
				}
			}
		}
	}
}

// stepTargets covers the knight and the king: one hop per offset, blocked only
// by a friendly piece on the landing square.
func stepTargets(p Position, from Square, side Color, offsets []offset) iter.Seq[Square] {
	return func(yield func(Square) bool) {
		for _, o := range offsets {
			to := from.Add(o.dr, o.dc)
			if !to.InBounds() || IsFriendly(p.PieceAt(to), side) {
				continue
			}
			if !yield(to) {
				return
			}
		}
	}
}

func slidingTargets(p Position, from Square, side Color, dirs []offset) iter.Seq[Square] {
	return func(yield func(Square) bool) {
		for _, d := range dirs {
			for to := from.Add(d.dr, d.dc); to.InBounds(); to = to.Add(d.dr, d.dc) {
				target := p.PieceAt(to)
				if IsFriendly(target, side) {
					break
				}
				if !yield(to) {
					return
				}
				if !target.IsEmpty() {
					break
				}
			}
		}
	}
}
