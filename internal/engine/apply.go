package engine

// ApplyMove returns the position after m. The piece on m.From moves to m.To,
// replacing whatever stood there, and the turn passes to the other side.
//
// m must come from GenerateLegalMoves(p); ApplyMove does not check it. p itself
// is never modified.
func ApplyMove(p Position, m Move) Position {
	next := p
	next.board[m.To.Row][m.To.Col] = p.board[m.From.Row][m.From.Col]
	next.board[m.From.Row][m.From.Col] = Empty
	next.SideToMove = p.SideToMove.Opposite()
	return next
}

// Captured returns the piece m would remove from the board, or Empty.
func Captured(p Position, m Move) Piece {
	return p.PieceAt(m.To)
}
