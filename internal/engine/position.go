package engine

import "strings"

// Position is a board snapshot plus the side to move. It is a plain value:
// copying a Position copies the whole board.
type Position struct {
	board      [Size][Size]Piece
	SideToMove Color
}

var backRank = [Size]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// InitialPosition returns the standard starting setup with White to move.
// Black occupies rows 0 and 1, White rows 6 and 7.
func InitialPosition() Position {
	p := Position{SideToMove: White}
	for col := 0; col < Size; col++ {
		p.board[0][col] = NewPiece(Black, backRank[col])
		p.board[1][col] = NewPiece(Black, Pawn)
		p.board[6][col] = NewPiece(White, Pawn)
		p.board[7][col] = NewPiece(White, backRank[col])
	}
	return p
}

func EmptyPosition(side Color) Position {
	return Position{SideToMove: side}
}

// PieceAt returns the occupant of sq. sq must be in bounds.
func (p Position) PieceAt(sq Square) Piece {
	return p.board[sq.Row][sq.Col]
}

// Put returns a copy of p with pc placed on sq.
func (p Position) Put(sq Square, pc Piece) Position {
	p.board[sq.Row][sq.Col] = pc
	return p
}

func (p Position) WithSideToMove(side Color) Position {
	p.SideToMove = side
	return p
}

func IsEmptySquare(p Position, sq Square) bool {
	return p.PieceAt(sq).IsEmpty()
}

// Squares calls fn for every occupied square in row-major order.
func (p Position) Squares(fn func(Square, Piece)) {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if pc := p.board[row][col]; !pc.IsEmpty() {
				fn(Sq(row, col), pc)
			}
		}
	}
}

// String draws the board with rank labels on the left and file labels below.
func (p Position) String() string {
	var b strings.Builder
	for row := 0; row < Size; row++ {
		b.WriteByte(byte('0' + Size - row))
		b.WriteByte(' ')
		for col := 0; col < Size; col++ {
			b.WriteByte(p.board[row][col].Letter())
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	b.WriteString("  a b c d e f g h\n")
	return b.String()
}
