package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

var ErrInvalidFEN = errors.New("invalid fen")

// FEN renders the piece placement and side to move. Castling and en passant
// are not modelled, so those fields are always "-".
func (p Position) FEN() string {
	var b strings.Builder
	for row := 0; row < Size; row++ {
		if row > 0 {
			b.WriteByte('/')
		}
		empty := 0
		for col := 0; col < Size; col++ {
			pc := p.board[row][col]
			if pc.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte(byte('0' + empty))
				empty = 0
			}
			b.WriteByte(pc.Letter())
		}
		if empty > 0 {
			b.WriteByte(byte('0' + empty))
		}
	}
	if p.SideToMove == White {
		b.WriteString(" w")
	} else {
		b.WriteString(" b")
	}
	b.WriteString(" - - 0 1")
	return b.String()
}

// ParseFEN reads the placement and side-to-move fields of a FEN string. The
// remaining fields are accepted but ignored.
func ParseFEN(fen string) (pos Position, err error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return Position{}, fmt.Errorf("%w: need placement and side to move", ErrInvalidFEN)
	}
	if err := checkPlacement(fields[0]); err != nil {
		return Position{}, err
	}
	if fields[1] != "w" && fields[1] != "b" {
		return Position{}, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}

	defer func() {
		if r := recover(); r != nil {
			pos, err = Position{}, fmt.Errorf("%w: %v", ErrInvalidFEN, r)
		}
	}()
	board := dragontoothmg.ParseFen(fields[0] + " " + fields[1] + " - - 0 1")
	return fromBitboards(&board), nil
}

func checkPlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != Size {
		return fmt.Errorf("%w: expected %d ranks, got %d", ErrInvalidFEN, Size, len(ranks))
	}
	for i, rank := range ranks {
		width := 0
		for _, r := range rank {
			switch {
			case r >= '1' && r <= '8':
				width += int(r - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", r):
				width++
			default:
				return fmt.Errorf("%w: unexpected %q in rank %d", ErrInvalidFEN, r, Size-i)
			}
		}
		if width != Size {
			return fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, Size-i, width)
		}
	}
	return nil
}

// fromBitboards maps dragontoothmg's a1=0 square numbering onto rows where
// row 0 is rank 8.
func fromBitboards(b *dragontoothmg.Board) Position {
	side := Black
	if b.Wtomove {
		side = White
	}
	p := EmptyPosition(side)
	place := func(c Color, bb *dragontoothmg.Bitboards) {
		layers := []struct {
			kind Kind
			bits uint64
		}{
			{Pawn, bb.Pawns},
			{Knight, bb.Knights},
			{Bishop, bb.Bishops},
			{Rook, bb.Rooks},
			{Queen, bb.Queens},
			{King, bb.Kings},
		}
		for _, l := range layers {
			for idx := 0; idx < Size*Size; idx++ {
				if l.bits&(uint64(1)<<idx) != 0 {
					p.board[Size-1-idx/Size][idx%Size] = NewPiece(c, l.kind)
				}
			}
		}
	}
	place(White, &b.White)
	place(Black, &b.Black)
	return p
}
