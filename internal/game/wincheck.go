package game

// lineDirs are the four axes: vertical, horizontal, "/" and "\".
// Row 0 is the top of the board, so "/" climbs toward lower rows.
var lineDirs = [4][2]int{{0, 1}, {1, 0}, {1, -1}, {1, 1}}

// runLength counts contiguous cells owned by seat, starting one step away
// from p and walking along (dc, dr). The walk is bounded by the board diameter.
func runLength(b *Board[Seat], p Pos, dc, dr int, seat Seat) int {
	limit := max(b.Cols, b.Rows)
	n := 0
	for step := 1; step < limit; step++ {
		q := p.Add(dc*step, dr*step)
		if !b.In(q) || b.At(q) != seat {
			break
		}
		n++
	}
	return n
}

// LineLength returns the longest line through p for seat, p included,
// as if p were owned by seat.
func LineLength(b *Board[Seat], p Pos, seat Seat) int {
	best := 0
	for _, d := range lineDirs {
		count := 1 + runLength(b, p, d[0], d[1], seat) + runLength(b, p, -d[0], -d[1], seat)
		if count > best {
			best = count
		}
	}
	return best
}

// IsWinningAfter reports whether a disc of seat at p completes a line.
func IsWinningAfter(b *Board[Seat], p Pos, seat Seat) bool {
	return LineLength(b, p, seat) >= WinLength
}

// LongestLine is the longest line seat holds anywhere on the board.
func LongestLine(b *Board[Seat], seat Seat) int {
	best := 0
	for c := 0; c < b.Cols; c++ {
		for r := 0; r < b.Rows; r++ {
			p := Pos{Col: c, Row: r}
			if b.At(p) != seat {
				continue
			}
			if n := LineLength(b, p, seat); n > best {
				best = n
			}
		}
	}
	return best
}
