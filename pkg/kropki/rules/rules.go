// Package rules holds the constraint evaluation routines shared by the
// search engine, the puzzle loader and the solution verifier. All checks
// are pure reads; nothing here mutates a board.
package rules

import (
	"math/bits"

	"github.com/puzzle-framework/kropki/pkg/kropki"
	"github.com/puzzle-framework/kropki/pkg/kropki/board"
)

// ValueSet is a set of candidate digits packed into a bitmask, bit v
// standing for digit v.
type ValueSet uint16

// AllValues holds every digit 1 through 9.
const AllValues ValueSet = 0b1111111110

// Has reports whether digit v is in the set.
func (s ValueSet) Has(v int) bool {
	return v >= 1 && v <= board.Size && s&(1<<uint(v)) != 0
}

// With returns the set with digit v added.
func (s ValueSet) With(v int) ValueSet {
	return s | 1<<uint(v)
}

// Without returns the set with digit v removed.
func (s ValueSet) Without(v int) ValueSet {
	return s &^ (1 << uint(v))
}

// Len returns the number of digits in the set.
func (s ValueSet) Len() int {
	return bits.OnesCount16(uint16(s))
}

// Empty reports whether the set holds no digits.
func (s ValueSet) Empty() bool {
	return s == 0
}

// Values returns the digits of the set in ascending order.
func (s ValueSet) Values() []int {
	vals := make([]int, 0, s.Len())
	for v := 1; v <= board.Size; v++ {
		if s.Has(v) {
			vals = append(vals, v)
		}
	}
	return vals
}

// PairAllowed reports whether two values may sit on a pair carrying dot.
// A pair with an unassigned side never constrains.
func PairAllowed(dot kropki.Dot, a, b int) bool {
	if a == board.Empty || b == board.Empty {
		return true
	}
	switch dot {
	case kropki.White:
		return consecutive(a, b)
	case kropki.Black:
		return double(a, b)
	default:
		// no dot drawn forbids both relations
		return !consecutive(a, b) && !double(a, b)
	}
}

func consecutive(a, b int) bool {
	return a-b == 1 || b-a == 1
}

func double(a, b int) bool {
	return a == 2*b || b == 2*a
}

// SatisfiesSudoku reports whether value could sit at (row, col) without
// repeating a digit in the cell's row, column or block. The target cell
// itself is ignored, so a clue must be cleared before it is retested.
// Passing board.Empty trivially satisfies.
func SatisfiesSudoku(b *board.Board, row, col, value int) (bool, error) {
	if err := checkArgs(b, row, col, value); err != nil {
		return false, err
	}
	if value == board.Empty {
		return true, nil
	}

	rowVals, err := b.Row(row)
	if err != nil {
		return false, err
	}
	for c, v := range rowVals {
		if c != col && v == value {
			return false, nil
		}
	}

	colVals, err := b.Column(col)
	if err != nil {
		return false, err
	}
	for r, v := range colVals {
		if r != row && v == value {
			return false, nil
		}
	}

	blkVals, err := b.Block(board.BlockIndex(row, col))
	if err != nil {
		return false, err
	}
	self := (row%board.BlockSize)*board.BlockSize + col%board.BlockSize
	for i, v := range blkVals {
		if i != self && v == value {
			return false, nil
		}
	}

	return true, nil
}

// SatisfiesDots reports whether value could sit at (row, col) without
// breaking the dot relation to any assigned orthogonal neighbor. Passing
// board.Empty trivially satisfies.
func SatisfiesDots(b *board.Board, row, col, value int) (bool, error) {
	if err := checkArgs(b, row, col, value); err != nil {
		return false, err
	}
	if value == board.Empty {
		return true, nil
	}

	links := [4]link{
		{nRow: row, nCol: col - 1, dRow: row, dCol: col - 1},
		{nRow: row, nCol: col + 1, dRow: row, dCol: col},
		{nRow: row - 1, nCol: col, dRow: row - 1, dCol: col, vertical: true},
		{nRow: row + 1, nCol: col, dRow: row, dCol: col, vertical: true},
	}
	for _, l := range links {
		if !l.onBoard() {
			continue
		}
		neighbor, err := b.Value(l.nRow, l.nCol)
		if err != nil {
			return false, err
		}
		if neighbor == board.Empty {
			continue
		}
		dot, err := l.dot(b)
		if err != nil {
			return false, err
		}
		if !PairAllowed(dot, value, neighbor) {
			return false, nil
		}
	}
	return true, nil
}

// Domain returns the digits that could legally sit at (row, col) given
// the current board. An occupied cell has an empty domain: there is
// nothing left to assign.
func Domain(b *board.Board, row, col int) (ValueSet, error) {
	empty, err := b.IsEmpty(row, col)
	if err != nil {
		return 0, err
	}
	if !empty {
		return 0, nil
	}

	var set ValueSet
	for v := 1; v <= board.Size; v++ {
		ok, err := SatisfiesSudoku(b, row, col, v)
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		ok, err = SatisfiesDots(b, row, col, v)
		if err != nil {
			return 0, err
		}
		if ok {
			set = set.With(v)
		}
	}
	return set, nil
}

// Neighbor describes one orthogonally adjacent cell together with the
// dot on the pair linking it to the cell it neighbors.
type Neighbor struct {
	Pos kropki.Position
	Dot kropki.Dot
}

// Neighbors returns the orthogonal neighbors of (row, col), at most four
// of them, in left, right, above, below order.
func Neighbors(b *board.Board, row, col int) ([]Neighbor, error) {
	if _, err := b.Value(row, col); err != nil {
		return nil, err
	}

	links := [4]link{
		{nRow: row, nCol: col - 1, dRow: row, dCol: col - 1},
		{nRow: row, nCol: col + 1, dRow: row, dCol: col},
		{nRow: row - 1, nCol: col, dRow: row - 1, dCol: col, vertical: true},
		{nRow: row + 1, nCol: col, dRow: row, dCol: col, vertical: true},
	}
	neighbors := make([]Neighbor, 0, len(links))
	for _, l := range links {
		if !l.onBoard() {
			continue
		}
		dot, err := l.dot(b)
		if err != nil {
			return nil, err
		}
		neighbors = append(neighbors, Neighbor{
			Pos: kropki.Position{Row: l.nRow, Col: l.nCol},
			Dot: dot,
		})
	}
	return neighbors, nil
}

// link ties a neighbor cell to the dot matrix entry covering the pair.
type link struct {
	nRow, nCol int
	dRow, dCol int
	vertical   bool
}

func (l link) onBoard() bool {
	return l.nRow >= 0 && l.nRow < board.Size && l.nCol >= 0 && l.nCol < board.Size
}

func (l link) dot(b *board.Board) (kropki.Dot, error) {
	if l.vertical {
		return b.VerticalDot(l.dRow, l.dCol)
	}
	return b.HorizontalDot(l.dRow, l.dCol)
}

func checkArgs(b *board.Board, row, col, value int) error {
	if _, err := b.Value(row, col); err != nil {
		return err
	}
	if value < board.Empty || value > board.Size {
		return kropki.InvalidValueError{Value: value}
	}
	return nil
}
