package board

import (
	"strconv"

	"github.com/puzzle-framework/kropki/pkg/kropki"
)

const (
	// Size is the edge length of the grid.
	Size = 9
	// BlockSize is the edge length of one block.
	BlockSize = 3
	// Empty is the grid value of a cell holding no digit.
	Empty = 0
)

// Board is a 9x9 Kropki Sudoku position: the digit grid plus the two dot
// matrices covering horizontally and vertically adjacent pairs. The zero
// value is an empty grid with no dots drawn.
//
// A Board is not safe for concurrent mutation; during a solve the engine
// is its only writer.
type Board struct {
	grid  [Size][Size]int
	hdots [Size][Size - 1]kropki.Dot
	vdots [Size - 1][Size]kropki.Dot
}

// New returns an empty board.
func New() *Board {
	return &Board{}
}

// Value returns the digit at (row, col), or Empty for an unassigned cell.
func (b *Board) Value(row, col int) (int, error) {
	if !inGrid(row, col) {
		return Empty, outOfRange("cell", row, col)
	}
	return b.grid[row][col], nil
}

// SetValue writes a digit at (row, col). Writing Empty clears the cell.
func (b *Board) SetValue(row, col, value int) error {
	if !inGrid(row, col) {
		return outOfRange("cell", row, col)
	}
	if value < Empty || value > Size {
		return kropki.InvalidValueError{Value: value}
	}
	b.grid[row][col] = value
	return nil
}

// HorizontalDot returns the dot between (row, col) and (row, col+1).
// Asking about the pair beyond the last column reports kropki.None: the
// edge has no neighbor to constrain.
func (b *Board) HorizontalDot(row, col int) (kropki.Dot, error) {
	if !inGrid(row, col) {
		return kropki.None, outOfRange("horizontal dot", row, col)
	}
	if col == Size-1 {
		return kropki.None, nil
	}
	return b.hdots[row][col], nil
}

// SetHorizontalDot draws a dot between (row, col) and (row, col+1).
// Writes beyond the last column have no pair to attach to and are
// silently dropped.
func (b *Board) SetHorizontalDot(row, col int, dot kropki.Dot) error {
	if !inGrid(row, col) {
		return outOfRange("horizontal dot", row, col)
	}
	if dot > kropki.Black {
		return kropki.InvalidDotError{Value: int(dot)}
	}
	if col == Size-1 {
		return nil
	}
	b.hdots[row][col] = dot
	return nil
}

// VerticalDot returns the dot between (row, col) and (row+1, col).
// Asking about the pair beyond the last row reports kropki.None.
func (b *Board) VerticalDot(row, col int) (kropki.Dot, error) {
	if !inGrid(row, col) {
		return kropki.None, outOfRange("vertical dot", row, col)
	}
	if row == Size-1 {
		return kropki.None, nil
	}
	return b.vdots[row][col], nil
}

// SetVerticalDot draws a dot between (row, col) and (row+1, col). Writes
// beyond the last row are silently dropped.
func (b *Board) SetVerticalDot(row, col int, dot kropki.Dot) error {
	if !inGrid(row, col) {
		return outOfRange("vertical dot", row, col)
	}
	if dot > kropki.Black {
		return kropki.InvalidDotError{Value: int(dot)}
	}
	if row == Size-1 {
		return nil
	}
	b.vdots[row][col] = dot
	return nil
}

// Row returns a copy of row i.
func (b *Board) Row(i int) ([Size]int, error) {
	if i < 0 || i >= Size {
		return [Size]int{}, unitOutOfRange("row", i)
	}
	return b.grid[i], nil
}

// Column returns a copy of column i.
func (b *Board) Column(i int) ([Size]int, error) {
	var col [Size]int
	if i < 0 || i >= Size {
		return col, unitOutOfRange("column", i)
	}
	for r := 0; r < Size; r++ {
		col[r] = b.grid[r][i]
	}
	return col, nil
}

// Block returns a copy of block i, blocks numbered 0 through 8 in
// row-major order, cells within the block likewise.
func (b *Board) Block(i int) ([Size]int, error) {
	var blk [Size]int
	if i < 0 || i >= Size {
		return blk, unitOutOfRange("block", i)
	}
	baseRow := (i / BlockSize) * BlockSize
	baseCol := (i % BlockSize) * BlockSize
	k := 0
	for r := 0; r < BlockSize; r++ {
		for c := 0; c < BlockSize; c++ {
			blk[k] = b.grid[baseRow+r][baseCol+c]
			k++
		}
	}
	return blk, nil
}

// BlockIndex returns the number of the block containing (row, col).
func BlockIndex(row, col int) int {
	return (row/BlockSize)*BlockSize + col/BlockSize
}

// IsEmpty reports whether the cell at (row, col) holds no digit.
func (b *Board) IsEmpty(row, col int) (bool, error) {
	v, err := b.Value(row, col)
	if err != nil {
		return false, err
	}
	return v == Empty, nil
}

// Full reports whether every cell holds a digit.
func (b *Board) Full() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.grid[r][c] == Empty {
				return false
			}
		}
	}
	return true
}

// EmptyPositions returns every unassigned cell in row-major order.
func (b *Board) EmptyPositions() []kropki.Position {
	var empty []kropki.Position
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.grid[r][c] == Empty {
				empty = append(empty, kropki.Position{Row: r, Col: c})
			}
		}
	}
	return empty
}

// Grid returns a copy of the digit grid.
func (b *Board) Grid() [Size][Size]int {
	return b.grid
}

// Clone returns a deep copy sharing no state with the receiver.
func (b *Board) Clone() *Board {
	dup := *b
	return &dup
}

func inGrid(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

func outOfRange(what string, row, col int) error {
	return kropki.OutOfRangeError{What: what, At: kropki.Position{Row: row, Col: col}.String()}
}

func unitOutOfRange(what string, i int) error {
	return kropki.OutOfRangeError{What: what, At: strconv.Itoa(i)}
}
