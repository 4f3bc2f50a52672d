// Package testgrid carries one known Kropki solution and fixture
// builders derived from it, shared by tests across the module.
package testgrid

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/puzzle-framework/kropki/pkg/kropki"
	"github.com/puzzle-framework/kropki/pkg/kropki/board"
)

var (
	nn = kropki.None
	wh = kropki.White
	bk = kropki.Black
)

// Solved is a complete valid grid.
var Solved = [board.Size][board.Size]int{
	{5, 3, 4, 6, 7, 8, 9, 1, 2},
	{6, 7, 2, 1, 9, 5, 3, 4, 8},
	{1, 9, 8, 3, 4, 2, 5, 6, 7},
	{8, 5, 9, 7, 6, 1, 4, 2, 3},
	{4, 2, 6, 8, 5, 3, 7, 9, 1},
	{7, 1, 3, 9, 2, 4, 8, 5, 6},
	{9, 6, 1, 5, 3, 7, 2, 8, 4},
	{2, 8, 7, 4, 1, 9, 6, 3, 5},
	{3, 4, 5, 2, 8, 6, 1, 7, 9},
}

// HDots and VDots are read off Solved: a white dot under every
// consecutive pair, a black dot under every double pair that is not
// also consecutive, none elsewhere. Solved therefore satisfies every
// dot, and so does any puzzle made by blanking cells of Solved.
var HDots = [board.Size][board.Size - 1]kropki.Dot{
	{nn, wh, nn, wh, wh, wh, nn, wh},
	{wh, nn, wh, nn, nn, nn, wh, bk},
	{nn, wh, nn, wh, bk, nn, wh, wh},
	{nn, nn, nn, wh, nn, nn, bk, wh},
	{bk, nn, nn, nn, nn, nn, nn, nn},
	{nn, nn, nn, nn, bk, bk, nn, wh},
	{nn, nn, nn, nn, nn, nn, nn, bk},
	{nn, wh, nn, nn, nn, nn, bk, nn},
	{wh, wh, nn, nn, nn, nn, nn, nn},
}

var VDots = [board.Size - 1][board.Size]kropki.Dot{
	{wh, nn, bk, nn, nn, nn, nn, nn, nn},
	{nn, nn, nn, nn, nn, nn, nn, nn, wh},
	{nn, nn, wh, nn, nn, wh, wh, nn, nn},
	{bk, nn, nn, wh, wh, nn, nn, nn, nn},
	{nn, wh, bk, wh, nn, wh, wh, nn, nn},
	{nn, nn, nn, nn, wh, nn, nn, nn, nn},
	{nn, nn, nn, wh, nn, nn, nn, nn, wh},
	{wh, bk, nn, bk, nn, nn, nn, nn, nn},
}

// TransversalBlanks holds one cell per row and per column. Blanking
// them leaves each missing digit forced by its row alone, so the
// puzzle keeps a unique solution: Solved itself.
var TransversalBlanks = []kropki.Position{
	{Row: 0, Col: 0},
	{Row: 1, Col: 3},
	{Row: 2, Col: 6},
	{Row: 3, Col: 1},
	{Row: 4, Col: 4},
	{Row: 5, Col: 7},
	{Row: 6, Col: 2},
	{Row: 7, Col: 5},
	{Row: 8, Col: 8},
}

// Board returns Solved with the derived dots drawn and the given cells
// blanked. It panics on fixture bugs; the data above is in range.
func Board(blanks ...kropki.Position) *board.Board {
	b := board.New()
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			mustSet(b.SetValue(r, c, Solved[r][c]))
		}
	}
	for r, row := range HDots {
		for c, d := range row {
			mustSet(b.SetHorizontalDot(r, c, d))
		}
	}
	for r, row := range VDots {
		for c, d := range row {
			mustSet(b.SetVerticalDot(r, c, d))
		}
	}
	for _, p := range blanks {
		mustSet(b.SetValue(p.Row, p.Col, board.Empty))
	}
	return b
}

// Empty returns a board with no digits but all the derived dots, the
// classic clueless Kropki shape. Solved completes it.
func Empty() *board.Board {
	return Board(allPositions()...)
}

// Text renders the puzzle in the plain text file layout: nine grid
// rows, nine horizontal dot rows, eight vertical dot rows.
func Text(blanks ...kropki.Position) string {
	blanked := make(map[kropki.Position]bool, len(blanks))
	for _, p := range blanks {
		blanked[p] = true
	}

	var sb strings.Builder
	for r := 0; r < board.Size; r++ {
		cells := make([]string, board.Size)
		for c := range cells {
			v := Solved[r][c]
			if blanked[kropki.Position{Row: r, Col: c}] {
				v = board.Empty
			}
			cells[c] = strconv.Itoa(v)
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteByte('\n')
	}
	for _, row := range HDots {
		writeDotRow(&sb, row[:])
	}
	for _, row := range VDots {
		writeDotRow(&sb, row[:])
	}
	return sb.String()
}

// JSON renders the puzzle as the JSON document the loader accepts.
func JSON(blanks ...kropki.Position) string {
	blanked := make(map[kropki.Position]bool, len(blanks))
	for _, p := range blanks {
		blanked[p] = true
	}

	doc := struct {
		Grid           [][]int `json:"grid"`
		HorizontalDots [][]int `json:"horizontalDots"`
		VerticalDots   [][]int `json:"verticalDots"`
	}{}
	for r := 0; r < board.Size; r++ {
		row := make([]int, board.Size)
		for c := range row {
			if !blanked[kropki.Position{Row: r, Col: c}] {
				row[c] = Solved[r][c]
			}
		}
		doc.Grid = append(doc.Grid, row)
	}
	for _, dots := range HDots {
		doc.HorizontalDots = append(doc.HorizontalDots, dotInts(dots[:]))
	}
	for _, dots := range VDots {
		doc.VerticalDots = append(doc.VerticalDots, dotInts(dots[:]))
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

func allPositions() []kropki.Position {
	all := make([]kropki.Position, 0, board.Size*board.Size)
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			all = append(all, kropki.Position{Row: r, Col: c})
		}
	}
	return all
}

func writeDotRow(sb *strings.Builder, dots []kropki.Dot) {
	cells := make([]string, len(dots))
	for i, d := range dots {
		cells[i] = strconv.Itoa(int(d))
	}
	sb.WriteString(strings.Join(cells, " "))
	sb.WriteByte('\n')
}

func dotInts(dots []kropki.Dot) []int {
	ints := make([]int, len(dots))
	for i, d := range dots {
		ints[i] = int(d)
	}
	return ints
}

func mustSet(err error) {
	if err != nil {
		panic(err)
	}
}
