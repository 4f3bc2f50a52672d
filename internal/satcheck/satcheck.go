// Package satcheck cross checks puzzles against a CNF encoding solved
// with gini. It shares no search code with the backtracking engine, so
// the two can vouch for each other.
package satcheck

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/puzzle-framework/kropki/pkg/kropki"
	"github.com/puzzle-framework/kropki/pkg/kropki/board"
	"github.com/puzzle-framework/kropki/pkg/kropki/rules"
)

// Report is the SAT view of a puzzle. Solution holds the first model
// found and is zero when the puzzle is not satisfiable. Unique means
// that model is the only one.
type Report struct {
	Satisfiable bool
	Unique      bool
	Solution    [board.Size][board.Size]int
}

// one variable for each triple (row, col, n) indicating whether the
// number n+1 appears at (row, col)
func lit(row, col, num int) z.Lit {
	return z.Var(num + col*board.Size + row*board.Size*board.Size + 1).Pos()
}

// Check encodes the puzzle, solves it and probes for a second model by
// blocking the first.
func Check(b *board.Board) (Report, error) {
	if b == nil {
		return Report{}, fmt.Errorf("no board to check")
	}
	g, err := encode(b)
	if err != nil {
		return Report{}, err
	}
	if g.Solve() != 1 {
		return Report{}, nil
	}

	report := Report{Satisfiable: true, Unique: true, Solution: model(g)}
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			g.Add(lit(row, col, report.Solution[row][col]-1).Not())
		}
	}
	g.Add(0)
	if g.Solve() == 1 {
		report.Unique = false
	}
	return report, nil
}

// Satisfiable reports whether the puzzle has at least one completion.
func Satisfiable(b *board.Board) (bool, error) {
	report, err := Check(b)
	return report.Satisfiable, err
}

// Unique reports whether the puzzle has exactly one completion.
func Unique(b *board.Board) (bool, error) {
	report, err := Check(b)
	return report.Unique, err
}

func encode(b *board.Board) (*gini.Gini, error) {
	g := gini.New()

	// every position on the board has a number
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			for n := 0; n < board.Size; n++ {
				g.Add(lit(row, col, n))
			}
			g.Add(0)
		}
	}

	// every row has unique numbers
	for n := 0; n < board.Size; n++ {
		for row := 0; row < board.Size; row++ {
			for colA := 0; colA < board.Size; colA++ {
				for colB := colA + 1; colB < board.Size; colB++ {
					g.Add(lit(row, colA, n).Not())
					g.Add(lit(row, colB, n).Not())
					g.Add(0)
				}
			}
		}
	}

	// every column has unique numbers
	for n := 0; n < board.Size; n++ {
		for col := 0; col < board.Size; col++ {
			for rowA := 0; rowA < board.Size; rowA++ {
				for rowB := rowA + 1; rowB < board.Size; rowB++ {
					g.Add(lit(rowA, col, n).Not())
					g.Add(lit(rowB, col, n).Not())
					g.Add(0)
				}
			}
		}
	}

	// every block has unique numbers
	for blockRow := 0; blockRow < board.Size; blockRow += board.BlockSize {
		for blockCol := 0; blockCol < board.Size; blockCol += board.BlockSize {
			block(g, blockRow, blockCol)
		}
	}

	// clues become unit clauses
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			v, err := b.Value(row, col)
			if err != nil {
				return nil, err
			}
			if v == board.Empty {
				continue
			}
			g.Add(lit(row, col, v-1))
			g.Add(0)
		}
	}

	// every adjacent pair obeys its dot, the undotted ones included
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size-1; col++ {
			dot, err := b.HorizontalDot(row, col)
			if err != nil {
				return nil, err
			}
			forbidPairs(g, dot, row, col, row, col+1)
		}
	}
	for row := 0; row < board.Size-1; row++ {
		for col := 0; col < board.Size; col++ {
			dot, err := b.VerticalDot(row, col)
			if err != nil {
				return nil, err
			}
			forbidPairs(g, dot, row, col, row+1, col)
		}
	}

	return g, nil
}

func block(g *gini.Gini, row, col int) {
	offs := make([]kropki.Position, 0, board.Size)
	for r := 0; r < board.BlockSize; r++ {
		for c := 0; c < board.BlockSize; c++ {
			offs = append(offs, kropki.Position{Row: row + r, Col: col + c})
		}
	}
	for n := 0; n < board.Size; n++ {
		for i, offA := range offs {
			for _, offB := range offs[i+1:] {
				g.Add(lit(offA.Row, offA.Col, n).Not())
				g.Add(lit(offB.Row, offB.Col, n).Not())
				g.Add(0)
			}
		}
	}
}

func forbidPairs(g *gini.Gini, dot kropki.Dot, rowA, colA, rowB, colB int) {
	for a := 1; a <= board.Size; a++ {
		for b := 1; b <= board.Size; b++ {
			if rules.PairAllowed(dot, a, b) {
				continue
			}
			g.Add(lit(rowA, colA, a-1).Not())
			g.Add(lit(rowB, colB, b-1).Not())
			g.Add(0)
		}
	}
}

func model(g *gini.Gini) [board.Size][board.Size]int {
	var grid [board.Size][board.Size]int
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			for n := 0; n < board.Size; n++ {
				if g.Value(lit(row, col, n)) {
					grid[row][col] = n + 1
					break
				}
			}
		}
	}
	return grid
}
