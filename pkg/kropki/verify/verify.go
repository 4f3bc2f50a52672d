// Package verify re-validates finished solutions independently of the
// search engine, for end to end regression checks.
package verify

import (
	"fmt"
	"strings"

	"github.com/puzzle-framework/kropki/pkg/kropki"
	"github.com/puzzle-framework/kropki/pkg/kropki/board"
	"github.com/puzzle-framework/kropki/pkg/kropki/rules"
)

// Violation is one broken rule found in a solution.
type Violation interface {
	String() string
}

var _ Violation = UnitViolation{}
var _ Violation = DotViolation{}

// UnitViolation reports a row, column or block that is not a
// permutation of 1 through 9.
type UnitViolation struct {
	Unit  string
	Index int
}

func (v UnitViolation) String() string {
	return fmt.Sprintf("%s %d is not a permutation of 1 through 9", v.Unit, v.Index)
}

// DotViolation reports a pair of values breaking the dot on their pair.
type DotViolation struct {
	Dot    kropki.Dot
	A, B   kropki.Position
	ValueA int
	ValueB int
}

func (v DotViolation) String() string {
	switch v.Dot {
	case kropki.White:
		return fmt.Sprintf("white dot between %s and %s wants consecutive values, got %d and %d", v.A, v.B, v.ValueA, v.ValueB)
	case kropki.Black:
		return fmt.Sprintf("black dot between %s and %s wants a double relation, got %d and %d", v.A, v.B, v.ValueA, v.ValueB)
	default:
		return fmt.Sprintf("undotted pair %s and %s may be neither consecutive nor doubled, got %d and %d", v.A, v.B, v.ValueA, v.ValueB)
	}
}

// Violations is every broken rule found in one verification pass. It
// implements error; an empty slice means the solution verifies.
type Violations []Violation

func (v Violations) Error() string {
	const msg = "solution not valid"
	if len(v) == 0 {
		return msg
	}
	s := make([]string, len(v))
	for i, violation := range v {
		s[i] = violation.String()
	}
	return fmt.Sprintf("%s:\n%s", msg, strings.Join(s, "\n"))
}

// Grid checks a finished grid against the Sudoku units and against the
// puzzle's dot matrices, under the same pair semantics the engine
// searches with. The returned error reports broken board contracts
// only; rule breaches come back as Violations.
func Grid(puzzle *board.Board, grid [board.Size][board.Size]int) (Violations, error) {
	if puzzle == nil {
		return nil, fmt.Errorf("no puzzle to verify against")
	}

	var violations Violations

	for i := 0; i < board.Size; i++ {
		var row, col, blk [board.Size]int
		baseRow := (i / board.BlockSize) * board.BlockSize
		baseCol := (i % board.BlockSize) * board.BlockSize
		for j := 0; j < board.Size; j++ {
			row[j] = grid[i][j]
			col[j] = grid[j][i]
			blk[j] = grid[baseRow+j/board.BlockSize][baseCol+j%board.BlockSize]
		}
		if !permutation(row) {
			violations = append(violations, UnitViolation{Unit: "row", Index: i})
		}
		if !permutation(col) {
			violations = append(violations, UnitViolation{Unit: "column", Index: i})
		}
		if !permutation(blk) {
			violations = append(violations, UnitViolation{Unit: "block", Index: i})
		}
	}

	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size-1; c++ {
			dot, err := puzzle.HorizontalDot(r, c)
			if err != nil {
				return nil, err
			}
			if !rules.PairAllowed(dot, grid[r][c], grid[r][c+1]) {
				violations = append(violations, DotViolation{
					Dot:    dot,
					A:      kropki.Position{Row: r, Col: c},
					B:      kropki.Position{Row: r, Col: c + 1},
					ValueA: grid[r][c],
					ValueB: grid[r][c+1],
				})
			}
		}
	}
	for r := 0; r < board.Size-1; r++ {
		for c := 0; c < board.Size; c++ {
			dot, err := puzzle.VerticalDot(r, c)
			if err != nil {
				return nil, err
			}
			if !rules.PairAllowed(dot, grid[r][c], grid[r+1][c]) {
				violations = append(violations, DotViolation{
					Dot:    dot,
					A:      kropki.Position{Row: r, Col: c},
					B:      kropki.Position{Row: r + 1, Col: c},
					ValueA: grid[r][c],
					ValueB: grid[r+1][c],
				})
			}
		}
	}

	return violations, nil
}

func permutation(unit [board.Size]int) bool {
	var seen rules.ValueSet
	for _, v := range unit {
		if v < 1 || v > board.Size || seen.Has(v) {
			return false
		}
		seen = seen.With(v)
	}
	return true
}
