package verify_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puzzle-framework/kropki/internal/testgrid"
	"github.com/puzzle-framework/kropki/pkg/kropki"
	"github.com/puzzle-framework/kropki/pkg/kropki/board"
	"github.com/puzzle-framework/kropki/pkg/kropki/verify"
)

func TestViolationsError(t *testing.T) {
	type tc struct {
		Name       string
		Violations verify.Violations
		String     string
	}

	for _, tt := range []tc{
		{
			Name:   "nil",
			String: "solution not valid",
		},
		{
			Name:       "empty",
			Violations: verify.Violations{},
			String:     "solution not valid",
		},
		{
			Name: "single violation",
			Violations: verify.Violations{
				verify.UnitViolation{Unit: "row", Index: 0},
			},
			String: "solution not valid:\nrow 0 is not a permutation of 1 through 9",
		},
		{
			Name: "multiple violations",
			Violations: verify.Violations{
				verify.UnitViolation{Unit: "column", Index: 3},
				verify.DotViolation{
					Dot:    kropki.White,
					A:      kropki.Position{Row: 0, Col: 0},
					B:      kropki.Position{Row: 0, Col: 1},
					ValueA: 3,
					ValueB: 7,
				},
			},
			String: "solution not valid:\n" +
				"column 3 is not a permutation of 1 through 9\n" +
				"white dot between (0, 0) and (0, 1) wants consecutive values, got 3 and 7",
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.String, tt.Violations.Error())
		})
	}
}

func TestDotViolationStrings(t *testing.T) {
	black := verify.DotViolation{
		Dot:    kropki.Black,
		A:      kropki.Position{Row: 2, Col: 2},
		B:      kropki.Position{Row: 3, Col: 2},
		ValueA: 3,
		ValueB: 5,
	}
	assert.Equal(t, "black dot between (2, 2) and (3, 2) wants a double relation, got 3 and 5", black.String())

	none := verify.DotViolation{
		Dot:    kropki.None,
		A:      kropki.Position{Row: 1, Col: 4},
		B:      kropki.Position{Row: 1, Col: 5},
		ValueA: 4,
		ValueB: 5,
	}
	assert.Equal(t, "undotted pair (1, 4) and (1, 5) may be neither consecutive nor doubled, got 4 and 5", none.String())
}

func TestGridAcceptsTheKnownSolution(t *testing.T) {
	puzzle := testgrid.Board(testgrid.TransversalBlanks...)

	violations, err := verify.Grid(puzzle, testgrid.Solved)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestGridFlagsUnitAndDotBreaches(t *testing.T) {
	puzzle := testgrid.Board(testgrid.TransversalBlanks...)

	// a second 3 in row 0 also breaks column 0, block 0 and the white
	// dot below the cell
	grid := testgrid.Solved
	grid[0][0] = 3

	violations, err := verify.Grid(puzzle, grid)
	require.NoError(t, err)
	assert.Equal(t, verify.Violations{
		verify.UnitViolation{Unit: "row", Index: 0},
		verify.UnitViolation{Unit: "column", Index: 0},
		verify.UnitViolation{Unit: "block", Index: 0},
		verify.DotViolation{
			Dot:    kropki.White,
			A:      kropki.Position{Row: 0, Col: 0},
			B:      kropki.Position{Row: 1, Col: 0},
			ValueA: 3,
			ValueB: 6,
		},
	}, violations)
}

func TestGridFlagsEmptyCellsAsUnitBreaches(t *testing.T) {
	puzzle := testgrid.Board(testgrid.TransversalBlanks...)

	grid := testgrid.Solved
	grid[4][4] = board.Empty

	violations, err := verify.Grid(puzzle, grid)
	require.NoError(t, err)
	assert.Equal(t, verify.Violations{
		verify.UnitViolation{Unit: "row", Index: 4},
		verify.UnitViolation{Unit: "column", Index: 4},
		verify.UnitViolation{Unit: "block", Index: 4},
	}, violations)
}

func TestGridChecksDotsFromThePuzzle(t *testing.T) {
	// the solution satisfies its own dots; wiping a white dot off the
	// puzzle turns the consecutive pair underneath into a breach
	puzzle := testgrid.Board(testgrid.TransversalBlanks...)
	require.NoError(t, puzzle.SetHorizontalDot(0, 1, kropki.None))

	violations, err := verify.Grid(puzzle, testgrid.Solved)
	require.NoError(t, err)
	assert.Equal(t, verify.Violations{
		verify.DotViolation{
			Dot:    kropki.None,
			A:      kropki.Position{Row: 0, Col: 1},
			B:      kropki.Position{Row: 0, Col: 2},
			ValueA: 3,
			ValueB: 4,
		},
	}, violations)
}

func TestGridFlagsABlackDotBreach(t *testing.T) {
	// drawing a black dot over a pair that is neither consecutive nor
	// doubled breaks only that pair
	puzzle := testgrid.Board()
	require.NoError(t, puzzle.SetHorizontalDot(0, 0, kropki.Black))

	violations, err := verify.Grid(puzzle, testgrid.Solved)
	require.NoError(t, err)
	assert.Equal(t, verify.Violations{
		verify.DotViolation{
			Dot:    kropki.Black,
			A:      kropki.Position{Row: 0, Col: 0},
			B:      kropki.Position{Row: 0, Col: 1},
			ValueA: 5,
			ValueB: 3,
		},
	}, violations)
}

func TestGridRelabelingBreaksOnlyDots(t *testing.T) {
	// swapping every 1 and 9 keeps all units valid but upsets pairs
	// involving the swapped digits
	puzzle := testgrid.Board()
	grid := testgrid.Solved
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			switch grid[r][c] {
			case 1:
				grid[r][c] = 9
			case 9:
				grid[r][c] = 1
			}
		}
	}

	violations, err := verify.Grid(puzzle, grid)
	require.NoError(t, err)
	assert.NotEmpty(t, violations)
	for _, v := range violations {
		_, isDot := v.(verify.DotViolation)
		assert.True(t, isDot, fmt.Sprintf("unexpected violation %s", v))
	}
	assert.Contains(t, violations, verify.DotViolation{
		Dot:    kropki.White,
		A:      kropki.Position{Row: 1, Col: 2},
		B:      kropki.Position{Row: 1, Col: 3},
		ValueA: 2,
		ValueB: 9,
	})
}

func TestGridRequiresAPuzzle(t *testing.T) {
	_, err := verify.Grid(nil, testgrid.Solved)
	assert.Error(t, err)
}
