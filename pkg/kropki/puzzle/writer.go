package puzzle

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/puzzle-framework/kropki/pkg/kropki/board"
)

// IncompleteSolutionError reports an attempt to serialize a board that
// still has empty cells.
type IncompleteSolutionError struct {
	Missing int
}

func (e IncompleteSolutionError) Error() string {
	return fmt.Sprintf("board is not solved: %d empty cells remain", e.Missing)
}

// Format renders a solved board as nine space separated rows without a
// trailing newline. Dots travel with the puzzle, not the solution, so
// only the grid is emitted.
func Format(b *board.Board) (string, error) {
	if b == nil {
		return "", fmt.Errorf("no board to format")
	}
	if empty := b.EmptyPositions(); len(empty) > 0 {
		return "", IncompleteSolutionError{Missing: len(empty)}
	}

	grid := b.Grid()
	rows := make([]string, board.Size)
	cells := make([]string, board.Size)
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			cells[c] = strconv.Itoa(grid[r][c])
		}
		rows[r] = strings.Join(cells, " ")
	}
	return strings.Join(rows, "\n"), nil
}

// Write serializes a solved board to path in the Format layout.
func Write(path string, b *board.Board) error {
	text, err := Format(b)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("error writing solution file (%s): %w", path, err)
	}
	return nil
}

// ParseGrid reads a serialized solution: nine rows of nine digits, 1
// through 9, blank lines skipped.
func ParseGrid(r io.Reader) ([board.Size][board.Size]int, error) {
	var grid [board.Size][board.Size]int

	lines, err := readLines(r)
	if err != nil {
		return grid, err
	}
	if len(lines) != board.Size {
		return grid, MalformedPuzzleError{
			Reason: fmt.Sprintf("want %d solution rows, got %d", board.Size, len(lines)),
		}
	}
	for i, ln := range lines {
		values, err := parseRow(ln, board.Size, 1, board.Size)
		if err != nil {
			return grid, err
		}
		for c, v := range values {
			grid[i][c] = v
		}
	}
	return grid, nil
}

// LoadGrid reads a solution file in the Format layout.
func LoadGrid(path string) ([board.Size][board.Size]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return [board.Size][board.Size]int{}, fmt.Errorf("error opening solution file (%s): %w", path, err)
	}
	defer f.Close()
	return ParseGrid(f)
}
