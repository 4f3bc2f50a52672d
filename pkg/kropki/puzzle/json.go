package puzzle

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/puzzle-framework/kropki/pkg/kropki"
	"github.com/puzzle-framework/kropki/pkg/kropki/board"
)

// ParseJSON reads the JSON puzzle document layout: an object holding a
// 9x9 "grid" matrix plus 9x8 "horizontalDots" and 8x9 "verticalDots"
// matrices. Validation and the clue consistency pass are shared with
// the plain text loader.
func ParseJSON(doc string) (*board.Board, error) {
	if !gjson.Valid(doc) {
		return nil, MalformedPuzzleError{Reason: "not valid JSON"}
	}
	root := gjson.Parse(doc)

	b := board.New()
	if err := readMatrix(root, "grid", board.Size, board.Size, board.Empty, board.Size, func(r, c, v int) error {
		return b.SetValue(r, c, v)
	}); err != nil {
		return nil, err
	}
	if err := readMatrix(root, "horizontalDots", board.Size, board.Size-1, int(kropki.None), int(kropki.Black), func(r, c, v int) error {
		dot, err := kropki.DotFromInt(v)
		if err != nil {
			return err
		}
		return b.SetHorizontalDot(r, c, dot)
	}); err != nil {
		return nil, err
	}
	if err := readMatrix(root, "verticalDots", board.Size-1, board.Size, int(kropki.None), int(kropki.Black), func(r, c, v int) error {
		dot, err := kropki.DotFromInt(v)
		if err != nil {
			return err
		}
		return b.SetVerticalDot(r, c, dot)
	}); err != nil {
		return nil, err
	}

	if err := checkClues(b, nil); err != nil {
		return nil, err
	}
	return b, nil
}

func readMatrix(root gjson.Result, key string, rows, cols, min, max int, set func(r, c, v int) error) error {
	matrix := root.Get(key)
	if !matrix.Exists() {
		return MalformedPuzzleError{Reason: fmt.Sprintf("missing %q", key)}
	}
	if !matrix.IsArray() {
		return MalformedPuzzleError{Reason: fmt.Sprintf("%q is not an array", key)}
	}
	rowResults := matrix.Array()
	if len(rowResults) != rows {
		return MalformedPuzzleError{Reason: fmt.Sprintf("%q wants %d rows, got %d", key, rows, len(rowResults))}
	}
	for r, row := range rowResults {
		if !row.IsArray() {
			return MalformedPuzzleError{Reason: fmt.Sprintf("%q row %d is not an array", key, r)}
		}
		cells := row.Array()
		if len(cells) != cols {
			return MalformedPuzzleError{Reason: fmt.Sprintf("%q row %d wants %d values, got %d", key, r, cols, len(cells))}
		}
		for c, cell := range cells {
			if cell.Type != gjson.Number || cell.Num != float64(int64(cell.Num)) {
				return MalformedPuzzleError{Reason: fmt.Sprintf("%q row %d: %s is not an integer", key, r, cell.Raw)}
			}
			v := int(cell.Int())
			if v < min || v > max {
				return MalformedPuzzleError{Reason: fmt.Sprintf("%q row %d: value %d outside %d through %d", key, r, v, min, max)}
			}
			if err := set(r, c, v); err != nil {
				return err
			}
		}
	}
	return nil
}
