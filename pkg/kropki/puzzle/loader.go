// Package puzzle loads and serializes Kropki Sudoku boards. The plain
// text layout is nine grid rows, nine horizontal dot rows of eight
// values and eight vertical dot rows of nine values, tokens separated
// by whitespace, blank lines skipped. Dots are encoded 0 none, 1 white,
// 2 black.
package puzzle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/puzzle-framework/kropki/pkg/kropki"
	"github.com/puzzle-framework/kropki/pkg/kropki/board"
	"github.com/puzzle-framework/kropki/pkg/kropki/rules"
)

const (
	gridLines  = board.Size
	hdotLines  = board.Size
	vdotLines  = board.Size - 1
	totalLines = gridLines + hdotLines + vdotLines
)

// MalformedPuzzleError reports a puzzle document the loader refused.
// Line is the 1-based input line at fault, or 0 when the document as a
// whole is.
type MalformedPuzzleError struct {
	Line   int
	Reason string
}

func (e MalformedPuzzleError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed puzzle at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed puzzle: %s", e.Reason)
}

// Load reads a puzzle file, dispatching on the extension: .json files
// take the JSON document layout, everything else the plain text one.
func Load(path string) (*board.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening puzzle file (%s): %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		raw, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("error reading puzzle file (%s): %w", path, err)
		}
		return ParseJSON(string(raw))
	}
	return Parse(f)
}

// Parse reads the plain text puzzle layout into a board, validating
// shape, token domains and clue consistency before handing it over.
func Parse(r io.Reader) (*board.Board, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) != totalLines {
		return nil, MalformedPuzzleError{
			Reason: fmt.Sprintf("want %d lines (%d grid, %d horizontal dot, %d vertical dot), got %d",
				totalLines, gridLines, hdotLines, vdotLines, len(lines)),
		}
	}

	b := board.New()
	rowLine := make([]int, gridLines)
	for r := 0; r < gridLines; r++ {
		ln := lines[r]
		rowLine[r] = ln.num
		values, err := parseRow(ln, board.Size, board.Empty, board.Size)
		if err != nil {
			return nil, err
		}
		for c, v := range values {
			if err := b.SetValue(r, c, v); err != nil {
				return nil, err
			}
		}
	}
	for r := 0; r < hdotLines; r++ {
		ln := lines[gridLines+r]
		values, err := parseRow(ln, board.Size-1, int(kropki.None), int(kropki.Black))
		if err != nil {
			return nil, err
		}
		for c, v := range values {
			dot, err := kropki.DotFromInt(v)
			if err != nil {
				return nil, err
			}
			if err := b.SetHorizontalDot(r, c, dot); err != nil {
				return nil, err
			}
		}
	}
	for r := 0; r < vdotLines; r++ {
		ln := lines[gridLines+hdotLines+r]
		values, err := parseRow(ln, board.Size, int(kropki.None), int(kropki.Black))
		if err != nil {
			return nil, err
		}
		for c, v := range values {
			dot, err := kropki.DotFromInt(v)
			if err != nil {
				return nil, err
			}
			if err := b.SetVerticalDot(r, c, dot); err != nil {
				return nil, err
			}
		}
	}

	if err := checkClues(b, rowLine); err != nil {
		return nil, err
	}
	return b, nil
}

type numberedLine struct {
	num  int
	text string
}

func readLines(r io.Reader) ([]numberedLine, error) {
	scanner := bufio.NewScanner(r)
	var lines []numberedLine
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		lines = append(lines, numberedLine{num: n, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading puzzle data: %w", err)
	}
	return lines, nil
}

func parseRow(ln numberedLine, count, min, max int) ([]int, error) {
	fields := strings.Fields(ln.text)
	if len(fields) != count {
		return nil, MalformedPuzzleError{
			Line:   ln.num,
			Reason: fmt.Sprintf("want %d values, got %d", count, len(fields)),
		}
	}
	values := make([]int, count)
	for i, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, MalformedPuzzleError{
				Line:   ln.num,
				Reason: fmt.Sprintf("%q is not a number", field),
			}
		}
		if v < min || v > max {
			return nil, MalformedPuzzleError{
				Line:   ln.num,
				Reason: fmt.Sprintf("value %d outside %d through %d", v, min, max),
			}
		}
		values[i] = v
	}
	return values, nil
}

// checkClues retests every clue with its cell cleared. A clue set that
// already breaks the rules must never reach the engine. rowLine maps a
// grid row to its input line for reporting and may be nil.
func checkClues(b *board.Board, rowLine []int) error {
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			v, err := b.Value(r, c)
			if err != nil {
				return err
			}
			if v == board.Empty {
				continue
			}

			if err := b.SetValue(r, c, board.Empty); err != nil {
				return err
			}
			ok, err := rules.SatisfiesSudoku(b, r, c, v)
			if err != nil {
				return err
			}
			if ok {
				ok, err = rules.SatisfiesDots(b, r, c, v)
				if err != nil {
					return err
				}
			}
			if err := b.SetValue(r, c, v); err != nil {
				return err
			}

			if !ok {
				line := 0
				if rowLine != nil {
					line = rowLine[r]
				}
				return MalformedPuzzleError{
					Line:   line,
					Reason: fmt.Sprintf("clue %d at %s is inconsistent with the other clues", v, kropki.Position{Row: r, Col: c}),
				}
			}
		}
	}
	return nil
}
