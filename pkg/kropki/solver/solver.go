// Package solver implements the backtracking search engine. The engine
// assigns digits to one board in place, undoing on dead ends; it never
// copies the board to branch.
package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/puzzle-framework/kropki/pkg/kropki"
	"github.com/puzzle-framework/kropki/pkg/kropki/board"
	"github.com/puzzle-framework/kropki/pkg/kropki/rules"
)

// ErrNoBoard reports a Solve call without a board.
var ErrNoBoard = errors.New("no board to solve")

// Selection names a variable ordering strategy.
type Selection uint8

const (
	// ScanOrder picks the first empty cell in row-major order.
	ScanOrder Selection = iota
	// MinRemaining picks the empty cell with the fewest candidates
	// left, breaking ties by the number of empty cells it constrains
	// and further ties by scan order.
	MinRemaining
)

func (s Selection) String() string {
	switch s {
	case ScanOrder:
		return "scan"
	case MinRemaining:
		return "mrv"
	default:
		return fmt.Sprintf("selection(%d)", uint8(s))
	}
}

// SelectionFromString parses the command line spelling of a Selection.
func SelectionFromString(s string) (Selection, error) {
	switch s {
	case "scan":
		return ScanOrder, nil
	case "mrv":
		return MinRemaining, nil
	default:
		return ScanOrder, fmt.Errorf("unknown selection strategy %q: want scan or mrv", s)
	}
}

// Stats counts the work done by an engine. Both counters rise
// monotonically across the engine's Solve calls and reset only at
// construction.
type Stats struct {
	Assignments int
	Backtracks  int
}

// Engine is a single-threaded backtracking solver over one board at a
// time. Engines are not safe for concurrent use.
type Engine struct {
	selection       Selection
	forwardChecking bool
	tracer          Tracer
	stats           Stats
}

// New constructs an Engine from the given options.
func New(options ...Option) (*Engine, error) {
	e := &Engine{}
	for _, option := range append(options, defaults...) {
		if err := option(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

type Option func(e *Engine) error

// WithSelection picks the variable ordering strategy.
func WithSelection(s Selection) Option {
	return func(e *Engine) error {
		if s != ScanOrder && s != MinRemaining {
			return fmt.Errorf("unknown selection strategy %d", s)
		}
		e.selection = s
		return nil
	}
}

// WithForwardChecking turns the one-hop look-ahead on or off. The
// look-ahead prunes branches earlier but never changes the outcome,
// only the counters and the runtime.
func WithForwardChecking(enabled bool) Option {
	return func(e *Engine) error {
		e.forwardChecking = enabled
		return nil
	}
}

// WithTracer routes search events to t.
func WithTracer(t Tracer) Option {
	return func(e *Engine) error {
		e.tracer = t
		return nil
	}
}

var defaults = []Option{
	func(e *Engine) error {
		if e.tracer == nil {
			e.tracer = DefaultTracer{}
		}
		return nil
	},
}

// Stats returns the counters accumulated so far.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Solve searches depth first for a completion of b. On success it
// returns true with the solution left on the board; on an exhausted
// search it returns false with every assignment undone. An error
// reports a broken board contract or a cancelled context, never an
// unsolvable puzzle; the board is likewise restored before an error
// returns.
func (e *Engine) Solve(ctx context.Context, b *board.Board) (bool, error) {
	if b == nil {
		return false, ErrNoBoard
	}
	return e.search(ctx, b, 0)
}

func (e *Engine) search(ctx context.Context, b *board.Board, depth int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("search interrupted: %w", err)
	}

	pos, found, err := e.selectCell(b)
	if err != nil {
		return false, err
	}
	if !found {
		// no empty cell left, the board is a solution
		return true, nil
	}

	domain, err := rules.Domain(b, pos.Row, pos.Col)
	if err != nil {
		return false, err
	}

	for _, value := range domain.Values() {
		ok, err := consistent(b, pos, value)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}

		if err := b.SetValue(pos.Row, pos.Col, value); err != nil {
			return false, err
		}
		e.stats.Assignments++
		e.tracer.Assign(pos, value, depth)

		viable := true
		if e.forwardChecking {
			viable, err = lookAhead(b, pos)
			if err != nil {
				return false, unwind(b, pos, err)
			}
		}
		if viable {
			solved, err := e.search(ctx, b, depth+1)
			if err != nil {
				return false, unwind(b, pos, err)
			}
			if solved {
				return true, nil
			}
		}

		e.stats.Backtracks++
		e.tracer.Backtrack(pos, value, depth)
		if err := b.SetValue(pos.Row, pos.Col, board.Empty); err != nil {
			return false, err
		}
	}

	return false, nil
}

// unwind clears the cell assigned at this node so errors hand the board
// back untouched. The counters stay as they were: an interrupted search
// is not a backtrack.
func unwind(b *board.Board, pos kropki.Position, err error) error {
	if cerr := b.SetValue(pos.Row, pos.Col, board.Empty); cerr != nil {
		return cerr
	}
	return err
}

func (e *Engine) selectCell(b *board.Board) (kropki.Position, bool, error) {
	empty := b.EmptyPositions()
	if len(empty) == 0 {
		return kropki.Position{}, false, nil
	}
	if e.selection == MinRemaining {
		pos, err := mostConstrained(b, empty)
		return pos, true, err
	}
	return empty[0], true, nil
}

// mostConstrained recomputes domain sizes and degrees from scratch on
// every call; nothing is maintained incrementally between nodes.
func mostConstrained(b *board.Board, empty []kropki.Position) (kropki.Position, error) {
	var (
		best       kropki.Position
		bestSize   = board.Size + 1
		bestDegree = -1
	)
	for _, pos := range empty {
		domain, err := rules.Domain(b, pos.Row, pos.Col)
		if err != nil {
			return kropki.Position{}, err
		}
		size := domain.Len()
		if size > bestSize {
			continue
		}
		deg, err := degree(b, pos)
		if err != nil {
			return kropki.Position{}, err
		}
		if size < bestSize || deg > bestDegree {
			best, bestSize, bestDegree = pos, size, deg
		}
	}
	return best, nil
}

// degree counts the empty cells constrained by pos: the other empty
// cells of its row, of its column and of its block, plus every dot
// linked empty orthogonal neighbor. A neighbor can count more than
// once, matching the literal sum the tie break is defined over.
func degree(b *board.Board, pos kropki.Position) (int, error) {
	row, err := b.Row(pos.Row)
	if err != nil {
		return 0, err
	}
	col, err := b.Column(pos.Col)
	if err != nil {
		return 0, err
	}
	blk, err := b.Block(board.BlockIndex(pos.Row, pos.Col))
	if err != nil {
		return 0, err
	}

	n := 0
	for c, v := range row {
		if c != pos.Col && v == board.Empty {
			n++
		}
	}
	for r, v := range col {
		if r != pos.Row && v == board.Empty {
			n++
		}
	}
	self := (pos.Row%board.BlockSize)*board.BlockSize + pos.Col%board.BlockSize
	for i, v := range blk {
		if i != self && v == board.Empty {
			n++
		}
	}

	neighbors, err := rules.Neighbors(b, pos.Row, pos.Col)
	if err != nil {
		return 0, err
	}
	for _, nb := range neighbors {
		if nb.Dot == kropki.None {
			continue
		}
		empty, err := b.IsEmpty(nb.Pos.Row, nb.Pos.Col)
		if err != nil {
			return 0, err
		}
		if empty {
			n++
		}
	}
	return n, nil
}

// consistent re-verifies both rule families for a candidate picked from
// a freshly computed domain. The domain computation and this check stay
// separate calls so either can be swapped without breaking the other.
func consistent(b *board.Board, pos kropki.Position, value int) (bool, error) {
	ok, err := rules.SatisfiesSudoku(b, pos.Row, pos.Col, value)
	if err != nil || !ok {
		return false, err
	}
	return rules.SatisfiesDots(b, pos.Row, pos.Col, value)
}

// lookAhead reports whether every empty cell constrained by the cell
// just assigned at pos still has a candidate left. One hop only:
// domains are recomputed fresh and never pruned persistently.
// Orthogonal dot linked neighbors always share the cell's row or
// column, so the unit scans already cover them.
func lookAhead(b *board.Board, pos kropki.Position) (bool, error) {
	for c := 0; c < board.Size; c++ {
		if c == pos.Col {
			continue
		}
		ok, err := hasCandidates(b, pos.Row, c)
		if err != nil || !ok {
			return false, err
		}
	}
	for r := 0; r < board.Size; r++ {
		if r == pos.Row {
			continue
		}
		ok, err := hasCandidates(b, r, pos.Col)
		if err != nil || !ok {
			return false, err
		}
	}
	baseRow := (pos.Row / board.BlockSize) * board.BlockSize
	baseCol := (pos.Col / board.BlockSize) * board.BlockSize
	for r := baseRow; r < baseRow+board.BlockSize; r++ {
		for c := baseCol; c < baseCol+board.BlockSize; c++ {
			if r == pos.Row || c == pos.Col {
				continue
			}
			ok, err := hasCandidates(b, r, c)
			if err != nil || !ok {
				return false, err
			}
		}
	}
	return true, nil
}

func hasCandidates(b *board.Board, row, col int) (bool, error) {
	empty, err := b.IsEmpty(row, col)
	if err != nil {
		return false, err
	}
	if !empty {
		return true, nil
	}
	domain, err := rules.Domain(b, row, col)
	if err != nil {
		return false, err
	}
	return !domain.Empty(), nil
}
