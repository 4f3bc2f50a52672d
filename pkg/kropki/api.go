package kropki

import (
	"fmt"
)

// Dot is the marker drawn between two orthogonally adjacent cells. Every
// adjacent pair carries exactly one of the three markers, and each marker
// is a rule the pair's values must satisfy.
type Dot uint8

const (
	// None marks a pair without a dot. The absence is itself a rule: the
	// two values must be neither consecutive nor in a double relation.
	None Dot = iota
	// White requires the two values to be consecutive.
	White
	// Black requires one value to be exactly double the other.
	Black
)

// DotFromInt converts the numeric puzzle encoding (0 none, 1 white,
// 2 black) into a Dot.
func DotFromInt(v int) (Dot, error) {
	if v < int(None) || v > int(Black) {
		return None, InvalidDotError{Value: v}
	}
	return Dot(v), nil
}

func (d Dot) String() string {
	switch d {
	case None:
		return "none"
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return fmt.Sprintf("dot(%d)", uint8(d))
	}
}

// Position addresses a cell by zero-based row and column.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// OutOfRangeError reports an access outside the fixed dimensions of the
// grid or one of its dot matrices.
type OutOfRangeError struct {
	What string
	At   string
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %s out of range", e.What, e.At)
}

// InvalidValueError reports a grid value outside 0 through 9.
type InvalidValueError struct {
	Value int
}

func (e InvalidValueError) Error() string {
	return fmt.Sprintf("invalid cell value %d: want 0 through 9", e.Value)
}

// InvalidDotError reports a dot outside its three-element domain.
type InvalidDotError struct {
	Value int
}

func (e InvalidDotError) Error() string {
	return fmt.Sprintf("invalid dot value %d: want 0 (none), 1 (white) or 2 (black)", e.Value)
}
