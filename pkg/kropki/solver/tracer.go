package solver

import (
	"fmt"
	"io"

	"github.com/puzzle-framework/kropki/pkg/kropki"
)

// Tracer follows the engine through the search tree.
type Tracer interface {
	Assign(pos kropki.Position, value, depth int)
	Backtrack(pos kropki.Position, value, depth int)
}

var _ Tracer = DefaultTracer{}
var _ Tracer = LoggingTracer{}

// DefaultTracer ignores every event.
type DefaultTracer struct{}

func (DefaultTracer) Assign(_ kropki.Position, _, _ int) {
}

func (DefaultTracer) Backtrack(_ kropki.Position, _, _ int) {
}

// LoggingTracer writes one line per search event to Writer.
type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Assign(pos kropki.Position, value, depth int) {
	fmt.Fprintf(t.Writer, "assign %s = %d depth=%d\n", pos, value, depth)
}

func (t LoggingTracer) Backtrack(pos kropki.Position, value, depth int) {
	fmt.Fprintf(t.Writer, "backtrack %s = %d depth=%d\n", pos, value, depth)
}
