// Package diag collects the non-fatal warnings spec.md §7 requires
// ("unused summation index", "excitation operator with an orbital of
// unexpected type", "sum directive referring to an operator absent from
// this term") and forwards them to the teacher's tracing idiom
// (github.com/npillmayer/schuko/tracing) so they are visible in verbose
// runs as well as collectible by callers.
package diag

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'quantwo.diag'.
func tracer() tracing.Trace {
	return tracing.Select("quantwo.diag")
}

// Diagnostic is one recorded warning.
type Diagnostic struct {
	Stage   string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s", d.Stage, d.Message)
}

// Sink accumulates diagnostics raised while running a pipeline stage. The
// zero value is ready to use.
type Sink struct {
	items []Diagnostic
}

// Warn records a warning for stage and forwards it to the tracer.
func (s *Sink) Warn(stage, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	s.items = append(s.items, Diagnostic{Stage: stage, Message: msg})
	tracer().Infof("warning[%s]: %s", stage, msg)
}

// All returns every diagnostic recorded so far, in order.
func (s *Sink) All() []Diagnostic {
	cp := make([]Diagnostic, len(s.items))
	copy(cp, s.items)
	return cp
}

// Len reports how many diagnostics have been recorded.
func (s *Sink) Len() int { return len(s.items) }
