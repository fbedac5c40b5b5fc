// perror.go provides the position-carrying error types reported by the
// parser and the lowering pass.
//
// The teacher's own util.perror listens for errors from parallel worker
// goroutines over a channel; this compiler never spawns workers (spec.md
// section 5 mandates single-threaded compilation), so these types are
// plain values instead.

package util

import "fmt"

// ParseError is a structured grammar failure: the production it occurred
// in, the source position, and a human-readable message.
type ParseError struct {
	Rule string
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: in %s: %s", e.Line, e.Col, e.Rule, e.Msg)
}

// LoweringError reports an internal invariant violation surfaced while
// translating the AST into IR: an undeclared identifier reaching codegen,
// a Void type in value position, a type mismatch the parser's callers
// should have rejected earlier. Lowering errors are bugs, not recoverable
// user errors, but are still returned rather than panicked so callers can
// report them uniformly alongside parse and link failures.
type LoweringError struct {
	Func string
	Msg  string
}

func (e *LoweringError) Error() string {
	return fmt.Sprintf("lowering %s: %s", e.Func, e.Msg)
}

// LinkError reports a non-zero exit from the linker collaborator.
type LinkError struct {
	Stderr string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link failed: %s", e.Stderr)
}
