package interp

import (
	"fmt"

	"github.com/kolkov/rawk/internal/token"
	"github.com/kolkov/rawk/internal/types"
)

// Control-flow inside a tree-walking interpreter has no jump targets to
// compile to, so next/nextfile/break/continue/return/exit are modeled as
// sentinel errors that unwind through ordinary Go error returns until the
// enclosing construct (loop, function call, record loop, or Run itself)
// catches its own kind and stops propagating it.

type nextSignal struct{}

func (nextSignal) Error() string { return "next" }

type nextFileSignal struct{}

func (nextFileSignal) Error() string { return "nextfile" }

type breakSignal struct{}

func (breakSignal) Error() string { return "break" }

type continueSignal struct{}

func (continueSignal) Error() string { return "continue" }

// returnSignal carries a function's return value up to the call site.
type returnSignal struct {
	Value types.Value
}

func (returnSignal) Error() string { return "return" }

// ExitSignal carries the exit() status code up to Run.
type ExitSignal struct {
	Code int
}

func (e *ExitSignal) Error() string { return "exit" }

var (
	errNext     error = nextSignal{}
	errNextFile error = nextFileSignal{}
	errBreak    error = breakSignal{}
	errContinue error = continueSignal{}
)

// FatalError represents an unrecoverable runtime error: division by zero,
// a scalar/array type clash, a malformed dynamic regex, calling an
// undefined function, and similar. Unlike next/break/return, a FatalError
// unwinds all the way out of Run without running END blocks.
type FatalError struct {
	Pos     token.Position
	Message string
}

func (e *FatalError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

func (ip *Interp) fatalf(pos token.Position, format string, args ...interface{}) error {
	return &FatalError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
