package absint

import (
	"errors"
	"fmt"
)

// Faults raised by the engine. They indicate programming errors in a domain
// or in an equation-system translator and are raised with panic. Use
// errors.Is on the recovered value to tell them apart.
var (
	ErrRedefinition         = errors.New("variable redefinition")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrArity                = errors.New("arity mismatch")
	ErrNilResult            = errors.New("operation returned nil")
	ErrUninitialized        = errors.New("uninitialized variable")
)

// Fault wraps sentinel with a formatted description of the offending value.
func Fault(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
