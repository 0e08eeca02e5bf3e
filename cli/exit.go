package cli

import (
	"errors"
	"fmt"

	"github.com/petal-labs/petalcalc/expr"
)

// Exit codes
const (
	exitValidation     = 1
	exitDivisionByZero = 2
	exitFileNotFound   = 3
	exitInputParse     = 4
)

// ExitError is an error that carries a specific process exit code.
// Cobra's RunE returns this to signal the desired exit code to main.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitError creates a new ExitError with the given code and formatted message.
func exitError(code int, format string, args ...any) *ExitError {
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// evalExitError maps an evaluation failure to its exit code, keeping err in
// the chain so callers can still match expr sentinels.
func evalExitError(expression string, err error) error {
	code := exitValidation
	if errors.Is(err, expr.ErrDivisionByZero) {
		code = exitDivisionByZero
	}
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf("evaluating %q: %v", expression, err),
		Err:     err,
	}
}
