package expr

import "errors"

var (
	// ErrUnknownVariable is returned when Eval/Exec references a variable
	// absent from the Env.
	ErrUnknownVariable = errors.New("expr: unknown variable")

	// ErrIndexOutOfRange is returned when an ArrayIndex evaluates outside
	// the declared array bounds.
	ErrIndexOutOfRange = errors.New("expr: array index out of range")

	// ErrDivisionByZero is returned by "/" and "%" with a zero divisor.
	ErrDivisionByZero = errors.New("expr: division by zero")

	// ErrOutOfRange is returned when an Assign would place a value outside
	// the target variable's declared [min, max] range (spec.md §4.2
	// "INTVARS_OUT_OF_RANGE").
	ErrOutOfRange = errors.New("expr: assignment out of declared range")

	// ErrWhileIterationLimit is returned when a While loop exceeds
	// MaxWhileIterations, guarding the interpreter against non-terminating
	// update statements.
	ErrWhileIterationLimit = errors.New("expr: while loop exceeded iteration limit")

	// ErrUnsupportedGuardAtom is returned by SplitGuard when a clock
	// appears in a comparison shape it cannot turn into a single
	// difference-bound atom (spec.md's clock fragment is restricted to
	// x # k and x - y # k atoms; anything else is out of scope, matching
	// §1's "generic constraint solving" non-goal).
	ErrUnsupportedGuardAtom = errors.New("expr: unsupported clock guard atom")

	// ErrInvalidLvalue is returned when Assign's Target is not a Var or
	// ArrayIndex.
	ErrInvalidLvalue = errors.New("expr: invalid assignment target")
)
