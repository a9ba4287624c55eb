package zg

import (
	"fmt"

	"github.com/ticktac-project/tchecker/expr"
)

func errUnknownVar(name string) error {
	return fmt.Errorf("zg: %s: %w", name, expr.ErrUnknownVariable)
}

func errOutOfRange(name string, value int64) error {
	return fmt.Errorf("zg: %s = %d: %w", name, value, expr.ErrOutOfRange)
}
