package zg

import "github.com/ticktac-project/tchecker/expr"

// execResidual runs the non-clock part of an edge's update statement
// against env. Any failure (out-of-range assignment, division by zero,
// unknown variable) is reported uniformly as the edge's
// IntVarsOutOfRange status by the caller — spec.md §4.2 only names that
// one status for a failing update.
func execResidual(s expr.Stmt, env *intEnv) error {
	if s == nil {
		return nil
	}
	return expr.Exec(s, env)
}
