// Package expr defines the abstract syntax trees for guard/invariant
// expressions and update statements (spec.md §3 "Expressions and
// statements"), plus a small tree-walking interpreter used by package zg
// to evaluate them against an integer-variable environment.
//
// Following the "Expression visitor pattern" redesign note in spec.md §9,
// both trees are closed tagged-variant sets (sealed via an unexported
// marker method) visited with a single type switch per analysis, rather
// than the double-dispatch visitor hierarchy the original C++ sources
// use. Each analysis (evaluation, clock-read/write extraction, clock-bound
// derivation) is a plain function over the variant, not a method set.
package expr
