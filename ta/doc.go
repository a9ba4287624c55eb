// Package ta implements the semantics shared by every zone-graph
// instantiation of a network of timed automata: the vector-location type,
// the delay-allowed predicate (spec.md §4.2 "committed/urgent"), and
// label-set computation. Package zg builds on these to define the actual
// symbolic transition system.
package ta
