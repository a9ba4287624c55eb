// Package zg builds the zone-graph symbolic transition system over a
// system.System (spec.md §4.2): it wires together the integer-variable
// interpreter (expr), the difference-bound matrix algebra (dbm) and the
// clock-bounds tables (clockbounds) into a single successor-computation
// function, under either of two semantics (Standard or Elapsed) and an
// optional extrapolation/cover pair.
package zg
