// Package dbm implements the difference-bound-matrix algebra used to
// represent clock zones: the convex polyhedra of clock valuations explored
// by the zone graph.
//
// A Zone is a dim×dim matrix of Bound values where row/column 0 is the
// synthetic "zero clock". Entry (i,j) bounds x_i - x_j. All exported
// operations assume their receiver is already tight and consistent (see
// Tighten) and leave it tight or flagged empty on return; this mirrors the
// contract of the original tchecker dbm module (see db_safe.hh /
// db_unsafe.hh in the retained original sources).
//
// Storage is a flat row-major []Bound slice, the same layout
// katalvlaran/lvlath's matrix.Dense uses for its float64 backing store;
// FloydWarshall-style tightening reuses that k→i→j loop order for
// deterministic results.
package dbm
