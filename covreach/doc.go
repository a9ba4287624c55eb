// Package covreach implements the covering-reachability search (spec.md
// §4.5): a waiting container drives exploration of the zone graph, a
// node index recognizes previously-seen discrete states, and a cover
// relation prunes states subsumed by an already-stored one, keeping the
// explored state space finite even when the zone graph itself is
// infinite-state.
package covreach
