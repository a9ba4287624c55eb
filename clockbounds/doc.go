// Package clockbounds computes, for every process location, the maximal
// lower (L) and upper (U) constants each clock is compared against
// anywhere reachable through that location (spec.md §4.6). The resulting
// per-location dbm.ClockBounds tables feed package zg's extrapolation
// step; a system-wide table (the max over all locations) gives the
// "global" variant of the same extrapolation and cover functions.
package clockbounds
