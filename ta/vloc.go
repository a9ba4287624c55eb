package ta

import (
	"sort"

	"github.com/ticktac-project/tchecker/system"
)

// VLoc is a vector location: the current location of each process, in the
// same order as system.System.Processes(). Two VLocs are equal iff every
// component location is identical (spec.md §3 "Symbolic state").
type VLoc []*system.Location

// Equal reports whether v and other hold the same locations, process by
// process.
func (v VLoc) Equal(other VLoc) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a shallow copy of v (the *system.Location pointers
// themselves are immutable and shared).
func (v VLoc) Clone() VLoc {
	out := make(VLoc, len(v))
	copy(out, v)
	return out
}

// InitialVLoc builds the initial vector location of s: process i's
// declared initial location, in s.Processes() order.
func InitialVLoc(s *system.System) (VLoc, bool) {
	procs := s.Processes()
	v := make(VLoc, len(procs))
	for i, p := range procs {
		loc, ok := s.InitialLocation(p)
		if !ok {
			return nil, false
		}
		v[i] = loc
	}
	return v, true
}

// Labels returns the union of every component location's Labels, as a
// sorted, de-duplicated slice (spec.md §4.2 "Labels(state) = union of
// location labels as bitset" — represented here as a sorted string set
// since the system's label universe is open-ended, not a fixed bitset
// width).
func Labels(v VLoc) []string {
	seen := map[string]bool{}
	var out []string
	for _, loc := range v {
		for _, l := range loc.Labels {
			if !seen[l] {
				seen[l] = true
				out = append(out, l)
			}
		}
	}
	sort.Strings(out)
	return out
}
