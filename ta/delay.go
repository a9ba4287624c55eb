package ta

// DelayAllowed reports whether time may elapse in vector location v, and
// which process indices the next jump must fire from (spec.md §4.2/§5
// "committed/urgent"):
//
//   - if any component location is urgent or committed, delay is
//     inhibited; if the cause was one or more committed locations (no
//     urgent one present), every process the next jump moves must be
//     one of those committed processes — callers consult
//     MustFireFromProcess when enumerating outgoing edges;
//   - otherwise delay is allowed and mustFireFrom is nil (no restriction).
func DelayAllowed(v VLoc) (delay bool, mustFireFrom []int) {
	for _, loc := range v {
		if loc.Urgent {
			return false, nil
		}
	}
	var committed []int
	for i, loc := range v {
		if loc.Committed {
			committed = append(committed, i)
		}
	}
	if len(committed) > 0 {
		return false, committed
	}
	return true, nil
}

// MustFireFromProcess reports whether process index i is required to
// supply the firing edge, given the mustFireFrom set DelayAllowed
// returned (nil means every process is eligible).
func MustFireFromProcess(mustFireFrom []int, i int) bool {
	if mustFireFrom == nil {
		return true
	}
	for _, j := range mustFireFrom {
		if j == i {
			return true
		}
	}
	return false
}
