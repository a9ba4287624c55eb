package main

import (
	"fmt"
	"strings"

	"github.com/ticktac-project/tchecker/clockbounds"
	"github.com/ticktac-project/tchecker/dbm"
	"github.com/ticktac-project/tchecker/report"
	"github.com/ticktac-project/tchecker/system"
	"github.com/ticktac-project/tchecker/ta"
	"github.com/ticktac-project/tchecker/zg"
)

// parseModel decodes a -a MODEL flag, e.g. "zg:elapsed:extraLU+l" or
// "zg:standard:none", into a zg.Semantics plus a (dbm.ExtrapolationFunc,
// zg.BoundsFunc) pair. The extrapolation name's trailing "g"/"l"
// selects, respectively, the system-wide Global table or the
// clockbounds.Solve per-location Local table.
func parseModel(raw string, sys *system.System) (zg.Semantics, dbm.ExtrapolationFunc, zg.BoundsFunc, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 || parts[0] != "zg" {
		return 0, nil, nil, report.NewKindError(report.KindConfiguration,
			fmt.Errorf("-a: expected \"zg:<standard|elapsed>:<extrapolation>\", got %q", raw))
	}

	var sem zg.Semantics
	switch parts[1] {
	case "standard":
		sem = zg.Standard
	case "elapsed":
		sem = zg.Elapsed
	default:
		return 0, nil, nil, report.NewKindError(report.KindConfiguration,
			fmt.Errorf("-a: unknown semantics %q (want standard|elapsed)", parts[1]))
	}

	fn, bounds, err := parseExtrapolation(parts[2], sys)
	if err != nil {
		return 0, nil, nil, err
	}
	return sem, fn, bounds, nil
}

func parseExtrapolation(name string, sys *system.System) (dbm.ExtrapolationFunc, zg.BoundsFunc, error) {
	if name == "none" {
		return dbm.NoExtrapolation, func(ta.VLoc) *dbm.ClockBounds { return nil }, nil
	}

	local := strings.HasSuffix(name, "l")
	global := strings.HasSuffix(name, "g")
	if !local && !global {
		return nil, nil, report.NewKindError(report.KindConfiguration,
			fmt.Errorf("-a: extrapolation %q must end in 'g' (global) or 'l' (local)", name))
	}
	base := strings.TrimSuffix(strings.TrimSuffix(name, "g"), "l")

	var fn dbm.ExtrapolationFunc
	switch base {
	case "extraM":
		fn = dbm.ExtraM
	case "extraM+":
		fn = dbm.ExtraMPlus
	case "extraLU":
		fn = dbm.ExtraLU
	case "extraLU+":
		fn = dbm.ExtraLUPlus
	default:
		return nil, nil, report.NewKindError(report.KindConfiguration,
			fmt.Errorf("-a: unknown extrapolation %q", name))
	}

	table, err := clockbounds.Solve(sys)
	if err != nil {
		// No bound derivable for the diagonal fragment: fall back to
		// NO_EXTRAPOLATION per spec.md §4.6's "NO_BOUND ... falls back
		// to NO_EXTRAPOLATION" contract rather than failing the run.
		return dbm.NoExtrapolation, func(ta.VLoc) *dbm.ClockBounds { return nil }, nil
	}

	if global {
		return fn, func(ta.VLoc) *dbm.ClockBounds { return table.Global }, nil
	}
	dim := table.Index.Dim()
	return fn, func(v ta.VLoc) *dbm.ClockBounds {
		return mergeLocalBounds(table, v, dim)
	}, nil
}

// mergeLocalBounds combines each process's own per-location bounds table
// into one ClockBounds spanning the whole clock index, by taking the
// pointwise max across every process's current location — the "local"
// extrapolation/cover variant is, for a vector location, the join of
// what each participating process's own location demands.
func mergeLocalBounds(table *clockbounds.Table, v ta.VLoc, dim int) *dbm.ClockBounds {
	out := dbm.NewClockBounds(dim)
	for _, loc := range v {
		b, ok := table.Local[loc.Process][loc.Name]
		if !ok {
			continue
		}
		for i := 1; i < dim; i++ {
			mergeMax(&out.L[i], b.L[i])
			mergeMax(&out.U[i], b.U[i])
		}
	}
	return out
}

func mergeMax(dst *int64, v int64) {
	if v == dbm.NoBound {
		return
	}
	if *dst == dbm.NoBound || v > *dst {
		*dst = v
	}
}

// parseCover decodes a -c COVER flag into a dbm.CoverFunc. The _g/_l
// suffix does not select a bounds table: alu_g and alu_l both yield
// dbm.CoverALU, am_g and am_l both dbm.CoverAM, and the engine evaluates
// the relation with whichever bounds the -a model selected.
func parseCover(name string) (dbm.CoverFunc, error) {
	switch name {
	case "inclusion":
		return dbm.CoverInclusion, nil
	case "alu_g", "alu_l":
		return dbm.CoverALU, nil
	case "am_g", "am_l":
		return dbm.CoverAM, nil
	}
	return nil, report.NewKindError(report.KindConfiguration, fmt.Errorf("-c: unknown cover %q", name))
}
