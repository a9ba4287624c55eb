package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/ticktac-project/tchecker/covreach"
	"github.com/ticktac-project/tchecker/report"
	"github.com/ticktac-project/tchecker/zg"
)

// runExplore implements spec.md §6's "explore [flags] [file]": enumerate
// the symbolic state-space (no covering) and print it, one line per
// state, in deterministic lexical order on (vloc labels, int valuation).
func runExplore(args []string, r *report.Reporter) int {
	fs := flag.NewFlagSet("explore", flag.ContinueOnError)
	var f commonFlags
	registerCommonFlags(fs, &f)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		r.Report(report.Error, report.NewKindError(report.KindConfiguration, err))
		return 1
	}

	sys, err := loadSystem(fs.Arg(0))
	if err != nil {
		r.Report(report.Error, err)
		return 1
	}

	out, err := openOutput(f.output)
	if err != nil {
		r.Errorf("%s", err.Error())
		return 1
	}
	defer out.Close()

	graph, err := buildZoneGraph(sys, &f)
	if err != nil {
		r.Report(report.Error, err)
		return 1
	}

	order := covreach.LIFO
	if f.order == "bfs" {
		order = covreach.FIFO
	}

	lines, err := exploreStates(graph, order)
	if err != nil {
		r.Report(report.Error, err)
		return 1
	}

	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
	return 0
}

// exploreStates performs a plain (non-covering) traversal of the zone
// graph, tracking visited states by exact equality so a cyclic system
// still terminates even without a cover relation narrowing the state
// set.
func exploreStates(graph *zg.ZoneGraph, order covreach.WaitingOrder) ([]string, error) {
	var waiting []*zg.State
	push := func(s *zg.State) { waiting = append(waiting, s) }
	pop := func() *zg.State {
		if order == covreach.FIFO {
			s := waiting[0]
			waiting = waiting[1:]
			return s
		}
		s := waiting[len(waiting)-1]
		waiting = waiting[:len(waiting)-1]
		return s
	}

	var visited []*zg.State
	seen := func(s *zg.State) bool {
		for _, v := range visited {
			if v.Equal(s) {
				return true
			}
		}
		return false
	}

	var lines []string
	for _, ie := range graph.InitialEdges() {
		status, s, err := graph.Initial(ie)
		if err != nil {
			return nil, err
		}
		if status != zg.OK || seen(s) {
			continue
		}
		visited = append(visited, s)
		lines = append(lines, formatState(s))
		push(s)
	}

	for len(waiting) > 0 {
		s := pop()
		for _, tr := range graph.OutgoingEdges(s) {
			status, succ, err := graph.Next(s, tr)
			if err != nil {
				return nil, err
			}
			if status != zg.OK || seen(succ) {
				continue
			}
			visited = append(visited, succ)
			lines = append(lines, formatState(succ))
			push(succ)
		}
	}
	return lines, nil
}

func formatState(s *zg.State) string {
	var b strings.Builder
	for i, loc := range s.VLoc {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(loc.Process)
		b.WriteString(":")
		b.WriteString(loc.Name)
	}
	b.WriteString(" |")
	for _, v := range s.IntVal {
		fmt.Fprintf(&b, " %d", v)
	}
	if key := sortedLabelKey(s.VLoc); key != "" {
		b.WriteString(" {")
		b.WriteString(key)
		b.WriteString("}")
	}
	return b.String()
}

