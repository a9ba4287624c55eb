package main

import (
	"flag"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ticktac-project/tchecker/dbm"
	"github.com/ticktac-project/tchecker/parser"
	"github.com/ticktac-project/tchecker/report"
	"github.com/ticktac-project/tchecker/system"
	"github.com/ticktac-project/tchecker/ta"
	"github.com/ticktac-project/tchecker/zg"
)

// commonFlags holds the flag set spec.md §6 lists as common to both
// sub-commands.
type commonFlags struct {
	labels    string
	output    string
	blockSize int
	tableSize int
	model     string
	cover     string
	order     string
	certif    string
}

func registerCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVar(&f.labels, "l", "", "comma-separated accepting labels")
	fs.StringVar(&f.output, "o", "", "output file (default: stdout)")
	fs.IntVar(&f.blockSize, "block-size", 0, "pool growth increment")
	fs.IntVar(&f.tableSize, "table-size", 0, "node index initial bucket-count hint")
	fs.StringVar(&f.model, "a", "zg:standard:none", "model, e.g. zg:elapsed:extraLU+l")
	fs.StringVar(&f.cover, "c", "inclusion", "cover relation: inclusion|alu_g|alu_l|am_g|am_l")
	fs.StringVar(&f.order, "s", "bfs", "search order: bfs|dfs")
	fs.StringVar(&f.certif, "C", "none", "certificate: graph|symbolic|concrete|none")
}

func (f *commonFlags) labelSet() map[string]bool {
	if f.labels == "" {
		return nil
	}
	out := map[string]bool{}
	for _, l := range strings.Split(f.labels, ",") {
		out[strings.TrimSpace(l)] = true
	}
	return out
}

// acceptingFromLabels builds a predicate that holds when any process's
// current location carries one of the wanted labels.
func acceptingFromLabels(wanted map[string]bool) func(*zg.State) bool {
	if len(wanted) == 0 {
		return func(*zg.State) bool { return false }
	}
	return func(s *zg.State) bool {
		for _, lbl := range ta.Labels(s.VLoc) {
			if wanted[lbl] {
				return true
			}
		}
		return false
	}
}

func loadSystem(path string) (*system.System, error) {
	var src []byte
	var err error
	if path == "" || path == "-" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, report.NewKindError(report.KindParse, err)
	}
	sys, err := parser.Parse(string(src))
	if err != nil {
		return nil, report.NewKindError(report.KindParse, err)
	}
	return sys, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func buildZoneGraph(sys *system.System, f *commonFlags) (*zg.ZoneGraph, error) {
	sem, extra, bounds, err := parseModel(f.model, sys)
	if err != nil {
		return nil, err
	}
	return zg.New(sys, sem, zg.WithExtrapolation(extra, bounds)), nil
}

func buildCoverFunc(f *commonFlags) (dbm.CoverFunc, error) {
	return parseCover(f.cover)
}

// sortedLabelKey renders a vector location's sorted label union, used by
// both sub-commands' deterministic-ordering state print.
func sortedLabelKey(v ta.VLoc) string {
	labels := ta.Labels(v)
	sort.Strings(labels)
	return strings.Join(labels, ",")
}

func fatalf(r *report.Reporter, format string, args ...any) {
	r.Errorf(format, args...)
}
