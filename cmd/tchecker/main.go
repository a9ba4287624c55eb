// Command tchecker is the CLI driver for the two sub-commands spec.md §6
// names: "explore" enumerates the symbolic state-space, "covreach" runs
// the covering reachability algorithm.
package main

import (
	"fmt"
	"os"

	"github.com/ticktac-project/tchecker/report"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	r := report.New(os.Stderr)
	defer func() {
		fmt.Fprintln(os.Stderr, r.Summary())
	}()

	if len(args) == 0 {
		r.Errorf("usage: tchecker <explore|covreach> [flags] [file]")
		return 2
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "explore":
		return exitCode(runExplore(rest, r), r)
	case "covreach":
		return exitCode(runCovreach(rest, r), r)
	case "-h", "--help", "help":
		printUsage()
		return 0
	default:
		r.Errorf("unknown sub-command %q (want explore|covreach)", sub)
		return 2
	}
}

// exitCode reconciles a sub-command's own return code with whatever the
// Reporter accumulated: any recorded Error forces a non-zero exit even
// if the sub-command itself returned 0, per spec.md §6 "non-zero on
// usage or parse error".
func exitCode(code int, r *report.Reporter) int {
	if code != 0 {
		return code
	}
	if r.HasErrors() {
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `tchecker <sub-command> [flags] [file]

Sub-commands:
  explore   enumerate the symbolic state-space and print it
  covreach  run the covering reachability algorithm

Common flags:
  -h                  help
  -l label1,label2    accepting labels
  -o file             output file (default stdout)
  --block-size N      pool growth increment
  --table-size N      node index size hint
  -a MODEL            zg:<standard|elapsed>:<extrapolation><g|l>
  -c COVER            inclusion|alu_g|alu_l|am_g|am_l
  -s bfs|dfs          search order
  -C graph|symbolic|concrete|none   certificate output`)
}
