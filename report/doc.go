// Package report turns parser/checker/engine errors into the one-line
// ERROR,/WARNING, stderr diagnostics and the trailing "<n> error(s), <m>
// warning(s)" summary of spec.md §7, backed by github.com/rs/zerolog.
//
// A Reporter is a value threaded explicitly through every constructor
// that can fail or warn — there is no package-level logger and no
// init()-installed global writer. spec.md §9's logging redesign note
// ("no global singleton logger; every component that can fail takes a
// Reporter explicitly") applies to this whole module, not just the
// pool's GC worker.
package report
