// Package parser reads the input language of spec.md §6 (system, event,
// process, clock, int, location, edge and sync declarations, plus the
// C-like expression/statement grammar used in invariant/provided/do
// attributes) and builds a *system.System.
//
// The lexer and recursive-descent parser are split into separate files
// (lexer.go, parser.go, exprparser.go) following matrix/impl_builder.go's
// "one builder stage per file section" habit, adapted here to "one
// grammar layer per file" since there is no matrix to build.
package parser
