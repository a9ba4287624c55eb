// Package system defines the static model of a network of timed automata
// with integer variables and multiparty synchronization: processes, events,
// clocks, integer variables, locations, edges and synchronization
// vectors (spec.md §3 "System"). A System is built once, via NewSystem and
// functional options, then treated as immutable by every later analysis
// stage (clockbounds, ta, zg).
package system
