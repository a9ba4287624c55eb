// Package pool implements a reference-counted block allocator (spec.md
// §4.3): callers Get a handle backed by a fixed-size slab, Retain/Release
// it, and a cooperative background worker drains released handles whose
// refcount reached zero through a destructor callback, off the hot search
// path. The worker is started and stopped explicitly per Pool instance
// (Start/Stop) rather than through a global singleton, per spec.md §9's
// "global logging singleton" redesign note applied uniformly to every
// ambient service in this module.
package pool
