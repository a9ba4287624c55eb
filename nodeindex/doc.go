// Package nodeindex implements the fingerprint-keyed node table spec.md
// §4.4 describes: a hash table keyed by a 64-bit discrete-state
// fingerprint, with each bucket held as a slice in a map: O(1) amortized
// insert, and find and remove linear in the bucket length. It never
// deduplicates on the zone component of a state — package covreach owns
// that decision via the cover relation.
package nodeindex
