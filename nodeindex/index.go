package nodeindex

// Entry is anything the index can store: a type that can report its own
// fingerprint key and supports identity comparison (so Remove can find
// the exact stored value among others sharing the same fingerprint).
// Pointer-typed nodes, as package covreach uses, satisfy this naturally.
type Entry interface {
	comparable
	Fingerprint() uint64
}

// Index is a fingerprint-keyed multimap: several entries may legitimately
// share a fingerprint (a hash collision, or distinct zones over the same
// discrete state), so Find returns every entry in the bucket and callers
// (package covreach) decide which ones matter via the cover relation.
type Index[T Entry] struct {
	buckets map[uint64][]T
	count   int
}

// New creates an empty Index.
func New[T Entry]() *Index[T] {
	return &Index[T]{buckets: make(map[uint64][]T)}
}

// NewWithSizeHint creates an empty Index whose bucket map is pre-sized
// for approximately buckets distinct fingerprints, avoiding incremental
// growth when the caller has an a priori estimate (spec.md §6
// "--table-size N"). buckets <= 0 behaves like New.
func NewWithSizeHint[T Entry](buckets int) *Index[T] {
	if buckets <= 0 {
		return New[T]()
	}
	return &Index[T]{buckets: make(map[uint64][]T, buckets)}
}

// Insert adds v to the bucket for its fingerprint.
func (idx *Index[T]) Insert(v T) {
	fp := v.Fingerprint()
	idx.buckets[fp] = append(idx.buckets[fp], v)
	idx.count++
}

// Find returns every entry stored under fp, in insertion order.
func (idx *Index[T]) Find(fp uint64) []T {
	return idx.buckets[fp]
}

// Remove deletes v from its bucket, reporting whether it was present.
func (idx *Index[T]) Remove(v T) bool {
	fp := v.Fingerprint()
	bucket := idx.buckets[fp]
	for i, e := range bucket {
		if e == v {
			bucket[i] = bucket[len(bucket)-1]
			idx.buckets[fp] = bucket[:len(bucket)-1]
			idx.count--
			if len(idx.buckets[fp]) == 0 {
				delete(idx.buckets, fp)
			}
			return true
		}
	}
	return false
}

// Len returns the total number of stored entries.
func (idx *Index[T]) Len() int { return idx.count }

// All returns every stored entry across every bucket, in no particular
// order; package covreach uses it to list the whole node set for output.
func (idx *Index[T]) All() []T {
	out := make([]T, 0, idx.count)
	for _, bucket := range idx.buckets {
		out = append(out, bucket...)
	}
	return out
}
