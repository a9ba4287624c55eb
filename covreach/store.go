package covreach

import (
	"github.com/ticktac-project/tchecker/dbm"
	"github.com/ticktac-project/tchecker/pool"
)

// defaultBlockSize is used when a Config leaves BlockSize unset.
const defaultBlockSize = 64

// zoneStore interns zones behind a reference-counted pool.Pool so that
// structurally identical zones produced along different search paths
// share one pool slot instead of each getting its own allocation
// (spec.md §4.3 "pool + sharing store"). It is the hash-consing table;
// pool.Pool is the reference-counted block allocator with the
// cooperative background GC worker underneath it.
type zoneStore struct {
	pool  *pool.Pool[*dbm.Zone]
	index map[uint64][]*pool.Handle[*dbm.Zone]
}

func newZoneStore(blockSize int) *zoneStore {
	if blockSize <= 0 {
		blockSize = defaultBlockSize
	}
	return &zoneStore{
		pool:  pool.New[*dbm.Zone](blockSize, nil),
		index: map[uint64][]*pool.Handle[*dbm.Zone]{},
	}
}

// intern returns a handle owning z, reusing and Retaining an existing
// handle for a hash-equal, structurally-equal zone rather than drawing a
// fresh pool slot.
func (s *zoneStore) intern(z *dbm.Zone) *pool.Handle[*dbm.Zone] {
	h := z.Hash()
	for _, cand := range s.index[h] {
		v := cand.Value()
		if v == nil {
			continue // reclaimed by the GC worker; stale index entry
		}
		if eq, err := dbm.IsEqual(v, z); err == nil && eq {
			return cand.Retain()
		}
	}
	handle := s.pool.Get(z)
	s.index[h] = append(s.index[h], handle)
	return handle
}
