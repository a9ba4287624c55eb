package pool

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// entry is one slab slot: a value plus its intrusive refcount.
type entry[T any] struct {
	value    T
	refcount int32
}

// Handle is a reference-counted handle to a pool-owned value. Callers
// Retain before handing a copy of the handle to another owner and
// Release when done with their own copy; the value's destructor runs
// once the refcount reaches zero, normally on the pool's GC worker (see
// Release for when it runs on the caller instead).
type Handle[T any] struct {
	pool *Pool[T]
	e    *entry[T]
}

// Value returns the handle's current value. Valid until the handle is
// Released and its refcount reaches zero.
func (h *Handle[T]) Value() T { return h.e.value }

// Retain increments the handle's refcount, returning h for chaining.
func (h *Handle[T]) Retain() *Handle[T] {
	atomic.AddInt32(&h.e.refcount, 1)
	return h
}

// Release decrements the handle's refcount. If it reaches zero, the
// entry is queued for destruction by the pool's background GC worker or
// a later Drain (spec.md §4.3 "cooperative background GC worker draining
// a to-be-freed queue"); if the queue is full, the entry is destroyed
// synchronously on the caller's stack.
func (h *Handle[T]) Release() {
	if atomic.AddInt32(&h.e.refcount, -1) > 0 {
		return
	}
	h.pool.enqueueFree(h.e)
}

// Pool is a fixed-block slab allocator of reference-counted T values.
// Blocks are allocated blockSize entries at a time; freed entries return
// to a free list (a slice of entry pointers) for reuse, so no new block
// is allocated once the working set stabilizes. Each Get still allocates
// its small Handle.
type Pool[T any] struct {
	mu         sync.Mutex
	blockSize  int
	destructor func(T)

	free []*entry[T]

	toFree chan *entry[T]
	group  *errgroup.Group
	cancel context.CancelFunc
}

// New creates a Pool allocating blockSize entries per growth, calling
// destructor on a value whose last handle was Released. blockSize must be
// >= 1; values <= 0 are treated as 1.
func New[T any](blockSize int, destructor func(T)) *Pool[T] {
	if blockSize < 1 {
		blockSize = 1
	}
	return &Pool[T]{
		blockSize:  blockSize,
		destructor: destructor,
		toFree:     make(chan *entry[T], 1024),
	}
}

// Get allocates a handle for value, drawing from the free list or growing
// the pool by one block if it is empty.
func (p *Pool[T]) Get(value T) *Handle[T] {
	p.mu.Lock()
	if len(p.free) == 0 {
		p.grow()
	}
	e := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.mu.Unlock()

	e.value = value
	e.refcount = 1
	return &Handle[T]{pool: p, e: e}
}

// grow must be called with p.mu held.
func (p *Pool[T]) grow() {
	block := make([]entry[T], p.blockSize)
	for i := range block {
		p.free = append(p.free, &block[i])
	}
}

func (p *Pool[T]) enqueueFree(e *entry[T]) {
	select {
	case p.toFree <- e:
	default:
		// Worker not keeping up or not started: free synchronously so a
		// burst of releases never blocks the search thread indefinitely.
		p.reclaim(e)
	}
}

func (p *Pool[T]) reclaim(e *entry[T]) {
	if p.destructor != nil {
		p.destructor(e.value)
	}
	var zero T
	e.value = zero
	p.mu.Lock()
	p.free = append(p.free, e)
	p.mu.Unlock()
}

// Start launches the background GC worker that drains released entries
// and returns them to the free list. Calling Start twice without an
// intervening Stop is a programmer error.
func (p *Pool[T]) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	g, gctx := errgroup.WithContext(ctx)
	p.group = g
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case e := <-p.toFree:
				p.reclaim(e)
			}
		}
	})
}

// Stop signals the GC worker to exit and waits for it, guaranteeing every
// entry queued before Stop was called is either reclaimed or still safely
// sitting in the channel for a later Start to drain.
func (p *Pool[T]) Stop() error {
	if p.cancel == nil {
		return nil
	}
	p.cancel()
	err := p.group.Wait()
	p.group = nil
	p.cancel = nil
	return err
}

// Drain synchronously reclaims every entry currently queued, without
// requiring the background worker to be running. Used by callers that
// want a deterministic "everything released so far is now destroyed"
// point, e.g. before reporting final statistics.
func (p *Pool[T]) Drain() {
	for {
		select {
		case e := <-p.toFree:
			p.reclaim(e)
		default:
			return
		}
	}
}
