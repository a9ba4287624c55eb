package pool_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticktac-project/tchecker/pool"
)

func TestGetReleaseReusesEntry(t *testing.T) {
	var destroyed int32
	p := pool.New(4, func(v int) { atomic.AddInt32(&destroyed, 1) })

	h := p.Get(42)
	assert.Equal(t, 42, h.Value())
	h.Release()
	p.Drain()

	assert.Equal(t, int32(1), atomic.LoadInt32(&destroyed))

	h2 := p.Get(7)
	assert.Equal(t, 7, h2.Value())
	h2.Release()
}

func TestRetainKeepsEntryAlive(t *testing.T) {
	var destroyed int32
	p := pool.New(1, func(v int) { atomic.AddInt32(&destroyed, 1) })

	h := p.Get(1)
	h.Retain()
	h.Release()
	p.Drain()
	assert.Equal(t, int32(0), atomic.LoadInt32(&destroyed))

	h.Release()
	p.Drain()
	assert.Equal(t, int32(1), atomic.LoadInt32(&destroyed))
}

func TestBackgroundWorkerDrainsQueue(t *testing.T) {
	var destroyed int32
	p := pool.New(1, func(v int) { atomic.AddInt32(&destroyed, 1) })
	p.Start(context.Background())
	defer func() { require.NoError(t, p.Stop()) }()

	h := p.Get(1)
	h.Release()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&destroyed) == 1
	}, time.Second, time.Millisecond)
}
