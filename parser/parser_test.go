package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticktac-project/tchecker/parser"
	"github.com/ticktac-project/tchecker/system"
)

func TestParseOneShotSystem(t *testing.T) {
	src := `
system: oneshot
process: P
event: go
clock: 1: x
location: P: l0 { initial: }
location: P: l1 { invariant: x <= 10, labels: done, final }
edge: P: l0: l1: go { provided: x >= 1, do: x = 0 }
`
	s, err := parser.Parse(src)
	require.NoError(t, err)
	assert.Equal(t, "oneshot", s.Name())

	l0, ok := s.InitialLocation("P")
	require.True(t, ok)
	assert.Equal(t, "l0", l0.Name)

	l1, ok := s.Location("P", "l1")
	require.True(t, ok)
	require.NotNil(t, l1.Invariant)
	assert.ElementsMatch(t, []string{"done", "final"}, l1.Labels)

	edges := s.OutgoingEdges("P", "l0")
	require.Len(t, edges, 1)
	require.NotNil(t, edges[0].Guard)
	require.NotNil(t, edges[0].Statement)
}

func TestParseIntDeclAndSync(t *testing.T) {
	src := `
system: two
process: P1
process: P2
event: a1
event: a2
int: 1: 0: 10: 0: n
location: P1: l0 { initial: }
location: P2: m0 { initial: }
edge: P1: l0: l0: a1
edge: P2: m0: m0: a2
sync: P1@a1: P2@a2?
`
	s, err := parser.Parse(src)
	require.NoError(t, err)
	assert.Len(t, s.IntVars(), 1)

	syncs := s.Synchronizations()
	require.Len(t, syncs, 1)
	require.Len(t, syncs[0].Constraints, 2)
	assert.Equal(t, system.Weak, syncs[0].Constraints[1].Strength)
}

func TestParseWeakSyncWithGuardRejected(t *testing.T) {
	src := `
system: bad
process: P1
process: P2
event: a1
event: a2
location: P1: l0 { initial: }
location: P2: m0 { initial: }
edge: P1: l0: l0: a1 { provided: 1 == 1 }
edge: P2: m0: m0: a2
sync: P1@a1: P2@a2?
`
	_, err := parser.Parse(src)
	require.ErrorIs(t, err, system.ErrWeakSyncHasGuard)
}

func TestParseWhileAndLocalStatement(t *testing.T) {
	src := `
system: loopy
process: P
event: go
int: 1: 0: 100: 0: n
location: P: l0 { initial: }
edge: P: l0: l0: go { do: local i = 0; while i < n do i = i + 1 end }
`
	_, err := parser.Parse(src)
	require.NoError(t, err)
}

func TestParseUnknownDeclFails(t *testing.T) {
	_, err := parser.Parse("system: bad\nbogus: x\n")
	require.ErrorIs(t, err, parser.ErrUnknownDecl)
}
