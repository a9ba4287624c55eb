package ta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticktac-project/tchecker/system"
	"github.com/ticktac-project/tchecker/ta"
)

func buildTwoProc(t *testing.T, committed, urgent bool) ta.VLoc {
	t.Helper()
	s, err := system.NewSystem("sys",
		system.WithProcess("A"),
		system.WithProcess("B"),
		system.WithLocation(system.Location{Process: "A", Name: "a0", Initial: true, Committed: committed, Urgent: urgent, Labels: []string{"la"}}),
		system.WithLocation(system.Location{Process: "B", Name: "b0", Initial: true, Labels: []string{"lb"}}),
	)
	require.NoError(t, err)
	v, ok := ta.InitialVLoc(s)
	require.True(t, ok)
	return v
}

func TestDelayAllowedPlain(t *testing.T) {
	v := buildTwoProc(t, false, false)
	delay, must := ta.DelayAllowed(v)
	assert.True(t, delay)
	assert.Nil(t, must)
}

func TestDelayInhibitedByUrgent(t *testing.T) {
	v := buildTwoProc(t, false, true)
	delay, must := ta.DelayAllowed(v)
	assert.False(t, delay)
	assert.Nil(t, must)
}

func TestDelayRestrictedByCommitted(t *testing.T) {
	v := buildTwoProc(t, true, false)
	delay, must := ta.DelayAllowed(v)
	assert.False(t, delay)
	require.Equal(t, []int{0}, must)
	assert.True(t, ta.MustFireFromProcess(must, 0))
	assert.False(t, ta.MustFireFromProcess(must, 1))
}

func TestLabelsUnion(t *testing.T) {
	v := buildTwoProc(t, false, false)
	assert.Equal(t, []string{"la", "lb"}, ta.Labels(v))
}
