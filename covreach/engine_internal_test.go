package covreach

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ticktac-project/tchecker/nodeindex"
)

// TestCandidatesForLeafNodesExcludesExpanded pins down the Expanded
// filter directly against the node index, without driving a full
// search: LeafNodes must only ever return Active, not-yet-Expanded
// nodes, while Full ignores Expanded entirely and returns every node
// sharing the fingerprint regardless of colour.
func TestCandidatesForLeafNodesExcludesExpanded(t *testing.T) {
	const fp = uint64(1)
	active := &Node{fingerprint: fp, Colour: Active}
	expanded := &Node{fingerprint: fp, Colour: Active, Expanded: true}
	covered := &Node{fingerprint: fp, Colour: Covered}

	e := &Engine{index: nodeindex.New[*Node](), Config: Config{Policy: LeafNodes}}
	e.index.Insert(active)
	e.index.Insert(expanded)
	e.index.Insert(covered)

	assert.Equal(t, []*Node{active}, e.candidatesFor(fp))

	e.Config.Policy = Full
	assert.ElementsMatch(t, []*Node{active, expanded, covered}, e.candidatesFor(fp))
}
