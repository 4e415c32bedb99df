package nodetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/framegraph/internal/bufalloc"
	"github.com/vk/framegraph/internal/node"
)

type stubNode struct{ outputs int }

func (s *stubNode) NumOutputs() int                             { return s.outputs }
func (s *stubNode) Inspect(node.Inspector)                      {}
func (s *stubNode) Render([][]float32, node.RenderContext) bool { return false }

func TestInsert_InitialisesSchedInfo(t *testing.T) {
	var tbl Table
	id := tbl.Insert(&stubNode{outputs: 2})

	e := tbl.Get(id)
	require.NotNil(t, e)
	assert.Equal(t, Inactive, e.Sched.State)
	assert.Zero(t, e.Sched.NumOutputSamples)
	require.Len(t, e.Sched.Outputs, 2)
	for _, out := range e.Sched.Outputs {
		assert.Equal(t, bufalloc.NoSlot, out.Slot)
		assert.Equal(t, NoUse, out.LastUse)
	}
	assert.Equal(t, 1, tbl.Len())
}

func TestRemove_InvalidatesID(t *testing.T) {
	var tbl Table
	n := &stubNode{outputs: 1}
	id := tbl.Insert(n)

	removed, ok := tbl.Remove(id)
	require.True(t, ok)
	assert.Same(t, n, removed)
	assert.Nil(t, tbl.Get(id))
	assert.Equal(t, 0, tbl.Len())

	_, ok = tbl.Remove(id)
	assert.False(t, ok, "double remove must fail")
}

func TestInsert_ReusesIndexWithNewGeneration(t *testing.T) {
	var tbl Table
	stale := tbl.Insert(&stubNode{})
	tbl.Remove(stale)

	fresh := tbl.Insert(&stubNode{outputs: 3})
	assert.Equal(t, stale.Index(), fresh.Index())
	assert.NotEqual(t, stale.Generation(), fresh.Generation())
	assert.Nil(t, tbl.Get(stale), "stale ID must not reach the new occupant")
	require.NotNil(t, tbl.Get(fresh))
	assert.Len(t, tbl.Get(fresh).Sched.Outputs, 3)
}

func TestGet_OutOfRange(t *testing.T) {
	var tbl Table
	assert.Nil(t, tbl.Get(node.NewID(7, 0)))
}

func TestEach_VisitsLiveNodesInIndexOrder(t *testing.T) {
	var tbl Table
	a := tbl.Insert(&stubNode{})
	b := tbl.Insert(&stubNode{})
	c := tbl.Insert(&stubNode{})
	tbl.Remove(b)

	var seen []node.ID
	tbl.Each(func(id node.ID, _ *Entry) { seen = append(seen, id) })
	assert.Equal(t, []node.ID{a, c}, seen)
}

func TestSchedInfo_ClearUses(t *testing.T) {
	s := newSchedInfo(2)
	s.Outputs[0].LastUse = 4
	s.Outputs[1].LastUse = 9
	s.ClearUses()
	assert.Equal(t, NoUse, s.Outputs[0].LastUse)
	assert.Equal(t, NoUse, s.Outputs[1].LastUse)
}
