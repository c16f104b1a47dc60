package cfg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeMinMaxLoops(t *testing.T) {
	b := NewBuilder()
	c := b.Finish()
	entry := c.Entry()

	loop := b.AllocateBlock(1)
	after := b.AllocateBlock(0)

	x := v("x")
	entry.Exprs = []Binding{{Bind: x, Value: IntLit{Value: 0}}}
	b.SetExit(entry, NoVariable, loop, loop)

	y := v("y")
	loop.Exprs = []Binding{{Bind: y, Value: Ident{What: x}}}
	b.SetExit(loop, v("cond"), loop, after)

	b.SetExit(after, NoVariable, c.DeadBlock(), c.DeadBlock())

	rw := ComputeReadsAndWrites(c)
	ComputeMinMaxLoops(c, rw)

	require.Equal(t, 1, c.MinLoops[x], "x is read inside the loop at depth 1")
	require.Equal(t, 0, c.MaxLoopWrite[x], "x is only written at depth 0, outside the loop")
}

func TestComputeMinMaxLoops_WriteOnlyVariableStillGetsMinLoops(t *testing.T) {
	b := NewBuilder()
	c := b.Finish()
	entry := c.Entry()

	x := v("x")
	entry.Exprs = []Binding{{Bind: x, Value: IntLit{Value: 0}}}
	b.SetExit(entry, NoVariable, c.DeadBlock(), c.DeadBlock())

	rw := ComputeReadsAndWrites(c)
	ComputeMinMaxLoops(c, rw)

	require.Equal(t, 0, c.MinLoops[x], "never read, so MinLoops falls back to the write depth")
	require.Equal(t, 0, c.MaxLoopWrite[x])
}

func TestComputeMinMaxLoops_WriteNeverLowersReadDerivedMin(t *testing.T) {
	b := NewBuilder()
	c := b.Finish()
	entry := c.Entry()

	loop := b.AllocateBlock(1)
	x := v("x")

	// x is read at depth 1 first, then written at depth 0 -- the write must
	// not pull MinLoops down to 0.
	loop.Exprs = []Binding{{Bind: v("y"), Value: Ident{What: x}}}
	b.SetExit(entry, NoVariable, loop, loop)

	after := b.AllocateBlock(0)
	after.Exprs = []Binding{{Bind: x, Value: IntLit{Value: 5}}}
	b.SetExit(loop, v("cond"), loop, after)
	b.SetExit(after, NoVariable, c.DeadBlock(), c.DeadBlock())

	rw := ComputeReadsAndWrites(c)
	ComputeMinMaxLoops(c, rw)

	require.Equal(t, 1, c.MinLoops[x])
}
