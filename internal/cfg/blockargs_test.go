package cfg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFillInBlockArguments_LiveAcrossEdge(t *testing.T) {
	b := NewBuilder()
	c := b.Finish()
	entry := c.Entry()

	x := v("x")
	join := b.AllocateBlock(0)

	entry.Exprs = []Binding{{Bind: x, Value: IntLit{Value: 1}}}
	b.SetExit(entry, NoVariable, join, join)

	y := v("y")
	join.Exprs = []Binding{{Bind: y, Value: Ident{What: x}}}
	b.SetExit(join, NoVariable, c.DeadBlock(), c.DeadBlock())

	TopoSort(c)
	rw := ComputeReadsAndWrites(c)
	FillInBlockArguments(c, rw)

	require.Contains(t, join.Args, x, "x is written before join and read inside it")
}

func TestFillInBlockArguments_NotLiveIfNeverReadAfterWrite(t *testing.T) {
	b := NewBuilder()
	c := b.Finish()
	entry := c.Entry()

	x := v("x")
	entry.Exprs = []Binding{{Bind: x, Value: IntLit{Value: 1}}}
	b.SetExit(entry, NoVariable, c.DeadBlock(), c.DeadBlock())

	TopoSort(c)
	rw := ComputeReadsAndWrites(c)
	FillInBlockArguments(c, rw)

	require.Empty(t, entry.Args, "x is never read, so it never needs to cross an edge")
	require.Empty(t, c.DeadBlock().Args)
}

func TestFillInBlockArguments_SameBlockReadWriteNeverBecomesAnArg(t *testing.T) {
	// tmp is written and read only within one block and must never appear in
	// any block's Args.
	b := NewBuilder()
	c := b.Finish()
	entry := c.Entry()

	loop := b.AllocateBlock(1)
	tmp := v("tmp")
	other := v("other")

	b.SetExit(entry, NoVariable, loop, loop)
	loop.Exprs = []Binding{
		{Bind: tmp, Value: IntLit{Value: 1}},
		{Bind: other, Value: Ident{What: tmp}},
	}
	b.SetExit(loop, v("cond"), loop, c.DeadBlock())

	TopoSort(c)
	rw := ComputeReadsAndWrites(c)
	FillInBlockArguments(c, rw)

	require.NotContains(t, loop.Args, tmp, "tmp never escapes the block it's written and read in")
	require.NotContains(t, entry.Args, tmp)
}

func TestFillInBlockArguments_PreprocessingDoesNotMutateSharedReadsWrites(t *testing.T) {
	b := NewBuilder()
	c := b.Finish()
	entry := c.Entry()

	tmp := v("tmp")
	other := v("other")
	entry.Exprs = []Binding{
		{Bind: tmp, Value: IntLit{Value: 1}},
		{Bind: other, Value: Ident{What: tmp}},
	}
	b.SetExit(entry, NoVariable, c.DeadBlock(), c.DeadBlock())

	TopoSort(c)
	rw := ComputeReadsAndWrites(c)
	FillInBlockArguments(c, rw)

	require.True(t, rw.Reads[entry.ID()].Has(tmp.Name.ID),
		"internal preprocessing must not clear the table the later passes consume")
}

func TestFillInBlockArguments_DeadBlockNeverGetsArgs(t *testing.T) {
	b := NewBuilder()
	c := b.Finish()
	b.SetExit(c.Entry(), NoVariable, c.DeadBlock(), c.DeadBlock())

	TopoSort(c)
	rw := ComputeReadsAndWrites(c)
	FillInBlockArguments(c, rw)

	require.Empty(t, c.DeadBlock().Args)
}
