package cfg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTopoSort_ForwardIsPostOrder(t *testing.T) {
	c, blocks := buildTestCFG(testGraph{
		edges: map[int][2]int{
			0: {1, 2}, // entry
			1: {3, 3},
			2: {3, 3},
			3: {3, 3}, // self-loop sink
		},
	})
	TopoSort(c)

	require.NotEmpty(t, c.ForwardsTopoSort)
	require.Equal(t, blocks[3], c.ForwardsTopoSort[0], "the leaf-most block is placed first")
	require.Equal(t, blocks[0], c.ForwardsTopoSort[len(c.ForwardsTopoSort)-1],
		"entry exits the DFS last, so post-order puts it at the back")
}

func TestTopoSort_BackwardCoversEveryBlock(t *testing.T) {
	c, blocks := buildTestCFG(testGraph{
		edges: map[int][2]int{
			0: {1, 2},
			1: {3, 3},
			2: {3, 3},
			3: {3, 3},
		},
	})
	TopoSort(c)

	require.Len(t, c.BackwardsTopoSort, len(c.Blocks()), "every live block must appear exactly once")
	seen := make(map[*BasicBlock]bool)
	for _, bb := range c.BackwardsTopoSort {
		require.False(t, seen[bb], "no duplicates")
		seen[bb] = true
	}
	for _, bb := range blocks {
		require.True(t, seen[bb])
	}
}

func TestTopoSort_LoopHeaderPrecedesBody(t *testing.T) {
	// entry(depth 0) -> header(1) <-> body(1) -> after(0). The edge from
	// entry comes from a strictly shallower depth, so header is the loop
	// header and must be emitted after entry but before the body that closes
	// the loop back to it.
	b := NewBuilder()
	c := b.Finish()
	entry := c.Entry()

	header := b.AllocateBlock(1)
	body := b.AllocateBlock(1)
	after := b.AllocateBlock(0)

	b.SetExit(entry, NoVariable, header, header)
	b.SetExit(header, v("cond"), body, after)
	b.SetExit(body, NoVariable, header, header) // closes the loop
	b.SetExit(after, NoVariable, c.DeadBlock(), c.DeadBlock())

	TopoSort(c)
	MarkLoopHeaders(c)

	require.True(t, header.IsLoopHeader())

	headerIdx, bodyIdx := -1, -1
	for i, bb := range c.BackwardsTopoSort {
		if bb == header {
			headerIdx = i
		}
		if bb == body {
			bodyIdx = i
		}
	}
	require.NotEqual(t, -1, headerIdx)
	require.NotEqual(t, -1, bodyIdx)
	require.Less(t, headerIdx, bodyIdx, "loop header must be emitted before its own loop body")
}
