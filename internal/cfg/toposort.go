package cfg

// TopoSort computes both block orderings the analysis passes consume: the
// forward post-order (ForwardsTopoSort) and the loop-aware backward ordering
// (BackwardsTopoSort) where outer loops dominate headers which dominate
// bodies. Both are recomputed from scratch, discarding whatever the previous
// run (if any) left behind.
func TopoSort(c *CFG) {
	clearVisitedFlags(c)

	// topoSortForward writes in post-order: a block is placed only once both
	// of its successors are. Read front to back, the array is leaves-first;
	// read back to front, it is the reverse-postorder forward dataflow wants.
	// Entry is always the last element.
	fwd := make([]*BasicBlock, len(c.blocks))
	n := topoSortForward(fwd, 0, c.entry)
	c.ForwardsTopoSort = fwd[:n]

	// The predecessor graph is not rooted at a single node the way the
	// successor graph is rooted at entry (entry has no predecessors, and a
	// block with no forward path to another block is never discovered by
	// walking only that other block's ancestors). So, unlike the forward
	// sort, we seed the DFS from entry first and then from every remaining
	// unvisited block in construction order, guaranteeing full coverage
	// while still starting from entry as the primary seed.
	bwd := make([]*BasicBlock, len(c.blocks))
	n = topoSortBackward(bwd, 0, c.entry)
	for _, bb := range c.blocks {
		if !bb.backwardVisited() {
			n = topoSortBackward(bwd, n, bb)
		}
	}
	c.BackwardsTopoSort = bwd[:n]
}

func clearVisitedFlags(c *CFG) {
	for _, bb := range c.blocks {
		bb.flags &^= flagForwardVisited | flagBackwardVisited
	}
}

// topoSortForward is a post-order DFS over Thenb then Elseb: a block is
// written into target only once both of its successors have already been
// fully explored, which is exactly reverse-postorder when target is read
// back to front.
func topoSortForward(target []*BasicBlock, nextFree int, bb *BasicBlock) int {
	if bb.forwardVisited() {
		return nextFree
	}
	bb.setForwardVisited()
	nextFree = topoSortForward(target, nextFree, bb.Exit.Thenb)
	nextFree = topoSortForward(target, nextFree, bb.Exit.Elseb)
	target[nextFree] = bb
	return nextFree + 1
}

// topoSortBackward is a DFS over BackEdges (predecessors) that does not rely
// on BackEdges being pre-partitioned by loop depth: it explicitly partitions
// bb's predecessors into strictly-shallower ones
// and same-or-deeper ones at each call, recursing into the shallower group
// first, then emitting bb, then recursing into the rest -- unless there were
// no shallower predecessors at all, in which case bb is simply the last of
// its own subtree (it is not a loop header).
func topoSortBackward(target []*BasicBlock, nextFree int, bb *BasicBlock) int {
	if bb.backwardVisited() {
		return nextFree
	}
	bb.setBackwardVisited()

	var shallower, rest []*BasicBlock
	for _, pred := range bb.BackEdges {
		if pred.OuterLoops < bb.OuterLoops {
			shallower = append(shallower, pred)
		} else {
			rest = append(rest, pred)
		}
	}

	if len(shallower) > 0 {
		for _, pred := range shallower {
			nextFree = topoSortBackward(target, nextFree, pred)
		}
		// This is a loop header: it is emitted before its same-or-deeper
		// predecessors, i.e. before the body of the loop it heads.
		target[nextFree] = bb
		nextFree++
		for _, pred := range rest {
			nextFree = topoSortBackward(target, nextFree, pred)
		}
	} else {
		for _, pred := range rest {
			nextFree = topoSortBackward(target, nextFree, pred)
		}
		target[nextFree] = bb
		nextFree++
	}
	return nextFree
}
