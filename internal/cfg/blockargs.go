package cfg

import (
	"sort"

	"golang.org/x/tools/container/intsets"
)

// FillInBlockArguments decides, for every block, which variables must be
// passed in as formal parameters across the incoming edge.
//
// Neither half of the analysis alone is precise enough to answer that on its
// own, so two independent fixpoints are intersected:
//
//   - upperBounds1[bb]: every variable that MIGHT be read at or after bb,
//     computed forward-in-dependency (a block's value depends on its
//     successors', so it is iterated to a fixpoint rather than in one pass).
//   - upperBounds2[bb]: every variable that MIGHT be written at or before bb,
//     computed backward-in-dependency (a block's value depends on its
//     predecessors').
//
// A variable belongs in bb.Args only if it clears both bars: it could be
// read here or later, and it could have been written here or earlier. Each
// bound is an over-approximation on its own; the intersection is what makes
// the result usable.
//
// Before either fixpoint runs, preprocessForBlockArgs trims variables that
// never escape a single block (or never have a write to escape from) out of
// a private copy of rw -- see its doc comment.
func FillInBlockArguments(c *CFG, rw *ReadsWrites) {
	pre := preprocessForBlockArgs(rw)
	ub1 := computeUpperBounds1(c, pre)
	ub2 := computeUpperBounds2(c, pre)

	for _, bb := range c.blocks {
		if bb == c.dead {
			bb.Args = nil
			continue
		}
		u1, u2 := ub1[bb.id], ub2[bb.id]
		if u1 == nil || u2 == nil {
			bb.Args = nil
			continue
		}
		var both intsets.Sparse
		both.Intersection(u1, u2)

		ids := both.AppendTo(make([]int, 0, both.Len()))
		args := make([]LocalVariable, len(ids))
		for i, id := range ids {
			args[i] = rw.variable(id)
		}
		sort.Slice(args, func(i, j int) bool { return args[i].Name.ID < args[j].Name.ID })
		bb.Args = args
	}
}

// preprocessForBlockArgs trims the reads/writes table down to the variables
// that can actually cross a block boundary, operating on a private copy:
// the rw handed to Run must come out unmodified, since ComputeMinMaxLoops
// and RemoveDeadAssigns both consult the unprocessed table later in the
// pipeline.
//
//   - A variable read in exactly one block and written in exactly one block,
//     the same block in both cases, never escapes that block: clear it from
//     both tables so no fixpoint ever proposes it as a formal parameter.
//   - Otherwise, a variable with no writes at all (a read of something never
//     assigned) has its reads cleared too -- there is no upstream write for a
//     block argument to carry.
//   - Finally, a variable left with no reads (whether it started that way or
//     rule two just cleared it) has its writes cleared as well, since nothing
//     downstream needs the value to cross any edge.
func preprocessForBlockArgs(rw *ReadsWrites) *ReadsWrites {
	reads := make(map[BasicBlockID]*intsets.Sparse, len(rw.Reads))
	for id, s := range rw.Reads {
		var clone intsets.Sparse
		clone.Copy(s)
		reads[id] = &clone
	}
	writes := make(map[BasicBlockID]*intsets.Sparse, len(rw.Writes))
	for id, s := range rw.Writes {
		var clone intsets.Sparse
		clone.Copy(s)
		writes[id] = &clone
	}

	readingBlocks := make(map[int][]BasicBlockID)
	for id, s := range reads {
		for _, varID := range s.AppendTo(nil) {
			readingBlocks[varID] = append(readingBlocks[varID], id)
		}
	}
	writingBlocks := make(map[int][]BasicBlockID)
	for id, s := range writes {
		for _, varID := range s.AppendTo(nil) {
			writingBlocks[varID] = append(writingBlocks[varID], id)
		}
	}

	seen := make(map[int]bool, len(rw.vars))
	for varID := range readingBlocks {
		seen[varID] = true
	}
	for varID := range writingBlocks {
		seen[varID] = true
	}

	for varID := range seen {
		rBlocks := readingBlocks[varID]
		wBlocks := writingBlocks[varID]

		clearedBoth := false
		if len(rBlocks) == 1 && len(wBlocks) == 1 && rBlocks[0] == wBlocks[0] {
			reads[rBlocks[0]].Remove(varID)
			writes[wBlocks[0]].Remove(varID)
			clearedBoth = true
		} else if len(wBlocks) == 0 {
			for _, bid := range rBlocks {
				reads[bid].Remove(varID)
			}
			rBlocks = nil
		}
		if !clearedBoth && len(rBlocks) == 0 {
			for _, bid := range wBlocks {
				writes[bid].Remove(varID)
			}
		}
	}

	return &ReadsWrites{Reads: reads, Writes: writes, vars: rw.vars}
}

// computeUpperBounds1 is the forward-dependency fixpoint: a block's bound
// includes its own reads plus whatever its successors' bounds settle on.
// ForwardsTopoSort is post-order, so walking it front to back visits
// successors before predecessors and converges in as few passes as possible;
// looping constructs still need multiple passes regardless.
//
// Scratch is indexed by block id and sized to the arena high-water mark, not
// the live block count: Simplify leaves holes in the id space.
func computeUpperBounds1(c *CFG, rw *ReadsWrites) []*intsets.Sparse {
	ub := make([]*intsets.Sparse, c.maxID())
	for _, bb := range c.blocks {
		ub[bb.id] = &intsets.Sparse{}
	}

	changed := true
	for changed {
		changed = false
		for _, bb := range c.ForwardsTopoSort {
			if bb == c.dead {
				continue
			}
			cur := ub[bb.id]
			var next intsets.Sparse
			if reads, ok := rw.Reads[bb.id]; ok {
				next.UnionWith(reads)
			}
			if bb.Exit.Thenb != nil && bb.Exit.Thenb != c.dead {
				next.UnionWith(ub[bb.Exit.Thenb.id])
			}
			if bb.Exit.Elseb != nil && bb.Exit.Elseb != c.dead && bb.Exit.Elseb != bb.Exit.Thenb {
				next.UnionWith(ub[bb.Exit.Elseb.id])
			}
			if !next.Equals(cur) {
				ub[bb.id] = &next
				changed = true
			}
		}
	}
	return ub
}

// computeUpperBounds2 is the backward-dependency fixpoint: a block's bound
// includes its own writes plus whatever its predecessors' bounds settle on.
// BackwardsTopoSort is built so that (outside of loop bodies) a block's
// predecessors already precede it in the array, so iterating it front to
// back converges quickly.
func computeUpperBounds2(c *CFG, rw *ReadsWrites) []*intsets.Sparse {
	ub := make([]*intsets.Sparse, c.maxID())
	for _, bb := range c.blocks {
		ub[bb.id] = &intsets.Sparse{}
	}

	changed := true
	for changed {
		changed = false
		for _, bb := range c.BackwardsTopoSort {
			if bb == c.dead {
				continue
			}
			cur := ub[bb.id]
			var next intsets.Sparse
			if writes, ok := rw.Writes[bb.id]; ok {
				next.UnionWith(writes)
			}
			for _, pred := range bb.BackEdges {
				if pred == c.dead {
					continue
				}
				next.UnionWith(ub[pred.id])
			}
			if !next.Equals(cur) {
				ub[bb.id] = &next
				changed = true
			}
		}
	}
	return ub
}
