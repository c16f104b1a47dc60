package cfg

import (
	"fmt"
	"sort"
)

// blockCallSentinel is the compiler-frontend marker the empty-successor merge
// checks for: a block whose exit condition carries this name is a block-call
// header and is not absorbed into its predecessors even when empty. The
// unique-successor merge does not check it: a header with a single
// predecessor is folded into that predecessor, which takes over its exit.
// Its id sits below the frontend's 0-based id space, so no real variable
// can collide with it.
var blockCallSentinel = Name{ID: -2, Text: "<blockCall>"}

// BlockCall is the exit condition Vela's lowering pass puts on a block-call
// header. It is the one variable Simplify treats specially; see
// isBlockCallHeader.
var BlockCall = LocalVariable{Name: blockCallSentinel}

func isBlockCallHeader(bb *BasicBlock) bool {
	return bb.Exit.Cond.Name == blockCallSentinel
}

// Simplify cleans the graph to a fixpoint: unreachable-block pruning,
// back-edge canonicalization, unconditional-merge collapsing, and then/else
// shortcuts, in that rule order, restarting the block-local pass on every
// match until none fire.
//
// Entry and the dead sink are exempt from removal and from back-edge
// canonicalization; entry's exits still get merged and shortcut like any
// other block's.
func Simplify(c *CFG) {
	sanityCheck(c)
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(c.blocks); i++ {
			bb := c.blocks[i]
			if bb == c.dead {
				continue
			}

			if bb != c.entry {
				if len(bb.BackEdges) == 0 {
					trace("simplify: prune unreachable %s", bb)
					removeUnreachable(c, i)
					i--
					changed = true
					sanityCheck(c)
					continue
				}
				canonicalizeBackEdges(bb)
			}

			thenb, elseb := bb.Exit.Thenb, bb.Exit.Elseb
			if thenb == elseb && thenb != c.dead && thenb != bb {
				if len(thenb.BackEdges) == 1 {
					trace("simplify: merge %s into %s", thenb, bb)
					mergeUniqueSuccessor(bb, thenb)
					changed = true
					sanityCheck(c)
					continue
				}
				if !isBlockCallHeader(thenb) && len(thenb.Exprs) == 0 {
					trace("simplify: absorb empty %s into %s", thenb, bb)
					absorbEmptySuccessor(bb, thenb)
					changed = true
					sanityCheck(c)
					continue
				}
			}

			if shortcutThen(c, bb) {
				trace("simplify: shortcut thenb of %s", bb)
				changed = true
				sanityCheck(c)
				continue
			}
			if shortcutElse(c, bb) {
				trace("simplify: shortcut elseb of %s", bb)
				changed = true
				sanityCheck(c)
				continue
			}
		}
	}
}

func trace(format string, args ...any) {
	if LoggingEnabled {
		fmt.Printf(format+"\n", args...)
	}
}

// removeUnreachable unlinks bb (at index i in c.blocks), which has no
// predecessors and so can never execute, from its successors and drops it
// from the owning collection and both topo-sorts.
func removeUnreachable(c *CFG, i int) {
	bb := c.blocks[i]
	thenb, elseb := bb.Exit.Thenb, bb.Exit.Elseb
	removeBackEdge(thenb, bb)
	if elseb != thenb {
		removeBackEdge(elseb, bb)
	}
	c.blocks = append(c.blocks[:i], c.blocks[i+1:]...)
	c.ForwardsTopoSort = removeBlock(c.ForwardsTopoSort, bb)
	c.BackwardsTopoSort = removeBlock(c.BackwardsTopoSort, bb)
}

func removeBlock(blocks []*BasicBlock, target *BasicBlock) []*BasicBlock {
	out := blocks[:0]
	for _, b := range blocks {
		if b != target {
			out = append(out, b)
		}
	}
	return out
}

// canonicalizeBackEdges sorts by id and drops duplicates, so the unordered
// multiset the frontend produced becomes the canonical ordered,
// deduplicated slice every later pass assumes.
func canonicalizeBackEdges(bb *BasicBlock) {
	edges := bb.BackEdges
	sort.Slice(edges, func(i, j int) bool { return edges[i].id < edges[j].id })
	out := edges[:0]
	for i, e := range edges {
		if i == 0 || e != edges[i-1] {
			out = append(out, e)
		}
	}
	bb.BackEdges = out
}

// mergeUniqueSuccessor absorbs s's bindings and exit into bb wholesale: bb
// is s's only predecessor and reaches it unconditionally.
func mergeUniqueSuccessor(bb, s *BasicBlock) {
	bb.Exprs = append(bb.Exprs, s.Exprs...)
	s.BackEdges = nil
	bb.Exit = s.Exit
	reparent(bb)
}

// absorbEmptySuccessor makes bb jump straight to wherever s jumps: s is
// empty and not a block-call header, so it has nothing to contribute as an
// intermediate hop.
func absorbEmptySuccessor(bb, s *BasicBlock) {
	removeBackEdge(s, bb)
	bb.Exit = s.Exit
	reparent(bb)
}

// reparent adds bb as a back-edge of its (possibly just-replaced) exit
// targets, once even if they coincide.
func reparent(bb *BasicBlock) {
	addBackEdge(bb.Exit.Thenb, bb)
	if bb.Exit.Thenb != bb.Exit.Elseb {
		addBackEdge(bb.Exit.Elseb, bb)
	}
}

// shortcutThen retargets bb past an empty, non-dead, unconditional
// pass-through: if bb's then-target does nothing but jump to some other t,
// bb can jump to t directly.
func shortcutThen(c *CFG, bb *BasicBlock) bool {
	t := bb.Exit.Thenb
	if t == c.dead || len(t.Exprs) != 0 || !t.Exit.Unconditional() {
		return false
	}
	target := t.Exit.Thenb
	if target == t {
		return false
	}
	bb.Exit.Thenb = target
	addBackEdge(target, bb)
	removeBackEdge(t, bb)
	return true
}

// shortcutElse is the symmetric case of shortcutThen for bb.Exit.Elseb.
func shortcutElse(c *CFG, bb *BasicBlock) bool {
	e := bb.Exit.Elseb
	if e == c.dead || len(e.Exprs) != 0 || !e.Exit.Unconditional() {
		return false
	}
	target := e.Exit.Elseb
	if target == e {
		return false
	}
	bb.Exit.Elseb = target
	addBackEdge(target, bb)
	removeBackEdge(e, bb)
	return true
}
