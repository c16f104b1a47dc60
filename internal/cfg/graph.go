package cfg

const arenaPageSize = 64

// blockArena owns the backing storage for every BasicBlock of one CFG and
// mints their dense ids. Blocks live in fixed-capacity pages so pointers
// handed out stay stable as the graph grows; a block removed from the CFG
// keeps its slot, its id simply becomes a hole in the id space.
type blockArena struct {
	pages  [][]BasicBlock
	nextID BasicBlockID
}

// newBlock carves out storage for one block at the given loop depth and
// stamps the next dense id on it.
func (a *blockArena) newBlock(outerLoops int) *BasicBlock {
	if len(a.pages) == 0 || len(a.pages[len(a.pages)-1]) == arenaPageSize {
		a.pages = append(a.pages, make([]BasicBlock, 0, arenaPageSize))
	}
	page := &a.pages[len(a.pages)-1]
	*page = append(*page, BasicBlock{id: a.nextID, OuterLoops: outerLoops})
	a.nextID++
	return &(*page)[len(*page)-1]
}

// idBound returns one past the largest id the arena has minted. Scratch
// tables indexed by block id are sized to this, never to the live block
// count, because removal leaves holes.
func (a *blockArena) idBound() int { return int(a.nextID) }

// CFG owns every BasicBlock for one method. All cross-references between
// blocks (Exit.Thenb, Exit.Elseb, BackEdges entries, topo-sort entries) are
// non-owning pointers into the arena below.
type CFG struct {
	arena blockArena

	// blocks is the CFG's "owning collection" in construction order. Simplify
	// removes unreachable entries from it; the arena slot backing a removed
	// block is never reclaimed mid-CFG, its id just becomes a hole.
	blocks []*BasicBlock

	entry *BasicBlock
	dead  *BasicBlock

	// ForwardsTopoSort and BackwardsTopoSort are filled in by TopoSort and
	// consumed by Dealias and FillInBlockArguments. Both are empty until Run
	// (or the individual pass functions) have executed.
	ForwardsTopoSort  []*BasicBlock
	BackwardsTopoSort []*BasicBlock

	// MinLoops and MaxLoopWrite are filled in by ComputeMinMaxLoops.
	MinLoops     map[LocalVariable]int
	MaxLoopWrite map[LocalVariable]int
}

// Entry returns the method's single entry block.
func (c *CFG) Entry() *BasicBlock { return c.entry }

// DeadBlock returns the distinguished sink block that unreachable control
// flow (e.g. after an unconditional return) targets.
func (c *CFG) DeadBlock() *BasicBlock { return c.dead }

// Blocks returns the live blocks in construction order. The returned slice
// must not be retained across a call to Simplify, which mutates it in place.
func (c *CFG) Blocks() []*BasicBlock { return c.blocks }

// maxID returns one past the largest BasicBlockID ever handed out by the
// arena: scratch slices indexed by id must be sized to this, since removal
// during Simplify leaves holes so len(c.blocks) undercounts it.
func (c *CFG) maxID() int { return c.arena.idBound() }

// Builder assembles a CFG from scratch. Lowering Vela source into the
// sequence of AllocateBlock/SetExit calls below is the frontend's job and is
// out of scope for this module; Builder exists so tests (and any future
// frontend) have a single, correct way to wire up blocks and back-edges.
type Builder struct {
	cfg *CFG
}

// NewBuilder starts building a fresh CFG whose entry and dead-block sinks
// are allocated immediately: entry and the dead block are always present and
// are never removed by Simplify.
//
// Both come pre-wired: the dead sink loops to itself (it is exempt from the
// back-edge invariant, so no back-edge is recorded for the self loop), and
// entry falls through to dead until the frontend gives it a real exit. A
// traversal over a half-built CFG therefore never dereferences a nil
// terminator.
func NewBuilder() *Builder {
	b := &Builder{cfg: &CFG{}}
	b.cfg.entry = b.AllocateBlock(0)
	b.cfg.dead = b.AllocateBlock(0)
	b.cfg.dead.Exit = Exit{Cond: NoVariable, Thenb: b.cfg.dead, Elseb: b.cfg.dead}
	b.SetExit(b.cfg.entry, NoVariable, b.cfg.dead, b.cfg.dead)
	return b
}

// AllocateBlock creates a new, unlinked BasicBlock at the given loop nesting
// depth. Its Exit is left zero (Thenb == Elseb == nil) until SetExit is
// called.
func (b *Builder) AllocateBlock(outerLoops int) *BasicBlock {
	blk := b.cfg.arena.newBlock(outerLoops)
	b.cfg.blocks = append(b.cfg.blocks, blk)
	return blk
}

// SetExit wires bb's terminator to thenb/elseb (equal for an unconditional
// exit) and records the corresponding back-edges on the targets. cond should
// be NoVariable for an unconditional exit. Rewiring a block that already had
// an exit first scrubs its back-edges from the old targets.
func (b *Builder) SetExit(bb *BasicBlock, cond LocalVariable, thenb, elseb *BasicBlock) {
	if old := bb.Exit; old.Thenb != nil {
		removeBackEdge(old.Thenb, bb)
		if old.Elseb != old.Thenb {
			removeBackEdge(old.Elseb, bb)
		}
	}
	bb.Exit = Exit{Cond: cond, Thenb: thenb, Elseb: elseb}
	addBackEdge(thenb, bb)
	if elseb != thenb {
		addBackEdge(elseb, bb)
	}
}

// Finish returns the constructed CFG. After Finish, Run (or the individual
// pass functions in dependency order) is expected to be called before the
// CFG is handed to downstream dataflow inference.
func (b *Builder) Finish() *CFG {
	return b.cfg
}
