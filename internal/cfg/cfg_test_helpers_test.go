package cfg

// Shared scaffolding for table-driven CFG tests: a v(name) helper for
// terse LocalVariable construction, and a tiny graph DSL used by the
// toposort suite to build small hand-specified CFGs without reinventing
// Builder boilerplate.

var nextTestID int

// v returns a fresh, named, non-synthetic LocalVariable. Tests that need a
// synthetic temporary call vsynth instead.
func v(name string) LocalVariable {
	nextTestID++
	return NewSourceVariable(Name{ID: nextTestID, Text: name}, false)
}

func vsynth(name string) LocalVariable {
	nextTestID++
	return NewSyntheticTemporary(Name{ID: nextTestID, Text: name})
}

func vglobal(name string) LocalVariable {
	nextTestID++
	return NewSourceVariable(Name{ID: nextTestID, Text: name}, true)
}

// testGraph describes a CFG by edges: edges[i] gives the successor indices
// for synthetic block i (both entries equal for an unconditional exit).
// Index 0 always denotes the CFG's real entry block and testDead always
// denotes its real dead block; every other index gets a freshly allocated
// block. edges must have an entry for every index it references, including
// 0, so entry's own exit gets wired.
type testGraph struct {
	edges      map[int][2]int
	outerLoops map[int]int // defaults to 0
	exprs      map[int][]Binding
	cond       map[int]LocalVariable
}

const testDead = -1

// buildTestCFG realizes a testGraph into a real CFG via Builder, returning
// the CFG and a lookup from the graph's synthetic indices (plus 0 and
// testDead) to the corresponding blocks.
func buildTestCFG(g testGraph) (*CFG, map[int]*BasicBlock) {
	b := NewBuilder()
	c := b.Finish()
	blocks := map[int]*BasicBlock{0: c.Entry(), testDead: c.DeadBlock()}

	for i := range g.edges {
		if i == 0 || i == testDead {
			continue
		}
		blocks[i] = b.AllocateBlock(g.outerLoops[i])
	}
	for i, exprs := range g.exprs {
		blocks[i].Exprs = exprs
	}
	for i, succs := range g.edges {
		cond := g.cond[i]
		b.SetExit(blocks[i], cond, blocks[succs[0]], blocks[succs[1]])
	}
	return c, blocks
}
