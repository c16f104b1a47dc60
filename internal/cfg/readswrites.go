package cfg

import "golang.org/x/tools/container/intsets"

// ReadsWrites is the per-block read/write variable-id table
// ComputeReadsAndWrites produces and block-argument inference, min/max loop
// accounting and dead-assignment removal read back.
//
// Sets are keyed by LocalVariable.Name.ID rather than by LocalVariable
// itself, since intsets.Sparse only stores ints; vars recovers the
// LocalVariable for a given id for callers that need to reconstruct one.
type ReadsWrites struct {
	Reads  map[BasicBlockID]*intsets.Sparse
	Writes map[BasicBlockID]*intsets.Sparse
	vars   map[int]LocalVariable
}

// variable looks up the LocalVariable that minted id, panicking if the scan
// never saw it -- every id reaching this map came from a Reads or Writes
// insertion below, which always records the variable alongside its id.
func (rw *ReadsWrites) variable(id int) LocalVariable {
	v, ok := rw.vars[id]
	if !ok {
		panic("BUG: readswrites: unknown variable id")
	}
	return v
}

func (rw *ReadsWrites) remember(v LocalVariable) {
	if !v.Exists() {
		return
	}
	rw.vars[v.Name.ID] = v
}

func (rw *ReadsWrites) readsOf(id BasicBlockID) *intsets.Sparse {
	s, ok := rw.Reads[id]
	if !ok {
		s = &intsets.Sparse{}
		rw.Reads[id] = s
	}
	return s
}

func (rw *ReadsWrites) writesOf(id BasicBlockID) *intsets.Sparse {
	s, ok := rw.Writes[id]
	if !ok {
		s = &intsets.Sparse{}
		rw.Writes[id] = s
	}
	return s
}

func (rw *ReadsWrites) addRead(id BasicBlockID, v LocalVariable) {
	if !v.Exists() {
		return
	}
	rw.remember(v)
	rw.readsOf(id).Insert(v.Name.ID)
}

func (rw *ReadsWrites) addWrite(id BasicBlockID, v LocalVariable) {
	if !v.Exists() {
		return
	}
	rw.remember(v)
	rw.writesOf(id).Insert(v.Name.ID)
}

// ComputeReadsAndWrites makes a single linear pass over every block's
// bindings and exit, classifying each LocalVariable occurrence as a read (an
// rvalue occurrence) or a write (the bind side of a Binding). A variable
// that is both read and written within the same block appears in both sets;
// order within the block does not matter to any downstream consumer.
func ComputeReadsAndWrites(c *CFG) *ReadsWrites {
	rw := &ReadsWrites{
		Reads:  make(map[BasicBlockID]*intsets.Sparse),
		Writes: make(map[BasicBlockID]*intsets.Sparse),
		vars:   make(map[int]LocalVariable),
	}
	for _, bb := range c.blocks {
		id := bb.id
		for _, binding := range bb.Exprs {
			for _, v := range instructionReads(binding.Value) {
				rw.addRead(id, v)
			}
			rw.addWrite(id, binding.Bind)
		}
		rw.addRead(id, bb.Exit.Cond)
	}
	return rw
}

// instructionReads returns every LocalVariable value reads as an rvalue.
func instructionReads(value Instruction) []LocalVariable {
	switch v := value.(type) {
	case Ident:
		return []LocalVariable{v.What}
	case Send:
		out := make([]LocalVariable, 0, len(v.Args)+1)
		out = append(out, v.Recv)
		out = append(out, v.Args...)
		return out
	case Return:
		return []LocalVariable{v.What}
	case New:
		return v.Args
	case ArraySplat:
		return []LocalVariable{v.What}
	case HashSplat:
		return []LocalVariable{v.What}
	default:
		// BoolLit, StringLit, SymbolLit, IntLit, FloatLit, Self, LoadArg read
		// nothing.
		return nil
	}
}
