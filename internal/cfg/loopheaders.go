package cfg

// MarkLoopHeaders flags every loop header: a block is one if any of its
// predecessors was created at a strictly shallower loop nesting depth than
// the block itself. That predecessor's edge enters the loop from outside;
// the edge that closes the loop comes from a same-or-deeper predecessor.
func MarkLoopHeaders(c *CFG) {
	for _, bb := range c.blocks {
		bb.clearLoopHeader()
		for _, pred := range bb.BackEdges {
			if pred.OuterLoops < bb.OuterLoops {
				bb.markLoopHeader()
				break
			}
		}
	}
}
