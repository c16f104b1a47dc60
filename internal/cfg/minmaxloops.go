package cfg

// ComputeMinMaxLoops finds, for every variable, the shallowest loop nesting
// depth it is read at and the deepest loop nesting depth it is written at.
//
// Reads are processed first and always win the minimum: a write at a
// shallower depth than every read is not allowed to lower MinLoops, since a
// variable is only interesting to loop-invariant motion to the extent
// something downstream actually reads it there. A variable never read at all
// still gets a MinLoops entry, seeded from its shallowest write, so callers
// don't have to special-case "write-only" variables.
func ComputeMinMaxLoops(c *CFG, rw *ReadsWrites) {
	minLoops := make(map[LocalVariable]int)
	maxLoopWrite := make(map[LocalVariable]int)

	for _, bb := range c.blocks {
		reads, ok := rw.Reads[bb.id]
		if !ok {
			continue
		}
		for _, id := range reads.AppendTo(nil) {
			v := rw.variable(id)
			if cur, ok := minLoops[v]; !ok || bb.OuterLoops < cur {
				minLoops[v] = bb.OuterLoops
			}
		}
	}

	// seededByWrite tracks minimums that came from the write scan below, so
	// a later, shallower write can still lower them; a minimum derived from
	// the read scan above is never lowered by a write.
	seededByWrite := make(map[LocalVariable]bool)
	for _, bb := range c.blocks {
		writes, ok := rw.Writes[bb.id]
		if !ok {
			continue
		}
		for _, id := range writes.AppendTo(nil) {
			v := rw.variable(id)
			if cur, ok := minLoops[v]; !ok {
				minLoops[v] = bb.OuterLoops
				seededByWrite[v] = true
			} else if seededByWrite[v] && bb.OuterLoops < cur {
				minLoops[v] = bb.OuterLoops
			}
			if cur, ok := maxLoopWrite[v]; !ok || bb.OuterLoops > cur {
				maxLoopWrite[v] = bb.OuterLoops
			}
		}
	}

	c.MinLoops = minLoops
	c.MaxLoopWrite = maxLoopWrite
}
