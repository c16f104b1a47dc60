package cfg

// RemoveDeadAssigns drops any binding whose bind is read nowhere in the
// method, is not an alias for a module-scope global (whose assignment is
// observable beyond the method regardless of whether anything reads it back
// locally), and whose value has no side effect worth keeping for its own
// sake. A binding kept for either of the first two reasons is kept as-is
// even if its value happens to be pure.
func RemoveDeadAssigns(c *CFG, ctx Context, rw *ReadsWrites) {
	readAnywhere := make(map[int]bool)
	for _, reads := range rw.Reads {
		for _, id := range reads.AppendTo(nil) {
			readAnywhere[id] = true
		}
	}

	for _, bb := range c.blocks {
		if len(bb.Exprs) == 0 {
			continue
		}
		kept := bb.Exprs[:0]
		for _, binding := range bb.Exprs {
			if binding.Bind.IsAliasForGlobal(ctx) || readAnywhere[binding.Bind.Name.ID] || !isPure(binding.Value) {
				kept = append(kept, binding)
			}
		}
		bb.Exprs = kept
	}
}
