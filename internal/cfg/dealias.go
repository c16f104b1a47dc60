package cfg

// Dealias makes a single pass over BackwardsTopoSort that propagates simple
// copies (bind := what) through joins, rewriting later reads of bind
// to read what directly when every predecessor agrees on the substitution.
//
// At a join, a substitution survives only if every predecessor's own
// outgoing alias table maps the same source variable to the same target.
// For a loop header whose back-edge hasn't been visited yet (it comes later
// in BackwardsTopoSort), that predecessor's table is still empty, so the
// intersection drops everything -- headers simply never get aliases through
// their closing edge, which is the conservative answer and needs no second
// pass to correct.
func Dealias(c *CFG, ctx Context) {
	// Indexed by block id, sized to the arena high-water mark: Simplify leaves
	// holes in the id space, so len(c.blocks) undercounts.
	outAliases := make([]map[Name]LocalVariable, c.maxID())

	for _, bb := range c.BackwardsTopoSort {
		if bb == c.dead {
			continue
		}
		current := seedAliases(bb, outAliases)

		for i := range bb.Exprs {
			binding := &bb.Exprs[i]

			if ident, ok := binding.Value.(Ident); ok {
				ident.What = maybeDealias(ident.What, ctx, current)
				binding.Value = ident
			}

			// Invalidate records made stale by this binding: bind is being
			// redefined, so anything known to be a copy of it no longer is.
			bindName := binding.Bind.Name
			for k, v := range current {
				if v.Name == bindName {
					delete(current, k)
				}
			}

			binding.Value = dealiasInstruction(binding.Value, ctx, current)

			if ident, ok := binding.Value.(Ident); ok {
				current[bindName] = ident.What
			}
		}

		if bb.Exit.Cond.Exists() {
			bb.Exit.Cond = maybeDealias(bb.Exit.Cond, ctx, current)
		}
		outAliases[bb.id] = current
	}
}

func seedAliases(bb *BasicBlock, outAliases []map[Name]LocalVariable) map[Name]LocalVariable {
	if len(bb.BackEdges) == 0 {
		return make(map[Name]LocalVariable)
	}

	seed := outAliases[bb.BackEdges[0].id]
	current := make(map[Name]LocalVariable, len(seed))
	for k, v := range seed {
		current[k] = v
	}

	for _, pred := range bb.BackEdges[1:] {
		predAliases := outAliases[pred.id]
		for k, v := range current {
			if got, ok := predAliases[k]; !ok || got != v {
				delete(current, k)
			}
		}
	}
	return current
}

// maybeDealias returns the substitution recorded for what if what is a
// compiler-minted temporary with one on file, else what unchanged. Only
// synthetic temporaries are ever substituted: a programmer-named variable
// keeps its identity through the CFG even if it happens to alias another.
func maybeDealias(what LocalVariable, ctx Context, current map[Name]LocalVariable) LocalVariable {
	if !what.Exists() || !what.IsSyntheticTemporary(ctx) {
		return what
	}
	if v, ok := current[what.Name]; ok {
		return v
	}
	return what
}

// dealiasInstruction rewrites the rvalue operands of the three variants that
// carry them past a binding boundary: Ident.What, Send.Recv/Args, and
// Return.What. Everything else is returned unchanged.
func dealiasInstruction(value Instruction, ctx Context, current map[Name]LocalVariable) Instruction {
	switch v := value.(type) {
	case Ident:
		v.What = maybeDealias(v.What, ctx, current)
		return v
	case Send:
		v.Recv = maybeDealias(v.Recv, ctx, current)
		v.Args = dealiasAll(v.Args, ctx, current)
		return v
	case Return:
		v.What = maybeDealias(v.What, ctx, current)
		return v
	default:
		return value
	}
}

func dealiasAll(vs []LocalVariable, ctx Context, current map[Name]LocalVariable) []LocalVariable {
	if len(vs) == 0 {
		return vs
	}
	out := make([]LocalVariable, len(vs))
	for i, v := range vs {
		out[i] = maybeDealias(v, ctx, current)
	}
	return out
}
