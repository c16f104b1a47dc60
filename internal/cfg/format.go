package cfg

import (
	"fmt"
	"strings"
)

// Format renders the CFG as a human-readable listing, one block per
// section, in construction order. It is meant for debugging and golden-file
// tests, not for any machine-readable purpose.
func (c *CFG) Format() string {
	var sb strings.Builder
	for _, bb := range c.blocks {
		fmt.Fprintf(&sb, "%s", bb)
		if bb == c.entry {
			sb.WriteString(" (entry)")
		}
		if bb == c.dead {
			sb.WriteString(" (dead)")
		}
		if bb.IsLoopHeader() {
			sb.WriteString(" (loop header)")
		}
		fmt.Fprintf(&sb, " outerLoops=%d args=[%s]\n", bb.OuterLoops, formatVars(bb.Args))

		for _, binding := range bb.Exprs {
			fmt.Fprintf(&sb, "  %s = %s\n", binding.Bind, binding.Value)
		}

		if bb.Exit.Unconditional() {
			fmt.Fprintf(&sb, "  goto %s\n", bb.Exit.Thenb)
		} else {
			fmt.Fprintf(&sb, "  if %s then %s else %s\n", bb.Exit.Cond, bb.Exit.Thenb, bb.Exit.Elseb)
		}
	}
	return sb.String()
}
