package cfg

import "fmt"

// Run executes the full pipeline over c: simplify the graph shape first,
// derive both topological orders and loop headers from the settled shape,
// then compute reads/writes once and feed that single snapshot to
// block-argument inference and to the two passes that consume it last;
// copy propagation (Dealias) runs in between and does not use it. sink may
// be nil.
func Run(c *CFG, ctx Context, sink MetricsSink) {
	if sink == nil {
		sink = NopMetricsSink{}
	}

	Simplify(c)
	TopoSort(c)
	MarkLoopHeaders(c)

	rw := ComputeReadsAndWrites(c)
	for _, reads := range rw.Reads {
		histogramInc(sink, "cfgbuilder.readsPerBlock", reads.Len())
	}
	for _, writes := range rw.Writes {
		histogramInc(sink, "cfgbuilder.writesPerBlock", writes.Len())
	}

	FillInBlockArguments(c, rw)
	for _, bb := range c.blocks {
		histogramInc(sink, "cfgbuilder.blockArguments", len(bb.Args))
	}

	Dealias(c, ctx)
	ComputeMinMaxLoops(c, rw)
	RemoveDeadAssigns(c, ctx, rw)

	if PrintCFG {
		fmt.Printf("%s: optimized cfg:\n%s", ctx.Method(), c.Format())
	}
}
