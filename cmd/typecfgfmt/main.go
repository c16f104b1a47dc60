// Command typecfgfmt loads an already-lowered, JSON-encoded per-method CFG
// fixture, runs the full construction-and-optimization pipeline over it, and
// prints the result -- either as the human-readable listing Format()
// produces, or (with -json) as a JSON-encoded dump of the optimized graph.
//
// It does not parse Vela source: the fixture format is the already-lowered
// per-method IR, standing in for whatever the frontend would otherwise hand
// the core.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vela-lang/typecfg/internal/cfg"
	"github.com/vela-lang/typecfg/internal/cfgfixture"
)

func main() {
	doMain(os.Args[1:], os.Stdout, os.Stderr, os.Exit)
}

// doMain is separated from main for the purpose of unit testing.
func doMain(args []string, stdOut, stdErr io.Writer, exit func(code int)) {
	flags := flag.NewFlagSet("typecfgfmt", flag.ContinueOnError)
	flags.SetOutput(stdErr)

	var asJSON bool
	flags.BoolVar(&asJSON, "json", false, "print the optimized CFG as JSON instead of the text listing")

	if err := flags.Parse(args); err != nil {
		exit(2)
		return
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(stdErr, "usage: typecfgfmt [-json] <fixture.json>")
		exit(2)
		return
	}

	f, err := os.Open(flags.Arg(0))
	if err != nil {
		fmt.Fprintln(stdErr, err)
		exit(1)
		return
	}
	defer f.Close()

	c, err := cfgfixture.Load(f)
	if err != nil {
		fmt.Fprintln(stdErr, err)
		exit(1)
		return
	}

	cfg.Run(c, cfg.NopContext(flags.Arg(0)), nil)

	if asJSON {
		printJSON(stdOut, c)
	} else {
		fmt.Fprint(stdOut, c.Format())
	}
	exit(0)
}

// blockSummary is the JSON shape printed by -json: enough to diff two runs
// of the pipeline in a golden-file test without depending on cfg's internal
// field layout.
type blockSummary struct {
	ID         int      `json:"id"`
	OuterLoops int      `json:"outerLoops"`
	LoopHeader bool     `json:"loopHeader"`
	Args       []string `json:"args"`
	Exprs      []string `json:"exprs"`
	Exit       string   `json:"exit"`
}

func printJSON(w io.Writer, c *cfg.CFG) {
	summaries := make([]blockSummary, 0, len(c.Blocks()))
	for _, bb := range c.Blocks() {
		s := blockSummary{
			ID:         int(bb.ID()),
			OuterLoops: bb.OuterLoops,
			LoopHeader: bb.IsLoopHeader(),
		}
		for _, a := range bb.Args {
			s.Args = append(s.Args, a.String())
		}
		for _, binding := range bb.Exprs {
			s.Exprs = append(s.Exprs, binding.Bind.String()+" = "+binding.Value.String())
		}
		if bb.Exit.Unconditional() {
			s.Exit = "goto " + bb.Exit.Thenb.String()
		} else {
			s.Exit = "if " + bb.Exit.Cond.String() + " then " + bb.Exit.Thenb.String() + " else " + bb.Exit.Elseb.String()
		}
		summaries = append(summaries, s)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(summaries)
}
