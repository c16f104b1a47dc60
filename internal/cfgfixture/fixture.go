// Package cfgfixture loads an already-lowered, JSON-encoded per-method CFG
// from disk, standing in for whatever the (out-of-scope) Vela frontend would
// otherwise hand the core. It exists solely so cmd/typecfgfmt has something
// to read: nothing in internal/cfg imports this package.
package cfgfixture

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vela-lang/typecfg/internal/cfg"
)

// Doc is the on-disk shape of one method's unoptimized CFG. BlockID values
// are scoped to the fixture file only; Load renumbers them through the real
// arena ids cfg.Builder hands out.
type Doc struct {
	Entry  int        `json:"entry"`
	Dead   int        `json:"dead"`
	Blocks []BlockDoc `json:"blocks"`
}

// BlockDoc describes one basic block. Thenb/Elseb reference other blocks by
// their fixture-local BlockID (or Entry/Dead). Cond is omitted for an
// unconditional exit, in which case Thenb must equal Elseb.
type BlockDoc struct {
	ID         int          `json:"id"`
	OuterLoops int          `json:"outerLoops"`
	Exprs      []BindingDoc `json:"exprs"`
	Cond       *VarDoc      `json:"cond,omitempty"`
	Thenb      int          `json:"thenb"`
	Elseb      int          `json:"elseb"`
}

// BindingDoc is one (bind, instruction) pair. Op selects which of the
// optional fields below are meaningful; see decodeInstruction.
type BindingDoc struct {
	Bind VarDoc  `json:"bind"`
	Op   string  `json:"op"`
	What *VarDoc `json:"what,omitempty"`

	Recv *VarDoc  `json:"recv,omitempty"`
	Name string   `json:"name,omitempty"`
	Args []VarDoc `json:"args,omitempty"`

	Class string `json:"class,omitempty"`

	BoolValue   bool    `json:"boolValue,omitempty"`
	StringValue string  `json:"stringValue,omitempty"`
	IntValue    int64   `json:"intValue,omitempty"`
	FloatValue  float64 `json:"floatValue,omitempty"`
	Index       int     `json:"index,omitempty"`
}

// VarDoc is the on-disk shape of a LocalVariable: a stable id, its display
// name, and the two predicates the core consults directly.
type VarDoc struct {
	ID             int    `json:"id"`
	Text           string `json:"text"`
	Synthetic      bool   `json:"synthetic,omitempty"`
	AliasForGlobal bool   `json:"aliasForGlobal,omitempty"`
}

func (d VarDoc) toLocalVariable() cfg.LocalVariable {
	name := cfg.Name{ID: d.ID, Text: d.Text}
	if d.Synthetic {
		return cfg.NewSyntheticTemporary(name)
	}
	return cfg.NewSourceVariable(name, d.AliasForGlobal)
}

// Decode parses r as a Doc without building a CFG from it, for callers that
// want to inspect or round-trip the fixture itself.
func Decode(r io.Reader) (*Doc, error) {
	var doc Doc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cfgfixture: decode: %w", err)
	}
	return &doc, nil
}

// Load reads a Doc from r and realizes it into a live *cfg.CFG via
// cfg.Builder, exactly as a frontend lowering pass would.
func Load(r io.Reader) (*cfg.CFG, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

// Build realizes doc into a live *cfg.CFG.
func Build(doc *Doc) (*cfg.CFG, error) {
	builder := cfg.NewBuilder()
	cfgv := builder.Finish()

	blocksByFixtureID := make(map[int]*cfg.BasicBlock, len(doc.Blocks))
	blocksByFixtureID[doc.Entry] = cfgv.Entry()
	blocksByFixtureID[doc.Dead] = cfgv.DeadBlock()

	for _, bd := range doc.Blocks {
		if bd.ID == doc.Entry || bd.ID == doc.Dead {
			continue
		}
		blocksByFixtureID[bd.ID] = builder.AllocateBlock(bd.OuterLoops)
	}

	lookup := func(id int) (*cfg.BasicBlock, error) {
		bb, ok := blocksByFixtureID[id]
		if !ok {
			return nil, fmt.Errorf("cfgfixture: block %d referenced but never declared", id)
		}
		return bb, nil
	}

	for _, bd := range doc.Blocks {
		bb, err := lookup(bd.ID)
		if err != nil {
			return nil, err
		}
		exprs := make([]cfg.Binding, len(bd.Exprs))
		for i, bind := range bd.Exprs {
			inst, err := decodeInstruction(bind)
			if err != nil {
				return nil, err
			}
			exprs[i] = cfg.Binding{Bind: bind.Bind.toLocalVariable(), Value: inst}
		}
		bb.Exprs = exprs

		thenb, err := lookup(bd.Thenb)
		if err != nil {
			return nil, err
		}
		elseb, err := lookup(bd.Elseb)
		if err != nil {
			return nil, err
		}
		cond := cfg.NoVariable
		if bd.Cond != nil {
			cond = bd.Cond.toLocalVariable()
		}
		builder.SetExit(bb, cond, thenb, elseb)
	}

	return cfgv, nil
}

func decodeInstruction(bind BindingDoc) (cfg.Instruction, error) {
	varsOf := func(vs []VarDoc) []cfg.LocalVariable {
		out := make([]cfg.LocalVariable, len(vs))
		for i, v := range vs {
			out[i] = v.toLocalVariable()
		}
		return out
	}
	optWhat := func() cfg.LocalVariable {
		if bind.What == nil {
			return cfg.NoVariable
		}
		return bind.What.toLocalVariable()
	}
	optRecv := func() cfg.LocalVariable {
		if bind.Recv == nil {
			return cfg.NoVariable
		}
		return bind.Recv.toLocalVariable()
	}

	switch bind.Op {
	case "ident":
		return cfg.Ident{What: optWhat()}, nil
	case "send":
		return cfg.Send{Recv: optRecv(), Name: bind.Name, Args: varsOf(bind.Args)}, nil
	case "return":
		return cfg.Return{What: optWhat()}, nil
	case "new":
		return cfg.New{Class: bind.Class, Args: varsOf(bind.Args)}, nil
	case "boolLit":
		return cfg.BoolLit{Value: bind.BoolValue}, nil
	case "stringLit":
		return cfg.StringLit{Value: bind.StringValue}, nil
	case "symbolLit":
		return cfg.SymbolLit{Value: bind.StringValue}, nil
	case "intLit":
		return cfg.IntLit{Value: bind.IntValue}, nil
	case "floatLit":
		return cfg.FloatLit{Value: bind.FloatValue}, nil
	case "self":
		return cfg.Self{}, nil
	case "loadArg":
		return cfg.LoadArg{Index: bind.Index}, nil
	case "arraySplat":
		return cfg.ArraySplat{What: optWhat()}, nil
	case "hashSplat":
		return cfg.HashSplat{What: optWhat()}, nil
	default:
		return nil, fmt.Errorf("cfgfixture: unknown instruction op %q", bind.Op)
	}
}
