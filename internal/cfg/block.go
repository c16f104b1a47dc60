package cfg

import "fmt"

// BasicBlockID is a dense, arena-stable identifier for a BasicBlock, never
// reused within the lifetime of a CFG even after the block is removed by
// Simplify.
type BasicBlockID int

// blockFlags is a bit-set; see the flag* consts below.
type blockFlags uint8

const (
	// flagLoopHeader marks a block that is the target of a back-edge from a
	// strictly shallower loop depth; see MarkLoopHeaders.
	flagLoopHeader blockFlags = 1 << iota
	// flagForwardVisited is sticky across one forward topo-sort pass.
	flagForwardVisited
	// flagBackwardVisited is sticky across one backward topo-sort pass.
	flagBackwardVisited
)

// Binding assigns the result of one Instruction to one LocalVariable.
type Binding struct {
	Bind  LocalVariable
	Value Instruction
}

// Exit is a basic block's structured two-way terminator. If Thenb == Elseb
// the exit is unconditional and Cond is meaningless (by convention it is
// NoVariable).
type Exit struct {
	Cond  LocalVariable
	Thenb *BasicBlock
	Elseb *BasicBlock
}

// Unconditional reports whether both exit targets coincide.
func (e Exit) Unconditional() bool {
	return e.Thenb == e.Elseb
}

// BasicBlock is a maximal straight-line sequence of Bindings ending in one
// structured two-way Exit. BasicBlocks are owned by the CFG's blockArena;
// every reference to one from elsewhere (Exit.Thenb, Exit.Elseb, BackEdges
// entries, topo-sort entries) is non-owning.
type BasicBlock struct {
	id BasicBlockID

	Exprs []Binding
	Exit  Exit

	// BackEdges holds every predecessor of this block, i.e. every block
	// whose Exit.Thenb or Exit.Elseb points here. Despite the name, these
	// are not exclusively loop back-edges, and nothing here marks which ones
	// are; loops are recognised by comparing OuterLoops (see
	// MarkLoopHeaders). Simplify keeps this sorted by
	// predecessor id and deduplicated; before that it is only an unordered
	// multiset.
	BackEdges []*BasicBlock

	// OuterLoops is the loop nesting depth at which this block was created,
	// fixed for the life of the block.
	OuterLoops int

	// Args are this block's formal parameters: every variable alive across
	// the edge into this block must appear here, filled in by
	// FillInBlockArguments. Empty until then.
	Args []LocalVariable

	flags blockFlags
}

// ID returns the block's dense, stable identifier.
func (b *BasicBlock) ID() BasicBlockID { return b.id }

// IsLoopHeader reports whether MarkLoopHeaders marked this block as a loop
// header.
func (b *BasicBlock) IsLoopHeader() bool { return b.flags&flagLoopHeader != 0 }

func (b *BasicBlock) forwardVisited() bool   { return b.flags&flagForwardVisited != 0 }
func (b *BasicBlock) backwardVisited() bool  { return b.flags&flagBackwardVisited != 0 }
func (b *BasicBlock) setForwardVisited()     { b.flags |= flagForwardVisited }
func (b *BasicBlock) setBackwardVisited()    { b.flags |= flagBackwardVisited }
func (b *BasicBlock) clearLoopHeader()       { b.flags &^= flagLoopHeader }
func (b *BasicBlock) markLoopHeader()        { b.flags |= flagLoopHeader }

func (b *BasicBlock) String() string {
	return fmt.Sprintf("bb%d", b.id)
}

// removeBackEdge deletes every occurrence of pred from b.BackEdges, as used
// by Simplify's unreachable prune and shortcut rules.
func removeBackEdge(b, pred *BasicBlock) {
	out := b.BackEdges[:0]
	for _, p := range b.BackEdges {
		if p != pred {
			out = append(out, p)
		}
	}
	b.BackEdges = out
}

// addBackEdge records pred as a predecessor of b.
func addBackEdge(b, pred *BasicBlock) {
	b.BackEdges = append(b.BackEdges, pred)
}
