package cfg

import "fmt"

// Instruction is the right-hand side of a Binding. It is a closed sum type:
// every concrete variant below implements isInstruction. Switches over
// Instruction in this package name the variants they act on and send the
// rest to a default branch; neither the compiler nor go vet checks them for
// exhaustiveness.
type Instruction interface {
	isInstruction()
	// String returns a short debug rendering used by Format.
	String() string
}

// Ident is a pure copy: bind := what. This is the only variant Dealias ever
// records substitutions from.
type Ident struct{ What LocalVariable }

// Send is a method call: bind := recv.name(args...). Always side-effecting,
// so RemoveDeadAssigns never removes it even when bind is unread.
type Send struct {
	Recv LocalVariable
	Name string
	Args []LocalVariable
}

// Return is a method return: return what. Always side-effecting (it's a
// control transfer), so RemoveDeadAssigns never removes it.
type Return struct{ What LocalVariable }

// New represents object instantiation (bind := new Klass(args...)). Always
// side-effecting, so RemoveDeadAssigns never eliminates it even when bind is
// unread; Vela's lowering pass (out of scope here) is the only emitter of
// this variant today.
type New struct {
	Class string
	Args  []LocalVariable
}

// BoolLit, StringLit, SymbolLit, IntLit, FloatLit are side-effect-free
// literal producers.
type (
	BoolLit   struct{ Value bool }
	StringLit struct{ Value string }
	SymbolLit struct{ Value string }
	IntLit    struct{ Value int64 }
	FloatLit  struct{ Value float64 }
)

// Self reads the receiver of the enclosing method.
type Self struct{}

// LoadArg reads the i-th formal parameter of the enclosing method.
type LoadArg struct{ Index int }

// ArraySplat and HashSplat expand what into an array/hash literal element.
type (
	ArraySplat struct{ What LocalVariable }
	HashSplat  struct{ What LocalVariable }
)

func (Ident) isInstruction()      {}
func (Send) isInstruction()       {}
func (Return) isInstruction()     {}
func (New) isInstruction()        {}
func (BoolLit) isInstruction()    {}
func (StringLit) isInstruction()  {}
func (SymbolLit) isInstruction()  {}
func (IntLit) isInstruction()     {}
func (FloatLit) isInstruction()   {}
func (Self) isInstruction()       {}
func (LoadArg) isInstruction()    {}
func (ArraySplat) isInstruction() {}
func (HashSplat) isInstruction()  {}

func (i Ident) String() string  { return i.What.String() }
func (s Send) String() string {
	return fmt.Sprintf("%s.%s(%s)", s.Recv, s.Name, formatVars(s.Args))
}
func (r Return) String() string { return "return " + r.What.String() }
func (n New) String() string    { return fmt.Sprintf("new %s(%s)", n.Class, formatVars(n.Args)) }
func (b BoolLit) String() string   { return fmt.Sprintf("%t", b.Value) }
func (s StringLit) String() string { return fmt.Sprintf("%q", s.Value) }
func (s SymbolLit) String() string { return ":" + s.Value }
func (i IntLit) String() string    { return fmt.Sprintf("%d", i.Value) }
func (f FloatLit) String() string  { return fmt.Sprintf("%g", f.Value) }
func (Self) String() string        { return "self" }
func (l LoadArg) String() string   { return fmt.Sprintf("loadArg(%d)", l.Index) }
func (a ArraySplat) String() string { return "*" + a.What.String() }
func (h HashSplat) String() string  { return "**" + h.What.String() }

func formatVars(vs []LocalVariable) string {
	s := ""
	for i, v := range vs {
		if i > 0 {
			s += ", "
		}
		s += v.String()
	}
	return s
}

// isPure reports whether value may be elided when its result is never read:
// Ident, ArraySplat, HashSplat, and the seven side-effect-free producers.
// Send, Return, and New are impure and always kept.
func isPure(value Instruction) bool {
	switch value.(type) {
	case Ident, ArraySplat, HashSplat, BoolLit, StringLit, SymbolLit, IntLit, FloatLit, Self, LoadArg:
		return true
	default:
		return false
	}
}
