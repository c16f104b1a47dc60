package cfg

import "fmt"

// Name is a stable, dense identifier for a LocalVariable, used to order
// variables deterministically (block arguments are sorted by Name.ID, never
// by map iteration order).
type Name struct {
	ID   int
	Text string
}

// LocalVariable identifies one method-local variable. Two LocalVariable
// values with the same Name refer to the same variable.
//
// The symbol table that mints these (and answers questions like "was this
// name ever referenced at module scope") lives outside this module (see
// Context); LocalVariable caches the two predicates the core needs directly
// on the value so that passes never have to reach back into that table.
type LocalVariable struct {
	Name Name

	// synthetic is true for temporaries minted by the frontend lowering
	// pass rather than written by the Vela programmer.
	synthetic bool

	// aliasForGlobal is true for variables that shadow a module-scope name;
	// assignments to them are visible beyond the method and must never be
	// eliminated as dead (see RemoveDeadAssigns).
	aliasForGlobal bool
}

// NoVariable is the "does-not-exist" sentinel used for Exit.Cond on an
// unconditional exit.
var NoVariable = LocalVariable{Name: Name{ID: -1, Text: ""}}

// NewSyntheticTemporary returns a LocalVariable representing a compiler-
// minted temporary with the given Name.
func NewSyntheticTemporary(n Name) LocalVariable {
	return LocalVariable{Name: n, synthetic: true}
}

// NewSourceVariable returns a LocalVariable representing a variable that
// appeared in the Vela source, optionally aliasing a module-scope global.
func NewSourceVariable(n Name, aliasForGlobal bool) LocalVariable {
	return LocalVariable{Name: n, aliasForGlobal: aliasForGlobal}
}

// Exists reports whether this is a real variable, as opposed to NoVariable.
func (v LocalVariable) Exists() bool {
	return v.Name.ID >= 0
}

// IsSyntheticTemporary reports whether v was minted by the frontend rather
// than written by the programmer. ctx is accepted so callers holding a live
// Context can double check against the symbol table directly; the passes in
// this package never need to, since the bit is cached on the value.
func (v LocalVariable) IsSyntheticTemporary(ctx Context) bool {
	_ = ctx
	return v.synthetic
}

// IsAliasForGlobal reports whether v shadows a module-scope name, meaning an
// assignment to it is observable beyond the method.
func (v LocalVariable) IsAliasForGlobal(ctx Context) bool {
	_ = ctx
	return v.aliasForGlobal
}

func (v LocalVariable) String() string {
	if !v.Exists() {
		if v.Name.Text != "" {
			return v.Name.Text
		}
		return "<novar>"
	}
	if v.Name.Text != "" {
		return v.Name.Text
	}
	return fmt.Sprintf("%%%d", v.Name.ID)
}
