package cfg

// Context is a read-only handle to the symbol table used to mint
// LocalVariable names and answer identity questions about them.
//
// The symbol table itself is a collaborator owned by the frontend lowering
// pass, not by this package. Context exists so that Run's signature matches
// the shape callers expect (a context argument threaded through every pass),
// even though no pass in this package currently needs to call back into it
// -- LocalVariable.IsSyntheticTemporary and LocalVariable.IsAliasForGlobal
// already carry the answers they need.
type Context interface {
	// Method names the method whose CFG is being processed, for logging.
	Method() string
}

// NopContext is a Context that carries no information beyond a method name,
// suitable for tests and for callers who have no symbol table handy.
type NopContext string

// Method implements Context.
func (n NopContext) Method() string { return string(n) }
