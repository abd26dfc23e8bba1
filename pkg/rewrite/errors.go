package rewrite

// Common error messages
const (
	ErrConstantReassigned = "cannot assign to constant %q"
	ErrDirectGoto         = "goto is not allowed, use a labelled break or continue"
)
