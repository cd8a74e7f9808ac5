// Package interp is the top-level program driver: it owns the global
// scope, installs every registered builtin into it, and runs a parsed
// program's statements in order. Individual node evaluation lives on the
// AST nodes themselves (internal/lasast); this package is the thin strip
// above that which a CLI or REPL actually calls.
package interp

import (
	"las/internal/lasast"
	"las/internal/lasrr"
	"las/internal/scope"
)

// New builds a fresh global scope holding every builtin registered so far
// in internal/lasast's registry (packages register theirs from their own
// init() functions).
func New() *scope.Stack {
	s := scope.New()
	lasast.InstallBuiltins(s)
	return s
}

// Run executes a parsed program's top-level statements against s in
// order. A break, continue, or return reaching the top level (outside
// any loop or function body) is a program error, not a silent no-op:
// each becomes the corresponding lasrr.Kind.
func Run(stmts []lasast.Stmt, s *scope.Stack) error {
	for _, stmt := range stmts {
		sig, _, err := stmt.Exec(s)
		if err != nil {
			return err
		}
		switch sig {
		case lasast.SigBreak:
			return lasrr.At(lasrr.BreakOutsideLoop, stmt.Span(), "break used outside a loop")
		case lasast.SigContinue:
			return lasrr.At(lasrr.ContinueOutsideLoop, stmt.Span(), "continue used outside a loop")
		case lasast.SigReturn:
			return lasrr.At(lasrr.ReturnOutsideFn, stmt.Span(), "return used outside a function")
		}
	}
	return nil
}
