package lasast

import (
	"las/internal/lasrr"
	"las/internal/lasspan"
	"las/internal/lastype"
	"las/internal/lasvalue"
	"las/internal/scope"
)

// BuiltinImpl is the shape every built-in callable implements: it
// receives its already-evaluated arguments and the call site's span for
// diagnostics.
type BuiltinImpl func(span lasspan.Span, args []*lasvalue.Value) (*lasvalue.Value, error)

var builtins = map[string]BuiltinImpl{}

// RegisterBuiltin installs a built-in under name, callable from Las
// source through the ordinary Call expression the same as a user
// function. Packages that add optional built-ins (database, websocket,
// uuid) call this from an init() function.
func RegisterBuiltin(name string, impl BuiltinImpl) {
	builtins[name] = impl
}

// InstallBuiltins binds every registered built-in under its own name in
// the global scope of s.
func InstallBuiltins(s *scope.Stack) {
	for name := range builtins {
		s.DefineGlobal(name, lasvalue.NewBuiltinFunction(name))
	}
}

// CallValue implements the calling convention: arity/type checking for
// user functions, or direct dispatch to a registered built-in.
func CallValue(span lasspan.Span, s *scope.Stack, callee *lasvalue.Value, argExprs []Expr) (*lasvalue.Value, error) {
	switch callee.Kind {
	case lasvalue.BuiltinFunction:
		impl, ok := builtins[callee.Builtin]
		if !ok {
			return nil, lasrr.Atf(lasrr.UndefinedReference, span, "no such builtin %q", callee.Builtin)
		}
		args := make([]*lasvalue.Value, len(argExprs))
		for i, e := range argExprs {
			v, err := e.Eval(s)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return impl(span, args)
	case lasvalue.Function:
		return callFunction(span, s, callee, argExprs)
	default:
		return nil, lasrr.At(lasrr.OperationNotSupportedByType, span, "value is not callable")
	}
}

func callFunction(span lasspan.Span, s *scope.Stack, fn *lasvalue.Value, argExprs []Expr) (*lasvalue.Value, error) {
	if len(argExprs) != len(fn.FnParams) {
		return nil, lasrr.Atf(lasrr.WrongNumberOfArguments, span,
			"%s expects %d argument(s), got %d", fn.FnName, len(fn.FnParams), len(argExprs))
	}
	depth := s.Depth()
	s.Push()
	for i, param := range fn.FnParams {
		argVal, err := argExprs[i].Eval(s)
		if err != nil {
			s.Truncate(depth)
			return nil, err
		}
		if !lastype.CanBeCreatedFrom(param.Type, argVal.Type()) {
			s.Truncate(depth)
			return nil, lasrr.Atf(lasrr.WrongArgumentType, span,
				"%s parameter %q expects %s, got %s", fn.FnName, param.Name, param.Type, argVal.Type())
		}
		s.Define(param.Name, argVal)
	}

	body, _ := fn.FnBody.(Stmt)
	result := lasvalue.NewNothing()
	if body != nil {
		sig, retVal, err := body.Exec(s)
		if err != nil {
			s.Truncate(depth)
			return nil, err
		}
		if sig == SigReturn && retVal != nil {
			result = retVal
		}
	}
	s.Truncate(depth)

	if !lastype.CanBeCreatedFrom(fn.FnReturn, result.Type()) {
		return nil, lasrr.Atf(lasrr.ReturnTypeMismatch, span,
			"%s declared to return %s, got %s", fn.FnName, fn.FnReturn, result.Type())
	}
	return result, nil
}
