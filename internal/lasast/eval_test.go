package lasast

import (
	"testing"

	"las/internal/lasspan"
	"las/internal/lastype"
	"las/internal/lasvalue"
	"las/internal/scope"
)

func lit(n int32) Expr { return &IntegerLiteral{Value: n} }

// lvInt builds an assignable integer binding, the way `let` binds one.
func lvInt(n int32) *lasvalue.Value {
	v := lasvalue.NewInteger(n)
	v.PromoteToLvalue()
	return v
}

func TestVariableDefinitionAndLookup(t *testing.T) {
	s := scope.New()
	def := &VariableDefinition{Name: "x", Init: lit(5)}
	if _, _, err := def.Exec(s); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	v, ok := s.Lookup("x")
	if !ok || v.Int != 5 {
		t.Fatalf("Lookup = %v, %v", v, ok)
	}
}

func TestVariableRedefinitionFails(t *testing.T) {
	s := scope.New()
	def := &VariableDefinition{Name: "x", Init: lit(1)}
	if _, _, err := def.Exec(s); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if _, _, err := def.Exec(s); err == nil {
		t.Fatal("expected SymbolRedefinition")
	}
}

// TestLetAliasesArrayLvalue pins the aliasing acceptance scenario:
// let a = [1, 2, 3]; let b = a; b[0] = 99; a[0] is then 99, not 1.
func TestLetAliasesArrayLvalue(t *testing.T) {
	s := scope.New()
	a := &VariableDefinition{Name: "a", Init: &ArrayLiteral{Elements: []Expr{lit(1), lit(2), lit(3)}}}
	if _, _, err := a.Exec(s); err != nil {
		t.Fatalf("Exec a: %v", err)
	}
	b := &VariableDefinition{Name: "b", Init: &Name{Ident: "a"}}
	if _, _, err := b.Exec(s); err != nil {
		t.Fatalf("Exec b: %v", err)
	}
	assign := &Assignment{LHS: &Subscript{Base: &Name{Ident: "b"}, Index: lit(0)}, Op: AssignSet, RHS: lit(99)}
	if _, _, err := assign.Exec(s); err != nil {
		t.Fatalf("Exec assign: %v", err)
	}
	read := &Subscript{Base: &Name{Ident: "a"}, Index: lit(0)}
	v, err := read.Eval(s)
	if err != nil {
		t.Fatalf("Eval a[0]: %v", err)
	}
	if v.Int != 99 {
		t.Fatalf("a[0] = %d, want 99 (aliasing through b)", v.Int)
	}
}

func TestBlockTruncatesOnExit(t *testing.T) {
	s := scope.New()
	block := &Block{Stmts: []Stmt{&VariableDefinition{Name: "x", Init: lit(1)}}}
	if _, _, err := block.Exec(s); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if _, ok := s.Lookup("x"); ok {
		t.Fatal("x should not escape the block")
	}
}

func TestBlockTruncatesOnBreak(t *testing.T) {
	s := scope.New()
	block := &Block{Stmts: []Stmt{
		&VariableDefinition{Name: "x", Init: lit(1)},
		&Break{},
	}}
	sig, _, err := block.Exec(s)
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if sig != SigBreak {
		t.Fatalf("signal = %v, want SigBreak", sig)
	}
	if _, ok := s.Lookup("x"); ok {
		t.Fatal("x should not escape the block even on break")
	}
}

func TestWhileBreak(t *testing.T) {
	s := scope.New()
	s.DefineGlobal("i", lvInt(0))
	body := &Block{Stmts: []Stmt{
		&Assignment{LHS: &Name{Ident: "i"}, Op: AssignAdd, RHS: lit(1)},
		&If{
			Cond: &BinOp{Op: lasvalue.OpGe, LHS: &Name{Ident: "i"}, RHS: lit(3)},
			Then: &Block{Stmts: []Stmt{&Break{}}},
		},
	}}
	loop := &While{Cond: &BoolLiteral{Value: true}, Body: body}
	if _, _, err := loop.Exec(s); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	v, _ := s.Lookup("i")
	if v.Int != 3 {
		t.Fatalf("i = %d, want 3", v.Int)
	}
}

func TestWhileContinueRestartsCondition(t *testing.T) {
	s := scope.New()
	s.DefineGlobal("i", lvInt(0))
	s.DefineGlobal("sum", lvInt(0))
	body := &Block{Stmts: []Stmt{
		&Assignment{LHS: &Name{Ident: "i"}, Op: AssignAdd, RHS: lit(1)},
		&If{
			Cond: &BinOp{Op: lasvalue.OpEq, LHS: &Name{Ident: "i"}, RHS: lit(2)},
			Then: &Block{Stmts: []Stmt{&Continue{}}},
		},
		&Assignment{LHS: &Name{Ident: "sum"}, Op: AssignAdd, RHS: &Name{Ident: "i"}},
	}}
	loop := &While{
		Cond: &BinOp{Op: lasvalue.OpLt, LHS: &Name{Ident: "i"}, RHS: lit(3)},
		Body: body,
	}
	if _, _, err := loop.Exec(s); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	sum, _ := s.Lookup("sum")
	if sum.Int != 4 { // 1 + 3, the continue skips adding 2
		t.Fatalf("sum = %d, want 4", sum.Int)
	}
}

func TestForIteratesRangeAndBindsLoopVar(t *testing.T) {
	s := scope.New()
	s.DefineGlobal("sum", lvInt(0))
	loop := &For{
		Var:      "x",
		Iterable: &RangeExpr{Start: lit(1), End: lit(3), Inclusive: true},
		Body: &Block{Stmts: []Stmt{
			&Assignment{LHS: &Name{Ident: "sum"}, Op: AssignAdd, RHS: &Name{Ident: "x"}},
		}},
	}
	if _, _, err := loop.Exec(s); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	sum, _ := s.Lookup("sum")
	if sum.Int != 6 {
		t.Fatalf("sum = %d, want 6", sum.Int)
	}
	if _, ok := s.Lookup("x"); ok {
		t.Fatal("loop variable should not escape the for loop")
	}
}

func TestFunctionDeclarationAndCall(t *testing.T) {
	s := scope.New()
	decl := &FunctionDeclaration{
		Name:       "add",
		Params:     []lasvalue.Param{{Name: "a", Type: lastype.Of(lastype.I32)}, {Name: "b", Type: lastype.Of(lastype.I32)}},
		ReturnType: lastype.Of(lastype.I32),
		Body: &Block{Stmts: []Stmt{
			&Return{Value: &BinOp{Op: lasvalue.OpAdd, LHS: &Name{Ident: "a"}, RHS: &Name{Ident: "b"}}},
		}},
	}
	if _, _, err := decl.Exec(s); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	call := &Call{Callee: &Name{Ident: "add"}, Args: []Expr{lit(2), lit(3)}}
	v, err := call.Eval(s)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v.Int != 5 {
		t.Fatalf("add(2, 3) = %d, want 5", v.Int)
	}
}

func TestCallWrongArity(t *testing.T) {
	s := scope.New()
	decl := &FunctionDeclaration{
		Name:       "f",
		Params:     []lasvalue.Param{{Name: "a", Type: lastype.Of(lastype.I32)}},
		ReturnType: lastype.Of(lastype.Nothing),
		Body:       &Block{},
	}
	decl.Exec(s)
	call := &Call{Callee: &Name{Ident: "f"}, Args: []Expr{}}
	if _, err := call.Eval(s); err == nil {
		t.Fatal("expected WrongNumberOfArguments")
	}
}

func TestAssignmentRequiresLvalue(t *testing.T) {
	s := scope.New()
	assign := &Assignment{LHS: lit(1), Op: AssignSet, RHS: lit(2)}
	if _, _, err := assign.Exec(s); err == nil {
		t.Fatal("expected LvalueRequired")
	}
}

func TestStructDefinitionAndLiteral(t *testing.T) {
	s := scope.New()
	structDef := &StructDefinition{
		Name:    "Point",
		Members: []lasvalue.Param{{Name: "x", Type: lastype.Of(lastype.I32)}, {Name: "y", Type: lastype.Of(lastype.I32)}},
	}
	if _, _, err := structDef.Exec(s); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	literal := &StructLiteral{
		Name:         "Point",
		Initializers: map[string]Expr{"x": lit(1), "y": lit(2)},
	}
	v, err := literal.Eval(s)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v.Members["x"].Int != 1 || v.Members["y"].Int != 2 {
		t.Fatalf("struct = %+v", v.Members)
	}
}

func TestSubscriptSpanPreserved(t *testing.T) {
	sp := lasspan.Span{File: "t.las", Line: 3, Column: 7}
	n := &Subscript{Sp: sp}
	if n.Span() != sp {
		t.Fatalf("Span() = %+v, want %+v", n.Span(), sp)
	}
}
