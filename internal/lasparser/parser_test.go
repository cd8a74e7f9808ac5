package lasparser

import (
	"testing"

	"las/internal/lasast"
	"las/internal/lexer"
)

func parseSource(t *testing.T, source string) []lasast.Stmt {
	t.Helper()
	toks, err := lexer.New(source, "t.las").ScanTokens()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	stmts, err := Parse(toks, source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return stmts
}

func assertParseFails(t *testing.T, source string) {
	t.Helper()
	toks, err := lexer.New(source, "t.las").ScanTokens()
	if err != nil {
		return
	}
	if _, err := Parse(toks, source); err == nil {
		t.Fatalf("Parse(%q) succeeded, want error", source)
	}
}

func TestParseLetAndPrint(t *testing.T) {
	stmts := parseSource(t, `let x = 1 + 2; print(x);`)
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	def, ok := stmts[0].(*lasast.VariableDefinition)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *VariableDefinition", stmts[0])
	}
	if def.Name != "x" {
		t.Fatalf("name = %q, want x", def.Name)
	}
	sum, ok := def.Init.(*lasast.BinOp)
	if !ok {
		t.Fatalf("init = %T, want *BinOp", def.Init)
	}
	if sum.LHS.(*lasast.IntegerLiteral).Value != 1 || sum.RHS.(*lasast.IntegerLiteral).Value != 2 {
		t.Fatalf("unexpected operands in %+v", sum)
	}
	if _, ok := stmts[1].(*lasast.Print); !ok {
		t.Fatalf("stmts[1] = %T, want *Print", stmts[1])
	}
}

func TestParseIfElseChain(t *testing.T) {
	stmts := parseSource(t, `
		if x == 1 {
			print(1);
		} else if x == 2 {
			print(2);
		} else {
			print(3);
		}
	`)
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	top, ok := stmts[0].(*lasast.If)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *If", stmts[0])
	}
	elseIf, ok := top.Else.(*lasast.If)
	if !ok {
		t.Fatalf("top.Else = %T, want *If", top.Else)
	}
	if _, ok := elseIf.Else.(*lasast.Block); !ok {
		t.Fatalf("elseIf.Else = %T, want *Block", elseIf.Else)
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	stmts := parseSource(t, `
		function add(a: I32, b: I32) ~> I32 {
			return a + b;
		}
	`)
	decl, ok := stmts[0].(*lasast.FunctionDeclaration)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *FunctionDeclaration", stmts[0])
	}
	if decl.Name != "add" || len(decl.Params) != 2 {
		t.Fatalf("unexpected decl %+v", decl)
	}
	if decl.Params[0].Name != "a" || decl.Params[1].Name != "b" {
		t.Fatalf("unexpected params %+v", decl.Params)
	}
}

func TestParseStructDeclarationAndLiteral(t *testing.T) {
	stmts := parseSource(t, `
		struct Point(x: I32, y: I32);
		let p = Point{x: 1, y: 2};
	`)
	structDecl, ok := stmts[0].(*lasast.StructDefinition)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *StructDefinition", stmts[0])
	}
	if structDecl.Name != "Point" || len(structDecl.Members) != 2 {
		t.Fatalf("unexpected struct decl %+v", structDecl)
	}
	def, ok := stmts[1].(*lasast.VariableDefinition)
	if !ok {
		t.Fatalf("stmts[1] = %T, want *VariableDefinition", stmts[1])
	}
	lit, ok := def.Init.(*lasast.StructLiteral)
	if !ok {
		t.Fatalf("init = %T, want *StructLiteral", def.Init)
	}
	if lit.Name != "Point" || len(lit.Initializers) != 2 {
		t.Fatalf("unexpected literal %+v", lit)
	}
}

func TestParseForOverRange(t *testing.T) {
	stmts := parseSource(t, `
		for i in 0..5 {
			print(i);
		}
	`)
	loop, ok := stmts[0].(*lasast.For)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *For", stmts[0])
	}
	if loop.Var != "i" {
		t.Fatalf("loop var = %q, want i", loop.Var)
	}
	rangeExpr, ok := loop.Iterable.(*lasast.RangeExpr)
	if !ok {
		t.Fatalf("iterable = %T, want *RangeExpr", loop.Iterable)
	}
	if rangeExpr.Inclusive {
		t.Fatal("0..5 should be exclusive")
	}
}

func TestParseCompoundAssignment(t *testing.T) {
	stmts := parseSource(t, `total += 1;`)
	assign, ok := stmts[0].(*lasast.Assignment)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *Assignment", stmts[0])
	}
	if assign.Op != lasast.AssignAdd {
		t.Fatalf("op = %v, want AssignAdd", assign.Op)
	}
}

func TestParseIfOverBareNameNotStructLiteral(t *testing.T) {
	stmts := parseSource(t, `
		if done {
			print(1);
		}
	`)
	ifStmt, ok := stmts[0].(*lasast.If)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *If", stmts[0])
	}
	if _, ok := ifStmt.Cond.(*lasast.Name); !ok {
		t.Fatalf("cond = %T, want *Name", ifStmt.Cond)
	}
}

func TestParseWhileOverBareNameNotStructLiteral(t *testing.T) {
	stmts := parseSource(t, `
		while done {
			print(1);
		}
	`)
	loop, ok := stmts[0].(*lasast.While)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *While", stmts[0])
	}
	if _, ok := loop.Cond.(*lasast.Name); !ok {
		t.Fatalf("cond = %T, want *Name", loop.Cond)
	}
}

func TestParseForOverBareNameNotStructLiteral(t *testing.T) {
	stmts := parseSource(t, `
		for x in arr {
			print(x);
		}
	`)
	loop, ok := stmts[0].(*lasast.For)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *For", stmts[0])
	}
	if _, ok := loop.Iterable.(*lasast.Name); !ok {
		t.Fatalf("iterable = %T, want *Name", loop.Iterable)
	}
}

func TestParseStructLiteralStillAllowedInsideParensInCondition(t *testing.T) {
	stmts := parseSource(t, `
		struct Point(x: I32);
		if (Point{x: 1}).x == 1 {
			print(1);
		}
	`)
	ifStmt, ok := stmts[1].(*lasast.If)
	if !ok {
		t.Fatalf("stmts[1] = %T, want *If", stmts[1])
	}
	if _, ok := ifStmt.Cond.(*lasast.BinOp); !ok {
		t.Fatalf("cond = %T, want *BinOp", ifStmt.Cond)
	}
}

func TestParseMissingSemicolonFails(t *testing.T) {
	assertParseFails(t, `let x = 1`)
}

func TestParseUnmatchedBraceFails(t *testing.T) {
	assertParseFails(t, `if x == 1 { print(x);`)
}

func TestParseUnexpectedTokenFails(t *testing.T) {
	assertParseFails(t, `let = 1;`)
}
