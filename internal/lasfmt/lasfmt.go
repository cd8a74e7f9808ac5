// Package lasfmt re-renders a parsed statement list back to source text
// with an indent-tracking strings.Builder walk over the Las AST shapes
// lasparser already produces, so no separate formatting AST is
// introduced.
package lasfmt

import (
	"fmt"
	"strings"

	"las/internal/lasast"
	"las/internal/lasvalue"
)

type Formatter struct {
	indent int
	out    strings.Builder
}

func New() *Formatter { return &Formatter{} }

// Format renders stmts back to Las source text, one blank line between
// top-level function and struct declarations to mirror how they tend to
// be hand-written.
func Format(stmts []lasast.Stmt) string {
	f := New()
	for i, stmt := range stmts {
		f.stmt(stmt)
		if i < len(stmts)-1 && f.needsBlankLine(stmt, stmts[i+1]) {
			f.out.WriteString("\n")
		}
	}
	return f.out.String()
}

func (f *Formatter) needsBlankLine(curr, next lasast.Stmt) bool {
	_, currFn := curr.(*lasast.FunctionDeclaration)
	_, nextFn := next.(*lasast.FunctionDeclaration)
	_, currStruct := curr.(*lasast.StructDefinition)
	_, nextStruct := next.(*lasast.StructDefinition)
	return currFn || nextFn || currStruct || nextStruct
}

func (f *Formatter) writeIndent() {
	f.out.WriteString(strings.Repeat("    ", f.indent))
}

func (f *Formatter) stmt(s lasast.Stmt) {
	f.writeIndent()
	switch n := s.(type) {
	case *lasast.Block:
		f.block(n)
		f.out.WriteString("\n")
	case *lasast.VariableDefinition:
		fmt.Fprintf(&f.out, "let %s = %s;\n", n.Name, f.expr(n.Init))
	case *lasast.ExpressionStatement:
		fmt.Fprintf(&f.out, "%s;\n", f.expr(n.Expr))
	case *lasast.Print:
		name := "print"
		if n.Newline {
			name = "println"
		}
		arg := ""
		if n.Value != nil {
			arg = f.expr(n.Value)
		}
		fmt.Fprintf(&f.out, "%s(%s);\n", name, arg)
	case *lasast.If:
		fmt.Fprintf(&f.out, "if %s ", f.expr(n.Cond))
		f.block(n.Then.(*lasast.Block))
		if n.Else != nil {
			f.out.WriteString(" else ")
			if elseIf, ok := n.Else.(*lasast.If); ok {
				f.out.WriteString(strings.TrimLeft(f.renderInline(elseIf), " "))
			} else {
				f.block(n.Else.(*lasast.Block))
			}
		}
		f.out.WriteString("\n")
	case *lasast.While:
		fmt.Fprintf(&f.out, "while %s ", f.expr(n.Cond))
		f.block(n.Body.(*lasast.Block))
		f.out.WriteString("\n")
	case *lasast.For:
		fmt.Fprintf(&f.out, "for %s in %s ", n.Var, f.expr(n.Iterable))
		f.block(n.Body.(*lasast.Block))
		f.out.WriteString("\n")
	case *lasast.Break:
		f.out.WriteString("break;\n")
	case *lasast.Continue:
		f.out.WriteString("continue;\n")
	case *lasast.Return:
		if n.Value == nil {
			f.out.WriteString("return;\n")
		} else {
			fmt.Fprintf(&f.out, "return %s;\n", f.expr(n.Value))
		}
	case *lasast.Assert:
		fmt.Fprintf(&f.out, "assert(%s);\n", f.expr(n.Cond))
	case *lasast.Assignment:
		fmt.Fprintf(&f.out, "%s %s %s;\n", f.expr(n.LHS), assignOpSymbol(n.Op), f.expr(n.RHS))
	case *lasast.FunctionDeclaration:
		f.functionDecl(n)
	case *lasast.StructDefinition:
		f.structDecl(n)
	default:
		fmt.Fprintf(&f.out, "%s;\n", f.expr(s.(lasast.Expr)))
	}
}

// renderInline formats a single statement at the current indent, without
// its trailing newline, for the "else if" chain which continues on the
// same line as "} else "; the caller strips the leading indent.
func (f *Formatter) renderInline(s lasast.Stmt) string {
	sub := &Formatter{indent: f.indent}
	sub.stmt(s)
	return strings.TrimSuffix(sub.out.String(), "\n")
}

func (f *Formatter) block(b *lasast.Block) {
	f.out.WriteString("{\n")
	f.indent++
	for _, s := range b.Stmts {
		f.stmt(s)
	}
	f.indent--
	f.writeIndent()
	f.out.WriteString("}")
}

func (f *Formatter) functionDecl(n *lasast.FunctionDeclaration) {
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
	}
	fmt.Fprintf(&f.out, "function %s(%s) ~> %s ", n.Name, strings.Join(params, ", "), n.ReturnType)
	f.block(n.Body)
	f.out.WriteString("\n")
}

func (f *Formatter) structDecl(n *lasast.StructDefinition) {
	members := make([]string, len(n.Members))
	for i, m := range n.Members {
		members[i] = fmt.Sprintf("%s: %s", m.Name, m.Type)
	}
	fmt.Fprintf(&f.out, "struct %s(%s);\n", n.Name, strings.Join(members, ", "))
}

func assignOpSymbol(op lasast.AssignOp) string {
	switch op {
	case lasast.AssignAdd:
		return "+="
	case lasast.AssignSub:
		return "-="
	case lasast.AssignMul:
		return "*="
	case lasast.AssignDiv:
		return "/="
	default:
		return "="
	}
}

func (f *Formatter) expr(e lasast.Expr) string {
	switch n := e.(type) {
	case *lasast.IntegerLiteral:
		return fmt.Sprintf("%d", n.Value)
	case *lasast.StringLiteral:
		return fmt.Sprintf("%q", n.Value)
	case *lasast.CharLiteral:
		return fmt.Sprintf("'%c'", n.Value)
	case *lasast.BoolLiteral:
		return fmt.Sprintf("%t", n.Value)
	case *lasast.Name:
		return n.Ident
	case *lasast.ArrayLiteral:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = f.expr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *lasast.UnOp:
		return fmt.Sprintf("%c%s", n.Op, f.expr(n.Operand))
	case *lasast.BinOp:
		return fmt.Sprintf("%s %s %s", f.expr(n.LHS), binOpSymbol(n.Op), f.expr(n.RHS))
	case *lasast.RangeExpr:
		op := ".."
		if n.Inclusive {
			op = "..="
		}
		return fmt.Sprintf("%s%s%s", f.expr(n.Start), op, f.expr(n.End))
	case *lasast.Subscript:
		return fmt.Sprintf("%s[%s]", f.expr(n.Base), f.expr(n.Index))
	case *lasast.Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = f.expr(a)
		}
		return fmt.Sprintf("%s(%s)", f.expr(n.Callee), strings.Join(args, ", "))
	case *lasast.MemberAccess:
		return fmt.Sprintf("%s.%s", f.expr(n.Base), n.Name)
	case *lasast.Cast:
		return fmt.Sprintf("%s => %s", f.expr(n.Value), n.Target)
	case *lasast.TypeOf:
		return fmt.Sprintf("typeof(%s)", f.expr(n.Value))
	case *lasast.StructLiteral:
		fields := make([]string, 0, len(n.Initializers))
		for name, init := range n.Initializers {
			fields = append(fields, fmt.Sprintf("%s: %s", name, f.expr(init)))
		}
		return fmt.Sprintf("%s{%s}", n.Name, strings.Join(fields, ", "))
	default:
		return ""
	}
}

func binOpSymbol(op lasvalue.BinOp) string {
	switch op {
	case lasvalue.OpAdd:
		return "+"
	case lasvalue.OpSub:
		return "-"
	case lasvalue.OpMul:
		return "*"
	case lasvalue.OpDiv:
		return "/"
	case lasvalue.OpMod:
		return "mod"
	case lasvalue.OpEq:
		return "=="
	case lasvalue.OpNotEq:
		return "!="
	case lasvalue.OpLt:
		return "<"
	case lasvalue.OpLe:
		return "<="
	case lasvalue.OpGt:
		return ">"
	case lasvalue.OpGe:
		return ">="
	case lasvalue.OpAnd:
		return "and"
	case lasvalue.OpOr:
		return "or"
	default:
		return "?"
	}
}
