package tco

import (
	"github.com/lcalzada-xor/tailcall/pkg/ast"
)

// convertTernary turns `return test ? a : b` into
// `if (test) return a; else return b;` and walks the result, so both new
// returns are checked for tail calls and nested conditionals.
func (r *rewriter) convertTernary(cond *ast.Conditional, s *Scope) ast.Node {
	stmt := &ast.If{
		Test:       cond.Test,
		Consequent: wrapWithReturn(cond.Consequent),
		Alternate:  wrapWithReturn(cond.Alternate),
	}
	return r.walk(stmt, s)
}

// wrapWithReturn returns expr. For a comma sequence only the last operand
// is returned; the others run first as statements.
func wrapWithReturn(expr ast.Node) ast.Node {
	seq, ok := expr.(*ast.Sequence)
	if !ok || len(seq.Expressions) < 2 {
		return &ast.Return{Argument: expr}
	}
	last := len(seq.Expressions) - 1
	stmts := make([]ast.Node, 0, len(seq.Expressions))
	for _, e := range seq.Expressions[:last] {
		stmts = append(stmts, &ast.ExpressionStmt{Expression: e})
	}
	stmts = append(stmts, &ast.Return{Argument: seq.Expressions[last]})
	return &ast.Block{Body: stmts}
}
