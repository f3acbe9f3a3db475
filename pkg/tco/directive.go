package tco

import (
	"github.com/lcalzada-xor/tailcall/pkg/ast"
)

var useStrictPattern = &ast.Pattern{
	Kind:       ast.KindExpressionStmt,
	Expression: &ast.Pattern{Kind: ast.KindLiteral, Value: "use strict"},
}

// captureDirective removes a "use strict" directive from the prologue of a
// function body and records it on s, so the rebuilt body can put it back
// first. Other prologue strings stay where they are.
func captureDirective(s *Scope, body []ast.Node) []ast.Node {
	out := make([]ast.Node, 0, len(body))
	prologue := true
	for _, stmt := range body {
		if prologue && !isStringStatement(stmt) {
			prologue = false
		}
		if prologue && s.Directive == nil && isUseStrict(stmt) {
			s.Directive = ast.Clone(stmt)
			continue
		}
		out = append(out, stmt)
	}
	return out
}

func isStringStatement(stmt ast.Node) bool {
	es, ok := stmt.(*ast.ExpressionStmt)
	if !ok {
		return false
	}
	lit, ok := es.Expression.(*ast.Literal)
	return ok && lit.LitKind == ast.LitString
}

// isUseStrict matches the exact directive. Escapes or line continuations in
// the source text make it an ordinary string.
func isUseStrict(stmt ast.Node) bool {
	if !ast.Match(stmt, useStrictPattern) {
		return false
	}
	raw := stmt.(*ast.ExpressionStmt).Expression.(*ast.Literal).Raw
	return raw == "" || raw == `"use strict"` || raw == `'use strict'`
}
