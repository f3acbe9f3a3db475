package tco

import (
	"fmt"
	"strings"

	"github.com/lcalzada-xor/tailcall/pkg/ast"
	"github.com/lcalzada-xor/tailcall/pkg/models"
)

// function rewrites a FunctionDecl or FunctionExpr under a fresh scope and
// rebuilds its body from what the walk recorded.
func (r *rewriter) function(n ast.Node, parent *Scope) ast.Node {
	id, params, body, _ := ast.Function(n)
	if body == nil {
		body = &ast.Block{}
	}

	name := ""
	if id != nil {
		name = id.Name
	}
	paramNames := ast.Identifiers(params)
	s := NewFunctionScope(parent, name, paramNames, r.tempNames(n, paramNames))
	if name != "" && shadows(name, s, body) {
		s.shadowed = true
	}
	r.log.Section(s.QualifiedName() + "(" + strings.Join(paramNames, ", ") + ")")

	stmts := captureDirective(s, body.Body)
	walked := r.block(&ast.Block{Body: stmts}, s).(*ast.Block)
	rebuilt := &ast.Block{Body: r.rebuild(s, walked.Body)}

	r.report(s)

	switch fn := n.(type) {
	case *ast.FunctionDecl:
		return &ast.FunctionDecl{ID: copyIdent(fn.ID), Params: copyIdents(fn.Params), Body: rebuilt}
	case *ast.FunctionExpr:
		return &ast.FunctionExpr{ID: copyIdent(fn.ID), Params: copyIdents(fn.Params), Body: rebuilt}
	}
	return n
}

// rebuild assembles the final body: directive, hoisted declarations, then
// either the recursion loop or the body without dead resets.
func (r *rewriter) rebuild(s *Scope, body []ast.Node) []ast.Node {
	var rest []ast.Node
	if s.TailRecursive {
		// Locals start every iteration undefined, as they would in a new call.
		loop := append(ast.ZipAssign(s.Locals, nil), body...)
		if len(loop) == 0 || loop[len(loop)-1].Kind() != ast.KindReturn {
			loop = append(loop, &ast.Return{})
		}
		rest = append(ast.ZipDeclare(s.UsedTemps), &ast.Labeled{
			Label: ast.Ident(r.loopLabel),
			Body: &ast.While{
				Test: ast.Lit(true),
				Body: &ast.Block{Body: loop},
			},
		})
	} else {
		rest = stripResets(s, body)
	}

	out := make([]ast.Node, 0, len(rest)+2)
	if s.Directive != nil {
		out = append(out, s.Directive)
	}
	if decl := ast.Declare(s.Locals...); decl != nil {
		out = append(out, decl)
	}
	return append(out, rest...)
}

// stripResets drops leading statements that only assign undefined to
// hoisted locals. Hoisted locals are undefined on entry already.
func stripResets(s *Scope, body []ast.Node) []ast.Node {
	i := 0
	for i < len(body) && isReset(s, body[i]) {
		i++
	}
	return body[i:]
}

var resetPattern = &ast.Pattern{
	Kind:     ast.KindAssignment,
	Operator: "=",
	Left:     &ast.Pattern{Kind: ast.KindIdentifier},
	Right:    &ast.Pattern{Kind: ast.KindIdentifier, Name: "undefined"},
}

func isReset(s *Scope, stmt ast.Node) bool {
	es, ok := stmt.(*ast.ExpressionStmt)
	if !ok {
		return false
	}
	exprs := []ast.Node{es.Expression}
	if seq, ok := es.Expression.(*ast.Sequence); ok {
		exprs = seq.Expressions
	}
	if len(exprs) == 0 {
		return false
	}
	for _, e := range exprs {
		if !ast.Match(e, resetPattern) {
			return false
		}
		name := e.(*ast.Assignment).Left.(*ast.Identifier).Name
		if !s.locals[name] {
			return false
		}
	}
	return true
}

// tempNames derives one staging name per parameter. A name already used
// anywhere in the function gets a numeric suffix until it is free.
func (r *rewriter) tempNames(fn ast.Node, params []string) []string {
	taken := ast.Names(fn)
	var raws []string
	ast.Inspect(fn, func(n ast.Node) bool {
		if raw, ok := n.(*ast.Raw); ok {
			raws = append(raws, raw.Source)
		}
		return true
	})
	used := func(name string) bool {
		if taken[name] {
			return true
		}
		for _, src := range raws {
			if strings.Contains(src, name) {
				return true
			}
		}
		return false
	}

	out := make([]string, len(params))
	for i, p := range params {
		name := r.tempPrefix + p
		for n := 1; used(name); n++ {
			name = fmt.Sprintf("%s%s_%d", r.tempPrefix, p, n)
		}
		taken[name] = true
		out[i] = name
	}
	return out
}

// shadows reports whether name is rebound inside the function, by a
// parameter, a var or a nested function declaration. A call to name then
// no longer reaches the function itself.
func shadows(name string, s *Scope, body *ast.Block) bool {
	if s.IsParam(name) {
		return true
	}
	found := false
	ast.Inspect(body, func(n ast.Node) bool {
		if found {
			return false
		}
		switch n := n.(type) {
		case *ast.FunctionDecl:
			found = n.ID != nil && n.ID.Name == name
			return false
		case *ast.FunctionExpr:
			return false
		case *ast.VarDecl:
			for _, d := range n.Declarations {
				if d.ID.Name == name {
					found = true
				}
			}
		}
		return true
	})
	return found
}

func (r *rewriter) report(s *Scope) {
	rep := models.FunctionReport{
		Name:          s.QualifiedName(),
		Params:        s.Params,
		TailRecursive: s.TailRecursive,
		TailCalls:     s.TailCalls,
		TempVars:      s.UsedTemps,
		Hoisted:       s.Locals,
		Strict:        s.Directive != nil,
	}
	if s.TailRecursive {
		r.log.V("TCO: %s converted to a loop (%d tail calls, %d temps)", rep.Name, rep.TailCalls, len(rep.TempVars))
	} else if s.shadowed {
		r.log.VV("TCO: %s is shadowed inside its body, self calls left alone", rep.Name)
	}
	r.reports = append(r.reports, rep)
}

func copyIdent(id *ast.Identifier) *ast.Identifier {
	if id == nil {
		return nil
	}
	return ast.Ident(id.Name)
}

func copyIdents(ids []*ast.Identifier) []*ast.Identifier {
	out := make([]*ast.Identifier, len(ids))
	for i, id := range ids {
		out[i] = copyIdent(id)
	}
	return out
}
