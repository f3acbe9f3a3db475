package tco

import (
	"github.com/lcalzada-xor/tailcall/pkg/ast"
)

// varDecl replaces a declaration with assignments and hoists its names to
// the enclosing function. At program level declarations are kept.
func (r *rewriter) varDecl(n ast.Node, s *Scope) ast.Node {
	if !s.IsFunction() {
		return r.walkChildren(n, s)
	}

	var assigns []ast.Node
	for _, d := range n.(*ast.VarDecl).Declarations {
		name := d.ID.Name
		if s.IsParam(name) {
			// `var p;` never resets a parameter.
			if d.Init == nil {
				continue
			}
		} else {
			s.Define(name)
		}

		var value ast.Node = ast.Undefined()
		if d.Init != nil {
			value = r.walk(d.Init, s)
		}
		assigns = append(assigns, &ast.Assignment{Operator: "=", Left: ast.Ident(name), Right: value})
	}

	switch len(assigns) {
	case 0:
		// Spliced away when it sits in a statement list.
		return &ast.Block{}
	case 1:
		return &ast.ExpressionStmt{Expression: assigns[0]}
	}
	return &ast.ExpressionStmt{Expression: &ast.Sequence{Expressions: assigns}}
}

// forStmt unwraps a rewritten declaration in the init clause back into an
// expression.
func (r *rewriter) forStmt(n ast.Node, s *Scope) ast.Node {
	mapped := r.walkChildren(n, s).(*ast.For)
	mapped.Init = unwrapInit(mapped.Init)
	return mapped
}

// forInOf hoists `for (var k in o)` to `for (k in o)`. An assignment is not
// a valid left-hand side there, so the name is used directly.
func (r *rewriter) forInOf(n ast.Node, s *Scope) ast.Node {
	var left ast.Node
	switch n := n.(type) {
	case *ast.ForIn:
		left = n.Left
	case *ast.ForOf:
		left = n.Left
	}

	var hoisted ast.Node
	if decl, ok := left.(*ast.VarDecl); ok && s.IsFunction() && len(decl.Declarations) == 1 && decl.Declarations[0].Init == nil {
		name := decl.Declarations[0].ID.Name
		s.Define(name)
		hoisted = ast.Ident(name)
	}

	switch mapped := r.walkChildren(n, s).(type) {
	case *ast.ForIn:
		if hoisted != nil {
			mapped.Left = hoisted
		} else {
			mapped.Left = unwrapInit(mapped.Left)
		}
		return mapped
	case *ast.ForOf:
		if hoisted != nil {
			mapped.Left = hoisted
		} else {
			mapped.Left = unwrapInit(mapped.Left)
		}
		return mapped
	default:
		return mapped
	}
}

func unwrapInit(init ast.Node) ast.Node {
	switch init := init.(type) {
	case *ast.ExpressionStmt:
		return init.Expression
	case *ast.Block:
		if len(init.Body) == 0 {
			return nil
		}
	}
	return init
}
