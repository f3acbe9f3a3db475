package tco

import (
	"github.com/lcalzada-xor/tailcall/pkg/ast"
	"github.com/lcalzada-xor/tailcall/pkg/logger"
	"github.com/lcalzada-xor/tailcall/pkg/models"
)

// handler rewrites a node of one kind. Handlers recurse into their own
// children.
type handler func(r *rewriter, n ast.Node, s *Scope) ast.Node

var handlers map[ast.Kind]handler

func init() {
	handlers = map[ast.Kind]handler{
		ast.KindFunctionDecl: (*rewriter).function,
		ast.KindFunctionExpr: (*rewriter).function,
		ast.KindReturn:       (*rewriter).returnStmt,
		ast.KindBlock:        (*rewriter).block,
		ast.KindVarDecl:      (*rewriter).varDecl,
		ast.KindFor:          (*rewriter).forStmt,
		ast.KindForIn:        (*rewriter).forInOf,
		ast.KindForOf:        (*rewriter).forInOf,
	}
}

// rewriter carries the settings and the report of one Rewrite call.
type rewriter struct {
	tempPrefix string
	loopLabel  string
	log        *logger.Logger
	reports    []models.FunctionReport
}

// walk dispatches n to its handler, or rebuilds it with walked children.
func (r *rewriter) walk(n ast.Node, s *Scope) ast.Node {
	if n == nil {
		return nil
	}
	if h, ok := handlers[n.Kind()]; ok {
		return h(r, n, s)
	}
	return r.walkChildren(n, s)
}

func (r *rewriter) walkChildren(n ast.Node, s *Scope) ast.Node {
	return ast.MapChildren(n, func(c ast.Node) ast.Node {
		return r.walk(c, s)
	})
}

func (r *rewriter) walkStatements(list []ast.Node, s *Scope) []ast.Node {
	return ast.MapStatements(list, func(c ast.Node) ast.Node {
		return r.walk(c, s)
	})
}

// block collapses a block whose only statement is another block.
func (r *rewriter) block(n ast.Node, s *Scope) ast.Node {
	body := r.walkStatements(n.(*ast.Block).Body, s)
	if len(body) == 1 {
		if inner, ok := body[0].(*ast.Block); ok {
			body = inner.Body
		}
	}
	return &ast.Block{Body: body}
}
