// Package parser turns JavaScript source into an ast tree using goja's
// parser. Constructs outside the tree model (let/const, classes, arrows,
// try, templates, destructuring, ...) are kept verbatim as ast.Raw nodes.
package parser

import (
	"errors"
	"fmt"

	js "github.com/dop251/goja/ast"
	jsparser "github.com/dop251/goja/parser"
	"github.com/dop251/goja/token"

	"github.com/lcalzada-xor/tailcall/pkg/ast"
)

// ParseError reports source the JavaScript parser rejected.
type ParseError struct {
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return "parse error: " + e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse parses the given JavaScript code and converts it to a Program.
func Parse(code string) (*ast.Program, error) {
	// ParseFile(fileSet, filename, src, mode): no file set, default mode
	program, err := jsparser.ParseFile(nil, "", code, 0)
	if err != nil {
		return nil, newParseError(err)
	}
	c := &converter{src: code}
	return c.program(program), nil
}

func newParseError(err error) *ParseError {
	pe := &ParseError{Message: err.Error(), Err: err}
	var list jsparser.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		pe.Line = list[0].Position.Line
		pe.Column = list[0].Position.Column
		pe.Message = list[0].Message
	}
	return pe
}

// converter holds the source so unsupported nodes can be sliced out of it.
type converter struct {
	src string
}

func (c *converter) program(p *js.Program) *ast.Program {
	return &ast.Program{Body: c.statements(p.Body)}
}

// snippet extracts the source code for a given goja node.
func (c *converter) snippet(node js.Node) string {
	start := int(node.Idx0()) - 1
	end := int(node.Idx1()) - 1

	if start < 0 {
		start = 0
	}
	if end > len(c.src) {
		end = len(c.src)
	}
	if start >= end {
		return ""
	}
	return c.src[start:end]
}

func (c *converter) rawStatement(node js.Node) ast.Node {
	return &ast.Raw{Source: c.snippet(node), Statement: true}
}

func (c *converter) rawExpression(node js.Node) ast.Node {
	return &ast.Raw{Source: c.snippet(node)}
}

func (c *converter) statements(list []js.Statement) []ast.Node {
	out := make([]ast.Node, 0, len(list))
	for _, s := range list {
		if s == nil {
			continue
		}
		out = append(out, c.statement(s))
	}
	return out
}

func (c *converter) statement(s js.Statement) ast.Node {
	switch s := s.(type) {
	case nil:
		return nil
	case *js.BlockStatement:
		return c.block(s)
	case *js.ExpressionStatement:
		return &ast.ExpressionStmt{Expression: c.expression(s.Expression)}
	case *js.ReturnStatement:
		return &ast.Return{Argument: c.expression(s.Argument)}
	case *js.VariableStatement:
		decl, ok := c.varDecl(s.List)
		if !ok {
			return c.rawStatement(s)
		}
		return decl
	case *js.FunctionDeclaration:
		fn, ok := c.function(s.Function)
		if !ok || fn.ID == nil {
			return c.rawStatement(s)
		}
		return &ast.FunctionDecl{ID: fn.ID, Params: fn.Params, Body: fn.Body}
	case *js.IfStatement:
		return &ast.If{
			Test:       c.expression(s.Test),
			Consequent: c.statement(s.Consequent),
			Alternate:  c.statement(s.Alternate),
		}
	case *js.ForStatement:
		return c.forStatement(s)
	case *js.ForInStatement:
		left, ok := c.forInto(s.Into)
		if !ok {
			return c.rawStatement(s)
		}
		return &ast.ForIn{Left: left, Right: c.expression(s.Source), Body: c.statement(s.Body)}
	case *js.ForOfStatement:
		left, ok := c.forInto(s.Into)
		if !ok {
			return c.rawStatement(s)
		}
		return &ast.ForOf{Left: left, Right: c.expression(s.Source), Body: c.statement(s.Body)}
	case *js.WhileStatement:
		return &ast.While{Test: c.expression(s.Test), Body: c.statement(s.Body)}
	case *js.DoWhileStatement:
		return &ast.DoWhile{Body: c.statement(s.Body), Test: c.expression(s.Test)}
	case *js.BranchStatement:
		var label *ast.Identifier
		if s.Label != nil {
			label = ast.Ident(string(s.Label.Name))
		}
		if s.Token == token.CONTINUE {
			return &ast.Continue{Label: label}
		}
		return &ast.Break{Label: label}
	case *js.LabelledStatement:
		return &ast.Labeled{Label: ast.Ident(string(s.Label.Name)), Body: c.statement(s.Statement)}
	case *js.ThrowStatement:
		return &ast.Throw{Argument: c.expression(s.Argument)}
	case *js.EmptyStatement:
		return &ast.Empty{}
	case *js.SwitchStatement:
		cases := make([]*ast.SwitchCase, len(s.Body))
		for i, cs := range s.Body {
			cases[i] = &ast.SwitchCase{Test: c.expression(cs.Test), Consequent: c.statements(cs.Consequent)}
		}
		return &ast.Switch{Discriminant: c.expression(s.Discriminant), Cases: cases}
	}
	// try, with, let/const, class, debugger, ...
	return c.rawStatement(s)
}

func (c *converter) block(b *js.BlockStatement) *ast.Block {
	return &ast.Block{Body: c.statements(b.List)}
}

// varDecl converts bindings of plain identifiers. Destructuring patterns
// are not part of the model, so ok is false for them.
func (c *converter) varDecl(list []*js.Binding) (*ast.VarDecl, bool) {
	decls := make([]*ast.Declarator, 0, len(list))
	for _, b := range list {
		id, ok := b.Target.(*js.Identifier)
		if !ok {
			return nil, false
		}
		decls = append(decls, &ast.Declarator{
			ID:   ast.Ident(string(id.Name)),
			Init: c.expression(b.Initializer),
		})
	}
	return &ast.VarDecl{Declarations: decls}, true
}

func (c *converter) forStatement(s *js.ForStatement) ast.Node {
	var init ast.Node
	switch in := s.Initializer.(type) {
	case nil:
	case *js.ForLoopInitializerExpression:
		init = c.expression(in.Expression)
	case *js.ForLoopInitializerVarDeclList:
		decl, ok := c.varDecl(in.List)
		if !ok {
			return c.rawStatement(s)
		}
		init = decl
	default:
		return c.rawStatement(s)
	}
	return &ast.For{
		Init:   init,
		Test:   c.expression(s.Test),
		Update: c.expression(s.Update),
		Body:   c.statement(s.Body),
	}
}

func (c *converter) forInto(into js.ForInto) (ast.Node, bool) {
	switch in := into.(type) {
	case *js.ForIntoVar:
		return c.varDecl([]*js.Binding{in.Binding})
	case *js.ForIntoExpression:
		left := c.expression(in.Expression)
		return left, isAssignable(left)
	}
	return nil, false
}

// function converts a function literal. ok is false for async functions,
// generators and parameter lists that are not plain identifiers.
func (c *converter) function(fn *js.FunctionLiteral) (*ast.FunctionExpr, bool) {
	if fn.Async || fn.Generator || fn.Body == nil {
		return nil, false
	}
	var params []*ast.Identifier
	if fn.ParameterList != nil {
		if fn.ParameterList.Rest != nil {
			return nil, false
		}
		for _, p := range fn.ParameterList.List {
			id, ok := p.Target.(*js.Identifier)
			if !ok || p.Initializer != nil {
				return nil, false
			}
			params = append(params, ast.Ident(string(id.Name)))
		}
	}
	out := &ast.FunctionExpr{Params: params, Body: c.block(fn.Body)}
	if fn.Name != nil {
		out.ID = ast.Ident(string(fn.Name.Name))
	}
	return out, true
}

func isAssignable(n ast.Node) bool {
	switch n.(type) {
	case *ast.Identifier, *ast.Member:
		return true
	}
	return false
}
