package parser

import (
	"strconv"
	"strings"

	js "github.com/dop251/goja/ast"
	"github.com/dop251/goja/token"

	"github.com/lcalzada-xor/tailcall/pkg/ast"
)

func (c *converter) expression(e js.Expression) ast.Node {
	switch e := e.(type) {
	case nil:
		return nil
	case *js.Identifier:
		return ast.Ident(string(e.Name))
	case *js.NumberLiteral:
		return &ast.Literal{LitKind: ast.LitNumber, Value: numberValue(e), Raw: e.Literal}
	case *js.StringLiteral:
		return &ast.Literal{LitKind: ast.LitString, Value: string(e.Value), Raw: e.Literal}
	case *js.BooleanLiteral:
		return &ast.Literal{LitKind: ast.LitBoolean, Value: e.Value, Raw: e.Literal}
	case *js.NullLiteral:
		return &ast.Literal{LitKind: ast.LitNull, Raw: "null"}
	case *js.RegExpLiteral:
		return &ast.Literal{LitKind: ast.LitRegExp, Raw: e.Literal}
	case *js.ThisExpression:
		return &ast.This{}
	case *js.FunctionLiteral:
		fn, ok := c.function(e)
		if !ok {
			return c.rawExpression(e)
		}
		return fn
	case *js.CallExpression:
		args, ok := c.arguments(e.ArgumentList)
		if !ok || isSuper(e.Callee) {
			return c.rawExpression(e)
		}
		return &ast.Call{Callee: c.expression(e.Callee), Arguments: args}
	case *js.NewExpression:
		args, ok := c.arguments(e.ArgumentList)
		if !ok {
			return c.rawExpression(e)
		}
		return &ast.New{Callee: c.expression(e.Callee), Arguments: args}
	case *js.ConditionalExpression:
		return &ast.Conditional{
			Test:       c.expression(e.Test),
			Consequent: c.expression(e.Consequent),
			Alternate:  c.expression(e.Alternate),
		}
	case *js.AssignExpression:
		left := c.expression(e.Left)
		if !isAssignable(left) {
			// destructuring assignment
			return c.rawExpression(e)
		}
		return &ast.Assignment{Operator: assignOperator(e.Operator), Left: left, Right: c.expression(e.Right)}
	case *js.SequenceExpression:
		exprs := make([]ast.Node, len(e.Sequence))
		for i, x := range e.Sequence {
			exprs[i] = c.expression(x)
		}
		return &ast.Sequence{Expressions: exprs}
	case *js.BinaryExpression:
		return &ast.Binary{Operator: e.Operator.String(), Left: c.expression(e.Left), Right: c.expression(e.Right)}
	case *js.UnaryExpression:
		return &ast.Unary{Operator: e.Operator.String(), Argument: c.expression(e.Operand), Prefix: !e.Postfix}
	case *js.DotExpression:
		if isSuper(e.Left) {
			return c.rawExpression(e)
		}
		return &ast.Member{Object: c.expression(e.Left), Property: ast.Ident(string(e.Identifier.Name))}
	case *js.BracketExpression:
		if isSuper(e.Left) {
			return c.rawExpression(e)
		}
		return &ast.Member{Object: c.expression(e.Left), Property: c.expression(e.Member), Computed: true}
	case *js.ArrayLiteral:
		elems := make([]ast.Node, len(e.Value))
		for i, x := range e.Value {
			if _, spread := x.(*js.SpreadElement); spread {
				return c.rawExpression(e)
			}
			elems[i] = c.expression(x)
		}
		return &ast.Array{Elements: elems}
	case *js.ObjectLiteral:
		obj, ok := c.object(e)
		if !ok {
			return c.rawExpression(e)
		}
		return obj
	}
	// arrows, classes, templates, optional chains, await, yield, ...
	return c.rawExpression(e)
}

// arguments converts an argument list; ok is false when it spreads.
func (c *converter) arguments(list []js.Expression) ([]ast.Node, bool) {
	args := make([]ast.Node, len(list))
	for i, a := range list {
		if _, spread := a.(*js.SpreadElement); spread {
			return nil, false
		}
		args[i] = c.expression(a)
	}
	return args, true
}

// object converts plain `key: value` and shorthand properties. Methods,
// accessors and spreads are left to the raw fallback.
func (c *converter) object(o *js.ObjectLiteral) (*ast.Object, bool) {
	props := make([]*ast.Property, 0, len(o.Value))
	for _, p := range o.Value {
		switch p := p.(type) {
		case *js.PropertyKeyed:
			if p.Kind != js.PropertyKindValue {
				return nil, false
			}
			var key ast.Node
			if p.Computed {
				key = c.expression(p.Key)
			} else {
				key = c.propertyKey(p.Key)
			}
			if key == nil {
				return nil, false
			}
			props = append(props, &ast.Property{Key: key, Value: c.expression(p.Value), Computed: p.Computed})
		case *js.PropertyShort:
			if p.Initializer != nil {
				return nil, false
			}
			name := string(p.Name.Name)
			props = append(props, &ast.Property{Key: ast.Ident(name), Value: ast.Ident(name), Shorthand: true})
		default:
			return nil, false
		}
	}
	return &ast.Object{Properties: props}, true
}

// propertyKey converts a non-computed key. goja reports identifier keys as
// string literals whose source text carries no quotes.
func (c *converter) propertyKey(k js.Expression) ast.Node {
	switch k := k.(type) {
	case *js.Identifier:
		return ast.Ident(string(k.Name))
	case *js.StringLiteral:
		if !strings.HasPrefix(k.Literal, `"`) && !strings.HasPrefix(k.Literal, `'`) {
			return ast.Ident(string(k.Value))
		}
		return &ast.Literal{LitKind: ast.LitString, Value: string(k.Value), Raw: k.Literal}
	case *js.NumberLiteral:
		return &ast.Literal{LitKind: ast.LitNumber, Value: numberValue(k), Raw: k.Literal}
	}
	return nil
}

func isSuper(e js.Expression) bool {
	_, ok := e.(*js.SuperExpression)
	return ok
}

func numberValue(n *js.NumberLiteral) float64 {
	switch v := n.Value.(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	}
	f, _ := strconv.ParseFloat(n.Literal, 64)
	return f
}

// assignOperator spells an assignment operator. goja stores `+=` as the
// binary operator `+`, and `=` as itself.
func assignOperator(op token.Token) string {
	if op == token.ASSIGN {
		return "="
	}
	s := op.String()
	if strings.HasSuffix(s, "=") && !isComparison(s) {
		return s
	}
	return s + "="
}

func isComparison(op string) bool {
	switch op {
	case "==", "===", "!=", "!==", "<=", ">=":
		return true
	}
	return false
}
