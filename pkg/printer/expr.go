package printer

import (
	"strings"

	"github.com/lcalzada-xor/tailcall/pkg/ast"
)

// Precedence levels, loosest first.
const (
	precSequence = iota
	precAssign
	precConditional
	precNullish
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
	precUnary
	precPostfix
	precCall
	precMember
	precPrimary
)

var binaryPrec = map[string]int{
	"??": precNullish,
	"||": precOr,
	"&&": precAnd,
	"|":  precBitOr,
	"^":  precBitXor,
	"&":  precBitAnd,
	"==": precEquality, "!=": precEquality, "===": precEquality, "!==": precEquality,
	"<": precRelational, ">": precRelational, "<=": precRelational, ">=": precRelational,
	"instanceof": precRelational, "in": precRelational,
	"<<": precShift, ">>": precShift, ">>>": precShift,
	"+": precAdditive, "-": precAdditive,
	"*": precMultiplicative, "/": precMultiplicative, "%": precMultiplicative,
	"**": precExponent,
}

func precedence(n ast.Node) int {
	switch n := n.(type) {
	case *ast.Sequence:
		return precSequence
	case *ast.Assignment:
		return precAssign
	case *ast.Conditional:
		return precConditional
	case *ast.Binary:
		if p, ok := binaryPrec[n.Operator]; ok {
			return p
		}
		return precRelational
	case *ast.Unary:
		if n.Prefix {
			return precUnary
		}
		return precPostfix
	case *ast.Call:
		return precCall
	case *ast.New, *ast.Member:
		return precMember
	case *ast.Literal:
		if n.LitKind == ast.LitNumber && strings.HasPrefix(literal(n), "-") {
			return precUnary
		}
	}
	return precPrimary
}

// expr renders n, parenthesized when it binds looser than min.
func (p *printer) expr(n ast.Node, min int) string {
	s := p.exprText(n)
	if precedence(n) < min {
		return "(" + s + ")"
	}
	return s
}

func (p *printer) exprText(n ast.Node) string {
	switch n := n.(type) {
	case nil:
		return "undefined"
	case *ast.Identifier:
		return n.Name
	case *ast.Literal:
		return literal(n)
	case *ast.This:
		return "this"
	case *ast.FunctionExpr:
		name := ""
		if n.ID != nil {
			name = " " + n.ID.Name
		}
		return "function" + name + params(n.Params) + " " + p.block(n.Body)
	case *ast.Raw:
		return "(" + strings.TrimSpace(n.Source) + ")"
	case *ast.Sequence:
		return p.list(n.Expressions, ", ")
	case *ast.Assignment:
		return p.expr(n.Left, precCall) + " " + n.Operator + " " + p.expr(n.Right, precAssign)
	case *ast.Conditional:
		return p.expr(n.Test, precNullish) + " ? " + p.expr(n.Consequent, precAssign) + " : " + p.expr(n.Alternate, precAssign)
	case *ast.Binary:
		return p.binary(n)
	case *ast.Unary:
		return p.unary(n)
	case *ast.Call:
		return p.expr(n.Callee, precCall) + "(" + p.list(n.Arguments, ", ") + ")"
	case *ast.New:
		callee := p.expr(n.Callee, precMember)
		if hasCall(n.Callee) && !strings.HasPrefix(callee, "(") {
			callee = "(" + callee + ")"
		}
		return "new " + callee + "(" + p.list(n.Arguments, ", ") + ")"
	case *ast.Member:
		obj := p.expr(n.Object, precCall)
		if lit, ok := n.Object.(*ast.Literal); ok && lit.LitKind == ast.LitNumber && !strings.HasPrefix(obj, "(") {
			obj = "(" + obj + ")"
		}
		if n.Computed {
			return obj + "[" + p.expr(n.Property, precSequence) + "]"
		}
		return obj + "." + p.exprText(n.Property)
	case *ast.Array:
		parts := make([]string, len(n.Elements))
		for i, e := range n.Elements {
			if e != nil {
				parts[i] = p.expr(e, precAssign)
			}
		}
		s := strings.Join(parts, ", ")
		if len(n.Elements) > 0 && n.Elements[len(n.Elements)-1] == nil {
			s += ","
		}
		return "[" + s + "]"
	case *ast.Object:
		if len(n.Properties) == 0 {
			return "{}"
		}
		parts := make([]string, len(n.Properties))
		for i, prop := range n.Properties {
			parts[i] = p.property(prop)
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	}
	return "undefined"
}

func (p *printer) list(nodes []ast.Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, e := range nodes {
		parts[i] = p.expr(e, precAssign)
	}
	return strings.Join(parts, sep)
}

func (p *printer) property(prop *ast.Property) string {
	if prop.Shorthand {
		return p.exprText(prop.Key)
	}
	key := p.exprText(prop.Key)
	if prop.Computed {
		key = "[" + p.expr(prop.Key, precAssign) + "]"
	}
	return key + ": " + p.expr(prop.Value, precAssign)
}

func (p *printer) binary(n *ast.Binary) string {
	prec := precedence(n)
	leftMin, rightMin := prec, prec+1
	if n.Operator == "**" {
		// Right associative, and a unary operand on the left is a syntax error.
		leftMin, rightMin = precPostfix, prec
	}
	left := p.expr(n.Left, leftMin)
	right := p.expr(n.Right, rightMin)
	if mixesNullish(n.Operator, n.Left) && !strings.HasPrefix(left, "(") {
		left = "(" + left + ")"
	}
	if mixesNullish(n.Operator, n.Right) && !strings.HasPrefix(right, "(") {
		right = "(" + right + ")"
	}
	return left + " " + n.Operator + " " + right
}

// mixesNullish reports whether operand combines with op into `??` next to
// `||` or `&&`, which needs explicit parentheses.
func mixesNullish(op string, operand ast.Node) bool {
	b, ok := operand.(*ast.Binary)
	if !ok {
		return false
	}
	logical := func(o string) bool { return o == "||" || o == "&&" }
	return op == "??" && logical(b.Operator) || logical(op) && b.Operator == "??"
}

func (p *printer) unary(n *ast.Unary) string {
	if !n.Prefix {
		return p.expr(n.Argument, precCall) + n.Operator
	}
	arg := p.expr(n.Argument, precUnary)
	if isWordOperator(n.Operator) {
		return n.Operator + " " + arg
	}
	// `- -x` and `+ ++x` must not fuse into one token.
	last := n.Operator[len(n.Operator)-1]
	if (last == '+' || last == '-') && len(arg) > 0 && arg[0] == last {
		return n.Operator + " " + arg
	}
	return n.Operator + arg
}

func isWordOperator(op string) bool {
	switch op {
	case "typeof", "void", "delete", "await":
		return true
	}
	return false
}

// hasCall reports whether a call sits in the member chain of a `new`
// callee, where it would otherwise take the argument list.
func hasCall(n ast.Node) bool {
	for {
		switch c := n.(type) {
		case *ast.Call:
			return true
		case *ast.Member:
			n = c.Object
		default:
			return false
		}
	}
}
