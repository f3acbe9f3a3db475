// Package schema checks that a tree is well formed before it is printed:
// every slot holds the right category of node, names are valid
// identifiers, and every break or continue has a target.
package schema

import (
	"fmt"
	"strings"

	"github.com/lcalzada-xor/tailcall/pkg/ast"
)

// SchemaError locates the first problem found. Path lists field names and
// indices from the root, e.g. "body[0].body.body[2].argument".
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return "schema: " + e.Reason
	}
	return fmt.Sprintf("schema: %s: %s", e.Path, e.Reason)
}

// Validate walks n and returns the first *SchemaError, or nil.
func Validate(n ast.Node) error {
	v := &validator{}
	v.node(n, "")
	if v.err != nil {
		return v.err
	}
	return nil
}

// context is what encloses the node being checked within one function.
type context struct {
	labels    []string
	loops     int
	breakable int
}

type validator struct {
	err *SchemaError
	ctx context
}

func (v *validator) fail(path, format string, args ...any) {
	if v.err == nil {
		v.err = &SchemaError{Path: path, Reason: fmt.Sprintf(format, args...)}
	}
}

func join(path, field string) string {
	if path == "" {
		return field
	}
	if strings.HasPrefix(field, "[") {
		return path + field
	}
	return path + "." + field
}

func index(path, field string, i int) string {
	return fmt.Sprintf("%s[%d]", join(path, field), i)
}

func (v *validator) stmt(n ast.Node, path string) {
	if n == nil {
		v.fail(path, "missing statement")
		return
	}
	if !ast.IsStatement(n) {
		v.fail(path, "%s is not a statement", n.Kind())
		return
	}
	v.node(n, path)
}

func (v *validator) stmts(list []ast.Node, path, field string) {
	for i, s := range list {
		v.stmt(s, index(path, field, i))
	}
}

func (v *validator) expr(n ast.Node, path string) {
	if n == nil {
		v.fail(path, "missing expression")
		return
	}
	v.optExpr(n, path)
}

func (v *validator) optExpr(n ast.Node, path string) {
	if n == nil {
		return
	}
	if !ast.IsExpression(n) {
		v.fail(path, "%s is not an expression", n.Kind())
		return
	}
	v.node(n, path)
}

func (v *validator) ident(id *ast.Identifier, path string) {
	if id == nil {
		v.fail(path, "missing identifier")
		return
	}
	if !ast.IsIdentifierName(id.Name) {
		v.fail(path, "%q is not a valid identifier", id.Name)
	}
}

// target checks a value used as an assignment or for-in target.
func (v *validator) target(n ast.Node, path string) {
	switch n.(type) {
	case *ast.Identifier, *ast.Member:
		v.node(n, path)
	case nil:
		v.fail(path, "missing assignment target")
	default:
		v.fail(path, "%s cannot be assigned to", n.Kind())
	}
}

func (v *validator) node(n ast.Node, path string) {
	if v.err != nil || n == nil {
		return
	}
	switch n := n.(type) {
	case *ast.Program:
		v.stmts(n.Body, path, "body")
	case *ast.FunctionDecl:
		if n.ID == nil {
			v.fail(path, "function declaration without a name")
			return
		}
		v.function(n.ID, n.Params, n.Body, path)
	case *ast.FunctionExpr:
		v.function(n.ID, n.Params, n.Body, path)
	case *ast.Return:
		v.optExpr(n.Argument, join(path, "argument"))
	case *ast.Block:
		v.stmts(n.Body, path, "body")
	case *ast.VarDecl:
		v.varDecl(n, path)
	case *ast.If:
		v.expr(n.Test, join(path, "test"))
		v.stmt(n.Consequent, join(path, "consequent"))
		if n.Alternate != nil {
			v.stmt(n.Alternate, join(path, "alternate"))
		}
	case *ast.For:
		switch init := n.Init.(type) {
		case nil:
		case *ast.VarDecl:
			v.varDecl(init, join(path, "init"))
		default:
			if !ast.IsExpression(init) {
				v.fail(join(path, "init"), "%s is not an expression or declaration", init.Kind())
				return
			}
			v.node(init, join(path, "init"))
		}
		v.optExpr(n.Test, join(path, "test"))
		v.optExpr(n.Update, join(path, "update"))
		v.loopBody(n.Body, join(path, "body"))
	case *ast.ForIn:
		v.forInto(n.Left, n.Right, n.Body, path)
	case *ast.ForOf:
		v.forInto(n.Left, n.Right, n.Body, path)
	case *ast.While:
		v.expr(n.Test, join(path, "test"))
		v.loopBody(n.Body, join(path, "body"))
	case *ast.DoWhile:
		v.loopBody(n.Body, join(path, "body"))
		v.expr(n.Test, join(path, "test"))
	case *ast.ExpressionStmt:
		v.expr(n.Expression, join(path, "expression"))
	case *ast.Continue:
		v.jump("continue", n.Label, path)
	case *ast.Break:
		v.jump("break", n.Label, path)
	case *ast.Labeled:
		v.ident(n.Label, join(path, "label"))
		if n.Label == nil {
			return
		}
		for _, l := range v.ctx.labels {
			if l == n.Label.Name {
				v.fail(join(path, "label"), "label %q is already declared", l)
				return
			}
		}
		v.ctx.labels = append(v.ctx.labels, n.Label.Name)
		v.stmt(n.Body, join(path, "body"))
		v.ctx.labels = v.ctx.labels[:len(v.ctx.labels)-1]
	case *ast.Throw:
		v.expr(n.Argument, join(path, "argument"))
	case *ast.Empty, *ast.This, *ast.Raw:
	case *ast.Switch:
		v.expr(n.Discriminant, join(path, "discriminant"))
		v.ctx.breakable++
		defaults := 0
		for i, c := range n.Cases {
			cp := index(path, "cases", i)
			if c.Test == nil {
				defaults++
				if defaults > 1 {
					v.fail(cp, "more than one default clause")
				}
			}
			v.optExpr(c.Test, join(cp, "test"))
			v.stmts(c.Consequent, cp, "consequent")
		}
		v.ctx.breakable--
	case *ast.Identifier:
		v.ident(n, path)
	case *ast.Literal:
		v.literal(n, path)
	case *ast.Call:
		v.expr(n.Callee, join(path, "callee"))
		v.exprs(n.Arguments, path, "arguments")
	case *ast.New:
		v.expr(n.Callee, join(path, "callee"))
		v.exprs(n.Arguments, path, "arguments")
	case *ast.Conditional:
		v.expr(n.Test, join(path, "test"))
		v.expr(n.Consequent, join(path, "consequent"))
		v.expr(n.Alternate, join(path, "alternate"))
	case *ast.Assignment:
		if n.Operator == "" || !strings.HasSuffix(n.Operator, "=") {
			v.fail(path, "invalid assignment operator %q", n.Operator)
			return
		}
		v.target(n.Left, join(path, "left"))
		v.expr(n.Right, join(path, "right"))
	case *ast.Sequence:
		if len(n.Expressions) == 0 {
			v.fail(path, "empty sequence")
			return
		}
		v.exprs(n.Expressions, path, "expressions")
	case *ast.Binary:
		if n.Operator == "" {
			v.fail(path, "missing operator")
			return
		}
		v.expr(n.Left, join(path, "left"))
		v.expr(n.Right, join(path, "right"))
	case *ast.Unary:
		if n.Operator == "" {
			v.fail(path, "missing operator")
			return
		}
		if n.Operator == "++" || n.Operator == "--" {
			v.target(n.Argument, join(path, "argument"))
			return
		}
		v.expr(n.Argument, join(path, "argument"))
	case *ast.Member:
		v.expr(n.Object, join(path, "object"))
		if n.Computed {
			v.expr(n.Property, join(path, "property"))
		} else if id, ok := n.Property.(*ast.Identifier); !ok || id.Name == "" {
			v.fail(join(path, "property"), "non-computed property must be an identifier")
		}
	case *ast.Array:
		for i, e := range n.Elements {
			v.optExpr(e, index(path, "elements", i))
		}
	case *ast.Object:
		for i, p := range n.Properties {
			pp := index(path, "properties", i)
			if p == nil {
				v.fail(pp, "missing property")
				return
			}
			if p.Computed {
				v.expr(p.Key, join(pp, "key"))
			} else {
				switch p.Key.(type) {
				case *ast.Identifier, *ast.Literal:
				default:
					v.fail(join(pp, "key"), "property key must be an identifier or literal")
				}
			}
			v.expr(p.Value, join(pp, "value"))
		}
	default:
		v.fail(path, "unknown node %T", n)
	}
}

// function checks a function in a fresh context: labels and loops do not
// reach across function boundaries.
func (v *validator) function(id *ast.Identifier, params []*ast.Identifier, body *ast.Block, path string) {
	if id != nil {
		v.ident(id, join(path, "id"))
	}
	for i, p := range params {
		v.ident(p, index(path, "params", i))
	}
	if body == nil {
		v.fail(join(path, "body"), "missing function body")
		return
	}
	saved := v.ctx
	v.ctx = context{}
	v.node(body, join(path, "body"))
	v.ctx = saved
}

func (v *validator) varDecl(n *ast.VarDecl, path string) {
	if len(n.Declarations) == 0 {
		v.fail(path, "declaration without declarators")
		return
	}
	for i, d := range n.Declarations {
		dp := index(path, "declarations", i)
		v.ident(d.ID, join(dp, "id"))
		v.optExpr(d.Init, join(dp, "init"))
	}
}

func (v *validator) forInto(left, right, body ast.Node, path string) {
	if decl, ok := left.(*ast.VarDecl); ok {
		if len(decl.Declarations) != 1 {
			v.fail(join(path, "left"), "exactly one binding expected")
			return
		}
		v.varDecl(decl, join(path, "left"))
	} else {
		v.target(left, join(path, "left"))
	}
	v.expr(right, join(path, "right"))
	v.loopBody(body, join(path, "body"))
}

func (v *validator) loopBody(body ast.Node, path string) {
	v.ctx.loops++
	v.ctx.breakable++
	v.stmt(body, path)
	v.ctx.loops--
	v.ctx.breakable--
}

func (v *validator) exprs(list []ast.Node, path, field string) {
	for i, e := range list {
		v.expr(e, index(path, field, i))
	}
}

func (v *validator) jump(keyword string, label *ast.Identifier, path string) {
	if label != nil {
		for _, l := range v.ctx.labels {
			if l == label.Name {
				return
			}
		}
		v.fail(join(path, "label"), "%s to unknown label %q", keyword, label.Name)
		return
	}
	switch {
	case keyword == "continue" && v.ctx.loops == 0:
		v.fail(path, "continue outside of a loop")
	case keyword == "break" && v.ctx.breakable == 0:
		v.fail(path, "break outside of a loop or switch")
	}
}

func (v *validator) literal(l *ast.Literal, path string) {
	ok := true
	switch l.LitKind {
	case ast.LitNumber:
		_, ok = l.Value.(float64)
	case ast.LitString:
		_, ok = l.Value.(string)
	case ast.LitBoolean:
		_, ok = l.Value.(bool)
	case ast.LitNull:
		ok = l.Value == nil
	case ast.LitRegExp:
		ok = strings.HasPrefix(l.Raw, "/")
	default:
		ok = false
	}
	if !ok {
		v.fail(path, "literal value %v does not match its kind", l.Value)
	}
}
