package tco

import (
	"github.com/lcalzada-xor/tailcall/pkg/ast"
)

func selfCallPattern(name string) *ast.Pattern {
	return &ast.Pattern{
		Kind:   ast.KindCall,
		Callee: &ast.Pattern{Kind: ast.KindIdentifier, Name: name},
	}
}

var conditionalPattern = &ast.Pattern{Kind: ast.KindConditional}

// returnStmt converts `return self(...)` and `return a ? b : c`; any other
// return is walked as is.
func (r *rewriter) returnStmt(n ast.Node, s *Scope) ast.Node {
	ret := n.(*ast.Return)
	if target := s.Target(); target != "" && ast.Match(ret.Argument, selfCallPattern(target)) {
		return r.convertTailCall(ret.Argument.(*ast.Call), s)
	}
	if ast.Match(ret.Argument, conditionalPattern) {
		return r.convertTernary(ret.Argument.(*ast.Conditional), s)
	}
	return r.walkChildren(n, s)
}

// convertTailCall replaces a self call in tail position with parameter
// assignments followed by `continue` to the recursion loop.
func (r *rewriter) convertTailCall(call *ast.Call, s *Scope) ast.Node {
	s.TailRecursive = true
	s.TailCalls++

	args := make([]ast.Node, len(call.Arguments))
	for i, a := range call.Arguments {
		args[i] = r.walk(a, s)
	}

	// Pair arguments with parameters. A missing argument is undefined, as in
	// a real call; an argument that is its own parameter changes nothing.
	var params, temps []string
	var values []ast.Node
	for i, p := range s.Params {
		var arg ast.Node = ast.Undefined()
		if i < len(args) {
			arg = args[i]
		}
		if ast.Equal(arg, ast.Ident(p)) {
			continue
		}
		params = append(params, p)
		temps = append(temps, s.TempNames[i])
		values = append(values, arg)
	}

	// Surplus arguments are still evaluated, after the paired ones.
	var extras []ast.Node
	for i := len(s.Params); i < len(args); i++ {
		switch args[i].Kind() {
		case ast.KindLiteral, ast.KindIdentifier:
		default:
			extras = append(extras, &ast.ExpressionStmt{Expression: args[i]})
		}
	}

	var stmts []ast.Node
	if needsTemps(values) || (len(extras) > 0 && len(params) > 0) {
		for _, t := range temps {
			s.UseTemp(t)
		}
		stmts = append(stmts, ast.ZipAssign(temps, values)...)
		stmts = append(stmts, extras...)
		tempRefs := make([]ast.Node, len(temps))
		for i, t := range temps {
			tempRefs[i] = ast.Ident(t)
		}
		stmts = append(stmts, ast.ZipAssign(params, tempRefs)...)
		r.log.Detail("tail call staged through %d temps", len(temps))
	} else {
		stmts = append(stmts, directAssign(params, values)...)
		stmts = append(stmts, extras...)
		r.log.Detail("tail call assigns %d params directly", len(params))
	}

	stmts = append(stmts, &ast.Continue{Label: ast.Ident(r.loopLabel)})
	return &ast.Block{Body: stmts}
}

// needsTemps reports whether the new parameter values must be staged. With
// fewer than two changes, or when every change but the last is a literal,
// no assignment can clobber a value another argument still has to read.
func needsTemps(values []ast.Node) bool {
	if len(values) < 2 {
		return false
	}
	for _, v := range values[:len(values)-1] {
		if v.Kind() != ast.KindLiteral {
			return true
		}
	}
	return false
}

// directAssign assigns parameters in place. The last value may read other
// parameters, so it is assigned before the literal ones.
func directAssign(params []string, values []ast.Node) []ast.Node {
	n := len(params)
	if n < 2 || values[n-1].Kind() == ast.KindLiteral {
		return ast.ZipAssign(params, values)
	}
	order := append([]string{params[n-1]}, params[:n-1]...)
	vals := append([]ast.Node{values[n-1]}, values[:n-1]...)
	return ast.ZipAssign(order, vals)
}
