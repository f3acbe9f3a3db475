package ast

// Children returns the direct child nodes of n in field order, including
// binding identifiers. nil children are skipped.
func Children(n Node) []Node {
	var out []Node
	add := func(cs ...Node) {
		for _, c := range cs {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	addIdent := func(id *Identifier) {
		if id != nil {
			out = append(out, id)
		}
	}

	switch n := n.(type) {
	case *Program:
		add(n.Body...)
	case *FunctionDecl:
		addIdent(n.ID)
		for _, p := range n.Params {
			addIdent(p)
		}
		if n.Body != nil {
			add(n.Body)
		}
	case *FunctionExpr:
		addIdent(n.ID)
		for _, p := range n.Params {
			addIdent(p)
		}
		if n.Body != nil {
			add(n.Body)
		}
	case *Return:
		add(n.Argument)
	case *Block:
		add(n.Body...)
	case *VarDecl:
		for _, d := range n.Declarations {
			addIdent(d.ID)
			add(d.Init)
		}
	case *If:
		add(n.Test, n.Consequent, n.Alternate)
	case *For:
		add(n.Init, n.Test, n.Update, n.Body)
	case *ForIn:
		add(n.Left, n.Right, n.Body)
	case *ForOf:
		add(n.Left, n.Right, n.Body)
	case *While:
		add(n.Test, n.Body)
	case *DoWhile:
		add(n.Body, n.Test)
	case *ExpressionStmt:
		add(n.Expression)
	case *Continue:
		addIdent(n.Label)
	case *Break:
		addIdent(n.Label)
	case *Labeled:
		addIdent(n.Label)
		add(n.Body)
	case *Throw:
		add(n.Argument)
	case *Switch:
		add(n.Discriminant)
		for _, c := range n.Cases {
			add(c.Test)
			add(c.Consequent...)
		}
	case *Call:
		add(n.Callee)
		add(n.Arguments...)
	case *New:
		add(n.Callee)
		add(n.Arguments...)
	case *Conditional:
		add(n.Test, n.Consequent, n.Alternate)
	case *Assignment:
		add(n.Left, n.Right)
	case *Sequence:
		add(n.Expressions...)
	case *Binary:
		add(n.Left, n.Right)
	case *Unary:
		add(n.Argument)
	case *Member:
		add(n.Object, n.Property)
	case *Array:
		add(n.Elements...)
	case *Object:
		for _, p := range n.Properties {
			add(p.Key, p.Value)
		}
	}
	return out
}

// Inspect traverses the tree rooted at n depth-first, calling fn for each
// node. Children of a node are skipped when fn returns false.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, fn)
	}
}

// Names returns every identifier name occurring in the tree rooted at n,
// including nested functions. Raw nodes are opaque and contribute nothing.
func Names(n Node) map[string]bool {
	names := make(map[string]bool)
	Inspect(n, func(c Node) bool {
		if id, ok := c.(*Identifier); ok {
			names[id.Name] = true
		}
		return true
	})
	return names
}
