package ast

// MapFunc rewrites a single child node.
type MapFunc func(Node) Node

// MapChildren returns a copy of n whose child nodes have been replaced by
// fn(child), visiting fields in declaration order. fn is never called with
// nil. Binding identifiers (names, parameters, labels, declarator targets)
// are copied, not mapped. n itself is never modified.
func MapChildren(n Node, fn MapFunc) Node {
	m := func(c Node) Node {
		if c == nil {
			return nil
		}
		return fn(c)
	}

	switch n := n.(type) {
	case nil:
		return nil
	case *Program:
		return &Program{Body: MapStatements(n.Body, fn)}
	case *FunctionDecl:
		return &FunctionDecl{ID: cloneIdent(n.ID), Params: cloneIdents(n.Params), Body: mapBlock(n.Body, fn)}
	case *FunctionExpr:
		return &FunctionExpr{ID: cloneIdent(n.ID), Params: cloneIdents(n.Params), Body: mapBlock(n.Body, fn)}
	case *Return:
		return &Return{Argument: m(n.Argument)}
	case *Block:
		return &Block{Body: MapStatements(n.Body, fn)}
	case *VarDecl:
		decls := make([]*Declarator, len(n.Declarations))
		for i, d := range n.Declarations {
			decls[i] = &Declarator{ID: cloneIdent(d.ID), Init: m(d.Init)}
		}
		return &VarDecl{Declarations: decls}
	case *If:
		return &If{Test: m(n.Test), Consequent: m(n.Consequent), Alternate: m(n.Alternate)}
	case *For:
		return &For{Init: m(n.Init), Test: m(n.Test), Update: m(n.Update), Body: m(n.Body)}
	case *ForIn:
		return &ForIn{Left: m(n.Left), Right: m(n.Right), Body: m(n.Body)}
	case *ForOf:
		return &ForOf{Left: m(n.Left), Right: m(n.Right), Body: m(n.Body)}
	case *While:
		return &While{Test: m(n.Test), Body: m(n.Body)}
	case *DoWhile:
		return &DoWhile{Body: m(n.Body), Test: m(n.Test)}
	case *ExpressionStmt:
		return &ExpressionStmt{Expression: m(n.Expression)}
	case *Continue:
		return &Continue{Label: cloneIdent(n.Label)}
	case *Break:
		return &Break{Label: cloneIdent(n.Label)}
	case *Labeled:
		return &Labeled{Label: cloneIdent(n.Label), Body: m(n.Body)}
	case *Throw:
		return &Throw{Argument: m(n.Argument)}
	case *Empty:
		return &Empty{}
	case *Switch:
		cases := make([]*SwitchCase, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = &SwitchCase{Test: m(c.Test), Consequent: MapStatements(c.Consequent, fn)}
		}
		return &Switch{Discriminant: m(n.Discriminant), Cases: cases}
	case *Identifier:
		return &Identifier{Name: n.Name}
	case *Literal:
		cp := *n
		return &cp
	case *Call:
		return &Call{Callee: m(n.Callee), Arguments: mapExprs(n.Arguments, m)}
	case *New:
		return &New{Callee: m(n.Callee), Arguments: mapExprs(n.Arguments, m)}
	case *Conditional:
		return &Conditional{Test: m(n.Test), Consequent: m(n.Consequent), Alternate: m(n.Alternate)}
	case *Assignment:
		return &Assignment{Operator: n.Operator, Left: m(n.Left), Right: m(n.Right)}
	case *Sequence:
		return &Sequence{Expressions: mapExprs(n.Expressions, m)}
	case *Binary:
		return &Binary{Operator: n.Operator, Left: m(n.Left), Right: m(n.Right)}
	case *Unary:
		return &Unary{Operator: n.Operator, Argument: m(n.Argument), Prefix: n.Prefix}
	case *Member:
		prop := n.Property
		if n.Computed {
			prop = m(prop)
		} else if id, ok := prop.(*Identifier); ok {
			prop = cloneIdent(id)
		}
		return &Member{Object: m(n.Object), Property: prop, Computed: n.Computed}
	case *Array:
		return &Array{Elements: mapExprs(n.Elements, m)}
	case *Object:
		props := make([]*Property, len(n.Properties))
		for i, p := range n.Properties {
			key := p.Key
			if p.Computed {
				key = m(key)
			} else {
				key = Clone(key)
			}
			props[i] = &Property{Key: key, Value: m(p.Value), Computed: p.Computed, Shorthand: p.Shorthand}
		}
		return &Object{Properties: props}
	case *This:
		return &This{}
	case *Raw:
		cp := *n
		return &cp
	}
	return n
}

// MapStatements maps every statement of list through fn. When fn turns a
// non-block statement into a Block, the block's statements are spliced
// into the result in its place, so one statement can expand into many.
func MapStatements(list []Node, fn MapFunc) []Node {
	out := make([]Node, 0, len(list))
	for _, stmt := range list {
		if stmt == nil {
			continue
		}
		mapped := fn(stmt)
		if mapped == nil {
			continue
		}
		if block, ok := mapped.(*Block); ok && stmt.Kind() != KindBlock {
			out = append(out, block.Body...)
			continue
		}
		out = append(out, mapped)
	}
	return out
}

// Clone returns a deep copy of n.
func Clone(n Node) Node {
	return MapChildren(n, Clone)
}

func mapBlock(b *Block, fn MapFunc) *Block {
	if b == nil {
		return nil
	}
	mapped := fn(b)
	if mapped == nil {
		return &Block{}
	}
	if block, ok := mapped.(*Block); ok {
		return block
	}
	// A handler replaced the body with a single statement; keep it a block.
	return &Block{Body: []Node{mapped}}
}

func mapExprs(list []Node, m func(Node) Node) []Node {
	if list == nil {
		return nil
	}
	out := make([]Node, len(list))
	for i, e := range list {
		out[i] = m(e)
	}
	return out
}

func cloneIdent(id *Identifier) *Identifier {
	if id == nil {
		return nil
	}
	return &Identifier{Name: id.Name}
}

func cloneIdents(ids []*Identifier) []*Identifier {
	if ids == nil {
		return nil
	}
	out := make([]*Identifier, len(ids))
	for i, id := range ids {
		out[i] = cloneIdent(id)
	}
	return out
}
