package ast

// Pattern describes a subset of a node's shape. Zero-valued fields match
// anything, so a Pattern only constrains the fields it sets.
type Pattern struct {
	Kind       Kind   // node kind, KindInvalid for any
	Name       string // identifier name
	Operator   string // assignment, binary or unary operator
	Value      any    // literal value, compared with ==
	Callee     *Pattern
	Expression *Pattern // expression of an ExpressionStmt
	Left       *Pattern
	Right      *Pattern
}

// Match reports whether n has the shape described by p.
func Match(n Node, p *Pattern) bool {
	if p == nil {
		return true
	}
	if n == nil {
		return false
	}
	if p.Kind != KindInvalid && n.Kind() != p.Kind {
		return false
	}
	if p.Name != "" {
		id, ok := n.(*Identifier)
		if !ok || id.Name != p.Name {
			return false
		}
	}
	if p.Operator != "" && operatorOf(n) != p.Operator {
		return false
	}
	if p.Value != nil {
		lit, ok := n.(*Literal)
		if !ok || lit.Value != p.Value {
			return false
		}
	}
	if p.Callee != nil && !Match(calleeOf(n), p.Callee) {
		return false
	}
	if p.Expression != nil {
		stmt, ok := n.(*ExpressionStmt)
		if !ok || !Match(stmt.Expression, p.Expression) {
			return false
		}
	}
	if p.Left != nil || p.Right != nil {
		left, right := operandsOf(n)
		if !Match(left, p.Left) || !Match(right, p.Right) {
			return false
		}
	}
	return true
}

func operatorOf(n Node) string {
	switch n := n.(type) {
	case *Assignment:
		return n.Operator
	case *Binary:
		return n.Operator
	case *Unary:
		return n.Operator
	}
	return ""
}

func calleeOf(n Node) Node {
	switch n := n.(type) {
	case *Call:
		return n.Callee
	case *New:
		return n.Callee
	}
	return nil
}

func operandsOf(n Node) (Node, Node) {
	switch n := n.(type) {
	case *Assignment:
		return n.Left, n.Right
	case *Binary:
		return n.Left, n.Right
	}
	return nil, nil
}

// Equal reports whether a and b are structurally identical trees.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch a := a.(type) {
	case *Identifier:
		return a.Name == b.(*Identifier).Name
	case *Literal:
		bl := b.(*Literal)
		return a.LitKind == bl.LitKind && a.Value == bl.Value && (a.LitKind != LitRegExp || a.Raw == bl.Raw)
	case *Raw:
		br := b.(*Raw)
		return a.Source == br.Source && a.Statement == br.Statement
	case *Assignment:
		if a.Operator != b.(*Assignment).Operator {
			return false
		}
	case *Binary:
		if a.Operator != b.(*Binary).Operator {
			return false
		}
	case *Unary:
		bu := b.(*Unary)
		if a.Operator != bu.Operator || a.Prefix != bu.Prefix {
			return false
		}
	case *Member:
		if a.Computed != b.(*Member).Computed {
			return false
		}
	case *Object:
		bo := b.(*Object)
		if len(a.Properties) != len(bo.Properties) {
			return false
		}
		for i, p := range a.Properties {
			if p.Computed != bo.Properties[i].Computed || p.Shorthand != bo.Properties[i].Shorthand {
				return false
			}
		}
	case *Array:
		// Holes are dropped by Children, so compare positions explicitly.
		ba := b.(*Array)
		if len(a.Elements) != len(ba.Elements) {
			return false
		}
		for i, e := range a.Elements {
			if !Equal(e, ba.Elements[i]) {
				return false
			}
		}
		return true
	case *FunctionExpr:
		if (a.ID == nil) != (b.(*FunctionExpr).ID == nil) {
			return false
		}
	case *Return:
		if (a.Argument == nil) != (b.(*Return).Argument == nil) {
			return false
		}
	case *Switch:
		bs := b.(*Switch)
		if len(a.Cases) != len(bs.Cases) {
			return false
		}
		for i, c := range a.Cases {
			if (c.Test == nil) != (bs.Cases[i].Test == nil) || len(c.Consequent) != len(bs.Cases[i].Consequent) {
				return false
			}
		}
	case *If, *For, *VarDecl, *Continue, *Break:
		// Optional fields shift positions in Children; compare slot by slot.
		return equalSlots(a, b)
	}

	ac, bc := Children(a), Children(b)
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !Equal(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

func equalSlots(a, b Node) bool {
	switch a := a.(type) {
	case *If:
		bi := b.(*If)
		return Equal(a.Test, bi.Test) && Equal(a.Consequent, bi.Consequent) && Equal(a.Alternate, bi.Alternate)
	case *For:
		bf := b.(*For)
		return Equal(a.Init, bf.Init) && Equal(a.Test, bf.Test) && Equal(a.Update, bf.Update) && Equal(a.Body, bf.Body)
	case *VarDecl:
		bv := b.(*VarDecl)
		if len(a.Declarations) != len(bv.Declarations) {
			return false
		}
		for i, d := range a.Declarations {
			if !equalIdent(d.ID, bv.Declarations[i].ID) || !Equal(d.Init, bv.Declarations[i].Init) {
				return false
			}
		}
		return true
	case *Continue:
		return equalIdent(a.Label, b.(*Continue).Label)
	case *Break:
		return equalIdent(a.Label, b.(*Break).Label)
	}
	return false
}

func equalIdent(a, b *Identifier) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Name == b.Name
}
