package ast

// Ident builds an identifier.
func Ident(name string) *Identifier {
	return &Identifier{Name: name}
}

// Undefined builds a reference to the global `undefined`.
func Undefined() *Identifier {
	return &Identifier{Name: "undefined"}
}

// Lit builds a literal from a Go value: bool, string, nil or any numeric type.
func Lit(v any) *Literal {
	switch v := v.(type) {
	case nil:
		return &Literal{LitKind: LitNull}
	case bool:
		return &Literal{LitKind: LitBoolean, Value: v}
	case string:
		return &Literal{LitKind: LitString, Value: v}
	case int:
		return &Literal{LitKind: LitNumber, Value: float64(v)}
	case int64:
		return &Literal{LitKind: LitNumber, Value: float64(v)}
	case float64:
		return &Literal{LitKind: LitNumber, Value: v}
	}
	panic("ast: unsupported literal value")
}

// Assign builds the statement `name = value;`.
func Assign(name string, value Node) *ExpressionStmt {
	if value == nil {
		value = Undefined()
	}
	return &ExpressionStmt{Expression: &Assignment{Operator: "=", Left: Ident(name), Right: value}}
}

// ZipAssign pairs names with values into `name = value;` statements. A
// missing or nil value assigns undefined.
func ZipAssign(names []string, values []Node) []Node {
	out := make([]Node, len(names))
	for i, name := range names {
		var v Node
		if i < len(values) {
			v = values[i]
		}
		out[i] = Assign(name, v)
	}
	return out
}

// ZipDeclare builds one value-less `var name;` declaration per name.
func ZipDeclare(names []string) []Node {
	out := make([]Node, len(names))
	for i, name := range names {
		out[i] = Declare(name)
	}
	return out
}

// Declare builds a single `var a, b, c;` declaration without initialisers.
// It returns nil when names is empty.
func Declare(names ...string) *VarDecl {
	if len(names) == 0 {
		return nil
	}
	decls := make([]*Declarator, len(names))
	for i, name := range names {
		decls[i] = &Declarator{ID: Ident(name)}
	}
	return &VarDecl{Declarations: decls}
}

// Identifiers returns the names of ids.
func Identifiers(ids []*Identifier) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Name
	}
	return out
}
