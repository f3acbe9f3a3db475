package ast

import (
	"reflect"
	"testing"
)

func call(name string, args ...Node) *Call {
	return &Call{Callee: Ident(name), Arguments: args}
}

func TestMatch(t *testing.T) {
	selfCall := &Pattern{Kind: KindCall, Callee: &Pattern{Kind: KindIdentifier, Name: "fact"}}
	reset := &Pattern{
		Kind:     KindAssignment,
		Operator: "=",
		Left:     &Pattern{Kind: KindIdentifier},
		Right:    &Pattern{Kind: KindIdentifier, Name: "undefined"},
	}

	tests := []struct {
		name     string
		node     Node
		pattern  *Pattern
		expected bool
	}{
		{"Nil Pattern", Ident("x"), nil, true},
		{"Nil Node", nil, selfCall, false},
		{"Self Call", call("fact", Ident("n")), selfCall, true},
		{"Other Callee", call("other"), selfCall, false},
		{"Member Callee", &Call{Callee: &Member{Object: Ident("fact"), Property: Ident("call")}}, selfCall, false},
		{"New Is Not A Call", &New{Callee: Ident("fact")}, selfCall, false},
		{"Reset", &Assignment{Operator: "=", Left: Ident("x"), Right: Undefined()}, reset, true},
		{"Compound Operator", &Assignment{Operator: "+=", Left: Ident("x"), Right: Undefined()}, reset, false},
		{"Reset Of Member", &Assignment{Operator: "=", Left: &Member{Object: Ident("o"), Property: Ident("x")}, Right: Undefined()}, reset, false},
		{"Literal Value", &ExpressionStmt{Expression: Lit("use strict")}, &Pattern{Expression: &Pattern{Value: "use strict"}}, true},
		{"Literal Value Differs", &ExpressionStmt{Expression: Lit("use asm")}, &Pattern{Expression: &Pattern{Value: "use strict"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.node, tt.pattern); got != tt.expected {
				t.Errorf("Match() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Node
		expected bool
	}{
		{"Same Identifier", Ident("a"), Ident("a"), true},
		{"Different Identifier", Ident("a"), Ident("b"), false},
		{"Number And String", Lit(1), Lit("1"), false},
		{"Same Binary", &Binary{Operator: "-", Left: Ident("n"), Right: Lit(1)}, &Binary{Operator: "-", Left: Ident("n"), Right: Lit(1)}, true},
		{"Different Operator", &Binary{Operator: "-", Left: Ident("n"), Right: Lit(1)}, &Binary{Operator: "+", Left: Ident("n"), Right: Lit(1)}, false},
		{"Prefix And Postfix", &Unary{Operator: "++", Argument: Ident("i"), Prefix: true}, &Unary{Operator: "++", Argument: Ident("i")}, false},
		{"Array Holes", &Array{Elements: []Node{nil, Lit(1)}}, &Array{Elements: []Node{Lit(1), nil}}, false},
		{"Bare Return", &Return{}, &Return{Argument: Ident("x")}, false},
		{"If Without Else", &If{Test: Ident("a"), Consequent: &Block{}}, &If{Test: Ident("a"), Consequent: &Block{}, Alternate: &Block{}}, false},
		{"Labels", &Continue{Label: Ident("a")}, &Continue{Label: Ident("b")}, false},
		{"Declarations", Declare("a", "b"), Declare("a", "b"), true},
		{"Declaration Init", &VarDecl{Declarations: []*Declarator{{ID: Ident("a"), Init: Lit(1)}}}, Declare("a"), false},
		{"Both Nil", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.expected {
				t.Errorf("Equal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMapStatements_Splices(t *testing.T) {
	list := []Node{
		Assign("a", Lit(1)),
		&Return{Argument: Ident("a")},
		&Block{Body: []Node{Assign("b", Lit(2))}},
	}
	out := MapStatements(list, func(n Node) Node {
		if n.Kind() == KindReturn {
			return &Block{Body: []Node{Assign("c", Lit(3)), &Continue{}}}
		}
		return n
	})

	kinds := make([]Kind, len(out))
	for i, n := range out {
		kinds[i] = n.Kind()
	}
	want := []Kind{KindExpressionStmt, KindExpressionStmt, KindContinue, KindBlock}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}
}

func TestClone(t *testing.T) {
	orig := &FunctionDecl{
		ID:     Ident("f"),
		Params: []*Identifier{Ident("n")},
		Body: &Block{Body: []Node{
			&Return{Argument: call("f", &Binary{Operator: "-", Left: Ident("n"), Right: Lit(1)})},
		}},
	}
	cp := Clone(orig).(*FunctionDecl)
	if !Equal(orig, cp) {
		t.Fatal("clone differs from the original")
	}

	cp.Params[0].Name = "m"
	cp.Body.Body[0].(*Return).Argument.(*Call).Callee.(*Identifier).Name = "g"
	if orig.Params[0].Name != "n" || orig.Body.Body[0].(*Return).Argument.(*Call).Callee.(*Identifier).Name != "f" {
		t.Error("changing the clone changed the original")
	}
}

func TestNames(t *testing.T) {
	tree := &Block{Body: []Node{
		Assign("x", Ident("y")),
		&Raw{Source: "let hidden = 1", Statement: true},
		&ExpressionStmt{Expression: &FunctionExpr{Params: []*Identifier{Ident("p")}, Body: &Block{Body: []Node{&Return{Argument: Ident("inner")}}}}},
	}}
	got := Names(tree)
	for _, name := range []string{"x", "y", "p", "inner"} {
		if !got[name] {
			t.Errorf("Names() missing %q", name)
		}
	}
	if got["hidden"] {
		t.Error("Names() looked inside a raw node")
	}
}

func TestBuilders(t *testing.T) {
	stmts := ZipAssign([]string{"a", "b"}, []Node{Lit(1)})
	if len(stmts) != 2 {
		t.Fatalf("ZipAssign() returned %d statements", len(stmts))
	}
	if !Equal(stmts[1], Assign("b", Undefined())) {
		t.Error("missing value was not assigned undefined")
	}
	if Declare() != nil {
		t.Error("Declare() with no names should be nil")
	}
	if got := len(ZipDeclare([]string{"a", "b", "c"})); got != 3 {
		t.Errorf("ZipDeclare() returned %d declarations", got)
	}
}

func TestIsIdentifierName(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"acc", true},
		{"_tco_temp_", true},
		{"$t", true},
		{"café", true},
		{"x1", true},
		{"1x", false},
		{"a-b", false},
		{"my label", false},
		{"while", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsIdentifierName(tt.name); got != tt.expected {
			t.Errorf("IsIdentifierName(%q) = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

func TestIsStatement(t *testing.T) {
	if !IsStatement(&Raw{Statement: true}) || IsExpression(&Raw{Statement: true}) {
		t.Error("statement raw misclassified")
	}
	if !IsExpression(&Raw{}) || !IsExpression(Ident("x")) || IsExpression(&Block{}) {
		t.Error("expression misclassified")
	}
}
