package printer

import (
	"testing"

	"github.com/lcalzada-xor/tailcall/pkg/ast"
	"github.com/lcalzada-xor/tailcall/pkg/parser"
)

func bin(op string, l, r ast.Node) *ast.Binary {
	return &ast.Binary{Operator: op, Left: l, Right: r}
}

func TestPrint_Expressions(t *testing.T) {
	a, b, c := ast.Ident("a"), ast.Ident("b"), ast.Ident("c")

	tests := []struct {
		name     string
		node     ast.Node
		expected string
	}{
		{"Precedence Parens", bin("*", bin("+", a, b), c), "(a + b) * c"},
		{"No Redundant Parens", bin("+", bin("*", a, b), c), "a * b + c"},
		{"Left Associative", bin("-", a, bin("-", b, c)), "a - (b - c)"},
		{"Exponent Right Associative", bin("**", a, bin("**", b, c)), "a ** b ** c"},
		{"Exponent Unary Base", bin("**", &ast.Unary{Operator: "-", Argument: a, Prefix: true}, b), "(-a) ** b"},
		{"Nullish Mixed With Or", bin("??", bin("||", a, b), c), "(a || b) ?? c"},
		{"Double Negation", &ast.Unary{Operator: "-", Prefix: true, Argument: &ast.Unary{Operator: "-", Argument: a, Prefix: true}}, "- -a"},
		{"Typeof", &ast.Unary{Operator: "typeof", Argument: a, Prefix: true}, "typeof a"},
		{"Postfix", &ast.Unary{Operator: "++", Argument: a}, "a++"},
		{"Number Member", &ast.Member{Object: ast.Lit(1), Property: ast.Ident("toString")}, "(1).toString"},
		{"Computed Member", &ast.Member{Object: a, Property: ast.Lit("x"), Computed: true}, `a["x"]`},
		{"Call With Sequence Arg", &ast.Call{Callee: a, Arguments: []ast.Node{&ast.Sequence{Expressions: []ast.Node{b, c}}}}, "a((b, c))"},
		{"New With Call Callee", &ast.New{Callee: &ast.Member{Object: &ast.Call{Callee: a}, Property: b}}, "new (a().b)()"},
		{"Conditional", &ast.Conditional{Test: a, Consequent: b, Alternate: c}, "a ? b : c"},
		{"Assignment In Conditional Test", &ast.Conditional{Test: &ast.Assignment{Operator: "=", Left: a, Right: b}, Consequent: b, Alternate: c}, "(a = b) ? b : c"},
		{"Array Holes", &ast.Array{Elements: []ast.Node{ast.Lit(1), nil}}, "[1, ,]"},
		{"Object", &ast.Object{Properties: []*ast.Property{{Key: ast.Ident("k"), Value: ast.Lit(true)}}}, "{ k: true }"},
		{"Null Literal", ast.Lit(nil), "null"},
		{"Raw Expression", &ast.Raw{Source: "x => x"}, "(x => x)"},
		{"Fractional Number", ast.Lit(0.5), "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Print(tt.node); got != tt.expected {
				t.Errorf("Print() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPrint_Statements(t *testing.T) {
	ret := func(n ast.Node) *ast.Return { return &ast.Return{Argument: n} }

	tests := []struct {
		name     string
		node     ast.Node
		expected string
	}{
		{
			name:     "If Else Without Blocks",
			node:     &ast.If{Test: ast.Ident("a"), Consequent: ret(ast.Ident("x")), Alternate: ret(ast.Ident("y"))},
			expected: "if (a)\n    return x;\nelse\n    return y;\n",
		},
		{
			name: "Else If Chain",
			node: &ast.If{
				Test:       ast.Ident("a"),
				Consequent: &ast.Block{Body: []ast.Node{ret(ast.Lit(1))}},
				Alternate: &ast.If{
					Test:       ast.Ident("b"),
					Consequent: &ast.Block{Body: []ast.Node{ret(ast.Lit(2))}},
					Alternate:  &ast.Block{Body: []ast.Node{ret(ast.Lit(3))}},
				},
			},
			expected: "if (a) {\n    return 1;\n} else if (b) {\n    return 2;\n} else {\n    return 3;\n}\n",
		},
		{
			name: "Dangling Else",
			node: &ast.If{
				Test:       ast.Ident("a"),
				Consequent: &ast.If{Test: ast.Ident("b"), Consequent: ret(nil)},
				Alternate:  ret(nil),
			},
			expected: "if (a) {\n    if (b)\n        return;\n} else\n    return;\n",
		},
		{
			name: "Labeled Loop",
			node: &ast.Labeled{
				Label: ast.Ident("_tailCall_"),
				Body: &ast.While{Test: ast.Lit(true), Body: &ast.Block{Body: []ast.Node{
					&ast.Continue{Label: ast.Ident("_tailCall_")},
				}}},
			},
			expected: "_tailCall_: while (true) {\n    continue _tailCall_;\n}\n",
		},
		{
			name:     "Object Statement",
			node:     &ast.ExpressionStmt{Expression: &ast.Object{}},
			expected: "({});\n",
		},
		{
			name:     "Function Expression Statement",
			node:     &ast.ExpressionStmt{Expression: &ast.Call{Callee: &ast.FunctionExpr{Body: &ast.Block{}}}},
			expected: "(function() {}());\n",
		},
		{
			name:     "Identifier Named Like Keyword",
			node:     &ast.ExpressionStmt{Expression: &ast.Call{Callee: ast.Ident("functional")}},
			expected: "functional();\n",
		},
		{
			name:     "Var With Init",
			node:     &ast.VarDecl{Declarations: []*ast.Declarator{{ID: ast.Ident("a"), Init: ast.Lit(1)}, {ID: ast.Ident("b")}}},
			expected: "var a = 1, b;\n",
		},
		{
			name: "For With In Operator",
			node: &ast.For{
				Init: &ast.Assignment{Operator: "=", Left: ast.Ident("x"), Right: bin("in", ast.Ident("k"), ast.Ident("o"))},
				Body: &ast.Empty{},
			},
			expected: "for ((x = k in o);;);\n",
		},
		{
			name:     "Raw Statement Gets Semicolon",
			node:     &ast.Raw{Source: "let x = 1", Statement: true},
			expected: "let x = 1;\n",
		},
		{
			name:     "Bare Return",
			node:     ret(nil),
			expected: "return;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Print(tt.node); got != tt.expected {
				t.Errorf("Print() =\n%s\nwant\n%s", got, tt.expected)
			}
		})
	}
}

func TestPrint_RoundTrip(t *testing.T) {
	sources := []string{
		"function fact(n, acc) { if (n <= 1) return acc; return fact(n - 1, n * acc); }",
		"function sum(x, y) { return y > 0 ? sum(x + 1, y - 1) : y < 0 ? sum(x - 1, y + 1) : x; }",
		"var o = { a: 1, 'b': [1, , 3], [k]: -1 }; o.a += 2; delete o.b;",
		"for (var i = 0, j = 10; i < j; i++, j--) { if (i % 2) continue; else break; }",
		"outer: for (var k in o) { do { x = typeof k; } while (!x); }",
		"switch (x) { case 1: y = 2; break; default: y = 3; }",
		"var f = function named(a) { 'use strict'; return new Date(a).getTime(); };",
		"let t = `tpl ${x}`; const g = (a, b) => a + b; try { g(1, 2); } catch (e) { throw e; }",
		"x = a ? b : c, y = (a, b); z = /re+/g.test(s) && !(p || q);",
		"if (a) if (b) f(); else g();",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			prog, err := parser.Parse(src)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			first := Print(prog)

			reparsed, err := parser.Parse(first)
			if err != nil {
				t.Fatalf("printed source does not parse: %v\n%s", err, first)
			}
			if second := Print(reparsed); second != first {
				t.Errorf("printing is not stable:\n%s\n---\n%s", first, second)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"plain", `"plain"`},
		{"a\"b", `"a\"b"`},
		{"line\nbreak\t", `"line\nbreak\t"`},
		{`back\slash`, `"back\\slash"`},
		{"\x01", `"\x01"`},
		{"é", `"é"`},
	}

	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.expected {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.expected)
		}
	}
}
