package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/lcalzada-xor/tailcall/pkg/ast"
)

func firstFunction(t *testing.T, src string) *ast.FunctionDecl {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for _, s := range prog.Body {
		if fn, ok := s.(*ast.FunctionDecl); ok {
			return fn
		}
	}
	t.Fatalf("no function declaration in %q", src)
	return nil
}

func TestParse_Function(t *testing.T) {
	fn := firstFunction(t, "function fact(n, acc) { if (n <= 1) return acc; return fact(n - 1, n * acc); }")

	if fn.ID.Name != "fact" {
		t.Errorf("name = %q, want fact", fn.ID.Name)
	}
	if got := ast.Identifiers(fn.Params); len(got) != 2 || got[0] != "n" || got[1] != "acc" {
		t.Errorf("params = %v", got)
	}
	if len(fn.Body.Body) != 2 {
		t.Fatalf("body has %d statements, want 2", len(fn.Body.Body))
	}

	ret, ok := fn.Body.Body[1].(*ast.Return)
	if !ok {
		t.Fatalf("second statement is %s, want ReturnStatement", fn.Body.Body[1].Kind())
	}
	want := &ast.Call{Callee: ast.Ident("fact"), Arguments: []ast.Node{
		&ast.Binary{Operator: "-", Left: ast.Ident("n"), Right: ast.Lit(1)},
		&ast.Binary{Operator: "*", Left: ast.Ident("n"), Right: ast.Ident("acc")},
	}}
	if !ast.Equal(ret.Argument, want) {
		t.Errorf("return argument does not match the expected call")
	}
}

func TestParse_Kinds(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected ast.Kind
	}{
		{"Var", "var a = 1, b;", ast.KindVarDecl},
		{"For", "for (var i = 0; i < 3; i++) {}", ast.KindFor},
		{"For In", "for (var k in o) {}", ast.KindForIn},
		{"For Of", "for (x of xs) {}", ast.KindForOf},
		{"While", "while (a) a--;", ast.KindWhile},
		{"Do While", "do {} while (a);", ast.KindDoWhile},
		{"Labeled", "l: for (;;) break l;", ast.KindLabeled},
		{"Switch", "switch (a) { case 1: break; }", ast.KindSwitch},
		{"Throw", "throw new Error('x');", ast.KindThrow},
		{"Empty", ";", ast.KindEmpty},
		{"Expression", "a.b[c](d);", ast.KindExpressionStmt},
		{"Let Is Raw", "let a = 1;", ast.KindRaw},
		{"Class Is Raw", "class A {}", ast.KindRaw},
		{"Try Is Raw", "try { a(); } catch (e) {}", ast.KindRaw},
		{"Destructuring Var Is Raw", "var [a, b] = c;", ast.KindRaw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(prog.Body) != 1 {
				t.Fatalf("got %d statements, want 1", len(prog.Body))
			}
			if got := prog.Body[0].Kind(); got != tt.expected {
				t.Errorf("kind = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestParse_UnsupportedFunctionsAreRaw(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"Async", "async function f(a) { return f(a); }"},
		{"Generator", "function* g(a) { yield a; }"},
		{"Default Param", "function f(a = 1) { return f(a); }"},
		{"Rest Param", "function f(...a) { return f(a); }"},
		{"Pattern Param", "function f({ a }) { return f(a); }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			raw, ok := prog.Body[0].(*ast.Raw)
			if !ok {
				t.Fatalf("kind = %s, want Raw", prog.Body[0].Kind())
			}
			if !raw.Statement || !strings.HasSuffix(tt.src, raw.Source) || !strings.Contains(raw.Source, "function") {
				t.Errorf("raw = %+v, want the statement source", raw)
			}
		})
	}
}

func TestParse_Expressions(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected ast.Node
	}{
		{"Compound Assignment", "a += 1", &ast.Assignment{Operator: "+=", Left: ast.Ident("a"), Right: ast.Lit(1)}},
		{"Shift Assignment", "a >>>= b", &ast.Assignment{Operator: ">>>=", Left: ast.Ident("a"), Right: ast.Ident("b")}},
		{"Postfix", "a++", &ast.Unary{Operator: "++", Argument: ast.Ident("a")}},
		{"Prefix", "!a", &ast.Unary{Operator: "!", Argument: ast.Ident("a"), Prefix: true}},
		{"Dot Member", "a.b", &ast.Member{Object: ast.Ident("a"), Property: ast.Ident("b")}},
		{"Bracket Member", "a[0]", &ast.Member{Object: ast.Ident("a"), Property: ast.Lit(0), Computed: true}},
		{"String", "'x'", ast.Lit("x")},
		{"Boolean", "true", ast.Lit(true)},
		{"Null", "null", ast.Lit(nil)},
		{"This", "this", &ast.This{}},
		{"Sequence", "a, b", &ast.Sequence{Expressions: []ast.Node{ast.Ident("a"), ast.Ident("b")}}},
		{"Shorthand Object", "({ a })", &ast.Object{Properties: []*ast.Property{{Key: ast.Ident("a"), Value: ast.Ident("a"), Shorthand: true}}}},
		{"Identifier Key", "({ a: 1 })", &ast.Object{Properties: []*ast.Property{{Key: ast.Ident("a"), Value: ast.Lit(1)}}}},
		{"Spread Call Is Raw", "f(...a)", &ast.Raw{Source: "f(...a)"}},
		{"Arrow Is Raw", "x => x", &ast.Raw{Source: "x => x"}},
		{"Getter Object Is Raw", "({ get a() { return 1; } })", &ast.Raw{Source: "{ get a() { return 1; } }"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			stmt, ok := prog.Body[0].(*ast.ExpressionStmt)
			if !ok {
				t.Fatalf("kind = %s, want ExpressionStatement", prog.Body[0].Kind())
			}
			if !ast.Equal(stmt.Expression, tt.expected) {
				t.Errorf("expression = %#v, want %#v", stmt.Expression, tt.expected)
			}
		})
	}
}

func TestParse_Error(t *testing.T) {
	_, err := Parse("function f( { return 1; }")
	if err == nil {
		t.Fatal("expected an error for malformed source")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if pe.Line != 1 {
		t.Errorf("line = %d, want 1", pe.Line)
	}
}
