package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/lcalzada-xor/tailcall/pkg/ast"
)

func fn(body ...ast.Node) *ast.FunctionDecl {
	return &ast.FunctionDecl{ID: ast.Ident("f"), Params: []*ast.Identifier{ast.Ident("n")}, Body: &ast.Block{Body: body}}
}

func loop(label string, body ...ast.Node) *ast.Labeled {
	return &ast.Labeled{
		Label: ast.Ident(label),
		Body:  &ast.While{Test: ast.Lit(true), Body: &ast.Block{Body: body}},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		node    ast.Node
		wantErr string // substring of the reason, empty when valid
		path    string
	}{
		{
			name: "Valid Loop",
			node: fn(loop("_tailCall_",
				ast.Assign("n", &ast.Binary{Operator: "-", Left: ast.Ident("n"), Right: ast.Lit(1)}),
				&ast.Continue{Label: ast.Ident("_tailCall_")},
			)),
		},
		{
			name:    "Continue To Unknown Label",
			node:    fn(loop("a", &ast.Continue{Label: ast.Ident("b")})),
			wantErr: `unknown label "b"`,
			path:    "body.body[0].body.body.body[0].label",
		},
		{
			name:    "Label Does Not Cross Functions",
			node:    &ast.Program{Body: []ast.Node{loop("a", &ast.ExpressionStmt{Expression: &ast.FunctionExpr{Body: &ast.Block{Body: []ast.Node{&ast.Break{Label: ast.Ident("a")}}}}})}},
			wantErr: "unknown label",
		},
		{
			name: "Expression Statement In For Init",
			node: &ast.For{
				Init: &ast.ExpressionStmt{Expression: ast.Ident("x")},
				Body: &ast.Empty{},
			},
			wantErr: "not an expression or declaration",
			path:    "init",
		},
		{
			name:    "Statement In Expression Slot",
			node:    &ast.Return{Argument: &ast.Empty{}},
			wantErr: "is not an expression",
			path:    "argument",
		},
		{
			name:    "Expression In Statement Slot",
			node:    &ast.Block{Body: []ast.Node{ast.Ident("x")}},
			wantErr: "is not a statement",
			path:    "body[0]",
		},
		{
			name:    "Invalid Identifier",
			node:    ast.Assign("1x", ast.Lit(1)),
			wantErr: "not a valid identifier",
		},
		{
			name:    "Reserved Word",
			node:    ast.Assign("while", ast.Lit(1)),
			wantErr: "not a valid identifier",
		},
		{
			name:    "Plain Continue Outside Loop",
			node:    fn(&ast.Continue{}),
			wantErr: "continue outside of a loop",
		},
		{
			name: "Break In Switch",
			node: &ast.Switch{Discriminant: ast.Ident("x"), Cases: []*ast.SwitchCase{
				{Test: ast.Lit(1), Consequent: []ast.Node{&ast.Break{}}},
			}},
		},
		{
			name:    "Assign To Literal",
			node:    &ast.Assignment{Operator: "=", Left: ast.Lit(1), Right: ast.Lit(2)},
			wantErr: "cannot be assigned to",
			path:    "left",
		},
		{
			name:    "Literal Kind Mismatch",
			node:    &ast.Literal{LitKind: ast.LitNumber, Value: "1"},
			wantErr: "does not match its kind",
		},
		{
			name: "Raw Nodes Pass",
			node: &ast.Block{Body: []ast.Node{&ast.Raw{Source: "let x = 1;", Statement: true}}},
		},
		{
			name: "For In With Identifier",
			node: &ast.ForIn{Left: ast.Ident("k"), Right: ast.Ident("o"), Body: &ast.Block{Body: []ast.Node{&ast.Continue{}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.node)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("Validate() error = %v, want *SchemaError", err)
			}
			if !strings.Contains(se.Reason, tt.wantErr) {
				t.Errorf("reason = %q, want it to contain %q", se.Reason, tt.wantErr)
			}
			if tt.path != "" && se.Path != tt.path {
				t.Errorf("path = %q, want %q", se.Path, tt.path)
			}
		})
	}
}
