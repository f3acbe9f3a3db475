// Package ast defines the syntax tree rewritten by the tail call optimiser.
//
// The tree is a small ESTree-like model of a function-scoped JavaScript
// subset. Anything outside the subset is carried as a Raw node holding its
// original source text, so it survives a round trip untouched.
package ast

// Kind identifies the variant of a Node.
type Kind int

const (
	KindInvalid Kind = iota

	// Statements and declarations
	KindProgram
	KindFunctionDecl
	KindReturn
	KindBlock
	KindVarDecl
	KindIf
	KindFor
	KindForIn
	KindForOf
	KindWhile
	KindDoWhile
	KindExpressionStmt
	KindContinue
	KindBreak
	KindLabeled
	KindThrow
	KindEmpty
	KindSwitch

	// Expressions
	KindFunctionExpr
	KindIdentifier
	KindLiteral
	KindCall
	KindNew
	KindConditional
	KindAssignment
	KindSequence
	KindBinary
	KindUnary
	KindMember
	KindArray
	KindObject
	KindThis

	// Catch-all for constructs the model does not describe
	KindRaw
)

var kindNames = [...]string{
	KindInvalid:        "Invalid",
	KindProgram:        "Program",
	KindFunctionDecl:   "FunctionDeclaration",
	KindReturn:         "ReturnStatement",
	KindBlock:          "BlockStatement",
	KindVarDecl:        "VariableDeclaration",
	KindIf:             "IfStatement",
	KindFor:            "ForStatement",
	KindForIn:          "ForInStatement",
	KindForOf:          "ForOfStatement",
	KindWhile:          "WhileStatement",
	KindDoWhile:        "DoWhileStatement",
	KindExpressionStmt: "ExpressionStatement",
	KindContinue:       "ContinueStatement",
	KindBreak:          "BreakStatement",
	KindLabeled:        "LabeledStatement",
	KindThrow:          "ThrowStatement",
	KindEmpty:          "EmptyStatement",
	KindSwitch:         "SwitchStatement",
	KindFunctionExpr:   "FunctionExpression",
	KindIdentifier:     "Identifier",
	KindLiteral:        "Literal",
	KindCall:           "CallExpression",
	KindNew:            "NewExpression",
	KindConditional:    "ConditionalExpression",
	KindAssignment:     "AssignmentExpression",
	KindSequence:       "SequenceExpression",
	KindBinary:         "BinaryExpression",
	KindUnary:          "UnaryExpression",
	KindMember:         "MemberExpression",
	KindArray:          "ArrayExpression",
	KindObject:         "ObjectExpression",
	KindThis:           "ThisExpression",
	KindRaw:            "Raw",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Node is implemented by every tree variant.
type Node interface {
	Kind() Kind
}

// IsStatement reports whether n may appear in a statement list.
func IsStatement(n Node) bool {
	if n == nil {
		return false
	}
	if raw, ok := n.(*Raw); ok {
		return raw.Statement
	}
	k := n.Kind()
	return k >= KindFunctionDecl && k <= KindSwitch
}

// IsExpression reports whether n may appear where a value is expected.
func IsExpression(n Node) bool {
	if n == nil {
		return false
	}
	if raw, ok := n.(*Raw); ok {
		return !raw.Statement
	}
	k := n.Kind()
	return k >= KindFunctionExpr && k <= KindThis
}

type (
	// Program is the root of a parsed source file.
	Program struct {
		Body []Node
	}

	// FunctionDecl is `function name(params) { body }` in statement position.
	FunctionDecl struct {
		ID     *Identifier
		Params []*Identifier
		Body   *Block
	}

	// FunctionExpr is a function in expression position. ID may be nil.
	FunctionExpr struct {
		ID     *Identifier
		Params []*Identifier
		Body   *Block
	}

	Return struct {
		Argument Node // nil for a bare return
	}

	Block struct {
		Body []Node
	}

	// VarDecl is a function-scoped `var` declaration.
	VarDecl struct {
		Declarations []*Declarator
	}

	Declarator struct {
		ID   *Identifier
		Init Node
	}

	If struct {
		Test       Node
		Consequent Node
		Alternate  Node
	}

	// For is a C-style loop. Init is an expression or a VarDecl.
	For struct {
		Init   Node
		Test   Node
		Update Node
		Body   Node
	}

	// ForIn is `for (left in right)`. Left is a VarDecl or an expression.
	ForIn struct {
		Left  Node
		Right Node
		Body  Node
	}

	ForOf struct {
		Left  Node
		Right Node
		Body  Node
	}

	While struct {
		Test Node
		Body Node
	}

	DoWhile struct {
		Body Node
		Test Node
	}

	ExpressionStmt struct {
		Expression Node
	}

	Continue struct {
		Label *Identifier
	}

	Break struct {
		Label *Identifier
	}

	Labeled struct {
		Label *Identifier
		Body  Node
	}

	Throw struct {
		Argument Node
	}

	Empty struct{}

	Switch struct {
		Discriminant Node
		Cases        []*SwitchCase
	}

	// SwitchCase is one clause of a Switch. Test is nil for `default`.
	SwitchCase struct {
		Test       Node
		Consequent []Node
	}
)

type (
	Identifier struct {
		Name string
	}

	Literal struct {
		LitKind LitKind
		Value   any    // float64, string, bool or nil
		Raw     string // source text, empty for synthesised literals
	}

	Call struct {
		Callee    Node
		Arguments []Node
	}

	New struct {
		Callee    Node
		Arguments []Node
	}

	Conditional struct {
		Test       Node
		Consequent Node
		Alternate  Node
	}

	// Assignment covers `=` and compound operators such as `+=`.
	Assignment struct {
		Operator string
		Left     Node
		Right    Node
	}

	Sequence struct {
		Expressions []Node
	}

	// Binary covers arithmetic, comparison and logical operators.
	Binary struct {
		Operator string
		Left     Node
		Right    Node
	}

	// Unary covers prefix operators and `++`/`--` in both positions.
	Unary struct {
		Operator string
		Argument Node
		Prefix   bool
	}

	Member struct {
		Object   Node
		Property Node // *Identifier unless Computed
		Computed bool
	}

	Array struct {
		Elements []Node // nil entries are holes
	}

	Object struct {
		Properties []*Property
	}

	Property struct {
		Key       Node
		Value     Node
		Computed  bool
		Shorthand bool
	}

	This struct{}

	// Raw is source the model does not describe. It is never rewritten.
	Raw struct {
		Source    string
		Statement bool
	}
)

// LitKind is the type of a Literal.
type LitKind int

const (
	LitNumber LitKind = iota
	LitString
	LitBoolean
	LitNull
	LitRegExp
)

func (*Program) Kind() Kind        { return KindProgram }
func (*FunctionDecl) Kind() Kind   { return KindFunctionDecl }
func (*FunctionExpr) Kind() Kind   { return KindFunctionExpr }
func (*Return) Kind() Kind         { return KindReturn }
func (*Block) Kind() Kind          { return KindBlock }
func (*VarDecl) Kind() Kind        { return KindVarDecl }
func (*If) Kind() Kind             { return KindIf }
func (*For) Kind() Kind            { return KindFor }
func (*ForIn) Kind() Kind          { return KindForIn }
func (*ForOf) Kind() Kind          { return KindForOf }
func (*While) Kind() Kind          { return KindWhile }
func (*DoWhile) Kind() Kind        { return KindDoWhile }
func (*ExpressionStmt) Kind() Kind { return KindExpressionStmt }
func (*Continue) Kind() Kind       { return KindContinue }
func (*Break) Kind() Kind          { return KindBreak }
func (*Labeled) Kind() Kind        { return KindLabeled }
func (*Throw) Kind() Kind          { return KindThrow }
func (*Empty) Kind() Kind          { return KindEmpty }
func (*Switch) Kind() Kind         { return KindSwitch }
func (*Identifier) Kind() Kind     { return KindIdentifier }
func (*Literal) Kind() Kind        { return KindLiteral }
func (*Call) Kind() Kind           { return KindCall }
func (*New) Kind() Kind            { return KindNew }
func (*Conditional) Kind() Kind    { return KindConditional }
func (*Assignment) Kind() Kind     { return KindAssignment }
func (*Sequence) Kind() Kind       { return KindSequence }
func (*Binary) Kind() Kind         { return KindBinary }
func (*Unary) Kind() Kind          { return KindUnary }
func (*Member) Kind() Kind         { return KindMember }
func (*Array) Kind() Kind          { return KindArray }
func (*Object) Kind() Kind         { return KindObject }
func (*This) Kind() Kind           { return KindThis }
func (*Raw) Kind() Kind            { return KindRaw }

// Function returns the parts shared by FunctionDecl and FunctionExpr.
// ok is false for any other node.
func Function(n Node) (id *Identifier, params []*Identifier, body *Block, ok bool) {
	switch fn := n.(type) {
	case *FunctionDecl:
		return fn.ID, fn.Params, fn.Body, true
	case *FunctionExpr:
		return fn.ID, fn.Params, fn.Body, true
	}
	return nil, nil, nil, false
}
