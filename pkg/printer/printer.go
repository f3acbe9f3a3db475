// Package printer renders an ast tree as JavaScript source. Output is
// deterministic: four-space indentation, one statement per line, and
// parentheses only where operator precedence requires them.
package printer

import (
	"math"
	"strconv"
	"strings"

	"github.com/lcalzada-xor/tailcall/pkg/ast"
)

const indentUnit = "    "

// Print renders n. Statements end with a newline, a lone expression does not.
func Print(n ast.Node) string {
	p := &printer{}
	if n == nil {
		return ""
	}
	if ast.IsExpression(n) {
		return p.expr(n, precSequence)
	}
	if prog, ok := n.(*ast.Program); ok {
		p.statements(prog.Body)
	} else {
		p.stmt(n)
	}
	return p.sb.String()
}

type printer struct {
	sb     strings.Builder
	indent int
}

func (p *printer) line(s string) {
	p.sb.WriteString(strings.Repeat(indentUnit, p.indent))
	p.sb.WriteString(s)
	p.sb.WriteByte('\n')
}

// sub returns a printer for a nested body at the current depth.
func (p *printer) sub() *printer {
	return &printer{indent: p.indent}
}

func (p *printer) statements(list []ast.Node) {
	for _, s := range list {
		p.stmt(s)
	}
}

func (p *printer) stmt(n ast.Node) {
	switch n := n.(type) {
	case nil:
		p.line(";")
	case *ast.FunctionDecl:
		p.line("function " + n.ID.Name + params(n.Params) + " " + p.block(n.Body))
	case *ast.Return:
		if n.Argument == nil {
			p.line("return;")
		} else {
			p.line("return " + p.expr(n.Argument, precSequence) + ";")
		}
	case *ast.Block:
		p.line(p.block(n))
	case *ast.VarDecl:
		p.line(p.varDecl(n) + ";")
	case *ast.If:
		p.ifStmt(n)
	case *ast.For:
		var init string
		switch in := n.Init.(type) {
		case nil:
		case *ast.VarDecl:
			init = p.varDecl(in)
		default:
			init = p.noIn(in)
		}
		head := "for (" + init + ";"
		if n.Test != nil {
			head += " " + p.expr(n.Test, precSequence)
		}
		head += ";"
		if n.Update != nil {
			head += " " + p.expr(n.Update, precSequence)
		}
		p.loop(head+")", n.Body)
	case *ast.ForIn:
		p.loop("for ("+p.forLeft(n.Left)+" in "+p.expr(n.Right, precSequence)+")", n.Body)
	case *ast.ForOf:
		p.loop("for ("+p.forLeft(n.Left)+" of "+p.expr(n.Right, precAssign)+")", n.Body)
	case *ast.While:
		p.loop("while ("+p.expr(n.Test, precSequence)+")", n.Body)
	case *ast.DoWhile:
		if b, ok := n.Body.(*ast.Block); ok {
			p.line("do " + p.block(b) + " while (" + p.expr(n.Test, precSequence) + ");")
			return
		}
		p.line("do")
		p.nested(n.Body)
		p.line("while (" + p.expr(n.Test, precSequence) + ");")
	case *ast.ExpressionStmt:
		p.line(p.exprStatement(n.Expression) + ";")
	case *ast.Continue:
		p.line(jump("continue", n.Label))
	case *ast.Break:
		p.line(jump("break", n.Label))
	case *ast.Labeled:
		// The labeled statement starts on the label's line.
		sub := p.sub()
		sub.stmt(n.Body)
		p.sb.WriteString(strings.Repeat(indentUnit, p.indent) + n.Label.Name + ": ")
		p.sb.WriteString(strings.TrimLeft(sub.sb.String(), " "))
	case *ast.Throw:
		p.line("throw " + p.expr(n.Argument, precSequence) + ";")
	case *ast.Empty:
		p.line(";")
	case *ast.Switch:
		p.line("switch (" + p.expr(n.Discriminant, precSequence) + ") {")
		p.indent++
		for _, c := range n.Cases {
			if c.Test == nil {
				p.line("default:")
			} else {
				p.line("case " + p.expr(c.Test, precSequence) + ":")
			}
			p.indent++
			p.statements(c.Consequent)
			p.indent--
		}
		p.indent--
		p.line("}")
	case *ast.Raw:
		src := strings.TrimSpace(n.Source)
		if !strings.HasSuffix(src, ";") && !strings.HasSuffix(src, "}") {
			src += ";"
		}
		// Verbatim: the source may hold template literals.
		p.line(src)
	default:
		// An expression in statement position.
		p.line(p.exprStatement(n) + ";")
	}
}

// block renders a braced block as a string, closing brace without newline.
func (p *printer) block(b *ast.Block) string {
	if b == nil || len(b.Body) == 0 {
		return "{}"
	}
	sub := p.sub()
	sub.sb.WriteString("{\n")
	sub.indent++
	sub.statements(b.Body)
	sub.indent--
	sub.sb.WriteString(strings.Repeat(indentUnit, sub.indent) + "}")
	return sub.sb.String()
}

// nested prints a non-block body one level deeper.
func (p *printer) nested(n ast.Node) {
	p.indent++
	p.stmt(n)
	p.indent--
}

func (p *printer) loop(head string, body ast.Node) {
	switch b := body.(type) {
	case *ast.Block:
		p.line(head + " " + p.block(b))
	case *ast.Empty, nil:
		p.line(head + ";")
	default:
		p.line(head)
		p.nested(body)
	}
}

func (p *printer) ifStmt(n *ast.If) {
	cons := n.Consequent
	// A dangling else would attach to the inner if.
	if inner, ok := cons.(*ast.If); ok && n.Alternate != nil && inner.Alternate == nil {
		cons = &ast.Block{Body: []ast.Node{inner}}
	}
	head := "if (" + p.expr(n.Test, precSequence) + ")"

	b, isBlock := cons.(*ast.Block)
	if isBlock {
		if n.Alternate == nil {
			p.line(head + " " + p.block(b))
			return
		}
		// The else clause continues on the closing brace line.
		text := head + " " + p.block(b)
		p.sb.WriteString(strings.Repeat(indentUnit, p.indent) + text)
		p.elseClause(n.Alternate, " ")
		return
	}
	p.line(head)
	p.nested(cons)
	if n.Alternate != nil {
		p.sb.WriteString(strings.Repeat(indentUnit, p.indent))
		p.elseClause(n.Alternate, "")
	}
}

// elseClause writes "else ..." after text already written on the line.
func (p *printer) elseClause(alt ast.Node, sep string) {
	switch a := alt.(type) {
	case *ast.If:
		sub := p.sub()
		sub.ifStmt(a)
		rest := strings.TrimLeft(sub.sb.String(), " ")
		p.sb.WriteString(sep + "else " + rest)
	case *ast.Block:
		p.sb.WriteString(sep + "else " + p.block(a) + "\n")
	default:
		p.sb.WriteString(sep + "else\n")
		p.nested(alt)
	}
}

func (p *printer) varDecl(n *ast.VarDecl) string {
	parts := make([]string, len(n.Declarations))
	for i, d := range n.Declarations {
		parts[i] = d.ID.Name
		if d.Init != nil {
			parts[i] += " = " + p.expr(d.Init, precAssign)
		}
	}
	return "var " + strings.Join(parts, ", ")
}

func (p *printer) forLeft(n ast.Node) string {
	if decl, ok := n.(*ast.VarDecl); ok {
		return p.varDecl(decl)
	}
	return p.expr(n, precCall)
}

// noIn renders a for-init expression. A top level `in` would read as a
// for-in loop, so such an init is parenthesized.
func (p *printer) noIn(n ast.Node) string {
	s := p.expr(n, precSequence)
	if containsIn(n) {
		return "(" + s + ")"
	}
	return s
}

func containsIn(n ast.Node) bool {
	found := false
	ast.Inspect(n, func(c ast.Node) bool {
		switch c := c.(type) {
		case *ast.Binary:
			if c.Operator == "in" {
				found = true
			}
		case *ast.FunctionExpr:
			return false
		}
		return !found
	})
	return found
}

// exprStatement guards expressions that would otherwise be read as a
// declaration or a block.
func (p *printer) exprStatement(n ast.Node) string {
	s := p.expr(n, precSequence)
	if startsWithKeyword(s, "function") || startsWithKeyword(s, "class") || strings.HasPrefix(s, "{") || strings.HasPrefix(s, "let [") {
		return "(" + s + ")"
	}
	return s
}

func startsWithKeyword(s, kw string) bool {
	if !strings.HasPrefix(s, kw) {
		return false
	}
	if len(s) == len(kw) {
		return true
	}
	c := s[len(kw)]
	return !(c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80)
}

func params(ids []*ast.Identifier) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Name
	}
	return "(" + strings.Join(names, ", ") + ")"
}

func jump(keyword string, label *ast.Identifier) string {
	if label == nil {
		return keyword + ";"
	}
	return keyword + " " + label.Name + ";"
}

// literal renders a literal from its source text when it has one.
func literal(l *ast.Literal) string {
	if l.Raw != "" {
		return l.Raw
	}
	switch l.LitKind {
	case ast.LitNull:
		return "null"
	case ast.LitBoolean:
		if b, _ := l.Value.(bool); b {
			return "true"
		}
		return "false"
	case ast.LitString:
		s, _ := l.Value.(string)
		return Quote(s)
	case ast.LitNumber:
		f, _ := l.Value.(float64)
		return number(f)
	}
	return "undefined"
}

func number(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Quote renders s as a double-quoted JavaScript string literal.
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\u2028', '\u2029':
			sb.WriteString(`\u` + strconv.FormatInt(int64(r), 16))
		default:
			if r < 0x20 || r == 0x7f {
				sb.WriteString(`\x`)
				if r < 0x10 {
					sb.WriteByte('0')
				}
				sb.WriteString(strconv.FormatInt(int64(r), 16))
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
