// Package htmlscript rewrites the inline scripts of an HTML document.
package htmlscript

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/lcalzada-xor/tailcall/pkg/config"
)

// Rewrite parses the document from r, passes the text of every inline
// classic script through fn and renders the result to w. Scripts with a
// src attribute or a non-JavaScript type are left alone. The parser
// normalizes the document, so missing html, head and body elements are
// added. It returns the number of scripts rewritten.
func Rewrite(r io.Reader, w io.Writer, fn func(string) (string, error)) (int, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return 0, fmt.Errorf("htmlscript: %w", err)
	}

	var scripts []*html.Node
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Script && IsClassicScript(n) {
			scripts = append(scripts, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	count := 0
	for i, s := range scripts {
		text := scriptText(s)
		if strings.TrimSpace(text) == "" {
			continue
		}
		out, err := fn(text)
		if err != nil {
			return count, fmt.Errorf("htmlscript: script %d: %w", i+1, err)
		}
		setScriptText(s, out)
		count++
	}

	if err := html.Render(w, doc); err != nil {
		return count, fmt.Errorf("htmlscript: %w", err)
	}
	return count, nil
}

// IsClassicScript reports whether a <script> element holds inline
// JavaScript: no src attribute and an empty or JavaScript type.
func IsClassicScript(n *html.Node) bool {
	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "src":
			return false
		case "type":
			t := strings.ToLower(strings.TrimSpace(attr.Val))
			if t == "" {
				continue
			}
			if i := strings.IndexByte(t, ';'); i >= 0 {
				t = strings.TrimSpace(t[:i])
			}
			if !isScriptType(t) {
				return false
			}
		}
	}
	return true
}

func isScriptType(t string) bool {
	for _, s := range config.ScriptTypes {
		if t == s {
			return true
		}
	}
	return false
}

func scriptText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func setScriptText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}
