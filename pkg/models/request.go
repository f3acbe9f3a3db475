package models

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

type InputKind string

const (
	KindJS   InputKind = "js"
	KindHTML InputKind = "html"
)

// Request describes one source to rewrite. Path "-" reads standard input.
type Request struct {
	Path string    `json:"path"`
	Kind InputKind `json:"kind,omitempty"`
}

// Validate checks if the request is usable.
func (r *Request) Validate() error {
	if r.Path == "" {
		return fmt.Errorf("path is required")
	}

	if r.Kind != "" {
		switch r.Kind {
		case KindJS, KindHTML:
			// Valid
		default:
			return fmt.Errorf("invalid input kind: %s", r.Kind)
		}
	}

	return nil
}

// KindFromPath guesses the input kind from the file extension. For a URL
// the extension of its path is used.
func KindFromPath(path string) InputKind {
	if strings.Contains(path, "://") {
		if u, err := url.Parse(path); err == nil {
			path = u.Path
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return KindHTML
	}
	return KindJS
}

// ParseFromString parses one input line:
// - Plain path: "src/fact.js" (kind from the extension)
// - URL: "https://example.com/app.js"
// - With kind: "html:page.tpl"
// - JSON format: {"path":"...","kind":"js"}
func ParseFromString(input string) (*Request, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("invalid input format")
	}

	// Try JSON format first
	if strings.HasPrefix(input, "{") {
		var req Request
		if err := json.Unmarshal([]byte(input), &req); err == nil {
			if req.Kind == "" {
				req.Kind = KindFromPath(req.Path)
			}
			return &req, req.Validate()
		}
	}

	req := &Request{Path: input}
	if kind, path, ok := strings.Cut(input, ":"); ok {
		switch InputKind(strings.ToLower(kind)) {
		case KindJS, KindHTML:
			req.Kind = InputKind(strings.ToLower(kind))
			req.Path = path
		}
	}
	if req.Kind == "" {
		req.Kind = KindFromPath(req.Path)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}
