// Package tco eliminates self-recursive tail calls.
//
// Every function whose body returns a call to its own name is rewritten
// into a labeled `while (true)` loop: the call becomes parameter
// reassignment followed by `continue`, so the function runs in constant
// stack depth. var declarations are hoisted to the top of each function
// and reset on every iteration, and a "use strict" directive stays first.
package tco

import (
	"errors"
	"fmt"

	"github.com/lcalzada-xor/tailcall/pkg/ast"
	"github.com/lcalzada-xor/tailcall/pkg/config"
	"github.com/lcalzada-xor/tailcall/pkg/logger"
	"github.com/lcalzada-xor/tailcall/pkg/models"
	"github.com/lcalzada-xor/tailcall/pkg/parser"
	"github.com/lcalzada-xor/tailcall/pkg/printer"
	"github.com/lcalzada-xor/tailcall/pkg/schema"
)

// ErrInvalidOption is returned by New for an unusable prefix or label.
var ErrInvalidOption = errors.New("tco: invalid option")

// Options configures a Transformer. Empty strings select the defaults.
type Options struct {
	TempPrefix string
	LoopLabel  string
	Logger     *logger.Logger
}

// Transformer rewrites trees or source text. It holds no per-call state
// and is safe for concurrent use.
type Transformer struct {
	opts Options
}

// Result is the rewritten tree together with one report per function,
// in the order the functions were finished (inner before outer).
type Result struct {
	Node      ast.Node
	Functions []models.FunctionReport
}

// New validates opts and returns a Transformer.
func New(opts Options) (*Transformer, error) {
	if opts.TempPrefix == "" {
		opts.TempPrefix = config.DefaultTempPrefix
	}
	if opts.LoopLabel == "" {
		opts.LoopLabel = config.DefaultLoopLabel
	}
	// The prefix is followed by a parameter name, so "x" stands in for one.
	if !ast.IsIdentifierName(opts.TempPrefix + "x") {
		return nil, fmt.Errorf("%w: temp prefix %q", ErrInvalidOption, opts.TempPrefix)
	}
	if !ast.IsIdentifierName(opts.LoopLabel) {
		return nil, fmt.Errorf("%w: loop label %q", ErrInvalidOption, opts.LoopLabel)
	}
	return &Transformer{opts: opts}, nil
}

// Rewrite returns the optimised copy of node. node is left untouched and
// the result is not validated.
func (t *Transformer) Rewrite(node ast.Node) *Result {
	r := &rewriter{
		tempPrefix: t.opts.TempPrefix,
		loopLabel:  t.opts.LoopLabel,
		log:        t.opts.Logger,
	}
	out := r.walk(node, NewRootScope())
	return &Result{Node: out, Functions: r.reports}
}

// RewriteSource parses src, rewrites it, validates the rewritten tree and
// prints it. Parse errors are *parser.ParseError, validation failures
// *schema.SchemaError.
func (t *Transformer) RewriteSource(src string) (string, *Result, error) {
	prog, err := parser.Parse(src)
	if err != nil {
		return "", nil, err
	}
	res := t.Rewrite(prog)
	if err := schema.Validate(res.Node); err != nil {
		return "", res, fmt.Errorf("tco: rewritten tree is malformed: %w", err)
	}
	return printer.Print(res.Node), res, nil
}

var defaultTransformer, _ = New(Options{})

// Optimise rewrites node with the default options.
func Optimise(node ast.Node) ast.Node {
	return defaultTransformer.Rewrite(node).Node
}

// OptimiseSource rewrites source text with the default options.
func OptimiseSource(src string) (string, error) {
	out, _, err := defaultTransformer.RewriteSource(src)
	return out, err
}
