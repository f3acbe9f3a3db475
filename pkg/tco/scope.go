package tco

import (
	"github.com/lcalzada-xor/tailcall/pkg/ast"
)

// Scope holds the recursion state of one function body while it is being
// rewritten. The root scope stands for the program and is not a function.
type Scope struct {
	Parent *Scope

	// Name is the function's declared name, empty for anonymous functions.
	Name      string
	Params    []string
	TempNames []string // TempNames[i] stages Params[i]
	UsedTemps []string
	Locals    []string

	TailRecursive bool
	TailCalls     int

	// Directive is the "use strict" statement taken from the body's prologue.
	Directive ast.Node

	function  bool
	shadowed  bool // Name is rebound inside the function
	params    map[string]int
	locals    map[string]bool
	usedTemps map[string]bool
}

// NewRootScope creates the scope for code outside any function.
func NewRootScope() *Scope {
	return &Scope{}
}

// NewFunctionScope creates a fresh scope for a function nested in parent.
// Nothing but the parent link is inherited.
func NewFunctionScope(parent *Scope, name string, params, tempNames []string) *Scope {
	s := &Scope{
		Parent:    parent,
		Name:      name,
		Params:    params,
		TempNames: tempNames,
		function:  true,
		params:    make(map[string]int, len(params)),
		locals:    make(map[string]bool),
		usedTemps: make(map[string]bool),
	}
	for i, p := range params {
		if _, dup := s.params[p]; !dup {
			s.params[p] = i
		}
	}
	return s
}

// IsFunction reports whether s belongs to a function body.
func (s *Scope) IsFunction() bool {
	return s.function
}

// IsParam reports whether name is one of the function's parameters.
func (s *Scope) IsParam(name string) bool {
	_, ok := s.params[name]
	return ok
}

// Define registers a hoisted local. Parameters and names already defined
// are ignored. It reports whether the name was added.
func (s *Scope) Define(name string) bool {
	if !s.function || s.IsParam(name) || s.locals[name] {
		return false
	}
	s.locals[name] = true
	s.Locals = append(s.Locals, name)
	return true
}

// UseTemp marks a temp name as needed by a converted tail call.
func (s *Scope) UseTemp(name string) {
	if s.usedTemps[name] {
		return
	}
	s.usedTemps[name] = true
	s.UsedTemps = append(s.UsedTemps, name)
}

// Target returns the name a self call must use, or "" when self recursion
// cannot be detected in this scope.
func (s *Scope) Target() string {
	if !s.function || s.shadowed {
		return ""
	}
	return s.Name
}

// QualifiedName names the function by its enclosing functions, e.g.
// "outer.inner". Anonymous functions appear as "<anonymous>".
func (s *Scope) QualifiedName() string {
	name := s.Name
	if name == "" {
		name = "<anonymous>"
	}
	for p := s.Parent; p != nil && p.function; p = p.Parent {
		parent := p.Name
		if parent == "" {
			parent = "<anonymous>"
		}
		name = parent + "." + name
	}
	return name
}
