// Package emulator runs JavaScript functions in a goja runtime with a
// bounded call stack, so the original and the rewritten version of a
// function can be executed side by side.
package emulator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dop251/goja"
	js "github.com/dop251/goja/ast"
	jsparser "github.com/dop251/goja/parser"

	"github.com/lcalzada-xor/tailcall/pkg/models"
)

// DefaultTimeout bounds a single Call.
const DefaultTimeout = 5 * time.Second

// Emulator executes JS code
type Emulator struct {
	Runtime *goja.Runtime
	Timeout time.Duration
}

// NewEmulator creates a runtime whose call stack holds at most maxCallStack
// frames. Zero or less keeps goja's default.
func NewEmulator(maxCallStack int) *Emulator {
	vm := goja.New()
	if maxCallStack > 0 {
		vm.SetMaxCallStackSize(maxCallStack)
	}
	e := &Emulator{Runtime: vm, Timeout: DefaultTimeout}
	e.setupConsole()
	return e
}

// setupConsole installs a console that discards output, so logging code
// in the functions under test runs.
func (e *Emulator) setupConsole() {
	vm := e.Runtime
	console := vm.NewObject()
	noop := func(goja.FunctionCall) goja.Value { return goja.Undefined() }
	for _, name := range []string{"log", "info", "warn", "error", "debug"} {
		_ = console.Set(name, noop)
	}
	vm.Set("console", console)
}

// Compile runs src and returns its entry function: the first top-level
// function declaration, or the value of src read as a single expression.
func (e *Emulator) Compile(src string) (goja.Callable, error) {
	if name := firstDeclaration(src); name != "" {
		if _, err := e.Runtime.RunString(src); err != nil {
			return nil, fmt.Errorf("emulator: %w", err)
		}
		fn, ok := goja.AssertFunction(e.Runtime.Get(name))
		if !ok {
			return nil, fmt.Errorf("emulator: %s is not a function", name)
		}
		return fn, nil
	}

	v, err := e.Runtime.RunString("(" + src + "\n)")
	if err != nil {
		return nil, fmt.Errorf("emulator: %w", err)
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, errors.New("emulator: source does not evaluate to a function")
	}
	return fn, nil
}

func firstDeclaration(src string) string {
	prog, err := jsparser.ParseFile(nil, "", src, 0)
	if err != nil {
		return ""
	}
	for _, s := range prog.Body {
		if decl, ok := s.(*js.FunctionDeclaration); ok && decl.Function.Name != nil {
			return string(decl.Function.Name.Name)
		}
	}
	return ""
}

// Call invokes fn with undefined as this. A call running longer than
// Timeout is interrupted.
func (e *Emulator) Call(fn goja.Callable, args ...goja.Value) (goja.Value, error) {
	if e.Timeout <= 0 {
		return fn(goja.Undefined(), args...)
	}
	fired := make(chan struct{})
	timer := time.AfterFunc(e.Timeout, func() {
		e.Runtime.Interrupt("timeout")
		close(fired)
	})
	v, err := fn(goja.Undefined(), args...)
	if !timer.Stop() {
		// The interrupt may still be in flight.
		<-fired
	}
	e.Runtime.ClearInterrupt()
	return v, err
}

// Args evaluates a JS array literal, or a bare comma separated list, into
// call arguments.
func (e *Emulator) Args(expr string) ([]goja.Value, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}
	if !strings.HasPrefix(expr, "[") {
		expr = "[" + expr + "]"
	}
	v, err := e.Runtime.RunString(expr)
	if err != nil {
		return nil, fmt.Errorf("emulator: invalid arguments: %w", err)
	}
	obj := v.ToObject(e.Runtime)
	n := int(obj.Get("length").ToInteger())
	args := make([]goja.Value, n)
	for i := range args {
		args[i] = obj.Get(strconv.Itoa(i))
	}
	return args, nil
}

// Render formats a value for display: JSON for objects, String otherwise.
func (e *Emulator) Render(v goja.Value) string {
	if v == nil {
		return "undefined"
	}
	if _, ok := v.(*goja.Object); ok {
		if stringify, ok := goja.AssertFunction(e.Runtime.Get("JSON").ToObject(e.Runtime).Get("stringify")); ok {
			if s, err := stringify(goja.Undefined(), v); err == nil && !goja.IsUndefined(s) {
				return s.String()
			}
		}
	}
	return v.String()
}

// IsStackOverflow reports whether err is goja's call stack limit.
func IsStackOverflow(err error) bool {
	var so *goja.StackOverflowError
	if errors.As(err, &so) {
		return true
	}
	// A RangeError thrown from JS code.
	return err != nil && strings.Contains(err.Error(), "Maximum call stack size exceeded")
}

// outcome is one side of a comparison.
type outcome struct {
	value    string
	typ      string
	overflow bool
	err      string
}

func run(src, argsExpr string, maxStack int) (outcome, error) {
	e := NewEmulator(maxStack)
	fn, err := e.Compile(src)
	if err != nil {
		return outcome{}, err
	}
	args, err := e.Args(argsExpr)
	if err != nil {
		return outcome{}, err
	}

	v, err := e.Call(fn, args...)
	if err != nil {
		return outcome{overflow: IsStackOverflow(err), err: err.Error()}, nil
	}
	return outcome{value: e.Render(v), typ: typeOf(v)}, nil
}

// typeOf approximates the JS typeof of v, with null kept apart.
func typeOf(v goja.Value) string {
	switch {
	case v == nil || goja.IsUndefined(v):
		return "undefined"
	case goja.IsNull(v):
		return "null"
	}
	if _, ok := goja.AssertFunction(v); ok {
		return "function"
	}
	switch v.Export().(type) {
	case int64, float64:
		return "number"
	case string:
		return "string"
	case bool:
		return "boolean"
	}
	return "object"
}

// Compare calls the entry functions of original and optimised with the
// same arguments, each in its own runtime limited to maxStack frames. The
// error is for sources or arguments that cannot be evaluated; failures of
// the calls themselves are part of the Verification.
func Compare(original, optimised, argsExpr string, maxStack int) (*models.Verification, error) {
	orig, err := run(original, argsExpr, maxStack)
	if err != nil {
		return nil, fmt.Errorf("original: %w", err)
	}
	opt, err := run(optimised, argsExpr, maxStack)
	if err != nil {
		return nil, fmt.Errorf("optimised: %w", err)
	}

	return &models.Verification{
		Args:              argsExpr,
		Original:          orig.value,
		Optimised:         opt.value,
		OriginalOverflow:  orig.overflow,
		OptimisedOverflow: opt.overflow,
		OriginalError:     orig.err,
		OptimisedError:    opt.err,
		Equal:             orig.err == "" && opt.err == "" && orig.value == opt.value && orig.typ == opt.typ,
	}, nil
}
