package emulator

import (
	"errors"
	"testing"
	"time"

	"github.com/dop251/goja"
)

const recursiveSum = `function sum(n, acc) {
    if (n === 0) return acc;
    return sum(n - 1, acc + n);
}`

const loopSum = `function sum(n, acc) {
    _tailCall_: while (true) {
        if (n === 0) return acc;
        var _t = n - 1;
        acc = acc + n;
        n = _t;
        continue _tailCall_;
    }
}`

func TestEmulator_CompileAndCall(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		args     string
		expected string
	}{
		{"Declaration", recursiveSum, "[10, 0]", "55"},
		{"Expression", "function (a, b) { return a + b; }", "2, 3", "5"},
		{"Declaration After Statements", "var k = 2;\nfunction twice(x) { return x * k; }", "[21]", "42"},
		{"Object Result", "function pair(a) { return { a: a, b: [a] }; }", "[1]", `{"a":1,"b":[1]}`},
		{"No Arguments", "function f() { return 'ok'; }", "", "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEmulator(0)
			fn, err := e.Compile(tt.src)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			args, err := e.Args(tt.args)
			if err != nil {
				t.Fatalf("Args() error = %v", err)
			}
			v, err := e.Call(fn, args...)
			if err != nil {
				t.Fatalf("Call() error = %v", err)
			}
			if got := e.Render(v); got != tt.expected {
				t.Errorf("result = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestEmulator_CompileErrors(t *testing.T) {
	e := NewEmulator(0)
	if _, err := e.Compile("function ("); err == nil {
		t.Error("expected a syntax error")
	}
	if _, err := e.Compile("42"); err == nil {
		t.Error("expected an error for a non-function")
	}
}

func TestEmulator_StackLimit(t *testing.T) {
	e := NewEmulator(100)
	fn, err := e.Compile(recursiveSum)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	args, _ := e.Args("[5000, 0]")
	_, err = e.Call(fn, args...)
	if !IsStackOverflow(err) {
		t.Fatalf("Call() error = %v, want a stack overflow", err)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name         string
		args         string
		origOverflow bool
		equal        bool
	}{
		{"Shallow", "[10, 0]", false, true},
		{"Deep", "[20000, 0]", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Compare(recursiveSum, loopSum, tt.args, 1000)
			if err != nil {
				t.Fatalf("Compare() error = %v", err)
			}
			if v.OriginalOverflow != tt.origOverflow {
				t.Errorf("OriginalOverflow = %v, want %v", v.OriginalOverflow, tt.origOverflow)
			}
			if v.OptimisedOverflow || v.OptimisedError != "" {
				t.Errorf("optimised failed: %s", v.OptimisedError)
			}
			if v.Equal != tt.equal {
				t.Errorf("Equal = %v, want %v (%s vs %s)", v.Equal, tt.equal, v.Original, v.Optimised)
			}
		})
	}
}

func TestCompare_OriginalOverflows(t *testing.T) {
	v, err := Compare(recursiveSum, loopSum, "[25000, 0]", 1000)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if !v.OriginalOverflow || v.OriginalError == "" {
		t.Errorf("original = %+v, want a stack overflow", v)
	}
	if v.OptimisedOverflow || v.OptimisedError != "" || v.Optimised != "312512500" {
		t.Errorf("optimised = %q (%s), want 312512500", v.Optimised, v.OptimisedError)
	}
}

func TestIsStackOverflow(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Nil", nil, false},
		{"Other", errors.New("boom"), false},
		{"Goja", &goja.StackOverflowError{}, true},
		{"Range Error Message", errors.New("RangeError: Maximum call stack size exceeded"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStackOverflow(tt.err); got != tt.expected {
				t.Errorf("IsStackOverflow(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestEmulator_Timeout(t *testing.T) {
	e := NewEmulator(0)
	e.Timeout = 50 * time.Millisecond

	spin, err := e.Compile("function (n) { while (true) { n++; } }")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if _, err := e.Call(spin, e.Runtime.ToValue(0)); err == nil {
		t.Fatal("expected the call to be interrupted")
	}

	// The runtime stays usable after an interrupt.
	id, err := e.Compile("function (x) { return x; }")
	if err != nil {
		t.Fatalf("Compile() after interrupt error = %v", err)
	}
	v, err := e.Call(id, e.Runtime.ToValue(7))
	if err != nil || e.Render(v) != "7" {
		t.Errorf("Call() after interrupt = %v, %v", v, err)
	}
}

func TestTypeOf(t *testing.T) {
	vm := goja.New()
	tests := []struct {
		src      string
		expected string
	}{
		{"undefined", "undefined"},
		{"null", "null"},
		{"1.5", "number"},
		{"'a'", "string"},
		{"true", "boolean"},
		{"({})", "object"},
		{"(function () {})", "function"},
	}
	for _, tt := range tests {
		v, err := vm.RunString(tt.src)
		if err != nil {
			t.Fatalf("RunString(%s) error = %v", tt.src, err)
		}
		if got := typeOf(v); got != tt.expected {
			t.Errorf("typeOf(%s) = %s, want %s", tt.src, got, tt.expected)
		}
	}
}

func TestCompare_InvalidArgs(t *testing.T) {
	if _, err := Compare(recursiveSum, loopSum, "[1,", 100); err == nil {
		t.Error("expected an error for malformed arguments")
	}
}
