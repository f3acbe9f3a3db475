package models

// FunctionReport describes how one function was rewritten.
type FunctionReport struct {
	Name          string   `json:"name"`
	Params        []string `json:"params"`
	TailRecursive bool     `json:"tail_recursive"`
	TailCalls     int      `json:"tail_calls"`
	TempVars      []string `json:"temp_vars,omitempty"`
	Hoisted       []string `json:"hoisted,omitempty"`
	Strict        bool     `json:"strict,omitempty"`
}

// Verification is the outcome of running the original and the rewritten
// function on the same arguments.
type Verification struct {
	Args              string `json:"args"`
	Original          string `json:"original,omitempty"`
	Optimised         string `json:"optimised,omitempty"`
	OriginalOverflow  bool   `json:"original_overflow"`
	OptimisedOverflow bool   `json:"optimised_overflow"`
	OriginalError     string `json:"original_error,omitempty"`
	OptimisedError    string `json:"optimised_error,omitempty"`
	Equal             bool   `json:"equal"`
}

// Result represents the outcome of rewriting one input.
type Result struct {
	Input        string           `json:"input"`
	Kind         InputKind        `json:"kind"`
	Code         string           `json:"code"`
	Functions    []FunctionReport `json:"functions"`
	Scripts      int              `json:"scripts,omitempty"` // inline scripts rewritten in an HTML input
	Verification *Verification    `json:"verification,omitempty"`
	Error        string           `json:"error,omitempty"`
}

// Optimised returns the number of functions that were turned into loops.
func (r *Result) Optimised() int {
	n := 0
	for _, f := range r.Functions {
		if f.TailRecursive {
			n++
		}
	}
	return n
}
