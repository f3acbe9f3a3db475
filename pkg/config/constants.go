package config

import "time"

// Version is the current version of tailcall
const Version = "v1.0.0"

// Author is the author of the tool
const Author = "@lcalzada-xor"

// Default Values
const (
	// DefaultTempPrefix prefixes the temporaries that stage new parameter values.
	DefaultTempPrefix = "_tco_temp_"
	// DefaultLoopLabel labels the loop that replaces self recursion.
	DefaultLoopLabel = "_tailCall_"
	// DefaultMaxStack bounds the goja call stack used by -verify.
	DefaultMaxStack     = 1000
	DefaultConcurrency  = 4
	DefaultOutputFormat = "code"
	// DefaultTimeout bounds each fetch of a remote input.
	DefaultTimeout = 10 * time.Second
)

// Environment variables read by the runner
const (
	EnvTempPrefix  = "TAILCALL_TEMP_PREFIX"
	EnvLoopLabel   = "TAILCALL_LOOP_LABEL"
	EnvMaxStack    = "TAILCALL_MAX_STACK"
	EnvConcurrency = "TAILCALL_CONCURRENCY"
	EnvOutput      = "TAILCALL_OUTPUT"
)

// ScriptTypes lists the <script type> values treated as classic JavaScript.
// An absent or empty type also counts.
var ScriptTypes = []string{
	"text/javascript",
	"application/javascript",
	"text/ecmascript",
	"application/ecmascript",
	"text/jscript",
}
