package runner

import (
	"errors"
	"fmt"
	"time"

	"github.com/xyproto/env/v2"

	"github.com/lcalzada-xor/tailcall/pkg/config"
)

// ErrInvalidOptions is returned by Run for options that cannot be used.
var ErrInvalidOptions = errors.New("runner: invalid options")

// Options holds all configuration options for the runner
type Options struct {
	// Inputs
	Inputs    []string // paths; "-" reads stdin
	InputList string   // file with one input per line, "-" for stdin

	// Rewriting
	TempPrefix  string
	LoopLabel   string
	Concurrency int

	// Fetching remote inputs
	Timeout   time.Duration
	Proxy     string
	RateLimit float64 // fetches per second, 0 = unlimited
	Insecure  bool

	// Verification
	Verify   string // JS arguments, e.g. "[10000, 1]"
	MaxStack int

	// Output
	OutputFile   string
	OutputFormat string
	Verbose      bool
	VeryVerbose  bool
	Silent       bool
}

// DefaultOptions returns a new Options struct with default values
func DefaultOptions() *Options {
	return &Options{
		TempPrefix:   config.DefaultTempPrefix,
		LoopLabel:    config.DefaultLoopLabel,
		Concurrency:  config.DefaultConcurrency,
		MaxStack:     config.DefaultMaxStack,
		Timeout:      config.DefaultTimeout,
		OutputFormat: config.DefaultOutputFormat,
	}
}

// ApplyEnv overrides options from TAILCALL_* environment variables. Unset
// variables keep the current values. The environment is re-read on every
// call.
func ApplyEnv(o *Options) {
	env.Load()
	o.TempPrefix = env.Str(config.EnvTempPrefix, o.TempPrefix)
	o.LoopLabel = env.Str(config.EnvLoopLabel, o.LoopLabel)
	o.MaxStack = env.Int(config.EnvMaxStack, o.MaxStack)
	o.Concurrency = env.Int(config.EnvConcurrency, o.Concurrency)
	o.OutputFormat = env.Str(config.EnvOutput, o.OutputFormat)
}

// Validate checks the options that the rewriter does not check itself.
func (o *Options) Validate() error {
	switch o.OutputFormat {
	case "code", "human", "json":
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidOptions, o.OutputFormat)
	}
	if o.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1", ErrInvalidOptions)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidOptions)
	}
	if o.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit cannot be negative", ErrInvalidOptions)
	}
	if o.Verify != "" && o.MaxStack < 1 {
		return fmt.Errorf("%w: max stack must be at least 1", ErrInvalidOptions)
	}
	return nil
}

func (o *Options) verboseLevel() int {
	switch {
	case o.VeryVerbose:
		return 2
	case o.Verbose:
		return 1
	}
	return 0
}
