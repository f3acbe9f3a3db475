package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lcalzada-xor/tailcall/pkg/config"
	"github.com/lcalzada-xor/tailcall/pkg/runner"
)

func main() {
	options := runner.DefaultOptions()
	runner.ApplyEnv(options)

	// Define flags with both short and long names
	flag.IntVar(&options.Concurrency, "c", options.Concurrency, "Concurrency level")
	flag.IntVar(&options.Concurrency, "concurrency", options.Concurrency, "Concurrency level")

	flag.StringVar(&options.TempPrefix, "p", options.TempPrefix, "Prefix of the temporaries that stage tail call arguments")
	flag.StringVar(&options.TempPrefix, "prefix", options.TempPrefix, "Prefix of the temporaries that stage tail call arguments")

	flag.StringVar(&options.LoopLabel, "l", options.LoopLabel, "Label of the recursion loop")
	flag.StringVar(&options.LoopLabel, "label", options.LoopLabel, "Label of the recursion loop")

	flag.StringVar(&options.InputList, "i", "", "File with one input per line (- for stdin)")
	flag.StringVar(&options.InputList, "input-list", "", "File with one input per line (- for stdin)")

	flag.DurationVar(&options.Timeout, "t", options.Timeout, "Timeout for fetching remote inputs")
	flag.DurationVar(&options.Timeout, "timeout", options.Timeout, "Timeout for fetching remote inputs")

	flag.StringVar(&options.Proxy, "x", "", "Proxy URL for remote inputs (e.g. http://127.0.0.1:8080)")
	flag.StringVar(&options.Proxy, "proxy", "", "Proxy URL for remote inputs (e.g. http://127.0.0.1:8080)")

	flag.Float64Var(&options.RateLimit, "rl", 0, "Maximum remote fetches per second (0 = unlimited)")
	flag.Float64Var(&options.RateLimit, "rate-limit", 0, "Maximum remote fetches per second (0 = unlimited)")

	flag.BoolVar(&options.Insecure, "k", false, "Skip TLS certificate verification")
	flag.BoolVar(&options.Insecure, "insecure", false, "Skip TLS certificate verification")

	flag.StringVar(&options.Verify, "verify", "", "Run original and rewritten function on these arguments (e.g. '[10000, 1]')")
	flag.IntVar(&options.MaxStack, "max-stack", options.MaxStack, "Call stack limit used by -verify")

	flag.StringVar(&options.OutputFormat, "o", options.OutputFormat, "Output format: code, human, json")
	flag.StringVar(&options.OutputFormat, "output", options.OutputFormat, "Output format: code, human, json")

	flag.StringVar(&options.OutputFile, "w", "", "Write output to file instead of stdout")
	flag.StringVar(&options.OutputFile, "write", "", "Write output to file instead of stdout")

	flag.BoolVar(&options.Verbose, "v", false, "Verbose output")
	flag.BoolVar(&options.Verbose, "verbose", false, "Verbose output")
	flag.BoolVar(&options.VeryVerbose, "vv", false, "Very verbose output")

	flag.BoolVar(&options.Silent, "s", false, "Silent mode (suppress banner and errors)")
	flag.BoolVar(&options.Silent, "silent", false, "Silent mode (suppress banner and errors)")

	// Custom Usage function
	flag.Usage = func() {
		banner := "\n" +
			"   \x1b[38;5;93m▀█▀ ▄▀▄ █ █   ▄▀▀ ▄▀▄ █   █  \x1b[0m\n" +
			"   \x1b[38;5;129m █  █▀█ █ █▄▄ ▀▄▄ █▀█ █▄▄ █▄▄\x1b[0m\n" +
			"   \x1b[38;5;141m" + config.Version + "\x1b[0m | \x1b[38;5;141m" + config.Author + "\x1b[0m\n"

		fmt.Fprint(os.Stderr, banner)
		h := `
USAGE:
  tailcall [flags] [file|url ...]

  Inputs are .js or .html files or http(s) URLs, "-" reads stdin. A "js:"
  or "html:" prefix forces the kind. With no inputs the source is read
  from stdin.

REWRITING:
  -c,  --concurrency int     Number of concurrent workers (default 4)
  -p,  --prefix string       Temporary variable prefix (default "_tco_temp_")
  -l,  --label string        Recursion loop label (default "_tailCall_")
  -i,  --input-list string   File with one input per line, - for stdin

REMOTE INPUTS:
  -t,  --timeout duration    Fetch timeout (default 10s)
  -x,  --proxy string        Proxy URL (e.g. http://127.0.0.1:8080)
  -rl, --rate-limit float    Maximum fetches per second (default unlimited)
  -k,  --insecure            Skip TLS certificate verification

VERIFICATION:
  --verify string            Call the first function with these arguments before
                             and after rewriting (e.g. '[10000, 1]')
  --max-stack int            Call stack limit used by --verify (default 1000)

OUTPUT:
  -o,  --output string       Output format: code, human, json (default "code")
  -w,  --write string        Write output to file instead of stdout
  -v,  --verbose             Verbose output (show progress and details)
  -vv                        Very verbose output (every tail call)
  -s,  --silent              Silent mode (suppress banner and errors)

ENVIRONMENT:
  TAILCALL_TEMP_PREFIX, TAILCALL_LOOP_LABEL, TAILCALL_MAX_STACK,
  TAILCALL_CONCURRENCY, TAILCALL_OUTPUT override the defaults.

EXAMPLES:
  echo "function f(n) { return n ? f(n - 1) : 0; }" | tailcall
  tailcall -o human fact.js
  tailcall -o json https://example.com/static/app.js
  tailcall --verify '[100000, 1]' -o human fact.js
  find src -name '*.js' | tailcall -i - -o json
`
		fmt.Fprint(os.Stderr, h)
	}

	flag.Parse()
	options.Inputs = flag.Args()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := runner.NewRunner(options)
	if err := r.Run(ctx); err != nil {
		if !options.Silent {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
