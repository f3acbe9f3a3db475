package runner

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/lcalzada-xor/tailcall/pkg/config"
	"github.com/lcalzada-xor/tailcall/pkg/emulator"
	"github.com/lcalzada-xor/tailcall/pkg/htmlscript"
	"github.com/lcalzada-xor/tailcall/pkg/logger"
	"github.com/lcalzada-xor/tailcall/pkg/models"
	"github.com/lcalzada-xor/tailcall/pkg/network"
	"github.com/lcalzada-xor/tailcall/pkg/output"
	"github.com/lcalzada-xor/tailcall/pkg/tco"
)

// Runner handles the rewriting of a batch of inputs
type Runner struct {
	options *Options
	client  *network.Client

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	stdinOnce sync.Once
	stdinData []byte
	stdinErr  error
}

// NewRunner creates a new Runner instance
func NewRunner(options *Options) *Runner {
	return &Runner{
		options: options,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// job is one input and the slot its result goes to.
type job struct {
	index int
	req   *models.Request
}

// Run rewrites every input on a pool of workers and writes the results in
// input order. Inputs that fail still produce a result; the first failure
// in input order is returned once everything has been written.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.options.Validate(); err != nil {
		return err
	}
	log := logger.NewWriterLogger(r.Stderr, r.options.verboseLevel(), r.options.Silent)

	tr, err := tco.New(tco.Options{
		TempPrefix: r.options.TempPrefix,
		LoopLabel:  r.options.LoopLabel,
		Logger:     log,
	})
	if err != nil {
		return err
	}

	reqs, err := r.requests()
	if err != nil {
		return err
	}

	// Create HTTP client for remote inputs
	r.client, err = network.NewClient(network.ClientOptions{
		Timeout:     r.options.Timeout,
		Proxy:       r.options.Proxy,
		Concurrency: r.options.Concurrency,
		RateLimit:   r.options.RateLimit,
		Insecure:    r.options.Insecure,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	if !r.options.Silent {
		r.banner()
		log.V("Concurrency: %d workers", r.options.Concurrency)
		log.V("Temp prefix: %s, loop label: %s", r.options.TempPrefix, r.options.LoopLabel)
		if r.options.Verify != "" {
			log.V("Verify: %s (max stack %d)", r.options.Verify, r.options.MaxStack)
		}
	}

	results := make([]models.Result, len(reqs))
	errs := make([]error, len(reqs))
	jobs := make(chan job)
	var wg sync.WaitGroup

	// Worker pool
	workers := r.options.Concurrency
	if workers > len(reqs) {
		workers = len(reqs)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					log.V("[%d] Rewriting: %s", j.index+1, j.req.Path)
					results[j.index], errs[j.index] = r.process(ctx, tr, j.req)
					if errs[j.index] != nil {
						log.Error("%v", errs[j.index])
					}
				}
			}
		}()
	}

feed:
	for i, req := range reqs {
		select {
		case jobs <- job{index: i, req: req}:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.write(results); err != nil {
		return err
	}

	// Print statistics
	optimised, failed := 0, 0
	var first error
	for i, res := range results {
		optimised += res.Optimised()
		if errs[i] != nil {
			failed++
			if first == nil {
				first = errs[i]
			}
		}
	}
	log.Info("Rewrite complete: %d inputs processed, %d functions optimised, %d errors", len(results), optimised, failed)
	return first
}

// requests collects the inputs: explicit paths, then the input list. With
// neither, the source is read from stdin.
func (r *Runner) requests() ([]*models.Request, error) {
	var reqs []*models.Request
	for _, in := range r.options.Inputs {
		req, err := models.ParseFromString(in)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", in, err)
		}
		reqs = append(reqs, req)
	}

	if r.options.InputList != "" {
		var src io.Reader
		if r.options.InputList == "-" {
			src = r.Stdin
		} else {
			f, err := os.Open(r.options.InputList)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			src = f
		}
		scanner := bufio.NewScanner(src)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			req, err := models.ParseFromString(line)
			if err != nil {
				return nil, fmt.Errorf("input list line %q: %w", line, err)
			}
			reqs = append(reqs, req)
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(reqs) == 0 {
		reqs = append(reqs, &models.Request{Path: "-", Kind: models.KindJS})
	}
	return reqs, nil
}

// read returns the source at path and, for a remote input, its media type.
func (r *Runner) read(ctx context.Context, path string) ([]byte, string, error) {
	switch {
	case path == "-":
		r.stdinOnce.Do(func() {
			r.stdinData, r.stdinErr = io.ReadAll(r.Stdin)
		})
		return r.stdinData, "", r.stdinErr
	case network.IsRemote(path):
		return r.client.Fetch(ctx, path)
	}
	data, err := os.ReadFile(path)
	return data, "", err
}

// remoteKind lets the response media type decide the kind of a URL whose
// path has no extension.
func remoteKind(rawURL string, kind models.InputKind, mediaType string) models.InputKind {
	if mediaType != "text/html" && mediaType != "application/xhtml+xml" {
		return kind
	}
	if u, err := url.Parse(rawURL); err == nil && path.Ext(u.Path) == "" {
		return models.KindHTML
	}
	return kind
}

// process rewrites one input. The returned Result carries the error text
// when err is not nil.
func (r *Runner) process(ctx context.Context, tr *tco.Transformer, req *models.Request) (models.Result, error) {
	res := models.Result{Input: req.Path, Kind: req.Kind}
	if res.Kind == "" {
		res.Kind = models.KindFromPath(req.Path)
	}

	src, mediaType, err := r.read(ctx, req.Path)
	if err != nil {
		res.Error = err.Error()
		return res, fmt.Errorf("%s: %w", req.Path, err)
	}
	if mediaType != "" {
		res.Kind = remoteKind(req.Path, res.Kind, mediaType)
	}

	switch res.Kind {
	case models.KindHTML:
		var buf bytes.Buffer
		res.Scripts, err = htmlscript.Rewrite(bytes.NewReader(src), &buf, func(script string) (string, error) {
			code, out, err := tr.RewriteSource(script)
			if out != nil {
				res.Functions = append(res.Functions, out.Functions...)
			}
			return code, err
		})
		res.Code = buf.String()
	default:
		var out *tco.Result
		res.Code, out, err = tr.RewriteSource(string(src))
		if out != nil {
			res.Functions = out.Functions
		}
		if err == nil && r.options.Verify != "" {
			res.Verification, err = emulator.Compare(string(src), res.Code, r.options.Verify, r.options.MaxStack)
		}
	}

	if err != nil {
		res.Error = err.Error()
		return res, fmt.Errorf("%s: %w", req.Path, err)
	}
	return res, nil
}

func (r *Runner) write(results []models.Result) error {
	w := r.Stdout
	if r.options.OutputFile != "" {
		f, err := os.Create(r.options.OutputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	for _, res := range results {
		out := output.Format(res, r.options.OutputFormat)
		if out == "" {
			continue
		}
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) banner() {
	fmt.Fprintln(r.Stderr, "")
	fmt.Fprintln(r.Stderr, "   \x1b[38;5;93m▀█▀ ▄▀▄ █ █   ▄▀▀ ▄▀▄ █   █  \x1b[0m")
	fmt.Fprintln(r.Stderr, "   \x1b[38;5;129m █  █▀█ █ █▄▄ ▀▄▄ █▀█ █▄▄ █▄▄\x1b[0m")
	fmt.Fprintf(r.Stderr, "   \x1b[38;5;141m%s\x1b[0m | \x1b[38;5;141m%s\x1b[0m\n", config.Version, config.Author)
	fmt.Fprintln(r.Stderr, "")
}
