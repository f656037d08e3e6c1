// Package driver runs the analysis passes over a whole snapshot: it
// materializes the host, fans the per-file diagnostics query out over a
// bounded worker group and folds the results into one sorted bag.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"beacon/internal/config"
	"beacon/internal/diag"
	"beacon/internal/host"
	"beacon/internal/memhost"
	"beacon/internal/navigate"
	"beacon/internal/snapshot"
	"beacon/internal/source"
)

// Options configures a snapshot check run.
type Options struct {
	// Jobs bounds worker parallelism; 0 means GOMAXPROCS.
	Jobs int
	// Passes selects the analysis passes to run.
	Passes config.PassesConfig
	// MaxDiagnostics caps the result bag; 0 means unlimited.
	MaxDiagnostics int
	// Hints keeps hint-severity findings when true.
	Hints bool
}

// DefaultOptions mirrors the config defaults.
func DefaultOptions() Options {
	cfg := config.Default()
	return Options{
		Passes:         cfg.Passes,
		MaxDiagnostics: cfg.Output.MaxDiagnostics,
		Hints:          cfg.Output.Hints,
	}
}

// Result is the outcome of a snapshot check.
type Result struct {
	Bag   *diag.Bag
	Files *source.FileSet
	Host  *memhost.Host
}

// ctxCancel adapts a context to the host cancellation token.
type ctxCancel struct{ ctx context.Context }

func (c ctxCancel) IsCancellationRequested() bool {
	return c.ctx.Err() != nil
}

// CheckSnapshot loads the snapshot at path and checks every file in it.
func CheckSnapshot(ctx context.Context, path string, opts Options) (*Result, error) {
	payload, err := snapshot.Read(path)
	if err != nil {
		return nil, err
	}
	h, err := snapshot.Materialize(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return CheckHost(ctx, h, opts)
}

// CheckHost runs the per-file diagnostics query over every file of an
// already-materialized host.
func CheckHost(ctx context.Context, h *memhost.Host, opts Options) (*Result, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	svc := navigate.NewService(h, navigate.Options{
		Conditions: opts.Passes.Conditions,
		InitOrder:  opts.Passes.InitOrder,
		Cancel:     ctxCancel{ctx: ctx},
	})

	files := h.Files()
	n := files.Len()

	var mu sync.Mutex
	perFile := make([][]diag.Diagnostic, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(n, 1)))
	for i := range n {
		file := source.FileID(i + 1) // #nosec G115 -- bounded by file count
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			diags := svc.SemanticDiagnostics(file)
			mu.Lock()
			perFile[i] = diags
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	for _, diags := range perFile {
		for _, d := range diags {
			if !opts.Hints && d.Severity == diag.SevHint {
				continue
			}
			bag.Add(d)
		}
	}
	bag.Sort()
	bag.Dedup()
	return &Result{Bag: bag, Files: files, Host: h}, nil
}

// Navigator exposes the wrapped navigation queries for a materialized host,
// for the definition and reference commands.
func Navigator(h *memhost.Host, opts Options) host.Navigator {
	return navigate.NewService(h, navigate.Options{
		Conditions: opts.Passes.Conditions,
		InitOrder:  opts.Passes.InitOrder,
		Cancel:     host.NeverCancelled{},
	})
}
