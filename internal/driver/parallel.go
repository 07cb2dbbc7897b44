package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"iona/internal/diag"
	"iona/internal/irfile"
	"iona/internal/source"
)

// CompileFile runs one full compilation from a declaration document on disk.
// A non-nil cache short-circuits emission when the document's fingerprint is
// already cached; only successful units are ever cached, so hits carry an
// empty Bag.
func CompileFile(path string, cache *DiskCache) (*Result, error) {
	c := NewCompilation()
	if cache != nil {
		if unit, ok := cache.Load(FingerprintFile(path)); ok {
			return &Result{Unit: unit, Bag: c.Bag}, nil
		}
	}
	mod, err := irfile.Load(path, c.Interner, c.Files)
	if err != nil {
		diag.ReportError(diag.BagReporter{Bag: c.Bag}, diag.CodeMalformedDeclaration, source.NoSpan(), err.Error())
		return &Result{Bag: c.Bag}, err
	}
	res, err := c.Compile(mod)
	if err != nil {
		return res, err
	}
	if cache != nil && res.Unit != nil {
		if err := cache.Store(FingerprintFile(path), res.Unit); err != nil {
			// Cache writes are best-effort; the unit is already correct.
			return res, nil
		}
	}
	return res, nil
}

// CompileAll compiles the given documents concurrently. Every compilation is
// fully isolated (own interner, registry, file set); results are merged back
// in input order, so the overall outcome is deterministic regardless of
// scheduling. The first failure cancels the remaining work.
func CompileAll(ctx context.Context, paths []string, cache *DiskCache) ([]*Result, error) {
	results := make([]*Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := CompileFile(path, cache)
			results[i] = res
			if err != nil {
				return fmt.Errorf("compile %s: %w", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
