package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/gqllex/gqllex/internal/config"
	"github.com/gqllex/gqllex/internal/gqlerror"
	"github.com/gqllex/gqllex/internal/language"
	"golang.org/x/sync/errgroup"
)

// cmdCheck lexes every file concurrently and prints the syntax errors in
// argument order. It returns 1 when any file fails.
func cmdCheck(cfg *config.Config, paths []string, stdout, stderr io.Writer) int {
	if len(paths) == 0 {
		fmt.Fprintf(stderr, "usage: gqllex check <file>...\n")
		return 1
	}

	errs := make([]error, len(paths))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := readDocument(cfg, path, os.Stdin)
			if err != nil {
				return err
			}
			src, err := doc.Source()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			_, errs[i] = language.Tokenize(src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	failed := 0
	for _, err := range errs {
		if err == nil {
			continue
		}
		failed++
		fmt.Fprintf(stdout, "%s\n\n", gqlerror.Print(err))
	}
	if failed > 0 {
		fmt.Fprintf(stderr, "%d of %d documents failed\n", failed, len(paths))
		return 1
	}
	return 0
}
