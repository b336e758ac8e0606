// Package analyzer turns a source tree into the code model: it finds Java
// files, decodes them and parses them concurrently.
package analyzer

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"rest-recon/internal/codemodel"
	"rest-recon/internal/javaparser"
	"rest-recon/internal/logger"
)

// BuildOptions configures BuildModel
type BuildOptions struct {
	Encodings []string
	Workers   int    // 0 = runtime.NumCPU()
	Progress  func() // called once per file, serialized
}

// BuildResult is the parsed model with per-file statistics
type BuildResult struct {
	Graph   *codemodel.Graph
	Parsed  int // files that produced a class
	Skipped int // files without a class or interface
	Failed  int // files that could not be read or parsed
}

// BuildModel parses files into a graph. Classes keep the order of files.
// Unreadable or malformed files are logged and skipped; only a cancelled
// context makes BuildModel fail.
func BuildModel(ctx context.Context, files []string, opts BuildOptions) (*BuildResult, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type outcome struct {
		file *javaparser.JavaFile
		err  error
	}
	outcomes := make([]outcome, len(files))

	var mu sync.Mutex
	tick := func() {
		if opts.Progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		opts.Progress()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			defer tick()

			content, err := ReadFile(path, opts.Encodings)
			if err != nil {
				outcomes[i].err = err
				return nil
			}
			outcomes[i].file, outcomes[i].err = javaparser.ParseJavaFile(content)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &BuildResult{Graph: codemodel.NewGraph()}
	for i, o := range outcomes {
		switch {
		case errors.Is(o.err, javaparser.ErrNoTypeDeclaration):
			logger.Debug("No class declared in %s", files[i])
			result.Skipped++
		case o.err != nil:
			logger.ParseFailure(files[i], o.err)
			result.Failed++
		default:
			if prev := result.Graph.GetClass(o.file.Class.QualifiedName); prev != nil {
				logger.Warn("Duplicate class %s in %s replaces an earlier declaration", o.file.Class.QualifiedName, files[i])
			}
			result.Graph.AddClass(o.file.Class)
			result.Parsed++
		}
	}
	return result, nil
}
