package collector

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"rest-recon/internal/codemodel"
	"rest-recon/internal/logger"
	"rest-recon/internal/model"
)

// Resolver runs a set of dialects over a code model.
// Classes are described concurrently; the output keeps dialect order, then
// model order, so repeated runs over the same model are identical.
type Resolver struct {
	dialects []Dialect
	workers  int

	mu       sync.Mutex
	progress func()
}

// Option configures a Resolver
type Option func(*Resolver)

// WithWorkers bounds the number of classes described at once.
// n <= 0 selects runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithProgress registers a callback invoked once per class and dialect
func WithProgress(fn func()) Option {
	return func(r *Resolver) {
		r.progress = fn
	}
}

// NewResolver creates a resolver for the given dialects
func NewResolver(dialects []Dialect, opts ...Option) *Resolver {
	r := &Resolver{
		dialects: dialects,
		workers:  runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Steps returns the number of progress ticks Resolve emits for m
func (r *Resolver) Steps(m codemodel.Model) int {
	return len(r.dialects) * len(m.Classes())
}

// Resolve builds the catalog. A non-nil error together with a non-nil
// catalog carries per-class failures; the catalog still holds every class
// that resolved. A nil catalog means ctx was cancelled.
func (r *Resolver) Resolve(ctx context.Context, m codemodel.Model) (*model.Catalog, error) {
	classes := m.Classes()
	catalog := &model.Catalog{}
	var failures []error

	for _, d := range r.dialects {
		descriptors, errs, err := r.resolveDialect(ctx, d, m, classes)
		if err != nil {
			return nil, err
		}
		for _, desc := range descriptors {
			if desc != nil {
				catalog.Classes = append(catalog.Classes, *desc)
			}
		}
		for _, e := range errs {
			if e != nil {
				logger.Warn("Skipping class: %v", e)
				failures = append(failures, e)
			}
		}
	}

	return catalog, errors.Join(failures...)
}

func (r *Resolver) resolveDialect(ctx context.Context, d Dialect, m codemodel.Model, classes []*codemodel.Class) ([]*model.ClassDescriptor, []error, error) {
	descriptors := make([]*model.ClassDescriptor, len(classes))
	errs := make([]error, len(classes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, c := range classes {
		if gctx.Err() != nil {
			break
		}
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			descriptors[i], errs[i] = DescribeClass(d, m, c)
			r.tick()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return descriptors, errs, nil
}

func (r *Resolver) tick() {
	if r.progress == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress()
}
